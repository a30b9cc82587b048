package get_availability

import (
	"time"

	getAvailability "github.com/m04kA/SMC-ConsultingBooking/internal/usecase/get_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Range     RangeResponse       `json:"range"`
	Blackouts []BlackoutResponse  `json:"blackouts"`
	Confirmed []ConfirmedResponse `json:"confirmed"`
}

type RangeResponse struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type BlackoutResponse struct {
	StartAt string  `json:"start_at"`
	EndAt   string  `json:"end_at"`
	Reason  *string `json:"reason"`
}

// ConfirmedResponse занятое время без данных заявителя
type ConfirmedResponse struct {
	RequestedStartAt string `json:"requested_start_at"`
	RequestedEndAt   string `json:"requested_end_at"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	result := &AvailabilityResponse{
		Range: RangeResponse{
			Start: resp.Range.Start.Format(time.RFC3339),
			End:   resp.Range.End.Format(time.RFC3339),
		},
		Blackouts: make([]BlackoutResponse, 0, len(resp.Blackouts)),
		Confirmed: make([]ConfirmedResponse, 0, len(resp.Confirmed)),
	}

	for _, b := range resp.Blackouts {
		result.Blackouts = append(result.Blackouts, BlackoutResponse{
			StartAt: b.StartAt.UTC().Format(time.RFC3339),
			EndAt:   b.EndAt.UTC().Format(time.RFC3339),
			Reason:  b.Reason,
		})
	}
	for _, b := range resp.Confirmed {
		result.Confirmed = append(result.Confirmed, ConfirmedResponse{
			RequestedStartAt: b.RequestedStartAt.UTC().Format(time.RFC3339),
			RequestedEndAt:   b.RequestedEndAt.UTC().Format(time.RFC3339),
		})
	}

	return result
}
