package create_booking

import (
	"time"

	"github.com/m04kA/SMC-ConsultingBooking/internal/domain"
	createBooking "github.com/m04kA/SMC-ConsultingBooking/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	Service          string  `json:"service"` // slug услуги
	FullName         string  `json:"full_name"`
	Email            string  `json:"email"`
	Company          *string `json:"company,omitempty"`
	Role             *string `json:"role,omitempty"`
	Phone            *string `json:"phone,omitempty"`
	Timezone         string  `json:"timezone,omitempty"`
	DurationMinutes  *int    `json:"duration_minutes,omitempty"`
	RequestedStartAt string  `json:"requested_start_at"` // RFC3339
	MeetingMode      string  `json:"meeting_mode"`
	ProblemStatement *string `json:"problem_statement,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	req := &createBooking.Request{
		ServiceSlug:      r.Service,
		FullName:         r.FullName,
		Email:            r.Email,
		Company:          r.Company,
		Role:             r.Role,
		Phone:            r.Phone,
		Timezone:         r.Timezone,
		DurationMinutes:  r.DurationMinutes,
		MeetingMode:      r.MeetingMode,
		ProblemStatement: r.ProblemStatement,
	}

	if r.RequestedStartAt != "" {
		start, err := time.Parse(time.RFC3339, r.RequestedStartAt)
		if err != nil {
			return nil, domain.FieldError("requested_start_at", "Datetime has wrong format. Use RFC3339.")
		}
		req.RequestedStartAt = &start
	}

	return req, nil
}
