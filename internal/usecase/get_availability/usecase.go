package get_availability

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ConsultingBooking/internal/domain"
)

// UseCase занятость календаря: блокировки и подтвержденные встречи.
// Правила доступности здесь не учитываются.
type UseCase struct {
	bookingRepo  BookingRepository
	blackoutRepo BlackoutRepository
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, blackoutRepo BlackoutRepository, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		blackoutRepo: blackoutRepo,
		logger:       logger,
	}
}

// Execute возвращает блокировки и подтвержденные заявки, пересекающие окно
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.Days < 1 || req.Days > domain.MaxAvailabilityDays {
		return nil, domain.FieldError("days", fmt.Sprintf("days must be between 1 and %d.", domain.MaxAvailabilityDays))
	}

	start := req.Start.UTC()
	start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	window := domain.Interval{Start: start, End: start.AddDate(0, 0, req.Days)}

	uc.logger.Info("GetAvailability: %s - %s", window.Start.Format(domain.DateFormat), window.End.Format(domain.DateFormat))

	blackouts, err := uc.blackoutRepo.ListBlackoutsInRange(ctx, window)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to list blackouts: %v", err)
		return nil, fmt.Errorf("%w: failed to list blackouts: %v", ErrInternal, err)
	}

	confirmed, err := uc.bookingRepo.ListConfirmedInRange(ctx, window.Start, window.End)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to list confirmed bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to list confirmed bookings: %v", ErrInternal, err)
	}

	return &Response{Range: window, Blackouts: blackouts, Confirmed: confirmed}, nil
}
