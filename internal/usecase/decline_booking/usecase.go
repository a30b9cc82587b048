package decline_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ConsultingBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ConsultingBooking/internal/infra/storage/booking"
)

// UseCase отклонение заявки администратором
type UseCase struct {
	bookingRepo  BookingRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, txManager TransactionManager, timeProvider TimeProvider, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		txManager:    txManager,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Execute переводит REQUESTED в DECLINED. Слота у такой заявки нет.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.BookingRequest, error) {
	uc.logger.Info("DeclineBooking: public_id=%s, actor=%s", req.PublicID, req.Actor)

	var result *domain.BookingRequest

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := uc.bookingRepo.LockByPublicID(txCtx, req.PublicID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: lock booking request: %w", ErrInternal, err)
		}

		if err := booking.Decline(req.Actor, uc.timeProvider.Now()); err != nil {
			return err
		}
		if req.AdminNotes != nil {
			booking.AdminNotes = req.AdminNotes
		}

		if err := uc.bookingRepo.Update(txCtx, booking); err != nil {
			return fmt.Errorf("%w: update booking request: %w", ErrInternal, err)
		}
		result = booking
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound), errors.Is(err, domain.ErrInvalidTransition):
			uc.logger.Warn("DeclineBooking: public_id=%s rejected: %v", req.PublicID, err)
		default:
			uc.logger.Error("DeclineBooking: public_id=%s failed: %v", req.PublicID, err)
		}
		return nil, err
	}

	uc.logger.Info("DeclineBooking: public_id=%s declined", req.PublicID)
	return result, nil
}
