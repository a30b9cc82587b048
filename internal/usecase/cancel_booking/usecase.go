package cancel_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ConsultingBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ConsultingBooking/internal/infra/storage/booking"
)

// UseCase отмена заявки заявителем или администратором
type UseCase struct {
	bookingRepo  BookingRepository
	slotRepo     SlotRepository
	txManager    TransactionManager
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	txManager TransactionManager,
	metrics Metrics,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		slotRepo:     slotRepo,
		txManager:    txManager,
		metrics:      metrics,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Execute отменяет заявку и освобождает ее слот.
// Повторная отмена и отмена заявки в терминальном статусе ничего не меняют
// и возвращают заявку как есть.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.BookingRequest, error) {
	uc.logger.Info("CancelBooking: public_id=%s, by_admin=%t", req.PublicID, req.ByAdmin)

	var (
		result  *domain.BookingRequest
		changed bool
	)

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := uc.bookingRepo.LockByPublicID(txCtx, req.PublicID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: lock booking request: %w", ErrInternal, err)
		}
		result = booking

		changed = booking.Cancel(req.ByAdmin, req.Actor, uc.timeProvider.Now())
		if !changed {
			return nil
		}

		if err := uc.bookingRepo.Update(txCtx, booking); err != nil {
			return fmt.Errorf("%w: update booking request: %w", ErrInternal, err)
		}

		released, err := uc.slotRepo.ReleaseByBookingRequestID(txCtx, booking.ID)
		if err != nil {
			return fmt.Errorf("%w: release slot: %w", ErrInternal, err)
		}
		if released > 0 {
			uc.logger.Info("CancelBooking: public_id=%s released %d slot(s)", req.PublicID, released)
		}
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrBookingNotFound) {
			uc.logger.Warn("CancelBooking: public_id=%s not found", req.PublicID)
			return nil, err
		}
		uc.logger.Error("CancelBooking: public_id=%s failed: %v", req.PublicID, err)
		return nil, err
	}

	if !changed {
		uc.logger.Info("CancelBooking: public_id=%s already in status %s, nothing to do", req.PublicID, result.Status)
		return result, nil
	}

	if uc.metrics != nil {
		by := "requester"
		if req.ByAdmin {
			by = "admin"
		}
		uc.metrics.IncCancel(by)
	}
	uc.logger.Info("CancelBooking: public_id=%s -> %s", req.PublicID, result.Status)
	return result, nil
}
