package confirm_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ConsultingBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ConsultingBooking/internal/infra/storage/booking"
	slotRepo "github.com/m04kA/SMC-ConsultingBooking/internal/infra/storage/slot"
)

// UseCase подтверждение заявки: атомарная проверка пересечений и создание слота
type UseCase struct {
	bookingRepo  BookingRepository
	slotRepo     SlotRepository
	blackoutRepo BlackoutRepository
	txManager    TransactionManager
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
	opts         Options
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	blackoutRepo BlackoutRepository,
	txManager TransactionManager,
	metrics Metrics,
	timeProvider TimeProvider,
	logger Logger,
	opts Options,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		slotRepo:     slotRepo,
		blackoutRepo: blackoutRepo,
		txManager:    txManager,
		metrics:      metrics,
		timeProvider: timeProvider,
		logger:       logger,
		opts:         opts,
	}
}

// Execute переводит заявку REQUESTED в CONFIRMED и создает для нее CONFIRMED слот.
//
// Все шаги выполняются в одной сериализуемой транзакции:
//  1. блокировка строки заявки (FOR UPDATE)
//  2. проверка статуса
//  3. блокировка расписания и поиск активных слотов, пересекающих [start, end)
//  4. создание слота и обновление заявки
//
// При ошибке сериализации менеджер транзакций повторяет все шаги заново, и
// проигравший конкурент видит уже созданный слот победителя.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ConfirmBooking: public_id=%s, approved_by=%s", req.PublicID, req.ApprovedBy)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ConfirmBooking: validation failed: %v", err)
		uc.observe(resultInvalidInput)
		return nil, err
	}

	var result *Response

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Блокируем заявку
		booking, err := uc.bookingRepo.LockByPublicID(txCtx, req.PublicID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: lock booking request: %w", ErrInternal, err)
		}

		// 2. Подтвердить можно только REQUESTED
		if !booking.Status.CanTransition(domain.StatusConfirmed) {
			return &domain.TransitionError{Action: "confirmed", From: booking.Status}
		}

		// 3. Сериализуем все подтверждения и ищем пересечения
		if err := uc.slotRepo.LockSchedule(txCtx); err != nil {
			return fmt.Errorf("%w: lock schedule: %w", ErrInternal, err)
		}

		interval := booking.Interval()
		active, err := uc.slotRepo.FindActiveOverlapping(txCtx, interval)
		if err != nil {
			return fmt.Errorf("%w: find overlapping slots: %w", ErrInternal, err)
		}
		for _, slot := range active {
			if slot.IsActive() && slot.Interval().Overlaps(interval) {
				uc.logger.Warn("ConfirmBooking: public_id=%s overlaps slot id=%d (%s - %s)",
					req.PublicID, slot.ID, slot.StartAt, slot.EndAt)
				return domain.ErrOverlapConflict
			}
		}

		if uc.opts.EnforceBlackouts {
			blackouts, err := uc.blackoutRepo.ListBlackoutsInRange(txCtx, interval)
			if err != nil {
				return fmt.Errorf("%w: list blackouts: %w", ErrInternal, err)
			}
			if len(blackouts) > 0 {
				uc.logger.Warn("ConfirmBooking: public_id=%s falls inside blackout id=%d", req.PublicID, blackouts[0].ID)
				return domain.ErrBlackoutConflict
			}
		}

		// 4. Создаем слот и подтверждаем заявку
		if err := booking.Confirm(req.ApprovedBy, req.MeetingURL, uc.timeProvider.Now()); err != nil {
			return err
		}
		if req.AdminNotes != nil {
			booking.AdminNotes = req.AdminNotes
		}

		slot, err := uc.slotRepo.Create(txCtx, domain.NewConfirmedSlot(booking))
		if err != nil {
			if errors.Is(err, slotRepo.ErrOverlap) {
				return domain.ErrOverlapConflict
			}
			return fmt.Errorf("%w: create slot: %w", ErrInternal, err)
		}

		if err := uc.bookingRepo.Update(txCtx, booking); err != nil {
			return fmt.Errorf("%w: update booking request: %w", ErrInternal, err)
		}

		result = &Response{Booking: booking, Slot: slot}
		return nil
	})

	if err != nil {
		uc.observe(classify(err))
		switch {
		case errors.Is(err, ErrBookingNotFound):
			uc.logger.Warn("ConfirmBooking: public_id=%s not found", req.PublicID)
		case errors.Is(err, domain.ErrInvalidTransition),
			errors.Is(err, domain.ErrOverlapConflict),
			errors.Is(err, domain.ErrBlackoutConflict):
			uc.logger.Warn("ConfirmBooking: public_id=%s rejected: %v", req.PublicID, err)
		default:
			uc.logger.Error("ConfirmBooking: public_id=%s failed: %v", req.PublicID, err)
			if !errors.Is(err, ErrInternal) {
				err = fmt.Errorf("%w: %w", ErrInternal, err)
			}
		}
		return nil, err
	}

	uc.observe(resultConfirmed)
	uc.logger.Info("ConfirmBooking: public_id=%s confirmed, slot id=%d", req.PublicID, result.Slot.ID)
	return result, nil
}

func (uc *UseCase) observe(result string) {
	if uc.metrics != nil {
		uc.metrics.IncConfirm(result)
	}
}

func classify(err error) string {
	switch {
	case errors.Is(err, ErrBookingNotFound):
		return resultNotFound
	case errors.Is(err, domain.ErrInvalidTransition):
		return resultInvalidState
	case errors.Is(err, domain.ErrOverlapConflict):
		return resultOverlap
	case errors.Is(err, domain.ErrBlackoutConflict):
		return resultBlackout
	default:
		return resultError
	}
}
