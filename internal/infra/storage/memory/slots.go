package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/m04kA/SMC-ConsultingBooking/internal/domain"
	slotRepo "github.com/m04kA/SMC-ConsultingBooking/internal/infra/storage/slot"
)

// SlotRepository слоты в памяти, контракт как у slot.Repository
type SlotRepository struct {
	store *Store
}

// LockSchedule транзакции и так выполняются по одной
func (r *SlotRepository) LockSchedule(ctx context.Context) error {
	if _, ok := inTransaction(ctx); !ok {
		return slotRepo.ErrNotInTransaction
	}
	return nil
}

func (r *SlotRepository) FindActiveOverlapping(ctx context.Context, interval domain.Interval) ([]*domain.BookingSlot, error) {
	result := make([]*domain.BookingSlot, 0)
	err := r.store.read(ctx, func(st *state) error {
		for _, s := range st.slots {
			s := s
			if s.IsActive() && s.Interval().Overlaps(interval) {
				result = append(result, &s)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(result, func(i, j int) bool { return result[i].StartAt.Before(result[j].StartAt) })
	return result, nil
}

func (r *SlotRepository) Create(ctx context.Context, s *domain.BookingSlot) (*domain.BookingSlot, error) {
	err := r.store.write(ctx, func(st *state) error {
		// то же, что booking_slots_range_check
		if !s.Interval().Valid() {
			return fmt.Errorf("%w: %s - %s", slotRepo.ErrInvalidInterval, s.StartAt, s.EndAt)
		}
		for _, existing := range st.slots {
			if existing.BookingRequestID == s.BookingRequestID {
				return fmt.Errorf("%w: booking_request_id=%d", slotRepo.ErrSlotExists, s.BookingRequestID)
			}
			// то же, что ограничение booking_slots_no_overlap в базе
			if s.IsActive() && existing.IsActive() && existing.Interval().Overlaps(s.Interval()) {
				return fmt.Errorf("%w: %s - %s", slotRepo.ErrOverlap, s.StartAt, s.EndAt)
			}
		}

		now := r.store.clock.Now()
		s.ID = st.nextID()
		s.CreatedAt = now
		s.UpdatedAt = now
		st.slots[s.ID] = *s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *SlotRepository) ReleaseByBookingRequestID(ctx context.Context, bookingRequestID int64) (int64, error) {
	var released int64
	err := r.store.write(ctx, func(st *state) error {
		for id, s := range st.slots {
			if s.BookingRequestID == bookingRequestID && s.Status != domain.SlotReleased {
				s.Status = domain.SlotReleased
				s.UpdatedAt = r.store.clock.Now()
				st.slots[id] = s
				released++
			}
		}
		return nil
	})
	return released, err
}

func (r *SlotRepository) GetByBookingRequestID(ctx context.Context, bookingRequestID int64) (*domain.BookingSlot, error) {
	var result *domain.BookingSlot
	err := r.store.read(ctx, func(st *state) error {
		for _, s := range st.slots {
			if s.BookingRequestID == bookingRequestID {
				s := s
				result = &s
				return nil
			}
		}
		return slotRepo.ErrSlotNotFound
	})
	return result, err
}

// AllSlots снимок всех слотов, для проверок в тестах
func (r *SlotRepository) AllSlots(ctx context.Context) []*domain.BookingSlot {
	result := make([]*domain.BookingSlot, 0)
	_ = r.store.read(ctx, func(st *state) error {
		for _, s := range st.slots {
			s := s
			result = append(result, &s)
		}
		return nil
	})
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}
