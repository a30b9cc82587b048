package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/m04kA/SMC-ConsultingBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ConsultingBooking/internal/infra/storage/booking"
)

// BookingRepository заявки в памяти, контракт как у booking.Repository
type BookingRepository struct {
	store *Store
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.BookingRequest) (*domain.BookingRequest, error) {
	err := r.store.write(ctx, func(st *state) error {
		if _, ok := st.services[b.ServiceID]; !ok {
			return fmt.Errorf("%w: service_id=%d", bookingRepo.ErrServiceNotFound, b.ServiceID)
		}
		for _, existing := range st.bookings {
			if existing.PublicID == b.PublicID {
				return fmt.Errorf("%w: %s", bookingRepo.ErrDuplicatePublicID, b.PublicID)
			}
		}

		now := r.store.clock.Now()
		b.ID = st.nextID()
		b.CreatedAt = now
		b.UpdatedAt = now
		st.bookings[b.ID] = *b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *BookingRepository) GetByPublicID(ctx context.Context, publicID string) (*domain.BookingRequest, error) {
	var result *domain.BookingRequest
	err := r.store.read(ctx, func(st *state) error {
		b, ok := findByPublicID(st, publicID)
		if !ok {
			return bookingRepo.ErrBookingNotFound
		}
		result = b
		return nil
	})
	return result, err
}

// LockByPublicID в памяти транзакции уже изолированы, достаточно проверить, что она открыта
func (r *BookingRepository) LockByPublicID(ctx context.Context, publicID string) (*domain.BookingRequest, error) {
	if _, ok := inTransaction(ctx); !ok {
		return nil, bookingRepo.ErrNotInTransaction
	}
	return r.GetByPublicID(ctx, publicID)
}

func (r *BookingRepository) Update(ctx context.Context, b *domain.BookingRequest) error {
	return r.store.write(ctx, func(st *state) error {
		current, ok := st.bookings[b.ID]
		if !ok {
			return bookingRepo.ErrBookingNotFound
		}

		current.Status = b.Status
		current.AdminNotes = b.AdminNotes
		current.MeetingURL = b.MeetingURL
		current.HandledBy = b.HandledBy
		current.HandledAt = b.HandledAt
		current.ConfirmedAt = b.ConfirmedAt
		current.CancelledAt = b.CancelledAt
		current.UpdatedAt = r.store.clock.Now()
		st.bookings[b.ID] = current

		b.UpdatedAt = current.UpdatedAt
		return nil
	})
}

func (r *BookingRepository) List(ctx context.Context, filter domain.BookingFilter) ([]*domain.BookingRequest, error) {
	result := make([]*domain.BookingRequest, 0)
	err := r.store.read(ctx, func(st *state) error {
		for _, b := range st.bookings {
			b := withSlug(st, b)
			if matches(b, filter) {
				result = append(result, b)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID > result[j].ID
	})

	if filter.Offset >= len(result) {
		return []*domain.BookingRequest{}, nil
	}
	if filter.Offset > 0 {
		result = result[filter.Offset:]
	}
	if limit := filter.EffectiveLimit(); len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (r *BookingRepository) ListConfirmedInRange(ctx context.Context, from, to time.Time) ([]*domain.BookingRequest, error) {
	window := domain.Interval{Start: from, End: to}
	result := make([]*domain.BookingRequest, 0)
	err := r.store.read(ctx, func(st *state) error {
		for _, b := range st.bookings {
			if b.Status == domain.StatusConfirmed && b.Interval().Overlaps(window) {
				result = append(result, withSlug(st, b))
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].RequestedStartAt.Before(result[j].RequestedStartAt)
	})
	return result, nil
}

func findByPublicID(st *state, publicID string) (*domain.BookingRequest, bool) {
	for _, b := range st.bookings {
		if b.PublicID == publicID {
			return withSlug(st, b), true
		}
	}
	return nil, false
}

func withSlug(st *state, b domain.BookingRequest) *domain.BookingRequest {
	if svc, ok := st.services[b.ServiceID]; ok {
		b.ServiceSlug = svc.Slug
	}
	return &b
}

func matches(b *domain.BookingRequest, f domain.BookingFilter) bool {
	if f.Status != nil && b.Status != *f.Status {
		return false
	}
	if f.Email != nil && !strings.EqualFold(b.Email, *f.Email) {
		return false
	}
	if f.ServiceSlug != nil && !strings.EqualFold(b.ServiceSlug, *f.ServiceSlug) {
		return false
	}
	if f.StartFrom != nil && b.RequestedStartAt.Before(*f.StartFrom) {
		return false
	}
	if f.StartTo != nil && b.RequestedStartAt.After(*f.StartTo) {
		return false
	}
	if f.Search != nil {
		needle := strings.ToLower(strings.TrimSpace(*f.Search))
		if needle == "" {
			return true
		}
		for _, field := range []*string{&b.FullName, &b.Email, b.Company, b.Role, b.ProblemStatement, b.AdminNotes} {
			if field != nil && strings.Contains(strings.ToLower(*field), needle) {
				return true
			}
		}
		return false
	}
	return true
}
