package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/m04kA/SMC-ConsultingBooking/internal/domain"
	consultingRepo "github.com/m04kA/SMC-ConsultingBooking/internal/infra/storage/consulting"
)

// ServiceRepository каталог услуг в памяти, контракт как у consulting.Repository
type ServiceRepository struct {
	store *Store
}

func (r *ServiceRepository) Create(ctx context.Context, s *domain.ConsultingService) (*domain.ConsultingService, error) {
	err := r.store.write(ctx, func(st *state) error {
		if slugTaken(st, s.Slug, 0) {
			return fmt.Errorf("%w: %s", consultingRepo.ErrDuplicateSlug, s.Slug)
		}
		now := r.store.clock.Now()
		s.ID = st.nextID()
		s.CreatedAt = now
		s.UpdatedAt = now
		st.services[s.ID] = *s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *ServiceRepository) GetBySlug(ctx context.Context, slug string) (*domain.ConsultingService, error) {
	var result *domain.ConsultingService
	err := r.store.read(ctx, func(st *state) error {
		for _, s := range st.services {
			if s.Slug == slug {
				s := s
				result = &s
				return nil
			}
		}
		return consultingRepo.ErrServiceNotFound
	})
	return result, err
}

func (r *ServiceRepository) GetByID(ctx context.Context, id int64) (*domain.ConsultingService, error) {
	var result *domain.ConsultingService
	err := r.store.read(ctx, func(st *state) error {
		s, ok := st.services[id]
		if !ok {
			return consultingRepo.ErrServiceNotFound
		}
		result = &s
		return nil
	})
	return result, err
}

func (r *ServiceRepository) List(ctx context.Context, filter consultingRepo.Filter) ([]*domain.ConsultingService, error) {
	result := make([]*domain.ConsultingService, 0)
	err := r.store.read(ctx, func(st *state) error {
		for _, s := range st.services {
			s := s
			if filter.Status == nil || s.Status == *filter.Status {
				result = append(result, &s)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Name != result[j].Name {
			return result[i].Name < result[j].Name
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (r *ServiceRepository) Update(ctx context.Context, id int64, s *domain.ConsultingService) (*domain.ConsultingService, error) {
	err := r.store.write(ctx, func(st *state) error {
		current, ok := st.services[id]
		if !ok {
			return consultingRepo.ErrServiceNotFound
		}
		if slugTaken(st, s.Slug, id) {
			return fmt.Errorf("%w: %s", consultingRepo.ErrDuplicateSlug, s.Slug)
		}
		s.ID = id
		s.CreatedAt = current.CreatedAt
		s.UpdatedAt = r.store.clock.Now()
		st.services[id] = *s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *ServiceRepository) Delete(ctx context.Context, id int64) error {
	return r.store.write(ctx, func(st *state) error {
		if _, ok := st.services[id]; !ok {
			return consultingRepo.ErrServiceNotFound
		}
		for _, b := range st.bookings {
			if b.ServiceID == id {
				return fmt.Errorf("%w: id=%d", consultingRepo.ErrServiceInUse, id)
			}
		}
		delete(st.services, id)
		return nil
	})
}

func slugTaken(st *state, slug string, exceptID int64) bool {
	for id, s := range st.services {
		if id != exceptID && s.Slug == slug {
			return true
		}
	}
	return false
}
