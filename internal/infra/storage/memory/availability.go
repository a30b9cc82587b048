package memory

import (
	"context"
	"sort"

	"github.com/m04kA/SMC-ConsultingBooking/internal/domain"
	availabilityRepo "github.com/m04kA/SMC-ConsultingBooking/internal/infra/storage/availability"
)

// AvailabilityRepository правила и блокировки в памяти, контракт как у availability.Repository
type AvailabilityRepository struct {
	store *Store
}

func (r *AvailabilityRepository) CreateRule(ctx context.Context, rule *domain.AvailabilityRule) (*domain.AvailabilityRule, error) {
	err := r.store.write(ctx, func(st *state) error {
		now := r.store.clock.Now()
		rule.ID = st.nextID()
		rule.CreatedAt = now
		rule.UpdatedAt = now
		st.rules[rule.ID] = *rule
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rule, nil
}

func (r *AvailabilityRepository) GetRule(ctx context.Context, id int64) (*domain.AvailabilityRule, error) {
	var result *domain.AvailabilityRule
	err := r.store.read(ctx, func(st *state) error {
		rule, ok := st.rules[id]
		if !ok {
			return availabilityRepo.ErrRuleNotFound
		}
		result = &rule
		return nil
	})
	return result, err
}

func (r *AvailabilityRepository) ListRules(ctx context.Context) ([]*domain.AvailabilityRule, error) {
	result := make([]*domain.AvailabilityRule, 0)
	_ = r.store.read(ctx, func(st *state) error {
		for _, rule := range st.rules {
			rule := rule
			result = append(result, &rule)
		}
		return nil
	})

	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if a.DayOfWeek != b.DayOfWeek {
			return a.DayOfWeek < b.DayOfWeek
		}
		if a.StartTimeLocal.Minutes() != b.StartTimeLocal.Minutes() {
			return a.StartTimeLocal.IsBefore(b.StartTimeLocal)
		}
		return a.ID < b.ID
	})
	return result, nil
}

func (r *AvailabilityRepository) UpdateRule(ctx context.Context, id int64, rule *domain.AvailabilityRule) (*domain.AvailabilityRule, error) {
	err := r.store.write(ctx, func(st *state) error {
		current, ok := st.rules[id]
		if !ok {
			return availabilityRepo.ErrRuleNotFound
		}
		rule.ID = id
		rule.CreatedAt = current.CreatedAt
		rule.UpdatedAt = r.store.clock.Now()
		st.rules[id] = *rule
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rule, nil
}

func (r *AvailabilityRepository) DeleteRule(ctx context.Context, id int64) error {
	return r.store.write(ctx, func(st *state) error {
		if _, ok := st.rules[id]; !ok {
			return availabilityRepo.ErrRuleNotFound
		}
		delete(st.rules, id)
		return nil
	})
}

func (r *AvailabilityRepository) CreateBlackout(ctx context.Context, b *domain.BlackoutPeriod) (*domain.BlackoutPeriod, error) {
	err := r.store.write(ctx, func(st *state) error {
		b.ID = st.nextID()
		b.CreatedAt = r.store.clock.Now()
		st.blackouts[b.ID] = *b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *AvailabilityRepository) GetBlackout(ctx context.Context, id int64) (*domain.BlackoutPeriod, error) {
	var result *domain.BlackoutPeriod
	err := r.store.read(ctx, func(st *state) error {
		b, ok := st.blackouts[id]
		if !ok {
			return availabilityRepo.ErrBlackoutNotFound
		}
		result = &b
		return nil
	})
	return result, err
}

func (r *AvailabilityRepository) ListBlackouts(ctx context.Context) ([]*domain.BlackoutPeriod, error) {
	result := r.blackouts(ctx, nil)
	sort.Slice(result, func(i, j int) bool {
		if !result[i].StartAt.Equal(result[j].StartAt) {
			return result[i].StartAt.After(result[j].StartAt)
		}
		return result[i].ID > result[j].ID
	})
	return result, nil
}

func (r *AvailabilityRepository) ListBlackoutsInRange(ctx context.Context, interval domain.Interval) ([]*domain.BlackoutPeriod, error) {
	result := r.blackouts(ctx, &interval)
	sort.Slice(result, func(i, j int) bool { return result[i].StartAt.Before(result[j].StartAt) })
	return result, nil
}

func (r *AvailabilityRepository) UpdateBlackout(ctx context.Context, id int64, b *domain.BlackoutPeriod) (*domain.BlackoutPeriod, error) {
	var result *domain.BlackoutPeriod
	err := r.store.write(ctx, func(st *state) error {
		current, ok := st.blackouts[id]
		if !ok {
			return availabilityRepo.ErrBlackoutNotFound
		}
		current.StartAt = b.StartAt
		current.EndAt = b.EndAt
		current.Reason = b.Reason
		st.blackouts[id] = current
		result = &current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *AvailabilityRepository) DeleteBlackout(ctx context.Context, id int64) error {
	return r.store.write(ctx, func(st *state) error {
		if _, ok := st.blackouts[id]; !ok {
			return availabilityRepo.ErrBlackoutNotFound
		}
		delete(st.blackouts, id)
		return nil
	})
}

func (r *AvailabilityRepository) blackouts(ctx context.Context, within *domain.Interval) []*domain.BlackoutPeriod {
	result := make([]*domain.BlackoutPeriod, 0)
	_ = r.store.read(ctx, func(st *state) error {
		for _, b := range st.blackouts {
			b := b
			if within == nil || b.Interval().Overlaps(*within) {
				result = append(result, &b)
			}
		}
		return nil
	})
	return result
}
