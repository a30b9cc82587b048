package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-ConsultingBooking/internal/domain"
	"github.com/m04kA/SMC-ConsultingBooking/pkg/types"
)

// Request модели

// RuleRequest тело запроса на создание и замену правила доступности
type RuleRequest struct {
	Timezone               string `json:"timezone"`
	DayOfWeek              *int   `json:"day_of_week"`
	StartTimeLocal         string `json:"start_time_local"` // "09:00"
	EndTimeLocal           string `json:"end_time_local"`   // "17:00"
	SlotGranularityMinutes int    `json:"slot_granularity_minutes"`
	BufferBeforeMinutes    int    `json:"buffer_before_minutes"`
	BufferAfterMinutes     int    `json:"buffer_after_minutes"`
	MaxBookingsPerDay      *int   `json:"max_bookings_per_day"`
	MinLeadTimeMinutes     *int   `json:"min_lead_time_minutes"` // nil = 720
	IsActive               *bool  `json:"is_active"`             // nil = true
}

// ToDomain разбирает запрос, применяет значения по умолчанию и валидирует правило
func (r *RuleRequest) ToDomain() (*domain.AvailabilityRule, error) {
	verr := domain.NewValidationError()

	rule := &domain.AvailabilityRule{
		Timezone:               r.Timezone,
		SlotGranularityMinutes: r.SlotGranularityMinutes,
		BufferBeforeMinutes:    r.BufferBeforeMinutes,
		BufferAfterMinutes:     r.BufferAfterMinutes,
		MaxBookingsPerDay:      r.MaxBookingsPerDay,
		MinLeadTimeMinutes:     domain.DefaultMinLeadTimeMinutes,
		IsActive:               true,
	}
	if r.DayOfWeek != nil {
		rule.DayOfWeek = *r.DayOfWeek
	} else {
		verr.Add("day_of_week", "This field is required.")
	}
	if r.MinLeadTimeMinutes != nil {
		rule.MinLeadTimeMinutes = *r.MinLeadTimeMinutes
	}
	if r.IsActive != nil {
		rule.IsActive = *r.IsActive
	}

	rule.StartTimeLocal = parseLocalTime(verr, "start_time_local", r.StartTimeLocal)
	rule.EndTimeLocal = parseLocalTime(verr, "end_time_local", r.EndTimeLocal)

	rule.ApplyDefaults()
	if err := rule.Validate(); err != nil {
		var ruleErr *domain.ValidationError
		if errors.As(err, &ruleErr) {
			for field, msg := range ruleErr.Fields {
				verr.Add(field, msg)
			}
		}
	}

	if err := verr.ErrOrNil(); err != nil {
		return nil, err
	}
	return rule, nil
}

func parseLocalTime(verr *domain.ValidationError, field, raw string) types.TimeString {
	if raw == "" {
		return types.TimeString{}
	}
	ts, err := types.NewTimeStringFromString(raw)
	if err != nil {
		verr.Add(field, "Time has wrong format. Use HH:MM.")
		return types.TimeString{}
	}
	return ts
}

// BlackoutRequest тело запроса на создание и замену периода блокировки
type BlackoutRequest struct {
	StartAt string  `json:"start_at"` // RFC3339
	EndAt   string  `json:"end_at"`   // RFC3339
	Reason  *string `json:"reason"`
}

// ToDomain разбирает запрос и валидирует период
func (r *BlackoutRequest) ToDomain() (*domain.BlackoutPeriod, error) {
	verr := domain.NewValidationError()

	blackout := &domain.BlackoutPeriod{
		StartAt: parseDateTime(verr, "start_at", r.StartAt),
		EndAt:   parseDateTime(verr, "end_at", r.EndAt),
		Reason:  r.Reason,
	}

	if err := blackout.Validate(); err != nil {
		var bErr *domain.ValidationError
		if errors.As(err, &bErr) {
			for field, msg := range bErr.Fields {
				verr.Add(field, msg)
			}
		}
	}

	if err := verr.ErrOrNil(); err != nil {
		return nil, err
	}
	return blackout, nil
}

func parseDateTime(verr *domain.ValidationError, field, raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		verr.Add(field, "Datetime has wrong format. Use RFC3339.")
		return time.Time{}
	}
	return t.UTC()
}

// Response модели

// RuleResponse представление правила доступности
type RuleResponse struct {
	ID                     int64  `json:"id"`
	Timezone               string `json:"timezone"`
	DayOfWeek              int    `json:"day_of_week"`
	StartTimeLocal         string `json:"start_time_local"`
	EndTimeLocal           string `json:"end_time_local"`
	SlotGranularityMinutes int    `json:"slot_granularity_minutes"`
	BufferBeforeMinutes    int    `json:"buffer_before_minutes"`
	BufferAfterMinutes     int    `json:"buffer_after_minutes"`
	MaxBookingsPerDay      *int   `json:"max_bookings_per_day"`
	MinLeadTimeMinutes     int    `json:"min_lead_time_minutes"`
	IsActive               bool   `json:"is_active"`
	CreatedAt              string `json:"created_at"`
	UpdatedAt              string `json:"updated_at"`
}

// FromDomainRule конвертирует правило в ответ
func FromDomainRule(r *domain.AvailabilityRule) *RuleResponse {
	return &RuleResponse{
		ID:                     r.ID,
		Timezone:               r.Timezone,
		DayOfWeek:              r.DayOfWeek,
		StartTimeLocal:         r.StartTimeLocal.String(),
		EndTimeLocal:           r.EndTimeLocal.String(),
		SlotGranularityMinutes: r.SlotGranularityMinutes,
		BufferBeforeMinutes:    r.BufferBeforeMinutes,
		BufferAfterMinutes:     r.BufferAfterMinutes,
		MaxBookingsPerDay:      r.MaxBookingsPerDay,
		MinLeadTimeMinutes:     r.MinLeadTimeMinutes,
		IsActive:               r.IsActive,
		CreatedAt:              r.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:              r.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// FromDomainRuleList конвертирует список правил
func FromDomainRuleList(rules []*domain.AvailabilityRule) []*RuleResponse {
	result := make([]*RuleResponse, 0, len(rules))
	for _, r := range rules {
		result = append(result, FromDomainRule(r))
	}
	return result
}

// BlackoutResponse представление периода блокировки
type BlackoutResponse struct {
	ID        int64   `json:"id"`
	StartAt   string  `json:"start_at"`
	EndAt     string  `json:"end_at"`
	Reason    *string `json:"reason"`
	CreatedBy *string `json:"created_by"`
	CreatedAt string  `json:"created_at"`
}

// FromDomainBlackout конвертирует период блокировки в ответ
func FromDomainBlackout(b *domain.BlackoutPeriod) *BlackoutResponse {
	return &BlackoutResponse{
		ID:        b.ID,
		StartAt:   b.StartAt.UTC().Format(time.RFC3339),
		EndAt:     b.EndAt.UTC().Format(time.RFC3339),
		Reason:    b.Reason,
		CreatedBy: b.CreatedBy,
		CreatedAt: b.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// FromDomainBlackoutList конвертирует список периодов блокировки
func FromDomainBlackoutList(blackouts []*domain.BlackoutPeriod) []*BlackoutResponse {
	result := make([]*BlackoutResponse, 0, len(blackouts))
	for _, b := range blackouts {
		result = append(result, FromDomainBlackout(b))
	}
	return result
}
