package domain

import (
	"time"

	"github.com/m04kA/SMC-ConsultingBooking/pkg/types"
)

// AvailabilityRule is a weekly availability window in a given timezone.
// DayOfWeek: 0=Mon ... 6=Sun
type AvailabilityRule struct {
	ID                     int64
	Timezone               string
	DayOfWeek              int
	StartTimeLocal         types.TimeString
	EndTimeLocal           types.TimeString
	SlotGranularityMinutes int
	BufferBeforeMinutes    int
	BufferAfterMinutes     int
	MaxBookingsPerDay      *int
	MinLeadTimeMinutes     int
	IsActive               bool
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// ApplyDefaults fills empty optional fields of a new rule
func (r *AvailabilityRule) ApplyDefaults() {
	if r.Timezone == "" {
		r.Timezone = DefaultTimezone
	}
	if r.SlotGranularityMinutes == 0 {
		r.SlotGranularityMinutes = DefaultSlotGranularityMinutes
	}
}

// Validate checks the rule invariants
func (r *AvailabilityRule) Validate() error {
	verr := NewValidationError()

	if _, err := time.LoadLocation(r.Timezone); err != nil || r.Timezone == "" || len(r.Timezone) > MaxTimezoneLength {
		verr.Add("timezone", "Unknown timezone.")
	}
	if r.DayOfWeek < 0 || r.DayOfWeek > 6 {
		verr.Add("day_of_week", "day_of_week must be between 0 and 6.")
	}

	if r.StartTimeLocal.IsZero() {
		verr.Add("start_time_local", "This field is required.")
	}
	if r.EndTimeLocal.IsZero() {
		verr.Add("end_time_local", "This field is required.")
	}
	if !r.StartTimeLocal.IsZero() && !r.EndTimeLocal.IsZero() && !r.StartTimeLocal.IsBefore(r.EndTimeLocal) {
		verr.Add("end_time_local", "end_time_local must be after start_time_local.")
	}

	if r.SlotGranularityMinutes <= 0 {
		verr.Add("slot_granularity_minutes", "slot_granularity_minutes must be > 0.")
	}
	if r.BufferBeforeMinutes < 0 {
		verr.Add("buffer_before_minutes", "Ensure this value is greater than or equal to 0.")
	}
	if r.BufferAfterMinutes < 0 {
		verr.Add("buffer_after_minutes", "Ensure this value is greater than or equal to 0.")
	}
	if r.MaxBookingsPerDay != nil && *r.MaxBookingsPerDay < 0 {
		verr.Add("max_bookings_per_day", "Ensure this value is greater than or equal to 0.")
	}
	if r.MinLeadTimeMinutes < 0 {
		verr.Add("min_lead_time_minutes", "Ensure this value is greater than or equal to 0.")
	}

	return verr.ErrOrNil()
}

// BlackoutPeriod is an ad-hoc range excluded from the public availability view
type BlackoutPeriod struct {
	ID        int64
	StartAt   time.Time
	EndAt     time.Time
	Reason    *string
	CreatedBy *string
	CreatedAt time.Time
}

func (b *BlackoutPeriod) Interval() Interval {
	return Interval{Start: b.StartAt, End: b.EndAt}
}

// Validate checks the blackout invariants
func (b *BlackoutPeriod) Validate() error {
	verr := NewValidationError()

	if b.StartAt.IsZero() {
		verr.Add("start_at", "This field is required.")
	}
	if b.EndAt.IsZero() {
		verr.Add("end_at", "This field is required.")
	}
	if !b.StartAt.IsZero() && !b.EndAt.IsZero() && !b.Interval().Valid() {
		verr.Add("end_at", "end_at must be after start_at.")
	}
	if b.Reason != nil && len(*b.Reason) > MaxReasonLength {
		verr.Add("reason", "Ensure this field has no more than 200 characters.")
	}

	return verr.ErrOrNil()
}
