package domain

import (
	"fmt"
	"time"
)

// BookingStatus represents the status of a booking request
type BookingStatus string

const (
	StatusRequested            BookingStatus = "REQUESTED"
	StatusConfirmed            BookingStatus = "CONFIRMED"
	StatusDeclined             BookingStatus = "DECLINED"
	StatusCancelledByRequester BookingStatus = "CANCELLED_BY_REQUESTER"
	StatusCancelledByAdmin     BookingStatus = "CANCELLED_BY_ADMIN"
	StatusCompleted            BookingStatus = "COMPLETED"
)

// BookingStatuses all known statuses in lifecycle order
var BookingStatuses = []BookingStatus{
	StatusRequested,
	StatusConfirmed,
	StatusDeclined,
	StatusCancelledByRequester,
	StatusCancelledByAdmin,
	StatusCompleted,
}

// ParseBookingStatus converts s into a BookingStatus
func ParseBookingStatus(s string) (BookingStatus, error) {
	status := BookingStatus(s)
	if !status.Valid() {
		return "", fmt.Errorf("unknown booking status %q", s)
	}
	return status, nil
}

// Valid returns true for a known status
func (s BookingStatus) Valid() bool {
	switch s {
	case StatusRequested, StatusConfirmed, StatusDeclined,
		StatusCancelledByRequester, StatusCancelledByAdmin, StatusCompleted:
		return true
	default:
		return false
	}
}

// IsTerminal returns true if no further transition is possible
func (s BookingStatus) IsTerminal() bool {
	switch s {
	case StatusDeclined, StatusCancelledByRequester, StatusCancelledByAdmin, StatusCompleted:
		return true
	case StatusRequested, StatusConfirmed:
		return false
	default:
		return false
	}
}

// CanTransition returns true if the state machine allows s -> to
func (s BookingStatus) CanTransition(to BookingStatus) bool {
	switch s {
	case StatusRequested:
		switch to {
		case StatusConfirmed, StatusDeclined, StatusCancelledByRequester, StatusCancelledByAdmin:
			return true
		}
	case StatusConfirmed:
		switch to {
		case StatusCancelledByRequester, StatusCancelledByAdmin, StatusCompleted:
			return true
		}
	case StatusDeclined, StatusCancelledByRequester, StatusCancelledByAdmin, StatusCompleted:
		return false
	}
	return false
}

// BookingRequest represents a prospective consulting meeting
type BookingRequest struct {
	ID          int64 // internal, never exposed over the API
	PublicID    string
	ServiceID   int64
	ServiceSlug string // denormalized for representations
	Status      BookingStatus

	// Requester contact data
	FullName string
	Email    string
	Company  *string
	Role     *string
	Phone    *string

	Timezone         string
	DurationMinutes  int
	RequestedStartAt time.Time
	RequestedEndAt   time.Time
	MeetingMode      MeetingMode
	ProblemStatement *string

	AdminNotes  *string
	MeetingURL  *string
	HandledBy   *string // subject of the staff actor
	HandledAt   *time.Time
	ConfirmedAt *time.Time
	CancelledAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Interval returns the requested time range
func (b *BookingRequest) Interval() Interval {
	return Interval{Start: b.RequestedStartAt, End: b.RequestedEndAt}
}

// Confirm moves a REQUESTED booking to CONFIRMED and stamps the approver
func (b *BookingRequest) Confirm(approver string, meetingURL *string, now time.Time) error {
	if !b.Status.CanTransition(StatusConfirmed) {
		return &TransitionError{Action: "confirmed", From: b.Status}
	}

	b.Status = StatusConfirmed
	b.HandledBy = &approver
	b.HandledAt = &now
	b.ConfirmedAt = &now
	if meetingURL != nil && *meetingURL != "" {
		b.MeetingURL = meetingURL
	}
	return nil
}

// Decline moves a REQUESTED booking to DECLINED
func (b *BookingRequest) Decline(actor string, now time.Time) error {
	if b.Status != StatusRequested {
		return &TransitionError{Action: "declined", From: b.Status}
	}

	b.Status = StatusDeclined
	b.HandledBy = &actor
	b.HandledAt = &now
	return nil
}

// Cancel moves an active booking to CANCELLED_BY_ADMIN or CANCELLED_BY_REQUESTER.
// Terminal bookings are left untouched and false is returned.
func (b *BookingRequest) Cancel(byAdmin bool, actor *string, now time.Time) bool {
	target := StatusCancelledByRequester
	if byAdmin {
		target = StatusCancelledByAdmin
	}
	if b.Status.IsTerminal() || !b.Status.CanTransition(target) {
		return false
	}

	b.Status = target
	b.CancelledAt = &now
	if actor != nil {
		b.HandledBy = actor
		b.HandledAt = &now
	}
	return true
}

// BookingFilter фильтр для списка заявок в админке
type BookingFilter struct {
	Status      *BookingStatus
	Email       *string    // без учета регистра
	ServiceSlug *string    // без учета регистра
	StartFrom   *time.Time // requested_start_at >= StartFrom
	StartTo     *time.Time // requested_start_at <= StartTo
	Search      *string    // подстрока по имени, email, компании, роли, описанию и заметкам
	Limit       int
	Offset      int
}

// EffectiveLimit размер страницы с учетом значения по умолчанию и верхней границы
func (f BookingFilter) EffectiveLimit() int {
	switch {
	case f.Limit <= 0:
		return DefaultListLimit
	case f.Limit > MaxListLimit:
		return MaxListLimit
	default:
		return f.Limit
	}
}
