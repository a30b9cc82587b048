package domain

import "time"

// SlotStatus represents the status of a booking slot
type SlotStatus string

const (
	SlotHeld      SlotStatus = "HELD"
	SlotConfirmed SlotStatus = "CONFIRMED"
	SlotReleased  SlotStatus = "RELEASED"
)

// ActiveSlotStatuses statuses that occupy the schedule
var ActiveSlotStatuses = []SlotStatus{SlotHeld, SlotConfirmed}

// BookingSlot is the time reservation owned by a confirmed booking request
type BookingSlot struct {
	ID               int64
	BookingRequestID int64
	StartAt          time.Time
	EndAt            time.Time
	Status           SlotStatus
	HoldExpiresAt    *time.Time // not set by any code path yet, held slots are never created
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NewConfirmedSlot builds the slot for b covering its requested range
func NewConfirmedSlot(b *BookingRequest) *BookingSlot {
	return &BookingSlot{
		BookingRequestID: b.ID,
		StartAt:          b.RequestedStartAt,
		EndAt:            b.RequestedEndAt,
		Status:           SlotConfirmed,
	}
}

// IsActive returns true if the slot blocks its range
func (s *BookingSlot) IsActive() bool {
	switch s.Status {
	case SlotHeld, SlotConfirmed:
		return true
	case SlotReleased:
		return false
	default:
		return false
	}
}

func (s *BookingSlot) Interval() Interval {
	return Interval{Start: s.StartAt, End: s.EndAt}
}
