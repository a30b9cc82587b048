package domain

import "time"

// Interval is a half-open time range [Start, End)
type Interval struct {
	Start time.Time
	End   time.Time
}

// Valid reports whether Start is strictly before End
func (i Interval) Valid() bool {
	return i.Start.Before(i.End)
}

// Overlaps reports whether i and other share at least one instant.
// Ranges that only touch at an endpoint do not overlap.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && i.End.After(other.Start)
}

// Duration length of the interval
func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}
