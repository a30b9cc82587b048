package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(hour, minute int) time.Time {
	return time.Date(2026, 3, 2, hour, minute, 0, 0, time.UTC)
}

func TestInterval_Overlaps(t *testing.T) {
	base := Interval{Start: at(10, 0), End: at(11, 0)}

	tests := []struct {
		name  string
		other Interval
		want  bool
	}{
		{"identical", Interval{at(10, 0), at(11, 0)}, true},
		{"partial tail", Interval{at(10, 30), at(11, 30)}, true},
		{"partial head", Interval{at(9, 30), at(10, 30)}, true},
		{"contained", Interval{at(10, 15), at(10, 45)}, true},
		{"containing", Interval{at(9, 0), at(12, 0)}, true},
		{"touching after", Interval{at(11, 0), at(12, 0)}, false},
		{"touching before", Interval{at(9, 0), at(10, 0)}, false},
		{"disjoint", Interval{at(13, 0), at(14, 0)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base.Overlaps(tt.other))
			assert.Equal(t, tt.want, tt.other.Overlaps(base))
		})
	}
}

func TestInterval_Valid(t *testing.T) {
	assert.True(t, Interval{at(10, 0), at(11, 0)}.Valid())
	assert.False(t, Interval{at(10, 0), at(10, 0)}.Valid())
	assert.False(t, Interval{at(11, 0), at(10, 0)}.Valid())
	assert.Equal(t, time.Hour, Interval{at(10, 0), at(11, 0)}.Duration())
}
