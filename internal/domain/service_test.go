package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsultingService_AllowsDuration(t *testing.T) {
	open := &ConsultingService{}
	assert.True(t, open.AllowsDuration(45))
	assert.False(t, open.AllowsDuration(0))

	restricted := &ConsultingService{AllowedDurationsMinutes: []int{30, 60}}
	assert.True(t, restricted.AllowsDuration(60))
	assert.False(t, restricted.AllowsDuration(45))
}

func TestConsultingService_AllowsMode(t *testing.T) {
	open := &ConsultingService{}
	assert.True(t, open.AllowsMode(MeetingZoom))
	assert.False(t, open.AllowsMode("SKYPE"))

	restricted := &ConsultingService{MeetingModes: []MeetingMode{MeetingTeams}}
	assert.True(t, restricted.AllowsMode(MeetingTeams))
	assert.False(t, restricted.AllowsMode(MeetingZoom))
}

func TestConsultingService_Validate(t *testing.T) {
	s := &ConsultingService{Slug: "strategy-session", Name: "Strategy session"}
	s.ApplyDefaults()
	require.NoError(t, s.Validate())
	assert.Equal(t, DefaultDurationMinutes, s.DefaultDurationMinutes)
	assert.Equal(t, "USD", s.Currency)
	assert.Equal(t, ServiceDraft, s.Status)

	bad := &ConsultingService{
		Slug:                    "Not A Slug",
		DefaultDurationMinutes:  -5,
		AllowedDurationsMinutes: []int{30, 0},
		MeetingModes:            []MeetingMode{"FAX"},
		Currency:                "usd",
		Status:                  "LIVE",
	}
	err := bad.Validate()

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	for _, field := range []string{"slug", "name", "default_duration_minutes", "allowed_durations_minutes", "meeting_modes", "currency", "status"} {
		assert.Contains(t, verr.Fields, field)
	}
}
