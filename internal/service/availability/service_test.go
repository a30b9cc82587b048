package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ConsultingBooking/internal/domain"
	"github.com/m04kA/SMC-ConsultingBooking/internal/infra/storage/memory"
	"github.com/m04kA/SMC-ConsultingBooking/internal/service/availability/models"
	"github.com/m04kA/SMC-ConsultingBooking/pkg/clock"
	"github.com/m04kA/SMC-ConsultingBooking/pkg/logger"
	"github.com/m04kA/SMC-ConsultingBooking/pkg/ptr"
)

var now = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func newService() *Service {
	store := memory.NewStore(clock.NewManual(now))
	return NewService(store.Availability(), logger.Discard())
}

func validationFields(t *testing.T, err error) map[string]string {
	t.Helper()
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr), "expected validation error, got %v", err)
	return verr.Fields
}

func TestService_RuleLifecycle(t *testing.T) {
	s := newService()
	ctx := context.Background()

	created, err := s.CreateRule(ctx, &models.RuleRequest{
		DayOfWeek: ptr.Ptr(0), StartTimeLocal: "09:00", EndTimeLocal: "17:00",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultTimezone, created.Timezone)
	assert.Equal(t, domain.DefaultSlotGranularityMinutes, created.SlotGranularityMinutes)
	assert.Equal(t, domain.DefaultMinLeadTimeMinutes, created.MinLeadTimeMinutes)
	assert.True(t, created.IsActive)
	assert.Equal(t, "09:00", created.StartTimeLocal)

	_, err = s.CreateRule(ctx, &models.RuleRequest{DayOfWeek: ptr.Ptr(0), StartTimeLocal: "08:00", EndTimeLocal: "08:30"})
	require.NoError(t, err)

	rules, err := s.ListRules(ctx)
	require.NoError(t, err)
	require.Len(t, rules, 2)
	assert.Equal(t, "08:00", rules[0].StartTimeLocal)

	updated, err := s.UpdateRule(ctx, created.ID, &models.RuleRequest{
		Timezone: "Europe/Berlin", DayOfWeek: ptr.Ptr(4), StartTimeLocal: "10:00", EndTimeLocal: "12:00",
		IsActive: ptr.Ptr(false),
	})
	require.NoError(t, err)
	assert.Equal(t, 4, updated.DayOfWeek)
	assert.False(t, updated.IsActive)

	require.NoError(t, s.DeleteRule(ctx, created.ID))
	_, err = s.GetRule(ctx, created.ID)
	assert.ErrorIs(t, err, ErrRuleNotFound)
	assert.ErrorIs(t, s.DeleteRule(ctx, created.ID), ErrRuleNotFound)
}

func TestService_RuleValidation(t *testing.T) {
	s := newService()

	_, err := s.CreateRule(context.Background(), &models.RuleRequest{
		Timezone: "Nowhere/City", DayOfWeek: ptr.Ptr(7), StartTimeLocal: "17:00", EndTimeLocal: "09:00",
	})
	fields := validationFields(t, err)
	assert.Contains(t, fields, "timezone")
	assert.Contains(t, fields, "day_of_week")
	assert.Equal(t, "end_time_local must be after start_time_local.", fields["end_time_local"])

	_, err = s.CreateRule(context.Background(), &models.RuleRequest{StartTimeLocal: "9am"})
	fields = validationFields(t, err)
	assert.Equal(t, "This field is required.", fields["day_of_week"])
	assert.Equal(t, "Time has wrong format. Use HH:MM.", fields["start_time_local"])
	assert.Equal(t, "This field is required.", fields["end_time_local"])
}

func TestService_BlackoutLifecycle(t *testing.T) {
	s := newService()
	ctx := context.Background()

	created, err := s.CreateBlackout(ctx, &models.BlackoutRequest{
		StartAt: "2026-03-10T00:00:00Z", EndAt: "2026-03-11T00:00:00Z", Reason: ptr.Ptr("conference"),
	}, "staff-1")
	require.NoError(t, err)
	assert.Equal(t, "staff-1", *created.CreatedBy)

	later, err := s.CreateBlackout(ctx, &models.BlackoutRequest{
		StartAt: "2026-04-01T00:00:00+02:00", EndAt: "2026-04-02T00:00:00+02:00",
	}, "staff-2")
	require.NoError(t, err)
	assert.Equal(t, "2026-03-31T22:00:00Z", later.StartAt)

	list, err := s.ListBlackouts(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, later.ID, list[0].ID)

	updated, err := s.UpdateBlackout(ctx, created.ID, &models.BlackoutRequest{
		StartAt: "2026-03-10T00:00:00Z", EndAt: "2026-03-12T00:00:00Z",
	})
	require.NoError(t, err)
	assert.Equal(t, "2026-03-12T00:00:00Z", updated.EndAt)
	assert.Equal(t, "staff-1", *updated.CreatedBy)

	require.NoError(t, s.DeleteBlackout(ctx, created.ID))
	_, err = s.GetBlackout(ctx, created.ID)
	assert.ErrorIs(t, err, ErrBlackoutNotFound)
}

func TestService_BlackoutValidation(t *testing.T) {
	s := newService()

	_, err := s.CreateBlackout(context.Background(), &models.BlackoutRequest{
		StartAt: "2026-03-11T00:00:00Z", EndAt: "2026-03-10T00:00:00Z",
	}, "staff-1")
	assert.Equal(t, "end_at must be after start_at.", validationFields(t, err)["end_at"])

	_, err = s.CreateBlackout(context.Background(), &models.BlackoutRequest{StartAt: "tomorrow"}, "staff-1")
	fields := validationFields(t, err)
	assert.Equal(t, "Datetime has wrong format. Use RFC3339.", fields["start_at"])
	assert.Equal(t, "This field is required.", fields["end_at"])
}
