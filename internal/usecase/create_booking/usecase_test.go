package create_booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ConsultingBooking/internal/domain"
	"github.com/m04kA/SMC-ConsultingBooking/internal/infra/storage/memory"
	"github.com/m04kA/SMC-ConsultingBooking/pkg/clock"
	"github.com/m04kA/SMC-ConsultingBooking/pkg/logger"
	"github.com/m04kA/SMC-ConsultingBooking/pkg/ptr"
)

var now = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func setup(t *testing.T, svc *domain.ConsultingService) (*UseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore(clock.NewManual(now))
	_, err := store.Services().Create(context.Background(), svc)
	require.NoError(t, err)

	uc := NewUseCase(store.Services(), store.Bookings(), clock.NewManual(now), logger.Discard())
	return uc, store
}

func strategySession() *domain.ConsultingService {
	return &domain.ConsultingService{
		Slug:                    "strategy-session",
		Name:                    "Strategy session",
		DefaultDurationMinutes:  60,
		AllowedDurationsMinutes: []int{30, 60},
		Currency:                "USD",
		MeetingModes:            []domain.MeetingMode{domain.MeetingGoogleMeet, domain.MeetingZoom},
		Status:                  domain.ServicePublished,
	}
}

func validRequest() *Request {
	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	return &Request{
		ServiceSlug:      "strategy-session",
		FullName:         "Jane Doe",
		Email:            "jane@example.com",
		Timezone:         "Europe/Berlin",
		RequestedStartAt: &start,
		MeetingMode:      string(domain.MeetingGoogleMeet),
	}
}

func fieldErrors(t *testing.T, err error) map[string]string {
	t.Helper()
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr), "expected validation error, got %v", err)
	return verr.Fields
}

func TestExecute_CreatesRequestedBooking(t *testing.T) {
	uc, store := setup(t, strategySession())

	b, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, domain.StatusRequested, b.Status)
	assert.Equal(t, 60, b.DurationMinutes)
	assert.Equal(t, b.RequestedStartAt.Add(60*time.Minute), b.RequestedEndAt)
	assert.Equal(t, "strategy-session", b.ServiceSlug)
	assert.Equal(t, "Europe/Berlin", b.Timezone)
	assert.Len(t, b.PublicID, domain.PublicIDLength)

	// Слот на этапе заявки не создается
	assert.Empty(t, store.Slots().AllSlots(context.Background()))

	stored, err := store.Bookings().GetByPublicID(context.Background(), b.PublicID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, stored.ID)
}

func TestExecute_EndIsStartPlusDuration(t *testing.T) {
	uc, _ := setup(t, strategySession())

	req := validRequest()
	req.DurationMinutes = ptr.Ptr(30)
	req.Timezone = ""

	b, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 30, b.DurationMinutes)
	assert.Equal(t, req.RequestedStartAt.Add(30*time.Minute), b.RequestedEndAt)
	assert.Equal(t, domain.DefaultTimezone, b.Timezone)
}

func TestExecute_ValidationErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *Request)
		field  string
	}{
		{"past start", func(r *Request) { r.RequestedStartAt = ptr.Ptr(now.Add(-time.Hour)) }, "requested_start_at"},
		{"missing start", func(r *Request) { r.RequestedStartAt = nil }, "requested_start_at"},
		{"duration not allowed", func(r *Request) { r.DurationMinutes = ptr.Ptr(45) }, "duration_minutes"},
		{"non-positive duration", func(r *Request) { r.DurationMinutes = ptr.Ptr(-15) }, "duration_minutes"},
		{"mode not offered", func(r *Request) { r.MeetingMode = string(domain.MeetingPhone) }, "meeting_mode"},
		{"unknown mode", func(r *Request) { r.MeetingMode = "CARRIER_PIGEON" }, "meeting_mode"},
		{"bad email", func(r *Request) { r.Email = "not-an-email" }, "email"},
		{"missing name", func(r *Request) { r.FullName = "  " }, "full_name"},
		{"bad timezone", func(r *Request) { r.Timezone = "Mars/Olympus" }, "timezone"},
		{"unknown service", func(r *Request) { r.ServiceSlug = "nope" }, "service"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, _ := setup(t, strategySession())
			req := validRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			require.Error(t, err)
			assert.Contains(t, fieldErrors(t, err), tt.field)
		})
	}
}

func TestExecute_RejectsDurationOverflow(t *testing.T) {
	svc := strategySession()
	svc.AllowedDurationsMinutes = nil
	uc, store := setup(t, svc)

	for _, minutes := range []int{domain.MaxDayMinutes + 1, 200000000} {
		req := validRequest()
		req.DurationMinutes = ptr.Ptr(minutes)

		_, err := uc.Execute(context.Background(), req)
		require.Error(t, err)
		assert.Contains(t, fieldErrors(t, err), "duration_minutes")
	}

	bookings, err := store.Bookings().List(context.Background(), domain.BookingFilter{})
	require.NoError(t, err)
	assert.Empty(t, bookings)

	// ровно сутки допустимы
	req := validRequest()
	req.DurationMinutes = ptr.Ptr(domain.MaxDayMinutes)
	b, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, req.RequestedStartAt.Add(24*time.Hour), b.RequestedEndAt)
}

func TestExecute_ServiceNotBookable(t *testing.T) {
	svc := strategySession()
	svc.Status = domain.ServiceDraft
	uc, _ := setup(t, svc)

	_, err := uc.Execute(context.Background(), validRequest())
	require.Error(t, err)
	assert.Equal(t, "Service is not available for booking.", fieldErrors(t, err)["service"])
}

func TestExecute_RetriesPublicIDCollision(t *testing.T) {
	uc, store := setup(t, strategySession())

	ids := []string{"aaaaaaaaaaaa", "aaaaaaaaaaaa", "bbbbbbbbbbbb"}
	calls := 0
	uc.newPublicID = func() (string, error) {
		id := ids[calls]
		calls++
		return id, nil
	}

	first, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, "aaaaaaaaaaaa", first.PublicID)

	second, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, "bbbbbbbbbbbb", second.PublicID)
	assert.Equal(t, 3, calls)

	all, err := store.Bookings().List(context.Background(), domain.BookingFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestExecute_PublicIDCollisionsExhausted(t *testing.T) {
	uc, _ := setup(t, strategySession())
	uc.newPublicID = func() (string, error) { return "aaaaaaaaaaaa", nil }

	_, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrPublicIDCollision)
}
