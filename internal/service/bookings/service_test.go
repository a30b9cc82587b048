package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ConsultingBooking/internal/domain"
	"github.com/m04kA/SMC-ConsultingBooking/internal/infra/storage/memory"
	"github.com/m04kA/SMC-ConsultingBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-ConsultingBooking/pkg/clock"
	"github.com/m04kA/SMC-ConsultingBooking/pkg/logger"
)

var now = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func seed(t *testing.T) *Service {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore(clock.NewManual(now))

	svc, err := store.Services().Create(ctx, &domain.ConsultingService{
		Slug: "strategy-session", Name: "Strategy session", DefaultDurationMinutes: 60,
		Currency: "USD", Status: domain.ServicePublished,
	})
	require.NoError(t, err)

	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	for _, b := range []struct {
		publicID, email string
		status          domain.BookingStatus
	}{
		{"aaaaaaaaaaaa", "jane@example.com", domain.StatusRequested},
		{"bbbbbbbbbbbb", "john@example.com", domain.StatusConfirmed},
	} {
		_, err := store.Bookings().Create(ctx, &domain.BookingRequest{
			PublicID: b.publicID, ServiceID: svc.ID, Status: b.status,
			FullName: "Someone", Email: b.email, Timezone: "UTC", DurationMinutes: 60,
			RequestedStartAt: start, RequestedEndAt: start.Add(time.Hour), MeetingMode: domain.MeetingZoom,
		})
		require.NoError(t, err)
	}

	return NewService(store.Bookings(), logger.Discard())
}

func TestService_GetByPublicID(t *testing.T) {
	s := seed(t)

	b, err := s.GetByPublicID(context.Background(), "aaaaaaaaaaaa")
	require.NoError(t, err)
	assert.Equal(t, "strategy-session", b.ServiceSlug)

	_, err = s.GetByPublicID(context.Background(), "missing00000")
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestService_List(t *testing.T) {
	s := seed(t)

	all, err := s.List(context.Background(), &models.ListRequest{})
	require.NoError(t, err)
	assert.Len(t, all.Results, 2)
	assert.Equal(t, domain.DefaultListLimit, all.Limit)

	confirmed, err := s.List(context.Background(), &models.ListRequest{Status: "confirmed"})
	require.NoError(t, err)
	require.Len(t, confirmed.Results, 1)
	assert.Equal(t, "bbbbbbbbbbbb", confirmed.Results[0].PublicID)

	byEmail, err := s.List(context.Background(), &models.ListRequest{Email: "JANE@example.com"})
	require.NoError(t, err)
	require.Len(t, byEmail.Results, 1)
	assert.Equal(t, "aaaaaaaaaaaa", byEmail.Results[0].PublicID)
}

func TestService_ListInvalidFilter(t *testing.T) {
	s := seed(t)

	_, err := s.List(context.Background(), &models.ListRequest{Status: "PENDING", StartFrom: "yesterday", Limit: "-1"})
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "status")
	assert.Contains(t, verr.Fields, "start_from")
	assert.Contains(t, verr.Fields, "limit")
}
