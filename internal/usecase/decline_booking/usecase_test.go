package decline_booking

import (
	"context"
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

func setup(t *testing.T, status domain.BookingStatus) (*UseCase, *memory.Store, *domain.BookingRequest) {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore(clock.NewManual(now))

	svc, err := store.Services().Create(ctx, &domain.ConsultingService{
		Slug: "strategy-session", Name: "Strategy session", DefaultDurationMinutes: 60,
		Currency: "USD", Status: domain.ServicePublished,
	})
	require.NoError(t, err)

	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	b, err := store.Bookings().Create(ctx, &domain.BookingRequest{
		PublicID: "aaaaaaaaaaaa", ServiceID: svc.ID, Status: status,
		FullName: "Jane Doe", Email: "jane@example.com", Timezone: "UTC", DurationMinutes: 60,
		RequestedStartAt: start, RequestedEndAt: start.Add(time.Hour), MeetingMode: domain.MeetingZoom,
	})
	require.NoError(t, err)

	return NewUseCase(store.Bookings(), store.TxManager(), clock.NewManual(now), logger.Discard()), store, b
}

func TestExecute_DeclinesRequested(t *testing.T) {
	uc, store, b := setup(t, domain.StatusRequested)

	got, err := uc.Execute(context.Background(), &Request{PublicID: b.PublicID, Actor: "staff-1", AdminNotes: ptr.Ptr("fully booked")})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDeclined, got.Status)
	assert.Equal(t, "staff-1", *got.HandledBy)
	assert.Equal(t, now, *got.HandledAt)

	stored, err := store.Bookings().GetByPublicID(context.Background(), b.PublicID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDeclined, stored.Status)
	assert.Equal(t, "fully booked", *stored.AdminNotes)
	assert.Empty(t, store.Slots().AllSlots(context.Background()))
}

func TestExecute_OnlyFromRequested(t *testing.T) {
	for _, status := range []domain.BookingStatus{domain.StatusConfirmed, domain.StatusDeclined, domain.StatusCancelledByAdmin} {
		t.Run(string(status), func(t *testing.T) {
			uc, store, b := setup(t, status)

			_, err := uc.Execute(context.Background(), &Request{PublicID: b.PublicID, Actor: "staff-1"})
			assert.ErrorIs(t, err, domain.ErrInvalidTransition)

			stored, err := store.Bookings().GetByPublicID(context.Background(), b.PublicID)
			require.NoError(t, err)
			assert.Equal(t, status, stored.Status)
		})
	}
}

func TestExecute_NotFound(t *testing.T) {
	uc, _, _ := setup(t, domain.StatusRequested)

	_, err := uc.Execute(context.Background(), &Request{PublicID: "missing00000", Actor: "staff-1"})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}
