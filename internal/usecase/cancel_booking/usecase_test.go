package cancel_booking

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

type metricsStub struct{ by []string }

func (m *metricsStub) IncCancel(by string) { m.by = append(m.by, by) }

func setup(t *testing.T, status domain.BookingStatus, withSlot bool) (*UseCase, *memory.Store, *domain.BookingRequest, *metricsStub) {
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

	if withSlot {
		_, err = store.Slots().Create(ctx, domain.NewConfirmedSlot(b))
		require.NoError(t, err)
	}

	m := &metricsStub{}
	uc := NewUseCase(store.Bookings(), store.Slots(), store.TxManager(), m, clock.NewManual(now), logger.Discard())
	return uc, store, b, m
}

func TestExecute_AdminCancelReleasesSlot(t *testing.T) {
	uc, store, b, m := setup(t, domain.StatusConfirmed, true)

	got, err := uc.Execute(context.Background(), &Request{PublicID: b.PublicID, ByAdmin: true, Actor: ptr.Ptr("staff-1")})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCancelledByAdmin, got.Status)
	assert.Equal(t, now, *got.CancelledAt)
	assert.Equal(t, "staff-1", *got.HandledBy)

	slot, err := store.Slots().GetByBookingRequestID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SlotReleased, slot.Status)
	assert.Equal(t, []string{"admin"}, m.by)
}

func TestExecute_RequesterCancelRequested(t *testing.T) {
	uc, store, b, m := setup(t, domain.StatusRequested, false)

	got, err := uc.Execute(context.Background(), &Request{PublicID: b.PublicID})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelledByRequester, got.Status)
	assert.Nil(t, got.HandledBy)

	stored, err := store.Bookings().GetByPublicID(context.Background(), b.PublicID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelledByRequester, stored.Status)
	assert.Equal(t, []string{"requester"}, m.by)
}

func TestExecute_Idempotent(t *testing.T) {
	uc, _, b, m := setup(t, domain.StatusConfirmed, true)

	first, err := uc.Execute(context.Background(), &Request{PublicID: b.PublicID})
	require.NoError(t, err)

	second, err := uc.Execute(context.Background(), &Request{PublicID: b.PublicID, ByAdmin: true, Actor: ptr.Ptr("staff-1")})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCancelledByRequester, second.Status)
	assert.Equal(t, first.CancelledAt, second.CancelledAt)
	assert.Len(t, m.by, 1)
}

func TestExecute_TerminalStatusUntouched(t *testing.T) {
	for _, status := range []domain.BookingStatus{domain.StatusDeclined, domain.StatusCompleted} {
		t.Run(string(status), func(t *testing.T) {
			uc, _, b, m := setup(t, status, false)

			got, err := uc.Execute(context.Background(), &Request{PublicID: b.PublicID, ByAdmin: true})
			require.NoError(t, err)
			assert.Equal(t, status, got.Status)
			assert.Nil(t, got.CancelledAt)
			assert.Empty(t, m.by)
		})
	}
}

func TestExecute_NotFound(t *testing.T) {
	uc, _, _, _ := setup(t, domain.StatusRequested, false)

	_, err := uc.Execute(context.Background(), &Request{PublicID: "missing00000"})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}
