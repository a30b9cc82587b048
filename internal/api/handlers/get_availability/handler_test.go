package get_availability

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ConsultingBooking/internal/domain"
	getAvailability "github.com/m04kA/SMC-ConsultingBooking/internal/usecase/get_availability"
	"github.com/m04kA/SMC-ConsultingBooking/pkg/logger"
	"github.com/m04kA/SMC-ConsultingBooking/pkg/ptr"
)

type useCaseMock struct{ mock.Mock }

func (m *useCaseMock) Execute(ctx context.Context, req *getAvailability.Request) (*getAvailability.Response, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*getAvailability.Response)
	return resp, args.Error(1)
}

func get(h *Handler, url string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, url, nil))
	return rec
}

func TestHandle_DefaultDays(t *testing.T) {
	uc := &useCaseMock{}
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	uc.On("Execute", mock.Anything, &getAvailability.Request{Start: start, Days: domain.DefaultAvailabilityDays}).
		Return(&getAvailability.Response{
			Range: domain.Interval{Start: start, End: start.AddDate(0, 0, 14)},
			Blackouts: []*domain.BlackoutPeriod{{
				StartAt: start, EndAt: start.Add(12 * time.Hour), Reason: ptr.Ptr("holiday"),
			}},
			Confirmed: []*domain.BookingRequest{{
				Email:            "hidden@example.com",
				RequestedStartAt: start.Add(34 * time.Hour), RequestedEndAt: start.Add(35 * time.Hour),
			}},
		}, nil)

	rec := get(NewHandler(uc, logger.Discard()), "/api/v1/booking/availability/?start=2026-03-01")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"range": {"start": "2026-03-01T00:00:00Z", "end": "2026-03-15T00:00:00Z"},
		"blackouts": [{"start_at": "2026-03-01T00:00:00Z", "end_at": "2026-03-01T12:00:00Z", "reason": "holiday"}],
		"confirmed": [{"requested_start_at": "2026-03-02T10:00:00Z", "requested_end_at": "2026-03-02T11:00:00Z"}]
	}`, rec.Body.String())
	uc.AssertExpectations(t)
}

func TestHandle_MissingStart(t *testing.T) {
	uc := &useCaseMock{}

	rec := get(NewHandler(uc, logger.Discard()), "/api/v1/booking/availability/?days=7")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "start is required (YYYY-MM-DD).")
	assert.Contains(t, rec.Body.String(), `"start"`)
	uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

func TestHandle_ParsesParams(t *testing.T) {
	uc := &useCaseMock{}
	uc.On("Execute", mock.Anything, &getAvailability.Request{Start: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), Days: 3}).
		Return(&getAvailability.Response{}, nil)

	rec := get(NewHandler(uc, logger.Discard()), "/?start=2026-04-01&days=3")
	assert.Equal(t, http.StatusOK, rec.Code)
	uc.AssertExpectations(t)
}

func TestHandle_InvalidParams(t *testing.T) {
	uc := &useCaseMock{}
	uc.On("Execute", mock.Anything, mock.Anything).Return(nil, domain.FieldError("days", "days must be between 1 and 90."))
	h := NewHandler(uc, logger.Discard())

	assert.Equal(t, http.StatusBadRequest, get(h, "/?start=01.04.2026").Code)
	assert.Equal(t, http.StatusBadRequest, get(h, "/?start=2026-04-01&days=many").Code)

	rec := get(h, "/?start=2026-04-01&days=365")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "days must be between 1 and 90.")
}
