package get_booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ConsultingBooking/internal/domain"
	"github.com/m04kA/SMC-ConsultingBooking/internal/service/bookings"
	"github.com/m04kA/SMC-ConsultingBooking/pkg/logger"
	"github.com/m04kA/SMC-ConsultingBooking/pkg/ptr"
)

type serviceMock struct{ mock.Mock }

func (m *serviceMock) GetByPublicID(ctx context.Context, publicID string) (*domain.BookingRequest, error) {
	args := m.Called(ctx, publicID)
	b, _ := args.Get(0).(*domain.BookingRequest)
	return b, args.Error(1)
}

func booking() *domain.BookingRequest {
	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	return &domain.BookingRequest{
		ID: 7, PublicID: "aaaaaaaaaaaa", ServiceSlug: "strategy-session", Status: domain.StatusRequested,
		FullName: "Jane Doe", Email: "jane@example.com", DurationMinutes: 60,
		RequestedStartAt: start, RequestedEndAt: start.Add(time.Hour), AdminNotes: ptr.Ptr("vip"),
	}
}

func call(handle http.HandlerFunc, publicID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = mux.SetURLVars(req, map[string]string{"publicId": publicID})
	rec := httptest.NewRecorder()
	handle(rec, req)
	return rec
}

func TestHandle_PublicAndAdminRepresentations(t *testing.T) {
	svc := &serviceMock{}
	svc.On("GetByPublicID", mock.Anything, "aaaaaaaaaaaa").Return(booking(), nil)
	h := NewHandler(svc, logger.Discard())

	var public map[string]interface{}
	rec := call(h.HandlePublic, "aaaaaaaaaaaa")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &public))
	assert.NotContains(t, public, "admin_notes")
	assert.NotContains(t, public, "id")

	var admin map[string]interface{}
	rec = call(h.HandleAdmin, "aaaaaaaaaaaa")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &admin))
	assert.Equal(t, "vip", admin["admin_notes"])
	assert.Equal(t, "jane@example.com", admin["email"])
	assert.NotContains(t, admin, "id")
}

func TestHandle_NotFound(t *testing.T) {
	svc := &serviceMock{}
	svc.On("GetByPublicID", mock.Anything, "missing").Return(nil, bookings.ErrBookingNotFound)

	rec := call(NewHandler(svc, logger.Discard()).HandlePublic, "missing")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"detail":"Not found."}`, rec.Body.String())
}
