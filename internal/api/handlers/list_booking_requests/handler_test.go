package list_booking_requests

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-ConsultingBooking/internal/domain"
	"github.com/m04kA/SMC-ConsultingBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-ConsultingBooking/pkg/logger"
)

type serviceMock struct{ mock.Mock }

func (m *serviceMock) List(ctx context.Context, req *models.ListRequest) (*models.AdminBookingList, error) {
	args := m.Called(ctx, req)
	list, _ := args.Get(0).(*models.AdminBookingList)
	return list, args.Error(1)
}

func TestHandle_PassesQuery(t *testing.T) {
	svc := &serviceMock{}
	svc.On("List", mock.Anything, &models.ListRequest{Status: "CONFIRMED", Query: "acme", Limit: "10"}).
		Return(&models.AdminBookingList{Results: []*models.AdminBooking{}, Limit: 10}, nil)

	rec := httptest.NewRecorder()
	NewHandler(svc, logger.Discard()).Handle(rec,
		httptest.NewRequest(http.MethodGet, "/api/v1/booking/admin/requests/?status=CONFIRMED&q=acme&limit=10", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"results":[],"limit":10,"offset":0}`, rec.Body.String())
	svc.AssertExpectations(t)
}

func TestHandle_InvalidParams(t *testing.T) {
	svc := &serviceMock{}
	svc.On("List", mock.Anything, mock.Anything).Return(nil, domain.FieldError("status", "Select a valid choice."))

	rec := httptest.NewRecorder()
	NewHandler(svc, logger.Discard()).Handle(rec, httptest.NewRequest(http.MethodGet, "/?status=NOPE", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "status")
}
