package blackout_periods

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-ConsultingBooking/internal/api/middleware"
	"github.com/m04kA/SMC-ConsultingBooking/internal/domain"
	"github.com/m04kA/SMC-ConsultingBooking/internal/service/availability"
	"github.com/m04kA/SMC-ConsultingBooking/internal/service/availability/models"
	"github.com/m04kA/SMC-ConsultingBooking/pkg/logger"
)

type serviceMock struct{ mock.Mock }

func (m *serviceMock) CreateBlackout(ctx context.Context, req *models.BlackoutRequest, actor string) (*models.BlackoutResponse, error) {
	args := m.Called(ctx, req, actor)
	resp, _ := args.Get(0).(*models.BlackoutResponse)
	return resp, args.Error(1)
}

func (m *serviceMock) GetBlackout(ctx context.Context, id int64) (*models.BlackoutResponse, error) {
	args := m.Called(ctx, id)
	resp, _ := args.Get(0).(*models.BlackoutResponse)
	return resp, args.Error(1)
}

func (m *serviceMock) ListBlackouts(ctx context.Context) ([]*models.BlackoutResponse, error) {
	args := m.Called(ctx)
	resp, _ := args.Get(0).([]*models.BlackoutResponse)
	return resp, args.Error(1)
}

func (m *serviceMock) UpdateBlackout(ctx context.Context, id int64, req *models.BlackoutRequest) (*models.BlackoutResponse, error) {
	args := m.Called(ctx, id, req)
	resp, _ := args.Get(0).(*models.BlackoutResponse)
	return resp, args.Error(1)
}

func (m *serviceMock) DeleteBlackout(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func request(method, id, body string) *http.Request {
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"id": id})
	return req.WithContext(middleware.WithActor(req.Context(), middleware.Actor{Subject: "ops@example.com", IsStaff: true}))
}

func TestCreate_RecordsActor(t *testing.T) {
	svc := &serviceMock{}
	svc.On("CreateBlackout", mock.Anything, mock.MatchedBy(func(req *models.BlackoutRequest) bool {
		return req.StartAt == "2026-03-02T00:00:00Z"
	}), "ops@example.com").Return(&models.BlackoutResponse{ID: 3}, nil)

	rec := httptest.NewRecorder()
	NewHandler(svc, logger.Discard()).Create(rec,
		request(http.MethodPost, "", `{"start_at":"2026-03-02T00:00:00Z","end_at":"2026-03-03T00:00:00Z"}`))

	assert.Equal(t, http.StatusCreated, rec.Code)
	svc.AssertExpectations(t)
}

func TestCreate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		err    error
		status int
	}{
		{name: "malformed body", body: `[`, status: http.StatusBadRequest},
		{name: "validation", body: `{}`, err: domain.FieldError("end_at", "End must be after start."), status: http.StatusBadRequest},
		{name: "internal", body: `{}`, err: availability.ErrInternal, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &serviceMock{}
			svc.On("CreateBlackout", mock.Anything, mock.Anything, mock.Anything).Return(nil, tt.err)

			rec := httptest.NewRecorder()
			NewHandler(svc, logger.Discard()).Create(rec, request(http.MethodPost, "", tt.body))
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestGetUpdateDelete(t *testing.T) {
	svc := &serviceMock{}
	svc.On("GetBlackout", mock.Anything, int64(3)).Return(&models.BlackoutResponse{ID: 3}, nil)
	svc.On("UpdateBlackout", mock.Anything, int64(3), mock.Anything).Return(nil, availability.ErrBlackoutNotFound)
	svc.On("DeleteBlackout", mock.Anything, int64(3)).Return(nil)
	svc.On("ListBlackouts", mock.Anything).Return([]*models.BlackoutResponse{}, nil)
	h := NewHandler(svc, logger.Discard())

	rec := httptest.NewRecorder()
	h.Get(rec, request(http.MethodGet, "3", ""))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.Update(rec, request(http.MethodPut, "3", `{}`))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	h.Delete(rec, request(http.MethodDelete, "3", ""))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	h.List(rec, request(http.MethodGet, "", ""))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}
