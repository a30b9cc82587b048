package availability_rules

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-ConsultingBooking/internal/domain"
	"github.com/m04kA/SMC-ConsultingBooking/internal/service/availability"
	"github.com/m04kA/SMC-ConsultingBooking/internal/service/availability/models"
	"github.com/m04kA/SMC-ConsultingBooking/pkg/logger"
)

type serviceMock struct{ mock.Mock }

func (m *serviceMock) CreateRule(ctx context.Context, req *models.RuleRequest) (*models.RuleResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*models.RuleResponse)
	return resp, args.Error(1)
}

func (m *serviceMock) GetRule(ctx context.Context, id int64) (*models.RuleResponse, error) {
	args := m.Called(ctx, id)
	resp, _ := args.Get(0).(*models.RuleResponse)
	return resp, args.Error(1)
}

func (m *serviceMock) ListRules(ctx context.Context) ([]*models.RuleResponse, error) {
	args := m.Called(ctx)
	resp, _ := args.Get(0).([]*models.RuleResponse)
	return resp, args.Error(1)
}

func (m *serviceMock) UpdateRule(ctx context.Context, id int64, req *models.RuleRequest) (*models.RuleResponse, error) {
	args := m.Called(ctx, id, req)
	resp, _ := args.Get(0).(*models.RuleResponse)
	return resp, args.Error(1)
}

func (m *serviceMock) DeleteRule(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func request(method, id, body string) *http.Request {
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	return mux.SetURLVars(req, map[string]string{"id": id})
}

func TestCreate(t *testing.T) {
	svc := &serviceMock{}
	svc.On("CreateRule", mock.Anything, mock.MatchedBy(func(req *models.RuleRequest) bool {
		return req.StartTimeLocal == "09:00" && req.DayOfWeek != nil && *req.DayOfWeek == 0
	})).Return(&models.RuleResponse{ID: 7, StartTimeLocal: "09:00"}, nil)

	rec := httptest.NewRecorder()
	NewHandler(svc, logger.Discard()).Create(rec,
		request(http.MethodPost, "", `{"day_of_week":0,"start_time_local":"09:00","end_time_local":"17:00"}`))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":7`)
}

func TestCreate_Validation(t *testing.T) {
	svc := &serviceMock{}
	svc.On("CreateRule", mock.Anything, mock.Anything).
		Return(nil, domain.FieldError("end_time_local", "End time must be after start time."))

	rec := httptest.NewRecorder()
	NewHandler(svc, logger.Discard()).Create(rec, request(http.MethodPost, "", `{}`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "end_time_local")
}

func TestGet(t *testing.T) {
	svc := &serviceMock{}
	svc.On("GetRule", mock.Anything, int64(7)).Return(&models.RuleResponse{ID: 7}, nil)
	svc.On("GetRule", mock.Anything, int64(8)).Return(nil, availability.ErrRuleNotFound)
	h := NewHandler(svc, logger.Discard())

	rec := httptest.NewRecorder()
	h.Get(rec, request(http.MethodGet, "7", ""))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.Get(rec, request(http.MethodGet, "8", ""))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	h.Get(rec, request(http.MethodGet, "seven", ""))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	svc.AssertNumberOfCalls(t, "GetRule", 2)
}

func TestListUpdateDelete(t *testing.T) {
	svc := &serviceMock{}
	svc.On("ListRules", mock.Anything).Return([]*models.RuleResponse{{ID: 1}, {ID: 2}}, nil)
	svc.On("UpdateRule", mock.Anything, int64(1), mock.Anything).Return(&models.RuleResponse{ID: 1, IsActive: false}, nil)
	svc.On("DeleteRule", mock.Anything, int64(1)).Return(nil)
	h := NewHandler(svc, logger.Discard())

	rec := httptest.NewRecorder()
	h.List(rec, request(http.MethodGet, "", ""))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":2`)

	rec = httptest.NewRecorder()
	h.Update(rec, request(http.MethodPut, "1", `{"is_active":false}`))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.Delete(rec, request(http.MethodDelete, "1", ""))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	svc.AssertExpectations(t)
}
