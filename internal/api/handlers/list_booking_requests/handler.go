package list_booking_requests

import (
	"net/http"

	"github.com/m04kA/SMC-ConsultingBooking/internal/api/handlers"
	"github.com/m04kA/SMC-ConsultingBooking/internal/service/bookings/models"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/booking/admin/requests/
// Query params: status, email, service, start_from, start_to, q, limit, offset (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := &models.ListRequest{
		Status:    q.Get("status"),
		Email:     q.Get("email"),
		Service:   q.Get("service"),
		StartFrom: q.Get("start_from"),
		StartTo:   q.Get("start_to"),
		Query:     q.Get("q"),
		Limit:     q.Get("limit"),
		Offset:    q.Get("offset"),
	}

	list, err := h.service.List(r.Context(), req)
	if err != nil {
		if verr, ok := handlers.AsValidation(err); ok {
			h.logger.Warn("GET /booking/admin/requests - Invalid params: %v", err)
			handlers.RespondValidation(w, verr)
			return
		}
		h.logger.Error("GET /booking/admin/requests - Failed to list booking requests: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, list)
}
