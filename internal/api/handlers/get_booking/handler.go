package get_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ConsultingBooking/internal/api/handlers"
	"github.com/m04kA/SMC-ConsultingBooking/internal/domain"
	"github.com/m04kA/SMC-ConsultingBooking/internal/service/bookings"
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

// HandlePublic GET /api/v1/booking/requests/{publicId}/
func (h *Handler) HandlePublic(w http.ResponseWriter, r *http.Request) {
	booking, ok := h.get(w, r, "GET /booking/requests/{id}")
	if !ok {
		return
	}
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainPublic(booking))
}

// HandleAdmin GET /api/v1/booking/admin/requests/{publicId}/
func (h *Handler) HandleAdmin(w http.ResponseWriter, r *http.Request) {
	booking, ok := h.get(w, r, "GET /booking/admin/requests/{id}")
	if !ok {
		return
	}
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainAdmin(booking))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request, route string) (*domain.BookingRequest, bool) {
	publicID := mux.Vars(r)["publicId"]

	booking, err := h.service.GetByPublicID(r.Context(), publicID)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("%s - Booking request not found: public_id=%s", route, publicID)
			handlers.RespondNotFound(w)

		default:
			h.logger.Error("%s - Failed to get booking request: public_id=%s, error=%v", route, publicID, err)
			handlers.RespondInternalError(w)
		}
		return nil, false
	}
	return booking, true
}
