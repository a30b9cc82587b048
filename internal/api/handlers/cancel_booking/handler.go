package cancel_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ConsultingBooking/internal/api/handlers"
	"github.com/m04kA/SMC-ConsultingBooking/internal/api/middleware"
	"github.com/m04kA/SMC-ConsultingBooking/internal/domain"
	"github.com/m04kA/SMC-ConsultingBooking/internal/service/bookings/models"
	cancelBooking "github.com/m04kA/SMC-ConsultingBooking/internal/usecase/cancel_booking"
)

type Handler struct {
	useCase CancelBookingUseCase
	logger  Logger
}

func NewHandler(useCase CancelBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// HandleRequester POST /api/v1/booking/requests/{publicId}/
// Отмена заявителем по публичной ссылке, повторная отмена возвращает текущее состояние.
func (h *Handler) HandleRequester(w http.ResponseWriter, r *http.Request) {
	req := &cancelBooking.Request{PublicID: mux.Vars(r)["publicId"]}

	booking, ok := h.cancel(w, r, "POST /booking/requests/{id}", req)
	if !ok {
		return
	}
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainPublic(booking))
}

// HandleAdmin PATCH /api/v1/booking/admin/requests/{publicId}/cancel
func (h *Handler) HandleAdmin(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActor(r.Context())
	req := &cancelBooking.Request{
		PublicID: mux.Vars(r)["publicId"],
		ByAdmin:  true,
		Actor:    &actor.Subject,
	}

	booking, ok := h.cancel(w, r, "PATCH /booking/admin/requests/{id}/cancel", req)
	if !ok {
		return
	}
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainAdmin(booking))
}

func (h *Handler) cancel(w http.ResponseWriter, r *http.Request, route string, req *cancelBooking.Request) (*domain.BookingRequest, bool) {
	booking, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, cancelBooking.ErrBookingNotFound):
			h.logger.Warn("%s - Booking request not found: public_id=%s", route, req.PublicID)
			handlers.RespondNotFound(w)

		default:
			h.logger.Error("%s - Failed to cancel booking request: public_id=%s, error=%v", route, req.PublicID, err)
			handlers.RespondInternalError(w)
		}
		return nil, false
	}

	h.logger.Info("%s - Booking request public_id=%s is %s", route, booking.PublicID, booking.Status)
	return booking, true
}
