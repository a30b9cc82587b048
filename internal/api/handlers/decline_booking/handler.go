package decline_booking

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ConsultingBooking/internal/api/handlers"
	"github.com/m04kA/SMC-ConsultingBooking/internal/api/middleware"
	"github.com/m04kA/SMC-ConsultingBooking/internal/domain"
	"github.com/m04kA/SMC-ConsultingBooking/internal/service/bookings/models"
	declineBooking "github.com/m04kA/SMC-ConsultingBooking/internal/usecase/decline_booking"
)

const (
	msgInvalidRequestBody = "Malformed request body."
	msgInvalidState       = "Booking cannot be declined from status %s."
)

type Handler struct {
	useCase DeclineBookingUseCase
	logger  Logger
}

func NewHandler(useCase DeclineBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/booking/admin/requests/{publicId}/decline
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	publicID := mux.Vars(r)["publicId"]
	actor := middleware.GetActor(r.Context())

	var req DeclineBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /booking/admin/requests/{id}/decline - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	booking, err := h.useCase.Execute(r.Context(), &declineBooking.Request{
		PublicID:   publicID,
		Actor:      actor.Subject,
		AdminNotes: req.AdminNotes,
	})
	if err != nil {
		var transitionErr *domain.TransitionError
		switch {
		case errors.Is(err, declineBooking.ErrBookingNotFound):
			h.logger.Warn("PATCH /booking/admin/requests/{id}/decline - Booking request not found: public_id=%s", publicID)
			handlers.RespondNotFound(w)

		case errors.As(err, &transitionErr):
			h.logger.Warn("PATCH /booking/admin/requests/{id}/decline - Invalid state: public_id=%s, status=%s", publicID, transitionErr.From)
			handlers.RespondBadRequest(w, fmt.Sprintf(msgInvalidState, transitionErr.From))

		default:
			h.logger.Error("PATCH /booking/admin/requests/{id}/decline - Failed to decline: public_id=%s, error=%v", publicID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /booking/admin/requests/{id}/decline - Declined: public_id=%s, by=%s", publicID, actor.Subject)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainAdmin(booking))
}
