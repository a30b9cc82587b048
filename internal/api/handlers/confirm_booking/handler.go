package confirm_booking

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ConsultingBooking/internal/api/handlers"
	"github.com/m04kA/SMC-ConsultingBooking/internal/api/middleware"
	"github.com/m04kA/SMC-ConsultingBooking/internal/domain"
	"github.com/m04kA/SMC-ConsultingBooking/internal/service/bookings/models"
	confirmBooking "github.com/m04kA/SMC-ConsultingBooking/internal/usecase/confirm_booking"
)

const (
	msgInvalidRequestBody = "Malformed request body."
	msgOverlap            = "Requested time overlaps with an existing booking slot."
	msgBlackout           = "Requested time falls inside a blackout period."
	msgInvalidState       = "Booking cannot be confirmed from status %s."
)

type Handler struct {
	useCase ConfirmBookingUseCase
	logger  Logger
}

func NewHandler(useCase ConfirmBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/booking/admin/requests/{publicId}/confirm
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	publicID := mux.Vars(r)["publicId"]
	actor := middleware.GetActor(r.Context())

	var req ConfirmBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /booking/admin/requests/{id}/confirm - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.useCase.Execute(r.Context(), &confirmBooking.Request{
		PublicID:   publicID,
		ApprovedBy: actor.Subject,
		MeetingURL: req.MeetingURL,
		AdminNotes: req.AdminNotes,
	})
	if err != nil {
		var transitionErr *domain.TransitionError
		switch {
		case errors.Is(err, confirmBooking.ErrBookingNotFound):
			h.logger.Warn("PATCH /booking/admin/requests/{id}/confirm - Booking request not found: public_id=%s", publicID)
			handlers.RespondNotFound(w)

		case errors.As(err, &transitionErr):
			h.logger.Warn("PATCH /booking/admin/requests/{id}/confirm - Invalid state: public_id=%s, status=%s", publicID, transitionErr.From)
			handlers.RespondBadRequest(w, fmt.Sprintf(msgInvalidState, transitionErr.From))

		case errors.Is(err, domain.ErrOverlapConflict):
			h.logger.Warn("PATCH /booking/admin/requests/{id}/confirm - Overlap: public_id=%s", publicID)
			handlers.RespondBadRequest(w, msgOverlap)

		case errors.Is(err, domain.ErrBlackoutConflict):
			h.logger.Warn("PATCH /booking/admin/requests/{id}/confirm - Blackout: public_id=%s", publicID)
			handlers.RespondBadRequest(w, msgBlackout)

		default:
			if verr, ok := handlers.AsValidation(err); ok {
				handlers.RespondValidation(w, verr)
				return
			}
			h.logger.Error("PATCH /booking/admin/requests/{id}/confirm - Failed to confirm: public_id=%s, error=%v", publicID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /booking/admin/requests/{id}/confirm - Confirmed: public_id=%s, by=%s, slot_id=%d",
		publicID, actor.Subject, resp.Slot.ID)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainAdmin(resp.Booking))
}
