package create_booking

import (
	"net/http"

	"github.com/m04kA/SMC-ConsultingBooking/internal/api/handlers"
	"github.com/m04kA/SMC-ConsultingBooking/internal/service/bookings/models"
)

const (
	msgInvalidRequestBody = "Malformed request body."
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/booking/requests/
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /booking/requests - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		if verr, ok := handlers.AsValidation(err); ok {
			handlers.RespondValidation(w, verr)
			return
		}
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	booking, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		if verr, ok := handlers.AsValidation(err); ok {
			h.logger.Warn("POST /booking/requests - Validation failed: service=%s, error=%v", req.Service, err)
			handlers.RespondValidation(w, verr)
			return
		}
		h.logger.Error("POST /booking/requests - Failed to create booking request: service=%s, error=%v", req.Service, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /booking/requests - Booking request created: public_id=%s, service=%s", booking.PublicID, booking.ServiceSlug)
	handlers.RespondJSON(w, http.StatusCreated, models.FromDomainPublic(booking))
}
