package blackout_periods

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ConsultingBooking/internal/api/handlers"
	"github.com/m04kA/SMC-ConsultingBooking/internal/api/middleware"
	"github.com/m04kA/SMC-ConsultingBooking/internal/service/availability"
	"github.com/m04kA/SMC-ConsultingBooking/internal/service/availability/models"
)

const msgInvalidRequestBody = "Malformed request body."

type Handler struct {
	service BlackoutService
	logger  Logger
}

func NewHandler(service BlackoutService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /api/v1/booking/admin/blackouts/
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	blackouts, err := h.service.ListBlackouts(r.Context())
	if err != nil {
		h.respondError(w, "GET /booking/admin/blackouts", err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, blackouts)
}

// Get GET /api/v1/booking/admin/blackouts/{id}/
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := handlers.PathID(r, "id")
	if !ok {
		handlers.RespondNotFound(w)
		return
	}

	blackout, err := h.service.GetBlackout(r.Context(), id)
	if err != nil {
		h.respondError(w, "GET /booking/admin/blackouts/{id}", err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, blackout)
}

// Create POST /api/v1/booking/admin/blackouts/
// Автором блокировки записывается текущий сотрудник
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActor(r.Context())

	var req models.BlackoutRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /booking/admin/blackouts - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	blackout, err := h.service.CreateBlackout(r.Context(), &req, actor.Subject)
	if err != nil {
		h.respondError(w, "POST /booking/admin/blackouts", err)
		return
	}
	handlers.RespondJSON(w, http.StatusCreated, blackout)
}

// Update PUT /api/v1/booking/admin/blackouts/{id}/
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := handlers.PathID(r, "id")
	if !ok {
		handlers.RespondNotFound(w)
		return
	}

	var req models.BlackoutRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /booking/admin/blackouts/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	blackout, err := h.service.UpdateBlackout(r.Context(), id, &req)
	if err != nil {
		h.respondError(w, "PUT /booking/admin/blackouts/{id}", err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, blackout)
}

// Delete DELETE /api/v1/booking/admin/blackouts/{id}/
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := handlers.PathID(r, "id")
	if !ok {
		handlers.RespondNotFound(w)
		return
	}

	if err := h.service.DeleteBlackout(r.Context(), id); err != nil {
		h.respondError(w, "DELETE /booking/admin/blackouts/{id}", err)
		return
	}
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	if verr, ok := handlers.AsValidation(err); ok {
		h.logger.Warn("%s - Validation failed: %v", route, err)
		handlers.RespondValidation(w, verr)
		return
	}
	if errors.Is(err, availability.ErrBlackoutNotFound) {
		h.logger.Warn("%s - Blackout period not found", route)
		handlers.RespondNotFound(w)
		return
	}
	h.logger.Error("%s - Internal error: %v", route, err)
	handlers.RespondInternalError(w)
}
