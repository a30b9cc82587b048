package availability_rules

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ConsultingBooking/internal/api/handlers"
	"github.com/m04kA/SMC-ConsultingBooking/internal/service/availability"
	"github.com/m04kA/SMC-ConsultingBooking/internal/service/availability/models"
)

const msgInvalidRequestBody = "Malformed request body."

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /api/v1/booking/admin/availability-rules/
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	rules, err := h.service.ListRules(r.Context())
	if err != nil {
		h.respondError(w, "GET /booking/admin/availability-rules", err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, rules)
}

// Get GET /api/v1/booking/admin/availability-rules/{id}/
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := handlers.PathID(r, "id")
	if !ok {
		handlers.RespondNotFound(w)
		return
	}

	rule, err := h.service.GetRule(r.Context(), id)
	if err != nil {
		h.respondError(w, "GET /booking/admin/availability-rules/{id}", err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, rule)
}

// Create POST /api/v1/booking/admin/availability-rules/
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.RuleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /booking/admin/availability-rules - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	rule, err := h.service.CreateRule(r.Context(), &req)
	if err != nil {
		h.respondError(w, "POST /booking/admin/availability-rules", err)
		return
	}
	handlers.RespondJSON(w, http.StatusCreated, rule)
}

// Update PUT /api/v1/booking/admin/availability-rules/{id}/
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := handlers.PathID(r, "id")
	if !ok {
		handlers.RespondNotFound(w)
		return
	}

	var req models.RuleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /booking/admin/availability-rules/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	rule, err := h.service.UpdateRule(r.Context(), id, &req)
	if err != nil {
		h.respondError(w, "PUT /booking/admin/availability-rules/{id}", err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, rule)
}

// Delete DELETE /api/v1/booking/admin/availability-rules/{id}/
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := handlers.PathID(r, "id")
	if !ok {
		handlers.RespondNotFound(w)
		return
	}

	if err := h.service.DeleteRule(r.Context(), id); err != nil {
		h.respondError(w, "DELETE /booking/admin/availability-rules/{id}", err)
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
	if errors.Is(err, availability.ErrRuleNotFound) {
		h.logger.Warn("%s - Availability rule not found", route)
		handlers.RespondNotFound(w)
		return
	}
	h.logger.Error("%s - Internal error: %v", route, err)
	handlers.RespondInternalError(w)
}
