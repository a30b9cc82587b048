package consulting_services

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ConsultingBooking/internal/api/handlers"
	"github.com/m04kA/SMC-ConsultingBooking/internal/api/middleware"
	"github.com/m04kA/SMC-ConsultingBooking/internal/service/consulting"
	"github.com/m04kA/SMC-ConsultingBooking/internal/service/consulting/models"
)

const (
	msgInvalidRequestBody = "Malformed request body."
	msgDuplicateSlug      = "Consulting service with this slug already exists."
	msgServiceInUse       = "Consulting service has booking requests and cannot be deleted."
)

type Handler struct {
	service ConsultingService
	logger  Logger
}

func NewHandler(service ConsultingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /api/v1/booking/services/
// Query params: status (только для сотрудников)
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActor(r.Context())

	services, err := h.service.List(r.Context(), actor.IsStaff, r.URL.Query().Get("status"))
	if err != nil {
		h.respondError(w, "GET /booking/services", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, services)
}

// Get GET /api/v1/booking/services/{slug}/
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]
	actor := middleware.GetActor(r.Context())

	service, err := h.service.Get(r.Context(), slug, actor.IsStaff)
	if err != nil {
		h.respondError(w, "GET /booking/services/{slug}", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, service)
}

// Create POST /api/v1/booking/services/
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.ServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /booking/services - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	service, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.respondError(w, "POST /booking/services", err)
		return
	}

	h.logger.Info("POST /booking/services - Created: slug=%s", service.Slug)
	handlers.RespondJSON(w, http.StatusCreated, service)
}

// Update PUT /api/v1/booking/services/{slug}/
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	var req models.ServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /booking/services/{slug} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	service, err := h.service.Update(r.Context(), slug, &req)
	if err != nil {
		h.respondError(w, "PUT /booking/services/{slug}", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, service)
}

// Delete DELETE /api/v1/booking/services/{slug}/
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	if err := h.service.Delete(r.Context(), slug); err != nil {
		h.respondError(w, "DELETE /booking/services/{slug}", err)
		return
	}

	h.logger.Info("DELETE /booking/services/{slug} - Deleted: slug=%s", slug)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	if verr, ok := handlers.AsValidation(err); ok {
		h.logger.Warn("%s - Validation failed: %v", route, err)
		handlers.RespondValidation(w, verr)
		return
	}

	switch {
	case errors.Is(err, consulting.ErrServiceNotFound):
		h.logger.Warn("%s - Consulting service not found", route)
		handlers.RespondNotFound(w)
	case errors.Is(err, consulting.ErrDuplicateSlug):
		h.logger.Warn("%s - Duplicate slug", route)
		handlers.RespondConflict(w, msgDuplicateSlug)
	case errors.Is(err, consulting.ErrServiceInUse):
		h.logger.Warn("%s - Consulting service in use", route)
		handlers.RespondConflict(w, msgServiceInUse)
	default:
		h.logger.Error("%s - Internal error: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
