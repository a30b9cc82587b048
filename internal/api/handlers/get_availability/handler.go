package get_availability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/m04kA/SMC-ConsultingBooking/internal/api/handlers"
	"github.com/m04kA/SMC-ConsultingBooking/internal/domain"
	getAvailability "github.com/m04kA/SMC-ConsultingBooking/internal/usecase/get_availability"
)

const (
	msgMissingStart = "start is required (YYYY-MM-DD)."
	msgInvalidStart = "start must be a date in YYYY-MM-DD format."
	msgInvalidDays  = "days must be an integer."
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/booking/availability/
// Query params: start (YYYY-MM-DD, обязателен), days (по умолчанию 14)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	raw := q.Get("start")
	if raw == "" {
		h.logger.Warn("GET /booking/availability - Missing start")
		handlers.RespondValidation(w, domain.FieldError("start", msgMissingStart))
		return
	}
	start, err := time.Parse(domain.DateFormat, raw)
	if err != nil {
		h.logger.Warn("GET /booking/availability - Invalid start=%s", raw)
		handlers.RespondValidation(w, domain.FieldError("start", msgInvalidStart))
		return
	}

	days := domain.DefaultAvailabilityDays
	if raw := q.Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			h.logger.Warn("GET /booking/availability - Invalid days=%s", raw)
			handlers.RespondValidation(w, domain.FieldError("days", msgInvalidDays))
			return
		}
		days = parsed
	}

	resp, err := h.useCase.Execute(r.Context(), &getAvailability.Request{Start: start, Days: days})
	if err != nil {
		if verr, ok := handlers.AsValidation(err); ok {
			handlers.RespondValidation(w, verr)
			return
		}
		h.logger.Error("GET /booking/availability - Failed to get availability: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(resp))
}
