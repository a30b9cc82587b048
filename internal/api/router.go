// Package api собирает HTTP маршруты сервиса
package api

import (
	"fmt"
	"net/http"
	"strings"

	gorillaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ConsultingBooking/internal/api/handlers"
	availabilityRulesHandler "github.com/m04kA/SMC-ConsultingBooking/internal/api/handlers/availability_rules"
	blackoutPeriodsHandler "github.com/m04kA/SMC-ConsultingBooking/internal/api/handlers/blackout_periods"
	cancelBookingHandler "github.com/m04kA/SMC-ConsultingBooking/internal/api/handlers/cancel_booking"
	confirmBookingHandler "github.com/m04kA/SMC-ConsultingBooking/internal/api/handlers/confirm_booking"
	consultingServicesHandler "github.com/m04kA/SMC-ConsultingBooking/internal/api/handlers/consulting_services"
	createBookingHandler "github.com/m04kA/SMC-ConsultingBooking/internal/api/handlers/create_booking"
	declineBookingHandler "github.com/m04kA/SMC-ConsultingBooking/internal/api/handlers/decline_booking"
	getAvailabilityHandler "github.com/m04kA/SMC-ConsultingBooking/internal/api/handlers/get_availability"
	getBookingHandler "github.com/m04kA/SMC-ConsultingBooking/internal/api/handlers/get_booking"
	listBookingRequestsHandler "github.com/m04kA/SMC-ConsultingBooking/internal/api/handlers/list_booking_requests"
	"github.com/m04kA/SMC-ConsultingBooking/internal/api/middleware"
)

// Handlers все обработчики API
type Handlers struct {
	CreateBooking       *createBookingHandler.Handler
	GetBooking          *getBookingHandler.Handler
	CancelBooking       *cancelBookingHandler.Handler
	ConfirmBooking      *confirmBookingHandler.Handler
	DeclineBooking      *declineBookingHandler.Handler
	ListBookingRequests *listBookingRequestsHandler.Handler
	GetAvailability     *getAvailabilityHandler.Handler
	ConsultingServices  *consultingServicesHandler.Handler
	AvailabilityRules   *availabilityRulesHandler.Handler
	BlackoutPeriods     *blackoutPeriodsHandler.Handler
}

// MetricsCollector метрики HTTP и их экспорт
type MetricsCollector interface {
	middleware.HTTPObserver
	Handler() http.Handler
}

type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Options настройки роутера
type Options struct {
	Verifier       *middleware.TokenVerifier
	Metrics        MetricsCollector // nil - метрики выключены
	MetricsPath    string
	AllowedOrigins []string
	Logger         Logger
}

// NewRouter создает роутер со всеми маршрутами и общими middleware
func NewRouter(h Handlers, opts Options) http.Handler {
	r := mux.NewRouter()

	if opts.Metrics != nil {
		if opts.MetricsPath == "" {
			opts.MetricsPath = "/metrics"
		}
		r.Use(middleware.MetricsMiddleware(opts.Metrics))
		r.Handle(opts.MetricsPath, opts.Metrics.Handler()).Methods(http.MethodGet)
	}
	r.Use(middleware.RequestID)
	r.Use(middleware.Identify(opts.Verifier))

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1/booking").Subrouter()

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	route(api, "/requests", http.HandlerFunc(h.CreateBooking.Handle), http.MethodPost)
	route(api, "/requests/{publicId}", http.HandlerFunc(h.GetBooking.HandlePublic), http.MethodGet)
	route(api, "/requests/{publicId}", http.HandlerFunc(h.CancelBooking.HandleRequester), http.MethodPost)
	route(api, "/availability", http.HandlerFunc(h.GetAvailability.Handle), http.MethodGet)

	// Каталог: чтение открыто всем, неопубликованные услуги видят только сотрудники
	route(api, "/services", http.HandlerFunc(h.ConsultingServices.List), http.MethodGet)
	route(api, "/services/{slug}", http.HandlerFunc(h.ConsultingServices.Get), http.MethodGet)

	// ============================================================
	// STAFF ROUTES
	// ============================================================

	route(api, "/services", staff(h.ConsultingServices.Create), http.MethodPost)
	route(api, "/services/{slug}", staff(h.ConsultingServices.Update), http.MethodPut)
	route(api, "/services/{slug}", staff(h.ConsultingServices.Delete), http.MethodDelete)

	// --- Заявки ---
	route(api, "/admin/requests", staff(h.ListBookingRequests.Handle), http.MethodGet)
	route(api, "/admin/requests/{publicId}", staff(h.GetBooking.HandleAdmin), http.MethodGet)
	route(api, "/admin/requests/{publicId}/confirm", staff(h.ConfirmBooking.Handle), http.MethodPatch)
	route(api, "/admin/requests/{publicId}/decline", staff(h.DeclineBooking.Handle), http.MethodPatch)
	route(api, "/admin/requests/{publicId}/cancel", staff(h.CancelBooking.HandleAdmin), http.MethodPatch)

	// --- Доступность ---
	route(api, "/admin/availability-rules", staff(h.AvailabilityRules.List), http.MethodGet)
	route(api, "/admin/availability-rules", staff(h.AvailabilityRules.Create), http.MethodPost)
	route(api, "/admin/availability-rules/{id}", staff(h.AvailabilityRules.Get), http.MethodGet)
	route(api, "/admin/availability-rules/{id}", staff(h.AvailabilityRules.Update), http.MethodPut)
	route(api, "/admin/availability-rules/{id}", staff(h.AvailabilityRules.Delete), http.MethodDelete)

	route(api, "/admin/blackouts", staff(h.BlackoutPeriods.List), http.MethodGet)
	route(api, "/admin/blackouts", staff(h.BlackoutPeriods.Create), http.MethodPost)
	route(api, "/admin/blackouts/{id}", staff(h.BlackoutPeriods.Get), http.MethodGet)
	route(api, "/admin/blackouts/{id}", staff(h.BlackoutPeriods.Update), http.MethodPut)
	route(api, "/admin/blackouts/{id}", staff(h.BlackoutPeriods.Delete), http.MethodDelete)

	var handler http.Handler = r
	if len(opts.AllowedOrigins) > 0 {
		handler = gorillaHandlers.CORS(
			gorillaHandlers.AllowedOrigins(opts.AllowedOrigins),
			gorillaHandlers.AllowedMethods([]string{
				http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions,
			}),
			gorillaHandlers.AllowedHeaders([]string{"Authorization", "Content-Type", middleware.RequestIDHeader}),
			gorillaHandlers.ExposedHeaders([]string{middleware.RequestIDHeader}),
		)(handler)
	}

	return gorillaHandlers.RecoveryHandler(
		gorillaHandlers.RecoveryLogger(recoveryLogger{opts.Logger}),
		gorillaHandlers.PrintRecoveryStack(true),
	)(handler)
}

// route регистрирует путь со слешем на конце и без него
func route(r *mux.Router, path string, h http.Handler, method string) {
	path = strings.TrimSuffix(path, "/")
	r.Handle(path, h).Methods(method)
	r.Handle(path+"/", h).Methods(method)
}

func staff(fn http.HandlerFunc) http.Handler {
	return middleware.RequireStaff(fn)
}

// recoveryLogger адаптер логгера сервиса для gorilla/handlers
type recoveryLogger struct {
	log Logger
}

func (l recoveryLogger) Println(v ...interface{}) {
	if l.log == nil {
		return
	}
	l.log.Error("panic recovered: %s", strings.TrimSpace(fmt.Sprintln(v...)))
}
