package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"github.com/m04kA/SMC-ConsultingBooking/internal/api"
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
	"github.com/m04kA/SMC-ConsultingBooking/internal/config"
	availabilityRepo "github.com/m04kA/SMC-ConsultingBooking/internal/infra/storage/availability"
	bookingRepo "github.com/m04kA/SMC-ConsultingBooking/internal/infra/storage/booking"
	consultingRepo "github.com/m04kA/SMC-ConsultingBooking/internal/infra/storage/consulting"
	"github.com/m04kA/SMC-ConsultingBooking/internal/infra/storage/memory"
	slotRepo "github.com/m04kA/SMC-ConsultingBooking/internal/infra/storage/slot"
	availabilityService "github.com/m04kA/SMC-ConsultingBooking/internal/service/availability"
	bookingsService "github.com/m04kA/SMC-ConsultingBooking/internal/service/bookings"
	consultingService "github.com/m04kA/SMC-ConsultingBooking/internal/service/consulting"
	cancelBookingUC "github.com/m04kA/SMC-ConsultingBooking/internal/usecase/cancel_booking"
	confirmBookingUC "github.com/m04kA/SMC-ConsultingBooking/internal/usecase/confirm_booking"
	createBookingUC "github.com/m04kA/SMC-ConsultingBooking/internal/usecase/create_booking"
	declineBookingUC "github.com/m04kA/SMC-ConsultingBooking/internal/usecase/decline_booking"
	getAvailabilityUC "github.com/m04kA/SMC-ConsultingBooking/internal/usecase/get_availability"
	"github.com/m04kA/SMC-ConsultingBooking/pkg/clock"
	"github.com/m04kA/SMC-ConsultingBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-ConsultingBooking/pkg/logger"
	"github.com/m04kA/SMC-ConsultingBooking/pkg/metrics"
	"github.com/m04kA/SMC-ConsultingBooking/pkg/txmanager"
)

// TxManager общий интерфейс менеджеров транзакций postgres и memory
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

type bookingStore interface {
	createBookingUC.BookingRepository
	confirmBookingUC.BookingRepository
	cancelBookingUC.BookingRepository
	declineBookingUC.BookingRepository
	getAvailabilityUC.BookingRepository
	bookingsService.BookingRepository
}

type slotStore interface {
	confirmBookingUC.SlotRepository
	cancelBookingUC.SlotRepository
}

type availabilityStore interface {
	availabilityService.AvailabilityRepository
	confirmBookingUC.BlackoutRepository
	getAvailabilityUC.BlackoutRepository
}

// storage репозитории выбранного драйвера
type storage struct {
	bookings     bookingStore
	slots        slotStore
	services     consultingService.ServiceRepository
	availability availabilityStore
	txManager    TxManager
	close        func()
}

func main() {
	configPath := flag.String("config", "", "path to config.toml (default $CONFIG_PATH or config.toml)")
	flag.Parse()
	if *configPath == "" {
		*configPath = os.Getenv("CONFIG_PATH")
	}
	if *configPath == "" {
		*configPath = "config.toml"
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-ConsultingBooking...")
	log.Info("Configuration loaded from %s", *configPath)

	// Метрики собираются всегда, наружу отдаются только если включены
	metricsCollector := metrics.New(cfg.Metrics.ServiceName)
	if cfg.Metrics.Enabled {
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	clk := clock.Real{}

	var st *storage
	switch cfg.Database.Driver {
	case config.DriverMemory:
		st = memoryStorage(clk)
		log.Warn("Using in-memory storage, data will be lost on restart")
	default:
		st, err = postgresStorage(cfg, metricsCollector, log)
		if err != nil {
			log.Fatal("Failed to initialize database: %v", err)
		}
	}
	defer st.close()

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(st.bookings, log)
	catalogSvc := consultingService.NewService(st.services, log)
	availabilitySvc := availabilityService.NewService(st.availability, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(st.services, st.bookings, clk, log)
	confirmBookingUseCase := confirmBookingUC.NewUseCase(
		st.bookings,
		st.slots,
		st.availability,
		st.txManager,
		metricsCollector,
		clk,
		log,
		confirmBookingUC.Options{EnforceBlackouts: cfg.Booking.EnforceBlackoutsOnConfirm},
	)
	cancelBookingUseCase := cancelBookingUC.NewUseCase(st.bookings, st.slots, st.txManager, metricsCollector, clk, log)
	declineBookingUseCase := declineBookingUC.NewUseCase(st.bookings, st.txManager, clk, log)
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(st.bookings, st.availability, log)

	if cfg.Booking.EnforceBlackoutsOnConfirm {
		log.Info("Blackout periods are enforced on confirm")
	}

	// Инициализируем handlers
	h := api.Handlers{
		CreateBooking:       createBookingHandler.NewHandler(createBookingUseCase, log),
		GetBooking:          getBookingHandler.NewHandler(bookingSvc, log),
		CancelBooking:       cancelBookingHandler.NewHandler(cancelBookingUseCase, log),
		ConfirmBooking:      confirmBookingHandler.NewHandler(confirmBookingUseCase, log),
		DeclineBooking:      declineBookingHandler.NewHandler(declineBookingUseCase, log),
		ListBookingRequests: listBookingRequestsHandler.NewHandler(bookingSvc, log),
		GetAvailability:     getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log),
		ConsultingServices:  consultingServicesHandler.NewHandler(catalogSvc, log),
		AvailabilityRules:   availabilityRulesHandler.NewHandler(availabilitySvc, log),
		BlackoutPeriods:     blackoutPeriodsHandler.NewHandler(availabilitySvc, log),
	}

	opts := api.Options{
		Verifier:       middleware.NewTokenVerifier(cfg.Auth.JWTSecret),
		MetricsPath:    cfg.Metrics.Path,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Logger:         log,
	}
	if cfg.Metrics.Enabled {
		opts.Metrics = metricsCollector
	}

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      api.NewRouter(h, opts),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}

func memoryStorage(clk clock.Clock) *storage {
	store := memory.NewStore(clk)
	return &storage{
		bookings:     store.Bookings(),
		slots:        store.Slots(),
		services:     store.Services(),
		availability: store.Availability(),
		txManager:    store.TxManager(),
		close:        func() {},
	}
}

func postgresStorage(cfg *config.Config, metricsCollector *metrics.Metrics, log *logger.Logger) (*storage, error) {
	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Запросы и пул соединений измеряются всегда, экспорт решает роутер
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector)
	log.Info("Database metrics collection started")

	txMgr := txmanager.NewTransactionManager(
		wrappedDB,
		txmanager.WithMaxRetries(cfg.Database.MaxTxRetries),
		txmanager.WithRetryObserver(metricsCollector),
		txmanager.WithLogger(log),
	)

	return &storage{
		bookings:     bookingRepo.NewRepository(wrappedDB),
		slots:        slotRepo.NewRepository(wrappedDB),
		services:     consultingRepo.NewRepository(wrappedDB),
		availability: availabilityRepo.NewRepository(wrappedDB),
		txManager:    txMgr,
		close: func() {
			wrappedDB.Stop()
			_ = db.Close()
		},
	}, nil
}
