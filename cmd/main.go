package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"

	approveBookingHandler "github.com/jhcsc-org/jhcsc-venue/internal/api/handlers/approve_booking"
	cancelBookingHandler "github.com/jhcsc-org/jhcsc-venue/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/jhcsc-org/jhcsc-venue/internal/api/handlers/create_booking"
	getBookingHandler "github.com/jhcsc-org/jhcsc-venue/internal/api/handlers/get_booking"
	getVenueHandler "github.com/jhcsc-org/jhcsc-venue/internal/api/handlers/get_venue"
	listBookingsHandler "github.com/jhcsc-org/jhcsc-venue/internal/api/handlers/list_bookings"
	listPaymentModesHandler "github.com/jhcsc-org/jhcsc-venue/internal/api/handlers/list_payment_modes"
	listUpdatesHandler "github.com/jhcsc-org/jhcsc-venue/internal/api/handlers/list_updates"
	listVenuesHandler "github.com/jhcsc-org/jhcsc-venue/internal/api/handlers/list_venues"
	quoteBookingHandler "github.com/jhcsc-org/jhcsc-venue/internal/api/handlers/quote_booking"
	"github.com/jhcsc-org/jhcsc-venue/internal/api/middleware"
	"github.com/jhcsc-org/jhcsc-venue/internal/config"
	"github.com/jhcsc-org/jhcsc-venue/internal/events"
	auditLogRepo "github.com/jhcsc-org/jhcsc-venue/internal/infra/storage/auditlog"
	bookingRepo "github.com/jhcsc-org/jhcsc-venue/internal/infra/storage/booking"
	bookingViewRepo "github.com/jhcsc-org/jhcsc-venue/internal/infra/storage/bookingview"
	paymentRepo "github.com/jhcsc-org/jhcsc-venue/internal/infra/storage/payment"
	scheduleRepo "github.com/jhcsc-org/jhcsc-venue/internal/infra/storage/schedule"
	venueRepo "github.com/jhcsc-org/jhcsc-venue/internal/infra/storage/venue"
	receiptsClient "github.com/jhcsc-org/jhcsc-venue/internal/integrations/receipts"
	bookingsService "github.com/jhcsc-org/jhcsc-venue/internal/service/bookings"
	updatesService "github.com/jhcsc-org/jhcsc-venue/internal/service/updates"
	venuesService "github.com/jhcsc-org/jhcsc-venue/internal/service/venues"
	createBookingUC "github.com/jhcsc-org/jhcsc-venue/internal/usecase/create_booking"
	quoteBookingUC "github.com/jhcsc-org/jhcsc-venue/internal/usecase/quote_booking"
	"github.com/jhcsc-org/jhcsc-venue/pkg/dbmetrics"
	"github.com/jhcsc-org/jhcsc-venue/pkg/logger"
	"github.com/jhcsc-org/jhcsc-venue/pkg/metrics"
	"github.com/jhcsc-org/jhcsc-venue/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
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

	log.Info("Starting jhcsc-venue...")
	log.Info("Configuration loaded from config.toml")

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Метрики (если включены): запросы к БД, шаги создания бронирования, HTTP
	var (
		metricsCollector *metrics.Metrics
		wrappedDB        *dbmetrics.DB
		stepRecorder     createBookingUC.StepRecorder
	)
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		stepRecorder = metricsCollector
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	scheduleRepository := scheduleRepo.NewRepository(wrappedDB)
	paymentRepository := paymentRepo.NewRepository(wrappedDB)
	venueRepository := venueRepo.NewRepository(wrappedDB)
	bookingViewRepository := bookingViewRepo.NewRepository(wrappedDB)
	auditLogRepository := auditLogRepo.NewRepository(wrappedDB)

	// Хранилище чеков
	receipts := receiptsClient.NewClient(receiptsClient.Config{
		BaseURL:          cfg.Storage.URL,
		ServiceKey:       cfg.Storage.ServiceKey,
		Bucket:           cfg.Storage.Bucket,
		Timeout:          cfg.Storage.TimeoutDuration(),
		FailureThreshold: cfg.Storage.FailureThreshold,
	}, log)
	log.Info("Receipt storage client initialized (url=%s, bucket=%s, timeout=%ds)",
		cfg.Storage.URL, cfg.Storage.Bucket, cfg.Storage.Timeout)

	// Шина событий в памяти процесса
	pubSub := events.NewGoChannel(cfg.Events.BufferSize, log)
	publisher := events.NewPublisher(pubSub)

	eventRouter, err := events.NewRouter(pubSub, events.NewLogNotifier(log), log)
	if err != nil {
		log.Fatal("Failed to create event router: %v", err)
	}

	routerCtx, stopRouter := context.WithCancel(context.Background())
	defer stopRouter()
	go func() {
		if err := eventRouter.Run(routerCtx); err != nil {
			log.Error("Event router stopped: %v", err)
		}
	}()
	<-eventRouter.Running()
	log.Info("Event router started")

	// Сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		bookingViewRepository,
		venueRepository,
		paymentRepository,
		txMgr,
		publisher,
		bookingsService.PaymentStatuses{
			AwaitingVerification: cfg.Booking.AwaitingVerificationStatusID,
			Verified:             cfg.Booking.VerifiedStatusID,
		},
		log,
	)
	venueSvc := venuesService.NewService(venueRepository, paymentRepository, log)
	updatesSvc := updatesService.NewService(auditLogRepository, updatesService.RealTimeProvider{}, log)

	// Use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		venueRepository,
		bookingRepository,
		scheduleRepository,
		paymentRepository,
		receipts,
		publisher,
		stepRecorder,
		createBookingUC.Options{
			RequireReceiptForPaid:        cfg.Booking.RequireReceiptForPaid,
			AwaitingVerificationStatusID: cfg.Booking.AwaitingVerificationStatusID,
			CurrencyCode:                 cfg.Booking.CurrencyCode,
		},
		log,
	)
	quoteBookingUseCase := quoteBookingUC.NewUseCase(venueRepository, log)

	// Handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	quoteBooking := quoteBookingHandler.NewHandler(quoteBookingUseCase, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	approveBooking := approveBookingHandler.NewHandler(bookingSvc, log)
	listVenues := listVenuesHandler.NewHandler(venueSvc, log)
	getVenue := getVenueHandler.NewHandler(venueSvc, log)
	listPaymentModes := listPaymentModesHandler.NewHandler(venueSvc, log)
	listUpdates := listUpdatesHandler.NewHandler(updatesSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, metricsCollector.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (Bearer токен провайдера авторизации)
	// ============================================================

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Auth([]byte(cfg.Auth.JWTSecret), log))

	// --- Площадки и справочники ---
	api.HandleFunc("/venues", listVenues.Handle).Methods(http.MethodGet)
	api.HandleFunc("/venues/{venueId}", getVenue.Handle).Methods(http.MethodGet)
	api.HandleFunc("/venues/{venueId}/quote", quoteBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/venue-types", listPaymentModes.HandleVenueTypes).Methods(http.MethodGet)
	api.HandleFunc("/payment-modes", listPaymentModes.Handle).Methods(http.MethodGet)

	// --- Бронирования ---
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/bookings/{bookingId}/approve", approveBooking.Handle).Methods(http.MethodPatch)

	// --- Лента изменений ---
	api.HandleFunc("/updates", listUpdates.Handle).Methods(http.MethodGet)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
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

	// Шину событий останавливаем после HTTP сервера
	stopRouter()
	if err := eventRouter.Close(); err != nil {
		log.Error("Event router close error: %v", err)
	}
	if err := pubSub.Close(); err != nil {
		log.Error("Event bus close error: %v", err)
	}

	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	log.Info("Server stopped gracefully")
}
