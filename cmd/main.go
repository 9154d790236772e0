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
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/m04kA/AiroFix-BookingService/internal/api/handlers"
	cancelBookingHandler "github.com/m04kA/AiroFix-BookingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/AiroFix-BookingService/internal/api/handlers/create_booking"
	createPaymentLinkHandler "github.com/m04kA/AiroFix-BookingService/internal/api/handlers/create_payment_link"
	getBookingHandler "github.com/m04kA/AiroFix-BookingService/internal/api/handlers/get_booking"
	getBookingsByPhoneHandler "github.com/m04kA/AiroFix-BookingService/internal/api/handlers/get_bookings_by_phone"
	getEngineerHandler "github.com/m04kA/AiroFix-BookingService/internal/api/handlers/get_engineer"
	listBookingsHandler "github.com/m04kA/AiroFix-BookingService/internal/api/handlers/list_bookings"
	listEngineersHandler "github.com/m04kA/AiroFix-BookingService/internal/api/handlers/list_engineers"
	updateBookingHandler "github.com/m04kA/AiroFix-BookingService/internal/api/handlers/update_booking"
	updateBookingsHandler "github.com/m04kA/AiroFix-BookingService/internal/api/handlers/update_bookings"
	verifyPaymentHandler "github.com/m04kA/AiroFix-BookingService/internal/api/handlers/verify_payment"
	"github.com/m04kA/AiroFix-BookingService/internal/api/middleware"
	"github.com/m04kA/AiroFix-BookingService/internal/config"
	bookingRepo "github.com/m04kA/AiroFix-BookingService/internal/infra/storage/booking"
	engineerRepo "github.com/m04kA/AiroFix-BookingService/internal/infra/storage/engineer"
	"github.com/m04kA/AiroFix-BookingService/internal/integrations/cashfree"
	"github.com/m04kA/AiroFix-BookingService/internal/jobs/reconcile"
	bookingsService "github.com/m04kA/AiroFix-BookingService/internal/service/bookings"
	engineersService "github.com/m04kA/AiroFix-BookingService/internal/service/engineers"
	createPaymentLinkUC "github.com/m04kA/AiroFix-BookingService/internal/usecase/create_payment_link"
	verifyPaymentUC "github.com/m04kA/AiroFix-BookingService/internal/usecase/verify_payment"
	"github.com/m04kA/AiroFix-BookingService/pkg/dbmetrics"
	"github.com/m04kA/AiroFix-BookingService/pkg/logger"
	"github.com/m04kA/AiroFix-BookingService/pkg/metrics"
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

	log.Info("Starting AiroFix-BookingService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

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

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Репозитории работают через обертку метрик, если они включены
	var executor dbmetrics.DBExecutor = db
	if cfg.Metrics.Enabled {
		executor = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
	}

	bookingRepository := bookingRepo.NewRepository(executor)
	engineerRepository := engineerRepo.NewRepository(executor)

	// Клиент Cashfree
	cashfreeClient := cashfree.NewClient(cashfree.Config{
		BaseURL:        cfg.Cashfree.BaseURL(),
		AppID:          cfg.Cashfree.AppID,
		SecretKey:      cfg.Cashfree.SecretKey,
		APIVersion:     cfg.Cashfree.APIVersion,
		Timeout:        time.Duration(cfg.Cashfree.Timeout) * time.Second,
		MaxRetries:     cfg.Cashfree.MaxRetries,
		MaxElapsedTime: time.Duration(cfg.Cashfree.MaxElapsedTime) * time.Second,
	}, metricsCollector, log)

	if cashfreeClient.Configured() {
		log.Info("Cashfree client initialized (env=%s, api_version=%s)", cfg.Cashfree.Environment, cfg.Cashfree.APIVersion)
	} else {
		log.Warn("Cashfree credentials missing, payment endpoints will respond with errors")
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		&bookingsService.RealTimeProvider{},
		&bookingsService.UUIDGenerator{},
		bookingsService.Config{
			DefaultListLimit: cfg.Bookings.DefaultListLimit,
			MaxListLimit:     cfg.Bookings.MaxListLimit,
			CancelWindow:     time.Duration(cfg.Bookings.CancelWindowHours) * time.Hour,
		},
		log,
	)
	engineerSvc := engineersService.NewService(engineerRepository, log)

	// Инициализируем use cases
	createPaymentLinkUseCase := createPaymentLinkUC.NewUseCase(
		bookingRepository,
		cashfreeClient,
		createPaymentLinkUC.Config{
			SiteURL:          cfg.Payments.SiteURL,
			LinkPrefix:       cfg.Payments.LinkPrefix,
			Currency:         cfg.Payments.Currency,
			PurposePrefix:    cfg.Payments.PurposePrefix,
			PlaceholderPhone: cfg.Payments.PlaceholderPhone,
			PlaceholderName:  cfg.Payments.PlaceholderName,
			PlaceholderEmail: cfg.Payments.PlaceholderEmail,
		},
		log,
	)
	verifyPaymentUseCase := verifyPaymentUC.NewUseCase(
		bookingRepository,
		cashfreeClient,
		metricsCollector,
		log,
	)

	// Фоновая сверка оплат
	var reconcileJob *reconcile.Job
	if cfg.Reconcile.Enabled && cashfreeClient.Configured() {
		reconcileJob = reconcile.NewJob(
			bookingRepository,
			verifyPaymentUseCase,
			reconcile.Config{
				Schedule:  cfg.Reconcile.Schedule,
				Lookback:  time.Duration(cfg.Reconcile.LookbackHours) * time.Hour,
				BatchSize: cfg.Reconcile.BatchSize,
			},
			log,
		)
		if err := reconcileJob.Start(); err != nil {
			log.Fatal("Failed to start reconcile job: %v", err)
		}
	}

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, cfg.Bookings.DefaultListLimit, log)
	adminListBookings := listBookingsHandler.NewHandler(bookingSvc, cfg.Bookings.AdminDefaultListLimit, log)
	getBookingsByPhone := getBookingsByPhoneHandler.NewHandler(bookingSvc, log)
	updateBooking := updateBookingHandler.NewHandler(bookingSvc, log)
	updateBookings := updateBookingsHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	createPaymentLink := createPaymentLinkHandler.NewHandler(createPaymentLinkUseCase, log)
	verifyPayment := verifyPaymentHandler.NewHandler(verifyPaymentUseCase, log)
	listEngineers := listEngineersHandler.NewHandler(engineerSvc, log)
	getEngineer := getEngineerHandler.NewHandler(engineerSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		handlers.RespondJSON(w, http.StatusOK, map[string]bool{"success": true})
	}).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	// --- Бронирования ---
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings", updateBookings.Handle).Methods(http.MethodPut)
	// by-phone регистрируется раньше /bookings/{bookingId}
	api.HandleFunc("/bookings/by-phone", getBookingsByPhone.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}", updateBooking.Handle).Methods(http.MethodPut)
	api.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPost)

	// --- Оплата ---
	api.HandleFunc("/payments/create-link", createPaymentLink.Handle).Methods(http.MethodPost)
	api.HandleFunc("/payments/verify", verifyPayment.Handle).Methods(http.MethodPost)

	// --- Инженеры ---
	api.HandleFunc("/engineers", listEngineers.Handle).Methods(http.MethodGet)
	api.HandleFunc("/engineers/{phone}", getEngineer.Handle).Methods(http.MethodGet)

	// ============================================================
	// ADMIN ROUTES (требуют X-Admin-Password header)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AdminAuth(cfg.Admin.Password, log))

	admin.HandleFunc("/bookings", adminListBookings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings", updateBookings.Handle).Methods(http.MethodPut)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

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

	if reconcileJob != nil {
		if err := reconcileJob.Stop(shutdownCtx); err != nil {
			log.Error("Reconcile job did not stop in time: %v", err)
		}
	}

	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	log.Info("Server stopped gracefully")
}
