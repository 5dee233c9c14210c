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

	cancelBookingHandler "github.com/bekamcare/BKM-BookingService/internal/api/handlers/cancel_booking"
	checkAvailabilityHandler "github.com/bekamcare/BKM-BookingService/internal/api/handlers/check_availability"
	createBookingHandler "github.com/bekamcare/BKM-BookingService/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/bekamcare/BKM-BookingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/bekamcare/BKM-BookingService/internal/api/handlers/get_booking"
	getBookingsHandler "github.com/bekamcare/BKM-BookingService/internal/api/handlers/get_bookings"
	getTherapistsHandler "github.com/bekamcare/BKM-BookingService/internal/api/handlers/get_therapists"
	getUserBookingsHandler "github.com/bekamcare/BKM-BookingService/internal/api/handlers/get_user_bookings"
	joinWaitlistHandler "github.com/bekamcare/BKM-BookingService/internal/api/handlers/join_waitlist"
	manageBlackoutsHandler "github.com/bekamcare/BKM-BookingService/internal/api/handlers/manage_blackouts"
	manageTherapistsHandler "github.com/bekamcare/BKM-BookingService/internal/api/handlers/manage_therapists"
	manageWaitlistHandler "github.com/bekamcare/BKM-BookingService/internal/api/handlers/manage_waitlist"
	updateBookingStatusHandler "github.com/bekamcare/BKM-BookingService/internal/api/handlers/update_booking_status"
	"github.com/bekamcare/BKM-BookingService/internal/api/middleware"
	"github.com/bekamcare/BKM-BookingService/internal/config"
	"github.com/bekamcare/BKM-BookingService/internal/infra/migrations"
	blackoutRepo "github.com/bekamcare/BKM-BookingService/internal/infra/storage/blackout"
	bookingRepo "github.com/bekamcare/BKM-BookingService/internal/infra/storage/booking"
	prayerCacheRepo "github.com/bekamcare/BKM-BookingService/internal/infra/storage/prayercache"
	therapistRepo "github.com/bekamcare/BKM-BookingService/internal/infra/storage/therapist"
	waitlistRepo "github.com/bekamcare/BKM-BookingService/internal/infra/storage/waitlist"
	notifyServiceClient "github.com/bekamcare/BKM-BookingService/internal/integrations/notifyservice"
	prayerServiceClient "github.com/bekamcare/BKM-BookingService/internal/integrations/prayerservice"
	"github.com/bekamcare/BKM-BookingService/internal/jobs/activation"
	"github.com/bekamcare/BKM-BookingService/internal/jobs/prayerprefetch"
	"github.com/bekamcare/BKM-BookingService/internal/reminder"
	availabilityService "github.com/bekamcare/BKM-BookingService/internal/service/availability"
	blackoutsService "github.com/bekamcare/BKM-BookingService/internal/service/blackouts"
	bookingsService "github.com/bekamcare/BKM-BookingService/internal/service/bookings"
	prayerTimesService "github.com/bekamcare/BKM-BookingService/internal/service/prayertimes"
	therapistsService "github.com/bekamcare/BKM-BookingService/internal/service/therapists"
	waitlistService "github.com/bekamcare/BKM-BookingService/internal/service/waitlist"
	createBookingUC "github.com/bekamcare/BKM-BookingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/bekamcare/BKM-BookingService/internal/usecase/get_available_slots"
	"github.com/bekamcare/BKM-BookingService/pkg/dbmetrics"
	"github.com/bekamcare/BKM-BookingService/pkg/logger"
	"github.com/bekamcare/BKM-BookingService/pkg/metrics"
	"github.com/bekamcare/BKM-BookingService/pkg/simpletxmanager"
	"github.com/bekamcare/BKM-BookingService/pkg/txmanager"
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

	log.Info("Starting BKM-BookingService...")
	log.Info("Configuration loaded from config.toml")

	// Таймзона сервиса, вся расчетная логика выражена в ней
	loc, err := cfg.Service.Location()
	if err != nil {
		log.Fatal("Failed to load service timezone: %v", err)
	}
	log.Info("Service timezone: %s", cfg.Service.Timezone)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
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

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Применяем миграции
	if err := migrations.Run(db, log); err != nil {
		log.Fatal("Failed to apply migrations: %v", err)
	}

	// Инициализируем интеграционных клиентов
	prayerClient := prayerServiceClient.NewClient(
		cfg.Prayer.BaseURL,
		cfg.Prayer.Latitude,
		cfg.Prayer.Longitude,
		cfg.Prayer.Method,
		time.Duration(cfg.Prayer.Timeout)*time.Second,
		log,
	)
	notifyClient := notifyServiceClient.NewClient(
		cfg.Notifier.URL,
		cfg.Notifier.Enabled,
		time.Duration(cfg.Notifier.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (PrayerService=%s timeout=%ds, Notifier enabled=%t)",
		cfg.Prayer.BaseURL, cfg.Prayer.Timeout, cfg.Notifier.Enabled)

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository     *bookingRepo.Repository
		therapistRepository   *therapistRepo.Repository
		waitlistRepository    *waitlistRepo.Repository
		blackoutRepository    *blackoutRepo.Repository
		prayerCacheRepository *prayerCacheRepo.Repository
	)

	// Интерфейс для transaction manager (используется в сервисах и usecases)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
		DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		therapistRepository = therapistRepo.NewRepository(wrappedDB)
		waitlistRepository = waitlistRepo.NewRepository(wrappedDB)
		blackoutRepository = blackoutRepo.NewRepository(wrappedDB)
		prayerCacheRepository = prayerCacheRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		therapistRepository = therapistRepo.NewRepository(db)
		waitlistRepository = waitlistRepo.NewRepository(db)
		blackoutRepository = blackoutRepo.NewRepository(db)
		prayerCacheRepository = prayerCacheRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Регистратор бизнес-метрик: noop, когда метрики выключены
	type businessMetrics interface {
		IncBookingCreated()
		IncBookingCancelled()
		IncReminderFired()
		IncSweeperFlip(direction string)
		IncPrayerFetch(status string)
	}
	var bizMetrics businessMetrics = metrics.Noop{}
	if cfg.Metrics.Enabled {
		bizMetrics = metricsCollector
	}

	timeProvider := &reminder.RealTimeProvider{}

	// Инициализируем сервисы
	prayerTimesSvc := prayerTimesService.NewService(
		prayerCacheRepository,
		prayerClient,
		bizMetrics,
		log,
		time.Duration(cfg.Prayer.BlockHalfWidthMinutes)*time.Minute,
		loc,
	)
	blackoutSvc := blackoutsService.NewService(blackoutRepository, log)
	therapistSvc := therapistsService.NewService(
		therapistRepository,
		bookingRepository,
		txMgr,
		timeProvider,
		bizMetrics,
		log,
	)
	availabilitySvc := availabilityService.NewService(
		therapistRepository,
		bookingRepository,
		blackoutSvc,
		prayerTimesSvc,
		log,
		cfg.Booking.SlotConfig(),
		cfg.Booking.SessionMinutes,
		cfg.Booking.MaxDaysAhead,
		loc,
	)
	waitlistSvc := waitlistService.NewService(waitlistRepository, log)

	// Планировщик напоминаний
	reminderScheduler := reminder.NewScheduler(
		bookingRepository,
		notifyClient,
		timeProvider,
		bizMetrics,
		log,
		time.Duration(cfg.Reminder.LeadMinutes)*time.Minute,
	)

	bookingSvc := bookingsService.NewService(
		bookingRepository,
		reminderScheduler,
		txMgr,
		timeProvider,
		bizMetrics,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		availabilitySvc,
		blackoutSvc,
		prayerTimesSvc,
		reminderScheduler,
		txMgr,
		bizMetrics,
		log,
		cfg.Booking.SlotConfig(),
		cfg.Booking.SessionMinutes,
		cfg.Booking.MaxDaysAhead,
		loc,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		availabilitySvc,
		log,
		cfg.Booking.MaxDaysAhead,
	)

	// Восстанавливаем таймеры напоминаний после рестарта
	if err := reminderScheduler.RestoreAll(context.Background()); err != nil {
		log.Error("Failed to restore reminder timers: %v", err)
	}

	// Запускаем фоновые задачи
	jobsCtx, cancelJobs := context.WithCancel(context.Background())
	defer cancelJobs()

	activationJob := activation.NewJob(
		therapistSvc,
		timeProvider,
		log,
		time.Duration(cfg.Jobs.ActivationIntervalMinutes)*time.Minute,
	)
	go activationJob.Run(jobsCtx)

	prefetchJob := prayerprefetch.NewJob(
		prayerTimesSvc,
		timeProvider,
		log,
		cfg.Prayer.PrefetchDays,
		loc,
	)
	go prefetchJob.Run(jobsCtx)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getBookings := getBookingsHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	getTherapists := getTherapistsHandler.NewHandler(therapistSvc, log)
	checkAvailability := checkAvailabilityHandler.NewHandler(availabilitySvc, log, cfg.Booking.SessionMinutes)
	manageTherapists := manageTherapistsHandler.NewHandler(therapistSvc, log)
	joinWaitlist := joinWaitlistHandler.NewHandler(waitlistSvc, log)
	manageWaitlist := manageWaitlistHandler.NewHandler(waitlistSvc, log)
	manageBlackouts := manageBlackoutsHandler.NewHandler(blackoutSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware и endpoint (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Доступные слоты на дату
	api.HandleFunc("/slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Даты с хотя бы одним свободным слотом
	api.HandleFunc("/slots/dates", getAvailableSlots.HandleDates).Methods(http.MethodGet)

	// Список терапевтов
	api.HandleFunc("/therapists", getTherapists.Handle).Methods(http.MethodGet)

	// Проверка доступности терапевта на конкретное время
	api.HandleFunc("/therapists/{therapistId}/availability", checkAvailability.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание бронирования
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Отмена бронирования
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// История бронирований пользователя
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// Постановка в лист ожидания
	protected.HandleFunc("/waitlist", joinWaitlist.Handle).Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES (требуют X-User-ID из списка администраторов)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.Auth, middleware.Admin(cfg.Auth.AdminIDs))

	// --- Бронирования ---
	admin.HandleFunc("/bookings", getBookings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

	// --- Терапевты ---
	admin.HandleFunc("/therapists", manageTherapists.HandleCreate).Methods(http.MethodPost)
	admin.HandleFunc("/therapists/{therapistId}", manageTherapists.HandleUpdate).Methods(http.MethodPatch)
	admin.HandleFunc("/therapists/{therapistId}", manageTherapists.HandleDelete).Methods(http.MethodDelete)
	admin.HandleFunc("/therapists/{therapistId}/active", manageTherapists.HandleToggle).Methods(http.MethodPatch)
	admin.HandleFunc("/therapists/{therapistId}/inactive-window", manageTherapists.HandleSchedule).Methods(http.MethodPut)
	admin.HandleFunc("/therapists/{therapistId}/inactive-window", manageTherapists.HandleCancelSchedule).Methods(http.MethodDelete)

	// --- Лист ожидания ---
	admin.HandleFunc("/waitlist", manageWaitlist.HandleList).Methods(http.MethodGet)
	admin.HandleFunc("/waitlist/{entryId}", manageWaitlist.HandleGet).Methods(http.MethodGet)
	admin.HandleFunc("/waitlist/{entryId}", manageWaitlist.HandleRemove).Methods(http.MethodDelete)

	// --- Выходные дни ---
	admin.HandleFunc("/blackouts", manageBlackouts.HandleGet).Methods(http.MethodGet)
	admin.HandleFunc("/blackouts/weekdays/{weekday}", manageBlackouts.HandleAddWeekday).Methods(http.MethodPut)
	admin.HandleFunc("/blackouts/weekdays/{weekday}", manageBlackouts.HandleRemoveWeekday).Methods(http.MethodDelete)
	admin.HandleFunc("/blackouts/dates/{date}", manageBlackouts.HandleAddDate).Methods(http.MethodPut)
	admin.HandleFunc("/blackouts/dates/{date}", manageBlackouts.HandleRemoveDate).Methods(http.MethodDelete)

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

	// Останавливаем фоновые задачи и таймеры напоминаний
	cancelJobs()
	reminderScheduler.Stop()

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

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
