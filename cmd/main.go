package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	cancelBookingHandler "github.com/barberbook/booking-service/internal/api/handlers/cancel_booking"
	checkConflictsHandler "github.com/barberbook/booking-service/internal/api/handlers/check_conflicts"
	createBookingHandler "github.com/barberbook/booking-service/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/barberbook/booking-service/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/barberbook/booking-service/internal/api/handlers/get_booking"
	getBusinessHoursHandler "github.com/barberbook/booking-service/internal/api/handlers/get_business_hours"
	getStoreBookingsHandler "github.com/barberbook/booking-service/internal/api/handlers/get_store_bookings"
	getStoreServicesHandler "github.com/barberbook/booking-service/internal/api/handlers/get_store_services"
	getUserBookingsHandler "github.com/barberbook/booking-service/internal/api/handlers/get_user_bookings"
	rescheduleBookingHandler "github.com/barberbook/booking-service/internal/api/handlers/reschedule_booking"
	updateBookingStatusHandler "github.com/barberbook/booking-service/internal/api/handlers/update_booking_status"
	updateBusinessHoursHandler "github.com/barberbook/booking-service/internal/api/handlers/update_business_hours"
	"github.com/barberbook/booking-service/internal/api/middleware"
	"github.com/barberbook/booking-service/internal/config"
	bookingStorage "github.com/barberbook/booking-service/internal/infra/storage/booking"
	catalogStorage "github.com/barberbook/booking-service/internal/infra/storage/catalog"
	hoursStorage "github.com/barberbook/booking-service/internal/infra/storage/hours"
	staffStorage "github.com/barberbook/booking-service/internal/infra/storage/staff"
	"github.com/barberbook/booking-service/internal/integrations/linemessaging"
	"github.com/barberbook/booking-service/internal/integrations/mailer"
	"github.com/barberbook/booking-service/internal/notifications"
	"github.com/barberbook/booking-service/internal/reminders"
	"github.com/barberbook/booking-service/internal/scheduling"
	bookingsService "github.com/barberbook/booking-service/internal/service/bookings"
	businessHoursService "github.com/barberbook/booking-service/internal/service/businesshours"
	catalogService "github.com/barberbook/booking-service/internal/service/catalog"
	checkConflicts "github.com/barberbook/booking-service/internal/usecase/check_conflicts"
	createBooking "github.com/barberbook/booking-service/internal/usecase/create_booking"
	getAvailableSlots "github.com/barberbook/booking-service/internal/usecase/get_available_slots"
	rescheduleBooking "github.com/barberbook/booking-service/internal/usecase/reschedule_booking"
	"github.com/barberbook/booking-service/pkg/dbmetrics"
	"github.com/barberbook/booking-service/pkg/logger"
	"github.com/barberbook/booking-service/pkg/metrics"
	"github.com/barberbook/booking-service/pkg/simpletxmanager"
	"github.com/barberbook/booking-service/pkg/txmanager"
)

const configPath = "config.toml"

// TxManager общий интерфейс менеджеров транзакций
// (txmanager с метриками и simpletxmanager без них)
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting booking service")

	// Коллекторы метрик регистрируются всегда; endpoint и обертка БД
	// включаются флагом metrics.enabled
	metricsCollector := metrics.New(cfg.Metrics.ServiceName)

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to open database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Connected to database %s:%d/%s", cfg.Database.Host, cfg.Database.Port, cfg.Database.Name)

	stopMetricsCh := make(chan struct{})

	var (
		dbExec dbmetrics.DBExecutor
		txMgr  TxManager
	)
	if cfg.Metrics.Enabled {
		wrapped := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		dbExec = wrapped
		txMgr = txmanager.NewTransactionManager(wrapped)
	} else {
		dbExec = db
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Репозитории
	bookingRepo := bookingStorage.NewRepository(dbExec)
	staffRepo := staffStorage.NewRepository(dbExec)
	catalogRepo := catalogStorage.NewRepository(dbExec)
	hoursRepo := hoursStorage.NewRepository(dbExec)

	// Каналы уведомлений (nil - канал выключен)
	var lineClient notifications.LineClient
	if cfg.Line.Enabled {
		lineClient = linemessaging.NewClient(
			cfg.Line.BaseURL,
			cfg.Line.ChannelToken,
			time.Duration(cfg.Line.Timeout)*time.Second,
			cfg.Line.RequestsPerSecond,
			log,
		)
		log.Info("LINE messaging enabled: %s", cfg.Line.BaseURL)
	}

	var emailSender notifications.EmailSender
	if cfg.SMTP.Enabled {
		emailSender = mailer.NewSMTPSender(cfg.SMTP.Host, strconv.Itoa(cfg.SMTP.Port), cfg.SMTP.From)
		log.Info("SMTP mailer enabled: %s:%d", cfg.SMTP.Host, cfg.SMTP.Port)
	}

	notifier := notifications.NewService(lineClient, emailSender, metricsCollector, log)

	// Движок доступности
	engine := scheduling.NewEngine(hoursRepo, staffRepo, bookingRepo, log)

	// Use cases
	createBookingUC := createBooking.NewUseCase(
		bookingRepo, catalogRepo, staffRepo, engine, txMgr, notifier, metricsCollector, log)
	checkConflictsUC := checkConflicts.NewUseCase(catalogRepo, staffRepo, engine, log)
	rescheduleBookingUC := rescheduleBooking.NewUseCase(
		bookingRepo, staffRepo, engine, txMgr, notifier, log)
	getAvailableSlotsUC := getAvailableSlots.NewUseCase(catalogRepo, staffRepo, bookingRepo, engine, log)

	// Сервисы
	bookingsSvc := bookingsService.NewService(bookingRepo, notifier, metricsCollector, log)
	businessHoursSvc := businessHoursService.NewService(hoursRepo, txMgr, log)
	catalogSvc := catalogService.NewService(catalogRepo, log)

	// Handlers
	createBookingH := createBookingHandler.NewHandler(createBookingUC, log)
	checkConflictsH := checkConflictsHandler.NewHandler(checkConflictsUC, log)
	rescheduleBookingH := rescheduleBookingHandler.NewHandler(rescheduleBookingUC, log)
	getAvailableSlotsH := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUC, log)
	getBookingH := getBookingHandler.NewHandler(bookingsSvc, log)
	cancelBookingH := cancelBookingHandler.NewHandler(bookingsSvc, log)
	updateBookingStatusH := updateBookingStatusHandler.NewHandler(bookingsSvc, log)
	getUserBookingsH := getUserBookingsHandler.NewHandler(bookingsSvc, log)
	getStoreBookingsH := getStoreBookingsHandler.NewHandler(bookingsSvc, log)
	getBusinessHoursH := getBusinessHoursHandler.NewHandler(businessHoursSvc, log)
	getStoreServicesH := getStoreServicesHandler.NewHandler(catalogSvc, log)
	updateBusinessHoursH := updateBusinessHoursHandler.NewHandler(businessHoursSvc, log)

	// Воркер напоминаний
	var reminderWorker *reminders.Worker
	if cfg.Reminders.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		dedup := reminders.NewRedisDeduplicator(redisClient)
		reminderWorker = reminders.NewWorker(bookingRepo, notifier, dedup, cfg.Reminders.Schedule, log)
		if err := reminderWorker.Start(); err != nil {
			log.Fatal("Failed to start reminder worker: %v", err)
		}
	}

	// Роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler())
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (виджет записи работает без авторизации)
	// ============================================================

	// Календарь свободных слотов
	api.HandleFunc("/stores/{storeId}/available-slots", getAvailableSlotsH.Handle).Methods(http.MethodGet)

	// График работы магазина
	api.HandleFunc("/stores/{storeId}/business-hours", getBusinessHoursH.Handle).Methods(http.MethodGet)

	// Каталог услуг магазина
	api.HandleFunc("/stores/{storeId}/services", getStoreServicesH.Handle).Methods(http.MethodGet)

	// Предварительная проверка конфликтов
	api.HandleFunc("/bookings/conflict-check", checkConflictsH.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание бронирования
	protected.HandleFunc("/bookings", createBookingH.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBookingH.Handle).Methods(http.MethodGet)

	// Отмена бронирования
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBookingH.Handle).Methods(http.MethodPatch)

	// Перенос бронирования
	protected.HandleFunc("/bookings/{bookingId}/reschedule", rescheduleBookingH.Handle).Methods(http.MethodPatch)

	// История бронирований клиента
	protected.HandleFunc("/users/{userId}/bookings", getUserBookingsH.Handle).Methods(http.MethodGet)

	// --- Управление магазином (для менеджеров) ---
	// Список бронирований магазина
	protected.HandleFunc("/stores/{storeId}/bookings", getStoreBookingsH.Handle).Methods(http.MethodGet)

	// Смена статуса бронирования
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatusH.Handle).Methods(http.MethodPatch)

	// Замена графика работы
	protected.HandleFunc("/stores/{storeId}/business-hours", updateBusinessHoursH.Handle).Methods(http.MethodPut)

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

	// Останавливаем воркер напоминаний
	if reminderWorker != nil {
		reminderWorker.Stop()
	}

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
