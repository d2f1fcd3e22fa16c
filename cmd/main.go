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

	_ "github.com/lib/pq"

	"github.com/m04kA/SMC-SchedulingService/internal/api"
	availabilityHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/availability"
	cancelMeetingHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/cancel_meeting"
	createBookingHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/create_booking"
	eventTypesHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/event_types"
	exportMeetingICSHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/export_meeting_ics"
	getAvailableSlotsHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_available_slots"
	getMeetingHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_meeting"
	healthHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/health"
	listMeetingsHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/list_meetings"
	"github.com/m04kA/SMC-SchedulingService/internal/calendar"
	"github.com/m04kA/SMC-SchedulingService/internal/config"
	availabilityRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/availability"
	eventTypeRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/eventtype"
	meetingRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/meeting"
	availabilityService "github.com/m04kA/SMC-SchedulingService/internal/service/availability"
	eventTypesService "github.com/m04kA/SMC-SchedulingService/internal/service/eventtypes"
	meetingsService "github.com/m04kA/SMC-SchedulingService/internal/service/meetings"
	createBookingUC "github.com/m04kA/SMC-SchedulingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/keylock"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
	"github.com/m04kA/SMC-SchedulingService/pkg/metrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/txmanager"
)

func main() {
	configPath := "config.toml"
	if v := os.Getenv("SCHEDULER_CONFIG"); v != "" {
		configPath = v
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
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

	log.Info("Starting SMC-SchedulingService...")
	log.Info("Configuration loaded from %s", configPath)

	// Метрики (nil, если выключены: все методы *metrics.Metrics безопасны для nil)
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

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil, cfg.Metrics.ServiceName)
	}

	// Репозитории
	eventTypeRepository := eventTypeRepo.NewRepository(wrappedDB)
	availabilityRepository := availabilityRepo.NewRepository(wrappedDB)
	meetingRepository := meetingRepo.NewRepository(wrappedDB)

	txMgr := txmanager.NewTransactionManager(wrappedDB)
	dateLocker := keylock.NewWithTimeout(cfg.Booking.LockWaitTimeout())
	calendarBuilder := calendar.NewBuilder(cfg.Calendar.ProductID, cfg.Calendar.UIDDomain)

	// Сервисы
	eventTypesSvc := eventTypesService.NewService(eventTypeRepository, txMgr, log)
	availabilitySvc := availabilityService.NewService(availabilityRepository, log)
	meetingsSvc := meetingsService.NewService(meetingRepository, calendarBuilder, metricsCollector, log)

	// Use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		eventTypeRepository,
		availabilityRepository,
		meetingRepository,
		metricsCollector,
		log,
	)
	createBookingUseCase := createBookingUC.NewUseCase(
		eventTypeRepository,
		meetingRepository,
		txMgr,
		dateLocker,
		metricsCollector,
		log,
	)

	// Handlers
	router := api.NewRouter(api.Handlers{
		Health:            healthHandler.NewHandler(wrappedDB, log),
		GetAvailableSlots: getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log),
		CreateBooking:     createBookingHandler.NewHandler(createBookingUseCase, log),
		ListMeetings:      listMeetingsHandler.NewHandler(meetingsSvc, log),
		GetMeeting:        getMeetingHandler.NewHandler(meetingsSvc, log),
		ExportMeetingICS:  exportMeetingICSHandler.NewHandler(meetingsSvc, log),
		CancelMeeting:     cancelMeetingHandler.NewHandler(meetingsSvc, log),
		EventTypes:        eventTypesHandler.NewHandler(eventTypesSvc, log),
		Availability:      availabilityHandler.NewHandler(availabilitySvc, log),
	}, api.RouterOptions{
		Metrics:     metricsCollector,
		MetricsPath: cfg.Metrics.Path,
	})
	if cfg.Metrics.Enabled {
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// Создаем HTTP сервер
	addr := cfg.Server.Addr()
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
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

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

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
