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

	cancelAppointmentHandler "github.com/lex4u/BSM-SchedulingService/internal/api/handlers/cancel_appointment"
	createAppointmentHandler "github.com/lex4u/BSM-SchedulingService/internal/api/handlers/create_appointment"
	deleteAppointmentHandler "github.com/lex4u/BSM-SchedulingService/internal/api/handlers/delete_appointment"
	getAppointmentHandler "github.com/lex4u/BSM-SchedulingService/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/lex4u/BSM-SchedulingService/internal/api/handlers/get_available_slots"
	getScheduleConfigHandler "github.com/lex4u/BSM-SchedulingService/internal/api/handlers/get_schedule_config"
	getStaffAppointmentsHandler "github.com/lex4u/BSM-SchedulingService/internal/api/handlers/get_staff_appointments"
	markAbsentHandler "github.com/lex4u/BSM-SchedulingService/internal/api/handlers/mark_absent"
	rescheduleAppointmentHandler "github.com/lex4u/BSM-SchedulingService/internal/api/handlers/reschedule_appointment"
	updateScheduleConfigHandler "github.com/lex4u/BSM-SchedulingService/internal/api/handlers/update_schedule_config"
	updateStatusHandler "github.com/lex4u/BSM-SchedulingService/internal/api/handlers/update_status"
	"github.com/lex4u/BSM-SchedulingService/internal/api/middleware"
	"github.com/lex4u/BSM-SchedulingService/internal/config"
	"github.com/lex4u/BSM-SchedulingService/internal/infra/migrator"
	activityRepo "github.com/lex4u/BSM-SchedulingService/internal/infra/storage/activity"
	appointmentRepo "github.com/lex4u/BSM-SchedulingService/internal/infra/storage/appointment"
	directoryRepo "github.com/lex4u/BSM-SchedulingService/internal/infra/storage/directory"
	scheduleConfigRepo "github.com/lex4u/BSM-SchedulingService/internal/infra/storage/scheduleconfig"
	"github.com/lex4u/BSM-SchedulingService/internal/reminders"
	appointmentsService "github.com/lex4u/BSM-SchedulingService/internal/service/appointments"
	scheduleConfigService "github.com/lex4u/BSM-SchedulingService/internal/service/scheduleconfig"
	createAppointmentUC "github.com/lex4u/BSM-SchedulingService/internal/usecase/create_appointment"
	getAvailableSlotsUC "github.com/lex4u/BSM-SchedulingService/internal/usecase/get_available_slots"
	rescheduleAppointmentUC "github.com/lex4u/BSM-SchedulingService/internal/usecase/reschedule_appointment"
	"github.com/lex4u/BSM-SchedulingService/pkg/clock"
	"github.com/lex4u/BSM-SchedulingService/pkg/dbmetrics"
	"github.com/lex4u/BSM-SchedulingService/pkg/logger"
	"github.com/lex4u/BSM-SchedulingService/pkg/metrics"
	"github.com/lex4u/BSM-SchedulingService/pkg/simpletxmanager"
	"github.com/lex4u/BSM-SchedulingService/pkg/txmanager"
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

	log.Info("Starting BSM-SchedulingService...")
	log.Info("Configuration loaded from config.toml")

	// Часы салона: всё расписание живёт в одной таймзоне
	businessClock, err := clock.NewBusinessClock(cfg.Business.Timezone)
	if err != nil {
		log.Fatal("Failed to load business timezone %q: %v", cfg.Business.Timezone, err)
	}
	log.Info("Business timezone: %s", cfg.Business.Timezone)

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
	mg, err := migrator.New(db, cfg.Database.MigrationsDir, log)
	if err != nil {
		log.Fatal("Failed to initialize migrator: %v", err)
	}
	if err := mg.Run(context.Background()); err != nil {
		log.Fatal("Failed to apply migrations: %v", err)
	}

	// Инициализируем репозитории (с метриками или без)
	var (
		appointmentRepository    *appointmentRepo.Repository
		activityRepository       *activityRepo.Repository
		directoryRepository      *directoryRepo.Repository
		scheduleConfigRepository *scheduleConfigRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		activityRepository = activityRepo.NewRepository(wrappedDB)
		directoryRepository = directoryRepo.NewRepository(wrappedDB)
		scheduleConfigRepository = scheduleConfigRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		appointmentRepository = appointmentRepo.NewRepository(db)
		activityRepository = activityRepo.NewRepository(db)
		directoryRepository = directoryRepo.NewRepository(db)
		scheduleConfigRepository = scheduleConfigRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	appointmentsSvc := appointmentsService.NewService(
		appointmentRepository,
		activityRepository,
		businessClock,
		log,
	)
	scheduleConfigSvc := scheduleConfigService.NewService(
		scheduleConfigRepository,
		log,
	)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		appointmentRepository,
		directoryRepository,
		scheduleConfigRepository,
		businessClock,
		log,
	)
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		directoryRepository,
		scheduleConfigRepository,
		txMgr,
		businessClock,
		log,
	)
	rescheduleAppointmentUseCase := rescheduleAppointmentUC.NewUseCase(
		appointmentRepository,
		activityRepository,
		directoryRepository,
		scheduleConfigRepository,
		txMgr,
		businessClock,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	rescheduleAppointment := rescheduleAppointmentHandler.NewHandler(rescheduleAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	getStaffAppointments := getStaffAppointmentsHandler.NewHandler(appointmentsSvc, log)
	updateStatus := updateStatusHandler.NewHandler(appointmentsSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentsSvc, log)
	markAbsent := markAbsentHandler.NewHandler(appointmentsSvc, log)
	deleteAppointment := deleteAppointmentHandler.NewHandler(appointmentsSvc, log)
	getScheduleConfig := getScheduleConfigHandler.NewHandler(scheduleConfigSvc, log)
	updateScheduleConfig := updateScheduleConfigHandler.NewHandler(scheduleConfigSvc, log)

	// Запускаем планировщик напоминаний (если включен)
	var remindersScheduler *reminders.Scheduler
	if cfg.Reminders.Enabled {
		remindersScheduler = reminders.NewScheduler(
			cfg.Reminders,
			appointmentRepository,
			directoryRepository,
			businessClock,
			log,
		)
		if err := remindersScheduler.Start(); err != nil {
			log.Fatal("Failed to start reminders scheduler: %v", err)
		}
	}

	// Настраиваем роутер
	r := mux.NewRouter()

	// Прокидываем request id во все запросы
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Сетка слотов мастера на день
	api.HandleFunc("/staff/{staffId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Конфигурация расписания салона
	api.HandleFunc("/schedule-config",
		getScheduleConfig.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Записи ---
	// Создание записи
	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)

	// Получение записи по ID (с действующим статусом и набором действий)
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)

	// Перенос записи
	protected.HandleFunc("/appointments/{appointmentId}/reschedule", rescheduleAppointment.Handle).Methods(http.MethodPatch)

	// Ручной переход статуса (confirmed, completed, no_show)
	protected.HandleFunc("/appointments/{appointmentId}/status", updateStatus.Handle).Methods(http.MethodPatch)

	// Отмена записи
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)

	// Отметка неявки
	protected.HandleFunc("/appointments/{appointmentId}/absent", markAbsent.Handle).Methods(http.MethodPatch)

	// Жёсткое удаление записи
	protected.HandleFunc("/appointments/{appointmentId}", deleteAppointment.Handle).Methods(http.MethodDelete)

	// --- Календарь мастера ---
	protected.HandleFunc("/staff/{staffId}/appointments", getStaffAppointments.Handle).Methods(http.MethodGet)

	// --- Конфигурация расписания ---
	protected.HandleFunc("/schedule-config", updateScheduleConfig.Handle).Methods(http.MethodPut)

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

	// Останавливаем планировщик напоминаний
	if remindersScheduler != nil {
		remindersScheduler.Stop()
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
