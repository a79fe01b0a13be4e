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

	changeStaffStatusHandler "github.com/m04kA/SMC-StaffService/internal/api/handlers/change_staff_status"
	checkAvailabilityHandler "github.com/m04kA/SMC-StaffService/internal/api/handlers/check_availability"
	createScheduleHandler "github.com/m04kA/SMC-StaffService/internal/api/handlers/create_schedule"
	createStaffHandler "github.com/m04kA/SMC-StaffService/internal/api/handlers/create_staff"
	createTimeOffHandler "github.com/m04kA/SMC-StaffService/internal/api/handlers/create_time_off"
	deleteScheduleHandler "github.com/m04kA/SMC-StaffService/internal/api/handlers/delete_schedule"
	deleteStaffHandler "github.com/m04kA/SMC-StaffService/internal/api/handlers/delete_staff"
	deleteTimeOffHandler "github.com/m04kA/SMC-StaffService/internal/api/handlers/delete_time_off"
	getAvailableSlotsHandler "github.com/m04kA/SMC-StaffService/internal/api/handlers/get_available_slots"
	getAvailableStaffHandler "github.com/m04kA/SMC-StaffService/internal/api/handlers/get_available_staff"
	getServiceStaffHandler "github.com/m04kA/SMC-StaffService/internal/api/handlers/get_service_staff"
	getStaffHandler "github.com/m04kA/SMC-StaffService/internal/api/handlers/get_staff"
	getStaffDayHandler "github.com/m04kA/SMC-StaffService/internal/api/handlers/get_staff_day"
	getStaffStatsHandler "github.com/m04kA/SMC-StaffService/internal/api/handlers/get_staff_stats"
	listAssignmentsHandler "github.com/m04kA/SMC-StaffService/internal/api/handlers/list_assignments"
	listSchedulesHandler "github.com/m04kA/SMC-StaffService/internal/api/handlers/list_schedules"
	listStaffHandler "github.com/m04kA/SMC-StaffService/internal/api/handlers/list_staff"
	listTimeOffHandler "github.com/m04kA/SMC-StaffService/internal/api/handlers/list_time_off"
	resolveTimeOffHandler "github.com/m04kA/SMC-StaffService/internal/api/handlers/resolve_time_off"
	saveWorkingHoursHandler "github.com/m04kA/SMC-StaffService/internal/api/handlers/save_working_hours"
	setDefaultScheduleHandler "github.com/m04kA/SMC-StaffService/internal/api/handlers/set_default_schedule"
	setStaffBookableHandler "github.com/m04kA/SMC-StaffService/internal/api/handlers/set_staff_bookable"
	syncAssignmentsHandler "github.com/m04kA/SMC-StaffService/internal/api/handlers/sync_assignments"
	updateScheduleHandler "github.com/m04kA/SMC-StaffService/internal/api/handlers/update_schedule"
	updateStaffHandler "github.com/m04kA/SMC-StaffService/internal/api/handlers/update_staff"
	updateTimeOffHandler "github.com/m04kA/SMC-StaffService/internal/api/handlers/update_time_off"
	"github.com/m04kA/SMC-StaffService/internal/api/middleware"
	"github.com/m04kA/SMC-StaffService/internal/config"
	assignmentRepo "github.com/m04kA/SMC-StaffService/internal/infra/storage/assignment"
	scheduleRepo "github.com/m04kA/SMC-StaffService/internal/infra/storage/schedule"
	staffRepo "github.com/m04kA/SMC-StaffService/internal/infra/storage/staff"
	timeOffRepo "github.com/m04kA/SMC-StaffService/internal/infra/storage/timeoff"
	serviceCatalogClient "github.com/m04kA/SMC-StaffService/internal/integrations/servicecatalog"
	assignmentsService "github.com/m04kA/SMC-StaffService/internal/service/assignments"
	schedulesService "github.com/m04kA/SMC-StaffService/internal/service/schedules"
	staffService "github.com/m04kA/SMC-StaffService/internal/service/staff"
	timeoffService "github.com/m04kA/SMC-StaffService/internal/service/timeoff"
	checkAvailabilityUC "github.com/m04kA/SMC-StaffService/internal/usecase/check_availability"
	getAvailableSlotsUC "github.com/m04kA/SMC-StaffService/internal/usecase/get_available_slots"
	getAvailableStaffUC "github.com/m04kA/SMC-StaffService/internal/usecase/get_available_staff"
	getStaffDayUC "github.com/m04kA/SMC-StaffService/internal/usecase/get_staff_day"
	"github.com/m04kA/SMC-StaffService/pkg/dbmetrics"
	"github.com/m04kA/SMC-StaffService/pkg/logger"
	"github.com/m04kA/SMC-StaffService/pkg/metrics"
	"github.com/m04kA/SMC-StaffService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-StaffService/pkg/txmanager"
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

	log.Info("Starting SMC-StaffService...")
	log.Info("Configuration loaded from config.toml")

	// Значения по умолчанию для расписаний и слотов
	staffDefaults, err := cfg.ToStaffDefaults()
	if err != nil {
		log.Fatal("Invalid staff defaults: %v", err)
	}

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

	// Клиент каталога услуг
	catalogClient := serviceCatalogClient.NewClient(
		cfg.ServiceCatalog.URL,
		time.Duration(cfg.ServiceCatalog.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (ServiceCatalog=%s timeout=%ds)",
		cfg.ServiceCatalog.URL, cfg.ServiceCatalog.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		staffRepository      *staffRepo.Repository
		scheduleRepository   *scheduleRepo.Repository
		timeOffRepository    *timeOffRepo.Repository
		assignmentRepository *assignmentRepo.Repository
	)

	// Интерфейс transaction manager (используется сервисами)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
		DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		staffRepository = staffRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		timeOffRepository = timeOffRepo.NewRepository(wrappedDB)
		assignmentRepository = assignmentRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		staffRepository = staffRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		timeOffRepository = timeOffRepo.NewRepository(db)
		assignmentRepository = assignmentRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	staffSvc := staffService.NewService(
		staffRepository,
		scheduleRepository,
		timeOffRepository,
		txMgr,
		staffDefaults,
		log,
	)
	schedulesSvc := schedulesService.NewService(
		scheduleRepository,
		staffRepository,
		txMgr,
		log,
	)
	timeoffSvc := timeoffService.NewService(
		timeOffRepository,
		staffRepository,
		log,
	)
	assignmentsSvc := assignmentsService.NewService(
		assignmentRepository,
		staffRepository,
		catalogClient,
		txMgr,
		log,
	)

	// Инициализируем use cases
	checkAvailabilityUseCase := checkAvailabilityUC.NewUseCase(
		staffRepository,
		scheduleRepository,
		timeOffRepository,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		staffRepository,
		scheduleRepository,
		timeOffRepository,
		staffDefaults,
		log,
	)
	getAvailableStaffUseCase := getAvailableStaffUC.NewUseCase(
		staffRepository,
		scheduleRepository,
		timeOffRepository,
		assignmentRepository,
		log,
	)
	getStaffDayUseCase := getStaffDayUC.NewUseCase(
		staffRepository,
		scheduleRepository,
		timeOffRepository,
		log,
	)

	// Инициализируем handlers
	createStaff := createStaffHandler.NewHandler(staffSvc, log)
	getStaff := getStaffHandler.NewHandler(staffSvc, log)
	listStaff := listStaffHandler.NewHandler(staffSvc, log)
	updateStaff := updateStaffHandler.NewHandler(staffSvc, log)
	deleteStaff := deleteStaffHandler.NewHandler(staffSvc, log)
	changeStaffStatus := changeStaffStatusHandler.NewHandler(staffSvc, log)
	setStaffBookable := setStaffBookableHandler.NewHandler(staffSvc, log)
	getStaffStats := getStaffStatsHandler.NewHandler(staffSvc, log)

	createSchedule := createScheduleHandler.NewHandler(schedulesSvc, log)
	listSchedules := listSchedulesHandler.NewHandler(schedulesSvc, log)
	updateSchedule := updateScheduleHandler.NewHandler(schedulesSvc, log)
	setDefaultSchedule := setDefaultScheduleHandler.NewHandler(schedulesSvc, log)
	deleteSchedule := deleteScheduleHandler.NewHandler(schedulesSvc, log)
	saveWorkingHours := saveWorkingHoursHandler.NewHandler(schedulesSvc, log)

	createTimeOff := createTimeOffHandler.NewHandler(timeoffSvc, log)
	listTimeOff := listTimeOffHandler.NewHandler(timeoffSvc, log)
	updateTimeOff := updateTimeOffHandler.NewHandler(timeoffSvc, log)
	deleteTimeOff := deleteTimeOffHandler.NewHandler(timeoffSvc, log)
	resolveTimeOff := resolveTimeOffHandler.NewHandler(timeoffSvc, log)

	syncAssignments := syncAssignmentsHandler.NewHandler(assignmentsSvc, log)
	listAssignments := listAssignmentsHandler.NewHandler(assignmentsSvc, log)
	getServiceStaff := getServiceStaffHandler.NewHandler(assignmentsSvc, log)

	checkAvailability := checkAvailabilityHandler.NewHandler(checkAvailabilityUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getAvailableStaff := getAvailableStaffHandler.NewHandler(getAvailableStaffUseCase, log)
	getStaffDay := getStaffDayHandler.NewHandler(getStaffDayUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
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

	// Статические пути регистрируются до /staff/{staffId}
	api.HandleFunc("/staff/stats", getStaffStats.Handle).Methods(http.MethodGet)
	api.HandleFunc("/staff/available", getAvailableStaff.Handle).Methods(http.MethodGet)

	// Справочник сотрудников
	api.HandleFunc("/staff", listStaff.Handle).Methods(http.MethodGet)
	api.HandleFunc("/staff/{staffId}", getStaff.Handle).Methods(http.MethodGet)

	// Доступность сотрудника
	api.HandleFunc("/staff/{staffId}/availability", checkAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/staff/{staffId}/slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/staff/{staffId}/day", getStaffDay.Handle).Methods(http.MethodGet)

	// Расписания и назначения (чтение)
	api.HandleFunc("/staff/{staffId}/schedules", listSchedules.Handle).Methods(http.MethodGet)
	api.HandleFunc("/staff/{staffId}/services", listAssignments.Handle).Methods(http.MethodGet)
	api.HandleFunc("/services/{serviceId}/staff", getServiceStaff.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Сотрудники ---
	protected.HandleFunc("/staff", createStaff.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/staff/{staffId}", updateStaff.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/staff/{staffId}", deleteStaff.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/staff/{staffId}/status", changeStaffStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/staff/{staffId}/bookable", setStaffBookable.Handle).Methods(http.MethodPatch)

	// --- Расписания ---
	protected.HandleFunc("/staff/{staffId}/schedules", createSchedule.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/schedules/{scheduleId}", updateSchedule.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/schedules/{scheduleId}", deleteSchedule.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/schedules/{scheduleId}/default", setDefaultSchedule.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/schedules/{scheduleId}/working-hours", saveWorkingHours.Handle).Methods(http.MethodPut)

	// --- Отпуска ---
	protected.HandleFunc("/staff/{staffId}/time-off", createTimeOff.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/staff/{staffId}/time-off", listTimeOff.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/time-off", listTimeOff.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/time-off/{timeOffId}", updateTimeOff.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/time-off/{timeOffId}", deleteTimeOff.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/time-off/{timeOffId}/resolve", resolveTimeOff.Handle).Methods(http.MethodPost)

	// --- Назначения услуг ---
	protected.HandleFunc("/staff/{staffId}/services", syncAssignments.Handle).Methods(http.MethodPut)

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
