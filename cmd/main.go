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
	"github.com/redis/go-redis/v9"

	cancelSessionHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/cancel_session"
	confirmBookingHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/confirm_booking"
	getAvailabilityConfigHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_availability_config"
	getDayStatusesHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_day_statuses"
	getEligibleProfessionalsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_eligible_professionals"
	getNearestDateHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_nearest_date"
	getOpenSlotsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_open_slots"
	getSessionHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_session"
	listAvailabilityConfigsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/list_availability_configs"
	openSessionHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/open_session"
	selectDateHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/select_date"
	selectProfessionalHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/select_professional"
	selectSlotHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/select_slot"
	submitDetailsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/submit_details"
	updateAvailabilityConfigHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/update_availability_config"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/config"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/sessionstore"
	configRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/config"
	inventoryRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/inventory"
	templatesRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/templates"
	notifierClient "github.com/m04kA/SMC-AppointmentService/internal/integrations/notifier"
	staffServiceClient "github.com/m04kA/SMC-AppointmentService/internal/integrations/staffservice"
	configService "github.com/m04kA/SMC-AppointmentService/internal/service/config"
	sessionService "github.com/m04kA/SMC-AppointmentService/internal/service/session"
	getDayStatusesUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_day_statuses"
	getEligibleProfessionalsUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_eligible_professionals"
	getNearestDateUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_nearest_date"
	getOpenSlotsUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_open_slots"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/metrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-AppointmentService/pkg/txmanager"
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

	log.Info("Starting SMC-AppointmentService...")
	log.Info("Configuration loaded from config.toml")

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

	// Подключаемся к Redis (хранилище сессий бронирования)
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Failed to ping redis: %v", err)
	}
	log.Info("Successfully connected to redis (addr=%s, db=%d)", cfg.Redis.Addr, cfg.Redis.DB)

	// Инициализируем интеграционных клиентов
	staffClient := staffServiceClient.NewClient(
		cfg.StaffService.URL,
		time.Duration(cfg.StaffService.Timeout)*time.Second,
		log,
	)
	notifClient := notifierClient.NewClient(
		cfg.Notifier.URL,
		time.Duration(cfg.Notifier.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (StaffService=%s timeout=%ds, Notifier=%s timeout=%ds)",
		cfg.StaffService.URL, cfg.StaffService.Timeout, cfg.Notifier.URL, cfg.Notifier.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		inventoryRepository *inventoryRepo.Repository
		templatesRepository *templatesRepo.Repository
		configRepository    *configRepo.Repository
	)

	// Интерфейс для transaction manager (используется при подтверждении брони)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		// Инициализируем репозитории с обёрткой метрик
		inventoryRepository = inventoryRepo.NewRepository(wrappedDB)
		templatesRepository = templatesRepo.NewRepository(wrappedDB)
		configRepository = configRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		// Инициализируем репозитории без метрик
		inventoryRepository = inventoryRepo.NewRepository(db)
		templatesRepository = templatesRepo.NewRepository(db)
		configRepository = configRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Хранилище сессий бронирования поверх Redis
	sessionStore := sessionstore.NewStore(redisClient)

	// Инициализируем сервисы
	configSvc := configService.NewService(
		configRepository,
		staffClient,
		log,
	)

	sessionEngine := sessionService.NewEngine(
		sessionStore,
		inventoryRepository,
		templatesRepository,
		configSvc,
		staffClient,
		notifClient,
		txMgr,
		&sessionService.RealTimeProvider{},
		time.Duration(cfg.Session.TTL)*time.Second,
		log,
	)

	// Инициализируем use cases
	getDayStatusesUseCase := getDayStatusesUC.NewUseCase(
		inventoryRepository,
		templatesRepository,
		configSvc,
		staffClient,
		log,
	)
	getOpenSlotsUseCase := getOpenSlotsUC.NewUseCase(
		inventoryRepository,
		templatesRepository,
		configSvc,
		staffClient,
		log,
	)
	getNearestDateUseCase := getNearestDateUC.NewUseCase(
		inventoryRepository,
		templatesRepository,
		configSvc,
		staffClient,
		log,
	)
	getEligibleProfessionalsUseCase := getEligibleProfessionalsUC.NewUseCase(
		inventoryRepository,
		templatesRepository,
		configSvc,
		staffClient,
		log,
	)

	// Инициализируем handlers
	getDayStatuses := getDayStatusesHandler.NewHandler(getDayStatusesUseCase, log)
	getOpenSlots := getOpenSlotsHandler.NewHandler(getOpenSlotsUseCase, log)
	getNearestDate := getNearestDateHandler.NewHandler(getNearestDateUseCase, log)
	getEligibleProfessionals := getEligibleProfessionalsHandler.NewHandler(getEligibleProfessionalsUseCase, log)
	getAvailabilityConfig := getAvailabilityConfigHandler.NewHandler(configSvc, log)
	listAvailabilityConfigs := listAvailabilityConfigsHandler.NewHandler(configSvc, log)
	updateAvailabilityConfig := updateAvailabilityConfigHandler.NewHandler(configSvc, log)
	openSession := openSessionHandler.NewHandler(sessionEngine, log)
	getSession := getSessionHandler.NewHandler(sessionEngine, log)
	selectDate := selectDateHandler.NewHandler(sessionEngine, log)
	selectSlot := selectSlotHandler.NewHandler(sessionEngine, log)
	selectProfessional := selectProfessionalHandler.NewHandler(sessionEngine, log)
	submitDetails := submitDetailsHandler.NewHandler(sessionEngine, log)
	confirmBooking := confirmBookingHandler.NewHandler(sessionEngine, log)
	cancelSession := cancelSessionHandler.NewHandler(sessionEngine, log)

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

	// Раскраска календаря по статусам дней
	api.HandleFunc("/companies/{companyId}/services/{serviceId}/day-statuses",
		getDayStatuses.Handle).Methods(http.MethodGet)

	// Открытые слоты на дату
	api.HandleFunc("/companies/{companyId}/services/{serviceId}/open-slots",
		getOpenSlots.Handle).Methods(http.MethodGet)

	// Ближайшая доступная дата
	api.HandleFunc("/companies/{companyId}/services/{serviceId}/nearest-date",
		getNearestDate.Handle).Methods(http.MethodGet)

	// Специалисты со свободными слотами на дату
	api.HandleFunc("/companies/{companyId}/services/{serviceId}/professionals",
		getEligibleProfessionals.Handle).Methods(http.MethodGet)

	// Эффективная конфигурация доступности
	api.HandleFunc("/companies/{companyId}/availability-config",
		getAvailabilityConfig.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Сессии бронирования ---
	// Открытие сессии
	protected.HandleFunc("/sessions", openSession.Handle).Methods(http.MethodPost)

	// Текущее состояние сессии
	protected.HandleFunc("/sessions/{sessionId}", getSession.Handle).Methods(http.MethodGet)

	// Отмена сессии
	protected.HandleFunc("/sessions/{sessionId}", cancelSession.Handle).Methods(http.MethodDelete)

	// Шаги сессии
	protected.HandleFunc("/sessions/{sessionId}/date", selectDate.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/sessions/{sessionId}/slot", selectSlot.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/sessions/{sessionId}/professional", selectProfessional.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/sessions/{sessionId}/details", submitDetails.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/sessions/{sessionId}/confirm", confirmBooking.Handle).Methods(http.MethodPost)

	// --- Управление компанией (для менеджеров) ---
	// Список конфигураций компании
	protected.HandleFunc("/companies/{companyId}/availability-configs",
		listAvailabilityConfigs.Handle).Methods(http.MethodGet)

	// Обновление конфигурации доступности
	protected.HandleFunc("/companies/{companyId}/availability-config",
		updateAvailabilityConfig.Handle).Methods(http.MethodPut)

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
