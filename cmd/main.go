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

	exportCapacityHandler "github.com/bhartnell/pmi-scheduler/internal/api/handlers/export_capacity"
	getCapacityHandler "github.com/bhartnell/pmi-scheduler/internal/api/handlers/get_capacity"
	healthHandler "github.com/bhartnell/pmi-scheduler/internal/api/handlers/health"
	updateCapacityHandler "github.com/bhartnell/pmi-scheduler/internal/api/handlers/update_capacity"
	"github.com/bhartnell/pmi-scheduler/internal/api/middleware"
	"github.com/bhartnell/pmi-scheduler/internal/config"
	capacityCache "github.com/bhartnell/pmi-scheduler/internal/infra/cache/capacity"
	agencyRepo "github.com/bhartnell/pmi-scheduler/internal/infra/storage/agency"
	clinicalSiteRepo "github.com/bhartnell/pmi-scheduler/internal/infra/storage/clinicalsite"
	userServiceClient "github.com/bhartnell/pmi-scheduler/internal/integrations/userservice"
	capacityService "github.com/bhartnell/pmi-scheduler/internal/service/capacity"
	exportCapacityUC "github.com/bhartnell/pmi-scheduler/internal/usecase/export_capacity"
	getCapacityOverviewUC "github.com/bhartnell/pmi-scheduler/internal/usecase/get_capacity_overview"
	"github.com/bhartnell/pmi-scheduler/pkg/dbmetrics"
	"github.com/bhartnell/pmi-scheduler/pkg/logger"
	"github.com/bhartnell/pmi-scheduler/pkg/metrics"
)

func main() {
	// Загружаем конфигурацию
	configPath := "config.toml"
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		configPath = p
	}
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

	log.Info("Starting PMI capacity service...")
	log.Info("Configuration loaded from %s", configPath)

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

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем репозитории (с метриками или без)
	var (
		agencyRepository       *agencyRepo.Repository
		clinicalSiteRepository *clinicalSiteRepo.Repository
	)

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")

		agencyRepository = agencyRepo.NewRepository(wrappedDB)
		clinicalSiteRepository = clinicalSiteRepo.NewRepository(wrappedDB)
	} else {
		agencyRepository = agencyRepo.NewRepository(db)
		clinicalSiteRepository = clinicalSiteRepo.NewRepository(db)
	}

	// Инициализируем кэш (если включен)
	var sourcesCache capacityService.SourcesCache = capacityCache.NoopCache{}
	if cfg.Cache.Enabled {
		redisClient := capacityCache.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		defer redisClient.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			// Кэш необязателен: ошибки Redis логируются, данные читаются из БД
			log.Warn("Redis ping failed (addr=%s): %v", cfg.Redis.Addr, err)
		}
		cancel()

		sourcesCache = capacityCache.NewCache(
			capacityCache.NewRedisKV(redisClient),
			cfg.Cache.KeyPrefix,
			time.Duration(cfg.Cache.TTLSeconds)*time.Second,
		)
		log.Info("Sources cache enabled (redis=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Cache.TTLSeconds)
	}

	// Инициализируем интеграционных клиентов
	userClient := userServiceClient.NewClient(
		cfg.UserService.URL,
		time.Duration(cfg.UserService.Timeout)*time.Second,
		cfg.UserService.RetryCount,
		log,
	)
	log.Info("Integration clients initialized (UserService=%s timeout=%ds)",
		cfg.UserService.URL, cfg.UserService.Timeout)

	// Инициализируем сервисы
	var cacheMetrics capacityService.CacheMetrics
	if cfg.Metrics.Enabled {
		cacheMetrics = metricsCollector
	}
	capacitySvc := capacityService.NewService(
		agencyRepository,
		clinicalSiteRepository,
		sourcesCache,
		cacheMetrics,
		log,
	)

	// Инициализируем use cases
	getCapacityOverviewUseCase := getCapacityOverviewUC.NewUseCase(capacitySvc, log)
	exportCapacityUseCase := exportCapacityUC.NewUseCase(
		capacitySvc,
		cfg.Export.FilenamePrefix,
		cfg.Export.SheetName,
		log,
	)

	// Инициализируем handlers
	getCapacity := getCapacityHandler.NewHandler(getCapacityOverviewUseCase, log)
	updateCapacity := updateCapacityHandler.NewHandler(capacitySvc, log)
	exportCapacity := exportCapacityHandler.NewHandler(exportCapacityUseCase, log)
	health := healthHandler.NewHandler(db, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// Liveness (публичный, без аутентификации)
	r.HandleFunc("/health", health.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Auth(userClient, cfg.Auth.ViewRole(), cfg.Auth.EditRole(), log))

	api.HandleFunc("/capacity/export", exportCapacity.Handle).Methods(http.MethodGet)
	api.HandleFunc("/capacity", getCapacity.Handle).Methods(http.MethodGet)
	api.HandleFunc("/capacity/{source}/{id}", updateCapacity.Handle).Methods(http.MethodPatch)

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
