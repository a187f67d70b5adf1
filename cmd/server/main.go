package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/clinicstock/alert-engine/config"
	"github.com/clinicstock/alert-engine/pkg/broker"
	"github.com/clinicstock/alert-engine/pkg/cache"
	"github.com/clinicstock/alert-engine/pkg/logger"
	"github.com/clinicstock/alert-engine/pkg/postgres"

	alertH "github.com/clinicstock/alert-engine/internal/alerting/handler"
	alertRepoPkg "github.com/clinicstock/alert-engine/internal/alerting/repository"
	alertUCPkg "github.com/clinicstock/alert-engine/internal/alerting/usecase"
	invRepoPkg "github.com/clinicstock/alert-engine/internal/inventory/repository"
	metricsRepoPkg "github.com/clinicstock/alert-engine/internal/metrics/repository"
	metricsUCPkg "github.com/clinicstock/alert-engine/internal/metrics/usecase"
	notifierKafka "github.com/clinicstock/alert-engine/internal/notifier/kafka"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// 1. Load Configuration
	_ = godotenv.Load() // Load .env file if it exists
	cfg := config.LoadEnv()

	// 2. Initialize Logger
	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     false,
		Encoding:          "json",
		Level:             "info",
		DisableCaller:     false,
		DisableStacktrace: false,
	}

	if cfg.Server.AppEnv == "development" || cfg.Server.AppEnv == "dev" {
		logConfig.IsDevelopment = true
		logConfig.Encoding = cfg.Logger.Encoding
		logConfig.Level = cfg.Logger.Level
		logConfig.DisableCaller = cfg.Logger.DisableCaller
		logConfig.DisableStacktrace = cfg.Logger.DisableStacktrace
	}

	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	// 3. Connect to Database
	db, err := postgres.NewPostgres(&postgres.Config{
		Host:            cfg.Postgres.Host,
		Port:            cfg.Postgres.Port,
		User:            cfg.Postgres.User,
		Password:        cfg.Postgres.Password,
		DBName:          cfg.Postgres.DBName,
		SSLMode:         cfg.Postgres.SSLMode,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second,
		ConnMaxIdleTime: time.Duration(cfg.Postgres.ConnMaxIdleTime) * time.Second,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to database", zap.Error(err))
	}
	defer db.Close()
	appLogger.Info("Connected to PostgreSQL database", zap.String("db_name", cfg.Postgres.DBName))

	// 4. Initialize Redis (run lock)
	redisClient, err := cache.NewRedisClient(&cache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()
	appLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))

	// 5. Initialize Kafka Producer (notification queue)
	producer := broker.NewProducer(&broker.Config{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.Topic,
	})
	defer producer.Close()
	appLogger.Info("Connected to Kafka producer",
		zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))

	// 6. Initialize Repositories
	configRepo := alertRepoPkg.NewPGConfigRepository(db)
	alertRepo := alertRepoPkg.NewPGAlertRepository(db)
	invRepo := invRepoPkg.NewPGRepository(db)
	metricsRepo := metricsRepoPkg.NewPGRepository(db)

	// 7. Initialize UseCases
	queuer := notifierKafka.NewQueuer(producer)
	metricsUC := metricsUCPkg.NewMetricsUseCase(invRepo, metricsRepo, appLogger)
	alertUC := alertUCPkg.NewAlertUseCase(
		configRepo, alertRepo, invRepo, metricsUC, queuer, redisClient,
		appLogger, cfg.Run.WorkerCount, cfg.Run.LockTTL,
	)

	// 8. HTTP server (external trigger surface)
	if cfg.Server.AppEnv != "development" && cfg.Server.AppEnv != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	runHandler := alertH.NewAlertRunHandler(alertUC, appLogger)
	runHandler.RegisterRoutes(router)

	port := cfg.Server.HTTPPort
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	srv := &http.Server{
		Addr:    port,
		Handler: router,
	}

	appLogger.Info("Starting HTTP server", zap.String("port", port))
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("failed to serve", zap.Error(err))
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("forced shutdown: %v", err)
	}
	appLogger.Info("Server stopped")
}
