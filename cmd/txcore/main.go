package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/adiprasetyo/txcore/internal/pkg/circuitbreaker"
	"github.com/adiprasetyo/txcore/internal/pkg/config"
	"github.com/adiprasetyo/txcore/internal/pkg/database"
	"github.com/adiprasetyo/txcore/internal/pkg/health"
	"github.com/adiprasetyo/txcore/internal/pkg/logger"
	"github.com/adiprasetyo/txcore/internal/pkg/middleware"
	natspkg "github.com/adiprasetyo/txcore/internal/pkg/nats"
	nrpkg "github.com/adiprasetyo/txcore/internal/pkg/newrelic"
	nsqpkg "github.com/adiprasetyo/txcore/internal/pkg/nsq"
	"github.com/adiprasetyo/txcore/internal/pkg/retry"
	"github.com/adiprasetyo/txcore/internal/pkg/server"
	auditgw "github.com/adiprasetyo/txcore/services/audit/gateway"
	auditrepo "github.com/adiprasetyo/txcore/services/audit/repository"
	audituc "github.com/adiprasetyo/txcore/services/audit/usecase"
	"github.com/adiprasetyo/txcore/services/transaction"
	"github.com/adiprasetyo/txcore/services/transaction/backend"
	"github.com/adiprasetyo/txcore/services/transaction/gateway"
	"github.com/adiprasetyo/txcore/services/transaction/handler"
	"github.com/adiprasetyo/txcore/services/transaction/repository"
	"github.com/adiprasetyo/txcore/services/transaction/scorer"
	"github.com/adiprasetyo/txcore/services/transaction/usecase"
	"github.com/adiprasetyo/txcore/services/transaction/validator"
)

const appName = "txcore"

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	configs := config.InitConfig(configPath)

	// New Relic first so the logger can forward to it
	nrApp := nrpkg.InitNewRelic(configs)
	if nrApp != nil {
		if err := nrApp.WaitForConnection(10 * time.Second); err != nil {
			log.Printf("Warning: New Relic connection timeout: %v", err)
		}
	}

	zapLogger, err := logger.InitZapLoggerFromConfig(configs, nrApp)
	if err != nil {
		log.Fatalf("Failed to create Zap logger: %v", err)
	}
	defer zapLogger.Close()
	logger.SetGlobalLogger(zapLogger)

	zapLogger.Info("Starting application",
		logger.String("app", appName),
		logger.String("version", configs.App.Version),
		logger.String("environment", configs.App.Environment))

	// PostgreSQL holds the transaction records, audit chains and daily limits
	db, err := database.NewPostgresDB(configs.Database)
	if err != nil {
		zapLogger.Fatal("Failed to connect to PostgreSQL", logger.Err(err))
	}
	defer db.Close()

	redisClient, err := database.NewRedisClient(configs.Redis)
	if err != nil {
		zapLogger.Fatal("Failed to connect to Redis", logger.Err(err))
	}
	defer redisClient.Close()

	natsClient, err := natspkg.NewClient(configs.NATS.URL)
	if err != nil {
		zapLogger.Fatal("Failed to connect to NATS", logger.Err(err))
	}
	defer natsClient.Close()

	nsqProducer, err := nsqpkg.NewProducer(configs.NSQ.Address)
	if err != nil {
		zapLogger.Fatal("Failed to connect to NSQ", logger.Err(err))
	}
	defer nsqProducer.Stop()

	// Audit service: durable postgres chain with an NSQ compliance mirror
	compliancePub := auditgw.NewNSQCompliancePublisher(nsqProducer, configs.NSQ.AuditTopic)
	mirrorRetrier := retry.NewWithDefaults(zapLogger)
	auditService := audituc.NewAuditUC(auditrepo.NewPostgresAuditRepo(db), compliancePub, mirrorRetrier, zapLogger)

	// Transaction storage with a redis read-through on the idempotency index
	txRepo := repository.NewCachedTransactionRepo(repository.NewPostgresTransactionRepo(db), redisClient, zapLogger)
	limiter := repository.NewPostgresDailyLimiter(db, configs.Limits.DailyCap)

	var bankingBackend transaction.BankingBackend
	if configs.Backend.Simulated {
		bankingBackend = backend.NewSimulatedBackend(backend.DefaultBalances())
		zapLogger.Info("Using simulated banking backend")
	} else {
		bankingBackend = backend.NewHTTPBackend(configs.Backend)
	}

	breaker := circuitbreaker.New(circuitbreaker.DefaultConfig("banking-backend"), zapLogger)
	txGateway := gateway.NewNATSGateway(natsClient)

	txUC := usecase.NewEngineUC(
		configs,
		txRepo,
		limiter,
		validator.New(configs.Limits),
		scorer.NewRuleScorer(configs.Fraud),
		bankingBackend,
		txGateway,
		auditService,
		breaker,
		zapLogger,
	)

	txHandler := handler.NewTransactionHandler(configs, txUC, auditService, natsClient)
	if err := txHandler.InitNATSConsumers(); err != nil {
		zapLogger.Fatal("Failed to initialize NATS consumers", logger.Err(err))
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.RequestID())
	e.Use(middleware.PanicRecovery(zapLogger))
	e.Use(logger.EchoMiddleware(zapLogger))

	health.RegisterHealthEndpoints(e, appName,
		health.DependencyCheck{
			Name: "postgres",
			Check: func(ctx context.Context) error {
				return db.PingContext(ctx)
			},
		},
		health.DependencyCheck{
			Name: "redis",
			Check: func(ctx context.Context) error {
				return redisClient.GetClient().Ping(ctx).Err()
			},
		},
		health.DependencyCheck{
			Name: "nats",
			Check: func(ctx context.Context) error {
				if !natsClient.IsConnected() {
					return fmt.Errorf("nats connection lost")
				}
				return nil
			},
		},
	)

	txHandler.RegisterRoutes(e)

	shutdown := server.NewShutdownManager(zapLogger)
	shutdown.Register(func(ctx context.Context) error { return db.Close() })
	shutdown.Register(func(ctx context.Context) error { return redisClient.Close() })
	shutdown.Register(func(ctx context.Context) error { natsClient.Close(); return nil })
	shutdown.Register(func(ctx context.Context) error { nsqProducer.Stop(); return nil })

	srv := server.NewGracefulServer(e, zapLogger, configs.Server.Port)
	if err := srv.Start(); err != nil {
		zapLogger.Error("Server stopped with error", logger.Err(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := shutdown.Shutdown(ctx); err != nil {
		zapLogger.Error("Shutdown completed with errors", logger.Err(err))
	}
}
