package cmd

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"betsim/api"
	"betsim/config"
	"betsim/crash"
	"betsim/database"
	"betsim/domain/interfaces"
	"betsim/domain/services"
	"betsim/infrastructure"
	"betsim/infrastructure/observability"
	"betsim/repository"

	log "github.com/sirupsen/logrus"
)

const (
	depositSuccessRate  = 0.95
	withdrawSuccessRate = 0.90
)

// Run initializes and starts the betting platform
func Run(ctx context.Context) error {
	cfg := config.Get()

	log.Info("Connecting to database...")
	db, err := database.NewConnection(ctx, cfg.GetDatabaseURL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// NATS event pipeline
	log.Info("Connecting to NATS...")
	natsClient := infrastructure.NewNATSClient(cfg.NATSServers)
	if err := natsClient.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to NATS: %w", err)
	}
	defer natsClient.Close()

	eventPublisher := infrastructure.NewNATSEventPublisher(natsClient, infrastructure.NewEventSubjectMapper())
	if err := eventPublisher.EnsureDomainEventStream(); err != nil {
		return fmt.Errorf("failed to ensure domain event stream: %w", err)
	}

	metrics := observability.NewMetrics()
	infrastructure.RegisterMetricsHandlers(eventPublisher, metrics)

	uowFactory := repository.NewUnitOfWorkFactory(db, func() interfaces.TransactionalEventPublisher {
		return infrastructure.NewNATSTransactionalPublisher(eventPublisher)
	})

	// Payment transport
	gateway := infrastructure.NewSimulatedGateway(
		depositSuccessRate,
		withdrawSuccessRate,
		time.Duration(cfg.DepositExpiryMinutes)*time.Minute,
		rand.New(rand.NewSource(time.Now().UnixNano())),
	)
	withdrawalQueue := infrastructure.NewKafkaWithdrawalQueue(cfg.KafkaBrokers, cfg.WithdrawalTopic)
	defer withdrawalQueue.Close()

	// Services
	accountService := services.NewAccountService(uowFactory)
	journalService := services.NewJournalService(uowFactory, gateway, withdrawalQueue)
	bettingService := services.NewBettingService(uowFactory)
	settlementService := services.NewSettlementService(uowFactory, eventPublisher)
	matchService := services.NewMatchService(uowFactory)
	promoService := services.NewPromoService(uowFactory)

	// Withdrawal processing worker
	worker := infrastructure.NewPaymentWorker(cfg.KafkaBrokers, cfg.WithdrawalTopic, cfg.PaymentWorkerGroupID, journalService)
	go worker.Run(ctx)

	// Crash game engine
	engine := crash.NewEngine(
		uowFactory,
		crash.NewLedgerPayouts(uowFactory),
		eventPublisher,
		cfg.CrashHouseEdge,
		rand.New(rand.NewSource(time.Now().UnixNano())),
	)
	go engine.Run(ctx)

	// Redis match cache; optional, the API works without it
	var matchCache *infrastructure.MatchCache
	if cfg.RedisAddr != "" {
		redisClient, err := infrastructure.ConnectRedis(cfg.RedisAddr)
		if err != nil {
			log.WithError(err).Warn("Redis unavailable, match caching disabled")
		} else {
			defer redisClient.Close()
			matchCache = infrastructure.NewMatchCache(redisClient)
		}
	}

	// Metrics and health on a dedicated port
	metricsServer := observability.StartMetricsServer(cfg.MetricsPort, metrics, func(ctx context.Context) error {
		return db.Ping(ctx)
	})

	server := api.NewServer(cfg, api.ServerDeps{
		Accounts:   accountService,
		Journal:    journalService,
		Betting:    bettingService,
		Settlement: settlementService,
		Matches:    matchService,
		Promos:     promoService,
		Engine:     engine,
		Rounds:     repository.NewCrashRoundRepository(db),
		MatchCache: matchCache,
		Metrics:    metrics,
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start(cfg.HTTPPort)
	}()

	log.WithField("environment", cfg.Environment).Info("Betting platform is running")

	select {
	case err := <-errCh:
		return fmt.Errorf("API server failed: %w", err)
	case <-ctx.Done():
	}

	log.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Stop(shutdownCtx); err != nil {
		log.WithError(err).Error("Failed to stop API server")
	}
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Failed to stop metrics server")
	}

	log.Info("Shutdown completed")
	return nil
}
