package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/taste-fun/tf-indexer/internal/adapter"
	"github.com/taste-fun/tf-indexer/internal/config"
	"github.com/taste-fun/tf-indexer/internal/decoder"
	"github.com/taste-fun/tf-indexer/internal/indexer"
	"github.com/taste-fun/tf-indexer/internal/logger"
	"github.com/taste-fun/tf-indexer/internal/providers/solana"
	"github.com/taste-fun/tf-indexer/internal/realtime"
	"github.com/taste-fun/tf-indexer/internal/retry"
	"github.com/taste-fun/tf-indexer/internal/store"
	"github.com/taste-fun/tf-indexer/internal/taskqueue"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadIndexerConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "indexer",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Indexer")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err))
	}
	maxOpen, maxIdle, maxLifetime, maxIdleTime := store.NormalizeConnectionPoolSettings(
		cfg.Database.MaxOpenConns,
		cfg.Database.MaxIdleConns,
		cfg.Database.ConnMaxLifetime,
		cfg.Database.ConnMaxIdleTime,
	)
	if err := store.ConfigureConnectionPool(db, maxOpen, maxIdle, maxLifetime, maxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to database")

	// Initialize store
	dataStore := store.NewPGStore(db)

	// Initialize chain client
	chainClient, err := solana.NewClient(ctx, solana.Config{
		RPCURL: cfg.Solana.RPCURL,
		WSURL:  cfg.Solana.WebSocketURL,
	})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to Solana", zap.Error(err), zap.String("websocket_url", cfg.Solana.WebSocketURL))
	}
	defer chainClient.Close()
	logger.InfoCtx(ctx, "Connected to Solana")

	// Initialize NATS publisher for realtime fanout
	publisher, err := realtime.NewNatsPublisher(realtime.NatsConfig{
		URL:            cfg.NATS.URL,
		MaxReconnects:  cfg.NATS.MaxReconnects,
		ReconnectWait:  cfg.NATS.ReconnectWait,
		ConnectionName: cfg.NATS.ConnectionName,
	})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create NATS publisher", zap.Error(err), zap.String("url", cfg.NATS.URL))
	}
	defer publisher.Close()

	// Initialize JetStream queue for generation jobs
	queue, err := taskqueue.NewJetStreamQueue(ctx, taskqueue.JetStreamConfig{
		URL:            cfg.NATS.URL,
		StreamName:     cfg.NATS.StreamName,
		ConsumerName:   cfg.NATS.ConsumerName,
		MaxReconnects:  cfg.NATS.MaxReconnects,
		ReconnectWait:  cfg.NATS.ReconnectWait,
		ConnectionName: cfg.NATS.ConnectionName,
		AckWaitTimeout: cfg.NATS.AckWait,
		MaxDeliver:     cfg.NATS.MaxDeliver,
	})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create JetStream queue", zap.Error(err), zap.String("url", cfg.NATS.URL))
	}
	defer queue.Close()
	logger.InfoCtx(ctx, "Connected to NATS")

	programs := indexer.Programs{
		Core:       cfg.Solana.CoreProgram,
		Settlement: cfg.Solana.SettlementProgram,
		Token:      cfg.Solana.TokenProgram,
	}

	pipeline := indexer.NewPipeline(
		chainClient,
		decoder.New(),
		dataStore,
		publisher,
		queue,
		retry.Policy{
			MaxAttempts:     5,
			InitialInterval: 500 * time.Millisecond,
			MaxInterval:     10 * time.Second,
			Multiplier:      2,
		},
	)
	subscriber := indexer.NewSubscriber(chainClient, pipeline, programs, retry.Default())
	syncer := indexer.NewSyncer(chainClient, pipeline, programs, indexer.SyncerConfig{
		MinSlotGap: cfg.Sync.MinSlotGap,
		Interval:   cfg.Sync.Interval,
		PageDelay:  cfg.Sync.PageDelay,
	}, adapter.NewClock())

	// Setup signal handling
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	// Channel for component errors
	errCh := make(chan error, 1)

	// Run the live subscriber and the gap syncer side by side
	go func() {
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error { return subscriber.Run(gctx) })
		g.Go(func() error { return syncer.Run(gctx) })
		if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
			errCh <- err
		}
	}()

	// Wait for shutdown signal or error
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "indexer"))
		cancel()
	}

	// Give some time for graceful shutdown
	time.Sleep(time.Second)

	// Use non-context logger for final shutdown message since context is already canceled
	logger.Info("Indexer stopped")
}
