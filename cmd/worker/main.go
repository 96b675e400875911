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

	solanago "github.com/gagliardetto/solana-go"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/taste-fun/tf-indexer/internal/adapter"
	"github.com/taste-fun/tf-indexer/internal/config"
	"github.com/taste-fun/tf-indexer/internal/generation"
	"github.com/taste-fun/tf-indexer/internal/logger"
	"github.com/taste-fun/tf-indexer/internal/providers/solana"
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
	cfg, err := config.LoadWorkerConfig(*configFile, *envPath)
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
			"service": "generation-worker",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Generation Worker")

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

	// Load the service authority used to sign image confirmations
	authority, err := solanago.PrivateKeyFromSolanaKeygenFile(cfg.Solana.KeypairPath)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to load authority keypair", zap.Error(err), zap.String("keypair_path", cfg.Solana.KeypairPath))
	}

	confirmer, err := solana.NewConfirmer(cfg.Solana.RPCURL, cfg.Solana.CoreProgram, authority)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create confirmer", zap.Error(err))
	}

	// Initialize the generation client
	generator := generation.NewClient(
		adapter.NewHTTPClient(cfg.Generation.HTTPTimeout),
		generation.Config{
			Endpoint: cfg.Generation.Endpoint,
			Model:    cfg.Generation.Model,
			Width:    cfg.Generation.Width,
			Height:   cfg.Generation.Height,
		},
	)

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
		WorkerPoolSize: cfg.Worker.PoolSize,
		RetryPolicy:    retry.Default(),
	})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create JetStream queue", zap.Error(err), zap.String("url", cfg.NATS.URL))
	}
	defer queue.Close()
	logger.InfoCtx(ctx, "Connected to NATS")

	worker := taskqueue.NewWorker(queue, generator, confirmer, dataStore)

	// Setup signal handling
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	// Channel for worker errors
	errCh := make(chan error, 1)

	// Start consuming jobs
	go func() {
		if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			errCh <- err
		}
	}()

	// Wait for shutdown signal or error
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "worker"))
		cancel()
	}

	// Give some time for graceful shutdown
	time.Sleep(time.Second)

	// Use non-context logger for final shutdown message since context is already canceled
	logger.Info("Generation Worker stopped")
}
