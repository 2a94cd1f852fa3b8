// Package main is the entry point for the quest registry daemon.
//
// The daemon assembles the registry core (identity, quests, engagement,
// rewards, analytics) with its event fan-out: an optional PostgreSQL
// journal recording every committed transition and an optional Redis
// pub/sub mirror for off-chain consumers.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/questforge/quest-registry/config"
	"github.com/questforge/quest-registry/internal/application"
	"github.com/questforge/quest-registry/internal/domain/shared"
	"github.com/questforge/quest-registry/internal/infrastructure/messaging"
	"github.com/questforge/quest-registry/internal/infrastructure/persistence/memory"
	"github.com/questforge/quest-registry/internal/infrastructure/persistence/postgres"
	"github.com/questforge/quest-registry/pkg/logger"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.Observability.LogLevel,
		Format:      cfg.Observability.LogFormat,
		Development: cfg.IsDevelopment(),
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	admin, err := shared.NewAddress(cfg.Registry.AdminAddress)
	if err != nil {
		return fmt.Errorf("admin address: %w", err)
	}

	bus := messaging.NewInMemoryEventBus(messaging.InMemoryEventBusConfig{
		AsyncMode:      cfg.Registry.AsyncEvents,
		WorkerPoolSize: cfg.Registry.EventWorkers,
		Logger:         log,
	})
	defer func() { _ = bus.Close() }()

	if cfg.Database.Enabled {
		conn, err := connectJournalDB(ctx, cfg.Database)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		defer conn.Close()

		journal := postgres.NewEventJournal(conn, log)
		if err := journal.Bootstrap(ctx); err != nil {
			return fmt.Errorf("bootstrap journal: %w", err)
		}
		if err := bus.SubscribeAll(journal.Handler()); err != nil {
			return fmt.Errorf("subscribe journal: %w", err)
		}
		log.Info("event journal enabled")
	}

	if cfg.Redis.Enabled {
		publisher, err := messaging.NewRedisPublisher(messaging.RedisConfig{
			Host:          cfg.Redis.Host,
			Port:          cfg.Redis.Port,
			Password:      cfg.Redis.Password,
			DB:            cfg.Redis.DB,
			ChannelPrefix: cfg.Redis.ChannelPrefix,
			DialTimeout:   cfg.Redis.DialTimeout,
			WriteTimeout:  cfg.Redis.WriteTimeout,
		}, log)
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		defer func() { _ = publisher.Close() }()

		if err := bus.SubscribeAll(publisher.Handler()); err != nil {
			return fmt.Errorf("subscribe redis mirror: %w", err)
		}
		log.Info("redis event mirror enabled",
			zap.String("addr", fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port)))
	}

	platform, err := application.New(admin, application.Dependencies{
		Users:    memory.NewIdentityRepository(),
		Quests:   memory.NewQuestRepository(),
		Sessions: memory.NewEngagementRepository(),
		Rewards:  memory.NewRewardRepository(),
		Stats:    memory.NewAnalyticsRepository(),
		Bus:      bus,
		Logger:   log,
	})
	if err != nil {
		return fmt.Errorf("build platform: %w", err)
	}

	log.Info("quest registry started",
		zap.String("env", string(cfg.App.Environment)),
		zap.String("version", cfg.App.Version),
		zap.String("admin", platform.Admin().String()))

	// Block until shutdown is requested.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("shutdown requested", zap.String("signal", sig.String()))
	case <-ctx.Done():
	}

	return nil
}


// connectJournalDB opens the journal's connection pool. A full DATABASE_URL
// takes precedence; otherwise the pool is built from the discrete DB_*
// settings.
func connectJournalDB(ctx context.Context, cfg config.DatabaseConfig) (*postgres.Connection, error) {
	if cfg.URL != "" {
		return postgres.NewConnectionFromURL(ctx, cfg.URL)
	}

	pcfg := postgres.DefaultConfig()
	pcfg.Host = cfg.Host
	pcfg.Port = cfg.Port
	pcfg.User = cfg.User
	pcfg.Password = cfg.Password
	pcfg.Database = cfg.Name
	pcfg.SSLMode = cfg.SSLMode
	pcfg.MaxConns = cfg.MaxConns
	pcfg.MinConns = cfg.MinConns
	pcfg.MaxConnLifetime = cfg.MaxConnLifetime
	pcfg.ConnectTimeout = cfg.ConnectTimeout
	return postgres.NewConnection(ctx, pcfg)
}
