package main

import (
	"context"
	"fmt"
	"os"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/Tomlord1122/kanban-backend/internal/config"
	"github.com/Tomlord1122/kanban-backend/internal/database"
	"github.com/Tomlord1122/kanban-backend/internal/engine"
	"github.com/Tomlord1122/kanban-backend/internal/logging"
	"github.com/Tomlord1122/kanban-backend/internal/pending"
	"github.com/Tomlord1122/kanban-backend/internal/repository"
	"github.com/Tomlord1122/kanban-backend/internal/service"
)

// app holds the wired dependencies shared by the subcommands.
type app struct {
	cfg    config.Config
	log    *logrus.Logger
	db     database.Service
	redis  *redis.Client
	kanban service.KanbanService
}

func newApp(ctx context.Context, recorder service.MutationRecorder) (*app, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	if err != nil {
		return nil, err
	}

	db, err := database.New(cfg.Database, logger)
	if err != nil {
		return nil, err
	}
	a := &app{cfg: cfg, log: logger, db: db}

	ledger := pending.Ledger(pending.NewMemoryLedger())
	if cfg.RedisURL != "" {
		a.redis, err = database.OpenRedis(ctx, cfg.RedisURL)
		if err != nil {
			a.close()
			return nil, err
		}
		ledger = pending.NewRedisLedger(a.redis, pending.WithTTL(cfg.PendingTTL))
		logger.Info("Using Redis pending ledger")
	}

	opts := []service.Option{service.WithLedger(ledger), service.WithLogger(logger)}
	if recorder != nil {
		opts = append(opts, service.WithMutationRecorder(recorder))
	}
	eng := engine.New(engine.WithLogger(logger))
	a.kanban = service.NewKanbanService(eng, repository.NewGormStore(db.GetDB()), opts...)
	return a, nil
}

func (a *app) migrate() error {
	a.log.Info("Running database auto-migration")
	if err := repository.AutoMigrate(a.db.GetDB()); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}

func (a *app) close() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.log.WithError(err).Warn("Error closing Redis client")
		}
	}
	if err := a.db.Close(); err != nil {
		a.log.WithError(err).Error("Error closing database connection pool")
	}
}
