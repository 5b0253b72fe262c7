package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/resqr-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/resqr-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/resqr-backend/internal/logging"
	"github.com/ahmetcoskunkizilkaya/resqr-backend/internal/store"
	"github.com/ahmetcoskunkizilkaya/resqr-backend/internal/wizard"
)

type openedStore struct {
	backend store.Backend
	// pgLogs is set only for the postgres backend.
	pgLogs *logging.PGHandler
}

func openStore(cfg *config.Config, stdout slog.Handler, done chan struct{}) (*openedStore, error) {
	switch cfg.StoreBackend {
	case config.BackendPostgres:
		db, err := database.Connect(cfg)
		if err != nil {
			return nil, err
		}
		gs := store.NewGormStore(db)
		if err := database.Migrate(db, gs.Models()...); err != nil {
			return nil, err
		}

		// PostgreSQL log handler (ERROR+ async batch)
		pgLogs := logging.NewPGHandler(db)
		logging.AttachSink(stdout, pgLogs)
		logging.StartCleanup(db, logging.LogRetention, done)
		return &openedStore{backend: gs, pgLogs: pgLogs}, nil

	case config.BackendFirebase:
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		client, err := store.OpenFirebase(ctx, cfg.FirebaseDatabaseURL, cfg.FirebaseCredentialsFile)
		if err != nil {
			return nil, err
		}
		return &openedStore{backend: store.NewFirebaseStore(client, cfg.FirebasePollInterval)}, nil

	case config.BackendMemory:
		if cfg.AppEnv == "production" {
			slog.Warn("memory store in production: profiles are lost on restart")
		}
		return &openedStore{backend: store.NewMemoryStore()}, nil
	}
	return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
}

func openDrafts(cfg *config.Config, done chan struct{}) (wizard.DraftStore, func() error, error) {
	switch cfg.DraftBackend {
	case config.BackendRedis:
		client := wizard.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, nil, fmt.Errorf("redis ping %s: %w", cfg.RedisAddr, err)
		}
		slog.Info("redis connected", "addr", cfg.RedisAddr, "db", cfg.RedisDB)
		return wizard.NewRedisDrafts(client, cfg.DraftTTL), client.Close, nil

	case config.BackendMemory:
		drafts := wizard.NewMemoryDrafts(cfg.DraftTTL)
		logging.StartSweep("wizard_drafts", drafts, 10*time.Minute, done)
		return drafts, func() error { return nil }, nil
	}
	return nil, nil, fmt.Errorf("unknown draft backend %q", cfg.DraftBackend)
}
