package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/filestore"
	"github.com/jonathan/resume-builder/internal/logger"
	"github.com/jonathan/resume-builder/internal/store"
)

// lister is implemented by repositories that can enumerate their resumes.
type lister interface {
	List(ctx context.Context) ([]string, error)
}

// app bundles what every command needs: resolved config, logger and the
// document repository.
type app struct {
	cfg       config.Config
	log       *logger.Logger
	repo      store.Repository
	closeRepo func()
}

// loadConfig resolves configuration: file, then environment, then flags,
// then defaults.
func loadConfig() (config.Config, error) {
	cfg := &config.Config{}
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return config.Config{}, err
	}

	if storageFlag != "" {
		cfg.Storage = storageFlag
	}
	if documentDir != "" {
		cfg.DocumentDir = documentDir
	}
	if databaseURL != "" {
		cfg.DatabaseURL = databaseURL
	}
	if logMode != "" {
		cfg.LogMode = logMode
	}

	merged := cfg.MergeWithDefaults(config.Defaults())
	if err := merged.Validate(); err != nil {
		return config.Config{}, err
	}
	return merged, nil
}

func openApp(ctx context.Context) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return nil, err
	}

	repo, closeRepo, err := openRepository(ctx, cfg)
	if err != nil {
		log.Sync()
		return nil, err
	}
	log.Debug("opened repository", "storage", cfg.Storage)

	return &app{cfg: cfg, log: log, repo: repo, closeRepo: closeRepo}, nil
}

func openRepository(ctx context.Context, cfg config.Config) (store.Repository, func(), error) {
	switch cfg.Storage {
	case config.StorageMemory:
		return store.NewMemoryRepository(), func() {}, nil

	case config.StoragePostgres:
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := database.EnsureSchema(ctx); err != nil {
			database.Close()
			return nil, nil, err
		}
		return db.NewRepository(database), database.Close, nil

	default:
		repo, err := filestore.New(cfg.DocumentDir)
		if err != nil {
			return nil, nil, err
		}
		return repo, func() {}, nil
	}
}

func (a *app) manager() *store.Manager {
	return store.NewManager(a.repo, a.log, store.WithHistoryLimit(a.cfg.HistoryLimit))
}

// open returns the store for an existing resume.
func (a *app) open(ctx context.Context, id string) (*store.Store, error) {
	st, err := a.manager().Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to open resume: %w", err)
	}
	return st, nil
}

func (a *app) Close() {
	a.closeRepo()
	a.log.Sync()
}

// withApp opens the app for the duration of fn.
func withApp(ctx context.Context, fn func(a *app) error) error {
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}
