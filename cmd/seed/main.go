package main

import (
	"context"
	"log"

	"github.com/campusworks/srms-api/internal/service"
	"github.com/campusworks/srms-api/internal/store"
	"github.com/campusworks/srms-api/pkg/config"
	"github.com/campusworks/srms-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	fileStore, err := store.NewFileStore(cfg.Data.Dir, logr)
	if err != nil {
		logr.Sugar().Fatalw("failed to open data directory", "error", err)
	}

	seeded, err := service.NewSeeder(fileStore, logr).Seed(context.Background())
	if err != nil {
		logr.Sugar().Fatalw("seed failed", "error", err)
	}
	if seeded {
		logr.Sugar().Infow("seed complete", "data_dir", fileStore.Dir())
		logr.Info("demo credentials: admin/admin123, S1001/student123, T101/teacher123, parent 9876543210/student123")
	}
}
