package main

import (
	"context"
	"log"

	"bikeshare-dashboard/config"
	"bikeshare-dashboard/di"
	"bikeshare-dashboard/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger := logger.New(cfg.App.LogLevel, cfg.App.Env)

	container, err := di.NewContainer(cfg, appLogger)
	if err != nil {
		appLogger.Fatalf("Failed to initialize container: %v", err)
	}

	appLogger.Info("Loading dataset")
	if err := container.DatasetRefresherService.RefreshDataset(context.Background()); err != nil {
		appLogger.Fatalf("Failed to load dataset: %v", err)
	}

	if err := container.DatasetRefresherService.StartPeriodicJob(cfg.Dataset.RefreshInterval); err != nil {
		appLogger.Fatalf("Failed to schedule dataset refresh: %v", err)
	}

	if err := container.DashboardHttpServer.Start(); err != nil {
		appLogger.Fatalf("Server error: %v", err)
	}
}
