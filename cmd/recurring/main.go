package main

import (
	"fmt"
	"os"
	"time"

	"fintrack/internal/database"
	"fintrack/internal/logger"
	"fintrack/internal/services"
)

// Batch trigger for the fixed-expense materializer. Meant to be run from a
// scheduler once a day; repeated runs within a month are no-ops.
func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Recurring run error: %v", err)
	}
}

func run() error {
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	recurringService := services.NewRecurringService(dbManager.DB())
	report := recurringService.Run(time.Now())

	logger.Get().Infow("Recurring run finished",
		"templates", report.Templates,
		"created", report.Created,
		"skipped", report.Skipped,
		"failed", report.Failed,
	)
	if report.Failed > 0 {
		return fmt.Errorf("%d template(s) failed to materialize", report.Failed)
	}
	return nil
}
