package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/benefitkit/benefits_admin_app/internal/core/services"
	"github.com/benefitkit/benefits_admin_app/internal/platform/config"
	"github.com/benefitkit/benefits_admin_app/internal/repositories/database/pgsql"
	"github.com/benefitkit/benefits_admin_app/pkg/database"
)

// One-shot job: close active enrollment periods whose window has ended and
// expire every unfinished enrollment inside them. Run daily from cron.
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, true)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()

	repos := pgsql.NewRepositoryProvider(dbPool)
	serviceContainer := services.NewServiceContainer(cfg, *repos)

	expired, err := serviceContainer.Enrollment.ExpireOverduePeriods(ctx, time.Now().UTC())
	if err != nil {
		logger.Error("Period expiry run failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("Period expiry run complete", slog.Int("expiredEnrollments", expired))
}
