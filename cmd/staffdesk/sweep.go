package main

import (
	"context"
	"fmt"
	"time"

	"staffdesk/internal/db"
	"staffdesk/internal/store"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

// Intended to run from cron once a day.
var sweepCommand = &cli.Command{
	Name:  "sweep",
	Usage: "Mark pending bills past their due date as overdue",
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		ctx := context.Background()

		pool, err := db.Connect(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer pool.Close()

		billRepo := store.NewBillRepository(pool)

		count, err := billRepo.MarkOverdue(ctx, time.Now())
		if err != nil {
			return fmt.Errorf("failed to sweep overdue bills: %w", err)
		}

		logrus.WithField("count", count).Info("overdue sweep complete")

		return nil
	},
}
