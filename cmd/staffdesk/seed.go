package main

import (
	"context"
	"fmt"

	"staffdesk/internal/db"
	"staffdesk/internal/seed"
	"staffdesk/internal/store"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var seedCommand = &cli.Command{
	Name:  "seed",
	Usage: "Seed the database with the service catalog",
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

		logrus.Info("Connected to database")

		jobRepo := store.NewJobRepository(pool)

		logrus.Info("Seeding service catalog...")
		if err := seed.SeedJobs(ctx, jobRepo); err != nil {
			return fmt.Errorf("failed to seed jobs: %w", err)
		}

		logrus.Info("Service catalog seeded successfully")

		return nil
	},
}
