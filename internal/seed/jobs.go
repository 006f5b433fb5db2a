package seed

import (
	"context"
	"fmt"

	"staffdesk/internal/store"
	"staffdesk/internal/utils"
	"staffdesk/pkg/types"

	"github.com/shopspring/decimal"
)

// SeedJobs syncs the database with the service catalog below.
// This file is the source of truth for the catalog:
// - Inserts new jobs that don't exist
// - Updates existing jobs that have changed
//
// To generate new IDs: `go run ./cmd/staffdesk nanoid`
// To retire a job: flip Active to false and reseed (bills keep referencing
// the name, so entries are never removed from this list)
func SeedJobs(ctx context.Context, repo *store.JobRepository) error {
	jobs := []types.Job{
		{
			ID:                "jJ4qJcVJ0WfUp0NcnfvOmegkcwLgY3wZ",
			Name:              "General Cleaning",
			Description:       utils.StringPtr("Residential and light commercial cleaning"),
			AverageHourlyRate: decimal.RequireFromString("16.50"),
			Active:            true,
		},
		{
			ID:                "Qx0y9TfEbMBWeJ1n6vqeV2kpZtH8aHdK",
			Name:              "Warehouse Labor",
			Description:       utils.StringPtr("Picking, packing, loading, inventory counts"),
			AverageHourlyRate: decimal.RequireFromString("18.00"),
			Active:            true,
		},
		{
			ID:                "b7sMXPUKziJkgnTM4yeLC2r0fdVYWqpE",
			Name:              "Moving Crew",
			Description:       utils.StringPtr("Residential and office moves, furniture assembly"),
			AverageHourlyRate: decimal.RequireFromString("20.00"),
			Active:            true,
		},
		{
			ID:                "sRhFWDgAkV5cN16zy2UM0JqtbepIxLo9",
			Name:              "Landscaping",
			Description:       utils.StringPtr("Lawn care, trimming, seasonal yard work"),
			AverageHourlyRate: decimal.RequireFromString("17.25"),
			Active:            true,
		},
		{
			ID:                "wA2TnpBYOy8EmKHCRdGuzv5kSx4Ljh3f",
			Name:              "Event Staff",
			Description:       utils.StringPtr("Setup, teardown, ushering, concessions"),
			AverageHourlyRate: decimal.RequireFromString("15.75"),
			Active:            true,
		},
		{
			ID:                "eD9gVXcMWsA1KfLqZb3JmT6RyHw0uPni",
			Name:              "Delivery Driver",
			Description:       utils.StringPtr("Local deliveries, valid driver's license required"),
			AverageHourlyRate: decimal.RequireFromString("19.00"),
			Active:            true,
		},
	}

	for _, job := range jobs {
		if err := repo.UpsertJob(ctx, &job); err != nil {
			return fmt.Errorf("failed to seed job %s: %w", job.Name, err)
		}
	}

	return nil
}
