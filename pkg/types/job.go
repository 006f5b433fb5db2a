package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// Job is a service catalog entry. Reference data only.
type Job struct {
	ID                string          `db:"id"`
	Name              string          `db:"name"`
	Description       *string         `db:"description"`
	AverageHourlyRate decimal.Decimal `db:"average_hourly_rate"`
	Active            bool            `db:"active"`
	CreatedAt         time.Time       `db:"created_at"`
	UpdatedAt         time.Time       `db:"updated_at"`
}
