package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// ServiceProvider is the billable entity provisioned from an approved
// Application. Rejection deactivates it; it is never deleted so bill history
// stays intact.
type ServiceProvider struct {
	ID            string  `db:"id"`
	ApplicationID *string `db:"application_id"`

	Name       string          `db:"name"`
	Services   []string        `db:"services"` // jsonb array
	HourlyRate decimal.Decimal `db:"hourly_rate"`
	AssignedTo *string         `db:"assigned_to"`
	Active     bool            `db:"active"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
