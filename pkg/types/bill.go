package types

import (
	"time"

	"github.com/shopspring/decimal"
)

type BillStatus string

const (
	BillStatusPending BillStatus = "Pending"
	BillStatusPaid    BillStatus = "Paid"
	BillStatusOverdue BillStatus = "Overdue"
)

// Bill is one invoice line covering one engagement of one provider for one
// client company. BillNumber is assigned once at creation and never changes.
// TotalClient and TotalProvider are recomputed whenever hours or rate change.
type Bill struct {
	ID         string `db:"id"`
	BillNumber string `db:"bill_number"`

	ClientID   string `db:"client_id"`
	ProviderID string `db:"provider_id"`

	Description   string          `db:"description"`
	HoursWorked   decimal.Decimal `db:"hours_worked"`
	ServiceRate   decimal.Decimal `db:"service_rate"`
	TotalClient   decimal.Decimal `db:"total_client"`
	TotalProvider decimal.Decimal `db:"total_provider"`

	Status  BillStatus `db:"status"`
	DueDate *time.Time `db:"due_date"`
	PaidAt  *time.Time `db:"paid_at"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
