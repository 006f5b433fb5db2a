package types

import (
	"time"

	"github.com/shopspring/decimal"
)

type CompanyType string

const (
	CompanyTypeClient   CompanyType = "client"
	CompanyTypeSupplier CompanyType = "supplier"
)

type LegalEntityType string

const (
	LegalEntityCorporation LegalEntityType = "Corporation"
	LegalEntityLLC         LegalEntityType = "LLC"
	LegalEntityPartnership LegalEntityType = "Partnership"
)

type MarkupKind string

const (
	MarkupPercent MarkupKind = "Percent"
	MarkupDollar  MarkupKind = "Dollar"
)

// Company is a billing counterparty. MarkupKind requires MarkupValue;
// CommissionPct is a percentage in [0,100]. Both are optional.
type Company struct {
	ID          string          `db:"id"`
	Name        string          `db:"name"`
	Type        CompanyType     `db:"type"`
	LegalEntity LegalEntityType `db:"legal_entity"`

	Address

	MarkupKind    *MarkupKind      `db:"markup_kind"`
	MarkupValue   *decimal.Decimal `db:"markup_value"`
	CommissionPct *decimal.Decimal `db:"commission_pct"`

	AssignedTo *string `db:"assigned_to"`
	Active     bool    `db:"active"`
	Notes      *string `db:"notes"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
