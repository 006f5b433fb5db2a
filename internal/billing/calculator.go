// Package billing holds the single markup/commission calculation shared by
// provider provisioning, bill creation, bill updates, and invoice rendering.
package billing

import (
	"staffdesk/pkg/types"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Markup is a client company's billing uplift: either a percentage of the
// base engagement total or a flat dollar amount on top of it.
type Markup struct {
	Kind  types.MarkupKind
	Value decimal.Decimal
}

// Totals is the outcome of pricing one engagement. All values are carried at
// full precision; call Rounded before storing or rendering them.
type Totals struct {
	Base         decimal.Decimal
	Client       decimal.Decimal
	Provider     decimal.Decimal
	Profit       decimal.Decimal
	ProfitMargin decimal.Decimal // percentage of Client
}

// Calculate prices an engagement of hoursWorked at serviceRate under the
// client's markup and commission terms. Commission is always taken off the
// base total, never the marked-up client total, so it does not scale with
// markup. Inputs are assumed validated by the caller.
func Calculate(hoursWorked, serviceRate decimal.Decimal, markup *Markup, commissionPct *decimal.Decimal) Totals {

	base := hoursWorked.Mul(serviceRate)

	client := base
	if markup != nil {
		switch markup.Kind {
		case types.MarkupPercent:
			client = base.Mul(hundred.Add(markup.Value)).Div(hundred)
		case types.MarkupDollar:
			client = base.Add(markup.Value)
		}
	}

	provider := base
	if commissionPct != nil {
		provider = base.Sub(base.Mul(*commissionPct).Div(hundred))
	}

	profit := client.Sub(provider)

	return Totals{
		Base:         base,
		Client:       client,
		Provider:     provider,
		Profit:       profit,
		ProfitMargin: Margin(client, provider),
	}
}

// Rounded returns a copy with every amount rounded to 2 places. Rounding
// happens once, here, at the storage/presentation boundary.
func (t Totals) Rounded() Totals {
	return Totals{
		Base:         t.Base.Round(2),
		Client:       t.Client.Round(2),
		Provider:     t.Provider.Round(2),
		Profit:       t.Profit.Round(2),
		ProfitMargin: t.ProfitMargin.Round(2),
	}
}

// Margin returns the profit margin percentage for a pair of stored totals.
// The invoice renderer uses this instead of re-deriving the arithmetic.
func Margin(client, provider decimal.Decimal) decimal.Decimal {
	if client.IsZero() {
		return decimal.Zero
	}
	return client.Sub(provider).Div(client).Mul(hundred)
}

// CompanyTerms extracts the markup and commission configuration from a client
// company record, if any.
func CompanyTerms(c *types.Company) (*Markup, *decimal.Decimal) {
	if c == nil {
		return nil, nil
	}

	var markup *Markup
	if c.MarkupKind != nil && c.MarkupValue != nil {
		markup = &Markup{Kind: *c.MarkupKind, Value: *c.MarkupValue}
	}

	return markup, c.CommissionPct
}
