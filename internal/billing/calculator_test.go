package billing

import (
	"testing"

	"staffdesk/pkg/types"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func percentMarkup(s string) *Markup {
	return &Markup{Kind: types.MarkupPercent, Value: dec(s)}
}

func dollarMarkup(s string) *Markup {
	return &Markup{Kind: types.MarkupDollar, Value: dec(s)}
}

func TestCalculate(t *testing.T) {
	tests := []struct {
		name          string
		hours         string
		rate          string
		markup        *Markup
		commission    *decimal.Decimal
		wantBase      string
		wantClient    string
		wantProvider  string
		wantProfit    string
		wantMarginPct string
	}{
		{
			name:          "no markup no commission",
			hours:         "8",
			rate:          "12.50",
			wantBase:      "100",
			wantClient:    "100",
			wantProvider:  "100",
			wantProfit:    "0",
			wantMarginPct: "0",
		},
		{
			name:          "percent markup",
			hours:         "4",
			rate:          "25",
			markup:        percentMarkup("20"),
			wantBase:      "100",
			wantClient:    "120",
			wantProvider:  "100",
			wantProfit:    "20",
			wantMarginPct: "16.67",
		},
		{
			name:          "dollar markup",
			hours:         "4",
			rate:          "25",
			markup:        dollarMarkup("50"),
			wantBase:      "100",
			wantClient:    "150",
			wantProvider:  "100",
			wantProfit:    "50",
			wantMarginPct: "33.33",
		},
		{
			name:          "commission only",
			hours:         "10",
			rate:          "10",
			commission:    decPtr("10"),
			wantBase:      "100",
			wantClient:    "100",
			wantProvider:  "90",
			wantProfit:    "10",
			wantMarginPct: "10",
		},
		{
			name:          "commission is taken off the base even with percent markup",
			hours:         "10",
			rate:          "10",
			markup:        percentMarkup("50"),
			commission:    decPtr("10"),
			wantBase:      "100",
			wantClient:    "150",
			wantProvider:  "90",
			wantProfit:    "60",
			wantMarginPct: "40",
		},
		{
			name:          "commission is taken off the base even with dollar markup",
			hours:         "10",
			rate:          "10",
			markup:        dollarMarkup("75"),
			commission:    decPtr("10"),
			wantBase:      "100",
			wantClient:    "175",
			wantProvider:  "90",
			wantProfit:    "85",
			wantMarginPct: "48.57",
		},
		{
			name:          "fractional hours keep full precision until rounding",
			hours:         "7.25",
			rate:          "18.40",
			markup:        percentMarkup("15"),
			commission:    decPtr("5"),
			wantBase:      "133.4",
			wantClient:    "153.41",
			wantProvider:  "126.73",
			wantProfit:    "26.68",
			wantMarginPct: "17.39",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Calculate(dec(tt.hours), dec(tt.rate), tt.markup, tt.commission).Rounded()

			assert.True(t, got.Base.Equal(dec(tt.wantBase)), "base: got %s", got.Base)
			assert.True(t, got.Client.Equal(dec(tt.wantClient)), "client: got %s", got.Client)
			assert.True(t, got.Provider.Equal(dec(tt.wantProvider)), "provider: got %s", got.Provider)
			assert.True(t, got.Profit.Equal(dec(tt.wantProfit)), "profit: got %s", got.Profit)
			assert.True(t, got.ProfitMargin.Equal(dec(tt.wantMarginPct)), "margin: got %s", got.ProfitMargin)
		})
	}
}

func TestCalculateBaseIsExact(t *testing.T) {
	// base must be hours*rate exactly, with no intermediate float drift
	got := Calculate(dec("37.5"), dec("19.99"), nil, nil)
	assert.True(t, got.Base.Equal(dec("749.625")), "got %s", got.Base)
}

func TestCalculateZeroClientTotalMargin(t *testing.T) {
	// dollar markup of -base would be rejected upstream, but zero-valued
	// engagements must not divide by zero
	got := Calculate(decimal.Zero, decimal.Zero, nil, nil)
	assert.True(t, got.ProfitMargin.IsZero())
	assert.True(t, got.Client.IsZero())
}

func TestMargin(t *testing.T) {
	assert.True(t, Margin(dec("150"), dec("90")).Equal(dec("40")))
	assert.True(t, Margin(decimal.Zero, decimal.Zero).IsZero())

	// matches what Calculate derives for the same engagement
	totals := Calculate(dec("10"), dec("10"), percentMarkup("50"), decPtr("10"))
	assert.True(t, Margin(totals.Client, totals.Provider).Equal(totals.ProfitMargin))
}

func TestCompanyTerms(t *testing.T) {
	kind := types.MarkupPercent

	t.Run("nil company", func(t *testing.T) {
		markup, commission := CompanyTerms(nil)
		assert.Nil(t, markup)
		assert.Nil(t, commission)
	})

	t.Run("markup kind without value is ignored", func(t *testing.T) {
		markup, _ := CompanyTerms(&types.Company{MarkupKind: &kind})
		assert.Nil(t, markup)
	})

	t.Run("full terms", func(t *testing.T) {
		company := &types.Company{
			MarkupKind:    &kind,
			MarkupValue:   decPtr("20"),
			CommissionPct: decPtr("5"),
		}

		markup, commission := CompanyTerms(company)
		require.NotNil(t, markup)
		assert.Equal(t, types.MarkupPercent, markup.Kind)
		assert.True(t, markup.Value.Equal(dec("20")))
		require.NotNil(t, commission)
		assert.True(t, commission.Equal(dec("5")))
	})
}
