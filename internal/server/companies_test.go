package server

import (
	"testing"

	"staffdesk/pkg/types"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func decPtr(t *testing.T, s string) *decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatal(err)
	}
	return &d
}

func strPtr(s string) *string {
	return &s
}

func TestCheckBillingTerms(t *testing.T) {
	tests := []struct {
		name    string
		req     companyRequest
		wantErr bool
	}{
		{name: "no terms", req: companyRequest{}},
		{
			name: "percent markup with value",
			req:  companyRequest{MarkupKind: strPtr("Percent"), MarkupValue: decPtr(t, "20")},
		},
		{
			name:    "markup kind without value",
			req:     companyRequest{MarkupKind: strPtr("Percent")},
			wantErr: true,
		},
		{
			name:    "markup value without kind",
			req:     companyRequest{MarkupValue: decPtr(t, "20")},
			wantErr: true,
		},
		{
			name:    "negative markup value",
			req:     companyRequest{MarkupKind: strPtr("Dollar"), MarkupValue: decPtr(t, "-5")},
			wantErr: true,
		},
		{name: "commission in range", req: companyRequest{CommissionPct: decPtr(t, "12.5")}},
		{name: "commission at bounds", req: companyRequest{CommissionPct: decPtr(t, "100")}},
		{
			name:    "commission above 100",
			req:     companyRequest{CommissionPct: decPtr(t, "100.01")},
			wantErr: true,
		},
		{
			name:    "negative commission",
			req:     companyRequest{CommissionPct: decPtr(t, "-1")},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkBillingTerms(&tt.req)
			if tt.wantErr {
				var verr *types.ValidationError
				assert.ErrorAs(t, err, &verr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestCompanyRequestApply(t *testing.T) {
	req := companyRequest{
		Name:          "Acme Logistics",
		Type:          "client",
		LegalEntity:   "LLC",
		Street:        "100 Dock St",
		City:          strPtr("Portland"),
		MarkupKind:    strPtr("Percent"),
		MarkupValue:   decPtr(t, "20"),
		CommissionPct: decPtr(t, "10"),
		Notes:         strPtr("net-30 terms"),
	}

	var company types.Company
	req.apply(&company)

	assert.Equal(t, "Acme Logistics", company.Name)
	assert.Equal(t, types.CompanyTypeClient, company.Type)
	assert.Equal(t, types.LegalEntityLLC, company.LegalEntity)
	assert.True(t, company.Active)

	if assert.NotNil(t, company.MarkupKind) {
		assert.Equal(t, types.MarkupPercent, *company.MarkupKind)
	}
	assert.True(t, company.MarkupValue.Equal(decimal.NewFromInt(20)))
	assert.True(t, company.CommissionPct.Equal(decimal.NewFromInt(10)))
}

func TestCompanyRequestApplyClearsTerms(t *testing.T) {
	kind := types.MarkupPercent
	value := decimal.NewFromInt(20)

	company := types.Company{MarkupKind: &kind, MarkupValue: &value}

	req := companyRequest{Name: "Acme", Type: "client", LegalEntity: "LLC"}
	req.apply(&company)

	// update without terms resets them
	assert.Nil(t, company.MarkupKind)
	assert.Nil(t, company.MarkupValue)
	assert.Nil(t, company.CommissionPct)
}
