package invoice

import (
	"testing"
	"time"

	"staffdesk/pkg/types"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	due := time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC)
	city := "Portland"
	state := "OR"

	bill := &types.Bill{
		ID:            "bill-1",
		BillNumber:    "INV-000042",
		Description:   "Warehouse staffing, week 35",
		HoursWorked:   decimal.NewFromInt(40),
		ServiceRate:   decimal.RequireFromString("18.50"),
		TotalClient:   decimal.RequireFromString("888.00"),
		TotalProvider: decimal.RequireFromString("703.00"),
		Status:        types.BillStatusPending,
		DueDate:       &due,
		CreatedAt:     time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC),
	}
	client := &types.Company{
		Name:        "Acme Logistics",
		LegalEntity: types.LegalEntityLLC,
		Address: types.Address{
			Street: "100 Dock St",
			City:   &city,
			State:  &state,
		},
	}
	provider := &types.ServiceProvider{Name: "Maria Santos"}

	data, err := NewRenderer("Staffdesk Staffing").Render(bill, client, provider)
	require.NoError(t, err)

	assert.NotEmpty(t, data)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestFormatCityLine(t *testing.T) {
	city := "Portland"
	state := "OR"
	zip := "97201"

	tests := []struct {
		name string
		addr types.Address
		want string
	}{
		{name: "empty", addr: types.Address{}, want: ""},
		{name: "city only", addr: types.Address{City: &city}, want: "Portland"},
		{name: "full", addr: types.Address{City: &city, State: &state, ZipCode: &zip}, want: "Portland, OR 97201"},
		{name: "state and zip", addr: types.Address{State: &state, ZipCode: &zip}, want: "OR 97201"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatCityLine(tt.addr))
		})
	}
}
