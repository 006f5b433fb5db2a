// Package invoice renders bills as PDF documents. It prints the totals
// stored on the bill; the markup/commission arithmetic happens once, in
// internal/billing, before the bill is ever stored.
package invoice

import (
	"bytes"
	"fmt"
	"time"

	"staffdesk/internal/billing"
	"staffdesk/pkg/types"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

type Renderer struct {
	agencyName string
}

func NewRenderer(agencyName string) *Renderer {
	return &Renderer{agencyName: agencyName}
}

// Render produces the invoice PDF for a computed bill.
func (r *Renderer) Render(bill *types.Bill, client *types.Company, provider *types.ServiceProvider) ([]byte, error) {

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	// Header
	pdf.SetFont("Helvetica", "B", 20)
	pdf.Cell(120, 12, r.agencyName)
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 12, "INVOICE", "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Invoice No: %s", bill.BillNumber), "", 1, "R", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Date: %s", bill.CreatedAt.Format("Jan 2, 2006")), "", 1, "R", false, 0, "")
	if bill.DueDate != nil {
		pdf.CellFormat(0, 6, fmt.Sprintf("Due: %s", bill.DueDate.Format("Jan 2, 2006")), "", 1, "R", false, 0, "")
	}
	pdf.Ln(6)

	// Bill-to block
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 6, "Bill To", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 5, fmt.Sprintf("%s (%s)", client.Name, client.LegalEntity), "", 1, "L", false, 0, "")
	if client.Street != "" {
		pdf.CellFormat(0, 5, client.Street, "", 1, "L", false, 0, "")
	}
	if cityLine := formatCityLine(client.Address); cityLine != "" {
		pdf.CellFormat(0, 5, cityLine, "", 1, "L", false, 0, "")
	}
	pdf.Ln(8)

	// Line items table
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(235, 235, 235)
	pdf.CellFormat(75, 8, "Description", "1", 0, "L", true, 0, "")
	pdf.CellFormat(35, 8, "Provider", "1", 0, "L", true, 0, "")
	pdf.CellFormat(20, 8, "Hours", "1", 0, "R", true, 0, "")
	pdf.CellFormat(25, 8, "Rate", "1", 0, "R", true, 0, "")
	pdf.CellFormat(30, 8, "Amount", "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(75, 8, bill.Description, "1", 0, "L", false, 0, "")
	pdf.CellFormat(35, 8, provider.Name, "1", 0, "L", false, 0, "")
	pdf.CellFormat(20, 8, bill.HoursWorked.StringFixed(2), "1", 0, "R", false, 0, "")
	pdf.CellFormat(25, 8, money(bill.ServiceRate), "1", 0, "R", false, 0, "")
	pdf.CellFormat(30, 8, money(bill.TotalClient), "1", 1, "R", false, 0, "")
	pdf.Ln(4)

	// Totals
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(155, 8, "Total Due", "", 0, "R", false, 0, "")
	pdf.CellFormat(30, 8, money(bill.TotalClient), "T", 1, "R", false, 0, "")
	pdf.Ln(10)

	// Internal summary block, printed on the agency copy
	margin := billing.Margin(bill.TotalClient, bill.TotalProvider).Round(2)

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(110, 110, 110)
	pdf.CellFormat(0, 5, fmt.Sprintf("Provider payout: %s", money(bill.TotalProvider)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, fmt.Sprintf("Margin: %s%%", margin.StringFixed(2)), "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "I", 9)
	pdf.CellFormat(0, 5, fmt.Sprintf("Status: %s - generated %s", bill.Status, time.Now().Format("Jan 2, 2006")), "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render invoice %s: %w", bill.BillNumber, err)
	}

	return buf.Bytes(), nil
}

func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

func formatCityLine(addr types.Address) string {
	if addr.City == nil && addr.State == nil && addr.ZipCode == nil {
		return ""
	}

	line := ""
	if addr.City != nil {
		line = *addr.City
	}
	if addr.State != nil {
		if line != "" {
			line += ", "
		}
		line += *addr.State
	}
	if addr.ZipCode != nil {
		if line != "" {
			line += " "
		}
		line += *addr.ZipCode
	}
	return line
}
