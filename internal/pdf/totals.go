package pdf

import (
	domain "github.com/billfold/billfold/internal/domain/pdf"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Totals are the financial rollups of an invoice. All values carry full
// precision; rounding to two decimals happens only at display time.
type Totals struct {
	Subtotal    decimal.Decimal
	TaxableBase decimal.Decimal
	TaxAmount   decimal.Decimal
	Total       decimal.Decimal
}

// ComputeTotals rolls up the line items of a document.
//
// Subtotal sums every line amount. TaxableBase sums only taxed lines, so an
// untaxed item contributes to the subtotal but never to the base. The
// explicit document total wins when non-zero, otherwise subtotal plus tax.
func ComputeTotals(doc *domain.InvoiceDocument) Totals {
	subtotal := decimal.Zero
	taxable := decimal.Zero

	for _, item := range doc.Items {
		amount := item.Amount()
		subtotal = subtotal.Add(amount)
		if item.Taxed {
			taxable = taxable.Add(amount)
		}
	}

	taxAmount := taxable.Mul(doc.TaxRate).Div(hundred)

	total := doc.Total
	if total.IsZero() {
		total = subtotal.Add(taxAmount)
	}

	return Totals{
		Subtotal:    subtotal,
		TaxableBase: taxable,
		TaxAmount:   taxAmount,
		Total:       total,
	}
}
