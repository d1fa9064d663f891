package pdf

import (
	"testing"

	domain "github.com/billfold/billfold/internal/domain/pdf"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestComputeTotals_Subtotal(t *testing.T) {
	doc := &domain.InvoiceDocument{
		Items: []domain.LineItem{
			{Description: "Service hours", Quantity: dec("100"), UnitPrice: dec("100")},
			{Description: "Licenses", Quantity: dec("2"), UnitPrice: dec("255")},
		},
	}

	totals := ComputeTotals(doc)
	assert.True(t, totals.Subtotal.Equal(dec("10510")), "got %s", totals.Subtotal)
	assert.True(t, totals.TaxableBase.IsZero())
	assert.True(t, totals.TaxAmount.IsZero())
	assert.True(t, totals.Total.Equal(dec("10510")))
}

func TestComputeTotals_TaxedItemsOnly(t *testing.T) {
	doc := &domain.InvoiceDocument{
		TaxRate: dec("10"),
		Items: []domain.LineItem{
			{Description: "taxed", Quantity: dec("2"), UnitPrice: dec("100"), Taxed: true},
			{Description: "untaxed", Quantity: dec("1"), UnitPrice: dec("100")},
		},
	}

	totals := ComputeTotals(doc)
	assert.True(t, totals.Subtotal.Equal(dec("300")))
	assert.True(t, totals.TaxableBase.Equal(dec("200")))
	assert.True(t, totals.TaxAmount.Equal(dec("20")))
	assert.True(t, totals.Total.Equal(dec("320")))
}

func TestComputeTotals_ZeroQuantityBillsOneUnit(t *testing.T) {
	doc := &domain.InvoiceDocument{
		Items: []domain.LineItem{
			{Description: "no quantity", UnitPrice: dec("49.50")},
		},
	}

	totals := ComputeTotals(doc)
	assert.True(t, totals.Subtotal.Equal(dec("49.50")))
}

func TestComputeTotals_MissingPriceIsZero(t *testing.T) {
	doc := &domain.InvoiceDocument{
		Items: []domain.LineItem{
			{Description: "no price", Quantity: dec("5")},
		},
	}

	totals := ComputeTotals(doc)
	assert.True(t, totals.Subtotal.IsZero())
	assert.True(t, totals.Total.IsZero())
}

func TestComputeTotals_ExplicitTotalWins(t *testing.T) {
	doc := &domain.InvoiceDocument{
		Total: dec("999.99"),
		Items: []domain.LineItem{
			{Quantity: dec("1"), UnitPrice: dec("100")},
		},
	}

	totals := ComputeTotals(doc)
	assert.True(t, totals.Subtotal.Equal(dec("100")))
	assert.True(t, totals.Total.Equal(dec("999.99")))
}

func TestComputeTotals_ZeroTotalFallsBackToComputed(t *testing.T) {
	doc := &domain.InvoiceDocument{
		TaxRate: dec("18"),
		Items: []domain.LineItem{
			{Quantity: dec("1"), UnitPrice: dec("100"), Taxed: true},
		},
	}

	totals := ComputeTotals(doc)
	assert.True(t, totals.Total.Equal(dec("118")))
}

func TestComputeTotals_FullPrecisionAccumulation(t *testing.T) {
	// 0.1 x 3 must be exactly 0.3, not a float approximation
	doc := &domain.InvoiceDocument{
		Items: []domain.LineItem{
			{Quantity: dec("3"), UnitPrice: dec("0.1")},
		},
	}

	totals := ComputeTotals(doc)
	assert.True(t, totals.Subtotal.Equal(dec("0.3")), "got %s", totals.Subtotal)
}

func TestComputeTotals_FractionalTaxRate(t *testing.T) {
	doc := &domain.InvoiceDocument{
		TaxRate: dec("8.25"),
		Items: []domain.LineItem{
			{Quantity: dec("1"), UnitPrice: dec("400"), Taxed: true},
		},
	}

	totals := ComputeTotals(doc)
	assert.True(t, totals.TaxAmount.Equal(dec("33")), "got %s", totals.TaxAmount)
	assert.True(t, totals.Total.Equal(dec("433")))
}

func TestComputeTotals_EmptyInvoice(t *testing.T) {
	totals := ComputeTotals(&domain.InvoiceDocument{})
	assert.True(t, totals.Subtotal.IsZero())
	assert.True(t, totals.TaxAmount.IsZero())
	assert.True(t, totals.Total.IsZero())
}
