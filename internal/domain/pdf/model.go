package pdf

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceDocument is the input record handed to the page renderer. It is
// constructed fresh per render call and never mutated by the renderer.
type InvoiceDocument struct {
	InvoiceNumber string    `json:"invoice_number"`
	IssueDate     time.Time `json:"issue_date"`

	ClientName    string `json:"client_name"`
	ClientEmail   string `json:"client_email,omitempty"`
	ClientAddress string `json:"client_address,omitempty"`

	// Company branding; empty fields fall back to configured defaults
	CompanyName    string `json:"company_name,omitempty"`
	CompanyStreet  string `json:"company_street,omitempty"`
	CompanyAddress string `json:"company_address,omitempty"`
	CompanyPhone   string `json:"company_phone,omitempty"`
	CompanyWebsite string `json:"company_website,omitempty"`

	Notes   string          `json:"notes,omitempty"`
	TaxRate decimal.Decimal `json:"tax_rate"`

	// Total overrides the computed total when non-zero
	Total decimal.Decimal `json:"total"`

	Items []LineItem `json:"items"`
}

// LineItem is one table row of the rendered invoice
type LineItem struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"price"`
	Taxed       bool            `json:"taxed"`
}

// EffectiveQuantity treats a missing or zero quantity as one unit
func (i LineItem) EffectiveQuantity() decimal.Decimal {
	if i.Quantity.IsZero() {
		return decimal.NewFromInt(1)
	}
	return i.Quantity
}

// Amount is quantity x unit price at full precision
func (i LineItem) Amount() decimal.Decimal {
	return i.EffectiveQuantity().Mul(i.UnitPrice)
}
