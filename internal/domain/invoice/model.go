package invoice

import (
	"time"

	"github.com/billfold/billfold/internal/types"
	"github.com/shopspring/decimal"
)

// Invoice represents the invoice domain model
type Invoice struct {
	ID            string              `db:"id" json:"id"`
	OwnerID       string              `db:"owner_id" json:"owner_id"`
	InvoiceNumber string              `db:"invoice_number" json:"invoice_number"`
	InvoiceStatus types.InvoiceStatus `db:"invoice_status" json:"invoice_status"`
	IssueDate     time.Time           `db:"issue_date" json:"issue_date"`
	DueDate       *time.Time          `db:"due_date" json:"due_date,omitempty"`

	ClientName    string `db:"client_name" json:"client_name"`
	ClientEmail   string `db:"client_email" json:"client_email,omitempty"`
	ClientAddress string `db:"client_address" json:"client_address,omitempty"`

	// Invoice-specific company branding; renderer falls back to configured
	// defaults when these are empty
	CompanyName    string `db:"company_name" json:"company_name,omitempty"`
	CompanyStreet  string `db:"company_street" json:"company_street,omitempty"`
	CompanyAddress string `db:"company_address" json:"company_address,omitempty"`
	CompanyPhone   string `db:"company_phone" json:"company_phone,omitempty"`
	CompanyWebsite string `db:"company_website" json:"company_website,omitempty"`

	Notes   string          `db:"notes" json:"notes,omitempty"`
	TaxRate decimal.Decimal `db:"tax_rate" json:"tax_rate"`
	Total   decimal.Decimal `db:"total" json:"total"`

	LineItems []LineItem `db:"-" json:"items"`
	types.BaseModel
}

// LineItem is one row of an invoice
type LineItem struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"price"`
	Taxed       bool            `json:"taxed"`
}

// NormalizedQuantity applies the leniency policy: a missing or zero quantity
// is billed as one unit. Matches effective quantity used for totals.
func (i LineItem) NormalizedQuantity() decimal.Decimal {
	if i.Quantity.IsZero() {
		return decimal.NewFromInt(1)
	}
	return i.Quantity
}

// NormalizedUnitPrice applies the leniency policy: a missing price is zero.
func (i LineItem) NormalizedUnitPrice() decimal.Decimal {
	return i.UnitPrice
}

// Amount is quantity x unit price at full precision. Rounding happens only
// at the point of display.
func (i LineItem) Amount() decimal.Decimal {
	return i.NormalizedQuantity().Mul(i.NormalizedUnitPrice())
}

func (inv *Invoice) Validate() error {
	if inv.ClientName == "" {
		return NewValidationError("client_name", "is required")
	}
	if inv.TaxRate.IsNegative() {
		return NewValidationError("tax_rate", "must be non negative")
	}
	for _, item := range inv.LineItems {
		if item.Quantity.IsNegative() {
			return NewValidationError("items.quantity", "must be non negative")
		}
		if item.UnitPrice.IsNegative() {
			return NewValidationError("items.price", "must be non negative")
		}
	}
	return nil
}
