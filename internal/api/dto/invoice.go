package dto

import (
	"context"
	"time"

	"github.com/billfold/billfold/internal/domain/invoice"
	"github.com/billfold/billfold/internal/types"
	"github.com/billfold/billfold/internal/validator"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

type LineItemRequest struct {
	Description string          `json:"description" validate:"omitempty,max=1024"`
	Quantity    decimal.Decimal `json:"quantity" validate:"-"`
	UnitPrice   decimal.Decimal `json:"price" validate:"-"`
	Taxed       bool            `json:"taxed"`
}

func (r LineItemRequest) ToLineItem() invoice.LineItem {
	return invoice.LineItem{
		Description: r.Description,
		Quantity:    r.Quantity,
		UnitPrice:   r.UnitPrice,
		Taxed:       r.Taxed,
	}
}

type CreateInvoiceRequest struct {
	InvoiceNumber string     `json:"invoice_number" validate:"omitempty,max=64"`
	IssueDate     *time.Time `json:"issue_date" validate:"omitempty"`
	DueDate       *time.Time `json:"due_date" validate:"omitempty"`

	ClientName    string `json:"client_name" validate:"required,max=255"`
	ClientEmail   string `json:"client_email" validate:"omitempty,email"`
	ClientAddress string `json:"client_address" validate:"omitempty,max=1024"`

	CompanyName    string `json:"company_name" validate:"omitempty,max=255"`
	CompanyStreet  string `json:"company_street" validate:"omitempty,max=255"`
	CompanyAddress string `json:"company_address" validate:"omitempty,max=255"`
	CompanyPhone   string `json:"company_phone" validate:"omitempty,max=64"`
	CompanyWebsite string `json:"company_website" validate:"omitempty,max=255"`

	Notes   string          `json:"notes" validate:"omitempty,max=4096"`
	TaxRate decimal.Decimal `json:"tax_rate" validate:"-"`
	Total   decimal.Decimal `json:"total" validate:"-"`

	Items []LineItemRequest `json:"items" validate:"dive"`
}

func (r *CreateInvoiceRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r *CreateInvoiceRequest) ToInvoice(ctx context.Context) *invoice.Invoice {
	issueDate := time.Now().UTC()
	if r.IssueDate != nil {
		issueDate = r.IssueDate.UTC()
	}

	invoiceNumber := r.InvoiceNumber
	if invoiceNumber == "" {
		invoiceNumber = types.GenerateInvoiceNumber()
	}

	return &invoice.Invoice{
		ID:             types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE),
		OwnerID:        types.GetUserID(ctx),
		InvoiceNumber:  invoiceNumber,
		InvoiceStatus:  types.InvoiceStatusDraft,
		IssueDate:      issueDate,
		DueDate:        r.DueDate,
		ClientName:     r.ClientName,
		ClientEmail:    r.ClientEmail,
		ClientAddress:  r.ClientAddress,
		CompanyName:    r.CompanyName,
		CompanyStreet:  r.CompanyStreet,
		CompanyAddress: r.CompanyAddress,
		CompanyPhone:   r.CompanyPhone,
		CompanyWebsite: r.CompanyWebsite,
		Notes:          r.Notes,
		TaxRate:        r.TaxRate,
		Total:          r.Total,
		LineItems: lo.Map(r.Items, func(item LineItemRequest, _ int) invoice.LineItem {
			return item.ToLineItem()
		}),
		BaseModel: types.GetDefaultBaseModel(ctx),
	}
}

type UpdateInvoiceRequest struct {
	InvoiceNumber *string              `json:"invoice_number" validate:"omitempty,max=64"`
	InvoiceStatus *types.InvoiceStatus `json:"invoice_status" validate:"omitempty"`
	IssueDate     *time.Time           `json:"issue_date" validate:"omitempty"`
	DueDate       *time.Time           `json:"due_date" validate:"omitempty"`

	ClientName    *string `json:"client_name" validate:"omitempty,max=255"`
	ClientEmail   *string `json:"client_email" validate:"omitempty,email"`
	ClientAddress *string `json:"client_address" validate:"omitempty,max=1024"`

	Notes   *string          `json:"notes" validate:"omitempty,max=4096"`
	TaxRate *decimal.Decimal `json:"tax_rate" validate:"-"`
	Total   *decimal.Decimal `json:"total" validate:"-"`

	Items *[]LineItemRequest `json:"items" validate:"omitempty,dive"`
}

func (r *UpdateInvoiceRequest) Validate() error {
	return validator.ValidateRequest(r)
}

type InvoiceResponse struct {
	*invoice.Invoice
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
}

// ListInvoicesResponse represents a paginated list of invoices
type ListInvoicesResponse = types.ListResponse[*InvoiceResponse]

type SendInvoiceEmailRequest struct {
	// Override recipient; defaults to the invoice client email
	ToAddress string `json:"to_address" validate:"omitempty,email"`
	Subject   string `json:"subject" validate:"omitempty,max=255"`
	Message   string `json:"message" validate:"omitempty,max=4096"`
}

func (r *SendInvoiceEmailRequest) Validate() error {
	return validator.ValidateRequest(r)
}

type SendInvoiceEmailResponse struct {
	MessageID string `json:"message_id,omitempty"`
	Sent      bool   `json:"sent"`
}
