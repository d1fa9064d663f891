package service

import (
	"context"
	"fmt"
	"time"

	"github.com/billfold/billfold/internal/api/dto"
	"github.com/billfold/billfold/internal/domain/invoice"
	pdfdomain "github.com/billfold/billfold/internal/domain/pdf"
	"github.com/billfold/billfold/internal/email"
	ierr "github.com/billfold/billfold/internal/errors"
	"github.com/billfold/billfold/internal/pdf"
	"github.com/billfold/billfold/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

type InvoiceService interface {
	CreateInvoice(ctx context.Context, req *dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error)
	GetInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error)
	ListInvoices(ctx context.Context, filter *types.InvoiceFilter) (*dto.ListInvoicesResponse, error)
	UpdateInvoice(ctx context.Context, id string, req *dto.UpdateInvoiceRequest) (*dto.InvoiceResponse, error)
	DeleteInvoice(ctx context.Context, id string) error
	GetInvoicePDF(ctx context.Context, id string) ([]byte, string, error)
	SendInvoiceEmail(ctx context.Context, id string, req *dto.SendInvoiceEmailRequest) (*dto.SendInvoiceEmailResponse, error)
}

type invoiceService struct {
	ServiceParams
}

func NewInvoiceService(params ServiceParams) InvoiceService {
	return &invoiceService{ServiceParams: params}
}

func (s *invoiceService) CreateInvoice(ctx context.Context, req *dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	inv := req.ToInvoice(ctx)
	if err := inv.Validate(); err != nil {
		return nil, err
	}

	// No explicit total on the request: persist the sum of the line amounts
	if inv.Total.IsZero() && len(inv.LineItems) > 0 {
		total := decimal.Zero
		for _, item := range inv.LineItems {
			total = total.Add(item.Quantity.Mul(item.UnitPrice))
		}
		inv.Total = total
	}

	if err := s.InvoiceRepo.Create(ctx, inv); err != nil {
		return nil, err
	}

	s.Logger.Infow("created invoice",
		"invoice_id", inv.ID,
		"invoice_number", inv.InvoiceNumber,
	)
	return s.toResponse(inv), nil
}

func (s *invoiceService) GetInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	inv, err := s.fetchOwned(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toResponse(inv), nil
}

func (s *invoiceService) ListInvoices(ctx context.Context, filter *types.InvoiceFilter) (*dto.ListInvoicesResponse, error) {
	if filter == nil {
		filter = &types.InvoiceFilter{QueryFilter: types.NewQueryFilter()}
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	invoices, err := s.InvoiceRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	total, err := s.InvoiceRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &dto.ListInvoicesResponse{
		Items: lo.Map(invoices, func(inv *invoice.Invoice, _ int) *dto.InvoiceResponse {
			return s.toResponse(inv)
		}),
		Total:  total,
		Limit:  filter.GetLimit(),
		Offset: filter.GetOffset(),
	}, nil
}

func (s *invoiceService) UpdateInvoice(ctx context.Context, id string, req *dto.UpdateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	inv, err := s.fetchOwned(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.InvoiceNumber != nil {
		inv.InvoiceNumber = *req.InvoiceNumber
	}
	if req.InvoiceStatus != nil {
		if !req.InvoiceStatus.Validate() {
			return nil, ierr.NewError("invalid invoice status").
				WithHintf("Status must be one of %s, %s, %s",
					types.InvoiceStatusDraft, types.InvoiceStatusSent, types.InvoiceStatusPaid).
				Mark(ierr.ErrValidation)
		}
		inv.InvoiceStatus = *req.InvoiceStatus
	}
	if req.IssueDate != nil {
		inv.IssueDate = req.IssueDate.UTC()
	}
	if req.DueDate != nil {
		inv.DueDate = req.DueDate
	}
	if req.ClientName != nil {
		inv.ClientName = *req.ClientName
	}
	if req.ClientEmail != nil {
		inv.ClientEmail = *req.ClientEmail
	}
	if req.ClientAddress != nil {
		inv.ClientAddress = *req.ClientAddress
	}
	if req.Notes != nil {
		inv.Notes = *req.Notes
	}
	if req.TaxRate != nil {
		inv.TaxRate = *req.TaxRate
	}
	if req.Total != nil {
		inv.Total = *req.Total
	}
	if req.Items != nil {
		inv.LineItems = lo.Map(*req.Items, func(item dto.LineItemRequest, _ int) invoice.LineItem {
			return item.ToLineItem()
		})
	}
	inv.UpdatedBy = types.GetUserID(ctx)
	inv.UpdatedAt = time.Now().UTC()

	if err := inv.Validate(); err != nil {
		return nil, err
	}

	if err := s.InvoiceRepo.Update(ctx, inv); err != nil {
		return nil, err
	}
	return s.toResponse(inv), nil
}

func (s *invoiceService) DeleteInvoice(ctx context.Context, id string) error {
	if _, err := s.fetchOwned(ctx, id); err != nil {
		return err
	}
	return s.InvoiceRepo.Delete(ctx, id)
}

// GetInvoicePDF renders the invoice to a PDF document and returns the bytes
// along with the suggested download filename.
func (s *invoiceService) GetInvoicePDF(ctx context.Context, id string) ([]byte, string, error) {
	inv, err := s.fetchOwned(ctx, id)
	if err != nil {
		return nil, "", err
	}

	data, err := s.PDFGenerator.RenderInvoicePdf(ctx, toDocument(inv))
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("invoice-%s.pdf", inv.InvoiceNumber)
	return data, filename, nil
}

// SendInvoiceEmail renders the invoice PDF and emails it to the client
func (s *invoiceService) SendInvoiceEmail(ctx context.Context, id string, req *dto.SendInvoiceEmailRequest) (*dto.SendInvoiceEmailResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	inv, err := s.fetchOwned(ctx, id)
	if err != nil {
		return nil, err
	}

	toAddress := req.ToAddress
	if toAddress == "" {
		toAddress = inv.ClientEmail
	}
	if toAddress == "" {
		return nil, ierr.NewError("no recipient address").
			WithHint("The invoice has no client email and no recipient was provided").
			Mark(ierr.ErrValidation)
	}

	data, filename, err := s.GetInvoicePDF(ctx, id)
	if err != nil {
		return nil, err
	}

	subject := req.Subject
	if subject == "" {
		subject = fmt.Sprintf("Invoice %s", inv.InvoiceNumber)
	}
	message := req.Message
	if message == "" {
		message = fmt.Sprintf("Please find invoice %s attached.", inv.InvoiceNumber)
	}

	resp, err := s.Email.SendEmail(ctx, email.SendEmailRequest{
		ToAddress: toAddress,
		Subject:   subject,
		Text:      message,
		Attachments: []email.Attachment{
			{
				Filename:    filename,
				Content:     data,
				ContentType: "application/pdf",
			},
		},
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to send invoice email").
			Mark(ierr.ErrSystem)
	}

	if resp.Success && inv.InvoiceStatus == types.InvoiceStatusDraft {
		inv.InvoiceStatus = types.InvoiceStatusSent
		inv.UpdatedBy = types.GetUserID(ctx)
		inv.UpdatedAt = time.Now().UTC()
		if err := s.InvoiceRepo.Update(ctx, inv); err != nil {
			s.Logger.Errorw("failed to mark invoice as sent",
				"error", err,
				"invoice_id", inv.ID,
			)
		}
	}

	return &dto.SendInvoiceEmailResponse{
		MessageID: resp.MessageID,
		Sent:      resp.Success,
	}, nil
}

func (s *invoiceService) toResponse(inv *invoice.Invoice) *dto.InvoiceResponse {
	totals := pdf.ComputeTotals(toDocument(inv))
	return &dto.InvoiceResponse{
		Invoice:  inv,
		Subtotal: totals.Subtotal,
		Tax:      totals.TaxAmount,
	}
}

func (s *invoiceService) fetchOwned(ctx context.Context, id string) (*invoice.Invoice, error) {
	inv, err := s.InvoiceRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv.OwnerID != types.GetUserID(ctx) {
		return nil, ierr.NewError("invoice not found").
			WithHint("Invoice not found").
			WithReportableDetails(map[string]interface{}{
				"invoice_id": id,
			}).
			Mark(ierr.ErrNotFound)
	}
	return inv, nil
}

// toDocument maps a persisted invoice onto the renderer input record
func toDocument(inv *invoice.Invoice) *pdfdomain.InvoiceDocument {
	return &pdfdomain.InvoiceDocument{
		InvoiceNumber:  inv.InvoiceNumber,
		IssueDate:      inv.IssueDate,
		ClientName:     inv.ClientName,
		ClientEmail:    inv.ClientEmail,
		ClientAddress:  inv.ClientAddress,
		CompanyName:    inv.CompanyName,
		CompanyStreet:  inv.CompanyStreet,
		CompanyAddress: inv.CompanyAddress,
		CompanyPhone:   inv.CompanyPhone,
		CompanyWebsite: inv.CompanyWebsite,
		Notes:          inv.Notes,
		TaxRate:        inv.TaxRate,
		Total:          inv.Total,
		Items: lo.Map(inv.LineItems, func(item invoice.LineItem, _ int) pdfdomain.LineItem {
			return pdfdomain.LineItem{
				Description: item.Description,
				Quantity:    item.Quantity,
				UnitPrice:   item.UnitPrice,
				Taxed:       item.Taxed,
			}
		}),
	}
}
