package service

import (
	"strings"
	"testing"
	"time"

	"github.com/billfold/billfold/internal/api/dto"
	"github.com/billfold/billfold/internal/email"
	ierr "github.com/billfold/billfold/internal/errors"
	"github.com/billfold/billfold/internal/testutil"
	"github.com/billfold/billfold/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type InvoiceServiceSuite struct {
	testutil.BaseServiceTestSuite
	service InvoiceService
}

func TestInvoiceService(t *testing.T) {
	suite.Run(t, new(InvoiceServiceSuite))
}

func (s *InvoiceServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewInvoiceService(s.params())
}

func (s *InvoiceServiceSuite) params() ServiceParams {
	stores := s.GetStores()
	emailClient := email.NewEmailClient(email.Config{Enabled: false})
	return ServiceParams{
		Logger:       s.GetLogger(),
		Config:       s.GetConfig(),
		DB:           s.GetDB(),
		PDFGenerator: s.GetPDFGenerator(),
		Email:        email.NewEmail(emailClient, s.GetLogger()),
		AuthRepo:     stores.AuthRepo,
		UserRepo:     stores.UserRepo,
		ClientRepo:   stores.ClientRepo,
		InvoiceRepo:  stores.InvoiceRepo,
	}
}

func (s *InvoiceServiceSuite) createInvoice() *dto.InvoiceResponse {
	resp, err := s.service.CreateInvoice(s.GetContext(), &dto.CreateInvoiceRequest{
		ClientName:  "Acme Corp",
		ClientEmail: "billing@acme.test",
		TaxRate:     decimal.RequireFromString("10"),
		Items: []dto.LineItemRequest{
			{Description: "Consulting", Quantity: decimal.NewFromInt(100), UnitPrice: decimal.NewFromInt(100), Taxed: true},
			{Description: "Licenses", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(255)},
		},
	})
	s.Require().NoError(err)
	return resp
}

func (s *InvoiceServiceSuite) TestCreateInvoice() {
	resp := s.createInvoice()

	s.NotEmpty(resp.ID)
	s.True(strings.HasPrefix(resp.InvoiceNumber, "INV-"))
	s.Equal(types.InvoiceStatusDraft, resp.InvoiceStatus)
	s.True(resp.Subtotal.Equal(decimal.RequireFromString("10510")))
	s.True(resp.Tax.Equal(decimal.RequireFromString("1000")))
	s.True(resp.Total.Equal(decimal.RequireFromString("10510")))
}

func (s *InvoiceServiceSuite) TestCreateInvoice_TotalComputedFromItems() {
	resp := s.createInvoice()

	// the computed total is persisted, not just rendered
	stored, err := s.GetStores().InvoiceRepo.Get(s.GetContext(), resp.ID)
	s.NoError(err)
	s.True(stored.Total.Equal(decimal.RequireFromString("10510")))
}

func (s *InvoiceServiceSuite) TestCreateInvoice_ExplicitTotalKept() {
	resp, err := s.service.CreateInvoice(s.GetContext(), &dto.CreateInvoiceRequest{
		ClientName: "Acme",
		Total:      decimal.RequireFromString("999.99"),
		Items: []dto.LineItemRequest{
			{Description: "Consulting", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(100)},
		},
	})
	s.NoError(err)
	s.True(resp.Total.Equal(decimal.RequireFromString("999.99")))
}

func (s *InvoiceServiceSuite) TestCreateInvoice_ExplicitNumberUnique() {
	_, err := s.service.CreateInvoice(s.GetContext(), &dto.CreateInvoiceRequest{
		ClientName:    "Acme",
		InvoiceNumber: "INV-FIXED001",
	})
	s.NoError(err)

	_, err = s.service.CreateInvoice(s.GetContext(), &dto.CreateInvoiceRequest{
		ClientName:    "Acme",
		InvoiceNumber: "INV-FIXED001",
	})
	s.Error(err)
	s.True(ierr.IsAlreadyExists(err))
}

func (s *InvoiceServiceSuite) TestCreateInvoice_MissingClientName() {
	_, err := s.service.CreateInvoice(s.GetContext(), &dto.CreateInvoiceRequest{})
	s.Error(err)
}

func (s *InvoiceServiceSuite) TestCreateInvoice_NegativeQuantityRejected() {
	_, err := s.service.CreateInvoice(s.GetContext(), &dto.CreateInvoiceRequest{
		ClientName: "Acme",
		Items: []dto.LineItemRequest{
			{Description: "bad", Quantity: decimal.NewFromInt(-1), UnitPrice: decimal.NewFromInt(10)},
		},
	})
	s.Error(err)
}

func (s *InvoiceServiceSuite) TestGetInvoice() {
	created := s.createInvoice()

	got, err := s.service.GetInvoice(s.GetContext(), created.ID)
	s.NoError(err)
	s.Equal(created.ID, got.ID)
	s.Len(got.LineItems, 2)
}

func (s *InvoiceServiceSuite) TestGetInvoice_OtherOwnerHidden() {
	created := s.createInvoice()

	otherCtx := testutil.SetupContextWithUser(types.DefaultTenantID, "user_other")
	_, err := s.service.GetInvoice(otherCtx, created.ID)
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *InvoiceServiceSuite) TestListInvoices_FilterByNumber() {
	created := s.createInvoice()
	s.createInvoice()

	filter := &types.InvoiceFilter{
		QueryFilter:   types.NewQueryFilter(),
		InvoiceNumber: created.InvoiceNumber,
	}
	resp, err := s.service.ListInvoices(s.GetContext(), filter)
	s.NoError(err)
	s.Len(resp.Items, 1)
	s.Equal(created.ID, resp.Items[0].ID)
}

func (s *InvoiceServiceSuite) TestListInvoices_CountScopedToOwner() {
	s.createInvoice()
	s.createInvoice()

	otherCtx := testutil.SetupContextWithUser(types.DefaultTenantID, "user_other")
	_, err := s.service.CreateInvoice(otherCtx, &dto.CreateInvoiceRequest{
		ClientName: "Their Client",
	})
	s.Require().NoError(err)

	resp, err := s.service.ListInvoices(s.GetContext(), nil)
	s.NoError(err)
	s.Len(resp.Items, 2)
	s.Equal(2, resp.Total)
}

func (s *InvoiceServiceSuite) TestUpdateInvoice() {
	created := s.createInvoice()

	updated, err := s.service.UpdateInvoice(s.GetContext(), created.ID, &dto.UpdateInvoiceRequest{
		InvoiceStatus: lo.ToPtr(types.InvoiceStatusPaid),
		Notes:         lo.ToPtr("paid via wire"),
	})
	s.NoError(err)
	s.Equal(types.InvoiceStatusPaid, updated.InvoiceStatus)
	s.Equal("paid via wire", updated.Notes)
}

func (s *InvoiceServiceSuite) TestUpdateInvoice_InvalidStatus() {
	created := s.createInvoice()

	_, err := s.service.UpdateInvoice(s.GetContext(), created.ID, &dto.UpdateInvoiceRequest{
		InvoiceStatus: lo.ToPtr(types.InvoiceStatus("bogus")),
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *InvoiceServiceSuite) TestDeleteInvoice() {
	created := s.createInvoice()

	s.NoError(s.service.DeleteInvoice(s.GetContext(), created.ID))

	_, err := s.service.GetInvoice(s.GetContext(), created.ID)
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *InvoiceServiceSuite) TestGetInvoicePDF() {
	created := s.createInvoice()

	s.GetPDFGenerator().On("RenderInvoicePdf", mock.Anything, mock.Anything).
		Return([]byte("%PDF-1.4 fake"), nil)

	data, filename, err := s.service.GetInvoicePDF(s.GetContext(), created.ID)
	s.NoError(err)
	s.NotEmpty(data)
	s.Equal("invoice-"+created.InvoiceNumber+".pdf", filename)
}

func (s *InvoiceServiceSuite) TestGetInvoicePDF_NotFound() {
	_, _, err := s.service.GetInvoicePDF(s.GetContext(), "inv_missing")
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *InvoiceServiceSuite) TestSendInvoiceEmail_NoRecipient() {
	resp, err := s.service.CreateInvoice(s.GetContext(), &dto.CreateInvoiceRequest{
		ClientName: "No Email Client",
	})
	s.Require().NoError(err)

	_, err = s.service.SendInvoiceEmail(s.GetContext(), resp.ID, &dto.SendInvoiceEmailRequest{})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *InvoiceServiceSuite) TestSendInvoiceEmail_DisabledClientReportsNotSent() {
	created := s.createInvoice()

	s.GetPDFGenerator().On("RenderInvoicePdf", mock.Anything, mock.Anything).
		Return([]byte("%PDF-1.4 fake"), nil)

	resp, err := s.service.SendInvoiceEmail(s.GetContext(), created.ID, &dto.SendInvoiceEmailRequest{})
	s.NoError(err)
	s.False(resp.Sent)

	// status stays draft when the send is skipped
	got, err := s.service.GetInvoice(s.GetContext(), created.ID)
	s.NoError(err)
	s.Equal(types.InvoiceStatusDraft, got.InvoiceStatus)
}

func (s *InvoiceServiceSuite) TestCreateInvoice_IssueDateDefaultsToNow() {
	resp, err := s.service.CreateInvoice(s.GetContext(), &dto.CreateInvoiceRequest{
		ClientName: "Acme",
	})
	s.NoError(err)
	s.WithinDuration(time.Now().UTC(), resp.IssueDate, time.Minute)
}
