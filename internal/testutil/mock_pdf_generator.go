package testutil

import (
	"context"

	domain "github.com/billfold/billfold/internal/domain/pdf"
	"github.com/billfold/billfold/internal/logger"
	"github.com/billfold/billfold/internal/pdf"
	"github.com/stretchr/testify/mock"
)

var _ pdf.Generator = (*MockPDFGenerator)(nil)

type MockPDFGenerator struct {
	logger *logger.Logger
	mock.Mock
}

// RenderInvoicePdf implements pdf.Generator.
func (m *MockPDFGenerator) RenderInvoicePdf(ctx context.Context, doc *domain.InvoiceDocument) ([]byte, error) {
	args := m.Called(ctx, doc)
	return args.Get(0).([]byte), args.Error(1)
}

func NewMockPDFGenerator(logger *logger.Logger) *MockPDFGenerator {
	return &MockPDFGenerator{
		logger: logger,
	}
}
