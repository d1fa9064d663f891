package pdf

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	domain "github.com/billfold/billfold/internal/domain/pdf"
	ierr "github.com/billfold/billfold/internal/errors"
	"github.com/billfold/billfold/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeBogusFont(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bogus.ttf")
	require.NoError(t, os.WriteFile(path, []byte("not a font"), 0o644))
	return path
}

func testGenerator(t *testing.T) Generator {
	t.Helper()
	log, err := logger.NewLogger()
	require.NoError(t, err)
	return NewGeneratorWithConfig(DefaultRenderConfig(), log)
}

func sampleDocument() *domain.InvoiceDocument {
	return &domain.InvoiceDocument{
		InvoiceNumber: "INV-A1B2C3D4",
		IssueDate:     time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		ClientName:    "Acme Corp",
		ClientEmail:   "billing@acme.test",
		ClientAddress: "12 Industrial Way",
		TaxRate:       dec("10"),
		Items: []domain.LineItem{
			{Description: "Consulting", Quantity: dec("100"), UnitPrice: dec("100"), Taxed: true},
			{Description: "Licenses", Quantity: dec("2"), UnitPrice: dec("255")},
		},
	}
}

func TestRenderInvoicePdf_ProducesPDF(t *testing.T) {
	g := testGenerator(t)

	data, err := g.RenderInvoicePdf(context.Background(), sampleDocument())
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestRenderInvoicePdf_Deterministic(t *testing.T) {
	g := testGenerator(t)
	doc := sampleDocument()

	first, err := g.RenderInvoicePdf(context.Background(), doc)
	require.NoError(t, err)
	second, err := g.RenderInvoicePdf(context.Background(), doc)
	require.NoError(t, err)

	assert.True(t, bytes.Equal(first, second), "identical input must produce identical bytes")
}

func TestRenderInvoicePdf_DifferentInputDifferentBytes(t *testing.T) {
	g := testGenerator(t)

	first, err := g.RenderInvoicePdf(context.Background(), sampleDocument())
	require.NoError(t, err)

	changed := sampleDocument()
	changed.InvoiceNumber = "INV-ZZZZZZZZ"
	second, err := g.RenderInvoicePdf(context.Background(), changed)
	require.NoError(t, err)

	assert.False(t, bytes.Equal(first, second))
}

func TestRenderInvoicePdf_ManyItemsStayOnOnePage(t *testing.T) {
	g := testGenerator(t)

	doc := sampleDocument()
	doc.Items = nil
	for i := 0; i < 120; i++ {
		doc.Items = append(doc.Items, domain.LineItem{
			Description: fmt.Sprintf("Line item %d with a moderately long description", i),
			Quantity:    dec("1"),
			UnitPrice:   dec("10"),
			Taxed:       i%2 == 0,
		})
	}

	data, err := g.RenderInvoicePdf(context.Background(), doc)
	require.NoError(t, err)

	// the page tree must contain exactly one page
	assert.True(t, bytes.Contains(data, []byte("/Count 1")))
}

func TestRenderInvoicePdf_EmptyInvoice(t *testing.T) {
	g := testGenerator(t)

	doc := &domain.InvoiceDocument{
		InvoiceNumber: "INV-EMPTY001",
		IssueDate:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		ClientName:    "Nobody",
	}

	data, err := g.RenderInvoicePdf(context.Background(), doc)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestRenderInvoicePdf_MissingFontFileFallsBack(t *testing.T) {
	cfg := DefaultRenderConfig()
	cfg.FontRegular = "/nonexistent/path/font.ttf"

	log, err := logger.NewLogger()
	require.NoError(t, err)
	g := NewGeneratorWithConfig(cfg, log)

	data, err := g.RenderInvoicePdf(context.Background(), sampleDocument())
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestRenderInvoicePdf_RenderErrorMarked(t *testing.T) {
	// a malformed custom font surfaces through the engine error state
	cfg := DefaultRenderConfig()
	log, err := logger.NewLogger()
	require.NoError(t, err)

	gen := &generator{
		cfg: cfg,
		fonts: FontSet{
			Regular: Face{Family: customFamily, Style: "", File: makeBogusFont(t)},
			Bold:    Face{Family: "Helvetica", Style: "B"},
			Italic:  Face{Family: "Helvetica", Style: "I"},
		},
		format: NewCurrencyFormatter(cfg.Locale, cfg.Currency),
		log:    log,
	}

	_, err = gen.RenderInvoicePdf(context.Background(), sampleDocument())
	require.Error(t, err)
	assert.True(t, ierr.IsRender(err))
}
