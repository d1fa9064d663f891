package pdf

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/billfold/billfold/internal/config"
	domain "github.com/billfold/billfold/internal/domain/pdf"
	ierr "github.com/billfold/billfold/internal/errors"
	"github.com/billfold/billfold/internal/logger"
	"github.com/jung-kurt/gofpdf"
)

// Generator defines the interface for invoice page rendering
type Generator interface {
	RenderInvoicePdf(ctx context.Context, data *domain.InvoiceDocument) ([]byte, error)
}

const defaultNotes = "1. Total payment due in 30 days\n2. Please include the invoice number on your check"

// pageSizeTolerance accepts rounding differences between the engine's idea
// of A4 and ours, in points.
const pageSizeTolerance = 1.0

type generator struct {
	cfg    RenderConfig
	fonts  FontSet
	format CurrencyFormatter
	log    *logger.Logger
}

// NewGenerator creates an invoice page renderer. Fonts are resolved once
// here; each render call registers them on its own document, so concurrent
// renders share nothing mutable.
func NewGenerator(cfg *config.Configuration, log *logger.Logger) Generator {
	rc := NewRenderConfig(cfg.Render)
	return &generator{
		cfg:    rc,
		fonts:  ResolveFontSet(rc, log),
		format: NewCurrencyFormatter(rc.Locale, rc.Currency),
		log:    log,
	}
}

// NewGeneratorWithConfig creates a renderer from an explicit render
// configuration, bypassing the application config. Used by tests and tools.
func NewGeneratorWithConfig(rc RenderConfig, log *logger.Logger) Generator {
	return &generator{
		cfg:    rc,
		fonts:  ResolveFontSet(rc, log),
		format: NewCurrencyFormatter(rc.Locale, rc.Currency),
		log:    log,
	}
}

// RenderInvoicePdf lays out the whole invoice onto a single page and
// serializes it. The input document is never mutated; any drawing-engine
// failure aborts the render with no partial output.
func (g *generator) RenderInvoicePdf(ctx context.Context, data *domain.InvoiceDocument) ([]byte, error) {
	doc := gofpdf.New("P", "pt", "A4", "")
	doc.SetTitle("Invoice "+data.InvoiceNumber, true)
	// pinned to the issue date so identical input produces identical bytes
	doc.SetCreationDate(data.IssueDate.UTC())
	doc.SetAutoPageBreak(false, 0)

	g.fonts.register(doc)
	doc.AddPage()

	pageW, pageH := doc.GetPageSize()
	if math.Abs(pageW-g.cfg.PageWidth) > pageSizeTolerance ||
		math.Abs(pageH-g.cfg.PageHeight) > pageSizeTolerance {
		return nil, ierr.NewError("unexpected page size").
			WithHintf("engine page is %.2fx%.2f, template expects %.2fx%.2f",
				pageW, pageH, g.cfg.PageWidth, g.cfg.PageHeight).
			Mark(ierr.ErrRender)
	}

	geom := NewGeometry(pageW, pageH, g.cfg.Margin)
	measurer := newDocMeasurer(doc, g.fonts)
	totals := ComputeTotals(data)
	plan := PlanRows(geom, len(data.Items))

	g.drawDivider(doc, geom)
	g.drawHeader(doc, geom, data)
	g.drawBillTo(doc, geom, data)
	g.drawTableHeader(doc, geom)
	y := g.drawRows(doc, geom, measurer, plan, data)

	// clamp so the totals and comments blocks never reach a second page
	if y > geom.BottomLimit() {
		y = geom.BottomLimit()
	}

	totalsY := math.Min(y+8, geom.BottomLimit())
	g.drawTotals(doc, geom, totalsY, totals, data)
	g.drawComments(doc, geom, totalsY, data.Notes)

	if err := doc.Error(); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to render invoice PDF").
			Mark(ierr.ErrRender)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to render invoice PDF").
			Mark(ierr.ErrRender)
	}
	return buf.Bytes(), nil
}

func (g *generator) setFont(doc *gofpdf.Fpdf, style FontStyle, size float64) {
	face := g.fonts.Face(style)
	doc.SetFont(face.Family, face.Style, size)
}

func (g *generator) drawDivider(doc *gofpdf.Fpdf, geom Geometry) {
	doc.SetLineWidth(1)
	doc.SetDrawColor(0, 0, 0)
	doc.Line(geom.Margin, geom.DividerY, geom.PageWidth-geom.Margin, geom.DividerY)
}

func (g *generator) drawHeader(doc *gofpdf.Fpdf, geom Geometry, data *domain.InvoiceDocument) {
	companyName := data.CompanyName
	if companyName == "" {
		companyName = g.cfg.CompanyName
	}

	// company title with a short underline
	g.setFont(doc, StyleBold, 14)
	doc.SetTextColor(0, 0, 0)
	doc.SetXY(geom.LeftX, geom.HeaderY)
	doc.CellFormat(geom.MidX-geom.LeftX, 16, companyName, "", 0, "L", false, 0, "")
	titleWidth := doc.GetStringWidth(companyName)
	doc.Line(geom.LeftX, geom.HeaderY+16, geom.LeftX+titleWidth, geom.HeaderY+16)

	g.setFont(doc, StyleRegular, 9)
	var lines []string
	if data.CompanyStreet != "" {
		lines = append(lines, data.CompanyStreet)
	}
	if data.CompanyAddress != "" {
		lines = append(lines, data.CompanyAddress)
	}
	if data.CompanyPhone != "" {
		lines = append(lines, "Phone: "+data.CompanyPhone)
	}
	if data.CompanyWebsite != "" {
		lines = append(lines, data.CompanyWebsite)
	}
	for i, line := range lines {
		doc.SetXY(geom.LeftX, geom.HeaderY+20+float64(i)*11)
		doc.CellFormat(geom.MidX-geom.LeftX, 11, line, "", 0, "L", false, 0, "")
	}

	// invoice metadata box on the right
	boxX := geom.RightX
	boxW := geom.PageWidth - geom.Margin - boxX
	doc.Rect(boxX, geom.HeaderY-6, boxW, 60, "D")

	g.setFont(doc, StyleBold, 18)
	doc.SetXY(boxX+10, geom.HeaderY-2)
	doc.CellFormat(boxW-20, 20, "INVOICE", "", 0, "L", false, 0, "")

	g.setFont(doc, StyleRegular, 9)
	doc.SetXY(boxX+10, geom.HeaderY+20)
	doc.CellFormat(boxW-20, 11, "DATE: "+formatDateDMY(data), "", 0, "L", false, 0, "")

	g.setFont(doc, StyleBold, 9)
	invNum := "INVOICE #: " + data.InvoiceNumber
	doc.SetXY(boxX+10, geom.HeaderY+34)
	doc.CellFormat(boxW-20, 11, invNum, "", 0, "L", false, 0, "")
	invNumWidth := doc.GetStringWidth(invNum)
	doc.Line(boxX+10, geom.HeaderY+46, boxX+10+invNumWidth, geom.HeaderY+46)
}

func (g *generator) drawBillTo(doc *gofpdf.Fpdf, geom Geometry, data *domain.InvoiceDocument) {
	doc.SetDrawColor(0, 0, 0)
	doc.Rect(geom.LeftX, geom.BillToY, geom.MidX-geom.LeftX, geom.BillToHeight, "D")

	g.setFont(doc, StyleBold, 10)
	doc.SetXY(geom.LeftX+6, geom.BillToY+6)
	doc.CellFormat(geom.MidX-geom.LeftX-12, 12, "BILL TO", "", 0, "L", false, 0, "")

	clientName := data.ClientName
	if clientName == "" {
		clientName = "Client Name"
	}
	g.setFont(doc, StyleRegular, 9)
	doc.SetXY(geom.LeftX+6, geom.BillToY+26)
	doc.CellFormat(geom.MidX-geom.LeftX-12, 11, clientName, "", 0, "L", false, 0, "")
	if data.ClientAddress != "" {
		doc.SetXY(geom.LeftX+6, geom.BillToY+42)
		doc.CellFormat(geom.MidX-geom.LeftX-12, 11, data.ClientAddress, "", 0, "L", false, 0, "")
	}
	if data.ClientEmail != "" {
		doc.SetXY(geom.LeftX+6, geom.BillToY+58)
		doc.CellFormat(geom.MidX-geom.LeftX-12, 11, data.ClientEmail, "", 0, "L", false, 0, "")
	}
}

func (g *generator) drawTableHeader(doc *gofpdf.Fpdf, geom Geometry) {
	t := geom.Table

	doc.SetFillColor(46, 90, 172)
	doc.Rect(t.X, t.Y, t.Width, t.RowHeight, "F")

	doc.SetTextColor(255, 255, 255)
	g.setFont(doc, StyleBold, 11)

	doc.SetXY(t.X+8, t.Y+3)
	doc.CellFormat(t.DescWidth-8, 12, "DESCRIPTION", "", 0, "L", false, 0, "")
	doc.SetXY(t.X+t.DescWidth+8, t.Y+3)
	doc.CellFormat(t.TaxedWidth-8, 12, "TAXED", "", 0, "C", false, 0, "")
	doc.SetXY(t.X+t.DescWidth+t.TaxedWidth+8, t.Y+3)
	doc.CellFormat(t.AmountWidth-18, 12, "AMOUNT", "", 0, "R", false, 0, "")

	doc.SetTextColor(0, 0, 0)
}

// drawRows draws the visible line items with zebra striping and returns the
// y cursor below the last drawn row (or the omitted-count line).
func (g *generator) drawRows(doc *gofpdf.Fpdf, geom Geometry, m TextMeasurer, plan RowPlan, data *domain.InvoiceDocument) float64 {
	t := geom.Table
	y := t.Y + t.RowHeight

	toggle := false
	for i := 0; i < plan.Visible; i++ {
		item := data.Items[i]

		if toggle {
			doc.SetFillColor(245, 247, 250)
			doc.Rect(t.X, y, t.Width, plan.RowHeight, "F")
		}

		maxDescWidth := t.DescWidth - 10
		desc := TruncateToWidth(m, StyleItalic, plan.FontSize, item.Description, maxDescWidth)

		g.setFont(doc, StyleItalic, plan.FontSize)
		doc.SetTextColor(0, 0, 0)
		doc.SetXY(t.X+8, y+4)
		doc.CellFormat(maxDescWidth, plan.FontSize+2, desc, "", 0, "L", false, 0, "")

		taxedMark := ""
		if item.Taxed {
			taxedMark = "X"
		}
		doc.SetXY(t.X+t.DescWidth+8, y+4)
		doc.CellFormat(t.TaxedWidth-8, plan.FontSize+2, taxedMark, "", 0, "C", false, 0, "")

		amount := g.format.Format(item.Amount().Round(2))
		doc.SetXY(t.X+t.DescWidth+t.TaxedWidth+8, y+4)
		doc.CellFormat(t.AmountWidth-18, plan.FontSize+2, amount, "", 0, "R", false, 0, "")

		y += plan.RowHeight
		toggle = !toggle
	}

	if plan.Omitted > 0 {
		g.setFont(doc, StyleItalic, 8)
		doc.SetTextColor(85, 85, 85)
		doc.SetXY(t.X+8, y+6)
		doc.CellFormat(t.Width-16, 10,
			fmt.Sprintf("+%d more item(s) omitted", plan.Omitted), "", 0, "L", false, 0, "")
		doc.SetTextColor(0, 0, 0)
		y += 20
	}

	return y
}

func (g *generator) drawTotals(doc *gofpdf.Fpdf, geom Geometry, totalsY float64, totals Totals, data *domain.InvoiceDocument) {
	x := geom.TotalsX()

	row := func(style FontStyle, offset float64, label, value string) {
		g.setFont(doc, style, 9)
		doc.SetXY(x, totalsY+offset)
		doc.CellFormat(100, 12, label, "", 0, "L", false, 0, "")
		doc.SetXY(x+100, totalsY+offset)
		doc.CellFormat(80, 12, value, "", 0, "R", false, 0, "")
	}

	row(StyleRegular, 0, "Subtotal", g.format.Format(totals.Subtotal))
	row(StyleRegular, 14, "Taxable", g.format.Format(totals.TaxableBase))
	row(StyleRegular, 28, fmt.Sprintf("Tax (%s%%)", data.TaxRate.String()), g.format.Format(totals.TaxAmount))
	row(StyleBold, 48, "TOTAL", g.format.Format(totals.Total))
}

func (g *generator) drawComments(doc *gofpdf.Fpdf, geom Geometry, totalsY float64, notes string) {
	commentsY := math.Min(totalsY, geom.PageHeight-geom.Margin-commentsHeight-80)

	doc.SetLineWidth(1)
	doc.SetDrawColor(46, 90, 172)
	doc.Rect(geom.LeftX, commentsY, geom.MidX-geom.LeftX, commentsHeight, "D")
	doc.SetDrawColor(0, 0, 0)

	g.setFont(doc, StyleBold, 10)
	doc.SetXY(geom.LeftX+6, commentsY+6)
	doc.CellFormat(geom.MidX-geom.LeftX-12, 12, "OTHER COMMENTS", "", 0, "L", false, 0, "")

	if notes == "" {
		notes = defaultNotes
	}

	// wrap and clip so the comments never flow past the box
	g.setFont(doc, StyleRegular, 9)
	width := geom.MidX - geom.LeftX - 12
	const lineHeight = 11.0
	maxLines := int(math.Floor((commentsHeight - 28) / lineHeight))

	var lines []string
	for _, paragraph := range strings.Split(notes, "\n") {
		lines = append(lines, doc.SplitText(paragraph, width)...)
	}
	if len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	for i, line := range lines {
		doc.SetXY(geom.LeftX+6, commentsY+24+float64(i)*lineHeight)
		doc.CellFormat(width, lineHeight, line, "", 0, "L", false, 0, "")
	}
}

func formatDateDMY(data *domain.InvoiceDocument) string {
	if data.IssueDate.IsZero() {
		return ""
	}
	return data.IssueDate.Format("02/01/2006")
}
