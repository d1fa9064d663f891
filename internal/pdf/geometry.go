package pdf

// All coordinates are PDF points with the origin at the top-left corner.
// The template targets exactly one page size; blocks sit at fixed offsets
// and are never reflowed, except for the row fitting in fit.go.
const (
	PageWidthA4   = 595.28
	PageHeightA4  = 841.89
	DefaultMargin = 50.0

	midXOffset     = 300.0
	rightXOffset   = 420.0
	dividerYOffset = 80.0
	headerGap      = 6.0
	billToOffset   = 80.0
	billToHeight   = 80.0
	tableGap       = 12.0

	baseRowHeight    = 18.0
	minRowHeight     = 10.0
	baseItemFontSize = 9.0
	minItemFontSize  = 6.0

	taxedColWidth  = 120.0
	amountColWidth = 120.0
	tableGutter    = 20.0

	// Vertical reserves below the table. totalsReserve bounds the row
	// shrink estimate, hardCapReserve bounds the authoritative row cap,
	// and bottomClampReserve is the cursor clamp after the last row.
	totalsReserve      = 180.0
	hardCapReserve     = 220.0
	bottomClampReserve = 160.0

	totalsBlockWidth = 180.0
	commentsHeight   = 80.0
)

// TableGeometry positions the line-item table
type TableGeometry struct {
	X           float64
	Y           float64
	Width       float64
	RowHeight   float64
	TaxedWidth  float64
	AmountWidth float64
	DescWidth   float64
}

// Geometry holds every fixed offset of the page template. One Geometry is
// computed per render and shared by all blocks; there is no multi-pass layout.
type Geometry struct {
	PageWidth  float64
	PageHeight float64
	Margin     float64

	LeftX  float64
	MidX   float64
	RightX float64

	DividerY float64
	HeaderY  float64

	BillToY      float64
	BillToHeight float64

	Table TableGeometry
}

// NewGeometry derives the template geometry from the page dimensions and margin
func NewGeometry(pageWidth, pageHeight, margin float64) Geometry {
	g := Geometry{
		PageWidth:  pageWidth,
		PageHeight: pageHeight,
		Margin:     margin,

		LeftX:  margin,
		MidX:   midXOffset,
		RightX: rightXOffset,

		DividerY: dividerYOffset,
		HeaderY:  dividerYOffset + headerGap,
	}

	g.BillToY = g.HeaderY + billToOffset
	g.BillToHeight = billToHeight

	g.Table = TableGeometry{
		X:           g.LeftX,
		Y:           g.BillToY + g.BillToHeight + tableGap,
		Width:       pageWidth - margin*2,
		RowHeight:   baseRowHeight,
		TaxedWidth:  taxedColWidth,
		AmountWidth: amountColWidth,
	}
	g.Table.DescWidth = g.Table.Width - (g.Table.TaxedWidth + g.Table.AmountWidth + tableGutter)

	return g
}

// AvailableHeight is the vertical space between the table top and the
// space reserved for the totals and comments blocks
func (g Geometry) AvailableHeight() float64 {
	return g.PageHeight - (g.Table.Y + totalsReserve)
}

// BottomLimit is the lowest y the content cursor may reach after the table,
// keeping the totals and comments blocks on the single page
func (g Geometry) BottomLimit() float64 {
	return g.PageHeight - g.Margin - bottomClampReserve
}

// TotalsX is the left edge of the totals block
func (g Geometry) TotalsX() float64 {
	return g.Table.X + g.Table.Width - totalsBlockWidth
}
