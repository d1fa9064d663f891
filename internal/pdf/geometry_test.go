package pdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewGeometry_A4Template(t *testing.T) {
	g := a4Geometry()

	assert.Equal(t, 50.0, g.LeftX)
	assert.Equal(t, 300.0, g.MidX)
	assert.Equal(t, 420.0, g.RightX)
	assert.Equal(t, 80.0, g.DividerY)
	assert.Equal(t, 86.0, g.HeaderY)
	assert.Equal(t, 166.0, g.BillToY)
	assert.Equal(t, 80.0, g.BillToHeight)

	assert.Equal(t, 258.0, g.Table.Y)
	assert.Equal(t, 18.0, g.Table.RowHeight)
	assert.InDelta(t, 495.28, g.Table.Width, 0.001)

	// columns partition the table width with the gutter
	assert.InDelta(t, g.Table.Width,
		g.Table.DescWidth+g.Table.TaxedWidth+g.Table.AmountWidth+20.0, 0.001)
}

func TestGeometry_VerticalReserves(t *testing.T) {
	g := a4Geometry()

	assert.InDelta(t, 403.89, g.AvailableHeight(), 0.001)
	assert.InDelta(t, 631.89, g.BottomLimit(), 0.001)
	assert.InDelta(t, 365.28, g.TotalsX(), 0.001)
}
