package pdf

import "math"

// RowPlan is the sizing decision for the line-item table of one render.
//
// Sizing is two-tier: the shrink pass compresses row height and font size
// for the given item count, and the hard cap independently bounds how many
// rows the absolute page geometry allows. The cap is authoritative; the
// shrink estimate may assume more rows fit than the cap later admits.
type RowPlan struct {
	RowHeight float64
	FontSize  float64
	MaxRows   int
	Visible   int
	Omitted   int
}

// PlanRows computes the row plan for itemCount items on the given geometry
func PlanRows(g Geometry, itemCount int) RowPlan {
	rowHeight := g.Table.RowHeight
	fontSize := baseItemFontSize

	if itemCount > 0 {
		available := g.AvailableHeight()
		maxRows := int(math.Floor(available / rowHeight))
		if maxRows < 1 {
			maxRows = 1
		}
		if itemCount > maxRows {
			rowHeight = math.Max(minRowHeight, math.Floor(available/float64(itemCount)))
			fontSize = math.Max(minItemFontSize, math.Floor(rowHeight-6))
		}
	}

	maxRenderable := int(math.Floor((g.PageHeight - g.Margin - g.Table.Y - hardCapReserve) / rowHeight))
	if maxRenderable < 0 {
		maxRenderable = 0
	}

	visible := itemCount
	if visible > maxRenderable {
		visible = maxRenderable
	}

	return RowPlan{
		RowHeight: rowHeight,
		FontSize:  fontSize,
		MaxRows:   maxRenderable,
		Visible:   visible,
		Omitted:   itemCount - visible,
	}
}

const truncationFallbackRunes = 10

// TruncateToWidth shortens s so that its rendered width fits maxWidth,
// appending "..." when anything is cut. The prefix search is binary over
// rune count, measured with the same metrics the text will be drawn with.
// If no prefix fits at all, the first few runes plus ellipsis are used.
func TruncateToWidth(m TextMeasurer, style FontStyle, size float64, s string, maxWidth float64) string {
	if s == "" {
		return ""
	}
	if m.WidthOf(s, style, size) <= maxWidth {
		return s
	}

	runes := []rune(s)
	lo, hi := 0, len(runes)
	best := ""
	for lo <= hi {
		mid := (lo + hi) / 2
		candidate := string(runes[:mid]) + "..."
		if m.WidthOf(candidate, style, size) <= maxWidth {
			best = candidate
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}

	if best == "" {
		n := truncationFallbackRunes
		if len(runes) < n {
			n = len(runes)
		}
		return string(runes[:n]) + "..."
	}
	return best
}
