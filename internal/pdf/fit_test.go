package pdf

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func a4Geometry() Geometry {
	return NewGeometry(PageWidthA4, PageHeightA4, DefaultMargin)
}

func TestPlanRows_FewItemsKeepBaseSizing(t *testing.T) {
	plan := PlanRows(a4Geometry(), 10)

	assert.Equal(t, 18.0, plan.RowHeight)
	assert.Equal(t, 9.0, plan.FontSize)
	assert.Equal(t, 10, plan.Visible)
	assert.Equal(t, 0, plan.Omitted)
}

func TestPlanRows_ZeroItems(t *testing.T) {
	plan := PlanRows(a4Geometry(), 0)

	assert.Equal(t, 18.0, plan.RowHeight)
	assert.Equal(t, 9.0, plan.FontSize)
	assert.Equal(t, 0, plan.Visible)
	assert.Equal(t, 0, plan.Omitted)
}

func TestPlanRows_ShrinksForManyItems(t *testing.T) {
	plan := PlanRows(a4Geometry(), 30)

	assert.Equal(t, 13.0, plan.RowHeight)
	assert.Equal(t, 7.0, plan.FontSize)
	assert.Equal(t, 24, plan.Visible)
	assert.Equal(t, 6, plan.Omitted)
}

func TestPlanRows_FloorsHold(t *testing.T) {
	plan := PlanRows(a4Geometry(), 120)

	assert.Equal(t, 10.0, plan.RowHeight)
	assert.Equal(t, 6.0, plan.FontSize)
	assert.Equal(t, 31, plan.Visible)
	assert.Equal(t, 89, plan.Omitted)
}

func TestPlanRows_HardCapIsAuthoritative(t *testing.T) {
	// 20 rows pass the shrink estimate at base sizing but exceed the cap,
	// so rows are dropped rather than resized
	plan := PlanRows(a4Geometry(), 20)

	assert.Equal(t, 18.0, plan.RowHeight)
	assert.Equal(t, 17, plan.MaxRows)
	assert.Equal(t, 17, plan.Visible)
	assert.Equal(t, 3, plan.Omitted)
}

func TestPlanRows_VisiblePlusOmittedEqualsCount(t *testing.T) {
	g := a4Geometry()
	for _, n := range []int{0, 1, 17, 22, 23, 50, 120, 1000} {
		plan := PlanRows(g, n)
		assert.Equal(t, n, plan.Visible+plan.Omitted, "count %d", n)
		assert.GreaterOrEqual(t, plan.RowHeight, 10.0, "count %d", n)
		assert.GreaterOrEqual(t, plan.FontSize, 6.0, "count %d", n)
		assert.LessOrEqual(t, plan.Visible, plan.MaxRows, "count %d", n)
	}
}

// fakeMeasurer gives every rune a fixed width so truncation results are
// predictable without a drawing backend
type fakeMeasurer struct {
	runeWidth float64
}

func (m fakeMeasurer) WidthOf(s string, _ FontStyle, _ float64) float64 {
	return float64(len([]rune(s))) * m.runeWidth
}

// wideMeasurer reports every non-empty string as too wide
type wideMeasurer struct{}

func (wideMeasurer) WidthOf(s string, _ FontStyle, _ float64) float64 {
	if s == "" {
		return 0
	}
	return 1e9
}

func TestTruncateToWidth_FitsUnchanged(t *testing.T) {
	m := fakeMeasurer{runeWidth: 5}

	got := TruncateToWidth(m, StyleItalic, 9, "short", 100)
	assert.Equal(t, "short", got)
}

func TestTruncateToWidth_Empty(t *testing.T) {
	m := fakeMeasurer{runeWidth: 5}

	assert.Equal(t, "", TruncateToWidth(m, StyleItalic, 9, "", 10))
}

func TestTruncateToWidth_AppendsEllipsis(t *testing.T) {
	m := fakeMeasurer{runeWidth: 5}
	s := strings.Repeat("a", 100)

	// 20 rune widths available: 17 prefix runes + "..."
	got := TruncateToWidth(m, StyleItalic, 9, s, 100)

	require.True(t, strings.HasSuffix(got, "..."))
	assert.Equal(t, strings.Repeat("a", 17)+"...", got)
	assert.LessOrEqual(t, m.WidthOf(got, StyleItalic, 9), 100.0)
}

func TestTruncateToWidth_ResultNeverWiderThanLimit(t *testing.T) {
	m := fakeMeasurer{runeWidth: 7}
	s := "line item with a very long description that cannot fit"

	for _, maxWidth := range []float64{30, 50, 80, 120, 200} {
		got := TruncateToWidth(m, StyleItalic, 9, s, maxWidth)
		if got != s {
			assert.True(t, strings.HasSuffix(got, "..."), "width %v", maxWidth)
			assert.LessOrEqual(t, m.WidthOf(got, StyleItalic, 9), maxWidth, "width %v", maxWidth)
		}
	}
}

func TestTruncateToWidth_UnicodeSafe(t *testing.T) {
	m := fakeMeasurer{runeWidth: 10}
	s := "日本語のテキストが長すぎる場合"

	got := TruncateToWidth(m, StyleItalic, 9, s, 80)

	assert.True(t, strings.HasSuffix(got, "..."))
	// prefix must be whole runes of the original
	assert.True(t, strings.HasPrefix(s, strings.TrimSuffix(got, "...")))
}

func TestTruncateToWidth_NothingFitsUsesFallback(t *testing.T) {
	s := strings.Repeat("x", 50)

	got := TruncateToWidth(wideMeasurer{}, StyleItalic, 9, s, 10)
	assert.Equal(t, strings.Repeat("x", 10)+"...", got)
}

func TestTruncateToWidth_FallbackShortString(t *testing.T) {
	got := TruncateToWidth(wideMeasurer{}, StyleItalic, 9, "abc", 10)
	assert.Equal(t, "abc...", got)
}
