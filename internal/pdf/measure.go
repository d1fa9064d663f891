package pdf

import "github.com/jung-kurt/gofpdf"

// FontStyle selects one of the three faces used by the template
type FontStyle int

const (
	StyleRegular FontStyle = iota
	StyleBold
	StyleItalic
)

// TextMeasurer reports the rendered width of a string. The truncation
// algorithm depends only on this capability, so it can run against a fake
// measurer in tests without a drawing backend.
type TextMeasurer interface {
	WidthOf(s string, style FontStyle, size float64) float64
}

// docMeasurer measures with the same font metrics the document will draw with
type docMeasurer struct {
	doc   *gofpdf.Fpdf
	fonts FontSet
}

func newDocMeasurer(doc *gofpdf.Fpdf, fonts FontSet) docMeasurer {
	return docMeasurer{doc: doc, fonts: fonts}
}

func (m docMeasurer) WidthOf(s string, style FontStyle, size float64) float64 {
	face := m.fonts.Face(style)
	m.doc.SetFont(face.Family, face.Style, size)
	return m.doc.GetStringWidth(s)
}
