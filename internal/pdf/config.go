package pdf

import (
	"github.com/billfold/billfold/internal/config"
)

// RenderConfig is the immutable configuration of one renderer instance.
// It is constructed once from the application configuration and passed in
// explicitly, never read from ambient process state at draw time.
type RenderConfig struct {
	PageWidth  float64
	PageHeight float64
	Margin     float64

	Locale      string
	Currency    string
	CompanyName string

	FontRegular string
	FontBold    string
	FontItalic  string
}

// NewRenderConfig materializes the application render settings onto the
// fixed A4 template
func NewRenderConfig(c config.RenderConfig) RenderConfig {
	return RenderConfig{
		PageWidth:   PageWidthA4,
		PageHeight:  PageHeightA4,
		Margin:      DefaultMargin,
		Locale:      c.Locale,
		Currency:    c.Currency,
		CompanyName: c.CompanyName,
		FontRegular: c.FontRegular,
		FontBold:    c.FontBold,
		FontItalic:  c.FontItalic,
	}
}

// DefaultRenderConfig returns the template defaults, useful in tests
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		PageWidth:   PageWidthA4,
		PageHeight:  PageHeightA4,
		Margin:      DefaultMargin,
		Locale:      "en-IN",
		Currency:    "INR",
		CompanyName: "Company Name",
	}
}
