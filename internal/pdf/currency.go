package pdf

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// CurrencyFormatter renders amounts as "<CODE> <grouped number>" with two
// fixed decimal places. The three-letter code prefix avoids missing currency
// glyphs in embedded fonts.
type CurrencyFormatter struct {
	code    string
	printer *message.Printer
}

// NewCurrencyFormatter builds a formatter for a BCP 47 locale (digit
// grouping) and a 3-letter currency code. An unparseable locale falls back
// to English grouping.
func NewCurrencyFormatter(locale, code string) CurrencyFormatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return CurrencyFormatter{
		code:    strings.ToUpper(code),
		printer: message.NewPrinter(tag),
	}
}

// Format renders one amount for display
func (f CurrencyFormatter) Format(v decimal.Decimal) string {
	amount := v.InexactFloat64()
	grouped := f.printer.Sprint(number.Decimal(amount,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2),
	))
	return fmt.Sprintf("%s %s", f.code, grouped)
}
