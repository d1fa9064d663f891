package pdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCurrencyFormatter_IndianGrouping(t *testing.T) {
	f := NewCurrencyFormatter("en-IN", "INR")

	assert.Equal(t, "INR 10,510.00", f.Format(dec("10510")))
	assert.Equal(t, "INR 12,34,567.89", f.Format(dec("1234567.89")))
	assert.Equal(t, "INR 0.00", f.Format(dec("0")))
	assert.Equal(t, "INR 49.50", f.Format(dec("49.5")))
}

func TestCurrencyFormatter_WesternGrouping(t *testing.T) {
	f := NewCurrencyFormatter("en-US", "USD")

	assert.Equal(t, "USD 1,234,567.89", f.Format(dec("1234567.89")))
}

func TestCurrencyFormatter_CodeUppercased(t *testing.T) {
	f := NewCurrencyFormatter("en-IN", "inr")

	assert.Equal(t, "INR 1.00", f.Format(dec("1")))
}

func TestCurrencyFormatter_BadLocaleFallsBack(t *testing.T) {
	f := NewCurrencyFormatter("definitely-not-a-locale", "EUR")

	assert.Equal(t, "EUR 1,000.00", f.Format(dec("1000")))
}
