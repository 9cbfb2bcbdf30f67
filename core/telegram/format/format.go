// Package format holds text formatting helpers shared by bot views.
package format

import (
	"fmt"
	"regexp"
)

var mdV1Specials = regexp.MustCompile("([_*\\[`])")

// EscapeMarkdown escapes Telegram Markdown (v1) special characters so
// catalog-sourced strings cannot break message formatting.
func EscapeMarkdown(text string) string {
	return mdV1Specials.ReplaceAllString(text, `\$1`)
}

// Price renders a currency amount with two fraction digits, e.g. "R$ 59.90".
func Price(amount float64) string {
	return fmt.Sprintf("R$ %.2f", amount)
}

// PriceCents renders an integer-cents amount with two fraction digits.
func PriceCents(cents int64) string {
	return Price(float64(cents) / 100)
}

// DerefString safely dereferences a *string and returns a default value if nil.
func DerefString(s *string, defaultVal string) string {
	if s != nil {
		return *s
	}
	return defaultVal
}
