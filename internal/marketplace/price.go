package marketplace

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var rubles = message.NewPrinter(language.Russian)

// FormatPrice renders a ruble amount for display: Russian locale digit
// grouping, no fractional part.
func FormatPrice(amount int64) string {
	return rubles.Sprintf("%d ₽", amount)
}
