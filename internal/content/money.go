package content

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var usd = message.NewPrinter(language.AmericanEnglish)

// FormatMoney renders whole US dollars with grouping and no fraction digits, e.g. 1299 -> "$1,299".
func FormatMoney(dollars int) string {
	if dollars < 0 {
		return "-" + usd.Sprintf("$%d", -dollars)
	}
	return usd.Sprintf("$%d", dollars)
}
