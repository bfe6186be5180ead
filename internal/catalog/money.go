package catalog

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// FormatPrice renders a Rupiah amount the way id-ID formats IDR with no
// fraction digits, e.g. "Rp 299.000" with a non-breaking space after "Rp".
func FormatPrice(price int64) string {
	p := message.NewPrinter(language.Indonesian)
	return "Rp\u00a0" + p.Sprint(number.Decimal(price, number.MaxFractionDigits(0)))
}
