// Package render turns quotes into template data and renders HTML, PDF, DOCX
// and XLSX artifacts from it.
package render

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the human date format used in documents
const DateLayout = "January 02, 2006"

// FormatCurrency renders an amount as "$#,##0.00"
func FormatCurrency(amount decimal.Decimal) string {
	neg := amount.IsNegative()
	s := amount.Abs().StringFixed(2)

	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteByte('$')
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	b.WriteString(frac)
	return b.String()
}

// FormatMoney formats a stored float amount
func FormatMoney(amount float64) string {
	return FormatCurrency(decimal.NewFromFloat(amount))
}

// FormatDate renders a date as "Month DD, YYYY"
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
