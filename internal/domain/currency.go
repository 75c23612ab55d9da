package domain

import (
	"fmt"
	"strings"
)

// FormatPrice renders a price with two decimals and thousands separators,
// e.g. 1234.5 -> "1,234.50". Non-finite values render as zero.
func FormatPrice(v float64) string {
	if !isFinite(v) {
		v = 0
	}

	s := fmt.Sprintf("%.2f", v)

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	whole, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, digit := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}
	b.WriteByte('.')
	b.WriteString(frac)

	return b.String()
}
