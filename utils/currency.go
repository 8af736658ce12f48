package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatRupiah memformat nominal rupiah utuh: 15000 -> "Rp 15.000"
func FormatRupiah(amount int64) string {
	return FormatRupiahDecimal(decimal.NewFromInt(amount))
}

// FormatRupiahDecimal membulatkan ke rupiah terdekat lalu memberi pemisah ribuan
func FormatRupiahDecimal(amount decimal.Decimal) string {
	rounded := amount.Round(0)
	negative := rounded.IsNegative()
	digits := rounded.Abs().String()

	var parts []string
	for i := len(digits); i > 0; i -= 3 {
		start := i - 3
		if start < 0 {
			start = 0
		}
		parts = append([]string{digits[start:i]}, parts...)
	}

	out := "Rp " + strings.Join(parts, ".")
	if negative {
		out = "-" + out
	}
	return out
}
