// Package utils provides shared utility functions.
package utils

import (
	"fmt"
	"strings"
)

// FormatUSD formats a number as US dollars with comma grouping.
func FormatUSD(amount float64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	str := fmt.Sprintf("%.2f", amount)
	parts := strings.Split(str, ".")
	intPart := groupThousands(parts[0])

	result := "$" + intPart + "." + parts[1]
	if negative {
		result = "-" + result
	}
	return result
}

// FormatSignedUSD formats a dollar amount with an explicit sign.
func FormatSignedUSD(amount float64) string {
	if amount > 0 {
		return "+" + FormatUSD(amount)
	}
	return FormatUSD(amount)
}

// FormatCompactUSD formats a dollar amount without decimals, for
// volume and liquidity figures.
func FormatCompactUSD(amount float64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}
	result := "$" + groupThousands(fmt.Sprintf("%.0f", amount))
	if negative {
		result = "-" + result
	}
	return result
}

// FormatProbability formats a probability in [0,1] as a percentage.
func FormatProbability(p float64) string {
	return fmt.Sprintf("%.1f%%", p*100)
}

// FormatPercent formats a percentage with sign.
func FormatPercent(value float64) string {
	sign := ""
	if value > 0 {
		sign = "+"
	}
	return fmt.Sprintf("%s%.1f%%", sign, value)
}

// Truncate shortens a string to at most n runes.
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	var b strings.Builder
	rem := n % 3
	if rem > 0 {
		b.WriteString(s[:rem])
	}
	for i := rem; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
