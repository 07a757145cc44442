// Package utils содержит утилитарные функции, используемые в разных частях приложения
package utils

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// FormatBases форматирует длину в парах оснований: 950 bp, 12.5 kb, 3.2 Mb
func FormatBases(n int64) string {
	switch {
	case n >= 1_000_000_000:
		return trimZero(float64(n)/1e9) + " Gb"
	case n >= 1_000_000:
		return trimZero(float64(n)/1e6) + " Mb"
	case n >= 1_000:
		return trimZero(float64(n)/1e3) + " kb"
	default:
		return fmt.Sprintf("%d bp", n)
	}
}

func trimZero(v float64) string {
	s := strconv.FormatFloat(v, 'f', 1, 64)
	return strings.TrimSuffix(s, ".0")
}

// FormatPosition форматирует координату с разделителями разрядов: 1,234,567
func FormatPosition(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// TruncateString обрезает строку до maxLen ячеек терминала, добавляя "…" если строка длиннее.
// Широкие символы (CJK, эмодзи) занимают две ячейки.
func TruncateString(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if ansi.StringWidth(s) <= maxLen {
		return s
	}
	if maxLen == 1 {
		return ansi.Truncate(s, 1, "")
	}
	return ansi.Truncate(s, maxLen, "…")
}

// FitWidth обрезает или дополняет строку пробелами до ровно width ячеек терминала
func FitWidth(s string, width int) string {
	s = TruncateString(s, width)
	if pad := width - ansi.StringWidth(s); pad > 0 {
		s += strings.Repeat(" ", pad)
	}
	return s
}
