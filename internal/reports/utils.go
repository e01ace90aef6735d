package reports

import (
	"math"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"ecoreport/internal/models"
)

const notAvailable = "n/a"

var numberPrinter = message.NewPrinter(language.English)

// ToTitleCase converts a string to title case (first letter of each word capitalized)
func ToTitleCase(s string) string {
	if s == "" {
		return s
	}

	words := strings.Fields(s)
	for i, word := range words {
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		for j := 1; j < len(runes); j++ {
			runes[j] = unicode.ToLower(runes[j])
		}
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// formatNumber groups thousands: 12345.6 -> "12,346"
func formatNumber(v float64) string {
	return numberPrinter.Sprintf("%.0f", finite(v))
}

func formatDecimal(v float64) string {
	return numberPrinter.Sprintf("%.1f", finite(v))
}

func formatCurrency(v float64) string {
	v = finite(v)
	if v < 0 {
		return "-$" + formatNumber(-v)
	}
	return "$" + formatNumber(v)
}

func formatPercent(v float64) string {
	return numberPrinter.Sprintf("%.1f%%", finite(v))
}

func formatTons(v float64) string {
	return formatDecimal(v) + " tons CO2e"
}

func formatMonths(v float64) string {
	v = finite(v)
	if v <= 0 {
		return notAvailable
	}
	if v == 1 {
		return "1 month"
	}
	return numberPrinter.Sprintf("%.0f months", v)
}

// formatChange is the relative change from previous to current
func formatChange(current, previous float64) string {
	current, previous = finite(current), finite(previous)
	if previous == 0 {
		return notAvailable
	}
	change := (current - previous) / previous * 100
	if change > 0 {
		return "+" + formatPercent(change)
	}
	return formatPercent(change)
}

// formatDate renders a snapshot date; missing or unparsable dates read "not set".
func formatDate(s string) string {
	t, ok := models.ParseDate(s)
	if !ok {
		return "not set"
	}
	return t.Format("January 2, 2006")
}

func formatReportDate(t time.Time) string {
	return t.Format("January 2, 2006")
}

// orDefault substitutes placeholder text for blank snapshot strings
func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
