// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// maxDecimals bounds the fraction digits humanize.FormatFloat supports well.
const maxDecimals = 4

// Currency formats amounts for display. Only presentation uses it; stored
// amounts are plain numbers.
type Currency struct {
	Symbol   string
	Decimals int
}

func (c Currency) pattern() string {
	d := c.Decimals
	if d < 0 {
		d = 0
	}
	if d > maxDecimals {
		d = maxDecimals
	}
	return "#,###." + strings.Repeat("#", d)
}

// Format renders an amount with grouping and the currency symbol.
// e.g., 1234567 -> "¥1,234,567", -500 -> "-¥500"
func (c Currency) Format(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return c.Symbol + "?"
	}
	if v < 0 {
		return "-" + c.Symbol + humanize.FormatFloat(c.pattern(), -v)
	}
	return c.Symbol + humanize.FormatFloat(c.pattern(), v)
}

// Signed renders a delta with an explicit sign.
// e.g., 20000 -> "+¥20,000", -150 -> "-¥150"
func (c Currency) Signed(v float64) string {
	if v >= 0 {
		return "+" + c.Format(v)
	}
	return c.Format(v)
}

// ErrBadAmount is returned by ParseAmount for input that is not a number.
var ErrBadAmount = errors.New("not a valid amount")

// ParseAmount reads a user-typed amount. Thousands separators, surrounding
// spaces and the currency symbol are ignored.
// e.g., "¥1,000,000" -> 1000000, "-2,500" -> -2500
func (c Currency) ParseAmount(s string) (float64, error) {
	clean := strings.TrimSpace(s)
	if c.Symbol != "" {
		clean = strings.ReplaceAll(clean, c.Symbol, "")
	}
	clean = strings.ReplaceAll(clean, ",", "")
	clean = strings.ReplaceAll(clean, "_", "")
	clean = strings.TrimSpace(clean)
	if clean == "" {
		return 0, fmt.Errorf("%q: %w", s, ErrBadAmount)
	}

	v, err := strconv.ParseFloat(clean, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q: %w", s, ErrBadAmount)
	}
	return v, nil
}

// FormatPercent formats a 0-100 percentage with one decimal.
func FormatPercent(pct float64) string {
	if math.IsNaN(pct) {
		pct = 0
	}
	return fmt.Sprintf("%.1f%%", pct)
}

// FormatTime formats a timestamp in local time for tables.
func FormatTime(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04")
}

// FormatAgo formats t relative to now.
// e.g., "3 minutes ago", "2 days ago"
func FormatAgo(t, now time.Time) string {
	return humanize.RelTime(t, now, "ago", "from now")
}

// FormatCount pluralizes a count.
// e.g., 1 -> "1 goal", 1200 -> "1,200 goals"
func FormatCount(n int, singular, plural string) string {
	word := singular
	if n != 1 {
		word = plural
	}
	return humanize.Comma(int64(n)) + " " + word
}
