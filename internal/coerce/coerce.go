// Package coerce converts raw cell values from imported exports into typed
// domain values. All functions accept whatever a JSON decoder or file parser
// produced (string, float64, bool, nil) and never panic on malformed input.
package coerce

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var dateLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// String renders a raw cell as a trimmed string. Numbers keep their shortest
// representation so a JSON 50 round-trips as "50", not "50.000000".
func String(raw any) string {
	switch v := raw.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

// Money parses a currency amount, tolerating symbols and thousands
// separators. Anything that is not a digit, '.' or '-' is stripped before
// parsing. Empty or unparseable input yields zero; Money never fails.
func Money(raw any) decimal.Decimal {
	s := String(raw)
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if cleaned == "" || cleaned == "-" || cleaned == "." {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Integer parses the leading numeric run of a raw cell, so "12 pcs" yields
// 12. Range enforcement is the normalizer's concern, not done here.
func Integer(raw any) (int64, error) {
	if f, ok := raw.(float64); ok {
		return int64(f), nil
	}

	s := String(raw)
	if s == "" {
		return 0, fmt.Errorf("empty value")
	}

	end := 0
	if s[0] == '-' || s[0] == '+' {
		end = 1
	}
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	run := s[:end]
	if run == "" || run == "-" || run == "+" {
		return 0, fmt.Errorf("no numeric value in %q", s)
	}

	n, err := strconv.ParseInt(run, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("unable to parse %q as integer", s)
	}
	return n, nil
}

// Date parses the date formats seen in competitor exports, in order:
// ISO dates and timestamps, slash-separated dates, and a bare four digit
// year (mapped to January 1). Slash dates are ambiguous between US and
// day-first ordering; the first group is read as the month when it is 12 or
// less, otherwise the groups are swapped. Escaped quotes and backslashes
// left over from transport re-serialization are stripped before parsing.
func Date(raw any) (time.Time, error) {
	s := strings.Trim(String(raw), "\\\"'")
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty value")
	}

	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, nil
		}
	}

	if ts, err := parseSlashDate(s); err == nil {
		return ts, nil
	}

	if len(s) == 4 {
		if year, err := strconv.Atoi(s); err == nil && year >= 1000 && year <= 9999 {
			return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC), nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

func parseSlashDate(s string) (time.Time, error) {
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("not a slash date")
	}

	first, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
	second, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
	year, err3 := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err1 != nil || err2 != nil || err3 != nil || year < 1000 || year > 9999 {
		return time.Time{}, fmt.Errorf("not a slash date")
	}

	month, day := first, second
	if first > 12 {
		month, day = second, first
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("slash date out of range")
	}

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), nil
}

// Boolean treats "true", "yes" and "1" (case-insensitive) as true and
// everything else as false. Never fails.
func Boolean(raw any) bool {
	if b, ok := raw.(bool); ok {
		return b
	}
	switch strings.ToLower(String(raw)) {
	case "true", "yes", "1":
		return true
	}
	return false
}
