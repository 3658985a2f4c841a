package coerce

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestMoney(t *testing.T) {
	cases := []struct {
		name string
		raw  any
		want string
	}{
		{"currency symbol and separators", "$1,234.56", "1234.56"},
		{"euro symbol", "€99.50", "99.5"},
		{"plain number", "42", "42"},
		{"negative", "-$12.00", "-12"},
		{"empty string", "", "0"},
		{"nil", nil, "0"},
		{"garbage", "abc", "0"},
		{"json number", float64(50), "50"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Money(tc.raw)
			want, _ := decimal.NewFromString(tc.want)
			if !got.Equal(want) {
				t.Fatalf("Money(%v) = %s, want %s", tc.raw, got, want)
			}
		})
	}
}

func TestInteger(t *testing.T) {
	cases := []struct {
		name    string
		raw     any
		want    int64
		wantErr bool
	}{
		{"plain", "17", 17, false},
		{"leading run", "12 pcs", 12, false},
		{"negative", "-3", -3, false},
		{"json number", float64(8), 8, false},
		{"empty", "", 0, true},
		{"nil", nil, 0, true},
		{"no digits", "abc", 0, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Integer(tc.raw)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("Integer(%v) expected error, got %d", tc.raw, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Integer(%v) returned error: %v", tc.raw, err)
			}
			if got != tc.want {
				t.Fatalf("Integer(%v) = %d, want %d", tc.raw, got, tc.want)
			}
		})
	}
}

func TestDate(t *testing.T) {
	cases := []struct {
		name string
		raw  any
		want time.Time
	}{
		{"iso date", "2024-03-05", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)},
		{"iso with time", "2024-03-05T14:30", time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC)},
		{"space separated timestamp", "2024-03-05 14:30", time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC)},
		// First slash group <= 12 is read as the month.
		{"slash month first", "05/03/2024", time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC)},
		{"slash december", "12/01/2024", time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)},
		// First group > 12 cannot be a month, so groups are swapped.
		{"slash day first", "25/06/2024", time.Date(2024, 6, 25, 0, 0, 0, 0, time.UTC)},
		{"bare year", "2023", time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"escaped quotes stripped", `\"2024-03-05\"`, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Date(tc.raw)
			if err != nil {
				t.Fatalf("Date(%v) returned error: %v", tc.raw, err)
			}
			if !got.Equal(tc.want) {
				t.Fatalf("Date(%v) = %s, want %s", tc.raw, got, tc.want)
			}
		})
	}
}

func TestDateFailures(t *testing.T) {
	for _, raw := range []any{"not-a-date", "", nil, "99/99/2024", "13/13/2024"} {
		if _, err := Date(raw); err == nil {
			t.Fatalf("Date(%v) expected error", raw)
		}
	}
}

func TestBoolean(t *testing.T) {
	truthy := []any{"true", "TRUE", "yes", "Yes", "1", true}
	for _, raw := range truthy {
		if !Boolean(raw) {
			t.Fatalf("Boolean(%v) = false, want true", raw)
		}
	}

	falsy := []any{"false", "no", "0", "", nil, "maybe", false}
	for _, raw := range falsy {
		if Boolean(raw) {
			t.Fatalf("Boolean(%v) = true, want false", raw)
		}
	}
}
