package mapping

import (
	"errors"
	"testing"

	"github.com/tmorrell/whisk/internal/domain"
)

func TestForEntityKnownTypes(t *testing.T) {
	for _, entity := range []string{"orders", "order_items", "expenses", "supplies", "contacts", "recipes", "quotes"} {
		table, err := ForEntity(entity)
		if err != nil {
			t.Fatalf("ForEntity(%s) returned error: %v", entity, err)
		}
		if table.SQLTable == "" {
			t.Fatalf("ForEntity(%s) has no target table", entity)
		}
		if len(table.Fields) == 0 {
			t.Fatalf("ForEntity(%s) has no fields", entity)
		}
	}
}

func TestForEntityUnknownType(t *testing.T) {
	_, err := ForEntity("payments")
	if !errors.Is(err, ErrUnknownEntity) {
		t.Fatalf("expected ErrUnknownEntity, got %v", err)
	}
}

func TestMapRowResolvesAliases(t *testing.T) {
	table, err := ForEntity("orders")
	if err != nil {
		t.Fatalf("ForEntity returned error: %v", err)
	}

	row := domain.RawRow{
		"OrderNumber": "Q-100",
		"Event Type":  "wedding",
		"Order Total": "$50.00",
		"eventDate":   "2024-12-01",
	}

	mapped, rowErr := table.MapRow(row)
	if rowErr != nil {
		t.Fatalf("MapRow returned error: %+v", rowErr)
	}
	if mapped["order_number"] != "Q-100" {
		t.Fatalf("expected order_number Q-100, got %v", mapped["order_number"])
	}
	if mapped["category"] != "wedding" {
		t.Fatalf("expected category wedding, got %v", mapped["category"])
	}
	if mapped["total_amount"] != "$50.00" {
		t.Fatalf("expected total_amount $50.00, got %v", mapped["total_amount"])
	}
	if mapped["event_date"] != "2024-12-01" {
		t.Fatalf("expected event_date mapped, got %v", mapped["event_date"])
	}
}

func TestMapRowFirstAliasWins(t *testing.T) {
	table, err := ForEntity("orders")
	if err != nil {
		t.Fatalf("ForEntity returned error: %v", err)
	}

	// Both order_number and the later quote_number alias are present; the
	// earlier alias in the declaration order must win.
	row := domain.RawRow{
		"order_number": "A-1",
		"quote_number": "B-2",
		"category":     "birthday",
		"total":        "10",
		"date":         "2024-01-01",
	}

	mapped, rowErr := table.MapRow(row)
	if rowErr != nil {
		t.Fatalf("MapRow returned error: %+v", rowErr)
	}
	if mapped["order_number"] != "A-1" {
		t.Fatalf("expected first alias to win, got %v", mapped["order_number"])
	}
}

func TestMapRowMissingRequiredKey(t *testing.T) {
	table, err := ForEntity("orders")
	if err != nil {
		t.Fatalf("ForEntity returned error: %v", err)
	}

	row := domain.RawRow{
		"category": "wedding",
		"total":    "10",
		"date":     "2024-01-01",
	}

	_, rowErr := table.MapRow(row)
	if rowErr == nil {
		t.Fatalf("expected mapping error for missing order_number")
	}
	if rowErr.Stage != domain.StageMapping {
		t.Fatalf("expected mapping stage, got %s", rowErr.Stage)
	}
	if rowErr.Reason != "missing order_number" {
		t.Fatalf("unexpected reason %q", rowErr.Reason)
	}
}

func TestMapRowOptionalKeysAbsent(t *testing.T) {
	table, err := ForEntity("contacts")
	if err != nil {
		t.Fatalf("ForEntity returned error: %v", err)
	}

	mapped, rowErr := table.MapRow(domain.RawRow{"Customer Name": "Ada"})
	if rowErr != nil {
		t.Fatalf("MapRow returned error: %+v", rowErr)
	}
	if _, ok := mapped["email"]; ok {
		t.Fatalf("expected unmapped optional key to be absent")
	}
}

func TestNormalizeLabelVariants(t *testing.T) {
	variants := []string{"order_number", "orderNumber", "Order Number", "ORDER-NUMBER"}
	for _, label := range variants {
		if got := normalizeLabel(label); got != "ordernumber" {
			t.Fatalf("normalizeLabel(%q) = %q", label, got)
		}
	}
}
