package normalize

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tmorrell/whisk/internal/domain"
	"github.com/tmorrell/whisk/internal/mapping"
)

func ordersTable(t *testing.T) mapping.Table {
	t.Helper()
	table, err := mapping.ForEntity("orders")
	if err != nil {
		t.Fatalf("ForEntity returned error: %v", err)
	}
	return table
}

func TestRowNormalizesValidOrder(t *testing.T) {
	raw := domain.RawRow{
		"order_number": "Q-100",
		"category":     "wedding",
		"total_amount": "$1,234.56",
		"event_date":   "2024-03-05",
		"discount":     "15",
		"paid":         "yes",
	}

	record, rowErr := Row(ordersTable(t), raw)
	if rowErr != nil {
		t.Fatalf("Row returned error: %+v", rowErr)
	}

	if record["order_number"] != "Q-100" {
		t.Fatalf("unexpected order_number %v", record["order_number"])
	}
	amount, ok := record["total_amount"].(decimal.Decimal)
	if !ok || !amount.Equal(decimal.RequireFromString("1234.56")) {
		t.Fatalf("unexpected total_amount %v", record["total_amount"])
	}
	date, ok := record["event_date"].(time.Time)
	if !ok || !date.Equal(time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected event_date %v", record["event_date"])
	}
	if record["discount"] != int64(15) {
		t.Fatalf("unexpected discount %v", record["discount"])
	}
	if record["paid"] != true {
		t.Fatalf("unexpected paid %v", record["paid"])
	}
}

func TestRowDefaultsOptionalFields(t *testing.T) {
	raw := domain.RawRow{
		"order_number": "Q-101",
		"category":     "birthday",
		"total_amount": "20",
		"event_date":   "2024-06-01",
	}

	record, rowErr := Row(ordersTable(t), raw)
	if rowErr != nil {
		t.Fatalf("Row returned error: %+v", rowErr)
	}

	if record["contact_id"] != mapping.UnassignedRef {
		t.Fatalf("expected unassigned contact sentinel, got %v", record["contact_id"])
	}
	if record["discount"] != int64(0) {
		t.Fatalf("expected discount default 0, got %v", record["discount"])
	}
	if record["status"] != "pending" {
		t.Fatalf("expected status default pending, got %v", record["status"])
	}
	if record["paid"] != false {
		t.Fatalf("expected paid default false, got %v", record["paid"])
	}
}

func TestRowEmptyRequiredStringIsMappingError(t *testing.T) {
	raw := domain.RawRow{
		"order_number": "",
		"category":     "wedding",
		"total_amount": "abc",
		"event_date":   "2024-06-01",
	}

	_, rowErr := Row(ordersTable(t), raw)
	if rowErr == nil {
		t.Fatalf("expected row error")
	}
	if rowErr.Stage != domain.StageMapping {
		t.Fatalf("expected mapping stage, got %s", rowErr.Stage)
	}
	if rowErr.Reason != "missing order_number" {
		t.Fatalf("unexpected reason %q", rowErr.Reason)
	}
}

func TestRowMandatoryDateFailsRow(t *testing.T) {
	raw := domain.RawRow{
		"order_number": "Q-102",
		"category":     "wedding",
		"total_amount": "20",
		"event_date":   "not-a-date",
	}

	_, rowErr := Row(ordersTable(t), raw)
	if rowErr == nil {
		t.Fatalf("expected row error")
	}
	if rowErr.Stage != domain.StageCoercion {
		t.Fatalf("expected coercion stage, got %s", rowErr.Stage)
	}
	if !strings.Contains(rowErr.Reason, "event_date") {
		t.Fatalf("expected reason to name event_date, got %q", rowErr.Reason)
	}
}

func TestRowOptionalDateFallsBackToNow(t *testing.T) {
	table, err := mapping.ForEntity("supplies")
	if err != nil {
		t.Fatalf("ForEntity returned error: %v", err)
	}

	raw := domain.RawRow{
		"name":         "flour",
		"category":     "dry goods",
		"restock_date": "whenever",
	}

	record, rowErr := Row(table, raw)
	if rowErr != nil {
		t.Fatalf("Row returned error: %+v", rowErr)
	}

	ts, ok := record["restock_date"].(time.Time)
	if !ok {
		t.Fatalf("expected time fallback, got %v", record["restock_date"])
	}
	if time.Since(ts) > time.Minute {
		t.Fatalf("expected fallback close to now, got %s", ts)
	}
}

func TestRowOutOfRangeQuantityIsValidationError(t *testing.T) {
	raw := domain.RawRow{
		"order_number": "Q-103",
		"category":     "wedding",
		"total_amount": "20",
		"event_date":   "2024-06-01",
		"discount":     "250",
	}

	_, rowErr := Row(ordersTable(t), raw)
	if rowErr == nil {
		t.Fatalf("expected row error")
	}
	if rowErr.Stage != domain.StageValidation {
		t.Fatalf("expected validation stage, got %s", rowErr.Stage)
	}
	if !strings.Contains(rowErr.Reason, "250") {
		t.Fatalf("expected reason to carry the offending value, got %q", rowErr.Reason)
	}
}

func TestRowUnparseableReferenceUsesSentinel(t *testing.T) {
	raw := domain.RawRow{
		"order_number": "Q-104",
		"category":     "wedding",
		"total_amount": "20",
		"event_date":   "2024-06-01",
		"contact_id":   "n/a",
	}

	record, rowErr := Row(ordersTable(t), raw)
	if rowErr != nil {
		t.Fatalf("Row returned error: %+v", rowErr)
	}
	if record["contact_id"] != mapping.UnassignedRef {
		t.Fatalf("expected sentinel reference, got %v", record["contact_id"])
	}
}
