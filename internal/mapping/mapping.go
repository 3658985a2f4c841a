// Package mapping translates the column labels found in external exports
// into the canonical field keys records are stored under. One static table
// exists per entity type, built once at process start.
package mapping

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tmorrell/whisk/internal/domain"
)

// ErrUnknownEntity is returned when no mapping table exists for an entity type.
var ErrUnknownEntity = errors.New("unknown entity type")

// Kind declares how a mapped value is coerced before storage.
type Kind string

const (
	KindString    Kind = "string"
	KindMoney     Kind = "money"
	KindInteger   Kind = "integer"
	KindDate      Kind = "date"
	KindBoolean   Kind = "boolean"
	KindReference Kind = "reference"
)

// IntRange bounds an integer field to the range its storage column can hold.
type IntRange struct {
	Min int64
	Max int64
}

// Field describes one canonical field of an entity type: the key it is
// stored under, the source labels that may carry it, and how its value is
// coerced and defaulted.
type Field struct {
	Key      string
	Kind     Kind
	Aliases  []string
	Required bool
	// Default is applied when no alias matches in the row. A nil Default
	// stores SQL NULL.
	Default any
	// Bounds, when set, turns out-of-range values into validation errors
	// instead of silently truncating them.
	Bounds *IntRange
	// FallbackNow makes an optional date field default to the time of import
	// when its value cannot be parsed.
	FallbackNow bool
}

// Table is the immutable per-entity-type mapping between source column
// labels and canonical field keys.
type Table struct {
	Entity   string
	SQLTable string
	Fields   []Field
}

// Keys returns the canonical field keys in declaration order.
func (t Table) Keys() []string {
	keys := make([]string, len(t.Fields))
	for i, f := range t.Fields {
		keys[i] = f.Key
	}
	return keys
}

// MapRow resolves each canonical field to the raw value of the first
// matching alias found in the row. Later duplicate aliases are ignored.
// Unmapped optional keys are absent from the output; an unmapped required
// key produces a mapping-stage RowError naming the missing key.
func (t Table) MapRow(row domain.RawRow) (map[string]any, *domain.RowError) {
	index := make(map[string]any, len(row))
	for label, value := range row {
		key := normalizeLabel(label)
		if _, seen := index[key]; !seen {
			index[key] = value
		}
	}

	mapped := make(map[string]any, len(t.Fields))
	for _, field := range t.Fields {
		value, found := lookup(index, field)
		if !found {
			if field.Required {
				return nil, &domain.RowError{
					Row:    row,
					Reason: fmt.Sprintf("missing %s", field.Key),
					Stage:  domain.StageMapping,
				}
			}
			continue
		}
		mapped[field.Key] = value
	}

	return mapped, nil
}

func lookup(index map[string]any, field Field) (any, bool) {
	for _, alias := range field.Aliases {
		if value, ok := index[normalizeLabel(alias)]; ok && !isBlank(value) {
			return value, true
		}
	}
	if value, ok := index[normalizeLabel(field.Key)]; ok && !isBlank(value) {
		return value, true
	}
	return nil, false
}

// isBlank reports whether a cell carries no usable value. Blank cells are
// treated as unmapped, so a required field that is present but empty is
// reported as missing.
func isBlank(value any) bool {
	if value == nil {
		return true
	}
	if s, ok := value.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}

// normalizeLabel folds the variants seen across exports (snake_case,
// camelCase, spaced, hyphenated) onto a single comparison key.
func normalizeLabel(label string) string {
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		}
	}
	return b.String()
}

// ForEntity returns the mapping table for an entity type.
func ForEntity(entityType string) (Table, error) {
	table, ok := tables[strings.ToLower(strings.TrimSpace(entityType))]
	if !ok {
		return Table{}, fmt.Errorf("%w: %s", ErrUnknownEntity, entityType)
	}
	return table, nil
}

// Entities lists the entity types that can be imported.
func Entities() []string {
	names := make([]string, 0, len(tables))
	for name := range tables {
		names = append(names, name)
	}
	return names
}
