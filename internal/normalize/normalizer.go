// Package normalize turns one raw imported row into a storage-ready record.
// It is deliberately permissive: optional fields fall back to defaults so
// imperfect exports still import, and only the fields the storage layer
// requires non-null can fail a row.
package normalize

import (
	"fmt"
	"time"

	"github.com/tmorrell/whisk/internal/coerce"
	"github.com/tmorrell/whisk/internal/domain"
	"github.com/tmorrell/whisk/internal/mapping"
)

// Row maps and coerces a raw row against an entity's mapping table. It
// returns either a NormalizedRecord covering every canonical key of the
// table, or a RowError tagged with the first field that failed and the
// stage responsible.
func Row(table mapping.Table, raw domain.RawRow) (domain.NormalizedRecord, *domain.RowError) {
	mapped, rowErr := table.MapRow(raw)
	if rowErr != nil {
		return nil, rowErr
	}

	record := make(domain.NormalizedRecord, len(table.Fields))
	for _, field := range table.Fields {
		value, present := mapped[field.Key]
		coerced, rowErr := coerceField(field, raw, value, present)
		if rowErr != nil {
			return nil, rowErr
		}
		record[field.Key] = coerced
	}

	return record, nil
}

func coerceField(field mapping.Field, raw domain.RawRow, value any, present bool) (any, *domain.RowError) {
	switch field.Kind {
	case mapping.KindString:
		s := coerce.String(value)
		if s == "" {
			if field.Required {
				return nil, rowError(raw, domain.StageMapping, "missing %s", field.Key)
			}
			return field.Default, nil
		}
		return s, nil

	case mapping.KindMoney:
		if !present {
			return coerce.Money(field.Default), nil
		}
		return coerce.Money(value), nil

	case mapping.KindInteger:
		n, err := coerce.Integer(value)
		if err != nil {
			if field.Required {
				return nil, rowError(raw, domain.StageCoercion, "field %s: %v", field.Key, err)
			}
			n, _ = coerce.Integer(field.Default)
		}
		if field.Bounds != nil && (n < field.Bounds.Min || n > field.Bounds.Max) {
			return nil, rowError(raw, domain.StageValidation,
				"field %s: value %d out of range [%d, %d]", field.Key, n, field.Bounds.Min, field.Bounds.Max)
		}
		return n, nil

	case mapping.KindDate:
		ts, err := coerce.Date(value)
		if err != nil {
			if field.Required {
				return nil, rowError(raw, domain.StageCoercion, "field %s: %v", field.Key, err)
			}
			if field.FallbackNow {
				return time.Now().UTC(), nil
			}
			return nil, nil
		}
		return ts, nil

	case mapping.KindBoolean:
		if !present {
			return coerce.Boolean(field.Default), nil
		}
		return coerce.Boolean(value), nil

	case mapping.KindReference:
		id, err := coerce.Integer(value)
		if err != nil || id < 0 {
			return mapping.UnassignedRef, nil
		}
		return id, nil

	default:
		return nil, rowError(raw, domain.StageValidation, "field %s: unknown kind %s", field.Key, field.Kind)
	}
}

func rowError(raw domain.RawRow, stage domain.Stage, format string, args ...any) *domain.RowError {
	return &domain.RowError{
		Row:    raw,
		Reason: fmt.Sprintf(format, args...),
		Stage:  stage,
	}
}
