package importer

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/tmorrell/whisk/internal/domain"
)

// ErrUnsupportedFormat is returned when an uploaded file is not supported.
var ErrUnsupportedFormat = errors.New("unsupported file format")

var byteOrderMark = []byte{0xEF, 0xBB, 0xBF}

// ParseTabular reads an uploaded .csv or .xlsx file into raw rows keyed by
// the column labels of the header row. Empty cells become nil so the
// normalizer treats them as absent.
func ParseTabular(fileName string, payload []byte) ([]domain.RawRow, error) {
	ext := strings.ToLower(filepath.Ext(fileName))
	switch ext {
	case ".csv":
		return parseCSV(payload)
	case ".xlsx":
		return parseExcel(payload)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
}

func parseCSV(payload []byte) ([]domain.RawRow, error) {
	reader := bufio.NewReader(bytes.NewReader(payload))
	if prefix, err := reader.Peek(len(byteOrderMark)); err == nil && bytes.Equal(prefix, byteOrderMark) {
		_, _ = reader.Discard(len(byteOrderMark))
	}

	csvReader := csv.NewReader(reader)
	csvReader.TrimLeadingSpace = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}

	return buildRows(records)
}

func parseExcel(payload []byte) ([]domain.RawRow, error) {
	f, err := excelize.OpenReader(bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to open xlsx: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("excel file has no sheets")
	}

	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read rows from xlsx: %w", err)
	}

	return buildRows(records)
}

func buildRows(records [][]string) ([]domain.RawRow, error) {
	var header []string
	var rows []domain.RawRow

	for _, record := range records {
		if isEmptyRow(record) {
			continue
		}
		if header == nil {
			header = make([]string, len(record))
			for i, label := range record {
				header[i] = strings.TrimSpace(label)
			}
			continue
		}

		row := make(domain.RawRow, len(header))
		for i, label := range header {
			if label == "" {
				continue
			}
			if i < len(record) && strings.TrimSpace(record[i]) != "" {
				row[label] = strings.TrimSpace(record[i])
			} else {
				row[label] = nil
			}
		}
		rows = append(rows, row)
	}

	if header == nil {
		return nil, errors.New("no header row detected")
	}

	return rows, nil
}

func isEmptyRow(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
