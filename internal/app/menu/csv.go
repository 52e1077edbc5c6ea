package menu

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"

	"github.com/YelzhanWeb/basecart/internal/domain"
)

var requiredColumns = []string{"name", "price", "category"}

// ParseCSV reads import rows from a CSV document whose first record is a
// header. Columns may come in any order and header names are matched
// case-insensitively; description is optional, unknown columns are ignored.
func (s *Service) ParseCSV(r io.Reader) ([]domain.ImportRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, domain.NewValidationError("No items to import")
	}
	if err != nil {
		return nil, domain.NewValidationError("Invalid CSV: %v", err)
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, dup := index[h]; !dup {
			index[h] = i
		}
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, domain.NewValidationError("CSV header must include name, price and category columns")
		}
	}

	field := func(record []string, col string) string {
		i, ok := index[col]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var rows []domain.ImportRow
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, domain.NewValidationError("Invalid CSV: %v", err)
		}
		if blank(record) {
			continue
		}
		rows = append(rows, domain.ImportRow{
			Name:        field(record, "name"),
			Description: field(record, "description"),
			Price:       field(record, "price"),
			Category:    field(record, "category"),
		})
	}
	return rows, nil
}

func blank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
