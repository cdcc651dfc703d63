package importer

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// DecodeXLSX reads the first worksheet of an XLSX workbook into rows.
// Empty cells are omitted from the row map, so alias fallbacks see them as
// missing columns rather than empty values.
func DecodeXLSX(r io.Reader) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	cells, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	if len(cells) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheets[0])
	}

	header := cells[0]
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var rows []Row
	for _, record := range cells[1:] {
		row := make(Row, len(header))
		for i, value := range record {
			if i >= len(header) || header[i] == "" || value == "" {
				continue
			}
			row[header[i]] = value
		}
		if len(row) == 0 {
			continue
		}
		rows = append(rows, row)
	}

	return rows, nil
}
