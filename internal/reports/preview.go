package reports

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Preview is a parsed CSV ready for tabular display. Keys parallels
// Headers and stays unique even when two columns share a label, so UI
// code has a stable identifier per column.
type Preview struct {
	Headers []string   `json:"headers"`
	Keys    []string   `json:"-"`
	Rows    [][]string `json:"rows"`
}

// ParsePreview decodes CSV text into headers and rows. The first
// non-empty record supplies the headers; blank header cells become
// "Column N" (1-indexed). Every row is widened to the maximum column
// count seen anywhere, with missing trailing cells as empty strings.
// Whitespace-only input yields an empty preview, not an error.
func ParsePreview(text string) Preview {
	empty := Preview{Headers: []string{}, Keys: []string{}, Rows: [][]string{}}
	if strings.TrimSpace(text) == "" {
		return empty
	}

	reader := csv.NewReader(strings.NewReader(text))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var records [][]string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// Unparseable remainder: keep what decoded cleanly.
			break
		}
		if len(record) == 1 && record[0] == "" {
			continue
		}
		records = append(records, record)
	}

	if len(records) == 0 {
		return empty
	}

	headers := make([]string, len(records[0]))
	for i, cell := range records[0] {
		if cell == "" {
			cell = columnLabel(i)
		}
		headers[i] = cell
	}

	rows := records[1:]
	maxColumns := len(headers)
	for _, row := range rows {
		if len(row) > maxColumns {
			maxColumns = len(row)
		}
	}
	for len(headers) < maxColumns {
		headers = append(headers, columnLabel(len(headers)))
	}

	normalized := make([][]string, len(rows))
	for i, row := range rows {
		cells := make([]string, maxColumns)
		copy(cells, row)
		normalized[i] = cells
	}

	return Preview{Headers: headers, Keys: columnKeys(headers), Rows: normalized}
}

func columnLabel(index int) string {
	return fmt.Sprintf("Column %d", index+1)
}

// columnKeys disambiguates repeated header labels without changing what
// is displayed: the second "total" becomes key "total#2".
func columnKeys(headers []string) []string {
	seen := make(map[string]int, len(headers))
	keys := make([]string, len(headers))
	for i, label := range headers {
		seen[label]++
		if n := seen[label]; n > 1 {
			keys[i] = fmt.Sprintf("%s#%d", label, n)
		} else {
			keys[i] = label
		}
	}
	return keys
}
