package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// WriteCSV renders a header list plus row matrix as RFC 4180 CSV text.
// Cell values are quoted/escaped by the encoder, so a round trip through a
// CSV reader reproduces header order and cell values exactly.
func WriteCSV(headers []string, rows [][]string) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(headers); err != nil {
		return "", fmt.Errorf("write csv header: %w", err)
	}
	for i, row := range rows {
		if len(row) != len(headers) {
			return "", fmt.Errorf("row %d has %d cells, want %d", i, len(row), len(headers))
		}
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("write csv row %d: %w", i, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return buf.String(), nil
}
