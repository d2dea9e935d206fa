package export

import (
	"encoding/csv"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestWriteCSVRoundTrip(t *testing.T) {
	headers := []string{"Name", "Brand", "Category", "Stock", "Buying Price"}
	rows := [][]string{
		{"HP EliteBook 840 G6", "HP", "Laptop", "6", "45000"},
		{`Mouse, wireless "pro"`, "Logitech", "Accessory", "12", "850.50"},
		{"Cable\nUSB-C", "Anker", "Accessory", "30", "120"},
	}

	out, err := WriteCSV(headers, rows)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	r := csv.NewReader(strings.NewReader(out))
	records, err := r.ReadAll()
	if err != nil {
		t.Fatalf("re-parse failed: %v", err)
	}
	if !reflect.DeepEqual(records[0], headers) {
		t.Fatalf("header order changed: %v", records[0])
	}
	for i, row := range rows {
		if !reflect.DeepEqual(records[i+1], row) {
			t.Fatalf("row %d changed: got %v want %v", i, records[i+1], row)
		}
	}
}

func TestWriteCSVRowWidthMismatch(t *testing.T) {
	_, err := WriteCSV([]string{"A", "B"}, [][]string{{"only one"}})
	if err == nil {
		t.Fatal("expected error for ragged row")
	}
}

func TestWriteCSVNoRows(t *testing.T) {
	out, err := WriteCSV([]string{"A", "B"}, nil)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if strings.TrimSpace(out) != "A,B" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestWriteHTMLReport(t *testing.T) {
	now := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
	out, err := WriteHTMLReport("Sales Report", []string{"Item", "Qty"}, [][]string{{"<script>", "2"}}, now)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !strings.Contains(out, "<h1>Sales Report</h1>") {
		t.Fatalf("missing title in %q", out)
	}
	if !strings.Contains(out, "Feb 10, 2026") {
		t.Fatal("missing generated-on date")
	}
	if strings.Contains(out, "<script>") {
		t.Fatal("cell content not escaped")
	}
}
