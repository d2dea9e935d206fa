package handler

import (
	"reflect"
	"testing"
	"time"

	"techstock/internal/model"
)

func saleAt(date time.Time, category string, qty int, sell, buy string) model.SaleRecord {
	return model.SaleRecord{
		Category:         category,
		Qty:              qty,
		UnitSellingPrice: dec(sell),
		UnitBuyingPrice:  dec(buy),
		Profit:           saleProfit(dec(sell), dec(buy), qty),
		Date:             date,
	}
}

func TestSummarize(t *testing.T) {
	day := time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)
	products := []model.Product{
		{Category: "Laptop", QtyInStock: 8},
		{Category: "Laptop", QtyInStock: 0},
		{Category: "Accessory", QtyInStock: 12},
	}
	sales := []model.SaleRecord{
		saleAt(day, "Laptop", 2, "52000", "47000"),
		saleAt(day, "Accessory", 3, "850.50", "600"),
	}
	lines := []model.ImportLineItem{
		{Qty: 6}, {Qty: 4}, {Qty: 10},
	}

	s := summarize(products, sales, lines)
	if s.TotalSold != 5 {
		t.Fatalf("total sold: got %d", s.TotalSold)
	}
	if s.TotalImported != 20 {
		t.Fatalf("total imported: got %d", s.TotalImported)
	}
	if s.ActiveProducts != 2 {
		t.Fatalf("active products: got %d", s.ActiveProducts)
	}
	// 10000 + 250.50*3 = 10751.50
	if !s.TotalProfit.Equal(dec("10751.50")) {
		t.Fatalf("total profit: got %s", s.TotalProfit)
	}
	// 104000 + 2551.50
	if !s.TotalRevenue.Equal(dec("106551.50")) {
		t.Fatalf("total revenue: got %s", s.TotalRevenue)
	}
}

func TestSummarizeIdempotent(t *testing.T) {
	day := time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)
	sales := []model.SaleRecord{
		saleAt(day, "Laptop", 2, "52000", "47000"),
	}
	first := summarize(nil, sales, nil)
	second := summarize(nil, sales, nil)
	if first.TotalSold != second.TotalSold || !first.TotalProfit.Equal(second.TotalProfit) {
		t.Fatal("recomputing the fold changed the result")
	}
}

func TestUnitsSoldByCategoryFirstSeenOrder(t *testing.T) {
	day := time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)
	sales := []model.SaleRecord{
		saleAt(day, "Laptop", 2, "1", "0"),
		saleAt(day, "Accessory", 3, "1", "0"),
		saleAt(day, "Laptop", 1, "1", "0"),
	}

	got := unitsSoldByCategory(sales)
	want := []CategoryUnits{
		{Category: "Laptop", Units: 3},
		{Category: "Accessory", Units: 3},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestStockByCategory(t *testing.T) {
	products := []model.Product{
		{Category: "Laptop", QtyInStock: 8},
		{Category: "Accessory", QtyInStock: 12},
		{Category: "Laptop", QtyInStock: 4},
	}
	got := stockByCategory(products)
	want := []CategoryUnits{
		{Category: "Laptop", Units: 12},
		{Category: "Accessory", Units: 12},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestProfitOverTimeSortedAndGrouped(t *testing.T) {
	feb9 := time.Date(2026, 2, 9, 15, 0, 0, 0, time.UTC)
	feb10 := time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC)
	feb10later := time.Date(2026, 2, 10, 18, 30, 0, 0, time.UTC)

	// Ledger order is not chronological; the series must come back sorted.
	sales := []model.SaleRecord{
		saleAt(feb10, "Laptop", 1, "52000", "47000"),
		saleAt(feb9, "Laptop", 2, "46000", "38000"),
		saleAt(feb10later, "Accessory", 2, "850.50", "600"),
	}

	series := profitOverTime(sales)
	if len(series) != 2 {
		t.Fatalf("expected 2 days, got %d", len(series))
	}
	if series[0].Date != "Feb 9" || series[1].Date != "Feb 10" {
		t.Fatalf("series not chronological: %s, %s", series[0].Date, series[1].Date)
	}

	// Feb 9: profit 16000, revenue 92000, cost 76000.
	if !series[0].Profit.Equal(dec("16000")) || !series[0].Revenue.Equal(dec("92000")) || !series[0].Cost.Equal(dec("76000")) {
		t.Fatalf("feb 9 figures wrong: %+v", series[0])
	}
	// Feb 10 groups both sales of the day: profit 5000 + 501 = 5501.
	if !series[1].Profit.Equal(dec("5501")) {
		t.Fatalf("feb 10 profit wrong: %s", series[1].Profit)
	}
	if !series[1].Revenue.Equal(dec("53701")) {
		t.Fatalf("feb 10 revenue wrong: %s", series[1].Revenue)
	}
	if !series[1].Cost.Equal(dec("48200")) {
		t.Fatalf("feb 10 cost wrong: %s", series[1].Cost)
	}
}

func TestImportEditDoesNotAdjustStock(t *testing.T) {
	// An import of 6 units was reconciled into the catalog when committed.
	products := []model.Product{
		{Name: "HP EliteBook 840 G6", Brand: "HP", Category: "Laptop", QtyInStock: 6},
	}
	lines := []model.ImportLineItem{{Qty: 6}}

	before := summarize(products, nil, lines)
	if before.TotalImported != 6 {
		t.Fatalf("total imported before edit: %d", before.TotalImported)
	}

	// Editing the ledger row afterwards corrects the record only; stock
	// keeps the quantity from the original reconciliation.
	lines[0].Qty = 4
	after := summarize(products, nil, lines)
	if after.TotalImported != 4 {
		t.Fatalf("total imported after edit: %d", after.TotalImported)
	}
	if products[0].QtyInStock != 6 {
		t.Fatalf("stock changed on import edit: %d", products[0].QtyInStock)
	}
}

func TestProfitOverTimeEmpty(t *testing.T) {
	if got := profitOverTime(nil); len(got) != 0 {
		t.Fatalf("expected empty series, got %v", got)
	}
}
