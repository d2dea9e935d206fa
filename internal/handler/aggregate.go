package handler

import (
	"sort"
	"time"

	"techstock/internal/model"

	"github.com/shopspring/decimal"
)

// Dashboard and chart figures are derived by folding over the ledgers on
// every read. Nothing here caches or mutates its inputs.

// DashboardSummary holds the headline figures for the dashboard.
type DashboardSummary struct {
	TotalSold      int             `json:"total_sold"`
	TotalImported  int             `json:"total_imported"`
	TotalProfit    decimal.Decimal `json:"total_profit"`
	TotalRevenue   decimal.Decimal `json:"total_revenue"`
	ActiveProducts int             `json:"active_products"`
}

// CategoryUnits is one bar/slice of a per-category chart.
type CategoryUnits struct {
	Category string `json:"category"`
	Units    int    `json:"units"`
}

// DailyPoint is one day of the profit-over-time series.
type DailyPoint struct {
	Date    string          `json:"date"`
	Profit  decimal.Decimal `json:"profit"`
	Revenue decimal.Decimal `json:"revenue"`
	Cost    decimal.Decimal `json:"cost"`

	day time.Time
}

func summarize(products []model.Product, sales []model.SaleRecord, lines []model.ImportLineItem) DashboardSummary {
	s := DashboardSummary{
		TotalProfit:  decimal.Zero,
		TotalRevenue: decimal.Zero,
	}
	for _, sale := range sales {
		s.TotalSold += sale.Qty
		s.TotalProfit = s.TotalProfit.Add(sale.Profit)
		s.TotalRevenue = s.TotalRevenue.Add(saleRevenue(sale.UnitSellingPrice, sale.Qty))
	}
	for _, line := range lines {
		s.TotalImported += line.Qty
	}
	for _, p := range products {
		if p.QtyInStock > 0 {
			s.ActiveProducts++
		}
	}
	return s
}

// unitsSoldByCategory groups sale quantities by category, preserving
// first-seen category order from the ledger fold.
func unitsSoldByCategory(sales []model.SaleRecord) []CategoryUnits {
	totals := make(map[string]int)
	var order []string
	for _, sale := range sales {
		if _, seen := totals[sale.Category]; !seen {
			order = append(order, sale.Category)
		}
		totals[sale.Category] += sale.Qty
	}
	out := make([]CategoryUnits, 0, len(order))
	for _, cat := range order {
		out = append(out, CategoryUnits{Category: cat, Units: totals[cat]})
	}
	return out
}

// stockByCategory groups current stock by category, first-seen order.
func stockByCategory(products []model.Product) []CategoryUnits {
	totals := make(map[string]int)
	var order []string
	for _, p := range products {
		if _, seen := totals[p.Category]; !seen {
			order = append(order, p.Category)
		}
		totals[p.Category] += p.QtyInStock
	}
	out := make([]CategoryUnits, 0, len(order))
	for _, cat := range order {
		out = append(out, CategoryUnits{Category: cat, Units: totals[cat]})
	}
	return out
}

// profitOverTime groups sales by calendar day (local date of the sale) and
// sums profit, revenue and cost per day. The series is sorted
// chronologically.
func profitOverTime(sales []model.SaleRecord) []DailyPoint {
	byDay := make(map[time.Time]*DailyPoint)
	for _, sale := range sales {
		day := time.Date(sale.Date.Year(), sale.Date.Month(), sale.Date.Day(), 0, 0, 0, 0, sale.Date.Location())
		point, ok := byDay[day]
		if !ok {
			point = &DailyPoint{
				Date:    day.Format("Jan 2"),
				Profit:  decimal.Zero,
				Revenue: decimal.Zero,
				Cost:    decimal.Zero,
				day:     day,
			}
			byDay[day] = point
		}
		point.Profit = point.Profit.Add(sale.Profit)
		point.Revenue = point.Revenue.Add(saleRevenue(sale.UnitSellingPrice, sale.Qty))
		point.Cost = point.Cost.Add(sale.UnitBuyingPrice.Mul(decimal.NewFromInt(int64(sale.Qty))))
	}

	out := make([]DailyPoint, 0, len(byDay))
	for _, point := range byDay {
		out = append(out, *point)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].day.Before(out[j].day) })
	return out
}
