package handler

import (
	"net/http"
	"strconv"
	"time"

	"techstock/internal/export"
	"techstock/internal/model"
	"techstock/pkg/database"
	"techstock/pkg/logger"
	"techstock/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func writeCSVResponse(c echo.Context, filename string, headers []string, rows [][]string) error {
	log := logger.FromContext(c)

	out, err := export.WriteCSV(headers, rows)
	if err != nil {
		log.Error("Failed to render CSV", zap.String("filename", filename), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to render export"})
	}

	prometheus.RecordExport("csv")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", []byte(out))
}

// ExportProductsCSV exports the current catalog
func ExportProductsCSV(c echo.Context) error {
	log := logger.FromContext(c)

	var products []model.Product
	if err := database.GetDB().Order("created_at DESC").Find(&products).Error; err != nil {
		log.Error("Failed to load products for export", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve products"})
	}

	headers := []string{"Name", "Brand", "Category", "SKU", "Stock", "Buying Price", "Date of Entry"}
	rows := make([][]string, 0, len(products))
	for _, p := range products {
		rows = append(rows, []string{
			p.Name, p.Brand, p.Category, p.SKU,
			strconv.Itoa(p.QtyInStock),
			p.BuyingPrice.String(),
			p.DateOfEntry.Format("2006-01-02"),
		})
	}
	return writeCSVResponse(c, "inventory-export.csv", headers, rows)
}

// ExportSalesCSV exports the sales ledger
func ExportSalesCSV(c echo.Context) error {
	log := logger.FromContext(c)

	var sales []model.SaleRecord
	if err := database.GetDB().Order("date DESC").Find(&sales).Error; err != nil {
		log.Error("Failed to load sales for export", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve sales"})
	}

	headers := []string{"Date", "Item", "Brand", "Category", "Qty", "Selling Price", "Buying Price", "Profit", "Payment"}
	rows := make([][]string, 0, len(sales))
	for _, s := range sales {
		rows = append(rows, []string{
			s.Date.Format("2006-01-02 15:04"),
			s.ProductName, s.Brand, s.Category,
			strconv.Itoa(s.Qty),
			s.UnitSellingPrice.String(),
			s.UnitBuyingPrice.String(),
			s.Profit.String(),
			s.PaymentMethod,
		})
	}
	return writeCSVResponse(c, "sales-export.csv", headers, rows)
}

// ExportImportsCSV exports the import ledger, one row per line item
func ExportImportsCSV(c echo.Context) error {
	log := logger.FromContext(c)

	var imports []model.ImportRecord
	if err := database.GetDB().Preload("LineItems").Order("date DESC").Find(&imports).Error; err != nil {
		log.Error("Failed to load imports for export", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve imports"})
	}

	headers := []string{"Date", "Supplier", "Item", "Brand", "Category", "Qty", "Unit Buying Price"}
	var rows [][]string
	for _, rec := range imports {
		for _, line := range rec.LineItems {
			rows = append(rows, []string{
				rec.Date.Format("2006-01-02"),
				rec.Supplier,
				line.ProductName, line.Brand, line.Category,
				strconv.Itoa(line.Qty),
				line.UnitBuyingPrice.String(),
			})
		}
	}
	return writeCSVResponse(c, "imports-export.csv", headers, rows)
}

// ExportSalesReport renders the printable HTML sales report
func ExportSalesReport(c echo.Context) error {
	log := logger.FromContext(c)

	var sales []model.SaleRecord
	if err := database.GetDB().Order("date DESC").Find(&sales).Error; err != nil {
		log.Error("Failed to load sales for report", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve sales"})
	}

	headers := []string{"Date", "Item", "Qty", "Selling", "Profit", "Payment"}
	rows := make([][]string, 0, len(sales))
	for _, s := range sales {
		rows = append(rows, []string{
			s.Date.Format("Jan 2, 2006"),
			s.ProductName,
			strconv.Itoa(s.Qty),
			saleRevenue(s.UnitSellingPrice, s.Qty).String(),
			s.Profit.String(),
			s.PaymentMethod,
		})
	}

	out, err := export.WriteHTMLReport("Sales Report", headers, rows, time.Now())
	if err != nil {
		log.Error("Failed to render sales report", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to render report"})
	}

	prometheus.RecordExport("html")
	return c.HTML(http.StatusOK, out)
}
