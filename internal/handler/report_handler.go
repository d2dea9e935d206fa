package handler

import (
	"net/http"

	"techstock/internal/model"
	"techstock/pkg/database"
	"techstock/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Report endpoints fold over the ledgers on every request; there are no
// materialized views or caches to invalidate.

// GetDashboard returns the headline dashboard figures
func GetDashboard(c echo.Context) error {
	log := logger.FromContext(c)
	db := database.GetDB()

	var products []model.Product
	if err := db.Find(&products).Error; err != nil {
		log.Error("Failed to load products for dashboard", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to compute dashboard"})
	}
	var sales []model.SaleRecord
	if err := db.Find(&sales).Error; err != nil {
		log.Error("Failed to load sales for dashboard", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to compute dashboard"})
	}
	var lines []model.ImportLineItem
	if err := db.Find(&lines).Error; err != nil {
		log.Error("Failed to load import lines for dashboard", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to compute dashboard"})
	}

	return c.JSON(http.StatusOK, summarize(products, sales, lines))
}

// GetSoldByCategory returns units sold grouped by category
func GetSoldByCategory(c echo.Context) error {
	log := logger.FromContext(c)

	var sales []model.SaleRecord
	if err := database.GetDB().Order("date ASC").Find(&sales).Error; err != nil {
		log.Error("Failed to load sales", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to compute report"})
	}

	return c.JSON(http.StatusOK, unitsSoldByCategory(sales))
}

// GetStockByCategory returns current stock grouped by category
func GetStockByCategory(c echo.Context) error {
	log := logger.FromContext(c)

	var products []model.Product
	if err := database.GetDB().Order("created_at ASC").Find(&products).Error; err != nil {
		log.Error("Failed to load products", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to compute report"})
	}

	return c.JSON(http.StatusOK, stockByCategory(products))
}

// GetProfitOverTime returns the per-day profit/revenue/cost series, sorted
// chronologically
func GetProfitOverTime(c echo.Context) error {
	log := logger.FromContext(c)

	var sales []model.SaleRecord
	if err := database.GetDB().Find(&sales).Error; err != nil {
		log.Error("Failed to load sales", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to compute report"})
	}

	return c.JSON(http.StatusOK, profitOverTime(sales))
}
