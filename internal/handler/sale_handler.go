package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"techstock/internal/middleware"
	"techstock/internal/model"
	"techstock/pkg/database"
	"techstock/pkg/logger"
	"techstock/prometheus"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SaleRequest defines the structure for recording a sale.
type SaleRequest struct {
	ProductID        uint            `json:"product_id" validate:"required"`
	Qty              int             `json:"qty" validate:"required,gte=1"`
	UnitSellingPrice decimal.Decimal `json:"unit_selling_price"`
	PaymentMethod    string          `json:"payment_method" validate:"required"`
	Notes            string          `json:"notes"`
}

// ListSales handles retrieving all sale records
func ListSales(c echo.Context) error {
	log := logger.FromContext(c)

	var sales []model.SaleRecord
	result := database.GetDB().Order("date DESC").Find(&sales)
	if result.Error != nil {
		log.Error("Failed to list sales", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve sales",
		})
	}

	log.Info("Sales retrieved successfully", zap.Int("count", len(sales)))
	return c.JSON(http.StatusOK, sales)
}

// CreateSale records a sale against a product and decrements stock. The
// requested quantity is clamped to what is in stock, the buying price is
// snapshotted from the product at the time of sale, and profit is computed
// with exact decimal arithmetic. Insert and stock decrement run in one
// transaction with an atomic floored update, so concurrent sales cannot
// drive the quantity negative.
func CreateSale(c echo.Context) error {
	log := logger.FromContext(c)

	var req SaleRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if err := c.Validate(&req); err != nil {
		log.Warn("Sale validation failed", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if req.UnitSellingPrice.IsNegative() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unit selling price cannot be negative"})
	}
	if !validPaymentMethod(req.PaymentMethod) {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "payment method must be one of Cash, Card, Mobile",
		})
	}

	userID, _ := middleware.GetUserIDFromContext(c)

	var sale model.SaleRecord
	var updatedProduct model.Product
	err := database.GetDB().Transaction(func(tx *gorm.DB) error {
		var product model.Product
		if err := tx.First(&product, req.ProductID).Error; err != nil {
			return err
		}
		if product.QtyInStock < 1 {
			return errOutOfStock
		}

		qty := clampSaleQty(req.Qty, product.QtyInStock)

		sale = model.SaleRecord{
			ProductID:        &product.ID,
			ProductName:      product.Name,
			Brand:            product.Brand,
			Category:         product.Category,
			Qty:              qty,
			UnitSellingPrice: req.UnitSellingPrice,
			UnitBuyingPrice:  product.BuyingPrice,
			PaymentMethod:    req.PaymentMethod,
			Notes:            req.Notes,
			Profit:           saleProfit(req.UnitSellingPrice, product.BuyingPrice, qty),
			EnteredBy:        userID,
			Date:             time.Now(),
		}
		if err := tx.Create(&sale).Error; err != nil {
			return err
		}

		// Atomic floored decrement; no read-modify-write race window.
		if err := tx.Model(&model.Product{}).
			Where("id = ?", product.ID).
			Update("qty_in_stock", gorm.Expr("GREATEST(qty_in_stock - ?, 0)", qty)).Error; err != nil {
			return err
		}

		return tx.First(&updatedProduct, product.ID).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		log.Warn("Product not found for sale", zap.Uint("product_id", req.ProductID))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Product not found"})
	}
	if errors.Is(err, errOutOfStock) {
		log.Warn("Attempted sale with no stock", zap.Uint("product_id", req.ProductID))
		return c.JSON(http.StatusConflict, echo.Map{"error": "Product is out of stock"})
	}
	if err != nil {
		log.Error("Failed to record sale",
			zap.Uint("product_id", req.ProductID),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to record sale",
		})
	}

	prometheus.RecordSaleOperation("create")
	prometheus.UpdateProductStock(strconv.FormatUint(uint64(updatedProduct.ID), 10), updatedProduct.Name, updatedProduct.Category, float64(updatedProduct.QtyInStock))
	log.Info("Sale recorded",
		zap.Uint("sale_id", sale.ID),
		zap.String("product", sale.ProductName),
		zap.Int("qty", sale.Qty),
		zap.String("profit", sale.Profit.String()))
	return c.JSON(http.StatusCreated, sale)
}

var errOutOfStock = errors.New("out of stock")

// DeleteSale removes the ledger row only. Stock is never restored on sale
// deletion.
func DeleteSale(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	result := database.GetDB().Delete(&model.SaleRecord{}, id)
	if result.Error != nil {
		log.Error("Failed to delete sale",
			zap.String("sale_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to delete sale record",
		})
	}
	if result.RowsAffected == 0 {
		log.Warn("Sale not found for deletion", zap.String("sale_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Sale record not found"})
	}

	prometheus.RecordSaleOperation("delete")
	log.Info("Sale deleted", zap.String("sale_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "Sale record deleted. Stock is not restored."})
}
