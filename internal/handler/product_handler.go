package handler

import (
	"net/http"
	"strconv"
	"time"

	"techstock/internal/middleware"
	"techstock/internal/model"
	"techstock/internal/sku"
	"techstock/pkg/database"
	"techstock/pkg/logger"
	"techstock/prometheus"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var skuGenerator sku.Generator = sku.NewLocal()

// SetSKUGenerator swaps the SKU source; main wires the HTTP client here when
// SKU_SERVICE_URL is configured.
func SetSKUGenerator(g sku.Generator) {
	skuGenerator = g
}

// generateSKU asks the configured generator for a SKU and falls back to the
// timestamp SKU on any failure. The fallback policy is the same on every
// code path.
func generateSKU(c echo.Context, category, brand, name string) string {
	s, err := skuGenerator.Generate(category, brand, name)
	if err != nil {
		logger.FromContext(c).Warn("SKU generation failed, using timestamp fallback",
			zap.String("name", name),
			zap.String("brand", brand),
			zap.Error(err))
		return sku.Fallback(time.Now())
	}
	return s
}

// ProductRequest defines the structure for product creation/update requests
type ProductRequest struct {
	Name        string          `json:"name" validate:"required"`
	Brand       string          `json:"brand" validate:"required"`
	CustomBrand string          `json:"custom_brand"`
	Category    string          `json:"category" validate:"required"`
	Description string          `json:"description"`
	QtyInStock  int             `json:"qty_in_stock" validate:"gte=0"`
	BuyingPrice decimal.Decimal `json:"buying_price"`
	DateOfEntry time.Time       `json:"date_of_entry"`
	PhotoURLs   []string        `json:"photo_urls"`
}

// ListProducts handles retrieving all products with optional filtering
func ListProducts(c echo.Context) error {
	log := logger.FromContext(c)

	db := database.GetDB()
	var products []model.Product

	query := db.Order("created_at DESC")

	if category := c.QueryParam("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if brand := c.QueryParam("brand"); brand != "" {
		query = query.Where("brand = ?", brand)
	}
	if inStock := c.QueryParam("in_stock"); inStock != "" {
		active, err := strconv.ParseBool(inStock)
		if err == nil && active {
			query = query.Where("qty_in_stock > 0")
		} else if err != nil {
			log.Warn("Invalid in_stock parameter", zap.String("value", inStock), zap.Error(err))
		}
	}

	result := query.Find(&products)
	if result.Error != nil {
		log.Error("Failed to list products", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve products",
		})
	}

	log.Info("Products retrieved successfully", zap.Int("count", len(products)))
	return c.JSON(http.StatusOK, products)
}

// GetProduct handles retrieving a single product by ID
func GetProduct(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var product model.Product
	result := database.GetDB().First(&product, id)
	if result.Error != nil {
		log.Error("Product not found",
			zap.String("product_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Product not found",
		})
	}

	return c.JSON(http.StatusOK, product)
}

// CreateProduct handles direct product entry (outside the import flow)
func CreateProduct(c echo.Context) error {
	log := logger.FromContext(c)

	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if err := c.Validate(&req); err != nil {
		log.Warn("Product validation failed", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	brand, err := normalizeBrand(req.Brand, req.CustomBrand)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if req.BuyingPrice.IsNegative() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "buying price cannot be negative"})
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	dateOfEntry := req.DateOfEntry
	if dateOfEntry.IsZero() {
		dateOfEntry = time.Now()
	}

	product := model.Product{
		Name:        req.Name,
		Brand:       brand,
		Category:    req.Category,
		Description: req.Description,
		SKU:         generateSKU(c, req.Category, brand, req.Name),
		QtyInStock:  req.QtyInStock,
		BuyingPrice: req.BuyingPrice,
		DateOfEntry: dateOfEntry,
		PhotoURLs:   req.PhotoURLs,
		CreatedBy:   userID,
	}

	defer prometheus.TrackDBOperation("create_product")(time.Now())
	result := database.GetDB().Create(&product)
	if result.Error != nil {
		log.Error("Failed to create product",
			zap.String("name", req.Name),
			zap.String("brand", brand),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to create product",
		})
	}

	prometheus.RecordProductOperation("create")
	prometheus.UpdateProductStock(strconv.FormatUint(uint64(product.ID), 10), product.Name, product.Category, float64(product.QtyInStock))
	log.Info("Product created successfully",
		zap.Uint("product_id", product.ID),
		zap.String("name", product.Name),
		zap.String("sku", product.SKU))
	return c.JSON(http.StatusCreated, product)
}

// UpdateProduct handles updating an existing product
func UpdateProduct(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.String("product_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	brand, err := normalizeBrand(req.Brand, req.CustomBrand)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if req.BuyingPrice.IsNegative() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "buying price cannot be negative"})
	}

	var product model.Product
	result := database.GetDB().First(&product, id)
	if result.Error != nil {
		log.Error("Product not found for update",
			zap.String("product_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Product not found"})
	}

	product.Name = req.Name
	product.Brand = brand
	product.Category = req.Category
	product.Description = req.Description
	product.QtyInStock = req.QtyInStock
	product.BuyingPrice = req.BuyingPrice
	if !req.DateOfEntry.IsZero() {
		product.DateOfEntry = req.DateOfEntry
	}
	if req.PhotoURLs != nil {
		product.PhotoURLs = req.PhotoURLs
	}

	result = database.GetDB().Save(&product)
	if result.Error != nil {
		log.Error("Failed to update product",
			zap.String("product_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to update product",
		})
	}

	prometheus.RecordProductOperation("update")
	prometheus.UpdateProductStock(id, product.Name, product.Category, float64(product.QtyInStock))
	log.Info("Product updated successfully",
		zap.String("product_id", id),
		zap.String("name", product.Name))
	return c.JSON(http.StatusOK, product)
}

// DeleteProduct removes a product from the catalog. Historical sale and
// import rows keep their denormalized copies, so reporting survives the
// deletion ("sales history preserved").
func DeleteProduct(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	result := database.GetDB().Delete(&model.Product{}, id)
	if result.Error != nil {
		log.Error("Failed to delete product",
			zap.String("product_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to delete product",
		})
	}
	if result.RowsAffected == 0 {
		log.Warn("Product not found for deletion", zap.String("product_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Product not found"})
	}

	prometheus.RecordProductOperation("delete")
	log.Info("Product deleted successfully", zap.String("product_id", id))
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Product deleted. Sales history preserved.",
	})
}
