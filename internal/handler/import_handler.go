package handler

import (
	"errors"
	"net/http"
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

// ImportLineRequest is one product entry within an import request.
type ImportLineRequest struct {
	ProductName     string          `json:"product_name" validate:"required"`
	Brand           string          `json:"brand" validate:"required"`
	CustomBrand     string          `json:"custom_brand"`
	Category        string          `json:"category" validate:"required"`
	Description     string          `json:"description"`
	Qty             int             `json:"qty" validate:"required,gte=1"`
	UnitBuyingPrice decimal.Decimal `json:"unit_buying_price"`
}

// ImportRequest is the header plus ordered line items of one intake event.
type ImportRequest struct {
	Supplier string              `json:"supplier" validate:"required"`
	Date     time.Time           `json:"date"`
	Lines    []ImportLineRequest `json:"lines" validate:"required,min=1,dive"`
}

// ListImports handles retrieving all import records with their line items
func ListImports(c echo.Context) error {
	log := logger.FromContext(c)

	var imports []model.ImportRecord
	result := database.GetDB().
		Preload("LineItems", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Order("date DESC").
		Find(&imports)
	if result.Error != nil {
		log.Error("Failed to list imports", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve imports",
		})
	}

	log.Info("Imports retrieved successfully", zap.Int("count", len(imports)))
	return c.JSON(http.StatusOK, imports)
}

// CreateImport commits one import record with its line items and reconciles
// the catalog. Header, lines and every per-line catalog upsert run in a
// single transaction; any failure rolls the whole operation back.
//
// Line items are processed strictly in input order. Two lines for the same
// (name, brand) in one import accumulate because the second line's lookup
// sees the first line's increment.
func CreateImport(c echo.Context) error {
	log := logger.FromContext(c)

	var req ImportRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if err := c.Validate(&req); err != nil {
		log.Warn("Import validation failed", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	// Resolve brands and validate every line before touching the database.
	brands := make([]string, len(req.Lines))
	for i, line := range req.Lines {
		brand, err := normalizeBrand(line.Brand, line.CustomBrand)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		if err := validateImportLine(i, line.ProductName, line.Category, line.Qty, line.UnitBuyingPrice); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		brands[i] = brand
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	date := req.Date
	if date.IsZero() {
		date = time.Now()
	}

	record := model.ImportRecord{
		Supplier:  req.Supplier,
		Date:      date,
		EnteredBy: userID,
	}

	defer prometheus.TrackDBOperation("create_import")(time.Now())
	err := database.GetDB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&record).Error; err != nil {
			return err
		}

		for i, line := range req.Lines {
			item := model.ImportLineItem{
				ImportID:        record.ID,
				ProductName:     line.ProductName,
				Brand:           brands[i],
				Category:        line.Category,
				Description:     line.Description,
				Qty:             line.Qty,
				UnitBuyingPrice: line.UnitBuyingPrice,
				Position:        i,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
			record.LineItems = append(record.LineItems, item)

			// Exact, case-sensitive match on (name, brand).
			var product model.Product
			lookupErr := tx.Where("name = ? AND brand = ?", line.ProductName, brands[i]).First(&product).Error
			switch {
			case lookupErr == nil:
				product.QtyInStock = nextStockOnImport(product.QtyInStock, line.Qty)
				product.BuyingPrice = line.UnitBuyingPrice
				if err := tx.Save(&product).Error; err != nil {
					return err
				}
			case errors.Is(lookupErr, gorm.ErrRecordNotFound):
				product = model.Product{
					Name:        line.ProductName,
					Brand:       brands[i],
					Category:    line.Category,
					Description: line.Description,
					SKU:         generateSKU(c, line.Category, brands[i], line.ProductName),
					QtyInStock:  line.Qty,
					BuyingPrice: line.UnitBuyingPrice,
					DateOfEntry: date,
					CreatedBy:   userID,
				}
				if err := tx.Create(&product).Error; err != nil {
					return err
				}
			default:
				return lookupErr
			}
		}

		return nil
	})
	if err != nil {
		log.Error("Failed to commit import",
			zap.String("supplier", req.Supplier),
			zap.Int("lines", len(req.Lines)),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to save import record",
		})
	}

	prometheus.RecordImportOperation("create")
	log.Info("Import committed",
		zap.Uint("import_id", record.ID),
		zap.String("supplier", record.Supplier),
		zap.Int("lines", len(record.LineItems)))
	return c.JSON(http.StatusCreated, record)
}

// ImportLineUpdateRequest edits one existing line item of an import.
type ImportLineUpdateRequest struct {
	ID              uint            `json:"id" validate:"required"`
	ProductName     string          `json:"product_name" validate:"required"`
	Brand           string          `json:"brand" validate:"required"`
	CustomBrand     string          `json:"custom_brand"`
	Category        string          `json:"category" validate:"required"`
	Description     string          `json:"description"`
	Qty             int             `json:"qty" validate:"required,gte=1"`
	UnitBuyingPrice decimal.Decimal `json:"unit_buying_price"`
}

// ImportUpdateRequest edits an import header and its line items.
type ImportUpdateRequest struct {
	Supplier string                    `json:"supplier" validate:"required"`
	Date     time.Time                 `json:"date"`
	Lines    []ImportLineUpdateRequest `json:"lines" validate:"dive"`
}

// UpdateImport corrects an import record after the fact: the header's
// supplier and date, and the fields of its existing line items. Header and
// line updates run in one transaction. The catalog is deliberately left
// alone; reconciliation happened when the import was committed, and editing
// the ledger afterwards does not replay it.
func UpdateImport(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var req ImportUpdateRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.String("import_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if err := c.Validate(&req); err != nil {
		log.Warn("Import update validation failed", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	brands := make([]string, len(req.Lines))
	for i, line := range req.Lines {
		brand, err := normalizeBrand(line.Brand, line.CustomBrand)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		if err := validateImportLine(i, line.ProductName, line.Category, line.Qty, line.UnitBuyingPrice); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		brands[i] = brand
	}

	var record model.ImportRecord
	err := database.GetDB().Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&record, id).Error; err != nil {
			return err
		}

		record.Supplier = req.Supplier
		if !req.Date.IsZero() {
			record.Date = req.Date
		}
		if err := tx.Save(&record).Error; err != nil {
			return err
		}

		for i, line := range req.Lines {
			result := tx.Model(&model.ImportLineItem{}).
				Where("id = ? AND import_id = ?", line.ID, record.ID).
				Updates(map[string]interface{}{
					"product_name":      line.ProductName,
					"brand":             brands[i],
					"category":          line.Category,
					"description":       line.Description,
					"qty":               line.Qty,
					"unit_buying_price": line.UnitBuyingPrice,
				})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
		}

		return tx.Preload("LineItems", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).First(&record, record.ID).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		log.Warn("Import not found for update", zap.String("import_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Import record not found"})
	}
	if err != nil {
		log.Error("Failed to update import",
			zap.String("import_id", id),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to update import record",
		})
	}

	prometheus.RecordImportOperation("update")
	log.Info("Import updated",
		zap.Uint("import_id", record.ID),
		zap.String("supplier", record.Supplier))
	return c.JSON(http.StatusOK, record)
}

// DeleteImport removes an import record and its line items. The catalog is
// not adjusted; the ledger row justifies past stock, it does not hold it.
func DeleteImport(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	err := database.GetDB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("import_id = ?", id).Delete(&model.ImportLineItem{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&model.ImportRecord{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		log.Warn("Import not found for deletion", zap.String("import_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Import record not found"})
	}
	if err != nil {
		log.Error("Failed to delete import",
			zap.String("import_id", id),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to delete import record",
		})
	}

	prometheus.RecordImportOperation("delete")
	log.Info("Import deleted", zap.String("import_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "Import record deleted"})
}
