package handler

import (
	"fmt"
	"strings"

	"techstock/internal/model"

	"github.com/shopspring/decimal"
)

// brandOther is the UI's sentinel brand choice that requires a custom brand
// string to be supplied in its place.
const brandOther = "Other"

// normalizeBrand resolves the "Other" brand selection to the supplied custom
// brand. Matching against the catalog is exact and case-sensitive, so the
// resolved brand is returned as-is apart from surrounding whitespace.
func normalizeBrand(brand, customBrand string) (string, error) {
	brand = strings.TrimSpace(brand)
	if brand == "" {
		return "", fmt.Errorf("brand is required")
	}
	if brand != brandOther {
		return brand, nil
	}
	customBrand = strings.TrimSpace(customBrand)
	if customBrand == "" {
		return "", fmt.Errorf("custom brand is required when brand is %q", brandOther)
	}
	return customBrand, nil
}

// validateImportLine checks one line item before any persistence happens.
func validateImportLine(pos int, name, category string, qty int, unitBuyingPrice decimal.Decimal) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("line %d: product name is required", pos+1)
	}
	if strings.TrimSpace(category) == "" {
		return fmt.Errorf("line %d: category is required", pos+1)
	}
	if qty < 1 {
		return fmt.Errorf("line %d: qty must be at least 1", pos+1)
	}
	if unitBuyingPrice.IsNegative() {
		return fmt.Errorf("line %d: unit buying price cannot be negative", pos+1)
	}
	return nil
}

// nextStockOnImport is the catalog increment applied when an import line
// matches an existing product. The line's buying price overwrites the cost
// basis separately (last write wins).
func nextStockOnImport(existingQty, lineQty int) int {
	return existingQty + lineQty
}

// clampSaleQty bounds a requested sale quantity to what is actually in
// stock. Quantity below 1 is a validation error handled before this point.
func clampSaleQty(requested, inStock int) int {
	if requested > inStock {
		return inStock
	}
	return requested
}

// nextStockOnSale decrements stock for a sale, floored at zero. The sale
// transaction applies this same rule in SQL (GREATEST(qty_in_stock - ?, 0))
// so the decrement is atomic; this function pins down the arithmetic the
// expression must implement.
func nextStockOnSale(existingQty, saleQty int) int {
	next := existingQty - saleQty
	if next < 0 {
		return 0
	}
	return next
}

// saleProfit computes (unit selling price - unit buying price) * qty using
// exact decimal arithmetic.
func saleProfit(unitSellingPrice, unitBuyingPrice decimal.Decimal, qty int) decimal.Decimal {
	return unitSellingPrice.Sub(unitBuyingPrice).Mul(decimal.NewFromInt(int64(qty)))
}

// saleRevenue computes unit selling price * qty.
func saleRevenue(unitSellingPrice decimal.Decimal, qty int) decimal.Decimal {
	return unitSellingPrice.Mul(decimal.NewFromInt(int64(qty)))
}

// validPaymentMethod reports whether m is one of the accepted payment methods.
func validPaymentMethod(m string) bool {
	switch m {
	case model.PaymentCash, model.PaymentCard, model.PaymentMobile:
		return true
	}
	return false
}
