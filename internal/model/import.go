package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ImportRecord is the header of one intake event. Line items are owned by
// the record and removed with it.
type ImportRecord struct {
	ID        uint             `json:"id" gorm:"primarykey"`
	Supplier  string           `json:"supplier" gorm:"type:varchar(255);not null"`
	Date      time.Time        `json:"date" gorm:"not null;index"`
	EnteredBy uint             `json:"entered_by"`
	CreatedAt time.Time        `json:"created_at"`
	LineItems []ImportLineItem `json:"line_items" gorm:"foreignKey:ImportID;constraint:OnDelete:CASCADE"`
}

// ImportLineItem is one product entry within an import. Position preserves
// input order; reconciliation processes lines strictly in that order.
type ImportLineItem struct {
	ID              uint            `json:"id" gorm:"primarykey"`
	ImportID        uint            `json:"import_id" gorm:"index;not null"`
	ProductName     string          `json:"product_name" gorm:"type:varchar(255);not null"`
	Brand           string          `json:"brand" gorm:"type:varchar(100);not null"`
	Category        string          `json:"category" gorm:"type:varchar(100);not null"`
	Description     string          `json:"description" gorm:"type:text"`
	Qty             int             `json:"qty" gorm:"not null"`
	UnitBuyingPrice decimal.Decimal `json:"unit_buying_price" gorm:"type:numeric(14,2);not null"`
	Position        int             `json:"position" gorm:"not null"`
	CreatedAt       time.Time       `json:"created_at"`
}
