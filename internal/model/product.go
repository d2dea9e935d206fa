package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// StringList stores a JSON-encoded list of strings in a text column.
// Used for product photo references.
type StringList []string

func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = []string{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("failed to scan StringList: %v", value)
	}
}

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	return json.Marshal(l)
}

// Product is the canonical stock record per (name, brand) pair. It is the
// single mutable source of truth for how many units exist right now; the
// import and sales ledgers justify every change to QtyInStock.
type Product struct {
	ID          uint            `json:"id" gorm:"primarykey"`
	Name        string          `json:"name" gorm:"type:varchar(255);not null;index:idx_products_name_brand"`
	Brand       string          `json:"brand" gorm:"type:varchar(100);not null;index:idx_products_name_brand"`
	Category    string          `json:"category" gorm:"type:varchar(100);not null"`
	Description string          `json:"description" gorm:"type:text"`
	SKU         string          `json:"sku" gorm:"type:varchar(100);unique;not null"`
	QtyInStock  int             `json:"qty_in_stock" gorm:"not null;default:0"`
	BuyingPrice decimal.Decimal `json:"buying_price" gorm:"type:numeric(14,2);not null"`
	DateOfEntry time.Time       `json:"date_of_entry"`
	PhotoURLs   StringList      `json:"photo_urls" gorm:"type:text"`
	CreatedBy   uint            `json:"created_by"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
