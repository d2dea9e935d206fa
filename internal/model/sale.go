package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment methods accepted on a sale.
const (
	PaymentCash   = "Cash"
	PaymentCard   = "Card"
	PaymentMobile = "Mobile"
)

// SaleRecord is one row of the sales ledger. Product fields are denormalized
// so reporting survives product deletion; deleting a sale never restocks.
type SaleRecord struct {
	ID               uint            `json:"id" gorm:"primarykey"`
	ProductID        *uint           `json:"product_id" gorm:"index"`
	ProductName      string          `json:"product_name" gorm:"type:varchar(255);not null"`
	Brand            string          `json:"brand" gorm:"type:varchar(100);not null"`
	Category         string          `json:"category" gorm:"type:varchar(100);not null"`
	Qty              int             `json:"qty" gorm:"not null"`
	UnitSellingPrice decimal.Decimal `json:"unit_selling_price" gorm:"type:numeric(14,2);not null"`
	UnitBuyingPrice  decimal.Decimal `json:"unit_buying_price" gorm:"type:numeric(14,2);not null"`
	PaymentMethod    string          `json:"payment_method" gorm:"type:varchar(20);not null"`
	Notes            string          `json:"notes" gorm:"type:text"`
	Profit           decimal.Decimal `json:"profit" gorm:"type:numeric(14,2);not null"`
	EnteredBy        uint            `json:"entered_by"`
	Date             time.Time       `json:"date" gorm:"not null;index"`
	CreatedAt        time.Time       `json:"created_at"`
}
