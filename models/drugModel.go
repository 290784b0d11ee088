package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Drug model. Stock is decremented only through the stock ledger's atomic
// dispense path and must never go negative.
type Drug struct {
	ID            string          `gorm:"primaryKey;column:id" json:"id"`
	Name          string          `gorm:"column:name;not null;index" json:"name"`
	GenericName   string          `gorm:"column:generic_name" json:"generic_name"`
	Description   string          `gorm:"column:description" json:"description"`
	Category      string          `gorm:"column:category" json:"category"`
	PurchasePrice decimal.Decimal `gorm:"column:purchase_price;type:decimal(12,2);not null" json:"purchase_price"`
	SalesPrice    decimal.Decimal `gorm:"column:sales_price;type:decimal(12,2);not null" json:"sales_price"`
	StockQuantity int             `gorm:"column:stock_quantity;not null;check:stock_quantity >= 0" json:"stock_quantity"`
	ReorderLevel  int             `gorm:"column:reorder_level;not null" json:"reorder_level"`
	Unit          string          `gorm:"column:unit;not null" json:"unit"`
	ExpiryDate    string          `gorm:"column:expiry_date" json:"expiry_date"`
	Manufacturer  string          `gorm:"column:manufacturer" json:"manufacturer"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Drug) TableName() string {
	return "drugs"
}

// Stock classifications, derived at read time from stock against the reorder
// threshold. Not stored.
const (
	StockOK  = "in_stock"
	StockLow = "low_stock"
	StockOut = "out_of_stock"
)

// OutOfStock reports whether the drug has no units left.
func (d *Drug) OutOfStock() bool {
	return d.StockQuantity == 0
}

// LowStock reports whether stock has crossed at or below the reorder level.
func (d *Drug) LowStock() bool {
	return d.StockQuantity <= d.ReorderLevel
}

// StockStatus classifies the current stock level.
func (d *Drug) StockStatus() string {
	switch {
	case d.OutOfStock():
		return StockOut
	case d.LowStock():
		return StockLow
	default:
		return StockOK
	}
}
