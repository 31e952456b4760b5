package model

import "github.com/shopspring/decimal"

// Repuesto represents a spare part tracked by the store.
// Name must be unique among active rows; the rule lives in the service
// layer, not as a database constraint (an inactive row never blocks reuse
// of its name).
type Repuesto struct {
	BaseModel
	Name          string          `gorm:"type:varchar(255);not null;index" json:"name"`
	Description   string          `gorm:"type:text;not null" json:"description"`
	Price         decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"price"`
	StockQuantity int             `gorm:"not null" json:"stock_quantity"`
}
