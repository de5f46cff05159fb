package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/campusops/stockroom-backend/pkg/enums"
)

// Item is one line of a vendor stock batch.
type Item struct {
	ID           uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	StockID      uuid.UUID       `gorm:"column:stock_id;type:uuid;not null;index"`
	ItemName     string          `gorm:"column:item_name;not null"`
	ItemType     enums.ItemType  `gorm:"column:item_type;not null"`
	ItemQuantity int             `gorm:"column:item_quantity;not null"`
	ItemPrice    decimal.Decimal `gorm:"column:item_price;type:numeric(12,2);not null"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime"`
}

func (Item) TableName() string {
	return "items"
}
