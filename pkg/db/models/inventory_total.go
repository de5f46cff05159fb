package models

import (
	"time"

	"github.com/campusops/stockroom-backend/pkg/enums"
)

// InventoryTotal tracks the running available quantity per item name and
// type. Rows are created on first intake and updated thereafter; they are
// never deleted in normal operation and the quantity never goes negative.
type InventoryTotal struct {
	ItemName      string         `gorm:"column:item_name;primaryKey"`
	ItemType      enums.ItemType `gorm:"column:item_type;primaryKey"`
	TotalQuantity int            `gorm:"column:total_quantity;not null;default:0"`
	UpdatedAt     time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

func (InventoryTotal) TableName() string {
	return "inventory_totals"
}
