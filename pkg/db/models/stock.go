package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/campusops/stockroom-backend/pkg/types"
)

// Stock records a single vendor purchase batch. The vendor name doubles as
// the duplicate-batch guard: a second intake under the same vendor name is
// rejected.
type Stock struct {
	ID             uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	VendorName     string     `gorm:"column:vendor_name;not null;uniqueIndex:uq_stocks_vendor_name"`
	DateOfOrder    types.Date `gorm:"column:date_of_order;type:date;not null"`
	DateOfPurchase types.Date `gorm:"column:date_of_purchase;type:date;not null"`
	DateOfAdding   types.Date `gorm:"column:date_of_adding;type:date;not null"`
	Items          []Item     `gorm:"foreignKey:StockID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time  `gorm:"column:created_at;autoCreateTime"`
}

func (Stock) TableName() string {
	return "stocks"
}
