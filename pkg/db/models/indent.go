package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/campusops/stockroom-backend/pkg/enums"
	"github.com/campusops/stockroom-backend/pkg/types"
)

// Indent is a departmental supply requisition, tracked separately from the
// cross-campus request flow.
type Indent struct {
	ID           uuid.UUID      `gorm:"column:id;type:uuid;primaryKey"`
	ItemName     string         `gorm:"column:item_name;not null"`
	Quantity     int            `gorm:"column:quantity;not null"`
	Department   string         `gorm:"column:department;not null"`
	ItemType     enums.ItemType `gorm:"column:item_type;not null"`
	DateOfIndent types.Date     `gorm:"column:date_of_indent;type:date;not null"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime"`
}

func (Indent) TableName() string {
	return "indents"
}
