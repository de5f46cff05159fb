package models

import (
	"time"

	"github.com/google/uuid"
)

// RequestItem is one requested line of a campus request (the ask).
type RequestItem struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	RequestID   uuid.UUID `gorm:"column:request_id;type:uuid;not null;index"`
	ItemName    string    `gorm:"column:item_name;not null"`
	Qty         int       `gorm:"column:qty;not null"`
	Description *string   `gorm:"column:description;size:100"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (RequestItem) TableName() string {
	return "request_items"
}
