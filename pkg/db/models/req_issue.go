package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/campusops/stockroom-backend/pkg/enums"
)

// ReqIssue is one issued line of an approved request (the grant). Rows are
// created only during issuance, one per approved line item, after the
// matching ledger debit succeeds.
type ReqIssue struct {
	ID        uuid.UUID      `gorm:"column:id;type:uuid;primaryKey"`
	RequestID uuid.UUID      `gorm:"column:request_id;type:uuid;not null;index"`
	ItemName  string         `gorm:"column:item_name;not null"`
	Qty       int            `gorm:"column:qty;not null"`
	ItemType  enums.ItemType `gorm:"column:item_type;not null"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
}

func (ReqIssue) TableName() string {
	return "req_issues"
}
