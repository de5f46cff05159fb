package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/campusops/stockroom-backend/pkg/enums"
	"github.com/campusops/stockroom-backend/pkg/types"
)

// Request is a campus supply request. It and its RequestItems are created
// together at submission time and are immutable afterwards, except for
// status, reason, date_of_approval and the issued lines, which only the
// fulfillment flow writes.
type Request struct {
	ID             uuid.UUID           `gorm:"column:id;type:uuid;primaryKey"`
	YourMailID     string              `gorm:"column:your_mail_id;not null"`
	CampusName     string              `gorm:"column:campus_name;not null;index"`
	Reason         *string             `gorm:"column:reason"`
	DateOfRequest  types.Date          `gorm:"column:date_of_request;type:date;not null"`
	Status         enums.RequestStatus `gorm:"column:status;not null;default:'Pending';index"`
	DateOfApproval *types.Date         `gorm:"column:date_of_approval;type:date"`
	Items          []RequestItem       `gorm:"foreignKey:RequestID;constraint:OnDelete:CASCADE"`
	Issued         []ReqIssue          `gorm:"foreignKey:RequestID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time           `gorm:"column:created_at;autoCreateTime"`
}

func (Request) TableName() string {
	return "requests"
}
