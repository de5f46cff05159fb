package requests

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/campusops/stockroom-backend/pkg/db/models"
	"github.com/campusops/stockroom-backend/pkg/enums"
)

// Repository exposes persistence helpers for campus requests.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, request *models.Request) error
	// FindByID loads a request with its items and issued lines, or nil.
	FindByID(ctx context.Context, id uuid.UUID) (*models.Request, error)
	ListByCampus(ctx context.Context, campusName string) ([]models.Request, error)
	ListByStatus(ctx context.Context, status enums.RequestStatus) ([]models.Request, error)
	ListAll(ctx context.Context) ([]models.Request, error)
	CountByStatus(ctx context.Context) (map[enums.RequestStatus]int64, error)
	// UpdateDecision writes the fulfillment outcome columns.
	UpdateDecision(ctx context.Context, request *models.Request) error
	CreateIssuedLines(ctx context.Context, lines []models.ReqIssue) error
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a request repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{db: tx}
}

func (r *repositoryImpl) Create(ctx context.Context, request *models.Request) error {
	return r.db.WithContext(ctx).Create(request).Error
}

func (r *repositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*models.Request, error) {
	var request models.Request
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Issued").
		Where("id = ?", id).
		First(&request).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &request, nil
}

func (r *repositoryImpl) ListByCampus(ctx context.Context, campusName string) ([]models.Request, error) {
	var requests []models.Request
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Issued").
		Where("campus_name = ?", campusName).
		Order("date_of_request DESC, created_at DESC").
		Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *repositoryImpl) ListByStatus(ctx context.Context, status enums.RequestStatus) ([]models.Request, error) {
	var requests []models.Request
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Issued").
		Where("status = ?", status).
		Order("date_of_request ASC, created_at ASC").
		Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *repositoryImpl) ListAll(ctx context.Context) ([]models.Request, error) {
	var requests []models.Request
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Issued").
		Order("date_of_request ASC, created_at ASC").
		Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *repositoryImpl) CountByStatus(ctx context.Context) (map[enums.RequestStatus]int64, error) {
	type row struct {
		Status enums.RequestStatus
		Total  int64
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&models.Request{}).
		Select("status, COUNT(*) AS total").
		Group("status").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := map[enums.RequestStatus]int64{
		enums.RequestStatusPending:  0,
		enums.RequestStatusApproved: 0,
		enums.RequestStatusRejected: 0,
	}
	for _, r := range rows {
		counts[r.Status] = r.Total
	}
	return counts, nil
}

func (r *repositoryImpl) UpdateDecision(ctx context.Context, request *models.Request) error {
	return r.db.WithContext(ctx).
		Model(&models.Request{}).
		Where("id = ?", request.ID).
		Updates(map[string]any{
			"status":           request.Status,
			"reason":           request.Reason,
			"date_of_approval": request.DateOfApproval,
		}).Error
}

func (r *repositoryImpl) CreateIssuedLines(ctx context.Context, lines []models.ReqIssue) error {
	if len(lines) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&lines).Error
}
