package stock

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/campusops/stockroom-backend/pkg/db/models"
)

// Repository exposes persistence helpers for vendor stock batches.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, stock *models.Stock) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Stock, error)
	FindByVendor(ctx context.Context, vendorName string) (*models.Stock, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a stock repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{db: tx}
}

func (r *repositoryImpl) Create(ctx context.Context, stock *models.Stock) error {
	return r.db.WithContext(ctx).Create(stock).Error
}

func (r *repositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*models.Stock, error) {
	var stock models.Stock
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("id = ?", id).
		First(&stock).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &stock, nil
}

func (r *repositoryImpl) FindByVendor(ctx context.Context, vendorName string) (*models.Stock, error) {
	var stock models.Stock
	err := r.db.WithContext(ctx).
		Where("vendor_name = ?", vendorName).
		First(&stock).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &stock, nil
}
