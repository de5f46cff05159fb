package indents

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/campusops/stockroom-backend/pkg/db/models"
)

// Repository exposes persistence helpers for departmental indents.
type Repository interface {
	Create(ctx context.Context, indent *models.Indent) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Indent, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns an indent repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) Create(ctx context.Context, indent *models.Indent) error {
	return r.db.WithContext(ctx).Create(indent).Error
}

func (r *repositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*models.Indent, error) {
	var indent models.Indent
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&indent).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &indent, nil
}
