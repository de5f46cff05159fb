package inventory

import (
	"context"
	"errors"

	"github.com/campusops/stockroom-backend/pkg/db/models"
	"github.com/campusops/stockroom-backend/pkg/enums"
	"gorm.io/gorm"
)

// Repository exposes persistence helpers for the inventory ledger.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Find(ctx context.Context, itemName string, itemType enums.ItemType) (*models.InventoryTotal, error)
	FindAll(ctx context.Context) ([]models.InventoryTotal, error)
	Create(ctx context.Context, total *models.InventoryTotal) error
	// IncrementQuantity adds amount to an existing row.
	IncrementQuantity(ctx context.Context, itemName string, itemType enums.ItemType, amount int) (int64, error)
	// DecrementQuantityIfAvailable subtracts amount only when the row holds
	// at least that much. Returns the number of rows updated (0 or 1).
	DecrementQuantityIfAvailable(ctx context.Context, itemName string, itemType enums.ItemType, amount int) (int64, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a ledger repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{db: tx}
}

func (r *repositoryImpl) Find(ctx context.Context, itemName string, itemType enums.ItemType) (*models.InventoryTotal, error) {
	var total models.InventoryTotal
	err := r.db.WithContext(ctx).
		Where("item_name = ? AND item_type = ?", itemName, itemType).
		First(&total).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &total, nil
}

func (r *repositoryImpl) FindAll(ctx context.Context) ([]models.InventoryTotal, error) {
	var totals []models.InventoryTotal
	err := r.db.WithContext(ctx).
		Order("item_name ASC, item_type ASC").
		Find(&totals).Error
	if err != nil {
		return nil, err
	}
	return totals, nil
}

func (r *repositoryImpl) Create(ctx context.Context, total *models.InventoryTotal) error {
	return r.db.WithContext(ctx).Create(total).Error
}

func (r *repositoryImpl) IncrementQuantity(ctx context.Context, itemName string, itemType enums.ItemType, amount int) (int64, error) {
	res := r.db.WithContext(ctx).Exec(`
		UPDATE inventory_totals
		SET total_quantity = total_quantity + ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE item_name = ? AND item_type = ?
	`, amount, itemName, itemType)
	return res.RowsAffected, res.Error
}

func (r *repositoryImpl) DecrementQuantityIfAvailable(ctx context.Context, itemName string, itemType enums.ItemType, amount int) (int64, error) {
	res := r.db.WithContext(ctx).Exec(`
		UPDATE inventory_totals
		SET total_quantity = total_quantity - ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE item_name = ? AND item_type = ? AND total_quantity >= ?
	`, amount, itemName, itemType, amount)
	return res.RowsAffected, res.Error
}
