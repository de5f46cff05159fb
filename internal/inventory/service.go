package inventory

import (
	"context"
	"fmt"

	"github.com/campusops/stockroom-backend/pkg/db/models"
	"github.com/campusops/stockroom-backend/pkg/enums"
	pkgerrors "github.com/campusops/stockroom-backend/pkg/errors"
	"gorm.io/gorm"
)

// Service is the inventory ledger: one running total per item name and
// type, credited by stock intake and debited by issuance.
type Service interface {
	// Credit finds-or-creates the ledger row for the key and adds amount.
	// Callers run it inside the same transaction as the intake writes.
	Credit(ctx context.Context, tx *gorm.DB, itemName string, itemType enums.ItemType, amount int) error
	// Debit subtracts amount with a single conditional update so two
	// concurrent issuances of the same key cannot both drain the row.
	Debit(ctx context.Context, tx *gorm.DB, itemName string, itemType enums.ItemType, amount int) error
	// Dump lists every ledger row.
	Dump(ctx context.Context) ([]TotalView, error)
}

// TotalView is the read projection of one ledger row.
type TotalView struct {
	ItemName      string         `json:"item_name"`
	ItemType      enums.ItemType `json:"item_type"`
	TotalQuantity int            `json:"total_quantity"`
}

type service struct {
	repo Repository
}

// NewService wires the ledger service with the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Credit(ctx context.Context, tx *gorm.DB, itemName string, itemType enums.ItemType, amount int) error {
	if amount <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "credit amount must be positive")
	}
	if !itemType.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid item type %q", itemType))
	}

	repo := s.repo.WithTx(tx)
	updated, err := repo.IncrementQuantity(ctx, itemName, itemType, amount)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "credit inventory")
	}
	if updated > 0 {
		return nil
	}

	err = repo.Create(ctx, &models.InventoryTotal{
		ItemName:      itemName,
		ItemType:      itemType,
		TotalQuantity: amount,
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create inventory row")
	}
	return nil
}

func (s *service) Debit(ctx context.Context, tx *gorm.DB, itemName string, itemType enums.ItemType, amount int) error {
	if amount <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "debit amount must be positive")
	}

	repo := s.repo.WithTx(tx)
	updated, err := repo.DecrementQuantityIfAvailable(ctx, itemName, itemType, amount)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "debit inventory")
	}
	if updated > 0 {
		return nil
	}

	// The conditional update rejected: either the row is missing or it
	// holds less than the requested amount.
	existing, err := repo.Find(ctx, itemName, itemType)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "inspect inventory row")
	}
	if existing == nil {
		return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("No inventory found for item: %s", itemName))
	}
	return pkgerrors.New(pkgerrors.CodeInsufficientStock, fmt.Sprintf("Insufficient quantity for item: %s", itemName)).
		WithDetails(map[string]any{
			"item_name": itemName,
			"item_type": itemType,
			"requested": amount,
			"available": existing.TotalQuantity,
		})
}

func (s *service) Dump(ctx context.Context) ([]TotalView, error) {
	totals, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list inventory")
	}

	views := make([]TotalView, 0, len(totals))
	for _, total := range totals {
		views = append(views, TotalView{
			ItemName:      total.ItemName,
			ItemType:      total.ItemType,
			TotalQuantity: total.TotalQuantity,
		})
	}
	return views, nil
}
