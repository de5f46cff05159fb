package stock

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/campusops/stockroom-backend/internal/inventory"
	"github.com/campusops/stockroom-backend/pkg/db"
	"github.com/campusops/stockroom-backend/pkg/db/models"
	"github.com/campusops/stockroom-backend/pkg/enums"
	pkgerrors "github.com/campusops/stockroom-backend/pkg/errors"
	"github.com/campusops/stockroom-backend/pkg/logger"
	"github.com/campusops/stockroom-backend/pkg/types"
)

// Service handles vendor stock intake. Every accepted batch credits the
// inventory ledger in the same transaction as the batch rows, so a failed
// intake leaves the ledger untouched.
type Service interface {
	CreateStock(ctx context.Context, input CreateStockInput) (*StockView, error)
	GetStock(ctx context.Context, id uuid.UUID) (*StockView, error)
}

// CreateStockInput is the intake payload for one vendor purchase batch.
type CreateStockInput struct {
	VendorName     string      `json:"vendor_name" validate:"required,max=200"`
	DateOfOrder    types.Date  `json:"date_of_order" validate:"required"`
	DateOfPurchase types.Date  `json:"date_of_purchase" validate:"required"`
	Items          []ItemInput `json:"items" validate:"required,min=1,dive"`
}

// ItemInput is one line of an intake batch.
type ItemInput struct {
	ItemName     string          `json:"item_name" validate:"required,max=200"`
	ItemType     enums.ItemType  `json:"item_type" validate:"required"`
	ItemQuantity int             `json:"item_quantity" validate:"required,gt=0"`
	ItemPrice    decimal.Decimal `json:"item_price"`
}

// StockView is the read projection of a stored batch.
type StockView struct {
	ID             string     `json:"id"`
	VendorName     string     `json:"vendor_name"`
	DateOfOrder    types.Date `json:"date_of_order"`
	DateOfPurchase types.Date `json:"date_of_purchase"`
	DateOfAdding   types.Date `json:"date_of_adding"`
	Items          []ItemView `json:"items"`
}

// ItemView is the read projection of one batch line.
type ItemView struct {
	ItemName     string          `json:"item_name"`
	ItemType     enums.ItemType  `json:"item_type"`
	ItemQuantity int             `json:"item_quantity"`
	ItemPrice    decimal.Decimal `json:"item_price"`
}

type service struct {
	client *db.Client
	repo   Repository
	ledger inventory.Service
	log    *logger.Logger
}

// NewService wires the stock intake service.
func NewService(client *db.Client, repo Repository, ledger inventory.Service, log *logger.Logger) (Service, error) {
	if client == nil || repo == nil || ledger == nil || log == nil {
		return nil, fmt.Errorf("stock service dependencies required")
	}
	return &service{client: client, repo: repo, ledger: ledger, log: log}, nil
}

func (s *service) CreateStock(ctx context.Context, input CreateStockInput) (*StockView, error) {
	ctx = s.log.WithVendor(ctx, input.VendorName)

	for _, item := range input.Items {
		if !item.ItemType.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("invalid item type %q", item.ItemType))
		}
		if err := enums.ValidateConsumableItem(item.ItemName, item.ItemType); err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
		}
		if !item.ItemPrice.IsPositive() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("price for item %q must be greater than zero", item.ItemName))
		}
	}

	existing, err := s.repo.FindByVendor(ctx, input.VendorName)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "look up vendor batch")
	}
	if existing != nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict,
			fmt.Sprintf("Stock for vendor %q already exists", input.VendorName))
	}

	batch := &models.Stock{
		ID:             uuid.New(),
		VendorName:     input.VendorName,
		DateOfOrder:    input.DateOfOrder,
		DateOfPurchase: input.DateOfPurchase,
		DateOfAdding:   types.Today(),
	}
	for _, item := range input.Items {
		batch.Items = append(batch.Items, models.Item{
			ID:           uuid.New(),
			StockID:      batch.ID,
			ItemName:     item.ItemName,
			ItemType:     item.ItemType,
			ItemQuantity: item.ItemQuantity,
			ItemPrice:    item.ItemPrice,
		})
	}

	err = s.client.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Create(ctx, batch); err != nil {
			if db.IsUniqueViolation(err, "uq_stocks_vendor_name") {
				return pkgerrors.New(pkgerrors.CodeConflict,
					fmt.Sprintf("Stock for vendor %q already exists", input.VendorName))
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist stock batch")
		}
		for _, item := range batch.Items {
			if err := s.ledger.Credit(ctx, tx, item.ItemName, item.ItemType, item.ItemQuantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info(ctx, fmt.Sprintf("stock batch %s accepted with %d items", batch.ID, len(batch.Items)))
	return viewOf(batch), nil
}

func (s *service) GetStock(ctx context.Context, id uuid.UUID) (*StockView, error) {
	batch, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load stock batch")
	}
	if batch == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("Stock %s not found", id))
	}
	return viewOf(batch), nil
}

func viewOf(batch *models.Stock) *StockView {
	view := &StockView{
		ID:             batch.ID.String(),
		VendorName:     batch.VendorName,
		DateOfOrder:    batch.DateOfOrder,
		DateOfPurchase: batch.DateOfPurchase,
		DateOfAdding:   batch.DateOfAdding,
		Items:          make([]ItemView, 0, len(batch.Items)),
	}
	for _, item := range batch.Items {
		view.Items = append(view.Items, ItemView{
			ItemName:     item.ItemName,
			ItemType:     item.ItemType,
			ItemQuantity: item.ItemQuantity,
			ItemPrice:    item.ItemPrice,
		})
	}
	return view
}
