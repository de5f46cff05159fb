package inventory

import (
	"context"
	"testing"

	"github.com/campusops/stockroom-backend/pkg/db/models"
	"github.com/campusops/stockroom-backend/pkg/enums"
	pkgerrors "github.com/campusops/stockroom-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:inventory_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.InventoryTotal{}); err != nil {
		t.Fatalf("migrate inventory: %v", err)
	}
	return db
}

func newTestService(t *testing.T, db *gorm.DB) Service {
	t.Helper()
	svc, err := NewService(NewRepository(db))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func load(t *testing.T, db *gorm.DB, name string, itemType enums.ItemType) models.InventoryTotal {
	t.Helper()
	var total models.InventoryTotal
	err := db.Where("item_name = ? AND item_type = ?", name, itemType).First(&total).Error
	if err != nil {
		t.Fatalf("load ledger row: %v", err)
	}
	return total
}

func TestCreditCreatesThenAccumulates(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	if err := svc.Credit(ctx, db, "Pen Uniball Black", enums.ItemTypeConsumable, 100); err != nil {
		t.Fatalf("first credit: %v", err)
	}
	if got := load(t, db, "Pen Uniball Black", enums.ItemTypeConsumable); got.TotalQuantity != 100 {
		t.Fatalf("expected 100 after first credit, got %d", got.TotalQuantity)
	}

	if err := svc.Credit(ctx, db, "Pen Uniball Black", enums.ItemTypeConsumable, 40); err != nil {
		t.Fatalf("second credit: %v", err)
	}
	if got := load(t, db, "Pen Uniball Black", enums.ItemTypeConsumable); got.TotalQuantity != 140 {
		t.Fatalf("expected 140 after second credit, got %d", got.TotalQuantity)
	}
}

func TestCreditKeysOnNameAndType(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	if err := svc.Credit(ctx, db, "Projector", enums.ItemTypeNonConsumable, 5); err != nil {
		t.Fatalf("credit non-consumable: %v", err)
	}
	if err := svc.Credit(ctx, db, "Projector", enums.ItemTypeConsumable, 3); err != nil {
		t.Fatalf("credit consumable: %v", err)
	}

	if got := load(t, db, "Projector", enums.ItemTypeNonConsumable); got.TotalQuantity != 5 {
		t.Fatalf("rows with different types must not merge: %d", got.TotalQuantity)
	}
}

func TestCreditRejectsNonPositiveAmount(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newTestService(t, db)

	err := svc.Credit(context.Background(), db, "Pen", enums.ItemTypeConsumable, 0)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDebitSubtractsExactly(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	if err := svc.Credit(ctx, db, "Paper Ream (A4 Size)", enums.ItemTypeConsumable, 100); err != nil {
		t.Fatalf("seed credit: %v", err)
	}
	if err := svc.Debit(ctx, db, "Paper Ream (A4 Size)", enums.ItemTypeConsumable, 30); err != nil {
		t.Fatalf("debit: %v", err)
	}
	if got := load(t, db, "Paper Ream (A4 Size)", enums.ItemTypeConsumable); got.TotalQuantity != 70 {
		t.Fatalf("expected 70 after debit, got %d", got.TotalQuantity)
	}
}

func TestDebitInsufficientLeavesRowUnchanged(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	if err := svc.Credit(ctx, db, "Tissue Box", enums.ItemTypeConsumable, 70); err != nil {
		t.Fatalf("seed credit: %v", err)
	}

	err := svc.Debit(ctx, db, "Tissue Box", enums.ItemTypeConsumable, 200)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeInsufficientStock {
		t.Fatalf("expected insufficient stock, got %v", err)
	}
	if got := load(t, db, "Tissue Box", enums.ItemTypeConsumable); got.TotalQuantity != 70 {
		t.Fatalf("failed debit must not change the row, got %d", got.TotalQuantity)
	}
}

func TestDebitMissingRowIsNotFound(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newTestService(t, db)

	err := svc.Debit(context.Background(), db, "Stapler Small", enums.ItemTypeConsumable, 1)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
	if typed.Message() != "No inventory found for item: Stapler Small" {
		t.Fatalf("unexpected message: %s", typed.Message())
	}
}

func TestRepeatedDebitsNeverOverdraw(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	if err := svc.Credit(ctx, db, "File Board", enums.ItemTypeConsumable, 10); err != nil {
		t.Fatalf("seed credit: %v", err)
	}

	// The conditional update is the only write path, so however the
	// callers interleave, only floor(10/3) debits of 3 can land.
	succeeded := 0
	for i := 0; i < 8; i++ {
		err := svc.Debit(ctx, db, "File Board", enums.ItemTypeConsumable, 3)
		if err == nil {
			succeeded++
			continue
		}
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeInsufficientStock {
			t.Fatalf("unexpected debit error: %v", err)
		}
	}
	if succeeded != 3 {
		t.Fatalf("expected exactly 3 debits of 3 against 10, got %d", succeeded)
	}
	row := load(t, db, "File Board", enums.ItemTypeConsumable)
	if row.TotalQuantity != 1 {
		t.Fatalf("expected 1 remaining, got %d", row.TotalQuantity)
	}
}

func TestDumpListsEveryRow(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	if err := svc.Credit(ctx, db, "Brown Tape", enums.ItemTypeConsumable, 12); err != nil {
		t.Fatalf("credit: %v", err)
	}
	if err := svc.Credit(ctx, db, "Office Chair", enums.ItemTypeNonConsumable, 4); err != nil {
		t.Fatalf("credit: %v", err)
	}

	views, err := svc.Dump(ctx)
	if err != nil {
		t.Fatalf("dump: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(views))
	}
	if views[0].ItemName != "Brown Tape" || views[0].TotalQuantity != 12 {
		t.Fatalf("unexpected first row: %+v", views[0])
	}
}
