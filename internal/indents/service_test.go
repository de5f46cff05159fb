package indents

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/campusops/stockroom-backend/internal/labels"
	"github.com/campusops/stockroom-backend/pkg/db/models"
	"github.com/campusops/stockroom-backend/pkg/enums"
	pkgerrors "github.com/campusops/stockroom-backend/pkg/errors"
	"github.com/campusops/stockroom-backend/pkg/logger"
)

type failingRenderer struct{}

func (failingRenderer) RenderPNG(string) ([]byte, error) {
	return nil, errors.New("encoder broken")
}

type capturingRenderer struct {
	payload string
}

func (r *capturingRenderer) RenderPNG(payload string) ([]byte, error) {
	r.payload = payload
	return []byte("png"), nil
}

func newTestService(t *testing.T, renderer labels.Renderer) (Service, *gorm.DB) {
	t.Helper()
	dsn := "file:indents_" + uuid.NewString() + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := conn.AutoMigrate(&models.Indent{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if renderer == nil {
		renderer = labels.NewCode128Renderer()
	}
	svc, err := NewService(NewRepository(conn), renderer, logger.New(logger.Options{Output: io.Discard}))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, conn
}

func TestCreateNonConsumablePersistsAndLabels(t *testing.T) {
	t.Parallel()

	svc, conn := newTestService(t, nil)
	ctx := context.Background()

	view, label, err := svc.CreateNonConsumable(ctx, CreateIndentInput{
		ItemName:   "Office Chair",
		Quantity:   4,
		Department: "Registrar",
	})
	if err != nil {
		t.Fatalf("create indent: %v", err)
	}
	if view.ItemType != enums.ItemTypeNonConsumable {
		t.Fatalf("expected non consumable, got %s", view.ItemType)
	}
	if view.DateOfIndent.IsZero() {
		t.Fatal("date_of_indent not stamped")
	}

	if _, err := png.Decode(bytes.NewReader(label)); err != nil {
		t.Fatalf("label is not a png: %v", err)
	}

	var count int64
	if err := conn.Model(&models.Indent{}).Count(&count).Error; err != nil {
		t.Fatalf("count indents: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 stored indent, got %d", count)
	}
}

func TestLabelPayloadCarriesAllIndentFields(t *testing.T) {
	t.Parallel()

	renderer := &capturingRenderer{}
	svc, _ := newTestService(t, renderer)

	view, _, err := svc.CreateNonConsumable(context.Background(), CreateIndentInput{
		ItemName:   "Office Chair",
		Quantity:   4,
		Department: "Registrar",
	})
	if err != nil {
		t.Fatalf("create indent: %v", err)
	}

	fields := strings.Split(renderer.payload, "|")
	if len(fields) != 6 {
		t.Fatalf("expected 6 payload fields, got %d: %q", len(fields), renderer.payload)
	}
	want := []string{
		view.ID,
		view.DateOfIndent.String(),
		"Office Chair",
		"4",
		"Registrar",
		string(enums.ItemTypeNonConsumable),
	}
	for i, field := range fields {
		if field != want[i] {
			t.Fatalf("payload field %d = %q, want %q", i, field, want[i])
		}
	}
}

func TestCreateNonConsumableLabelFailureIsInternal(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t, failingRenderer{})

	_, _, err := svc.CreateNonConsumable(context.Background(), CreateIndentInput{
		ItemName:   "Office Chair",
		Quantity:   4,
		Department: "Registrar",
	})
	domainErr := pkgerrors.As(err)
	if domainErr == nil || domainErr.Code() != pkgerrors.CodeInternal {
		t.Fatalf("expected internal error, got %v", err)
	}
}

func TestCreateConsumableChecksCatalogue(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t, nil)
	ctx := context.Background()

	view, err := svc.CreateConsumable(ctx, CreateIndentInput{
		ItemName:   "Pen Uniball Black",
		Quantity:   12,
		Department: "Registrar",
	})
	if err != nil {
		t.Fatalf("create indent: %v", err)
	}
	if view.ItemType != enums.ItemTypeConsumable {
		t.Fatalf("expected consumable, got %s", view.ItemType)
	}

	_, err = svc.CreateConsumable(ctx, CreateIndentInput{
		ItemName:   "Mystery Snack",
		Quantity:   1,
		Department: "Registrar",
	})
	domainErr := pkgerrors.As(err)
	if domainErr == nil || domainErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestGetIndent(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t, nil)
	ctx := context.Background()

	created, err := svc.CreateConsumable(ctx, CreateIndentInput{
		ItemName:   "Tissue Box",
		Quantity:   3,
		Department: "Library",
	})
	if err != nil {
		t.Fatalf("create indent: %v", err)
	}

	id, err := uuid.Parse(created.ID)
	if err != nil {
		t.Fatalf("parse id: %v", err)
	}
	got, err := svc.Get(ctx, id)
	if err != nil {
		t.Fatalf("get indent: %v", err)
	}
	if got.ItemName != "Tissue Box" || got.Department != "Library" {
		t.Fatalf("unexpected view %+v", got)
	}

	_, err = svc.Get(ctx, uuid.New())
	domainErr := pkgerrors.As(err)
	if domainErr == nil || domainErr.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
