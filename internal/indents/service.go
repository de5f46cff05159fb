package indents

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/campusops/stockroom-backend/internal/labels"
	"github.com/campusops/stockroom-backend/pkg/db/models"
	"github.com/campusops/stockroom-backend/pkg/enums"
	pkgerrors "github.com/campusops/stockroom-backend/pkg/errors"
	"github.com/campusops/stockroom-backend/pkg/logger"
	"github.com/campusops/stockroom-backend/pkg/types"
)

// Service handles departmental indents. Non-consumable indents get a
// printable barcode label back; consumable indents are checked against the
// catalogue and echoed as JSON.
type Service interface {
	// CreateNonConsumable stores the indent and returns a Code128 PNG label
	// encoding its fields.
	CreateNonConsumable(ctx context.Context, input CreateIndentInput) (*IndentView, []byte, error)
	CreateConsumable(ctx context.Context, input CreateIndentInput) (*IndentView, error)
	Get(ctx context.Context, id uuid.UUID) (*IndentView, error)
}

// CreateIndentInput is the requisition payload.
type CreateIndentInput struct {
	ItemName   string `json:"item_name" validate:"required,max=200"`
	Quantity   int    `json:"quantity" validate:"required,gt=0"`
	Department string `json:"department" validate:"required,max=200"`
}

// IndentView is the read projection of a stored indent.
type IndentView struct {
	ID           string         `json:"id"`
	ItemName     string         `json:"item_name"`
	Quantity     int            `json:"quantity"`
	Department   string         `json:"department"`
	ItemType     enums.ItemType `json:"item_type"`
	DateOfIndent types.Date     `json:"date_of_indent"`
}

type service struct {
	repo     Repository
	renderer labels.Renderer
	log      *logger.Logger
}

// NewService wires the indent service.
func NewService(repo Repository, renderer labels.Renderer, log *logger.Logger) (Service, error) {
	if repo == nil || renderer == nil || log == nil {
		return nil, fmt.Errorf("indents service dependencies required")
	}
	return &service{repo: repo, renderer: renderer, log: log}, nil
}

func (s *service) CreateNonConsumable(ctx context.Context, input CreateIndentInput) (*IndentView, []byte, error) {
	indent, err := s.create(ctx, input, enums.ItemTypeNonConsumable)
	if err != nil {
		return nil, nil, err
	}

	label, err := s.renderer.RenderPNG(labelPayload(indent))
	if err != nil {
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "render indent label")
	}

	s.log.Info(ctx, fmt.Sprintf("indent %s labelled for %s", indent.ID, indent.Department))
	return viewOf(indent), label, nil
}

func (s *service) CreateConsumable(ctx context.Context, input CreateIndentInput) (*IndentView, error) {
	if err := enums.ValidateConsumableItem(input.ItemName, enums.ItemTypeConsumable); err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
	}

	indent, err := s.create(ctx, input, enums.ItemTypeConsumable)
	if err != nil {
		return nil, err
	}
	return viewOf(indent), nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*IndentView, error) {
	indent, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load indent")
	}
	if indent == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("Indent %s not found", id))
	}
	return viewOf(indent), nil
}

func (s *service) create(ctx context.Context, input CreateIndentInput, itemType enums.ItemType) (*models.Indent, error) {
	indent := &models.Indent{
		ID:           uuid.New(),
		ItemName:     input.ItemName,
		Quantity:     input.Quantity,
		Department:   input.Department,
		ItemType:     itemType,
		DateOfIndent: types.Today(),
	}
	if err := s.repo.Create(ctx, indent); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist indent")
	}
	return indent, nil
}

func labelPayload(indent *models.Indent) string {
	return strings.Join([]string{
		indent.ID.String(),
		indent.DateOfIndent.String(),
		indent.ItemName,
		fmt.Sprintf("%d", indent.Quantity),
		indent.Department,
		string(indent.ItemType),
	}, "|")
}

func viewOf(indent *models.Indent) *IndentView {
	return &IndentView{
		ID:           indent.ID.String(),
		ItemName:     indent.ItemName,
		Quantity:     indent.Quantity,
		Department:   indent.Department,
		ItemType:     indent.ItemType,
		DateOfIndent: indent.DateOfIndent,
	}
}
