package requests

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/campusops/stockroom-backend/internal/inventory"
	"github.com/campusops/stockroom-backend/internal/mailer"
	"github.com/campusops/stockroom-backend/pkg/db"
	"github.com/campusops/stockroom-backend/pkg/db/models"
	"github.com/campusops/stockroom-backend/pkg/enums"
	pkgerrors "github.com/campusops/stockroom-backend/pkg/errors"
	"github.com/campusops/stockroom-backend/pkg/logger"
	"github.com/campusops/stockroom-backend/pkg/types"
)

// Service is the campus request lifecycle: submission, fulfillment by the
// central stock office, and the reporting lists built on top of both.
type Service interface {
	Create(ctx context.Context, input CreateRequestInput) (*RequestView, error)
	// Get returns the request only when the campus name matches the one it
	// was submitted under, otherwise NotFound.
	Get(ctx context.Context, id uuid.UUID, campusName string) (*RequestView, error)
	History(ctx context.Context, campusName string) ([]RequestView, error)

	// Issue fulfills a pending request: every line debits the ledger and
	// records an issued line inside one transaction, then the request is
	// marked Approved. Any failing line aborts the whole issuance.
	Issue(ctx context.Context, id uuid.UUID, input IssueInput) (*RequestView, error)
	Reject(ctx context.Context, id uuid.UUID, input RejectInput) (*RequestView, error)

	ListAll(ctx context.Context) ([]RequestView, error)
	ListByStatus(ctx context.Context, status enums.RequestStatus) ([]RequestView, error)
	Counts(ctx context.Context) (*CountsView, error)
	// IssuedItems lists every approved request together with its issued lines.
	IssuedItems(ctx context.Context) ([]RequestView, error)
}

// CreateRequestInput is the submission payload for a campus request.
type CreateRequestInput struct {
	YourMailID string             `json:"your_mail_id" validate:"required,email"`
	CampusName string             `json:"campus_name" validate:"required,max=200"`
	Reason     *string            `json:"reason" validate:"omitempty,max=500"`
	Items      []RequestLineInput `json:"items" validate:"required,min=1,dive"`
}

// RequestLineInput is one requested line.
type RequestLineInput struct {
	ItemName    string  `json:"item_name" validate:"required,max=200"`
	Qty         int     `json:"qty" validate:"required,gt=0"`
	Description *string `json:"description" validate:"omitempty,max=100"`
}

// IssueInput carries the lines the stock office actually grants. They may
// differ from the requested lines in both quantity and composition.
type IssueInput struct {
	Items []IssueLineInput `json:"items" validate:"required,min=1,dive"`
}

// IssueLineInput is one granted line.
type IssueLineInput struct {
	ItemName string         `json:"item_name" validate:"required,max=200"`
	Qty      int            `json:"qty" validate:"required,gt=0"`
	ItemType enums.ItemType `json:"item_type" validate:"required"`
}

// RejectInput carries the rejection reason shown to the requester.
type RejectInput struct {
	Reason string `json:"reason" validate:"required,max=500"`
}

// RequestView is the read projection of a request with both line sets.
type RequestView struct {
	ID             string              `json:"id"`
	YourMailID     string              `json:"your_mail_id"`
	CampusName     string              `json:"campus_name"`
	Reason         *string             `json:"reason,omitempty"`
	DateOfRequest  types.Date          `json:"date_of_request"`
	Status         enums.RequestStatus `json:"status"`
	DateOfApproval *types.Date         `json:"date_of_approval,omitempty"`
	Items          []RequestLineView   `json:"items"`
	Issued         []IssuedLineView    `json:"issued_items"`
}

// RequestLineView is the read projection of one requested line.
type RequestLineView struct {
	ItemName    string  `json:"item_name"`
	Qty         int     `json:"qty"`
	Description *string `json:"description,omitempty"`
}

// IssuedLineView is the read projection of one granted line.
type IssuedLineView struct {
	ItemName string         `json:"item_name"`
	Qty      int            `json:"qty"`
	ItemType enums.ItemType `json:"item_type"`
}

// CountsView is the per-status request tally.
type CountsView struct {
	Approved int64 `json:"Approved"`
	Rejected int64 `json:"Rejected"`
	Pending  int64 `json:"Pending"`
}

type service struct {
	client *db.Client
	repo   Repository
	ledger inventory.Service
	mail   mailer.Notifier
	log    *logger.Logger
}

// NewService wires the request lifecycle service. The notifier may be nil,
// in which case no emails are attempted.
func NewService(client *db.Client, repo Repository, ledger inventory.Service, mail mailer.Notifier, log *logger.Logger) (Service, error) {
	if client == nil || repo == nil || ledger == nil || log == nil {
		return nil, fmt.Errorf("requests service dependencies required")
	}
	return &service{client: client, repo: repo, ledger: ledger, mail: mail, log: log}, nil
}

func (s *service) Create(ctx context.Context, input CreateRequestInput) (*RequestView, error) {
	ctx = s.log.WithCampus(ctx, input.CampusName)

	request := &models.Request{
		ID:            uuid.New(),
		YourMailID:    input.YourMailID,
		CampusName:    input.CampusName,
		Reason:        input.Reason,
		DateOfRequest: types.Today(),
		Status:        enums.RequestStatusPending,
	}
	for _, line := range input.Items {
		request.Items = append(request.Items, models.RequestItem{
			ID:          uuid.New(),
			RequestID:   request.ID,
			ItemName:    line.ItemName,
			Qty:         line.Qty,
			Description: line.Description,
		})
	}

	err := s.client.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).Create(ctx, request)
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist request")
	}

	ctx = s.log.WithRequestID(ctx, request.ID.String())
	s.log.Info(ctx, "request submitted")
	s.notify(ctx, request.YourMailID,
		mailer.RequestCreated(request.ID.String(), request.CampusName, requestLines(request.Items)))

	return viewOf(request), nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID, campusName string) (*RequestView, error) {
	request, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load request")
	}
	// Campus mismatch is reported the same way as a missing request so a
	// request id alone does not expose another campus's data.
	if request == nil || request.CampusName != campusName {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("Request %s not found", id))
	}
	return viewOf(request), nil
}

func (s *service) History(ctx context.Context, campusName string) ([]RequestView, error) {
	requests, err := s.repo.ListByCampus(ctx, campusName)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list campus requests")
	}
	return viewsOf(requests), nil
}

func (s *service) Issue(ctx context.Context, id uuid.UUID, input IssueInput) (*RequestView, error) {
	for _, line := range input.Items {
		if !line.ItemType.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("invalid item type %q", line.ItemType))
		}
		if err := enums.ValidateConsumableItem(line.ItemName, line.ItemType); err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
		}
	}

	request, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load request")
	}
	if request == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("Request %s not found", id))
	}
	if request.Status != enums.RequestStatusPending {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("Request has already been '%s' and cannot be approved again", request.Status))
	}

	ctx = s.log.WithRequestID(s.log.WithCampus(ctx, request.CampusName), request.ID.String())

	approvedOn := types.Today()
	issued := make([]models.ReqIssue, 0, len(input.Items))
	for _, line := range input.Items {
		issued = append(issued, models.ReqIssue{
			ID:        uuid.New(),
			RequestID: request.ID,
			ItemName:  line.ItemName,
			Qty:       line.Qty,
			ItemType:  line.ItemType,
		})
	}

	err = s.client.WithTx(ctx, func(tx *gorm.DB) error {
		for _, line := range input.Items {
			if err := s.ledger.Debit(ctx, tx, line.ItemName, line.ItemType, line.Qty); err != nil {
				return err
			}
		}
		repo := s.repo.WithTx(tx)
		if err := repo.CreateIssuedLines(ctx, issued); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist issued lines")
		}
		request.Status = enums.RequestStatusApproved
		request.DateOfApproval = &approvedOn
		if err := repo.UpdateDecision(ctx, request); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark request approved")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	request.Issued = issued
	s.log.Info(ctx, fmt.Sprintf("request approved with %d issued lines", len(issued)))
	s.notify(ctx, request.YourMailID,
		mailer.RequestApproved(request.ID.String(), request.CampusName, approvedOn, issuedLines(issued)))

	return viewOf(request), nil
}

func (s *service) Reject(ctx context.Context, id uuid.UUID, input RejectInput) (*RequestView, error) {
	request, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load request")
	}
	if request == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("Request %s not found", id))
	}
	if request.Status != enums.RequestStatusPending {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("Request has already been '%s' and cannot be rejected again", request.Status))
	}

	ctx = s.log.WithRequestID(s.log.WithCampus(ctx, request.CampusName), request.ID.String())

	reason := input.Reason
	request.Status = enums.RequestStatusRejected
	request.Reason = &reason
	err = s.client.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).UpdateDecision(ctx, request)
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark request rejected")
	}

	s.log.Info(ctx, "request rejected")
	s.notify(ctx, request.YourMailID,
		mailer.RequestRejected(request.ID.String(), request.CampusName, request.DateOfRequest, reason))

	return viewOf(request), nil
}

func (s *service) ListAll(ctx context.Context) ([]RequestView, error) {
	requests, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list requests")
	}
	return viewsOf(requests), nil
}

func (s *service) ListByStatus(ctx context.Context, status enums.RequestStatus) ([]RequestView, error) {
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid status %q", status))
	}
	requests, err := s.repo.ListByStatus(ctx, status)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list requests by status")
	}
	return viewsOf(requests), nil
}

func (s *service) Counts(ctx context.Context) (*CountsView, error) {
	counts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count requests")
	}
	return &CountsView{
		Approved: counts[enums.RequestStatusApproved],
		Rejected: counts[enums.RequestStatusRejected],
		Pending:  counts[enums.RequestStatusPending],
	}, nil
}

func (s *service) IssuedItems(ctx context.Context) ([]RequestView, error) {
	requests, err := s.repo.ListByStatus(ctx, enums.RequestStatusApproved)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list issued requests")
	}
	return viewsOf(requests), nil
}

// notify delivers best effort. A mail failure is logged and swallowed so
// the state change it reports is never rolled back or re-surfaced.
func (s *service) notify(ctx context.Context, to string, msg mailer.Message) {
	if s.mail == nil {
		return
	}
	msg.To = to
	if err := s.mail.Send(ctx, msg); err != nil {
		s.log.Error(ctx, "notification email failed", err)
	}
}

func requestLines(items []models.RequestItem) []mailer.TemplateLine {
	lines := make([]mailer.TemplateLine, 0, len(items))
	for _, item := range items {
		lines = append(lines, mailer.TemplateLine{ItemName: item.ItemName, Qty: item.Qty})
	}
	return lines
}

func issuedLines(items []models.ReqIssue) []mailer.TemplateLine {
	lines := make([]mailer.TemplateLine, 0, len(items))
	for _, item := range items {
		lines = append(lines, mailer.TemplateLine{
			ItemName: item.ItemName,
			Qty:      item.Qty,
			ItemType: string(item.ItemType),
		})
	}
	return lines
}

func viewOf(request *models.Request) *RequestView {
	view := &RequestView{
		ID:             request.ID.String(),
		YourMailID:     request.YourMailID,
		CampusName:     request.CampusName,
		Reason:         request.Reason,
		DateOfRequest:  request.DateOfRequest,
		Status:         request.Status,
		DateOfApproval: request.DateOfApproval,
		Items:          make([]RequestLineView, 0, len(request.Items)),
		Issued:         make([]IssuedLineView, 0, len(request.Issued)),
	}
	for _, item := range request.Items {
		view.Items = append(view.Items, RequestLineView{
			ItemName:    item.ItemName,
			Qty:         item.Qty,
			Description: item.Description,
		})
	}
	for _, line := range request.Issued {
		view.Issued = append(view.Issued, IssuedLineView{
			ItemName: line.ItemName,
			Qty:      line.Qty,
			ItemType: line.ItemType,
		})
	}
	return view
}

func viewsOf(requests []models.Request) []RequestView {
	views := make([]RequestView, 0, len(requests))
	for i := range requests {
		views = append(views, *viewOf(&requests[i]))
	}
	return views
}
