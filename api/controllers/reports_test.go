package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/campusops/stockroom-backend/internal/requests"
	"github.com/campusops/stockroom-backend/pkg/enums"
	pkgerrors "github.com/campusops/stockroom-backend/pkg/errors"
)

type stubRequestsService struct {
	views  []requests.RequestView
	counts requests.CountsView
	err    error
}

func (s *stubRequestsService) Create(context.Context, requests.CreateRequestInput) (*requests.RequestView, error) {
	panic("not used")
}

func (s *stubRequestsService) Get(context.Context, uuid.UUID, string) (*requests.RequestView, error) {
	panic("not used")
}

func (s *stubRequestsService) History(context.Context, string) ([]requests.RequestView, error) {
	return s.views, s.err
}

func (s *stubRequestsService) Issue(context.Context, uuid.UUID, requests.IssueInput) (*requests.RequestView, error) {
	panic("not used")
}

func (s *stubRequestsService) Reject(context.Context, uuid.UUID, requests.RejectInput) (*requests.RequestView, error) {
	panic("not used")
}

func (s *stubRequestsService) ListAll(context.Context) ([]requests.RequestView, error) {
	return s.views, s.err
}

func (s *stubRequestsService) ListByStatus(context.Context, enums.RequestStatus) ([]requests.RequestView, error) {
	return s.views, s.err
}

func (s *stubRequestsService) Counts(context.Context) (*requests.CountsView, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &s.counts, nil
}

func (s *stubRequestsService) IssuedItems(context.Context) ([]requests.RequestView, error) {
	return s.views, s.err
}

func TestRequestsAllEmptyIs404(t *testing.T) {
	handler := RequestsAll(&stubRequestsService{}, nil)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/vc/requests", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rec.Code)
	}
	var payload struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if payload.Error.Message != "No requests found" {
		t.Fatalf("unexpected message %q", payload.Error.Message)
	}
}

func TestRequestsByStatusEmptyNamesTheStatus(t *testing.T) {
	handler := RequestsByStatus(&stubRequestsService{}, enums.RequestStatusApproved, nil)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/vc/requests/approved", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rec.Code)
	}
	var payload struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if payload.Error.Message != "No Approved requests found" {
		t.Fatalf("unexpected message %q", payload.Error.Message)
	}
}

func TestRequestCountsPassesThrough(t *testing.T) {
	handler := RequestCounts(&stubRequestsService{
		counts: requests.CountsView{Approved: 2, Rejected: 1, Pending: 4},
	}, nil)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/vc/counts", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	var envelope struct {
		Data requests.CountsView `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if envelope.Data.Pending != 4 || envelope.Data.Approved != 2 {
		t.Fatalf("unexpected counts %+v", envelope.Data)
	}
}

func TestServiceErrorsMapThroughEnvelope(t *testing.T) {
	handler := RequestsAll(&stubRequestsService{
		err: pkgerrors.New(pkgerrors.CodeDependency, "db down"),
	}, nil)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/vc/requests", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 got %d", rec.Code)
	}
}
