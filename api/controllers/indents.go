package controllers

import (
	"net/http"

	"github.com/campusops/stockroom-backend/api/responses"
	"github.com/campusops/stockroom-backend/api/validators"
	"github.com/campusops/stockroom-backend/internal/indents"
	pkgerrors "github.com/campusops/stockroom-backend/pkg/errors"
	"github.com/campusops/stockroom-backend/pkg/logger"
)

// IndentNonConsumableCreate stores the indent and answers with its barcode
// label as a PNG.
func IndentNonConsumableCreate(svc indents.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "indents service unavailable"))
			return
		}

		var payload indents.CreateIndentInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, label, err := svc.CreateNonConsumable(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		w.Header().Set("X-Indent-Id", view.ID)
		responses.WritePNG(w, http.StatusCreated, label)
	}
}

func IndentConsumableCreate(svc indents.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "indents service unavailable"))
			return
		}

		var payload indents.CreateIndentInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.CreateConsumable(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, view)
	}
}

func IndentGet(svc indents.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "indents service unavailable"))
			return
		}

		id, err := validators.ParseUUIDParam(r, "indentId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}
