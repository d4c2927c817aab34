package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/salestrack/salestrack-backend/api/middleware"
	"github.com/salestrack/salestrack-backend/api/responses"
	"github.com/salestrack/salestrack-backend/api/validators"
	"github.com/salestrack/salestrack-backend/internal/performance"
	"github.com/salestrack/salestrack-backend/pkg/enums"
	pkgerrors "github.com/salestrack/salestrack-backend/pkg/errors"
	"github.com/salestrack/salestrack-backend/pkg/logger"
	"github.com/salestrack/salestrack-backend/pkg/pagination"
)

// PerformanceUpsert creates or replaces the caller's record for one period.
// Responds 201 when a record was created and 200 when an existing one was
// updated.
func PerformanceUpsert(svc performance.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := middleware.IdentityFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
			return
		}

		var body performance.UpsertRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, created, err := svc.Upsert(r.Context(), identity.ID, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status := http.StatusOK
		if created {
			status = http.StatusCreated
		}
		responses.WriteSuccessStatus(w, status, record)
	}
}

// PerformanceList returns the caller's own records, filtered and paginated.
func PerformanceList(svc performance.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := middleware.IdentityFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
			return
		}

		filters, err := parseListFilters(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		params, err := parsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ListForUser(r.Context(), identity.ID, filters, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// PerformanceListAll returns every user's records; the route restricts it
// to admins and managers.
func PerformanceListAll(svc performance.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := parsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ListAll(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

func PerformanceGet(svc performance.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, recordID, err := recordRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.Get(r.Context(), identity.ID, recordID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, record)
	}
}

func PerformanceDelete(svc performance.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, recordID, err := recordRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), identity.ID, recordID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessMessage(w, "record deleted")
	}
}

func recordRequest(r *http.Request) (middleware.Identity, uuid.UUID, error) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		return middleware.Identity{}, uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials")
	}
	recordID, err := uuid.Parse(chi.URLParam(r, "recordId"))
	if err != nil {
		return middleware.Identity{}, uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid record id")
	}
	return identity, recordID, nil
}

func parseListFilters(r *http.Request) (performance.ListFilters, error) {
	var filters performance.ListFilters

	year, err := validators.ParseOptionalQueryInt(r, "year", 2020, 2030)
	if err != nil {
		return filters, err
	}
	filters.Year = year

	month, err := validators.ParseOptionalQueryInt(r, "month", 1, 12)
	if err != nil {
		return filters, err
	}
	filters.Month = month

	if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
		status, err := enums.ParseRecordStatus(raw)
		if err != nil {
			return filters, pkgerrors.New(pkgerrors.CodeValidation, "invalid status filter").
				WithDetails(map[string]string{"status": "must be draft or validated"})
		}
		filters.Status = &status
	}

	return filters, nil
}

func parsePagination(r *http.Request) (pagination.Params, error) {
	page, err := validators.ParseQueryInt(r, "page", 1, 1, 1<<30)
	if err != nil {
		return pagination.Params{}, err
	}
	limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
	if err != nil {
		return pagination.Params{}, err
	}
	return pagination.Params{Page: page, Limit: limit}, nil
}
