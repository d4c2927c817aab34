package controllers

import (
	"net/http"
	"time"

	"github.com/salestrack/salestrack-backend/api/middleware"
	"github.com/salestrack/salestrack-backend/api/responses"
	"github.com/salestrack/salestrack-backend/api/validators"
	"github.com/salestrack/salestrack-backend/internal/stats"
	pkgerrors "github.com/salestrack/salestrack-backend/pkg/errors"
	"github.com/salestrack/salestrack-backend/pkg/logger"
)

// StatsSummary aggregates the caller's validated records. Year defaults to
// the current year; month narrows to one period when provided.
func StatsSummary(svc stats.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := middleware.IdentityFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
			return
		}

		year, err := validators.ParseQueryInt(r, "year", time.Now().UTC().Year(), 2020, 2030)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		month, err := validators.ParseOptionalQueryInt(r, "month", 1, 12)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		summary, err := svc.Summary(r.Context(), identity.ID, stats.SummaryFilters{
			Year:  year,
			Month: month,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, summary)
	}
}
