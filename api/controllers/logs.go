package controllers

import (
	"net/http"
	"strings"

	"github.com/freshstockhq/freshstock-backend/api/responses"
	"github.com/freshstockhq/freshstock-backend/api/validators"
	"github.com/freshstockhq/freshstock-backend/internal/auditlog"
	"github.com/freshstockhq/freshstock-backend/pkg/logger"
	"github.com/freshstockhq/freshstock-backend/pkg/pagination"
)

// ListLogs serves the audit trail. A date=YYYY-MM-DD parameter narrows the
// view to that UTC day; otherwise the full log is paged by cursor.
func ListLogs(svc auditlog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		day, hasDay, err := validators.ParseQueryDate(r, "date")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if hasDay {
			rows, err := svc.ListForDay(r.Context(), day, limit)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			responses.WriteSuccess(w, auditlog.ListResult{Items: rows})
			return
		}

		result, err := svc.ListAll(r.Context(), auditlog.ListParams{
			Limit:  limit,
			Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}
