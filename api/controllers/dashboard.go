package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/medrelive/medfinder-backend/api/responses"
	"github.com/medrelive/medfinder-backend/api/validators"
	"github.com/medrelive/medfinder-backend/internal/dashboard"
	"github.com/medrelive/medfinder-backend/pkg/enums"
	pkgerrors "github.com/medrelive/medfinder-backend/pkg/errors"
	"github.com/medrelive/medfinder-backend/pkg/logger"
)

const maxFilterLength = 120

type statusUpdateRequest struct {
	Status string `json:"status" validate:"required"`
}

func dashboardUnavailable(w http.ResponseWriter, r *http.Request, logg *logger.Logger) {
	responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "dashboard service unavailable"))
}

func DashboardLogin(svc dashboard.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			dashboardUnavailable(w, r, logg)
			return
		}

		var body dashboard.LoginInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		session, err := svc.Login(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, session)
	}
}

func DashboardInventory(svc dashboard.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			dashboardUnavailable(w, r, logg)
			return
		}

		rows, err := svc.Inventory(r.Context(), validators.RawQuery(r, "filter", maxFilterLength))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

// DashboardUpdateStatus sets one record's status. Both codes and display labels are accepted.
func DashboardUpdateStatus(svc dashboard.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			dashboardUnavailable(w, r, logg)
			return
		}

		medicineID := strings.TrimSpace(chi.URLParam(r, "medicineId"))
		if medicineID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "medicine id is required"))
			return
		}

		var body statusUpdateRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		status, err := enums.ParseStockStatus(body.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status").WithDetails(map[string]any{"field": "status"}))
			return
		}

		row, err := svc.UpdateStatus(r.Context(), medicineID, status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, row)
	}
}

func DashboardSync(svc dashboard.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			dashboardUnavailable(w, r, logg)
			return
		}

		result, err := svc.Sync(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func DashboardStats(svc dashboard.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			dashboardUnavailable(w, r, logg)
			return
		}

		stats, err := svc.Stats(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, stats)
	}
}
