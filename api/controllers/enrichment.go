package controllers

import (
	"net/http"

	"github.com/medrelive/medfinder-backend/api/responses"
	"github.com/medrelive/medfinder-backend/api/validators"
	"github.com/medrelive/medfinder-backend/internal/enrichment"
	pkgerrors "github.com/medrelive/medfinder-backend/pkg/errors"
	"github.com/medrelive/medfinder-backend/pkg/logger"
)

// EnrichmentHealthTip always answers 200; upstream failures degrade to a fixed tip.
func EnrichmentHealthTip(svc enrichment.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "enrichment service unavailable"))
			return
		}

		query := validators.SanitizeString(r.URL.Query().Get("q"), maxQueryLength)
		responses.WriteSuccess(w, map[string]string{
			"query": query,
			"tip":   svc.HealthTip(r.Context(), query),
		})
	}
}

func EnrichmentAlternatives(svc enrichment.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "enrichment service unavailable"))
			return
		}

		name := validators.SanitizeString(r.URL.Query().Get("name"), maxQueryLength)
		responses.WriteSuccess(w, map[string]any{
			"name":         name,
			"alternatives": svc.Alternatives(r.Context(), name),
		})
	}
}
