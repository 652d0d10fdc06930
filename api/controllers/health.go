package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/medrelive/medfinder-backend/api/responses"
	"github.com/medrelive/medfinder-backend/pkg/config"
	pkgerrors "github.com/medrelive/medfinder-backend/pkg/errors"
	"github.com/medrelive/medfinder-backend/pkg/logger"
)

const readyTimeout = 2 * time.Second

// Pinger is a dependency that can report its own liveness.
type Pinger interface {
	Ping(context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-MedFinder-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings the optional cache. A nil pinger is reported as disabled
// rather than failing readiness.
func HealthReady(cfg *config.Config, logg *logger.Logger, cache Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-MedFinder-Env", cfg.App.Env)

		checks := map[string]string{"catalog": "ok", "redis": "disabled"}
		if cache != nil {
			ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
			defer cancel()
			if err := cache.Ping(ctx); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis unavailable").WithDetails(map[string]any{"dependency": "redis"}))
				return
			}
			checks["redis"] = "ok"
		}

		responses.WriteSuccess(w, map[string]any{"status": "ready", "checks": checks})
	}
}
