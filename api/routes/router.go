package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/medrelive/medfinder-backend/api/controllers"
	"github.com/medrelive/medfinder-backend/api/middleware"
	"github.com/medrelive/medfinder-backend/api/responses"
	"github.com/medrelive/medfinder-backend/internal/catalog"
	"github.com/medrelive/medfinder-backend/internal/dashboard"
	"github.com/medrelive/medfinder-backend/internal/enrichment"
	"github.com/medrelive/medfinder-backend/internal/search"
	"github.com/medrelive/medfinder-backend/internal/stores"
	"github.com/medrelive/medfinder-backend/pkg/config"
	pkgerrors "github.com/medrelive/medfinder-backend/pkg/errors"
	"github.com/medrelive/medfinder-backend/pkg/logger"
	"github.com/medrelive/medfinder-backend/pkg/metrics"
)

type rateStore interface {
	FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error)
}

// Deps are the services the router exposes. Cache may be nil when Redis is
// disabled; Gatherer nil skips the /metrics endpoint.
type Deps struct {
	Catalog     *catalog.Catalog
	Search      search.Service
	Stores      stores.Service
	Dashboard   dashboard.Service
	Enrichment  enrichment.Service
	Cache       controllers.Pinger
	RateStore   rateStore
	HTTPMetrics *metrics.HTTPMetrics
	Gatherer    prometheus.Gatherer
}

func NewRouter(cfg *config.Config, logg *logger.Logger, deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.CORS(cfg.App.CORSOrigins),
		middleware.Logging(logg),
		middleware.Metrics(deps.HTTPMetrics),
	)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "route not found"))
	})

	loginPolicy := middleware.NewRateLimitPolicy(
		"login",
		cfg.RateLimit.LoginWindow,
		cfg.RateLimit.LoginIPLimit,
		cfg.RateLimit.LoginEmailLimit,
	)
	enrichmentPolicy := middleware.NewRateLimitPolicy(
		"enrichment",
		cfg.RateLimit.EnrichmentWindow,
		cfg.RateLimit.EnrichmentIPLimit,
		0,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.Cache))
	})

	if deps.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/medicines", controllers.MedicineList(deps.Catalog, logg))
		r.Get("/medicines/quick-tags", controllers.MedicineQuickTags())

		r.Get("/search", controllers.Search(deps.Search, deps.Enrichment, cfg.Search.TipWait, logg))
		r.Get("/search/suggestions", controllers.SearchSuggestions(deps.Search, logg))

		r.Get("/stores", controllers.StoreList(deps.Stores, logg))
		r.Get("/stores/{storeId}", controllers.StoreDetail(deps.Stores, logg))

		r.Route("/enrichment", func(r chi.Router) {
			r.Use(middleware.RateLimit(enrichmentPolicy, deps.RateStore, logg))
			r.Get("/health-tip", controllers.EnrichmentHealthTip(deps.Enrichment, logg))
			r.Get("/alternatives", controllers.EnrichmentAlternatives(deps.Enrichment, logg))
		})

		r.Route("/dashboard", func(r chi.Router) {
			r.Use(middleware.StoreContext(cfg.Dashboard.StoreID, logg))
			r.With(middleware.RateLimit(loginPolicy, deps.RateStore, logg)).Post("/login", controllers.DashboardLogin(deps.Dashboard, logg))
			r.Get("/inventory", controllers.DashboardInventory(deps.Dashboard, logg))
			r.Patch("/inventory/{medicineId}", controllers.DashboardUpdateStatus(deps.Dashboard, logg))
			r.Post("/sync", controllers.DashboardSync(deps.Dashboard, logg))
			r.Get("/stats", controllers.DashboardStats(deps.Dashboard, logg))
		})
	})

	return r
}
