// Package app assembles the catalog, live inventory and services shared by
// the HTTP server and the CLI.
package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/medrelive/medfinder-backend/internal/catalog"
	"github.com/medrelive/medfinder-backend/internal/dashboard"
	"github.com/medrelive/medfinder-backend/internal/enrichment"
	"github.com/medrelive/medfinder-backend/internal/inventory"
	"github.com/medrelive/medfinder-backend/internal/search"
	"github.com/medrelive/medfinder-backend/internal/stores"
	"github.com/medrelive/medfinder-backend/pkg/config"
	"github.com/medrelive/medfinder-backend/pkg/gemini"
	"github.com/medrelive/medfinder-backend/pkg/logger"
	"github.com/medrelive/medfinder-backend/pkg/metrics"
	"github.com/medrelive/medfinder-backend/pkg/redis"
)

type App struct {
	Catalog    *catalog.Catalog
	Inventory  *inventory.Index
	Search     search.Service
	Stores     stores.Service
	Dashboard  dashboard.Service
	Enrichment enrichment.Service

	// Redis is nil when no URL is configured.
	Redis       *redis.Client
	Registry    *prometheus.Registry
	HTTPMetrics *metrics.HTTPMetrics
}

// Options switches off pieces a caller does not need.
type Options struct {
	// SkipRedis keeps the CLI usable without a reachable cache.
	SkipRedis bool
}

func New(ctx context.Context, cfg *config.Config, logg *logger.Logger, opts Options) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config required")
	}

	c, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	if logg != nil {
		logCtx := logg.WithFields(ctx, map[string]any{
			"medicines": len(c.Medicines()),
			"stores":    len(c.Stores()),
		})
		logg.Info(logCtx, "catalog loaded")
		for _, ref := range c.DanglingReferences() {
			logg.Warn(logg.WithMedicineID(logg.WithStoreID(ctx, ref.StoreID), ref.MedicineID), "catalog.dangling_reference")
		}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	a := &App{
		Catalog:     c,
		Inventory:   inventory.New(c),
		Registry:    reg,
		HTTPMetrics: metrics.NewHTTPMetrics(reg),
	}

	a.Search, err = search.NewService(search.ServiceParams{
		Catalog:   c,
		Inventory: a.Inventory,
		Suggest: search.SuggestOptions{
			Limit:     cfg.Search.SuggestionLimit,
			MinLength: cfg.Search.SuggestionMinLength,
		},
		Metrics: metrics.NewSearchMetrics(reg),
		Logger:  logg,
	})
	if err != nil {
		return nil, fmt.Errorf("search service: %w", err)
	}

	a.Stores, err = stores.NewService(c, a.Inventory)
	if err != nil {
		return nil, fmt.Errorf("store service: %w", err)
	}

	a.Dashboard, err = dashboard.NewService(dashboard.ServiceParams{
		StoreID:    cfg.Dashboard.StoreID,
		Catalog:    c,
		Inventory:  a.Inventory,
		LoginDelay: cfg.Dashboard.LoginDelay,
		SyncDelay:  cfg.Dashboard.SyncDelay,
		Logger:     logg,
	})
	if err != nil {
		return nil, fmt.Errorf("dashboard service: %w", err)
	}

	if cfg.Redis.Enabled() && !opts.SkipRedis {
		a.Redis, err = redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			return nil, fmt.Errorf("bootstrap redis: %w", err)
		}
	}

	params := enrichment.ServiceParams{
		CacheTTL:      cfg.Gemini.CacheTTL,
		FlightTimeout: cfg.Gemini.Timeout,
		Metrics:       metrics.NewEnrichmentMetrics(reg),
		Logger:        logg,
	}
	if a.Redis != nil {
		params.Cache = a.Redis
	}
	if cfg.Gemini.APIKey != "" {
		client, err := gemini.NewClient(cfg.Gemini.APIKey,
			gemini.WithBaseURL(cfg.Gemini.BaseURL),
			gemini.WithModel(cfg.Gemini.Model),
			gemini.WithHTTPClient(&http.Client{Timeout: cfg.Gemini.Timeout}),
		)
		if err != nil {
			return nil, multierr.Append(fmt.Errorf("gemini client: %w", err), a.Close())
		}
		params.Generator = client
	} else if logg != nil {
		logg.Warn(ctx, "gemini api key not set, enrichment uses fallback text")
	}
	a.Enrichment = enrichment.NewService(params)

	return a, nil
}

func (a *App) Close() error {
	if a == nil || a.Redis == nil {
		return nil
	}
	return a.Redis.Close()
}
