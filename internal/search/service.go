package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/medrelive/medfinder-backend/internal/catalog"
	"github.com/medrelive/medfinder-backend/internal/inventory"
	pkgerrors "github.com/medrelive/medfinder-backend/pkg/errors"
	"github.com/medrelive/medfinder-backend/pkg/logger"
	"github.com/medrelive/medfinder-backend/pkg/metrics"
)

// Result is the outcome of one search. Medicine is nil when nothing matched;
// that is a valid, non-error outcome with no entries.
type Result struct {
	Query    string
	Medicine *catalog.Medicine
	Entries  []inventory.Entry
}

// NoResults reports whether the search produced no stores.
func (r Result) NoResults() bool {
	return len(r.Entries) == 0
}

// Service resolves queries against the catalog and inventory index.
type Service interface {
	Search(ctx context.Context, query string) (*Result, error)
	Suggest(ctx context.Context, input string) []string
}

type inventoryLookup interface {
	Lookup(medicineID string) []inventory.Entry
}

type ServiceParams struct {
	Catalog   *catalog.Catalog
	Inventory inventoryLookup
	Suggest   SuggestOptions
	Metrics   *metrics.SearchMetrics
	Logger    *logger.Logger
}

type service struct {
	catalog *catalog.Catalog
	matcher *Matcher
	index   inventoryLookup
	suggest SuggestOptions
	metrics *metrics.SearchMetrics
	logg    *logger.Logger
}

func NewService(params ServiceParams) (Service, error) {
	if params.Catalog == nil {
		return nil, fmt.Errorf("catalog required")
	}
	if params.Inventory == nil {
		return nil, fmt.Errorf("inventory index required")
	}
	return &service{
		catalog: params.Catalog,
		matcher: NewMatcher(params.Catalog),
		index:   params.Inventory,
		suggest: params.Suggest.withDefaults(),
		metrics: params.Metrics,
		logg:    params.Logger,
	}, nil
}

// Search trims the query and rejects it when empty. The result keeps the
// index's store order.
func (s *service) Search(ctx context.Context, query string) (*Result, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		s.metrics.ObserveSearch(metrics.SearchOutcomeRejected, 0)
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "query is required").
			WithDetails(map[string]any{"field": "q"})
	}

	result := &Result{Query: trimmed, Entries: []inventory.Entry{}}
	med, ok := s.matcher.Match(trimmed)
	if !ok {
		s.metrics.ObserveSearch(metrics.SearchOutcomeNoMatch, 0)
		s.debug(ctx, trimmed, "search.no_match")
		return result, nil
	}
	result.Medicine = &med

	for _, entry := range s.index.Lookup(med.ID) {
		if entry.Record.MedicineID != med.ID {
			continue
		}
		if _, live := s.catalog.Medicine(entry.Record.MedicineID); !live {
			continue
		}
		result.Entries = append(result.Entries, entry)
	}

	s.metrics.ObserveSearch(metrics.SearchOutcomeMatched, len(result.Entries))
	s.debug(s.logCtx(ctx, med.ID), trimmed, "search.matched")
	return result, nil
}

func (s *service) Suggest(ctx context.Context, input string) []string {
	s.metrics.IncSuggestions()
	return s.matcher.Suggest(input, s.suggest)
}

func (s *service) logCtx(ctx context.Context, medicineID string) context.Context {
	if s.logg == nil {
		return ctx
	}
	return s.logg.WithMedicineID(ctx, medicineID)
}

func (s *service) debug(ctx context.Context, query, msg string) {
	if s.logg == nil {
		return
	}
	s.logg.Debug(s.logg.WithField(ctx, "query", query), msg)
}
