package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/medrelive/medfinder-backend/api/responses"
	"github.com/medrelive/medfinder-backend/api/validators"
	"github.com/medrelive/medfinder-backend/internal/search"
	pkgerrors "github.com/medrelive/medfinder-backend/pkg/errors"
	"github.com/medrelive/medfinder-backend/pkg/logger"
)

const maxQueryLength = 120

type healthTipper interface {
	HealthTip(ctx context.Context, query string) string
}

// Search resolves ?q= and lists the stores carrying the matched medicine. A
// health tip is requested alongside the lookup and included only when it
// arrives within tipWait.
func Search(svc search.Service, tips healthTipper, tipWait time.Duration, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "search service unavailable"))
			return
		}

		query, err := validators.RequireQuery(r, "q", maxQueryLength)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var tipCh <-chan string
		if tips != nil && tipWait > 0 {
			tipCh = fetchTip(r.Context(), tips, query)
		}

		result, err := svc.Search(r.Context(), query)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		out := search.FromResult(result)
		if tipCh != nil {
			if tip, ok := awaitTip(r.Context(), tipCh, tipWait); ok {
				out.HealthTip = &tip
			} else if logg != nil {
				logg.Debug(logg.WithField(r.Context(), "query", query), "search.tip_omitted")
			}
		}
		responses.WriteSuccess(w, out)
	}
}

// fetchTip runs detached from request cancellation so a slow upstream still
// fills the cache for the follow-up enrichment call.
func fetchTip(ctx context.Context, tips healthTipper, query string) <-chan string {
	ch := make(chan string, 1)
	go func() {
		ch <- tips.HealthTip(context.WithoutCancel(ctx), query)
	}()
	return ch
}

func awaitTip(ctx context.Context, ch <-chan string, wait time.Duration) (string, bool) {
	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case tip := <-ch:
		return tip, true
	case <-timer.C:
		return "", false
	case <-ctx.Done():
		return "", false
	}
}

// SearchSuggestions returns autocomplete names for ?input= as typed.
func SearchSuggestions(svc search.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "search service unavailable"))
			return
		}

		input := validators.RawQuery(r, "input", maxQueryLength)
		responses.WriteSuccess(w, map[string]any{
			"input":       input,
			"suggestions": svc.Suggest(r.Context(), input),
		})
	}
}
