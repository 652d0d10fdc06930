package enrichment

import (
	"context"
	"fmt"
	"strings"
	"time"

	pkgerrors "github.com/medrelive/medfinder-backend/pkg/errors"
	"github.com/medrelive/medfinder-backend/pkg/gemini"
	"github.com/medrelive/medfinder-backend/pkg/logger"
	"github.com/medrelive/medfinder-backend/pkg/metrics"
	"golang.org/x/sync/singleflight"
)

const (
	KindHealthTip    = "health_tip"
	KindAlternatives = "alternatives"

	FallbackNoKey   = "Remember to take medicines only as prescribed by your doctor."
	FallbackFailure = "Your health is priority. Always verify stock with the store via phone."
	FallbackEmpty   = "Consult your physician before taking any new medication."

	healthTipPrompt    = "Provide a very short, helpful medical disclaimer and general health tip related to searching for %s. Keep it reassuring and brief. No bold markdown."
	alternativesPrompt = "List 3 common pharmaceutical alternatives or generic names for %s. Format as a simple comma-separated list. No other text."

	healthTipMaxTokens   = 100
	healthTipTemperature = 0.7

	defaultFlightTimeout = 15 * time.Second
)

// Generator produces text for a prompt.
type Generator interface {
	GenerateText(ctx context.Context, prompt string, opts gemini.GenerateOptions) (string, error)
}

// Cache stores successful generations.
type Cache interface {
	Lookup(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	EnrichmentKey(kind, subject string) string
}

// Service produces advisory text for searches. Its methods never fail: every
// problem resolves to a fixed fallback.
type Service interface {
	HealthTip(ctx context.Context, query string) string
	Alternatives(ctx context.Context, medicineName string) []string
}

type ServiceParams struct {
	// Generator is nil when no API key is configured.
	Generator     Generator
	Cache         Cache
	CacheTTL      time.Duration
	// FlightTimeout bounds one upstream generation. Defaults to 15s.
	FlightTimeout time.Duration
	Metrics       *metrics.EnrichmentMetrics
	Logger        *logger.Logger
}

type service struct {
	generator Generator
	cache     Cache
	cacheTTL      time.Duration
	flightTimeout time.Duration
	metrics       *metrics.EnrichmentMetrics
	logg          *logger.Logger
	group         singleflight.Group
}

func NewService(params ServiceParams) Service {
	flightTimeout := params.FlightTimeout
	if flightTimeout <= 0 {
		flightTimeout = defaultFlightTimeout
	}
	return &service{
		generator:     params.Generator,
		cache:         params.Cache,
		cacheTTL:      params.CacheTTL,
		flightTimeout: flightTimeout,
		metrics:       params.Metrics,
		logg:          params.Logger,
	}
}

func (s *service) HealthTip(ctx context.Context, query string) string {
	if s.generator == nil {
		s.metrics.IncOutcome(KindHealthTip, metrics.EnrichmentOutcomeFallbackNoKey)
		return FallbackNoKey
	}
	temp := healthTipTemperature
	text, cached, err := s.generate(ctx, KindHealthTip, query, fmt.Sprintf(healthTipPrompt, query), gemini.GenerateOptions{
		MaxOutputTokens: healthTipMaxTokens,
		Temperature:     &temp,
	})
	if err != nil {
		s.metrics.IncOutcome(KindHealthTip, metrics.EnrichmentOutcomeFallbackError)
		s.warn(ctx, KindHealthTip, "enrichment.fallback", err)
		return FallbackFailure
	}
	text = strings.TrimSpace(text)
	if text == "" {
		s.metrics.IncOutcome(KindHealthTip, metrics.EnrichmentOutcomeFallbackEmpty)
		return FallbackEmpty
	}
	s.metrics.IncOutcome(KindHealthTip, outcome(cached))
	return text
}

func (s *service) Alternatives(ctx context.Context, medicineName string) []string {
	if s.generator == nil {
		s.metrics.IncOutcome(KindAlternatives, metrics.EnrichmentOutcomeFallbackNoKey)
		return []string{}
	}
	text, cached, err := s.generate(ctx, KindAlternatives, medicineName, fmt.Sprintf(alternativesPrompt, medicineName), gemini.GenerateOptions{})
	if err != nil {
		s.metrics.IncOutcome(KindAlternatives, metrics.EnrichmentOutcomeFallbackError)
		s.warn(ctx, KindAlternatives, "enrichment.fallback", err)
		return []string{}
	}
	names := ParseList(text)
	if len(names) == 0 {
		s.metrics.IncOutcome(KindAlternatives, metrics.EnrichmentOutcomeFallbackEmpty)
		return names
	}
	s.metrics.IncOutcome(KindAlternatives, outcome(cached))
	return names
}

func outcome(cached bool) string {
	if cached {
		return metrics.EnrichmentOutcomeCached
	}
	return metrics.EnrichmentOutcomeGenerated
}

// ParseList splits a comma-separated answer into trimmed, non-empty names.
func ParseList(text string) []string {
	out := []string{}
	for _, token := range strings.Split(text, ",") {
		if token = strings.TrimSpace(token); token != "" {
			out = append(out, token)
		}
	}
	return out
}

// generate consults the cache, then the generator. Identical concurrent
// requests share one upstream call. Only non-empty answers are cached.
func (s *service) generate(ctx context.Context, kind, subject, prompt string, opts gemini.GenerateOptions) (string, bool, error) {
	subject = strings.TrimSpace(subject)
	key := kind + ":" + strings.ToLower(subject)
	if s.cache != nil {
		key = s.cache.EnrichmentKey(kind, subject)
		cached, ok, err := s.cache.Lookup(ctx, key)
		if err != nil {
			s.warn(ctx, kind, "enrichment.cache_lookup_failed", err)
		} else if ok {
			return cached, true, nil
		}
	}

	ch := s.group.DoChan(key, func() (any, error) {
		// the flight outlives any single caller
		flightCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.flightTimeout)
		defer cancel()

		started := time.Now()
		text, err := s.generator.GenerateText(flightCtx, prompt, opts)
		s.metrics.ObserveGeneration(kind, time.Since(started))
		if err != nil {
			return "", err
		}
		if s.cache != nil && strings.TrimSpace(text) != "" {
			if cacheErr := s.cache.Set(flightCtx, key, text, s.cacheTTL); cacheErr != nil {
				s.warn(ctx, kind, "enrichment.cache_store_failed", cacheErr)
			}
		}
		return text, nil
	})

	select {
	case <-ctx.Done():
		return "", false, pkgerrors.Wrap(pkgerrors.CodeDependency, ctx.Err(), "enrichment wait cancelled")
	case res := <-ch:
		if res.Err != nil {
			return "", false, res.Err
		}
		return res.Val.(string), false, nil
	}
}

func (s *service) warn(ctx context.Context, kind, msg string, err error) {
	if s.logg == nil {
		return
	}
	dump := pkgerrors.Dump(err)
	ctx = s.logg.WithFields(ctx, map[string]any{
		"kind":        kind,
		"error":       dump.TopMessage,
		"error_code":  dump.Code,
		"error_chain": dump.Chain,
	})
	s.logg.Warn(ctx, msg)
}
