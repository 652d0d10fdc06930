package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App       AppConfig
	Redis     RedisConfig
	Gemini    GeminiConfig
	Search    SearchConfig
	Dashboard DashboardConfig
	RateLimit RateLimitConfig
	Catalog   CatalogConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string   `envconfig:"MEDFINDER_APP_ENV" default:"dev"`
	Port         string   `envconfig:"MEDFINDER_APP_PORT" default:"8080"`
	LogLevel     string   `envconfig:"MEDFINDER_LOG_LEVEL" default:"info"`
	LogWarnStack bool     `envconfig:"MEDFINDER_LOG_WARN_STACK" default:"false"`
	CORSOrigins  []string `envconfig:"MEDFINDER_CORS_ORIGINS" default:"*"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// RedisConfig is optional. An empty URL disables the enrichment cache and
// falls back to in-process rate limiting.
type RedisConfig struct {
	URL          string        `envconfig:"MEDFINDER_REDIS_URL"`
	PoolSize     int           `envconfig:"MEDFINDER_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"MEDFINDER_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"MEDFINDER_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"MEDFINDER_REDIS_READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"MEDFINDER_REDIS_WRITE_TIMEOUT" default:"3s"`
}

func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != ""
}

type GeminiConfig struct {
	APIKey   string        `envconfig:"MEDFINDER_GEMINI_API_KEY"`
	Model    string        `envconfig:"MEDFINDER_GEMINI_MODEL" default:"gemini-3-flash-preview"`
	// BaseURL is empty for the public endpoint.
	BaseURL  string        `envconfig:"MEDFINDER_GEMINI_BASE_URL"`
	Timeout  time.Duration `envconfig:"MEDFINDER_GEMINI_TIMEOUT" default:"10s"`
	CacheTTL time.Duration `envconfig:"MEDFINDER_GEMINI_CACHE_TTL" default:"1h"`
}

type SearchConfig struct {
	SuggestionLimit     int           `envconfig:"MEDFINDER_SEARCH_SUGGESTION_LIMIT" default:"5"`
	SuggestionMinLength int           `envconfig:"MEDFINDER_SEARCH_SUGGESTION_MIN_LENGTH" default:"2"`
	TipWait             time.Duration `envconfig:"MEDFINDER_SEARCH_TIP_WAIT" default:"400ms"`
}

type DashboardConfig struct {
	StoreID    string        `envconfig:"MEDFINDER_DASHBOARD_STORE_ID" default:"s1"`
	LoginDelay time.Duration `envconfig:"MEDFINDER_DASHBOARD_LOGIN_DELAY" default:"1500ms"`
	SyncDelay  time.Duration `envconfig:"MEDFINDER_DASHBOARD_SYNC_DELAY" default:"1500ms"`
}

type RateLimitConfig struct {
	LoginWindow       time.Duration `envconfig:"MEDFINDER_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit   int           `envconfig:"MEDFINDER_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit      int           `envconfig:"MEDFINDER_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	EnrichmentWindow  time.Duration `envconfig:"MEDFINDER_RATE_LIMIT_ENRICHMENT_WINDOW" default:"1m"`
	EnrichmentIPLimit int           `envconfig:"MEDFINDER_RATE_LIMIT_ENRICHMENT_IP_LIMIT" default:"30"`
}

// CatalogConfig points at an optional JSON seed file. The built-in seed is
// used when Path is empty.
type CatalogConfig struct {
	Path string `envconfig:"MEDFINDER_CATALOG_PATH"`
}

func (c *Config) validate() error {
	if c.Search.SuggestionLimit <= 0 {
		return fmt.Errorf("%s must be positive", EnvSuggestionLimit)
	}
	if c.Search.SuggestionMinLength < 1 {
		return fmt.Errorf("%s must be at least 1", EnvSuggestionMinLength)
	}
	if c.Search.TipWait < 0 {
		return fmt.Errorf("%s must not be negative", EnvSearchTipWait)
	}
	if strings.TrimSpace(c.Dashboard.StoreID) == "" {
		return fmt.Errorf("%s is required", EnvDashboardStoreID)
	}
	return nil
}
