package config

const (
	EnvPrefix = "MEDFINDER"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv           = "MEDFINDER_APP_ENV"
	EnvPort             = "MEDFINDER_APP_PORT"
	EnvLogLevel         = "MEDFINDER_LOG_LEVEL"
	EnvRedisURL         = "MEDFINDER_REDIS_URL"
	EnvGeminiAPIKey     = "MEDFINDER_GEMINI_API_KEY"
	EnvGeminiModel      = "MEDFINDER_GEMINI_MODEL"
	EnvSearchTipWait    = "MEDFINDER_SEARCH_TIP_WAIT"
	EnvCatalogPath      = "MEDFINDER_CATALOG_PATH"
	EnvDashboardStoreID = "MEDFINDER_DASHBOARD_STORE_ID"

	EnvSuggestionLimit     = "MEDFINDER_SEARCH_SUGGESTION_LIMIT"
	EnvSuggestionMinLength = "MEDFINDER_SEARCH_SUGGESTION_MIN_LENGTH"
)
