package validators

import (
	"net/http"
	"strconv"
	"strings"

	pkgerrors "github.com/medrelive/medfinder-backend/pkg/errors"
)

// RequireQuery returns the trimmed, length-capped value of a query parameter,
// or a validation error when it is blank.
func RequireQuery(r *http.Request, key string, maxLen int) (string, error) {
	value := SanitizeString(r.URL.Query().Get(key), maxLen)
	if value == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, key+" is required").WithDetails(map[string]any{"field": key})
	}
	return value, nil
}

// RawQuery returns a query parameter as typed, capped at maxLen bytes.
func RawQuery(r *http.Request, key string, maxLen int) string {
	value := r.URL.Query().Get(key)
	if maxLen > 0 && len(value) > maxLen {
		return value[:maxLen]
	}
	return value
}

func ParseQueryInt(r *http.Request, key string, defaultVal, min, max int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return defaultVal, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be numeric").WithDetails(map[string]any{"field": key})
	}
	if value < min || value > max {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter out of range").WithDetails(map[string]any{"field": key, "min": min, "max": max})
	}
	return value, nil
}
