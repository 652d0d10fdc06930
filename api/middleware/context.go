package middleware

import (
	"context"
	"net/http"

	"github.com/medrelive/medfinder-backend/pkg/logger"
)

type contextKey string

const ctxStoreID contextKey = "store_id"

func StoreIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxStoreID).(string); ok {
		return v
	}
	return ""
}

// WithStoreID injects the store identifier into the context for downstream handlers.
func WithStoreID(ctx context.Context, storeID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxStoreID, storeID)
}

// StoreContext scopes every request under it to one store, for handlers and logs.
func StoreContext(storeID string, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := WithStoreID(r.Context(), storeID)
			if logg != nil {
				ctx = logg.WithStoreID(ctx, storeID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
