package web

import (
	"context"
	"net/http"

	"github.com/JonMunkholm/leaderboard/internal/core"
	"github.com/JonMunkholm/leaderboard/internal/web/middleware"
)

// WithRequestMetadata adds the client address to ctx for load logging.
// r.RemoteAddr has already been resolved by TrustedRealIP.
func WithRequestMetadata(ctx context.Context, r *http.Request) context.Context {
	return core.ContextWithClientIP(ctx, middleware.ClientIP(r))
}

func requestMetadata(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(WithRequestMetadata(r.Context(), r)))
	})
}
