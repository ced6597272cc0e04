package http

import (
	"errors"
	"net/http"

	"github.com/golang-jwt/jwt/v5/request"

	"github.com/jawad-khan/xblock-group-project-v2/auth"
	"github.com/jawad-khan/xblock-group-project-v2/httpjson"
	"github.com/jawad-khan/xblock-group-project-v2/logger"
)

// getJwtAuthMiddleware stores validated claims in the request context.
// Requests without a token pass through anonymously.
func getJwtAuthMiddleware(jwtKey []byte) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, err := request.BearerExtractor{}.ExtractToken(r)
			if err != nil {
				if errors.Is(err, request.ErrNoTokenInRequest) {
					ctx := auth.WithClaims(r.Context(), nil)
					next.ServeHTTP(w, r.WithContext(ctx))
					return
				}
				httpjson.WriteErrorJson(w, err.Error(), http.StatusUnauthorized, ErrCodeUnauthorized)
				return
			}

			claims, err := auth.ValidateJWT(token, jwtKey)
			if err != nil {
				logger.FromContext(r.Context()).Info("rejected jwt", "error", err)
				httpjson.WriteErrorJson(w, err.Error(), http.StatusUnauthorized, ErrCodeUnauthorized)
				return
			}

			ctx := auth.WithClaims(r.Context(), claims)
			ctx = logger.WithLogger(ctx, logger.FromContext(ctx).With("user_id", claims.UserID))
			next.ServeHTTP(w, r.WithContext(ctx))
		}
		return http.HandlerFunc(hfn)
	}
}
