package rest

import (
	"briefing-service/internal/contextkeys"
	"briefing-service/internal/core/domain"
	"context"
	"net/http"
	"strings"
)

// TokenVerifier проверяет Bearer-токен и возвращает пользователя из claims.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (contextkeys.Viewer, error)
}

// NewAuthMiddleware определяет пользователя запроса.
// Bearer-токен проверяется, если задан verifier; иначе пользователь берется из
// X-User-ID и X-User-Role, которые ставит API Gateway после проверки токена.
func NewAuthMiddleware(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token, ok := bearerToken(r); ok && verifier != nil {
				viewer, err := verifier.Verify(r.Context(), token)
				if err != nil {
					WriteJSONError(w, http.StatusUnauthorized, "Authentication error: invalid token")
					return
				}
				next.ServeHTTP(w, r.WithContext(contextkeys.ContextWithViewer(r.Context(), viewer)))
				return
			}

			userID := strings.TrimSpace(r.Header.Get("X-User-ID"))
			if userID == "" {
				WriteJSONError(w, http.StatusUnauthorized, "Authentication error: User ID header is missing")
				return
			}

			viewer := contextkeys.Viewer{
				UserID: userID,
				Role:   domain.ParseViewerRole(r.Header.Get("X-User-Role")),
			}
			next.ServeHTTP(w, r.WithContext(contextkeys.ContextWithViewer(r.Context(), viewer)))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(h) <= len(prefix) || !strings.EqualFold(h[:len(prefix)], prefix) {
		return "", false
	}
	return strings.TrimSpace(h[len(prefix):]), true
}
