package rest

import (
	"briefing-service/internal/contextkeys"
	"briefing-service/internal/core/domain"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubVerifier struct{}

func (stubVerifier) Verify(_ context.Context, token string) (contextkeys.Viewer, error) {
	if token != "good" {
		return contextkeys.Viewer{}, errors.New("bad token")
	}
	return contextkeys.Viewer{UserID: "from-token", Role: domain.RoleManager}, nil
}

func TestAuthMiddleware(t *testing.T) {
	var seen contextkeys.Viewer
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = contextkeys.ViewerFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name     string
		verifier TokenVerifier
		headers  map[string]string
		code     int
		want     contextkeys.Viewer
	}{
		{"headers", nil, map[string]string{"X-User-ID": "u1", "X-User-Role": "ADMIN"}, http.StatusOK,
			contextkeys.Viewer{UserID: "u1", Role: domain.RoleAdmin}},
		{"unknown role falls back to user", nil, map[string]string{"X-User-ID": "u1", "X-User-Role": "root"}, http.StatusOK,
			contextkeys.Viewer{UserID: "u1", Role: domain.RoleUser}},
		{"missing user", nil, nil, http.StatusUnauthorized, contextkeys.Viewer{}},
		{"token", stubVerifier{}, map[string]string{"Authorization": "Bearer good", "X-User-ID": "spoofed"}, http.StatusOK,
			contextkeys.Viewer{UserID: "from-token", Role: domain.RoleManager}},
		{"bad token", stubVerifier{}, map[string]string{"Authorization": "bearer bad"}, http.StatusUnauthorized, contextkeys.Viewer{}},
		{"token ignored without verifier", nil, map[string]string{"Authorization": "Bearer good", "X-User-ID": "u2"}, http.StatusOK,
			contextkeys.Viewer{UserID: "u2", Role: domain.RoleUser}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = contextkeys.Viewer{}
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			rec := httptest.NewRecorder()

			NewAuthMiddleware(tt.verifier)(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.code, rec.Code)
			assert.Equal(t, tt.want, seen)
		})
	}
}
