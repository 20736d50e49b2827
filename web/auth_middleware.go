package web

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

type contextKey string

const viewerIdKey contextKey = "viewerId"

// AuthMiddleware extracts the viewer id from an HS256 bearer token.
// Token issuance lives elsewhere; this side only verifies.
type AuthMiddleware struct {
	secret []byte
	logger *zap.Logger
}

func NewAuthMiddleware(secret string, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{secret: []byte(secret), logger: logger}
}

// RequireAuth rejects requests without a valid token.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		viewerId := m.viewerFromRequest(r)
		if len(viewerId) == 0 {
			writeJSON(w, http.StatusUnauthorized, errorBody{Error: "authentication required"})
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), viewerIdKey, viewerId)))
	})
}

// OptionalAuth attaches the viewer id when a valid token is present and
// lets anonymous requests through with none.
func (m *AuthMiddleware) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if viewerId := m.viewerFromRequest(r); len(viewerId) > 0 {
			r = r.WithContext(context.WithValue(r.Context(), viewerIdKey, viewerId))
		}
		next.ServeHTTP(w, r)
	})
}

func (m *AuthMiddleware) viewerFromRequest(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	tokenString := strings.TrimPrefix(header, "Bearer ")

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return ""
	}

	subject, err := token.Claims.GetSubject()
	if err != nil {
		m.logger.Warn("Token without subject", zap.Error(err))
		return ""
	}
	return subject
}

// ViewerId returns the authenticated viewer id, or "" for anonymous
// requests.
func ViewerId(r *http.Request) string {
	viewerId, _ := r.Context().Value(viewerIdKey).(string)
	return viewerId
}
