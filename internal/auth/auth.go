// Package auth attaches the authenticated user to the request context
// based on an opaque bearer token. Token storage lives in the models
// package; resolution is injected at bootstrap so this package stays
// free of database imports.
package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/Enodevs/speedvoice-backend/internal/httpx"
)

type ctxKey string

const userIDCtxKey = ctxKey("userID")

// TokenResolver maps a bearer token key to a user id.
// Set it during app bootstrap via SetTokenResolver.
type TokenResolver func(ctx context.Context, key string) (uint, bool)

var resolver TokenResolver

// SetTokenResolver configures the global resolver used by Middleware.
func SetTokenResolver(r TokenResolver) { resolver = r }

// MintKey returns a new opaque token value: 32 bytes of entropy,
// URL-safe encoding.
func MintKey() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	return base64.RawURLEncoding.EncodeToString(buf)
}

// WithUserID stores the user id in the context.
func WithUserID(ctx context.Context, userID uint) context.Context {
	return context.WithValue(ctx, userIDCtxKey, userID)
}

// UserIDFromContext extracts the authenticated user id.
func UserIDFromContext(ctx context.Context) (uint, bool) {
	v := ctx.Value(userIDCtxKey)
	if v == nil {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// BearerToken extracts the token from the Authorization header.
func BearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	if h == "" {
		return "", false
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

// Middleware attaches the user id to the request context when a valid
// bearer token is present. It never rejects; RequireAuth does that.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if key, ok := BearerToken(r); ok && resolver != nil {
			if uid, ok := resolver(r.Context(), key); ok {
				r = r.WithContext(WithUserID(r.Context(), uid))
			}
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAuth rejects requests that carry no authenticated user.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := UserIDFromContext(r.Context()); !ok {
			httpx.JSONError(w, http.StatusUnauthorized, "unauthorized", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}
