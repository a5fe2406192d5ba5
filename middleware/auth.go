package middleware

import (
	"context"
	"net/http"
	"os"
	"slices"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// The secret verifies tokens the fleet backend issued. This service never
// signs tokens of its own.
var jwtKey = []byte(os.Getenv("JWT_SECRET"))

// Claims is the payload the fleet backend puts in its tokens.
type Claims struct {
	Email string   `json:"email"`
	Name  string   `json:"name"`
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

// unexported type prevents collisions in context
type ctxKey int

const (
	userClaimsKey ctxKey = iota
	bearerTokenKey
)

// JWTMiddleware validates the backend-issued token and stashes the claims
// and the raw token in ctx. Handlers replay the raw token on their own
// backend calls.
func JWTMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		if auth == "" {
			http.Error(w, "missing Authorization header", http.StatusUnauthorized)
			return
		}
		parts := strings.SplitN(auth, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			http.Error(w, "invalid auth header", http.StatusUnauthorized)
			return
		}

		tokenStr := parts[1]
		token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
			return jwtKey, nil
		})
		if err != nil || !token.Valid {
			http.Error(w, "invalid or expired token", http.StatusUnauthorized)
			return
		}

		claims, ok := token.Claims.(*Claims)
		if !ok {
			http.Error(w, "invalid token claims", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), userClaimsKey, claims)
		ctx = context.WithValue(ctx, bearerTokenKey, tokenStr)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetClaims returns the claims stashed by JWTMiddleware, or nil.
func GetClaims(r *http.Request) *Claims {
	claims, _ := r.Context().Value(userClaimsKey).(*Claims)
	return claims
}

// GetToken returns the raw bearer token for replay against the backend.
func GetToken(r *http.Request) string {
	token, _ := r.Context().Value(bearerTokenKey).(string)
	return token
}

// RequireRole gates a subtree on one of the backend-assigned roles.
func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := GetClaims(r)
			if claims == nil || !slices.Contains(claims.Roles, role) {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
