package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type accountKeyType string

const accountKey accountKeyType = "account"

// SignToken mints a bearer token for an account. Used by the operator CLI
// and tests; any token signer sharing the secret is accepted.
func SignToken(secret, account string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub": account,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// Auth verifies the bearer token and stores the subject account in the
// request context. The account string is the caller identity for every
// ledger operation.
func Auth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "missing authorization", http.StatusUnauthorized)
				return
			}
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				http.Error(w, "invalid authorization", http.StatusUnauthorized)
				return
			}
			token, err := jwt.Parse(parts[1], func(t *jwt.Token) (any, error) {
				return []byte(secret), nil
			}, jwt.WithValidMethods([]string{"HS256"}))
			if err != nil || !token.Valid {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}
			sub, err := token.Claims.GetSubject()
			if err != nil || sub == "" {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r.WithContext(ContextWithAccount(r.Context(), sub)))
		})
	}
}

// AccountFromContext returns the authenticated account, empty if absent.
func AccountFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(accountKey).(string); ok {
		return v
	}
	return ""
}

// ContextWithAccount injects an account identity, mainly for tests.
func ContextWithAccount(ctx context.Context, account string) context.Context {
	if strings.TrimSpace(account) == "" {
		return ctx
	}
	return context.WithValue(ctx, accountKey, account)
}
