package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/pitstop-labs/pitstop/internal/api/response"
	"github.com/pitstop-labs/pitstop/internal/identity"
	"github.com/pitstop-labs/pitstop/internal/token"
)

const principalKey contextKey = "principal"

// Auth is middleware that extracts the bearer token from the Authorization
// header and verifies it. A missing or malformed header is 401 UNAUTHORIZED;
// a token that fails verification is 403 INVALID_TOKEN, so the two rejection
// modes stay distinguishable to clients.
func Auth(tokens *token.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r)
			if !ok {
				response.Err(w, http.StatusUnauthorized, response.CodeUnauthorized, "Authentication token is required")
				return
			}

			principal, err := tokens.Verify(raw)
			if err != nil {
				response.Err(w, http.StatusForbidden, response.CodeInvalidToken, "Invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), principalKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetPrincipal retrieves the authenticated principal from the request context.
func GetPrincipal(ctx context.Context) *identity.Principal {
	if p, ok := ctx.Value(principalKey).(*identity.Principal); ok {
		return p
	}
	return nil
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}
