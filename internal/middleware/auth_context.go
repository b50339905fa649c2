package middleware

import (
	"context"
	"net/http"
	"strings"

	"care-companion/internal/platform/apperr"
	"care-companion/internal/platform/logger"
	"care-companion/internal/platform/respond"
	"care-companion/internal/ports/auth"
)

type ctxKey string

const claimsKey ctxKey = "claims"

// AuthContext:
// - Si viene Bearer token válido => setea claims en el contexto.
// - Si no hay token o es inválido, el request sigue sin claims; las rutas
//   protegidas usan RequireRole para cortar con 401/403.
func AuthContext(verifier auth.AuthVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if verifier == nil {
				next.ServeHTTP(w, r)
				return
			}

			token := bearerToken(r.Header.Get("Authorization"))
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := verifier.Verify(r.Context(), token)
			if err != nil {
				logger.FromContext(r.Context()).Debug("token rejected", map[string]any{"error": err.Error()})
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			ctx = logger.WithContext(ctx, logger.FromContext(ctx).With(map[string]any{
				"user_id": claims.UserID,
				"role":    claims.Role,
			}))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole exige claims y, si se pasan roles, que el rol del token sea uno de ellos.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := GetClaims(r.Context())
			if !ok || strings.TrimSpace(claims.UserID) == "" {
				respond.Error(w, r, apperr.New(apperr.KindUnauthorized, "authorization token missing or invalid"))
				return
			}
			if len(roles) > 0 && !contains(roles, claims.Role) {
				respond.Error(w, r, apperr.New(apperr.KindForbidden, "forbidden for role "+claims.Role))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func GetClaims(ctx context.Context) (auth.Claims, bool) {
	v := ctx.Value(claimsKey)
	if v == nil {
		return auth.Claims{}, false
	}
	c, ok := v.(auth.Claims)
	return c, ok
}

// WithClaims se usa en tests de handlers sin pasar por un token real.
func WithClaims(ctx context.Context, c auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, c)
}

func bearerToken(authHeader string) string {
	if strings.TrimSpace(authHeader) == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
