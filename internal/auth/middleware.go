package auth

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/seo-optimizer/backend/pkg/utils"
)

// Middleware extracts bearer-token claims and rejects requests without a
// subject. With a secret configured, tokens are verified as HS256; with an
// empty secret, claims are parsed without signature verification, which is
// acceptable only behind a trusted local setup.
func Middleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				utils.RespondError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}
			raw := strings.TrimPrefix(header, "Bearer ")

			claims, err := parseClaims(raw, secret)
			if err != nil || claims.Subject == "" {
				utils.RespondError(w, http.StatusUnauthorized, "invalid token")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

func parseClaims(raw, secret string) (Claims, error) {
	mapClaims := jwt.MapClaims{}

	if secret == "" {
		if _, _, err := jwt.NewParser().ParseUnverified(raw, mapClaims); err != nil {
			return Claims{}, err
		}
		return claimsFromMap(mapClaims), nil
	}

	_, err := jwt.ParseWithClaims(raw, mapClaims, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return Claims{}, err
	}
	return claimsFromMap(mapClaims), nil
}

func claimsFromMap(m jwt.MapClaims) Claims {
	return Claims{
		Subject: stringClaim(m, "sub"),
		Email:   stringClaim(m, "email"),
		Name:    stringClaim(m, "name"),
	}
}

func stringClaim(m jwt.MapClaims, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}
