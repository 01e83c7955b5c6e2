// Package auth resolves identity-provider claims for each request. Token
// issuance and session management live outside this service; only the
// resolved claims are consumed here.
package auth

import "context"

// Claims carries the identity fields the service consumes. Subject is the
// stable auth id; email and name may be absent from access tokens.
type Claims struct {
	Subject string
	Email   string
	Name    string
}

type contextKey struct{}

// WithClaims stores claims on the request context.
func WithClaims(ctx context.Context, claims Claims) context.Context {
	return context.WithValue(ctx, contextKey{}, claims)
}

// FromContext retrieves the claims resolved by the middleware.
func FromContext(ctx context.Context) (Claims, bool) {
	claims, ok := ctx.Value(contextKey{}).(Claims)
	return claims, ok
}
