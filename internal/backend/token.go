package backend

import "context"

// TokenProvider supplies the bearer token for backend calls. The browser app
// read it from local storage; here it is an injected capability so tests and
// callers stay deterministic.
type TokenProvider interface {
	Token(ctx context.Context) string
}

// StaticToken always returns the same token (service-account style).
type StaticToken string

func (t StaticToken) Token(context.Context) string { return string(t) }

type tokenKey struct{}

// WithToken stores a per-request bearer token on the context.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// ContextToken reads the token from the request context, falling back to a
// static token when the request carried none.
type ContextToken struct {
	Fallback string
}

func (t ContextToken) Token(ctx context.Context) string {
	if v, ok := ctx.Value(tokenKey{}).(string); ok && v != "" {
		return v
	}
	return t.Fallback
}
