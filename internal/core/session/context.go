package session

import "context"

type storeKey struct{}

// WithStore attaches s to ctx.
func WithStore(ctx context.Context, s *Store) context.Context {
	return context.WithValue(ctx, storeKey{}, s)
}

// FromContext returns the store attached by WithStore. A missing store means
// the session middleware was not installed, so it panics.
func FromContext(ctx context.Context) *Store {
	s, ok := ctx.Value(storeKey{}).(*Store)
	if !ok || s == nil {
		panic("session: no Store in context; is the session middleware installed?")
	}
	return s
}
