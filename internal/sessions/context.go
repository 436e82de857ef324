package sessions

import (
	"context"
	"fmt"
)

// ConfigurationError reports a composition mistake, such as reading the
// store from a context it was never mounted on. It is not meant to be
// recovered from.
type ConfigurationError struct {
	Op string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s: session store used outside provider", e.Op)
}

type storeContextKey struct{}

// WithStore mounts store on ctx for everything downstream.
func WithStore(ctx context.Context, store *Store) context.Context {
	return context.WithValue(ctx, storeContextKey{}, store)
}

func FromContext(ctx context.Context) (*Store, error) {
	if ctx != nil {
		if store, ok := ctx.Value(storeContextKey{}).(*Store); ok && store != nil {
			return store, nil
		}
	}
	return nil, &ConfigurationError{Op: "sessions.FromContext"}
}
