package router

import (
	"context"

	"github.com/spectra-io/client/internal/sessions"
)

// Guard lets view through when token is present and redirects to the login
// page otherwise. It keeps no state and is evaluated on every navigation.
func Guard(token string, view Page) Resolution {
	if len(token) == 0 {
		return Resolution{Redirect: LoginPath}
	}
	return Resolution{Page: view}
}

// RequireAuth wraps view so that it is only shown to an authenticated
// session. None of the default routes use it.
func RequireAuth(view Page) Page {
	return PageFunc(func(ctx context.Context) (string, error) {
		store, err := sessions.FromContext(ctx)
		if err != nil {
			return "", err
		}

		resolution := Guard(store.Token(), view)
		if resolution.IsRedirect() {
			return resolution.Redirect, nil
		}
		return resolution.Page.Run(ctx)
	})
}
