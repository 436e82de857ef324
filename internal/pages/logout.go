package pages

import (
	"context"

	"github.com/spectra-io/client/internal/router"
	"github.com/spectra-io/client/internal/sessions"
)

// Logout clears the session token and sends the user back to login. The
// server is not contacted.
func Logout(ctx context.Context) (string, error) {
	store, err := sessions.FromContext(ctx)
	if err != nil {
		return "", err
	}

	if err := store.SetToken(""); err != nil {
		return "", err
	}

	return router.LoginPath, nil
}
