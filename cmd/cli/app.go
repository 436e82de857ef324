package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/spectra-io/client/internal/api"
	"github.com/spectra-io/client/internal/pages"
	"github.com/spectra-io/client/internal/router"
	"github.com/spectra-io/client/internal/sessions"
)

// application is everything a command needs once configuration is loaded.
type application struct {
	client   *api.Client
	storage  *sessions.FileStorage
	store    *sessions.Store
	prompter *pages.HuhPrompter
	out      io.Writer
}

func newApplication(cmd *cobra.Command) (*application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration has not been loaded")
	}

	baseURL := cfg.GetAPIBaseURL()
	client := api.New(baseURL, api.WithDebug(cfg.API.Debug))

	storage, err := sessions.NewFileStorage(cfg.GetStoragePath(), baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open session storage: %w", err)
	}

	store, err := sessions.NewStore(storage, client)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"path":          storage.Path(),
		"authenticated": store.Authenticated(),
	}).Debugln("Session loaded")

	return &application{
		client:   client,
		storage:  storage,
		store:    store,
		prompter: pages.NewHuhPrompter(cmd.InOrStdin(), cmd.OutOrStdout()),
		out:      cmd.OutOrStdout(),
	}, nil
}

func (a *application) router() *router.Router {
	return router.New(
		a.store,
		pages.NewSignup(a.client, a.prompter),
		pages.NewLogin(a.client, a.prompter),
	)
}

// context mounts the session store on ctx for code that runs outside the
// router.
func (a *application) context(ctx context.Context) context.Context {
	return sessions.WithStore(ctx, a.store)
}

// runNavigation drives the page router from start until the user quits or
// reaches the dashboard.
func runNavigation(cmd *cobra.Command, start string) error {
	app, err := newApplication(cmd)
	if err != nil {
		return err
	}

	final, err := app.router().Serve(cmd.Context(), start)
	if err != nil {
		if cmd.Context().Err() != nil {
			fmt.Fprintln(app.out, warningStyle.Render("Cancelled."))
			return nil
		}
		return err
	}

	if final == router.DashboardPath {
		fmt.Fprintln(app.out)
		fmt.Fprintln(app.out, titleStyle.Render("Dashboard"))
		fmt.Fprintf(app.out, "Session stored for %s\n", cfg.GetAPIHostname())
		fmt.Fprintln(app.out, infoStyle.Render("Run 'spectra status' to inspect it or 'spectra logout' to end it."))
	}

	return nil
}
