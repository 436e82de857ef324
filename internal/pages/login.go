package pages

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/spectra-io/client/internal/api"
	"github.com/spectra-io/client/internal/router"
	"github.com/spectra-io/client/internal/sessions"
)

const loginFailed = "Login failed"

type Authenticator interface {
	Login(ctx context.Context, email, password string) (*api.TokenResponse, error)
}

// Login exchanges credentials for a token and stores it in the session.
type Login struct {
	Credentials
	Error string

	client   Authenticator
	prompter Prompter
}

func NewLogin(client Authenticator, prompter Prompter) *Login {
	return &Login{
		client:   client,
		prompter: prompter,
	}
}

// Submit posts the current credentials. It returns the dashboard path on
// success and an empty path when the page should stay, with Error set.
// Only a missing session store or a failed token write is returned as an
// error.
func (p *Login) Submit(ctx context.Context) (string, error) {

	store, err := sessions.FromContext(ctx)
	if err != nil {
		return "", err
	}

	p.Error = ""

	creds := p.Credentials
	p.Credentials = Credentials{}

	token, err := p.client.Login(ctx, creds.Email, creds.Password)
	if err != nil {
		logrus.WithError(err).Debugln("Login request failed")
		p.Error = failureMessage(err, loginFailed)
		return "", nil
	}

	if err := store.SetToken(token.AccessToken); err != nil {
		return "", err
	}

	return router.DashboardPath, nil
}

func (p *Login) Run(ctx context.Context) (string, error) {

	if err := p.prompter.Credentials(ctx, "Login", &p.Credentials); err != nil {
		return "", err
	}

	next, err := p.Submit(ctx)
	if err != nil {
		return "", err
	}

	if len(next) > 0 {
		p.prompter.Success("Login successful!")
		return next, nil
	}

	p.prompter.Error(p.Error)

	return choose(ctx, p.prompter, []Choice{
		{Label: "Try again", Path: router.LoginPath},
		{Label: "Don't have an account? Sign up", Path: router.SignupPath},
		{Label: "Quit", Path: ""},
	})
}

// failureMessage prefers the detail sent by the API and falls back to a
// generic message.
func failureMessage(err error, fallback string) string {
	if detail := api.Detail(err); len(detail) > 0 {
		return detail
	}
	return fallback
}

func choose(ctx context.Context, prompter Prompter, choices []Choice) (string, error) {
	next, err := prompter.Choose(ctx, "What would you like to do?", choices)
	if err != nil {
		return "", err
	}
	if len(next) == 0 {
		return "", router.ErrQuit
	}
	return next, nil
}
