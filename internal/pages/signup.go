package pages

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/spectra-io/client/internal/api"
	"github.com/spectra-io/client/internal/router"
)

const signupFailed = "Signup failed"

type Registrar interface {
	Register(ctx context.Context, email, password string) (*api.User, error)
}

// Signup creates an account. No token is issued; the user is sent to the
// login page afterwards.
type Signup struct {
	Credentials
	Error string

	client   Registrar
	prompter Prompter
}

func NewSignup(client Registrar, prompter Prompter) *Signup {
	return &Signup{
		client:   client,
		prompter: prompter,
	}
}

func (p *Signup) Submit(ctx context.Context) (string, error) {

	p.Error = ""

	creds := p.Credentials
	p.Credentials = Credentials{}

	user, err := p.client.Register(ctx, creds.Email, creds.Password)
	if err != nil {
		logrus.WithError(err).Debugln("Signup request failed")
		p.Error = failureMessage(err, signupFailed)
		return "", nil
	}

	logrus.WithField("user", user.ID).Debugln("Account created")

	return router.LoginPath, nil
}

func (p *Signup) Run(ctx context.Context) (string, error) {

	if err := p.prompter.Credentials(ctx, "Sign Up", &p.Credentials); err != nil {
		return "", err
	}

	next, err := p.Submit(ctx)
	if err != nil {
		return "", err
	}

	if len(next) > 0 {
		p.prompter.Success("Account created. Please log in.")
		return next, nil
	}

	p.prompter.Error(p.Error)

	return choose(ctx, p.prompter, []Choice{
		{Label: "Try again", Path: router.SignupPath},
		{Label: "Already have an account? Login", Path: router.LoginPath},
		{Label: "Quit", Path: ""},
	})
}
