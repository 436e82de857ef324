package pages

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/mail"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/spectra-io/client/internal/router"
)

// Credentials is form-local input. It is never persisted.
type Credentials struct {
	Email    string
	Password string
}

// Choice is one of the follow-up links offered after a failed submission.
// An empty Path quits.
type Choice struct {
	Label string
	Path  string
}

// Prompter is the terminal surface a page talks to.
type Prompter interface {
	Credentials(ctx context.Context, title string, creds *Credentials) error
	Choose(ctx context.Context, title string, choices []Choice) (string, error)
	Error(message string)
	Success(message string)
}

// HuhPrompter renders pages as huh forms.
type HuhPrompter struct {
	in     io.Reader
	out    io.Writer
	keymap *huh.KeyMap
}

func NewHuhPrompter(in io.Reader, out io.Writer) *HuhPrompter {
	keymap := huh.NewDefaultKeyMap()
	keymap.Quit = key.NewBinding(
		key.WithKeys("ctrl+c", "esc"),
		key.WithHelp("esc", "quit"),
	)

	return &HuhPrompter{
		in:     in,
		out:    out,
		keymap: keymap,
	}
}

func (p *HuhPrompter) Credentials(ctx context.Context, title string, creds *Credentials) error {

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title(title),
			huh.NewInput().
				Title("Email").
				Placeholder("you@example.com").
				Value(&creds.Email).
				Validate(validateEmail),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&creds.Password).
				Validate(validateRequired("password")),
		),
	)

	return p.run(ctx, form)
}

func (p *HuhPrompter) Choose(ctx context.Context, title string, choices []Choice) (string, error) {

	options := make([]huh.Option[string], 0, len(choices))
	for _, choice := range choices {
		options = append(options, huh.NewOption(choice.Label, choice.Path))
	}

	var selected string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(title).
				Options(options...).
				Value(&selected),
		),
	)

	if err := p.run(ctx, form); err != nil {
		return "", err
	}

	return selected, nil
}

func (p *HuhPrompter) Error(message string) {
	fmt.Fprintln(p.out, errorStyle.Render(message))
}

func (p *HuhPrompter) Success(message string) {
	fmt.Fprintln(p.out, successStyle.Render(message))
}

func (p *HuhPrompter) run(ctx context.Context, form *huh.Form) error {

	err := form.
		WithKeyMap(p.keymap).
		WithProgramOptions(
			tea.WithInput(p.in),
			tea.WithOutput(p.out),
		).
		RunWithContext(ctx)

	return formError(err)
}

// formError turns a user abort into a clean quit.
func formError(err error) error {
	if errors.Is(err, huh.ErrUserAborted) {
		return router.ErrQuit
	}
	return err
}

func validateEmail(value string) error {
	if len(value) == 0 {
		return errors.New("email is required")
	}
	if _, err := mail.ParseAddress(value); err != nil {
		return errors.New("enter a valid email address")
	}
	return nil
}

func validateRequired(field string) func(string) error {
	return func(value string) error {
		if len(value) == 0 {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}
