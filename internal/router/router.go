package router

import (
	"context"
	"errors"
	"path"

	"github.com/sirupsen/logrus"

	"github.com/spectra-io/client/internal/sessions"
)

const (
	RootPath      = "/"
	LoginPath     = "/login"
	SignupPath    = "/signup"
	DashboardPath = "/dashboard"
)

// ErrQuit is returned by a page when the user leaves the application.
var ErrQuit = errors.New("quit")

// Page is a single screen. Run blocks until the user is done with it and
// returns the path to navigate to next.
type Page interface {
	Run(ctx context.Context) (string, error)
}

type PageFunc func(ctx context.Context) (string, error)

func (f PageFunc) Run(ctx context.Context) (string, error) {
	return f(ctx)
}

// Resolution is either a page to show or a path to redirect to.
type Resolution struct {
	Page     Page
	Redirect string
}

func (r Resolution) IsRedirect() bool {
	return len(r.Redirect) > 0
}

type Router struct {
	store    *sessions.Store
	routes   map[string]Page
	exits    map[string]bool
	fallback string
}

// New builds the static route table: /signup and /login map to their pages
// and every other path redirects to /login. /dashboard is an exit
// destination handled by the caller.
func New(store *sessions.Store, signup Page, login Page) *Router {
	r := &Router{
		store:    store,
		routes:   make(map[string]Page),
		exits:    make(map[string]bool),
		fallback: LoginPath,
	}

	r.Handle(SignupPath, signup)
	r.Handle(LoginPath, login)
	r.Exit(DashboardPath)

	return r
}

// Handle registers page at p.
func (r *Router) Handle(p string, page Page) {
	r.routes[normalize(p)] = page
}

// Exit marks p as a destination outside the router. Serve returns when it
// navigates there.
func (r *Router) Exit(p string) {
	r.exits[normalize(p)] = true
}

func (r *Router) Resolve(p string) Resolution {
	if page, ok := r.routes[normalize(p)]; ok {
		return Resolution{Page: page}
	}
	return Resolution{Redirect: r.fallback}
}

// Serve mounts the session store on ctx and follows navigations from start
// until a page exits the router, the user quits or a page fails. It returns
// the last path reached.
func (r *Router) Serve(ctx context.Context, start string) (string, error) {

	ctx = sessions.WithStore(ctx, r.store)
	current := normalize(start)

	for {
		if err := ctx.Err(); err != nil {
			return current, err
		}

		if r.exits[current] {
			logrus.WithField("path", current).Debugln("Leaving router")
			return current, nil
		}

		resolution := r.Resolve(current)
		if resolution.IsRedirect() {
			logrus.WithFields(logrus.Fields{
				"from": current,
				"to":   resolution.Redirect,
			}).Debugln("Redirecting")
			current = normalize(resolution.Redirect)
			continue
		}

		logrus.WithField("path", current).Debugln("Rendering page")

		next, err := resolution.Page.Run(ctx)
		if errors.Is(err, ErrQuit) {
			return current, nil
		}
		if err != nil {
			return current, err
		}

		current = normalize(next)
	}
}

func normalize(p string) string {
	return path.Clean("/" + p)
}
