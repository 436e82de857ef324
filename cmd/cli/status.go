package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/spectra-io/client/internal/api"
	"github.com/spectra-io/client/internal/common"
	"github.com/spectra-io/client/internal/router"
	"github.com/spectra-io/client/internal/sessions"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current session",
	Long:  "Shows whether a session token is stored and, if so, who it belongs to and when it expires",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApplication(cmd)
		if err != nil {
			return err
		}

		resolution := router.Guard(app.store.Token(), router.PageFunc(app.showStatus))
		if resolution.IsRedirect() {
			fmt.Fprintln(app.out, warningStyle.Render("Not logged in."))
			fmt.Fprintln(app.out, "Run 'spectra login' to start a session.")
			return nil
		}

		_, err = resolution.Page.Run(app.context(cmd.Context()))
		return err
	},
}

func (a *application) showStatus(ctx context.Context) (string, error) {
	store, err := sessions.FromContext(ctx)
	if err != nil {
		return "", err
	}

	fmt.Fprintln(a.out, titleStyle.Render("Session"))
	fmt.Fprintf(a.out, "%s %s\n", headerStyle.Render("API:"), a.client.BaseURL())
	fmt.Fprintf(a.out, "%s %s\n", headerStyle.Render("Stored in:"), a.storage.Path())

	if claims, err := sessions.DecodeClaims(store.Token()); err != nil {
		logrus.WithError(err).Debugln("Session token is not a readable JWT")
	} else {
		if len(claims.Subject) > 0 {
			fmt.Fprintf(a.out, "%s %s\n", headerStyle.Render("Subject:"), claims.Subject)
		}
		if claims.IssuedAt != nil {
			fmt.Fprintf(a.out, "%s %s\n",
				headerStyle.Render("Issued:"),
				claims.IssuedAt.Local().Format("2006-01-02 15:04:05"))
		}
		if claims.ExpiresAt != nil {
			remaining := time.Until(*claims.ExpiresAt)
			if remaining > 0 {
				fmt.Fprintf(a.out, "%s %s\n",
					headerStyle.Render("Expires in:"),
					activeStyle.Render(common.FormatDurationRemaining(remaining)))
			} else {
				fmt.Fprintf(a.out, "%s %s\n",
					headerStyle.Render("Expired:"),
					expiredStyle.Render(claims.ExpiresAt.Local().Format("2006-01-02 15:04:05")))
			}
		}
	}

	user, err := a.client.Me(ctx)
	if err != nil {
		fmt.Fprintln(a.out, errorStyle.Render(fmt.Sprintf("Server did not accept the session: %s", rejectionMessage(err))))
		return "", nil
	}

	fmt.Fprintf(a.out, "%s %s\n", headerStyle.Render("User:"), user.Email)
	if user.IsAdmin {
		fmt.Fprintf(a.out, "%s %s\n", headerStyle.Render("Role:"), "admin")
	}

	return "", nil
}

// rejectionMessage prefers the API detail, then the raw response body.
func rejectionMessage(err error) string {
	if detail := api.Detail(err); len(detail) > 0 {
		return detail
	}

	var statusErr *api.HTTPStatusError
	if errors.As(err, &statusErr) {
		if body := strings.TrimSpace(string(statusErr.Body)); len(body) > 0 {
			return body
		}
	}

	return err.Error()
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
