// ABOUTME: Session commands for the greener CLI
// ABOUTME: Shows or clears the locally stored customer session

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/onestepgreener/greener-cli/internal/session"
	"github.com/spf13/cobra"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Inspect the stored session",
}

var sessionInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show who is logged in and when the session expires",
	Long: `Show the stored session.

Exit codes:
  0 - A valid session exists
  1 - Not logged in`,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv()
		if err != nil {
			return err
		}
		defer e.Close()

		return exitStatus(runSessionInfo(cmd.Context(), os.Stdout, e.sessions))
	},
}

var sessionClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the stored session without calling the backend",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv()
		if err != nil {
			return err
		}
		defer e.Close()

		return exitStatus(runSessionClear(cmd.Context(), os.Stdout, e.sessions))
	},
}

func init() {
	sessionCmd.AddCommand(sessionInfoCmd, sessionClearCmd)
	rootCmd.AddCommand(sessionCmd)
}

// sessionView is the JSON shape of session info
type sessionView struct {
	CustomerID    string `json:"customerId"`
	CustomerName  string `json:"customerName"`
	MobileNumber  string `json:"mobileNumber"`
	Status        string `json:"status"`
	ExpiresAt     string `json:"expiresAt"`
	DaysRemaining int    `json:"daysRemaining"`
}

func runSessionInfo(ctx context.Context, w io.Writer, sessions *session.Store) int {
	sess := sessions.Get(ctx)
	if sess == nil {
		fmt.Fprintln(w, "Not logged in.")
		return 1
	}

	view := sessionView{
		CustomerID:   sess.CustomerID.String(),
		CustomerName: sess.CustomerName,
		MobileNumber: sess.MobileNumber,
		Status:       sess.Status,
		ExpiresAt:    sess.ExpiresAt.Format("2006-01-02 15:04"),
	}
	if info := sessions.ExpirationInfo(ctx); info != nil {
		view.DaysRemaining = info.DaysRemaining
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(view, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	fmt.Fprintf(w, `Customer:  %s (%s)
Mobile:    %s
Status:    %s
Expires:   %s (%d days left)
`, view.CustomerName, view.CustomerID, view.MobileNumber, view.Status, view.ExpiresAt, view.DaysRemaining)
	return 0
}

func runSessionClear(ctx context.Context, w io.Writer, sessions *session.Store) int {
	if !sessions.Clear(ctx) {
		fmt.Fprintln(w, "Error: failed to clear session")
		return 2
	}
	fmt.Fprintln(w, "Session cleared.")
	return 0
}
