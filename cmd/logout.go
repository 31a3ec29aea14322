// ABOUTME: Logout command for the greener CLI
// ABOUTME: Tells the backend and clears the local session

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/onestepgreener/greener-cli/internal/nav"
	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and clear the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv()
		if err != nil {
			return err
		}
		defer e.Close()

		return exitStatus(runLogout(cmd.Context(), os.Stdout, e.sessions, newFlow(e)))
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

// runLogout clears the session even when the backend call fails
func runLogout(ctx context.Context, w io.Writer, sessions nav.Sessions, flow *nav.Flow) int {
	sess := sessions.Get(ctx)
	if sess == nil {
		fmt.Fprintln(w, "Not logged in.")
		return 1
	}

	flow.Logout(ctx, nav.ProfileFromSession(sess))
	fmt.Fprintf(w, "Logged out %s.\n", sess.CustomerName)
	return 0
}
