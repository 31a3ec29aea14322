// ABOUTME: Notification commands for the greener CLI
// ABOUTME: Lists notifications for the logged-in customer and marks them read

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/onestepgreener/greener-cli/internal/client"
	"github.com/spf13/cobra"
)

var markAll bool

var notificationsCmd = &cobra.Command{
	Use:     "notifications",
	Aliases: []string{"notif"},
	Short:   "List or mark notifications",
}

var notificationsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List notifications, newest first",
	Long: `List notifications for the logged-in customer.

Exit codes:
  0 - Listed
  1 - Not logged in
  2 - Error (connectivity, backend failure)`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		e, err := openEnv()
		if err != nil {
			return err
		}
		defer e.Close()

		return exitStatus(runNotificationsList(ctx, os.Stdout, e))
	},
}

var notificationsReadCmd = &cobra.Command{
	Use:   "read [id]",
	Short: "Mark one notification read, or all with --all",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		e, err := openEnv()
		if err != nil {
			return err
		}
		defer e.Close()

		return exitStatus(runNotificationsRead(ctx, os.Stdout, e, args, markAll))
	},
}

func init() {
	notificationsReadCmd.Flags().BoolVar(&markAll, "all", false, "Mark every notification read")
	notificationsCmd.AddCommand(notificationsListCmd, notificationsReadCmd)
	rootCmd.AddCommand(notificationsCmd)
}

func runNotificationsList(ctx context.Context, w io.Writer, e *env) int {
	sess := e.sessions.Get(ctx)
	if sess == nil {
		fmt.Fprintln(w, "Not logged in. Run greener to log in.")
		return 1
	}

	items, err := e.api.Notifications(ctx, sess.CustomerID)
	if err != nil {
		fmt.Fprintf(w, "Error: %s\n", client.UserMessage(err))
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(items, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}
	fmt.Fprint(w, formatNotificationsHuman(items))
	return 0
}

// formatNotificationsHuman renders one line per notification with an unread marker
func formatNotificationsHuman(items []client.Notification) string {
	if len(items) == 0 {
		return "No notifications. You're all caught up!\n"
	}

	out := fmt.Sprintf("%d notifications, %d unread\n\n", len(items), client.UnreadCount(items))
	for _, n := range items {
		marker := " "
		if !n.IsRead {
			marker = "•"
		}
		out += fmt.Sprintf("%s %3d  %-22s %s\n", marker, n.ID, n.Title, n.Time)
		out += fmt.Sprintf("        %s\n", n.Message)
	}
	return out
}

func runNotificationsRead(ctx context.Context, w io.Writer, e *env, args []string, all bool) int {
	if all == (len(args) == 1) {
		fmt.Fprintln(w, "Error: give a notification id or --all")
		return 2
	}

	sess := e.sessions.Get(ctx)
	if sess == nil {
		fmt.Fprintln(w, "Not logged in. Run greener to log in.")
		return 1
	}

	if all {
		if err := e.api.MarkAllNotificationsRead(ctx, sess.CustomerID); err != nil {
			fmt.Fprintf(w, "Error: %s\n", client.UserMessage(err))
			return 2
		}
		fmt.Fprintln(w, "All notifications marked as read.")
		return 0
	}

	id, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintf(w, "Error: invalid notification id %q\n", args[0])
		return 2
	}
	if err := e.api.MarkNotificationRead(ctx, sess.CustomerID, id); err != nil {
		fmt.Fprintf(w, "Error: %s\n", client.UserMessage(err))
		return 2
	}
	fmt.Fprintf(w, "Notification %d marked as read.\n", id)
	return 0
}
