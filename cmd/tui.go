// ABOUTME: Starts the interactive terminal app
// ABOUTME: Wires the session store, API client and navigation flow into the TUI

package cmd

import (
	"github.com/onestepgreener/greener-cli/internal/nav"
	"github.com/onestepgreener/greener-cli/internal/tui"
	"github.com/onestepgreener/greener-cli/internal/tui/recent"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Start the interactive app (default)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI()
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI() error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	return tui.Run(e.api, newFlow(e), recent.New(e.kv), e.cfg.ConfigDir)
}

func newFlow(e *env) *nav.Flow {
	var opts []nav.FlowOption
	if e.cfg.DeviceToken != "" {
		opts = append(opts, nav.WithDevice(e.cfg.DeviceToken, e.cfg.Platform))
	}
	return nav.NewFlow(e.sessions, e.api, opts...)
}
