// ABOUTME: Entry point for the greener CLI
// ABOUTME: Terminal client for OneStepGreener pickups, logins and notifications

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/onestepgreener/greener-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		var exitErr *cmd.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
