// ABOUTME: Root command for the greener CLI
// ABOUTME: Handles global flags, configuration and the shared client/session wiring

package cmd

import (
	"fmt"
	"os"

	"github.com/onestepgreener/greener-cli/internal/client"
	"github.com/onestepgreener/greener-cli/internal/config"
	"github.com/onestepgreener/greener-cli/internal/logger"
	"github.com/onestepgreener/greener-cli/internal/session"
	"github.com/onestepgreener/greener-cli/internal/storage"
	"github.com/spf13/cobra"
)

var (
	apiURL     string
	jsonOutput bool
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "greener",
	Short: "Terminal client for OneStepGreener",
	Long: `greener is a terminal client for OneStepGreener recycling pickups.

Run without a subcommand to start the interactive app.

Environment Variables:
  GREENER_ENV              development or production (selects the default API URL)
  GREENER_API_URL          Backend API URL
  GREENER_CONFIG_DIR       Directory for the session store and debug log
  GREENER_STORAGE          Session storage backend: file, sqlite, memory (default: file)
  GREENER_REQUEST_TIMEOUT  Request timeout in seconds (default: 60)
  GREENER_DEVICE_TOKEN     Push token registered when a session is restored
  LOG_LEVEL, LOG_FORMAT    Logging for subcommands (debug|info|warn|error, text|json)`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(os.Stderr)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI()
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// ExitError reports a command that finished with a non-zero exit code.
// Its output has already been written.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// exitStatus turns a run function's exit code into a RunE result
func exitStatus(code int) error {
	if code == 0 {
		return nil
	}
	return &ExitError{Code: code}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend API URL (overrides GREENER_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
}

// GetAPIURL returns the API URL from flag or config (in priority order)
func GetAPIURL(cfg *config.Config) string {
	if apiURL != "" {
		return apiURL
	}
	return cfg.APIURL
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}

// env is what the commands share: config, the local store and the API client
type env struct {
	cfg      *config.Config
	kv       storage.Store
	sessions *session.Store
	api      *client.Client
}

// openEnv loads configuration and opens the session store
func openEnv() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg.APIURL = GetAPIURL(cfg)

	if cfg.Storage != config.StorageMemory {
		if err := os.MkdirAll(cfg.ConfigDir, 0700); err != nil {
			return nil, fmt.Errorf("failed to create config dir: %w", err)
		}
	}
	kv, err := storage.Open(cfg.Storage, cfg.ConfigDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s storage: %w", cfg.Storage, err)
	}

	return newEnv(cfg, kv), nil
}

func newEnv(cfg *config.Config, kv storage.Store) *env {
	return &env{
		cfg:      cfg,
		kv:       kv,
		sessions: session.New(kv),
		api:      client.New(cfg.APIURL, client.WithTimeout(cfg.RequestTimeout)),
	}
}

func (e *env) Close() error {
	return e.kv.Close()
}
