// ABOUTME: Dev server command for the greener CLI
// ABOUTME: Serves a local fake of the customer API with seeded customers

package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/onestepgreener/greener-cli/internal/config"
	"github.com/onestepgreener/greener-cli/internal/devserver"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var devPort string

var devServerCmd = &cobra.Command{
	Use:   "dev-server",
	Short: "Run a local fake of the customer API",
	Long: `Run a local fake of the customer API for development.

Seeded customers:
  9876543210  Asha Rao (approved, with notifications)
  9123456780  Ravi Kumar (pending approval)

OTPs are shown in the client because the fake never sends SMS.
Set DEV_REDIS_ADDR to keep OTPs in Redis instead of memory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if devPort != "" {
			cfg.DevServerPort = devPort
		}
		return runDevServer(ctx, cfg)
	},
}

func init() {
	devServerCmd.Flags().StringVar(&devPort, "port", "", "Port to listen on (overrides DEV_SERVER_PORT)")
	rootCmd.AddCommand(devServerCmd)
}

// openOTPStore picks Redis when an address is configured
func openOTPStore(ctx context.Context, cfg *config.Config) (devserver.OTPStore, error) {
	if cfg.DevRedisAddr == "" {
		return devserver.NewMemoryOTPStore(time.Minute), nil
	}
	store, err := devserver.NewRedisOTPStore(ctx, cfg.DevRedisAddr, os.Getenv("DEV_REDIS_PASSWORD"))
	if err != nil {
		return nil, err
	}
	slog.Info("Using Redis OTP store", "addr", cfg.DevRedisAddr)
	return store, nil
}

// runDevServer serves until ctx is canceled, then releases the OTP store
func runDevServer(ctx context.Context, cfg *config.Config) error {
	otps, err := openOTPStore(ctx, cfg)
	if err != nil {
		return err
	}

	srv := devserver.New(devserver.SeededDirectory(), otps, cfg.DevOTPTTL)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.ListenAndServe(gctx, ":"+cfg.DevServerPort)
	})
	g.Go(func() error {
		<-gctx.Done()
		return otps.Close()
	})
	return g.Wait()
}
