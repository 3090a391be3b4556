package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bhartnell/pmi-scheduler/cmd/capacityctl/commands"
	"github.com/bhartnell/pmi-scheduler/pkg/capacityclient"
	"github.com/bhartnell/pmi-scheduler/pkg/logger"
)

var (
	apiURL   string
	userID   string
	timeout  time.Duration
	logLevel string
	app      = &commands.AppContext{Ctx: context.Background()}
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "capacityctl",
		Short:        "PMI site capacity CLI",
		Long:         `A CLI for viewing, editing and exporting clinical site and agency capacity.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
	}

	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", envOr("CAPACITY_API_URL", "http://localhost:8080"), "Capacity service URL")
	rootCmd.PersistentFlags().StringVar(&userID, "user", os.Getenv("CAPACITY_USER_ID"), "User ID sent as X-User-ID")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(commands.ListCmd(app))
	rootCmd.AddCommand(commands.EditCmd(app))
	rootCmd.AddCommand(commands.ExportCmd(app))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp настраивает логгер (stderr) и клиента API
func initApp() error {
	if userID == "" {
		return fmt.Errorf("--user or CAPACITY_USER_ID is required")
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{"stderr"}
	level, err := zap.ParseAtomicLevel(logLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", logLevel, err)
	}
	cfg.Level = level

	zl, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.Logger = logger.FromZap(zl)
	app.UserID = userID
	app.API = capacityclient.NewClient(apiURL, userID, timeout)
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
