package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/chiquitav2/user-console/internal/console"
	"github.com/chiquitav2/user-console/internal/console/client"
	"github.com/chiquitav2/user-console/internal/console/config"
	"github.com/chiquitav2/user-console/internal/console/events"
	"github.com/chiquitav2/user-console/internal/console/view"
	"github.com/chiquitav2/user-console/pkg/logger"
)

// Version is set at build time
var Version = "dev"

var (
	cfgFile string

	app *console.Console
	log *logger.Logger
)

// rootCmd is the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "user-console",
	Short: "Manage users and roles from the command line",
	Long: `user-console talks to the user management REST API to list, create,
update and delete users and roles, manage the signed-in user's profile and
photo, and show the admin dashboard.

Configuration is read from .user-console.yaml (in /etc/user-console, $HOME or
the working directory), USER_CONSOLE_* environment variables and flags.

Examples:
  # List all users
  user-console users list

  # Talk to another server with a bearer token
  user-console --base-url https://admin.example.com --token $TOKEN dashboard`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute runs the root command until it finishes or is interrupted
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	closeConsole()
	return err
}

// closeConsole releases the notification bus whether or not the command failed
func closeConsole() {
	if app != nil {
		app.Bus().Close()
	}
}

func init() {
	rootCmd.Version = Version

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default searches .user-console.yaml)")
	flags.String("base-url", "", "API base URL")
	flags.String("token", "", "bearer token sent as Authorization header")
	flags.Int("timeout", 0, "request timeout in seconds")
	flags.String("log-level", "", "log level (trace, debug, info, warn, error)")
	flags.String("log-format", "", "log format (text, json)")

	viper.BindPFlag("base_url", flags.Lookup("base-url"))
	viper.BindPFlag("token", flags.Lookup("token"))
	viper.BindPFlag("timeout", flags.Lookup("timeout"))
	viper.BindPFlag("log_level", flags.Lookup("log-level"))
	viper.BindPFlag("log_format", flags.Lookup("log-format"))
}

// setup loads configuration and wires the console for every subcommand.
func setup(cmd *cobra.Command, args []string) error {
	loader := config.NewLoaderWithViper(viper.GetViper())
	if cfgFile != "" {
		loader.SetConfigFile(cfgFile)
	}
	cfg, err := loader.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	log = logger.New(logger.LoggerConfig{
		Level:     logger.LogLevel(cfg.LogLevel),
		Format:    logger.OutputFormat(cfg.LogFormat),
		Component: "user-console",
		Version:   Version,
		Output:    os.Stderr,
	})

	c := client.NewClient(cfg.BaseURL, log, client.WithTimeout(cfg.RequestTimeout()))
	if cfg.Token != "" {
		c.SetAuthToken(cfg.Token)
	}

	bus := events.NewNotificationBus(log, cfg.NotificationTTL())
	stderr := cmd.ErrOrStderr()
	if err := bus.Subscribe(func(n view.Notification) {
		view.RenderNotification(stderr, n)
	}); err != nil {
		return fmt.Errorf("failed to subscribe to notifications: %w", err)
	}

	app = console.New(c, bus, log, cmd.OutOrStdout())
	log.Debug("console ready", "base_url", c.BaseURL(), "config", viper.ConfigFileUsed())
	return nil
}

// reportedError marks a failure the operator has already been notified of.
type reportedError struct {
	error
}

func (e reportedError) Unwrap() error { return e.error }

func reported(err error) error {
	if err == nil {
		return nil
	}
	return reportedError{err}
}

// Reported reports whether err was already shown as a notification.
func Reported(err error) bool {
	var r reportedError
	return errors.As(err, &r)
}
