// Package cli provides the snakegym command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/felixgeelhaar/bolt/v3"
	"github.com/spf13/cobra"

	"snakegym/internal/config"
	"snakegym/internal/logging"
)

// Version information set at build time.
var (
	Version   = "dev"
	GitCommit = "unknown"
)

// App represents the CLI application.
type App struct {
	root   *cobra.Command
	stdout io.Writer
	stderr io.Writer

	configPath string
	logLevel   string

	cfg *config.Config
}

// New creates a new CLI application.
func New() *App {
	app := &App{
		stdout: os.Stdout,
		stderr: os.Stderr,
	}

	app.root = &cobra.Command{
		Use:   "snakegym",
		Short: "Turn-based snake environment for agents",
		Long: `snakegym simulates a single snake on a walled grid. Each step takes one of
three relative actions (0 turn left, 1 straight, 2 turn right) and yields the
grid observation, the cumulative reward and a done flag.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.loadConfig()
			if err != nil {
				return err
			}
			app.cfg = cfg
			logging.Init(app.logConfig(cfg))
			return nil
		},
	}

	app.root.PersistentFlags().StringVarP(&app.configPath, "config", "c", "", "Path to YAML configuration file")
	app.root.PersistentFlags().StringVar(&app.logLevel, "log-level", "", "Log level (overrides config)")

	app.root.AddCommand(
		app.newVersionCmd(),
		app.newPlayCmd(),
		app.newEvalCmd(),
	)

	return app
}

// WithOutput sets custom output writers.
func (a *App) WithOutput(stdout, stderr io.Writer) *App {
	a.stdout = stdout
	a.stderr = stderr
	a.root.SetOut(stdout)
	a.root.SetErr(stderr)
	return a
}

// Execute runs the CLI application.
func (a *App) Execute(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return a.root.ExecuteContext(ctx)
}

// ExecuteWithArgs runs the CLI with specific arguments (useful for testing).
func (a *App) ExecuteWithArgs(ctx context.Context, args []string) error {
	a.root.SetArgs(args)
	return a.Execute(ctx)
}

// loadConfig reads --config, or the defaults when it is empty
func (a *App) loadConfig() (*config.Config, error) {
	if a.configPath == "" {
		return config.Default(), nil
	}
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// logConfig resolves the logger settings from cfg and --log-level
func (a *App) logConfig(cfg *config.Config) logging.Config {
	level := cfg.Logging.Level
	if a.logLevel != "" {
		level = a.logLevel
	}
	return logging.Config{
		Level:  level,
		Format: cfg.Logging.Format,
		Output: a.stderr,
	}
}

// logger builds a logger writing to the app's stderr. The process-wide
// logger is set up once by Init, so each App keeps its own for its output.
func (a *App) logger(cfg *config.Config) *bolt.Logger {
	return logging.New(a.logConfig(cfg))
}

func (a *App) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(a.stdout, "snakegym version %s\n", Version)
			_, _ = fmt.Fprintf(a.stdout, "  Git commit: %s\n", GitCommit)
		},
	}
}
