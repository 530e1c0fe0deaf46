package cli

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"options-analyzer/internal/config"
	"options-analyzer/internal/logging"
)

// Version information
const (
	Version   = "0.1.0"
	BuildDate = "2026-10-17"
)

// App holds the application dependencies.
type App struct {
	Config *config.Config
	Logger zerolog.Logger
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	if cfg == nil {
		cfg = config.Default()
	}
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	rootCmd := &cobra.Command{
		Use:   "analyzer",
		Short: "Options strategy risk & reward analyzer",
		Long: `Options Analyzer plots the expiry profit/loss of strategies of up to four
call/put legs across a range of underlying prices and reports maximum profit,
maximum loss and break-even points.

Use 'analyzer payoff --help' to evaluate your own legs.
Use 'analyzer strategy list' to see built-in strategies.
Use 'analyzer examples' to see common workflows.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			if debug {
				logging.SetDebugLevel()
				app.Logger = app.Logger.Level(zerolog.DebugLevel)
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(logging.WithLogger(ctx, app.Logger))
			return nil
		},
	}

	rootCmd.PersistentFlags().String("config", "", "config directory (default: ~/.config/options-analyzer)")
	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colored output")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	addCoreCommands(rootCmd, app)
	addOptionsCommands(rootCmd, app)
	addHelpCommands(rootCmd, app)

	return rootCmd
}

// output builds an Output honoring the ui.color_enabled setting.
func (a *App) output(cmd *cobra.Command) *Output {
	out := NewOutput(cmd)
	if !a.Config.UI.ColorEnabled {
		out.DisableColor()
	}
	return out
}

// addCoreCommands adds core utility commands.
func addCoreCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newVersionCmd(app))
	rootCmd.AddCommand(newConfigCmd(app))
}

func newVersionCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.output(cmd)
			if output.IsJSON() {
				return output.JSON(map[string]string{
					"version":    Version,
					"build_date": BuildDate,
				})
			}
			output.Printf("Options Analyzer v%s\n", Version)
			output.Dim("Build date: %s", BuildDate)
			return nil
		},
	}
}

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  "View and validate application configuration.",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.output(cmd)
			if output.IsJSON() {
				return output.JSON(app.Config)
			}
			showConfig(output, app.Config)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.output(cmd)
			dir := configDir(cmd)
			if output.IsJSON() {
				return output.JSON(map[string]string{"path": dir})
			}
			output.Println(dir)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.output(cmd)
			if err := app.Config.Validate(); err != nil {
				output.Error("Configuration validation failed: %v", err)
				return err
			}
			if output.IsJSON() {
				return output.JSON(map[string]bool{"valid": true})
			}
			output.Success("✓ Configuration is valid")
			return nil
		},
	})

	return cmd
}

func configDir(cmd *cobra.Command) string {
	if dir, _ := cmd.Flags().GetString("config"); dir != "" {
		return dir
	}
	return config.DefaultConfigDir()
}

func showConfig(output *Output, cfg *config.Config) {
	output.Bold("Price Range")
	output.Printf("  Min:  %g\n", cfg.Range.Min)
	output.Printf("  Max:  %g\n", cfg.Range.Max)
	output.Printf("  Step: %g\n", cfg.Range.Step)
	output.Println()

	output.Bold("Strategy")
	output.Printf("  Max Legs: %d\n", cfg.Strategy.MaxLegs)
	output.Printf("  Center:   %g\n", cfg.Strategy.Center)
	output.Printf("  Width:    %g\n", cfg.Strategy.Width)
	output.Printf("  Premium:  %g\n", cfg.Strategy.Premium)
	output.Println()

	output.Bold("UI")
	output.Printf("  Color: %v\n", cfg.UI.ColorEnabled)
	output.Printf("  Chart: %dx%d\n", cfg.UI.ChartWidth, cfg.UI.ChartHeight)
	output.Println()

	output.Bold("Logging")
	output.Printf("  Level: %s\n", cfg.Log.Level)
	output.Printf("  File:  %v\n", cfg.Log.File)
}
