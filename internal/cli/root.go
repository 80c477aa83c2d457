package cli

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"apac-settle/internal/calendar"
	"apac-settle/internal/clock"
	"apac-settle/internal/config"
	"apac-settle/internal/engine"
	"apac-settle/internal/holiday"
	"apac-settle/internal/logging"
	"apac-settle/internal/overlap"
	"apac-settle/internal/registry"
	"apac-settle/internal/special"
	"apac-settle/internal/status"
	"apac-settle/internal/store"
)

// Version information
const (
	Version   = "0.1.0"
	BuildDate = "2026-08-25"
)

// App holds the application dependencies.
type App struct {
	Config   *config.Config
	Logger   zerolog.Logger
	Registry *registry.Registry
	Clock    *clock.Service
	Store    *store.CalendarStore
	Holidays *holiday.Manager
	Calendar *calendar.Service
	Overlap  *overlap.Calculator
	Engine   *engine.Engine
	Advisor  *special.Advisor
	Status   *status.Service
}

// NewRootCmd creates the root command and wires the services. A
// missing or broken exchange calendar store is fatal: without it every
// feasibility answer would be wrong.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) (*cobra.Command, error) {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	reg, err := registry.Load(cfg.ConfigDir, logger)
	if err != nil {
		return nil, err
	}
	app.Registry = reg
	logger.Debug().Strs("markets", reg.Codes()).Msg("Market registry loaded")

	app.Clock = clock.New()

	calendarStore, err := store.NewCalendarStore(cfg.Data.CalendarDB)
	if err != nil {
		return nil, err
	}
	app.Store = calendarStore

	ctx := context.Background()
	exchangeSource, err := holiday.NewExchangeSource(ctx, calendarStore, logger)
	if err != nil {
		return nil, err
	}
	overrides := holiday.NewOverrideStore(cfg.Data.OverridesFile, logger)
	app.Holidays = holiday.NewManager(overrides, exchangeSource, holiday.NewPublicSource(), logger)

	app.Calendar = calendar.NewService(reg, app.Holidays, logger)
	app.Overlap = overlap.NewCalculator(app.Clock, app.Calendar)
	app.Advisor = special.NewAdvisor()
	app.Engine = engine.New(reg, app.Calendar, app.Clock, app.Overlap, app.Advisor, logger)
	app.Status = status.NewService(reg, app.Calendar, app.Clock, app.Overlap, logger)

	rootCmd := &cobra.Command{
		Use:   "settle",
		Short: "Cross-market settlement feasibility checker",
		Long: `Settle checks whether a trade between two Asia-Pacific markets can
settle on time, accounting for holidays, timezone gaps, depository
cut-offs, and regional hazards such as typhoons and Lunar New Year.

Use 'settle help <command>' for more information about a command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Handle debug flag
			debug, _ := cmd.Flags().GetBool("debug")
			if debug {
				logging.SetDebugLevel()
				app.Logger = app.Logger.Level(zerolog.DebugLevel)
			}
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config directory (default: ~/.config/apac-settle)")
	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd(app))
	rootCmd.AddCommand(newMarketsCmd(app))
	rootCmd.AddCommand(newStatusCmd(app))
	rootCmd.AddCommand(newCompareCmd(app))
	rootCmd.AddCommand(newCheckCmd(app))
	rootCmd.AddCommand(newCalendarCmd(app))
	rootCmd.AddCommand(newHolidaysCmd(app))
	rootCmd.AddCommand(newOverlapCmd(app))
	rootCmd.AddCommand(newOverrideCmd(app))

	return rootCmd, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{
					"version":    Version,
					"build_date": BuildDate,
				})
			} else {
				output.Printf("Settle v%s\n", Version)
				output.Dim("Build date: %s", BuildDate)
			}
		},
	}
}

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  "View and manage application configuration.",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if output.IsJSON() {
				return output.JSON(app.Config)
			}
			output.Bold("Defaults")
			output.Printf("  Market A:        %s\n", app.Config.Defaults.MarketA)
			output.Printf("  Market B:        %s\n", app.Config.Defaults.MarketB)
			output.Println()
			output.Bold("Data")
			output.Printf("  Overrides file:  %s\n", app.Config.Data.OverridesFile)
			output.Printf("  Calendar DB:     %s\n", app.Config.Data.CalendarDB)
			output.Println()
			output.Bold("Logging")
			output.Printf("  Level:           %s\n", app.Config.Logging.Level)
			output.Printf("  File:            %s\n", app.Config.Logging.FilePath)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration directory path",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{"path": app.Config.ConfigDir})
			} else {
				output.Println(app.Config.ConfigDir)
			}
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate configuration files",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := app.Config.Validate(); err != nil {
				output.Error("Configuration validation failed: %v", err)
				return err
			}
			if output.IsJSON() {
				output.JSON(map[string]bool{"valid": true})
			} else {
				output.Success("✓ Configuration is valid")
			}
			return nil
		},
	})

	return cmd
}
