package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lalorirorero/Formulario-Planilla-Usuarios/cmd/cli/commands"
	"github.com/lalorirorero/Formulario-Planilla-Usuarios/internal/config"
	"github.com/lalorirorero/Formulario-Planilla-Usuarios/pkg/store"
	"github.com/lalorirorero/Formulario-Planilla-Usuarios/pkg/utils/logging"
)

var (
	env     string
	verbose bool
	dataDir string
	app     = &commands.AppContext{}
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cli",
		Short: "Onboarding CLI - Validate and export company onboarding data",
		Long: `A CLI tool for preparing onboarding documents: company and administrator data,
worker rosters, shift catalogs and weekly schedules.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app.Logger != nil {
				app.Logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (selects onboarding_config.<env>.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show debug logs on the console")
	rootCmd.PersistentFlags().StringVar(&dataDir, "dir", "", "Base directory for relative file names")

	rootCmd.AddCommand(commands.CheckRutCmd(app))
	rootCmd.AddCommand(commands.ImportWorkersCmd(app))
	rootCmd.AddCommand(commands.ValidateCmd(app))
	rootCmd.AddCommand(commands.ExportCmd(app))
	rootCmd.AddCommand(commands.SummaryCmd(app))
	rootCmd.AddCommand(commands.ServeCmd(app))
	rootCmd.AddCommand(commands.InteractiveCmd(app))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config, calendar and file store
func initApp() error {
	var err error
	app.Ctx = context.Background()

	// Initialize logger
	app.Logger, err = logging.InitLogger(env, verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.Logger.Debug("Starting application", zap.String("environment", env))

	// Load configuration
	app.Cfg, err = config.LoadWithEnv(env)
	if errors.Is(err, config.ErrConfigNotFound) {
		app.Logger.Debug("No config file found, using defaults")
		app.Cfg = config.Default()
	} else if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.Logger.Debug("Configuration loaded successfully",
		zap.String("variant", app.Cfg.Session.Variant),
		zap.Int("holidays", len(app.Cfg.Holidays)))

	// Build holiday calendar
	app.Calendar, err = commands.NewCalendar(app.Cfg)
	if err != nil {
		return fmt.Errorf("failed to build calendar: %w", err)
	}

	app.Store = store.NewFileStore(dataDir)
	return nil
}
