package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ANTONISMICHAILIDIS/Nurse-schedule/cmd/cli/commands"
	"github.com/ANTONISMICHAILIDIS/Nurse-schedule/internal/config"
	"github.com/ANTONISMICHAILIDIS/Nurse-schedule/pkg/clients/rosterclient"
	"github.com/ANTONISMICHAILIDIS/Nurse-schedule/pkg/utils/logging"
)

var (
	env        string
	configPath string
	app        = &commands.AppContext{}
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "nurse-schedule",
		Short: "Nurse Schedule CLI - Generate monthly ward shift schedules",
		Long:  `A CLI tool for generating Morning/Afternoon/Night nurse schedules from a roster file.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app.Logger != nil {
				_ = app.Logger.Sync()
			}
		},
		SilenceUsage: true,
	}

	// Add persistent flags
	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a config file (skips the config search)")
	rootCmd.MarkPersistentFlagRequired("env")

	// Add all commands
	rootCmd.AddCommand(commands.GenerateCmd(app))
	rootCmd.AddCommand(commands.ListNursesCmd(app))
	rootCmd.AddCommand(commands.CheckConfigCmd(app))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp loads config, then sets up the logger and roster client
func initApp() error {
	var err error
	app.Ctx = context.Background()

	// Load configuration
	if configPath != "" {
		app.Cfg, err = config.LoadFromPath(configPath)
	} else {
		app.Cfg, err = config.LoadWithEnv(env)
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	app.Logger, err = logging.InitLogger(env, app.Cfg.LogDir)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.Logger.Info("Starting application", zap.String("environment", env))
	app.Logger.Debug("Configuration loaded successfully",
		zap.String("roster_file", app.Cfg.RosterFile),
		zap.String("tie_break", app.Cfg.TieBreak),
		zap.Int("target_size", app.Cfg.TargetSize))

	// Initialize roster client
	app.NurseClient = rosterclient.NewClient(app.Cfg.RosterFile)
	app.Logger.Debug("Roster client initialized", zap.String("path", app.NurseClient.Path()))

	return nil
}
