package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/adiramot/cathlab-rota/internal/config"
	"github.com/adiramot/cathlab-rota/pkg/core/roster"
	"github.com/adiramot/cathlab-rota/pkg/core/services"
	"github.com/adiramot/cathlab-rota/pkg/postgres"
	"github.com/adiramot/cathlab-rota/pkg/utils/logging"
)

// App holds the application dependencies
type App struct {
	cfg    *config.Config
	logger *zap.Logger
	ctx    context.Context
}

var (
	configPath string
	debug      bool
	app        *App
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "rota",
		Short: "Cath lab rota CLI - Generate monthly duty schedules",
		Long:  `A CLI tool for generating the monthly catheterization lab schedule: procedure sessions, standby cover, and clinic days.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil && app.logger != nil {
				app.logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: rota_config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging on the console")

	rootCmd.AddCommand(generateCmd())
	rootCmd.AddCommand(historyCmd())
	rootCmd.AddCommand(showCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up the logger and loads the configuration
func initApp() error {
	var err error
	app = &App{
		ctx: context.Background(),
	}

	app.logger, err = logging.InitLogger(debug)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.logger.Info("Starting application")

	app.logger.Info("Loading configuration")
	if configPath != "" {
		app.cfg, err = config.LoadFromPath(configPath)
	} else {
		app.cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.logger.Debug("Configuration loaded successfully", zap.String("month", app.cfg.Month))

	return nil
}

// openStore connects to the schedule database and applies pending migrations.
// Only the saving and browsing commands need it.
func openStore() (*postgres.DB, error) {
	if app.cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("no databaseURL configured")
	}

	app.logger.Info("Connecting to database")
	store, err := postgres.NewDB(app.ctx, app.cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := store.RunMigrations(app.ctx); err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	app.logger.Debug("Database ready")

	return store, nil
}

// Command definitions

func generateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the duty schedule for the configured month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			seed, _ := cmd.Flags().GetInt64("seed")
			csvPath, _ := cmd.Flags().GetString("csv")
			save, _ := cmd.Flags().GetBool("save")

			if seed == 0 {
				seed = time.Now().UnixNano()
			}

			result, err := services.GenerateSchedule(app.cfg, app.logger, seed)
			if err != nil {
				return err
			}

			fmt.Printf("\nSchedule for %s (seed %d)\n", result.Month, result.Seed)
			printSchedule(result.Schedule)

			if len(result.SkippedSessionDays) > 0 {
				fmt.Printf("Weekdays without a session pair: %v\n\n", result.SkippedSessionDays)
			}

			if csvPath != "" {
				if err := writeCSVFile(csvPath, result.Schedule); err != nil {
					return err
				}
				fmt.Printf("Schedule written to %s\n", csvPath)
			}

			if save {
				store, err := openStore()
				if err != nil {
					return err
				}
				defer store.Close()

				record, err := services.PublishSchedule(app.ctx, store, app.logger, result)
				if err != nil {
					return err
				}
				fmt.Printf("✓ Schedule saved with ID %s\n", record.ID)
			}

			return nil
		},
	}

	cmd.Flags().Int64("seed", 0, "Seed for random decisions (0 picks one from the clock)")
	cmd.Flags().String("csv", "", "Write the schedule to this CSV file")
	cmd.Flags().Bool("save", false, "Save the schedule to the database")

	return cmd
}

func historyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List saved schedules, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			schedules, err := services.ListSchedules(app.ctx, store, app.logger)
			if err != nil {
				return err
			}

			if len(schedules) == 0 {
				fmt.Println("No saved schedules.")
				return nil
			}

			fmt.Printf("\nFound %d schedules:\n\n", len(schedules))
			fmt.Printf("%-36s  %-7s  %-20s  %s\n", "ID", "Month", "Generated At", "Seed")
			for _, schedule := range schedules {
				fmt.Printf("%-36s  %-7s  %-20s  %d\n", schedule.ID, schedule.Month, schedule.GeneratedAt, schedule.Seed)
			}
			fmt.Println()

			return nil
		},
	}
}

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <schedule_id>",
		Short: "Show one saved schedule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			record, schedule, err := services.GetSchedule(app.ctx, store, app.logger, args[0])
			if err != nil {
				return err
			}

			fmt.Printf("\nSchedule %s for %s (seed %d, generated %s)\n",
				record.ID, record.Month, record.Seed, record.GeneratedAt)
			printSchedule(schedule)

			return nil
		},
	}
}

// printSchedule renders the day-by-day table
func printSchedule(schedule *roster.Schedule) {
	fmt.Printf("\n%-4s %-9s %-12s %-12s %-12s %-12s\n", "Day", "Session", "First", "Second", "Standby", "Clinic")
	for _, row := range schedule.Rows {
		fmt.Printf("%-4d %-9s %-12s %-12s %-12s %-12s\n",
			row.Day, row.SessionType, row.FirstDoctor, row.SecondDoctor, row.StandbyDoctor, row.Clinic)
	}
	fmt.Println()
}

// writeCSVFile writes the schedule to a CSV file at the given path
func writeCSVFile(path string, schedule *roster.Schedule) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create csv file: %w", err)
	}
	defer file.Close()

	return services.WriteCSV(file, schedule)
}
