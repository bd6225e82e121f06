package migrate

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"coachdesk/internal/infrastructure/config"
	"coachdesk/internal/infrastructure/database"
	"coachdesk/internal/infrastructure/migration"
	"coachdesk/internal/infrastructure/repository"
	"coachdesk/internal/infrastructure/seed"
	"coachdesk/internal/shared/biztime"
	"coachdesk/internal/shared/logger"
)

var (
	env      string
	steps    int
	seedFile string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
		Long:  `Manage database migrations: apply pending migrations, roll back, check status, and seed initial data.`,
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")

	cmd.AddCommand(
		newUpCommand(),
		newDownCommand(),
		newStatusCommand(),
		newSeedCommand(),
	)

	return cmd
}

func newUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Run all pending migrations",
		RunE:  runUp,
	}
}

func newDownCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Rollback migrations",
		RunE:  runDown,
	}

	cmd.Flags().IntVarP(&steps, "steps", "n", 1, "Number of migrations to rollback")

	return cmd
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE:  runStatus,
	}
}

func newSeedCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed the initial plan catalog",
		Long:  `Load the plan catalog from a YAML seed file. Existing plans are left untouched.`,
		RunE:  runSeed,
	}

	cmd.Flags().StringVarP(&seedFile, "file", "f", "./configs/plans.yaml", "Path to the plan seed file")

	return cmd
}

func initEnv() (string, logger.Interface, error) {
	cfg, err := config.Load(env)
	if err != nil {
		return "", nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		return "", nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := biztime.Init(""); err != nil {
		return "", nil, fmt.Errorf("failed to initialize business timezone: %w", err)
	}

	if err := database.Init(&cfg.Database); err != nil {
		return "", nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	scriptsPath, err := filepath.Abs("./internal/infrastructure/migration/scripts")
	if err != nil {
		return "", nil, fmt.Errorf("failed to get scripts path: %w", err)
	}

	return scriptsPath, logger.NewLogger(), nil
}

func runUp(cmd *cobra.Command, args []string) error {
	scriptsPath, _, err := initEnv()
	if err != nil {
		return err
	}
	defer database.Close()

	strategy := migration.NewGolangMigrateStrategy(scriptsPath)
	return strategy.Migrate(database.Get())
}

func runDown(cmd *cobra.Command, args []string) error {
	scriptsPath, _, err := initEnv()
	if err != nil {
		return err
	}
	defer database.Close()

	strategy := migration.NewGolangMigrateStrategy(scriptsPath)
	return strategy.MigrateDown(database.Get(), steps)
}

func runStatus(cmd *cobra.Command, args []string) error {
	scriptsPath, log, err := initEnv()
	if err != nil {
		return err
	}
	defer database.Close()

	strategy := migration.NewGolangMigrateStrategy(scriptsPath)
	version, dirty, err := strategy.GetVersion(database.Get())
	if err != nil {
		return fmt.Errorf("failed to get migration version: %w", err)
	}

	log.Infow("migration status", "version", version, "dirty", dirty)
	return nil
}

func runSeed(cmd *cobra.Command, args []string) error {
	_, log, err := initEnv()
	if err != nil {
		return err
	}
	defer database.Close()

	planRepo := repository.NewPlanRepository(database.Get(), log)
	seeder := seed.NewPlanSeeder(planRepo, log)

	created, err := seeder.Seed(context.Background(), seedFile)
	if err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}

	log.Infow("seeding completed", "created", created)
	return nil
}
