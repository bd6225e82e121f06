package admin

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"coachdesk/internal/application/admin/usecases"
	"coachdesk/internal/infrastructure/auth"
	"coachdesk/internal/infrastructure/config"
	"coachdesk/internal/infrastructure/database"
	"coachdesk/internal/infrastructure/permission"
	"coachdesk/internal/infrastructure/repository"
	"coachdesk/internal/shared/biztime"
	"coachdesk/internal/shared/logger"
)

var (
	env      string
	email    string
	name     string
	password string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create a staff admin account",
		Long:  `Create an admin account that can log into the management API.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().StringVar(&email, "email", "", "Admin email (required)")
	cmd.Flags().StringVar(&name, "name", "", "Admin display name (required)")
	cmd.Flags().StringVar(&password, "password", "", "Admin password, at least 8 characters (required)")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("password")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	if err := biztime.Init(""); err != nil {
		return fmt.Errorf("failed to initialize business timezone: %w", err)
	}

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	log := logger.NewLogger()
	userRepo := repository.NewUserRepository(database.Get(), log)
	hasher := auth.NewBcryptPasswordHasher(cfg.Auth.Password.BcryptCost)

	createAdminUC := usecases.NewCreateAdminUseCase(userRepo, hasher, log)
	admin, err := createAdminUC.Execute(context.Background(), usecases.CreateAdminCommand{
		Email:    email,
		Name:     name,
		Password: password,
	})
	if err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}

	// Grant the admin role so the RBAC enforcer recognizes the account.
	enforcer, err := permission.NewEnforcer(database.Get(), cfg.Permission.ModelPath, log)
	if err != nil {
		return fmt.Errorf("failed to build permission enforcer: %w", err)
	}
	if err := enforcer.InitDefaultPolicies(log); err != nil {
		return fmt.Errorf("failed to seed permission policies: %w", err)
	}
	if err := enforcer.AddRoleForUser(strconv.FormatUint(uint64(admin.ID()), 10), "admin"); err != nil {
		return fmt.Errorf("failed to grant admin role: %w", err)
	}

	log.Infow("admin account ready", "sid", admin.SID(), "email", admin.Email())
	return nil
}
