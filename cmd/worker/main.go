package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"coachdesk/internal/application/subscription/usecases"
	"coachdesk/internal/infrastructure/config"
	"coachdesk/internal/infrastructure/database"
	"coachdesk/internal/infrastructure/email"
	"coachdesk/internal/infrastructure/repository"
	"coachdesk/internal/infrastructure/scheduler"
	"coachdesk/internal/shared/biztime"
	"coachdesk/internal/shared/db"
	"coachdesk/internal/shared/logger"
)

// Standalone past-due sweep worker. Runs the same sweep as the server's
// embedded scheduler, for deployments that keep background work off the
// API nodes.
func main() {
	env := "development"
	if len(os.Args) > 1 {
		env = os.Args[1]
	}
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(env)
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	log := logger.NewLogger()
	log.Infow("starting past-due worker", "environment", env)

	if err := biztime.Init(""); err != nil {
		log.Fatalw("failed to initialize business timezone", "error", err)
	}

	if err := database.Init(&cfg.Database); err != nil {
		log.Fatalw("failed to initialize database", "error", err)
	}
	defer database.Close()

	gormDB := database.Get()
	trainerRepo := repository.NewTrainerRepository(gormDB, log)
	planRepo := repository.NewPlanRepository(gormDB, log)
	subRepo := repository.NewSubscriptionRepository(gormDB, log)
	historyRepo := repository.NewHistoryRepository(gormDB, log)
	auditRepo := repository.NewAuditRepository(gormDB, log)
	txManager := db.NewTransactionManager(gormDB)

	var notifier usecases.PastDueNotifier
	if cfg.Subscription.NotifyPastDue {
		notifier = email.NewSMTPNotifier(cfg.Email, log)
	}

	sweepUC := usecases.NewMarkPastDueUseCase(trainerRepo, planRepo, subRepo,
		historyRepo, auditRepo, txManager, notifier, log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	interval := time.Duration(cfg.Subscription.SweepIntervalMinutes) * time.Minute
	sched := scheduler.NewPastDueScheduler(sweepUC, interval, log)
	sched.Start(ctx)

	<-ctx.Done()
	sched.Stop()
	log.Infow("past-due worker stopped")
}
