package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	adminUsecases "coachdesk/internal/application/admin/usecases"
	catalogUsecases "coachdesk/internal/application/catalog/usecases"
	subUsecases "coachdesk/internal/application/subscription/usecases"
	"coachdesk/internal/infrastructure/auth"
	"coachdesk/internal/infrastructure/cache"
	"coachdesk/internal/infrastructure/config"
	"coachdesk/internal/infrastructure/email"
	"coachdesk/internal/infrastructure/permission"
	"coachdesk/internal/infrastructure/repository"
	"coachdesk/internal/interfaces/http/handlers"
	"coachdesk/internal/interfaces/http/middleware"
	"coachdesk/internal/shared/authorization"
	"coachdesk/internal/shared/db"
	"coachdesk/internal/shared/logger"
	"coachdesk/internal/shared/services/markdown"

	_ "coachdesk/docs"
)

// Router wires the HTTP surface: repositories, use cases, handlers, and
// route registration.
type Router struct {
	engine         *gin.Engine
	cfg            *config.Config
	log            logger.Interface
	server         *http.Server
	sweepUC        *subUsecases.MarkPastDueUseCase
	authHandler    *handlers.AuthHandler
	planHandler    *handlers.PlanHandler
	publicHandler  *handlers.PublicPlanHandler
	subHandler     *handlers.SubscriptionHandler
	auditHandler   *handlers.AuditHandler
	healthHandler  *handlers.HealthHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter builds the router and all its dependencies.
func NewRouter(gormDB *gorm.DB, redisClient *redis.Client, cfg *config.Config, log logger.Interface) (*Router, error) {
	gin.SetMode(cfg.Server.Mode)
	engine := gin.New()

	planRepo := repository.NewPlanRepository(gormDB, log)
	trainerRepo := repository.NewTrainerRepository(gormDB, log)
	subRepo := repository.NewSubscriptionRepository(gormDB, log)
	historyRepo := repository.NewHistoryRepository(gormDB, log)
	auditRepo := repository.NewAuditRepository(gormDB, log)
	userRepo := repository.NewUserRepository(gormDB, log)

	txManager := db.NewTransactionManager(gormDB)
	planCache := cache.NewRedisPublicPlanCache(redisClient, log)
	markdownSvc := markdown.NewMarkdownService()

	enforcer, err := permission.NewEnforcer(gormDB, cfg.Permission.ModelPath, log)
	if err != nil {
		return nil, fmt.Errorf("failed to build permission enforcer: %w", err)
	}
	if err := enforcer.InitDefaultPolicies(log); err != nil {
		return nil, fmt.Errorf("failed to seed permission policies: %w", err)
	}

	hasher := auth.NewBcryptPasswordHasher(cfg.Auth.Password.BcryptCost)
	jwtService := auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.AccessExpMinutes)

	var notifier subUsecases.PastDueNotifier
	if cfg.Subscription.NotifyPastDue {
		notifier = email.NewSMTPNotifier(cfg.Email, log)
	}

	createPlanUC := catalogUsecases.NewCreatePlanUseCase(planRepo, auditRepo, txManager, planCache, log)
	updatePlanUC := catalogUsecases.NewUpdatePlanUseCase(planRepo, subRepo, auditRepo, txManager, planCache, log)
	deletePlanUC := catalogUsecases.NewDeletePlanUseCase(planRepo, subRepo, auditRepo, txManager, planCache, log)
	duplicatePlanUC := catalogUsecases.NewDuplicatePlanUseCase(planRepo, auditRepo, txManager, planCache, log)
	getPlanUC := catalogUsecases.NewGetPlanUseCase(planRepo, log)
	listPlansUC := catalogUsecases.NewListPlansUseCase(planRepo, log)
	setPlanStatusUC := catalogUsecases.NewSetPlanStatusUseCase(planRepo, auditRepo, txManager, planCache, log)
	reorderPlansUC := catalogUsecases.NewReorderPlansUseCase(planRepo, auditRepo, txManager, planCache, log)
	countPlanTrainersUC := catalogUsecases.NewCountPlanTrainersUseCase(planRepo, subRepo, log)
	getPublicPlansUC := catalogUsecases.NewGetPublicPlansUseCase(planRepo, planCache, markdownSvc, log)

	assignPlanUC := subUsecases.NewAssignPlanUseCase(trainerRepo, planRepo, subRepo, historyRepo, auditRepo, txManager, enforcer, log)
	cancelUC := subUsecases.NewCancelSubscriptionUseCase(trainerRepo, planRepo, subRepo, historyRepo, auditRepo, txManager, enforcer, log)
	getSubUC := subUsecases.NewGetSubscriptionUseCase(trainerRepo, planRepo, subRepo, log)
	listHistoryUC := subUsecases.NewListHistoryUseCase(trainerRepo, historyRepo, log)
	sweepUC := subUsecases.NewMarkPastDueUseCase(trainerRepo, planRepo, subRepo, historyRepo, auditRepo, txManager, notifier, log)

	loginUC := adminUsecases.NewLoginUseCase(userRepo, hasher, jwtService, log)
	listAuditLogUC := adminUsecases.NewListAuditLogUseCase(auditRepo, log)

	return &Router{
		engine:  engine,
		cfg:     cfg,
		log:     log,
		sweepUC: sweepUC,
		authHandler: handlers.NewAuthHandler(loginUC),
		planHandler: handlers.NewPlanHandler(
			createPlanUC, updatePlanUC, deletePlanUC, duplicatePlanUC,
			getPlanUC, listPlansUC, setPlanStatusUC, reorderPlansUC,
			countPlanTrainersUC,
		),
		publicHandler:  handlers.NewPublicPlanHandler(getPublicPlansUC),
		subHandler:     handlers.NewSubscriptionHandler(assignPlanUC, cancelUC, getSubUC, listHistoryUC),
		auditHandler:   handlers.NewAuditHandler(listAuditLogUC),
		healthHandler:  handlers.NewHealthHandler(gormDB),
		authMiddleware: middleware.NewAuthMiddleware(jwtService, log),
	}, nil
}

// SweepUseCase exposes the past-due sweep for the scheduler.
func (r *Router) SweepUseCase() *subUsecases.MarkPastDueUseCase {
	return r.sweepUC
}

// SetupRoutes configures all HTTP routes
func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.Logger(r.log))
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.CORS(r.cfg.Server.AllowedOrigins))

	r.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.engine.GET("/health", r.healthHandler.Health)

	r.engine.GET("/plans/public", r.publicHandler.GetPublicPlans)

	authGroup := r.engine.Group("/auth")
	{
		authGroup.POST("/login", r.authHandler.Login)
	}

	admin := r.engine.Group("/admin")
	admin.Use(r.authMiddleware.RequireAuth(), authorization.RequireAdmin())
	{
		admin.POST("/plans", r.planHandler.CreatePlan)
		admin.GET("/plans", r.planHandler.ListPlans)
		admin.PATCH("/plans/:id/order", r.planHandler.ReorderPlan)
		admin.GET("/plans/:id", r.planHandler.GetPlan)
		admin.PUT("/plans/:id", r.planHandler.UpdatePlan)
		admin.DELETE("/plans/:id", r.planHandler.DeletePlan)
		admin.POST("/plans/:id/duplicate", r.planHandler.DuplicatePlan)
		admin.PATCH("/plans/:id/status", r.planHandler.UpdatePlanStatus)
		admin.GET("/plans/:id/trainer-count", r.planHandler.GetPlanTrainerCount)

		admin.PUT("/trainers/:trainer_id/subscription", r.subHandler.AssignPlan)
		admin.POST("/trainers/:trainer_id/subscription/cancel", r.subHandler.CancelSubscription)
		admin.GET("/trainers/:trainer_id/subscription", r.subHandler.GetSubscription)
		admin.GET("/trainers/:trainer_id/subscription/history", r.subHandler.ListHistory)

		admin.GET("/audit", r.auditHandler.ListAuditLog)
	}
}

// Start runs the HTTP server until the context is canceled.
func (r *Router) Start(ctx context.Context) error {
	r.server = &http.Server{
		Addr:              r.cfg.Server.GetAddr(),
		Handler:           r.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		r.log.Infow("HTTP server listening", "addr", r.server.Addr)
		if err := r.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return fmt.Errorf("HTTP server failed: %w", err)
	case <-ctx.Done():
		return r.Shutdown()
	}
}

// Shutdown gracefully stops the HTTP server.
func (r *Router) Shutdown() error {
	if r.server == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	r.log.Infow("shutting down HTTP server")
	return r.server.Shutdown(ctx)
}
