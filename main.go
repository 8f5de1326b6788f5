package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"

	"github.com/frostline-foods/frostline-admin/pkg/auth"
	"github.com/frostline-foods/frostline-admin/pkg/config"
	"github.com/frostline-foods/frostline-admin/pkg/database"
	"github.com/frostline-foods/frostline-admin/pkg/handlers"
	"github.com/frostline-foods/frostline-admin/pkg/llm"
	"github.com/frostline-foods/frostline-admin/pkg/middleware"
	"github.com/frostline-foods/frostline-admin/pkg/repositories"
	"github.com/frostline-foods/frostline-admin/pkg/services"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	cfg, err := config.Load(Version)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := newLogger(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Configuration loaded",
		zap.String("environment", cfg.Env),
		zap.String("base_url", cfg.BaseURL),
		zap.Bool("auth_verification", cfg.Auth.EnableVerification),
		zap.String("database", cfg.Database.Database),
		zap.Bool("redis", cfg.Redis.Host != ""),
		zap.Bool("ai_insights", cfg.AI.IsAvailable()))

	ctx := context.Background()

	db, err := database.NewConnection(ctx, &database.Config{
		URL:            cfg.Database.ConnectionString(),
		MaxConnections: cfg.Database.MaxConnections,
	})
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	migrationDB := stdlib.OpenDBFromPool(db.Pool)
	if err := database.RunMigrations(migrationDB, cfg.Database.MigrationsPath, logger); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	redisClient, err := database.NewRedisClient(&cfg.Redis)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	cache := database.NewCache(redisClient, time.Duration(cfg.Redis.AuditCacheTTLS)*time.Second, logger)

	rpc := database.NewRPC(db, logger)

	// Repositories
	auditRepo := repositories.NewAuditRepository(db)
	adminRepo := repositories.NewAdminRepository(db)
	productRepo := repositories.NewProductRepository(db)
	orderRepo := repositories.NewOrderRepository(db)
	supplierOrderRepo := repositories.NewSupplierOrderRepository(db)
	alertRepo := repositories.NewAlertRepository(db)

	// Services
	auditService := services.NewAuditService(auditRepo, adminRepo, logger)
	adminService := services.NewAdminService(adminRepo, rpc, auditService, logger)
	productService := services.NewProductService(productRepo, auditService, logger)
	orderService := services.NewOrderService(orderRepo, auditService, logger)
	supplierOrderService := services.NewSupplierOrderService(supplierOrderRepo, rpc, auditService, logger)
	alertService := services.NewAlertService(alertRepo, productRepo, auditService, logger)
	analyticsService := services.NewAnalyticsService(orderRepo, productRepo, alertRepo, logger)

	var llmClient llm.Client
	if cfg.AI.IsAvailable() {
		llmClient, err = llm.NewFromConfig(&cfg.AI, logger)
		if err != nil {
			logger.Fatal("Failed to create AI client", zap.Error(err))
		}
	}
	insightService := services.NewInsightService(analyticsService, llmClient, logger)

	// Authentication
	jwksClient, err := auth.NewJWKSClient(&auth.JWKSConfig{
		EnableVerification: cfg.Auth.EnableVerification,
		JWKSEndpoints:      cfg.Auth.JWKSEndpoints,
	})
	if err != nil {
		logger.Fatal("Failed to create JWKS client", zap.Error(err))
	}
	authMiddleware := auth.NewMiddleware(jwksClient, logger)

	mux := http.NewServeMux()

	handlers.NewHealthHandler(cfg, logger).RegisterRoutes(mux)
	handlers.NewAuditHandler(auditService, cache, logger).RegisterRoutes(mux, authMiddleware)
	handlers.NewAdminsHandler(adminService, logger).RegisterRoutes(mux, authMiddleware)
	handlers.NewProductsHandler(productService, logger).RegisterRoutes(mux, authMiddleware)
	handlers.NewOrdersHandler(orderService, logger).RegisterRoutes(mux, authMiddleware)
	handlers.NewSupplierOrdersHandler(supplierOrderService, logger).RegisterRoutes(mux, authMiddleware)
	handlers.NewAlertsHandler(alertService, logger).RegisterRoutes(mux, authMiddleware)
	handlers.NewAnalyticsHandler(analyticsService, insightService, logger).RegisterRoutes(mux, authMiddleware)

	handler := middleware.RequestLogger(logger)(mux)

	addr := cfg.BindAddr + ":" + cfg.Port
	logger.Info("Starting frostline-admin",
		zap.String("addr", addr),
		zap.String("version", cfg.Version))
	if err := http.ListenAndServe(addr, handler); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}
}

func newLogger(env string) (*zap.Logger, error) {
	if env == "local" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
