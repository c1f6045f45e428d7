package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"copymill/internal/api"
	"copymill/internal/api/handlers"
	"copymill/internal/repository"
	"copymill/internal/service"
	"copymill/pkg/background"
	"copymill/pkg/cache"
	"copymill/pkg/config"
	"copymill/pkg/logger"
	"copymill/pkg/postgres"

	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting copymill generation service")

	// Initialize database
	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Initialize repositories
	contentRepo := repository.NewContentRepository(db, appLogger)
	companyRepo := repository.NewCompanyRepository(db, appLogger)
	vaultRepo := repository.NewVaultRepository(db, appLogger)
	faqRepo := repository.NewFAQRepository(db, appLogger)
	styleRepo := repository.NewStyleRepository(db, appLogger)
	templateRepo := repository.NewTemplateRepository(db, appLogger)
	lessonRepo := repository.NewLessonRepository(db, appLogger)
	usageRepo := repository.NewUsageRepository(db, appLogger)

	// Shared infrastructure: context cache with a memory sweep, plus the
	// runner for detached background work
	contextCache := cache.New()
	stopJanitor := contextCache.StartJanitor(time.Minute)
	defer stopJanitor()

	runner := background.NewRunner(appLogger)

	// Initialize services
	llmService, err := service.NewLLMService(&cfg.OpenAI, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize LLM client", zap.Error(err))
	}

	usageService := service.NewUsageService(usageRepo, runner, appLogger)
	contextService := service.NewContextService(
		companyRepo, vaultRepo, faqRepo, styleRepo, templateRepo, lessonRepo, contentRepo,
		contextCache, &cfg.Generation, appLogger,
	)
	lessonService := service.NewLessonService(
		lessonRepo, llmService, usageService, runner,
		cfg.OpenAI.Model, cfg.Generation.MaxActiveLessons, cfg.Generation.TargetLessons,
		appLogger,
	)
	genService := service.NewGenerationService(
		contentRepo, contextService, llmService, usageService, lessonService,
		cfg.OpenAI.Model, appLogger,
	)
	styleService := service.NewStyleService(
		contentRepo, styleRepo, contextService, llmService, usageService,
		cfg.OpenAI.Model, appLogger,
	)

	// Initialize handlers
	genHandler := handlers.NewGenerationHandler(genService, styleService, appLogger)
	contentHandler := handlers.NewContentHandler(genService, appLogger)

	// Setup router
	app := api.SetupRouter(genHandler, contentHandler, appLogger)

	// Start server
	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}

	// Drain detached work (usage logs, consolidations) before closing the pool
	drainCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := runner.Shutdown(drainCtx); err != nil {
		appLogger.Warn("Background tasks did not drain in time", zap.Error(err))
	}
}
