package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"talentmatch-backend/config"
	_ "talentmatch-backend/docs" // Important for Swagger
	v1 "talentmatch-backend/internal/delivery/http/v1"
	"talentmatch-backend/internal/notification"
	"talentmatch-backend/internal/repository/postgres"
	"talentmatch-backend/internal/usecase"
	"talentmatch-backend/pkg/auth"
	"talentmatch-backend/pkg/database"
	"talentmatch-backend/pkg/email"
	"talentmatch-backend/pkg/logger"
	"talentmatch-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

// @title           TalentMatch Recruitment API
// @version         1.0
// @description     Candidate application lifecycle and compatibility backend.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting talentmatch backend", "port", cfg.Port)

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Setup Repositories
	candidateRepo := postgres.NewCandidateRepository(dbPool)
	jobRepo := postgres.NewJobRepository(dbPool)

	// 5. Setup Mailer + Notification Dispatcher
	mailer := email.NewMailer(cfg)
	if !mailer.IsConfigured() {
		logger.Log.Warn("Email service not fully configured - candidate notifications will fail")
	}
	notifier := notification.NewDispatcher(mailer, cfg.MailQueueSize, logger.Log)
	defer notifier.Close()

	// 6. Setup UseCases
	validate := validator.New()
	validation.RegisterValidators(validate)
	tokens := auth.NewTokenManager(cfg.JWTSecret, time.Duration(cfg.TokenTTLHours)*time.Hour)
	authUC := usecase.NewAuthUsecase(cfg, tokens)
	candidateUC := usecase.NewCandidateUsecase(candidateRepo, jobRepo, notifier, validate)
	jobUC := usecase.NewJobUsecase(jobRepo, validate)

	// 7. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:      authUC,
		CandidateUC: candidateUC,
		JobUC:       jobUC,
		Tokens:      tokens,
		Config:      cfg,
	})

	// 8. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
