package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aegntic/growth-service/internal/app/background"
	"github.com/aegntic/growth-service/internal/app/setup"
	deliveryhttp "github.com/aegntic/growth-service/internal/delivery/http"
	"github.com/aegntic/growth-service/internal/delivery/http/handlers"
	"github.com/aegntic/growth-service/internal/infrastructure/migrate"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("failed to load .env")
	}

	deps, err := setup.InitializeDependencies()
	if err != nil {
		log.Fatalf("failed to init dependencies: %v", err)
	}
	defer deps.GrowthPublisher.Close()

	if deps.Config.MigrationsPath != "" {
		if err := migrate.RunMigrations(deps.DB, deps.Config.MigrationsPath); err != nil {
			log.Fatalf("failed to run migrations: %v", err)
		}
	}

	admissionEngine, err := setup.InitializeFraudGuard(deps)
	if err != nil {
		log.Fatalf("failed to init fraud guard: %v", err)
	}

	useCases, err := setup.InitializeUseCases(deps, admissionEngine)
	if err != nil {
		log.Fatalf("failed to init usecases: %v", err)
	}

	validate := validator.New()

	router := deliveryhttp.NewRouter(deliveryhttp.Handlers{
		Event:      handlers.NewEventHandler(useCases.AdmissionUsecase, validate),
		Site:       handlers.NewSiteHandler(useCases.SiteUsecase, useCases.ScoreUsecase, useCases.PromotionUsecase, validate),
		Showcase:   handlers.NewShowcaseHandler(useCases.PromotionUsecase),
		Commission: handlers.NewCommissionHandler(useCases.CommissionUsecase, validate),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tasks := background.NewBackgroundTasks(
		useCases.ScoreUsecase,
		useCases.PromotionUsecase,
		deps.Config.Promotion.ExpirySweep,
		deps.Config.Scoring.BatchWindow,
		deps.Config.Scoring.BatchSpec,
		deps.Config.Showcase.RefreshSpec,
		deps.Logger,
	)
	if err := tasks.StartAll(ctx); err != nil {
		log.Fatalf("failed to start background tasks: %v", err)
	}
	defer tasks.Stop()

	addr := fmt.Sprintf("%s:%s", deps.Config.HTTPServer.Host, deps.Config.HTTPServer.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		deps.Logger.Info("http server started", "addr", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to serve: %v", err)
		}
	}()

	<-ctx.Done()
	deps.Logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		deps.Logger.Error("http shutdown failed", "error", err)
	}
}
