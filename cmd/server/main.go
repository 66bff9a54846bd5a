package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/webfolio-ai/webfolio/internal/api"
	"github.com/webfolio-ai/webfolio/internal/config"
	"github.com/webfolio-ai/webfolio/internal/logger"
	"github.com/webfolio-ai/webfolio/internal/orchestrator"
	"github.com/webfolio-ai/webfolio/internal/services"
	"github.com/webfolio-ai/webfolio/internal/state"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger.Setup(cfg.LogLevel)

	if cfg.GeminiAPIKey == "" {
		log.Fatal().Msg("GEMINI_API_KEY is required")
	}

	store, err := state.NewPostgresStore(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create PostgreSQL store")
	}
	defer store.Close()

	stateManager := state.NewStateManager(store)

	costTracker, err := services.NewCostTracker(services.WithStore(store))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create cost tracker")
	}

	generator, err := services.NewGeminiClient(
		services.WithModel(cfg.GeminiModel),
		services.WithMaxOutputTokens(int32(cfg.MaxOutputTokens)),
		services.WithTemperature(float32(cfg.Temperature)),
		services.WithCostTracker(costTracker),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create Gemini client")
	}

	orch := orchestrator.NewGenerationOrchestrator(orchestrator.OrchestratorConfig{
		Generator: generator,
		Policy: orchestrator.NewDefaultContinuationPolicy(orchestrator.PolicyConfig{
			MaxAttempts: cfg.MaxAttempts,
			RetryDelay:  time.Duration(cfg.RetryDelayMs) * time.Millisecond,
		}),
	})

	handler := api.NewPortfolioHandler(orch, stateManager)
	router := api.SetupRoutes(handler)

	srv := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan

		log.Info().Msg("shutting down server")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("server shutdown error")
		}
	}()

	log.Info().Str("addr", cfg.ServerAddr).Msg("server starting")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("server failed to start")
	}

	log.Info().Msg("server stopped")
}
