package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/buildwise/buildwise-backend/config"
	"github.com/buildwise/buildwise-backend/internal/bootstrap"
	"github.com/buildwise/buildwise-backend/internal/estimation/costcal"
	"github.com/buildwise/buildwise-backend/internal/estimation/rates"
	"github.com/buildwise/buildwise-backend/internal/logging"
	"github.com/buildwise/buildwise-backend/internal/planner/llm"
	"github.com/rs/zerolog/log"
)

const serviceName = "buildwise-backend"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	logging.Init(cfg.App.LogLevel, cfg.App.Environment)
	bootstrap.SetGinMode(cfg.App.Environment)

	table, err := rates.Load(cfg.Estimation.RatesFile)
	if err != nil {
		log.Fatal().Err(err).Str("file", cfg.Estimation.RatesFile).Msg("failed to load rate table")
	}
	log.Info().
		Strs("countries", table.Countries()).
		Strs("currencies", table.Currencies()).
		Msg("rate table loaded")

	ctx := context.Background()

	if !cfg.CacheEnabled() {
		log.Info().Msg("REDIS_ADDR not set, plan cache disabled")
	}

	redisClient, err := bootstrap.OpenRedis(ctx, bootstrap.RedisOptions{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		// plans are still served, just not cached
		log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis unavailable, plan cache disabled")
		redisClient = nil
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	llmClient := llm.New(llm.Options{
		BaseURL:           cfg.LLM.BaseURL,
		APIKey:            cfg.LLM.APIKey,
		Model:             cfg.LLM.Model,
		Temperature:       cfg.LLM.Temperature,
		MaxTokens:         cfg.LLM.MaxTokens,
		Timeout:           cfg.LLM.Timeout,
		RequestsPerMinute: cfg.LLM.RequestsPerMinute,
	})
	if !llmClient.Configured() {
		log.Warn().Msg("GROQ_API_KEY not set, plan generation disabled")
	}

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: serviceName,
		Version:     cfg.App.Version,
		CORSOrigins: cfg.Server.CORSOrigins,
		APIKey:      cfg.Security.APIKey,
		Calculator:  costcal.NewCalculator(table),
		LLM:         llmClient,
		LLMTimeout:  cfg.LLM.Timeout,
		Redis:       redisClient,
		PlanTTL:     cfg.Redis.PlanTTL,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.LLM.Timeout + 30*time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Server.Port).Str("env", cfg.App.Environment).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		log.Fatal().Err(err).Msg("server failed")
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
