package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/shreyan001/adaptic-backend/internal/agent/llm"
	"github.com/shreyan001/adaptic-backend/internal/agent/model"
	"github.com/shreyan001/adaptic-backend/internal/agent/repo"
	"github.com/shreyan001/adaptic-backend/internal/agent/session"
	"github.com/shreyan001/adaptic-backend/internal/agent/stages"
	"github.com/shreyan001/adaptic-backend/internal/core"
	"github.com/shreyan001/adaptic-backend/internal/server"
	logx "github.com/shreyan001/adaptic-backend/pkg/logger"
	pkgredis "github.com/shreyan001/adaptic-backend/pkg/redis"
)

// AppConfig defines all configurable parameters for the agent service,
// sourced from environment variables (loaded from .env for local runs).
type AppConfig struct {
	Environment string `envconfig:"APP_ENV" default:"development"`

	// Infrastructure
	Redis pkgredis.Config

	// LLM provider
	APIKey  string `envconfig:"GEMINI_API_KEY" required:"true"`
	BaseURL string `envconfig:"GEMINI_BASE_URL"`

	// Agent configs
	Agent      model.AgentModelConfig
	Session    model.SessionConfig
	Transcript model.TranscriptConfig
	Server     model.ServerConfig
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(".env"); err != nil {
		logx.Warn().Err(err).Msg("Could not load .env file")
	}

	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		logx.Fatal().Err(err).Msg("Failed to process environment config")
	}

	logx.Init(logx.LoggerOpts{Environment: core.ParseEnvironment(cfg.Environment)})

	caller, err := llm.NewGeminiCaller(ctx, llm.Config{
		APIKey:  cfg.APIKey,
		BaseURL: cfg.BaseURL,
		Model:   cfg.Agent,
	})
	if err != nil {
		logx.Fatal().Err(err).Msg("Failed to initialise Gemini caller")
	}

	machine, err := stages.NewMachine(caller, cfg.Session.MaxStageSteps)
	if err != nil {
		logx.Fatal().Err(err).Msg("Failed to build conversation machine")
	}

	runTimeout, err := time.ParseDuration(cfg.Session.RunTimeout)
	if err != nil {
		logx.Fatal().Str("run_timeout", cfg.Session.RunTimeout).Err(err).Msg("Invalid SESSION_RUN_TIMEOUT")
	}
	controller := session.NewController(machine, runTimeout)

	// Transcript recording is optional; without Redis the agent runs fully
	// stateless.
	var transcripts model.TranscriptStore
	if cfg.Redis.Enabled() {
		ttl, err := time.ParseDuration(cfg.Transcript.TTL)
		if err != nil {
			logx.Fatal().Str("ttl", cfg.Transcript.TTL).Err(err).Msg("Invalid TRANSCRIPT_TTL")
		}
		rdb, err := cfg.Redis.New()
		if err != nil {
			logx.Fatal().Err(err).Msg("Failed to initialise Redis client")
		}
		defer rdb.Close()
		transcripts = repo.NewRedisTranscriptStore(rdb, ttl)
		logx.Info().Msg("Transcript recording enabled")
	}

	srv := server.New(cfg.Server, controller, transcripts)
	httpSrv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: srv.Router(),
	}

	go func() {
		logx.Info().Str("addr", cfg.Server.Addr).Msg("Agent server listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logx.Fatal().Err(err).Msg("Server failed")
		}
	}()

	<-ctx.Done()
	logx.Info().Msg("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logx.Error().Err(err).Msg("Graceful shutdown failed")
	}
}
