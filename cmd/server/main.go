package main

import (
	"context"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/subashmuthub/Hacktivators/internal/api"
	"github.com/subashmuthub/Hacktivators/internal/curriculum"
	"github.com/subashmuthub/Hacktivators/internal/domain/knowledgegraph"
	"github.com/subashmuthub/Hacktivators/internal/domain/mastery"
	"github.com/subashmuthub/Hacktivators/internal/generator"
	"github.com/subashmuthub/Hacktivators/internal/infrastructure/config"
	"github.com/subashmuthub/Hacktivators/internal/service"
	"github.com/subashmuthub/Hacktivators/internal/store"

	_ "github.com/subashmuthub/Hacktivators/docs" // generated swagger docs
)

// @title           Adaptive Quiz Intelligence API
// @version         1.0
// @description     Statistical backend for adaptive quizzing — mastery tracking, ability estimation, behavioral analysis, and knowledge graphs.

// @host      localhost:8080
// @BasePath  /

func main() {
	cfg := config.Load()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// ── Dependencies ────────────────────────────────────────────────
	db, err := store.NewSQLite(cfg.DBPath)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	table := curriculum.Default()
	if cfg.CurriculumPath != "" {
		table, err = curriculum.Load(cfg.CurriculumPath)
		if err != nil {
			logger.Error("failed to load curriculum", "path", cfg.CurriculumPath, "error", err)
			os.Exit(1)
		}
	}

	builder := knowledgegraph.NewBuilder(table, knowledgegraph.DefaultConfig())
	graphs, err := service.NewGraphService(builder, db, cfg.GraphCacheSize, cfg.HistoryWindow, logger)
	if err != nil {
		logger.Error("failed to create graph service", "error", err)
		os.Exit(1)
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	gen := generator.NewOpenAIGenerator(cfg.LLMURL, cfg.LLMModel, rng)

	analysis := service.NewAnalysisService(cfg.AnalysisWorkers, logger)
	learners := service.NewLearnerService(db, mastery.DefaultParams(), graphs, logger)
	handler := api.NewHandler(analysis, graphs, learners, gen, logger)

	// ── Routes ──────────────────────────────────────────────────────
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "ok"}`))
	})

	api.RegisterRoutes(mux, handler)

	// Swagger UI served at /swagger/
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	// ── Middleware chain: Logging → CORS → mux ──────────────────────
	logged := api.Logging(logger)(api.CORS(mux))

	// ── Server ──────────────────────────────────────────────────────
	server := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           logged,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		logger.Info("shutting down server")
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("server forced to shutdown", "error", err)
		}
	}()

	logger.Info("starting server", "address", cfg.ServerAddress)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server failed to start", "error", err)
		os.Exit(1)
	}
}
