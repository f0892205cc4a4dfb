package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/nguyentantai21042004/live-summary/internal/backend"
	"github.com/nguyentantai21042004/live-summary/internal/config"
	"github.com/nguyentantai21042004/live-summary/internal/httpapi"
	"github.com/nguyentantai21042004/live-summary/internal/hub"
	"github.com/nguyentantai21042004/live-summary/internal/logger"
	"github.com/nguyentantai21042004/live-summary/internal/orchestrator"
	"github.com/nguyentantai21042004/live-summary/internal/processor"
	"github.com/nguyentantai21042004/live-summary/internal/summarizer"
	"github.com/nguyentantai21042004/live-summary/internal/transcript"
	"github.com/nguyentantai21042004/live-summary/internal/watcher"
	"github.com/nguyentantai21042004/live-summary/pkg/executor"
)

func main() {
	// Load .env file if it exists (ignore error if file doesn't exist)
	_ = godotenv.Load()

	configPath := "config.yaml"
	if p := os.Getenv("LIVE_SUMMARY_CONFIG"); p != "" {
		configPath = p
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewWithFormat(cfg.Logging.Level, cfg.Logging.Format, os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info(ctx, "========================================")
	log.Info(ctx, "Live Summary")
	log.Info(ctx, "========================================")

	if err := run(ctx, cfg, log); err != nil && !errors.Is(err, context.Canceled) {
		log.Error(ctx, "Server error: %v", err)
		os.Exit(1)
	}

	log.Info(context.Background(), "Live Summary stopped")
}

func run(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	engine := summarizer.New(
		summarizer.Select(ctx, buildBackends(cfg, log), cfg.BackendTimeout(), log.With("summarizer")),
		cfg.Summary.MinWords,
		log.With("summarizer"),
	)

	var orch orchestrator.Orchestrator
	h := hub.New(func() orchestrator.View { return orch.State() }, cfg.Hub.SendBuffer, log.With("hub"))
	orch = orchestrator.New(transcript.NewStore(), engine, h, cfg.Summary.QueueSize, log.With("orchestrator"))
	defer h.Close()

	if cfg.Server.GinMode != "" {
		gin.SetMode(cfg.Server.GinMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: httpapi.New(orch, h, log.With("http")).Engine(),
	}

	var inbox watcher.Watcher
	if cfg.Inbox.Enabled {
		w, err := startInbox(cfg, orch, log.With("inbox"))
		if err != nil {
			return err
		}
		defer w.Stop()
		inbox = w
	}

	g, ctx := errgroup.WithContext(ctx)

	if inbox != nil {
		g.Go(func() error {
			return inbox.Start(ctx)
		})
	}

	g.Go(func() error {
		return orch.Run(ctx)
	})

	g.Go(func() error {
		log.Info(ctx, "Listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		log.Info(context.Background(), "Shutting down gracefully...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func buildBackends(cfg *config.Config, log logger.Logger) []backend.Backend {
	var backends []backend.Backend
	for _, name := range cfg.Backends.Order {
		switch name {
		case config.BackendGemini:
			g := cfg.Backends.Gemini
			backends = append(backends, backend.NewGemini(g.APIKeys, g.Model, g.MaxInputWords, log.With("gemini")))
		case config.BackendOpenAI:
			o := cfg.Backends.OpenAI
			backends = append(backends, backend.NewOpenAI(o.APIKey, o.Model, o.MaxInputWords, log.With("openai")))
		case config.BackendCommand:
			c := cfg.Backends.Command
			backends = append(backends, backend.NewCommand(executor.New(), c.BinaryPath, c.Args, c.MaxInputWords))
		}
	}
	return backends
}

func startInbox(cfg *config.Config, orch orchestrator.Orchestrator, log logger.Logger) (watcher.Watcher, error) {
	for _, dir := range []string{cfg.Inbox.Dir, cfg.Inbox.Archived} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	proc := processor.New(orch, cfg.Inbox.Archived, cfg.Inbox.DefaultSpeaker, log)
	w, err := watcher.New(cfg.Inbox.Dir, watcher.CaptionExtensions, proc.Process, log, cfg.Performance.MaxConcurrent)
	if err != nil {
		return nil, fmt.Errorf("create inbox watcher: %w", err)
	}
	return w, nil
}
