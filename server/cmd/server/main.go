package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/launchdash/launchdash/server/internal/api"
	"github.com/launchdash/launchdash/server/internal/auth"
	"github.com/launchdash/launchdash/server/internal/config"
	"github.com/launchdash/launchdash/server/internal/dataset"
	"github.com/launchdash/launchdash/server/internal/metrics"
	"github.com/launchdash/launchdash/server/internal/web"
	"github.com/launchdash/launchdash/server/internal/ws"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	uiDir := flag.String("ui-dir", "", "serve static UI files from this directory instead of the built-in page; leave empty to disable")
	flag.Parse()

	var level slog.LevelVar
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: &level}))
	slog.SetDefault(logger)

	slog.Info("launchdash-server starting", "config", *configPath)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}
	level.Set(cfg.Server.Level())

	slog.Info("config loaded",
		"addr", cfg.Server.Addr(),
		"auth_mode", cfg.Server.Auth.Mode,
		"dataset", cfg.Dataset.Path,
		"log_level", cfg.Server.LogLevel,
	)

	// The dataset is loaded once; a malformed source stops startup.
	ds, err := dataset.Load(cfg.Dataset.Path, cfg.Dataset.Format, cfg.Dataset.Table)
	if err != nil {
		slog.Error("failed to load dataset", "err", err)
		os.Exit(1)
	}

	m := metrics.New()
	m.SetRecords(ds.Len())

	s := cfg.UI.Slider
	slider := api.Slider{Min: s.Min, Max: s.Max, Step: s.Step, MarkEvery: s.MarkEvery}

	page, err := web.New(api.Options(ds, slider))
	if err != nil {
		slog.Error("failed to render page", "err", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	// WebSocket hub: one selection per connected page.
	hub := ws.New(ds, m)
	g.Go(func() error {
		hub.Run(ctx)
		return nil
	})

	requireKey := auth.APIKey(
		cfg.Server.Auth.Mode,
		cfg.Server.Auth.EffectiveHeader(),
		cfg.Server.Auth.Key(),
	)

	httpMux := http.NewServeMux()
	httpMux.Handle("/api/", requireKey(api.New(ds, m, slider)))
	httpMux.Handle("/ws/select", requireKey(hub))
	httpMux.Handle("/metrics", m)

	// Optional: serve a pre-built UI from a local directory instead of the
	// built-in page. The "/" catch-all serves index.html for any unknown path.
	if *uiDir != "" {
		fs := http.FileServer(http.Dir(*uiDir))
		httpMux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
			path := *uiDir + r.URL.Path
			if _, err := os.Stat(path); os.IsNotExist(err) {
				http.ServeFile(w, r, *uiDir+"/index.html")
				return
			}
			fs.ServeHTTP(w, r)
		})
		slog.Info("serving UI static files", "dir", *uiDir)
	} else {
		httpMux.Handle("/", page)
	}

	httpSrv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           httpMux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	g.Go(func() error {
		slog.Info("HTTP server listening", "addr", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		slog.Info("launchdash-server shutting down")
		shutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpSrv.Shutdown(shutCtx)
	})

	// Live config: log level applies immediately, the rest is reported.
	// Compared against the startup config so restart-only edits keep being
	// reported until the process restarts.
	g.Go(func() error {
		err := config.Watch(ctx, *configPath, func(updated *config.Config) {
			config.Apply(cfg, updated, level.Set)
			cfg.Server.LogLevel = updated.Server.LogLevel
		})
		if err != nil {
			slog.Warn("config watch disabled", "err", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		slog.Error("launchdash-server stopped", "err", err)
		os.Exit(1)
	}
}
