package commands

import (
	"cmp"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/mdinline/internal/config"
	"git.home.luguber.info/inful/mdinline/internal/document"
	"git.home.luguber.info/inful/mdinline/internal/imageload"
	"git.home.luguber.info/inful/mdinline/internal/logfields"
	"git.home.luguber.info/inful/mdinline/internal/metrics"
	"git.home.luguber.info/inful/mdinline/internal/render"
	"git.home.luguber.info/inful/mdinline/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	File          string        `arg:"" type:"existingfile" help:"Markdown file to watch"`
	Format        string        `short:"f" name:"format" help:"Output format (text, json, yaml)"`
	Color         string        `name:"color" default:"auto" enum:"auto,always,never" help:"Colorize text output (auto, always, never)"`
	Debounce      time.Duration `name:"debounce" help:"Quiet period before a change is picked up (overrides watch.debounce)"`
	Refresh       time.Duration `name:"refresh" help:"Re-resolve images at this interval (overrides watch.refresh)"`
	MetricsListen string        `name:"metrics-listen" help:"Serve Prometheus metrics on this address"`
}

func (w *WatchCmd) Run(g *Global, root *CLI) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := loadConfig(g, root)
	if err != nil {
		return err
	}
	return w.watch(ctx, g, cfg)
}

// watch renders the file, then re-renders it on every content change and
// refresh tick until ctx ends.
func (w *WatchCmd) watch(ctx context.Context, g *Global, cfg *config.Config) error {
	format, err := outputFormat(w.Format, cfg)
	if err != nil {
		return err
	}
	p, err := newPrinter(g.out(), format, w.Color)
	if err != nil {
		return err
	}
	logger := g.logger()

	var recorder metrics.Recorder = metrics.NoopRecorder{}
	if listen := cmp.Or(w.MetricsListen, metricsListen(cfg)); listen != "" {
		reg := prom.NewRegistry()
		recorder = metrics.NewPrometheusRecorder(reg)
		srv := serveMetrics(listen, reg, logger)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	doc, err := document.Load(w.File)
	if err != nil {
		return err
	}
	eng, err := newEngine(cfg, doc, recorder, logger)
	if err != nil {
		return err
	}

	s := &watchSession{file: w.File, printer: p, engine: eng, logger: logger, fingerprint: doc.Fingerprint}
	s.loader = imageload.NewLoader(eng.resolver, s.publish)
	defer s.loader.Close()

	fw, err := watch.NewFileWatcher(w.File, cmp.Or(w.Debounce, cfg.Watch.Debounce), func() { s.reload(ctx) }, logger)
	if err != nil {
		return err
	}
	if err := fw.Start(ctx); err != nil {
		_ = fw.Stop()
		return err
	}
	defer func() { _ = fw.Stop() }()

	s.loader.Update(ctx, doc.Nodes())

	if refresh := cmp.Or(w.Refresh, cfg.Watch.Refresh); refresh > 0 {
		sched, err := watch.NewScheduler(logger)
		if err != nil {
			return err
		}
		if _, err := sched.Every("image-refresh", refresh, func() { s.loader.Refresh(ctx) }); err != nil {
			_ = sched.Stop()
			return err
		}
		sched.Start()
		defer func() { _ = sched.Stop() }()
	}

	logger.Info("Watching document", logfields.File(w.File))
	<-ctx.Done()
	logger.Info("Stopping watch", logfields.File(w.File))
	return nil
}

func metricsListen(cfg *config.Config) string {
	if !cfg.Metrics.Enabled {
		return ""
	}
	return cfg.Metrics.Listen
}

func serveMetrics(addr string, reg *prom.Registry, logger *slog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.HTTPHandler(reg))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		logger.Info("Serving metrics", slog.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Metrics server failed", logfields.Error(err))
		}
	}()
	return srv
}

// watchSession ties the loader to the printer for one watched file.
type watchSession struct {
	file    string
	printer *printer
	engine  *engine
	logger  *slog.Logger
	loader  *imageload.Loader

	mu          sync.Mutex
	fingerprint string
}

func (s *watchSession) publish(res imageload.Result) {
	runs := render.Render(res.Nodes, s.engine.renderContext(res.Images))
	view := newDocumentView(s.file, "", res.Pass, res.Images, [][]render.Run{runs})
	if err := s.printer.document(view); err != nil {
		s.logger.Error("Failed to write output", logfields.Error(err))
	}
}

// reload re-reads the file and starts a pass when its content changed.
func (s *watchSession) reload(ctx context.Context) {
	doc, err := document.Load(s.file)
	if err != nil {
		s.logger.Warn("Failed to reload document", logfields.File(s.file), logfields.Error(err))
		return
	}

	s.mu.Lock()
	if doc.Fingerprint == s.fingerprint {
		s.mu.Unlock()
		s.logger.Debug("Document unchanged", logfields.File(s.file))
		return
	}
	s.fingerprint = doc.Fingerprint
	s.mu.Unlock()

	s.loader.Update(ctx, doc.Nodes())
}
