package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"git.home.luguber.info/inful/docnav/internal/docs"
	derrors "git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/logfields"
	"git.home.luguber.info/inful/docnav/internal/metrics"
	"git.home.luguber.info/inful/docnav/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	SiteFlags   `embed:""`
	Debounce    time.Duration `help:"Quiet period before re-validating" default:"500ms"`
	MetricsAddr string        `help:"Serve Prometheus metrics on this address (e.g. :9090)"`
}

func (wc *WatchCmd) Run(g *Global, root *CLI) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	return wc.run(ctx, g, root)
}

func (wc *WatchCmd) run(ctx context.Context, g *Global, root *CLI) error {
	recorder := metrics.NewPrometheusRecorder(nil)
	if wc.MetricsAddr != "" {
		srv := &http.Server{Addr: wc.MetricsAddr, Handler: recorder.HTTPHandler(), ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("Metrics server failed", logfields.Error(err))
			}
		}()
		defer func() {
			shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
			defer stop()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	t, err := wc.targets(root)
	if err != nil {
		return err
	}

	last := t.fingerprint()
	validate := func(ctx context.Context, trigger watch.Trigger) error {
		current := t.fingerprint()
		if current == last {
			slog.Debug("No content changes, skipping validation", logfields.RunID(watch.RunIDFrom(ctx)))
			return nil
		}
		last = current
		slog.Debug("Re-validating", logfields.RunID(watch.RunIDFrom(ctx)), slog.Any("changed", trigger.Paths))
		_, err := runValidation(g.out(), root, wc.SiteFlags, recorder)
		return err
	}
	if _, err := runValidation(g.out(), root, wc.SiteFlags, recorder); err != nil {
		slog.Error("Initial validation failed", logfields.Error(err))
	}

	w, err := watch.New(validate, watch.WithDebounce(wc.Debounce))
	if err != nil {
		return derrors.WrapError(err, derrors.CategoryRuntime, "failed to start watcher").Build()
	}
	if err := t.add(w); err != nil {
		return err
	}
	return w.Run(ctx)
}

// watchTargets are the inputs one validation pass reads.
type watchTargets struct {
	config  string // empty when the configuration file does not exist
	sidebar string
	docs    string
}

func (wc *WatchCmd) targets(root *CLI) (watchTargets, error) {
	cfg, err := loadConfig(root.Config, wc.Sidebar != "")
	if err != nil {
		return watchTargets{}, err
	}
	t := watchTargets{sidebar: wc.Sidebar, docs: wc.Docs}
	if t.sidebar == "" {
		t.sidebar = cfg.Docs.SidebarPath
	}
	if t.docs == "" {
		t.docs = cfg.Docs.Path
	}
	if _, err := os.Stat(root.Config); err == nil {
		t.config = root.Config
	}
	return t, nil
}

// fingerprint digests the configuration, the sidebar file and the docs
// index. Events that leave it unchanged, such as a save without edits, do
// not trigger a run.
func (t watchTargets) fingerprint() string {
	h := sha256.New()
	for _, path := range []string{t.config, t.sidebar} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(h, "%s|unreadable|%v\n", path, err)
			continue
		}
		sum := sha256.Sum256(data)
		fmt.Fprintf(h, "%s|%x\n", path, sum)
	}
	if idx, err := docs.Scan(t.docs); err == nil {
		fmt.Fprintf(h, "docs|%s\n", idx.Hash())
	} else {
		fmt.Fprintf(h, "docs|unavailable|%v\n", err)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// add registers the configuration file, the sidebar file and the docs tree.
func (t watchTargets) add(w *watch.Watcher) error {
	if t.config != "" {
		if err := w.AddFile(t.config); err != nil {
			return derrors.WrapError(err, derrors.CategoryRuntime, "failed to watch configuration").Build()
		}
	}
	if err := w.AddFile(t.sidebar); err != nil {
		return derrors.WrapError(err, derrors.CategoryRuntime, "failed to watch sidebar").
			WithContext("path", t.sidebar).
			Build()
	}
	if _, err := os.Stat(t.docs); err == nil {
		if err := w.AddTree(t.docs); err != nil {
			return derrors.WrapError(err, derrors.CategoryRuntime, "failed to watch docs directory").
				WithContext("path", t.docs).
				Build()
		}
	}
	return nil
}
