package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/okian/lineup/internal/adapters/rosterfile"
	app "github.com/okian/lineup/internal/app"
	"github.com/okian/lineup/internal/config"
	"github.com/okian/lineup/internal/domain/reveal"
	"github.com/okian/lineup/internal/fixtures"
	"github.com/okian/lineup/internal/render"
	"github.com/okian/lineup/pkg/logger"
	"github.com/okian/lineup/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func main() {
	// Initialize logging
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		stop()
		os.Exit(1)
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		logger.Get().Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	color := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	if err := run(ctx, cfg, os.Stdin, os.Stdout, color); err != nil {
		logger.Get().Error(ctx, "lineup failed", logger.Error(err))
		stop()
		os.Exit(1)
	}
}

// run prints the team's default layout and plays its reveal ceremony on out.
// Lines read from in drive the ceremony: an empty line advances past the
// revealed card and "s" skips to the end. The metrics endpoint and runtime
// sampling live as long as the ceremony.
func run(ctx context.Context, cfg *config.Config, in io.Reader, out io.Writer, color bool) error {
	log := logger.Get()

	svc := app.New(append(app.FromConfig(cfg), app.WithLogger(log.Named("service")))...)
	if err := svc.Start(ctx); err != nil {
		return err
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := svc.Stop(stopCtx); err != nil {
			log.Error(stopCtx, "service stop failed", logger.Error(err))
		}
	}()

	roster, err := loadRoster(ctx, cfg)
	if err != nil {
		return err
	}

	demoCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(demoCtx)

	g.Go(func() error {
		metrics.CollectRuntime(gctx)
		return nil
	})
	if cfg.MetricsAddr != "" {
		serveMetrics(gctx, g, cfg.MetricsAddr)
	}
	g.Go(func() error {
		defer cancel()
		return present(gctx, svc, &roster, in, render.NewTextSurface(out, render.WithColor(color)))
	})
	return g.Wait()
}

func loadRoster(ctx context.Context, cfg *config.Config) (rosterfile.Roster, error) {
	if cfg.RosterPath != "" {
		return rosterfile.NewProvider(cfg.RosterPath, rosterfile.WithDefaultSport(cfg.Sport)).Load(ctx)
	}
	return fixtures.New(cfg.Sport, fixtures.WithSeed(uint64(cfg.FixtureSeed))).Load(ctx) //nolint:gosec // seed bits only
}

func serveMetrics(ctx context.Context, g *errgroup.Group, addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	g.Go(func() error {
		logger.Get().Info(ctx, "serving metrics", logger.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("metrics server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
}

// present draws the layout, then runs the ceremony until it completes or
// ctx ends. An interrupted ceremony is not an error.
func present(ctx context.Context, svc *app.Service, roster *rosterfile.Roster, in io.Reader, surface render.Surface) error {
	v, err := svc.OpenView(ctx, roster)
	if err != nil {
		return err
	}
	l := v.Layout()
	if err := surface.DrawLayout(&l); err != nil {
		return fmt.Errorf("draw layout: %w", err)
	}

	var deck reveal.Deck
	sess, err := svc.OpenReveal(ctx, roster, reveal.WithObserver(func(snap reveal.Snapshot) {
		if snap.Closed && snap.Phase == reveal.PhaseComplete {
			return
		}
		if err := surface.DrawReveal(deck, snap); err != nil {
			logger.Get().Warn(ctx, "draw reveal failed", logger.Error(err))
		}
	}))
	if err != nil {
		return err
	}
	deck = sess.Deck()
	if err := surface.DrawReveal(deck, sess.Snapshot()); err != nil {
		return fmt.Errorf("draw reveal: %w", err)
	}

	if _, err := sess.Start(ctx); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return err
	}
	if in != nil {
		go readControls(ctx, in, sess)
	}
	select {
	case <-sess.Done():
	case <-ctx.Done():
		logger.Get().Info(ctx, "reveal interrupted", logger.Int("revealed", sess.Snapshot().Revealed))
	}
	return nil
}

// readControls forwards input lines to the ceremony until input ends, ctx
// ends or the session closes. It may outlive present while blocked on a read.
func readControls(ctx context.Context, in io.Reader, actions render.RevealActions) {
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		if ctx.Err() != nil {
			return
		}
		var err error
		switch strings.ToLower(strings.TrimSpace(sc.Text())) {
		case "s", "skip":
			_, err = actions.SkipAll(ctx)
		case "q", "quit":
			_, err = actions.Close(ctx)
		default:
			_, err = actions.Advance(ctx)
		}
		if err != nil {
			if !errors.Is(err, reveal.ErrSessionClosed) && ctx.Err() == nil {
				logger.Get().Warn(ctx, "reveal control failed", logger.Error(err))
			}
			return
		}
	}
}
