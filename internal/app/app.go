package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chrissnell/skyalmanac/internal/log"
	"github.com/chrissnell/skyalmanac/pkg/almanac"
	"github.com/chrissnell/skyalmanac/pkg/config"
	"github.com/chrissnell/skyalmanac/pkg/eop"
	"github.com/chrissnell/skyalmanac/pkg/ephemeris"
	"github.com/chrissnell/skyalmanac/pkg/render/latex"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Options are the per-invocation choices from the command line; they override
// the stored configuration where they overlap.
type Options struct {
	Start   almanac.Date
	Days    int
	Output  string
	Seconds bool
}

// App represents the main application
type App struct {
	configProvider config.ConfigProvider
	logger         *zap.SugaredLogger
	opts           Options
}

// New creates a new application instance
func New(configProvider config.ConfigProvider, logger *zap.SugaredLogger, opts Options) *App {
	return &App{
		configProvider: configProvider,
		logger:         logger,
		opts:           opts,
	}
}

// Run generates the almanac and blocks until it is written or the run is
// interrupted.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)
	go func() {
		select {
		case s := <-sigs:
			log.Infof("received %v, abandoning run", s)
			cancel()
		case <-ctx.Done():
		}
	}()

	cfg, err := a.configProvider.LoadConfig()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	if a.opts.Output != "" {
		cfg.OutputFile = a.opts.Output
	}
	if a.opts.Seconds {
		cfg.SecondsOfTime = true
	}

	var table *eop.Table
	if cfg.UseIERS {
		provider := &eop.Provider{
			Dir:    cfg.EOPDir,
			MaxAge: time.Duration(cfg.EOPMaxAgeDays) * 24 * time.Hour,
		}
		table, err = provider.Load()
		if err != nil {
			if errors.Is(err, eop.ErrParseIncomplete) {
				return fmt.Errorf("the earth-orientation file is truncated or corrupt, delete it from %s and rerun: %w", cfg.EOPDir, err)
			}
			return fmt.Errorf("loading earth-orientation data: %w", err)
		}
	}

	ts := ephemeris.NewTimeScale(table)
	oracle, err := ephemeris.Open(ts, cfg.EphemerisDir, cfg.Ephemeris)
	if err != nil {
		return fmt.Errorf("opening ephemeris: %w", err)
	}

	engine := almanac.NewEngine(oracle, ts, *cfg)

	doc := &latex.Document{
		Cfg:   cfg,
		First: a.opts.Start,
		Last:  a.opts.Start.Add(a.opts.Days - 1),
		Meta: latex.Meta{
			RunID:         uuid.New().String(),
			GeneratedAt:   time.Now(),
			EphemerisName: fmt.Sprintf("VSOP87/ELP (selection %d)", cfg.Ephemeris),
		},
	}
	if table != nil {
		doc.Meta.EOPMeasured = table.LastMeasured
		doc.Meta.EOPPredicted = table.LastPredicted
	}

	started := time.Now()
	for d := a.opts.Start; d.Before(doc.Last.Add(1)); d = d.Add(3) {
		if err := ctx.Err(); err != nil {
			return err
		}
		page, err := engine.BuildPage(ctx, d)
		if err != nil {
			return fmt.Errorf("building page for %v: %w", d, err)
		}
		doc.Pages = append(doc.Pages, page)
	}
	log.Infow("computation finished",
		"pages", len(doc.Pages),
		"elapsed", time.Since(started).Round(time.Millisecond),
		"cacheHits", engine.CacheHits,
		"cacheMisses", engine.CacheMisses,
	)

	if err := latex.WriteFile(cfg.OutputFile, doc); err != nil {
		if errors.Is(err, latex.ErrOutputFileBusy) {
			return fmt.Errorf("%s appears to be open in another program, close it and rerun: %w", cfg.OutputFile, err)
		}
		return err
	}
	log.Infof("wrote %s", cfg.OutputFile)
	return nil
}
