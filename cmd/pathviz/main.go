package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/pathviz/audio"
	"github.com/lixenwraith/pathviz/config"
	"github.com/lixenwraith/pathviz/core"
	"github.com/lixenwraith/pathviz/logging"
	"github.com/lixenwraith/pathviz/metrics"
	"github.com/lixenwraith/pathviz/navigation"
	"github.com/lixenwraith/pathviz/session"
)

var configPath = flag.String("config", "", "Path to YAML config file")

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, closer, err := logging.Open(cfg.Log.File, logging.ParseLevel(cfg.Log.Level))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log: %v\n", err)
		os.Exit(1)
	}
	defer closer.Close()

	if err := run(cfg, logger); err != nil {
		logger.Error("pathviz exited", logging.Error(err))
		fmt.Fprintf(os.Stderr, "pathviz: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger logging.Logger) error {
	reg := metrics.NewRegistry().WithProcessCollectors()
	if cfg.Metrics.Addr != "" {
		srv := serveMetrics(cfg.Metrics.Addr, reg, logger)
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			srv.Shutdown(ctx)
		}()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	core.RegisterCrashTerminal(screen)
	defer screen.Fini()

	redraw := newScreenListener(screen)
	opts := []session.Option{
		session.WithLogger(logger),
		session.WithMetrics(reg),
		session.WithListener(redraw),
	}
	if cfg.Audio.Enabled {
		sm := audio.NewSoundManager(cfg.Audio.Volume)
		if err := sm.Initialize(); err != nil {
			// Non-fatal, visualizer runs without sound
			logger.Warn("audio initialization failed", logging.Error(err))
		} else {
			defer sm.Cleanup()
			opts = append(opts, session.WithSound(sm))
		}
	}

	algo, err := navigation.ParseAlgorithm(cfg.Search.Algorithm)
	if err != nil {
		return err
	}
	scfg := session.ConfigFor(cfg.Grid.Rows, cfg.Grid.Cols)
	scfg.Interval = cfg.Playback.Interval
	scfg.Algorithm = algo
	scfg.MazeSeed = cfg.Maze.Seed

	sess, err := session.New(scfg, opts...)
	if err != nil {
		return err
	}
	defer sess.Close()

	logger.Info("pathviz started",
		logging.Int("rows", cfg.Grid.Rows),
		logging.Int("cols", cfg.Grid.Cols),
		logging.Algorithm(algo.String()))

	newApp(screen, sess, redraw).loop()
	return nil
}

func serveMetrics(addr string, reg *metrics.Registry, logger logging.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", reg.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	core.Go(func() {
		logger.Info("metrics listening", logging.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", logging.Error(err))
		}
	})
	return srv
}
