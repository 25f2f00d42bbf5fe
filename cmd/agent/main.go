package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"pixelbot/internal/agent"
	"pixelbot/internal/config"
	"pixelbot/internal/input"
	"pixelbot/internal/platform"
)

func main() {
	var cfgDir, logLevel, sessionDir string
	var interval, duration float64
	var display int
	var seed int64
	var dry bool
	flag.StringVar(&cfgDir, "config", "assets", "config dir")
	flag.StringVar(&logLevel, "log", "", "log level (overrides config)")
	flag.StringVar(&sessionDir, "session", "sessions", "session log dir, empty disables recording")
	flag.Float64Var(&interval, "interval", 0, "tick interval in seconds (overrides config)")
	flag.Float64Var(&duration, "duration", 0, "run duration in seconds, 0 runs until interrupted")
	flag.IntVar(&display, "display", 0, "display index to capture")
	flag.Int64Var(&seed, "seed", 0, "rng seed, 0 uses the clock")
	flag.BoolVar(&dry, "dry", false, "log input actions instead of injecting them")
	flag.Parse()

	if err := run(cfgDir, logLevel, sessionDir, interval, duration, display, seed, dry); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(cfgDir, logLevel, sessionDir string, interval, duration float64, display int, seed int64, dry bool) error {
	cfg, err := config.LoadAll(cfgDir)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if interval > 0 {
		cfg.Control.TickInterval = interval
	}
	if logLevel == "" {
		logLevel = cfg.Control.LogLevel
	}
	setupLogging(logLevel)

	var act input.Actuator
	if dry {
		act = platform.NewDryActuator()
	} else {
		act = platform.NewRobot()
	}

	screen, err := platform.NewScreen(display)
	if err != nil {
		return err
	}

	var rec *agent.Recorder
	if sessionDir != "" {
		rec, err = agent.NewRecorder(sessionDir)
		if err != nil {
			return fmt.Errorf("opening session log: %w", err)
		}
		slog.Info("recording session", "path", rec.Path())
	}

	bot := agent.New(cfg, screen, act, rec, seed)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(duration*float64(time.Second)))
		defer cancel()
	}

	bounds := screen.Bounds()
	slog.Info("agent starting",
		"display", display,
		"resolution", fmt.Sprintf("%dx%d", bounds.Dx(), bounds.Dy()),
		"tick", cfg.Control.TickInterval,
		"dry", dry,
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return bot.Run(ctx) })
	if err := g.Wait(); err != nil {
		return err
	}

	slog.Info("agent stopped", "ticks", bot.Ticks())
	return nil
}

func setupLogging(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
}
