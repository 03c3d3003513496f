// Patty planner: works out how many burger patties a branch has to make to
// hit its sales target, and how much raw beef that takes.
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

	"github.com/pattyplanner/pattyplanner/internal/config"
	"github.com/pattyplanner/pattyplanner/internal/services/planner"
	"github.com/pattyplanner/pattyplanner/internal/tui"
	"github.com/pattyplanner/pattyplanner/internal/util"
)

// Build information (set via ldflags)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	var (
		configPath  = flag.String("config", "", "Path to configuration file")
		showVersion = flag.Bool("version", false, "Show version and exit")
		debugMode   = flag.Bool("debug", false, "Enable debug logging")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("pattyplanner version %s (built %s)\n", Version, BuildTime)
		os.Exit(0)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		slog.Info("received shutdown signal", "signal", sig)
		cancel()

		// Force exit after timeout
		time.AfterFunc(5*time.Second, func() {
			slog.Error("forced shutdown after timeout")
			os.Exit(1)
		})
	}()

	if err := run(ctx, *configPath, *debugMode); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath string, debugMode bool) error {
	cfg, cfgPath, err := config.Load(configPath, true)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	closeLog, err := setupLogging(cfg, debugMode)
	if err != nil {
		return err
	}
	defer closeLog()

	slog.Info("pattyplanner starting",
		"version", Version,
		"build_time", BuildTime,
		"config_path", cfgPath,
		"branch", cfg.Branch.Name,
	)

	clock := util.SystemClock{}
	svc := planner.NewService(util.NewIDGenerator(), clock)

	tui.Version = Version
	tui.BuildTime = BuildTime

	if err := tui.Run(ctx, cfg, cfgPath, svc, clock); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	slog.Info("pattyplanner shutdown complete")
	return nil
}

// setupLogging installs the default slog logger. Logs go to the configured
// file as JSON, or to stderr as text when no file is set.
func setupLogging(cfg *config.Config, debugMode bool) (func(), error) {
	logLevel := slog.LevelInfo
	if debugMode {
		logLevel = slog.LevelDebug
	} else {
		switch cfg.Logging.Level {
		case config.LogLevelDebug:
			logLevel = slog.LevelDebug
		case config.LogLevelWarn:
			logLevel = slog.LevelWarn
		case config.LogLevelError:
			logLevel = slog.LevelError
		}
	}
	opts := &slog.HandlerOptions{Level: logLevel}

	logPath, err := config.EnsureLogDir(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}

	if logPath == "" {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, opts)))
		return func() {}, nil
	}

	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0640)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(logFile, opts)))

	return func() { logFile.Close() }, nil
}
