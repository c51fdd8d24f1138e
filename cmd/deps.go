package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/xolan/daylog/internal/cli"
	"github.com/xolan/daylog/internal/config"
	"github.com/xolan/daylog/internal/logging"
	"github.com/xolan/daylog/internal/service"
	"github.com/xolan/daylog/internal/shared"
)

// deps is the dependencies instance used by commands. It is built on
// first use from the config file and environment. Tests replace it with
// SetDeps.
var (
	deps      *cli.Deps
	closeDeps = func() {}
)

// verbose raises the log level to debug.
var verbose bool

// Seams for tests.
var (
	stderr   io.Writer = os.Stderr
	exitFunc           = os.Exit
	getenv             = os.Getenv
	now                = time.Now
)

// SetDeps sets the dependencies (for testing).
func SetDeps(d *cli.Deps) {
	deps = d
}

// ResetDeps releases and forgets the dependencies (for testing cleanup).
func ResetDeps() {
	closeDeps()
	deps = nil
	closeDeps = func() {}
}

// requireDeps returns the dependencies, building them on first use. On
// failure it reports the error and returns nil.
func requireDeps(ctx context.Context) *cli.Deps {
	if deps != nil {
		return deps
	}

	cfg, path, err := loadConfig()
	if err != nil {
		reportSetupError(err)
		return nil
	}

	logger, closeLog, err := logging.New(logConfig(cfg))
	if err != nil {
		reportSetupError(fmt.Errorf("failed to open log: %w", err))
		return nil
	}

	services, err := service.NewServices(ctx, service.Options{
		Config:     cfg,
		ConfigPath: path,
		Logger:     logger,
		Now:        now,
	})
	if err != nil {
		closeLog()
		reportSetupError(err)
		return nil
	}

	d := cli.NewDeps(services, cfg)
	d.ReadPassword = readPassword
	deps = d
	closeDeps = func() {
		if err := services.Close(); err != nil {
			logger.Warn("closing services failed", zap.Error(err))
		}
		closeLog()
	}
	return deps
}

// configDeps returns dependencies that only carry the config service, for
// commands that must work before any backend is reachable.
func configDeps() *cli.Deps {
	if deps != nil {
		return deps
	}
	cfg, path, err := loadConfig()
	if err != nil {
		reportSetupError(err)
		return nil
	}
	return cli.NewDeps(&service.Services{Config: service.NewConfigService(path, cfg)}, cfg)
}

// loadConfig reads .env files, the config file and environment
// overrides, in that order.
func loadConfig() (config.Config, string, error) {
	path, err := config.GetConfigPath()
	if err != nil {
		return config.Config{}, "", fmt.Errorf("failed to determine config location: %w", err)
	}
	config.LoadEnv()

	cfg, err := config.LoadOrDefault(path)
	if err != nil {
		return config.Config{}, "", err
	}
	cfg.ApplyEnv(getenv)
	if verbose {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, "", fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, path, nil
}

func logConfig(cfg config.Config) logging.Config {
	lc := logging.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		Development: verbose,
	}
	if cfg.Log.File != "" {
		lc.Output = "file"
		lc.FilePath = filepath.Clean(cfg.Log.File)
	}
	return lc
}

func reportSetupError(err error) {
	_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
	if errors.Is(err, shared.ErrNotConfigured) {
		_, _ = fmt.Fprintln(stderr, "Hint: Run 'daylog config --init' to create a config file, or set backend = \"local\" to keep entries on this machine")
	}
	exitFunc(1)
}

// readPassword reads a password without echo when stdin is a terminal.
func readPassword(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return deps.ReadLine(prompt)
	}
	_, _ = fmt.Fprint(os.Stderr, prompt)
	b, err := term.ReadPassword(fd)
	_, _ = fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
