package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/flicks/internal/config"
	"github.com/five82/flicks/internal/logging"
	"github.com/five82/flicks/internal/omdb"
	"github.com/five82/flicks/internal/state"
	"github.com/five82/flicks/internal/ui"
)

// Options configure the flicks application.
type Options struct {
	ConfigPath   string
	PrefsPath    string // empty uses default ~/.config/flicks/prefs.toml
	Debug        bool   // forces debug-level logging
	Theme        string // overrides the saved theme for this run
	InitialQuery omdb.Query
	Stderr       io.Writer // startup warnings; nil means os.Stderr
}

// Run boots the flicks TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logs := logging.New(logging.Options{File: cfg.LogFile, Level: logLevel(cfg, opts.Debug)})
	defer func() { _ = logs.Close() }()
	if !logs.UsingFile && logs.FallbackReason != "" {
		_, _ = fmt.Fprintf(stderr, "flicks: diagnostics disabled: %s\n", logs.FallbackReason)
	}
	logger := logging.Component(logs.Logger, "app")
	if cfg.DotEnvErr != nil {
		logger.Warn().Err(cfg.DotEnvErr).Msg("env file unreadable, skipping it")
	}

	userPrefs, err := config.LoadPrefs(opts.PrefsPath)
	if err != nil {
		logger.Warn().Err(err).Msg("prefs unreadable, using defaults")
	}
	theme := userPrefs.Theme
	if t := strings.TrimSpace(opts.Theme); t != "" {
		theme = t
	}

	client, err := omdb.NewClient(clientOptions(cfg))
	if err != nil {
		return fmt.Errorf("init omdb client: %w", err)
	}

	logger.Info().
		Str("config", cfg.Path).
		Str("api_base", cfg.APIBase).
		Bool("api_key", cfg.APIKey != "").
		Dur("timeout", cfg.RequestTimeout).
		Str("theme", theme).
		Msg("starting")

	err = ui.Run(ui.Options{
		Context:      ctx,
		Source:       client,
		Tracker:      &state.Tracker{},
		Logger:       logs.Logger,
		OpenURL:      OpenBrowser,
		ThemeName:    theme,
		PrefsPath:    opts.PrefsPath,
		LogPath:      logs.FilePath,
		InitialQuery: opts.InitialQuery,
	})
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		logger.Info().Msg("interrupted")
		return nil
	}
	if err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	logger.Info().Msg("exiting")
	return nil
}

// clientOptions maps the loaded configuration onto the OMDb client. A zero
// RequestTimeout in config means no timeout at all.
func clientOptions(cfg config.Config) omdb.Options {
	timeout := cfg.RequestTimeout
	if timeout == 0 {
		timeout = -1
	}
	return omdb.Options{
		APIBase:  cfg.APIBase,
		SiteBase: cfg.SiteBase,
		APIKey:   cfg.APIKey,
		Timeout:  timeout,
	}
}

func logLevel(cfg config.Config, debug bool) string {
	if debug {
		return "debug"
	}
	return cfg.LogLevel
}
