package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
)

// Config captures everything flicks reads from config.toml and the environment.
type Config struct {
	Path           string // resolved config file path, whether or not it exists
	APIBase        string
	APIKey         string
	SiteBase       string
	RequestTimeout time.Duration // zero disables the timeout
	LogFile        string
	LogLevel       string

	// DotEnvErr holds parse failures from .env files. Loading carries on
	// without the broken file.
	DotEnvErr error
}

const (
	defaultConfigPath = "~/.config/flicks/config.toml"
	defaultLogFile    = "~/.local/state/flicks/flicks.log"
	defaultAPIBase    = "https://www.omdbapi.com"
	defaultSiteBase   = "http://www.imdb.com"
	defaultLogLevel   = "info"
	defaultTimeout    = 15 * time.Second
)

// Environment variables that override config.toml. OMDB_API_KEY is the
// name OMDb's own docs use.
const (
	EnvAPIKey     = "FLICKS_API_KEY"
	EnvOMDbAPIKey = "OMDB_API_KEY"
	EnvAPIBase    = "FLICKS_API_BASE"
	EnvLogLevel   = "FLICKS_LOG_LEVEL"
)

// Load locates and parses config.toml, falling back to defaults when it is
// missing, then applies .env files and environment overrides.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()
	cfg.Path = resolved

	if err := cfg.readFile(resolved); err != nil {
		return Config{}, err
	}

	_, cfg.DotEnvErr = LoadDotEnv(filepath.Dir(resolved))
	cfg.applyEnv()

	cfg.LogFile = mustExpand(cfg.LogFile)
	return cfg, nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		APIBase:        defaultAPIBase,
		SiteBase:       defaultSiteBase,
		RequestTimeout: defaultTimeout,
		LogFile:        mustExpand(defaultLogFile),
		LogLevel:       defaultLogLevel,
	}
}

func (c *Config) readFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("open config: %w", err)
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIBase        string `toml:"api_base"`
		APIKey         string `toml:"api_key"`
		SiteBase       string `toml:"site_base"`
		RequestTimeout string `toml:"request_timeout"`
		LogFile        string `toml:"log_file"`
		LogLevel       string `toml:"log_level"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.APIBase); v != "" {
		c.APIBase = v
	}
	if v := strings.TrimSpace(raw.APIKey); v != "" {
		c.APIKey = v
	}
	if v := strings.TrimSpace(raw.SiteBase); v != "" {
		c.SiteBase = v
	}
	if v := strings.TrimSpace(raw.RequestTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse request_timeout %q: %w", v, err)
		}
		if d < 0 {
			return fmt.Errorf("request_timeout must be >= 0, got %s", v)
		}
		c.RequestTimeout = d
	}
	if v := strings.TrimSpace(raw.LogFile); v != "" {
		c.LogFile = v
	}
	if v := strings.TrimSpace(raw.LogLevel); v != "" {
		c.LogLevel = strings.ToLower(v)
	}
	return nil
}

func (c *Config) applyEnv() {
	for _, name := range []string{EnvOMDbAPIKey, EnvAPIKey} {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			c.APIKey = v
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvAPIBase)); v != "" {
		c.APIBase = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		c.LogLevel = strings.ToLower(v)
	}
}

// LoadDotEnv loads .env.local and .env from the working directory, then
// .env next to the config file. godotenv never overwrites variables that
// are already set, so the real environment wins, then earlier files.
// Returns the files actually loaded; a file that fails to parse is skipped
// and reported in the joined error.
func LoadDotEnv(configDir string) ([]string, error) {
	candidates := []string{".env.local", ".env"}
	if strings.TrimSpace(configDir) != "" {
		candidates = append(candidates, filepath.Join(configDir, ".env"))
	}
	var loaded []string
	var errs []error
	for _, f := range candidates {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			errs = append(errs, fmt.Errorf("load %s: %w", f, err))
			continue
		}
		loaded = append(loaded, f)
	}
	return loaded, errors.Join(errs...)
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
