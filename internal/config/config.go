// Package config handles the XDG configuration directory and the optional
// config.yaml that points the board at its backend.
package config

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	// AppName is the application directory name.
	AppName = "taskboard"

	// ConfigFile is the settings filename inside the config directory.
	ConfigFile = "config.yaml"

	// EnvPrefix prefixes environment overrides, e.g. TASKBOARD_BASE_URL.
	EnvPrefix = "TASKBOARD"
)

// Defaults for settings not present in config.yaml or the environment.
const (
	DefaultBaseURL       = "http://localhost:8080"
	DefaultTimeout       = 5 * time.Second
	DefaultListen        = ":8081"
	DefaultBackendListen = ":8080"
	DefaultStoreDriver   = "memory"
	DefaultFadeDelay     = 200 * time.Millisecond
)

// Settings are the values read from config.yaml and the environment.
type Settings struct {
	// BaseURL is the task backend root, without the /tasks suffix.
	BaseURL string `mapstructure:"base_url"`

	// Timeout bounds each backend call. Zero disables it.
	Timeout time.Duration `mapstructure:"timeout"`

	// Listen is the address of the web page server.
	Listen string `mapstructure:"listen"`

	// BackendListen is the address of the reference backend.
	BackendListen string `mapstructure:"backend_listen"`

	// StoreDriver is memory, sqlite3, postgres or mysql.
	StoreDriver string `mapstructure:"store_driver"`
	StoreDSN    string `mapstructure:"store_dsn"`

	// FadeDelay is the pause between marking a task view removed and detaching it.
	FadeDelay time.Duration `mapstructure:"fade_delay"`
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		BaseURL:       DefaultBaseURL,
		Timeout:       DefaultTimeout,
		Listen:        DefaultListen,
		BackendListen: DefaultBackendListen,
		StoreDriver:   DefaultStoreDriver,
		FadeDelay:     DefaultFadeDelay,
	}
}

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool

	Settings Settings

	// Logger receives diagnostics. Never nil after New.
	Logger *slog.Logger
}

// New creates a new Config with the default or specified config directory and
// loads config.yaml from it when present.
// If configDir is empty, uses XDG_CONFIG_HOME/taskboard or $HOME/.config/taskboard.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	cfg := &Config{
		Dir:    dir,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	settings, err := Load(cfg.FilePath())
	if err != nil {
		return nil, err
	}
	cfg.Settings = settings
	return cfg, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// FilePath returns the path to config.yaml.
func (c *Config) FilePath() string {
	return filepath.Join(c.Dir, ConfigFile)
}

// HasFile checks if config.yaml exists.
func (c *Config) HasFile() bool {
	_, err := os.Stat(c.FilePath())
	return err == nil
}

// SetupLogger points the logger at w. Debug lowers the level to debug,
// otherwise only warnings and errors are written.
func (c *Config) SetupLogger(w io.Writer) {
	level := slog.LevelWarn
	if c.Debug {
		level = slog.LevelDebug
	}
	c.Logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Load reads settings from path, layering TASKBOARD_* environment variables
// over it. A missing file yields the defaults.
func Load(path string) (Settings, error) {
	d := DefaultSettings()
	v := viper.New()
	v.SetDefault("base_url", d.BaseURL)
	v.SetDefault("timeout", d.Timeout)
	v.SetDefault("listen", d.Listen)
	v.SetDefault("backend_listen", d.BackendListen)
	v.SetDefault("store_driver", d.StoreDriver)
	v.SetDefault("store_dsn", d.StoreDSN)
	v.SetDefault("fade_delay", d.FadeDelay)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return Settings{}, err
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, err
	}
	s.BaseURL = strings.TrimRight(s.BaseURL, "/")
	return s, nil
}
