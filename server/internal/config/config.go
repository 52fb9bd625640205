package config

import (
	"fmt"
	"log/slog"
	"net"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Default values for the dashboard configuration.
const (
	DefaultHTTPPort     = 8050
	DefaultLogLevel     = "info"
	DefaultTable        = "launches"
	DefaultSliderMin    = 0
	DefaultSliderMax    = 10000
	DefaultSliderStep   = 1000
	DefaultSliderMarkBy = 2500
)

// Environment variables that override the listen address from the file.
const (
	EnvHost = "LAUNCHDASH_HOST"
	EnvPort = "LAUNCHDASH_PORT"
)

// Config holds the dashboard configuration parsed from config.yaml.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Dataset DatasetConfig `yaml:"dataset"`
	UI      UIConfig      `yaml:"ui"`
}

// ServerConfig holds HTTP listener and process settings.
type ServerConfig struct {
	// Host is the interface to bind. Empty binds all interfaces.
	Host string `yaml:"host"`

	// HTTPPort serves the page, REST API, websocket and metrics (default 8050).
	HTTPPort int `yaml:"http_port"`

	// LogLevel is one of: debug | info | warn | error. Applied on reload.
	LogLevel string `yaml:"log_level"`

	// Auth configures how the server authenticates API and websocket clients.
	Auth AuthConfig `yaml:"auth"`
}

// Addr returns the host:port listen address.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.HTTPPort))
}

// Level parses LogLevel into a slog.Level.
func (s ServerConfig) Level() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return l
}

// AuthConfig controls client authentication for /api/ and /ws/.
type AuthConfig struct {
	// Mode is one of: apikey | none.
	Mode string `yaml:"mode"`

	// KeyEnv is the name of the environment variable that holds the expected API key.
	KeyEnv string `yaml:"key_env"`

	// Header is the HTTP header to read the key from. Defaults to "x-api-key".
	Header string `yaml:"header"`
}

// Key returns the expected API key resolved from the environment.
func (a AuthConfig) Key() string {
	if a.KeyEnv == "" {
		return ""
	}
	return os.Getenv(a.KeyEnv)
}

// EffectiveHeader returns the configured header name, or the default "x-api-key".
func (a AuthConfig) EffectiveHeader() string {
	if a.Header != "" {
		return a.Header
	}
	return "x-api-key"
}

// DatasetConfig locates the launch records.
type DatasetConfig struct {
	// Path is the CSV file or SQLite database holding the records. Relative
	// paths resolve against the working directory.
	Path string `yaml:"path"`

	// Format is csv | sqlite. Empty infers it from the file extension.
	Format string `yaml:"format"`

	// Table is the SQLite table name (default "launches").
	Table string `yaml:"table"`
}

// UIConfig shapes the page controls.
type UIConfig struct {
	Slider SliderConfig `yaml:"slider"`
}

// SliderConfig is the payload range slider's axis, in kilograms.
type SliderConfig struct {
	Min       float64 `yaml:"min"`
	Max       float64 `yaml:"max"`
	Step      float64 `yaml:"step"`
	MarkEvery float64 `yaml:"mark_every"`
}

// Load reads and parses the config file at path.
// Missing fields are filled with defaults before validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %q: %w", path, err)
	}

	cfg := defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}

	if err := applyEnv(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}

// defaults returns a Config pre-populated with default values.
func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort: DefaultHTTPPort,
			LogLevel: DefaultLogLevel,
		},
		Dataset: DatasetConfig{
			Table: DefaultTable,
		},
		UI: UIConfig{
			Slider: SliderConfig{
				Min:       DefaultSliderMin,
				Max:       DefaultSliderMax,
				Step:      DefaultSliderStep,
				MarkEvery: DefaultSliderMarkBy,
			},
		},
	}
}

// applyEnv overrides server.host and server.http_port from the environment.
func applyEnv(cfg *Config) error {
	if v, ok := os.LookupEnv(EnvHost); ok {
		cfg.Server.Host = v
	}
	if v := os.Getenv(EnvPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s %q is not a port number", EnvPort, v)
		}
		cfg.Server.HTTPPort = port
	}
	return nil
}

// validate checks required fields and structural constraints.
func validate(cfg *Config) error {
	if cfg.Server.HTTPPort <= 0 || cfg.Server.HTTPPort > 65535 {
		return fmt.Errorf("server.http_port %d is out of range [1, 65535]", cfg.Server.HTTPPort)
	}
	switch strings.ToLower(cfg.Server.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("server.log_level %q unknown: want debug|info|warn|error", cfg.Server.LogLevel)
	}
	switch cfg.Server.Auth.Mode {
	case "apikey", "none", "":
	default:
		return fmt.Errorf("server.auth.mode %q unknown: want apikey|none", cfg.Server.Auth.Mode)
	}

	if cfg.Dataset.Path == "" {
		return fmt.Errorf("dataset.path is required")
	}
	switch cfg.Dataset.Format {
	case "csv", "sqlite", "":
	default:
		return fmt.Errorf("dataset.format %q unknown: want csv|sqlite", cfg.Dataset.Format)
	}

	s := cfg.UI.Slider
	if s.Min < 0 {
		return fmt.Errorf("ui.slider.min must not be negative")
	}
	if s.Max <= s.Min {
		return fmt.Errorf("ui.slider.max %v must exceed min %v", s.Max, s.Min)
	}
	if s.Step <= 0 || s.MarkEvery <= 0 {
		return fmt.Errorf("ui.slider.step and ui.slider.mark_every must be positive")
	}
	return nil
}
