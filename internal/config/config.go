package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"reelshare/internal/eventbus"
	"reelshare/internal/pager"
)

// Config represents the application configuration. The TUI client and the API
// server read the same file; each uses the sections it needs.
type Config struct {
	Version int          `toml:"version" koanf:"version"`
	Client  ClientConfig `toml:"client" koanf:"client"`
	UI      UISettings   `toml:"ui" koanf:"ui"`
	Server  ServerConfig `toml:"server" koanf:"server"`
	Media   MediaConfig  `toml:"media" koanf:"media"`
	Log     LogConfig    `toml:"log" koanf:"log"`
}

// ClientConfig is how the TUI reaches the API
type ClientConfig struct {
	APIURL  string `toml:"api_url" koanf:"api_url"`
	Timeout string `toml:"timeout" koanf:"timeout"` // Go duration, e.g. "15s"
}

// UISettings represents UI-related configuration
type UISettings struct {
	// UnitsPerColumn converts terminal columns into the width units the
	// carousel breakpoints are expressed in.
	UnitsPerColumn   int                `toml:"units_per_column" koanf:"units_per_column"`
	Breakpoints      BreakpointSettings `toml:"breakpoints" koanf:"breakpoints"`
	Slots            SlotSettings       `toml:"slots" koanf:"slots"`
	ShowControlsHint bool               `toml:"show_controls_hint" koanf:"show_controls_hint"`
}

type BreakpointSettings struct {
	Medium int `toml:"medium" koanf:"medium"`
	Wide   int `toml:"wide" koanf:"wide"`
}

type SlotSettings struct {
	Narrow int `toml:"narrow" koanf:"narrow"`
	Medium int `toml:"medium" koanf:"medium"`
	Wide   int `toml:"wide" koanf:"wide"`
}

// ServerConfig configures the API server
type ServerConfig struct {
	Addr            string   `toml:"addr" koanf:"addr"`
	JWTSecret       string   `toml:"jwt_secret" koanf:"jwt_secret"`
	TokenTTL        string   `toml:"token_ttl" koanf:"token_ttl"`
	DataDir         string   `toml:"data_dir" koanf:"data_dir"`
	RateLimitMax    int      `toml:"rate_limit_max" koanf:"rate_limit_max"`
	RateLimitWindow string   `toml:"rate_limit_window" koanf:"rate_limit_window"`
	MaxUploadBytes  int64    `toml:"max_upload_bytes" koanf:"max_upload_bytes"`
	CORSOrigins     []string `toml:"cors_origins" koanf:"cors_origins"`
}

// MediaConfig selects where uploaded posters and videos are stored
type MediaConfig struct {
	Backend       string `toml:"backend" koanf:"backend"` // "local" or "gcs"
	LocalDir      string `toml:"local_dir" koanf:"local_dir"`
	PublicBaseURL string `toml:"public_base_url" koanf:"public_base_url"`
	GCSBucket     string `toml:"gcs_bucket" koanf:"gcs_bucket"`
}

type LogConfig struct {
	Level  string `toml:"level" koanf:"level"`
	Format string `toml:"format" koanf:"format"`
	File   string `toml:"file" koanf:"file"`
}

const (
	MediaBackendLocal = "local"
	MediaBackendGCS   = "gcs"
)

// ErrNotFound is returned by LoadFromPath when no file exists at the path
var ErrNotFound = errors.New("config file not found")

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// DefaultPath is $XDG_CONFIG_HOME/reelshare/config.toml, falling back to
// ~/.config when the user config dir is unknown.
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "reelshare", "config.toml")
}

// NewConfigService creates a config service for path, or DefaultPath when
// path is empty.
func NewConfigService(path string) ConfigService {
	if path == "" {
		path = DefaultPath()
	}
	return &configService{filePath: path}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(path string, bus eventbus.EventBus) ConfigService {
	cs := NewConfigService(path).(*configService)
	cs.bus = bus
	return cs
}

func (cs *configService) Path() string { return cs.filePath }

// Load loads the service's file, returning defaults (with environment
// overrides) when it does not exist.
func (cs *configService) Load() (*Config, error) {
	cfg, err := cs.LoadFromPath(cs.filePath)
	if errors.Is(err, ErrNotFound) {
		cfg, err = applyEnv(DefaultConfig())
	}
	if err != nil {
		return nil, err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{Path: cs.filePath})
	}
	return cfg, nil
}

// Save saves the configuration to the service's file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}
	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	}
	return nil
}

// LoadFromPath reads a TOML file over the defaults and then applies
// REELSHARE_* environment overrides.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return applyEnv(cfg)
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// the file may hold the JWT secret
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	layout := pager.DefaultLayout()
	return &Config{
		Version: 1,
		Client: ClientConfig{
			APIURL:  "http://localhost:3000",
			Timeout: "30s",
		},
		UI: UISettings{
			UnitsPerColumn: 8,
			Breakpoints: BreakpointSettings{
				Medium: layout.Breakpoints.Medium,
				Wide:   layout.Breakpoints.Wide,
			},
			Slots: SlotSettings{
				Narrow: layout.Slots.Narrow,
				Medium: layout.Slots.Medium,
				Wide:   layout.Slots.Wide,
			},
			ShowControlsHint: true,
		},
		Server: ServerConfig{
			Addr:            ":3000",
			TokenTTL:        "1h",
			DataDir:         "data",
			RateLimitMax:    100,
			RateLimitWindow: "1m",
			MaxUploadBytes:  100 << 20,
			CORSOrigins:     []string{"*"},
		},
		Media: MediaConfig{
			Backend:  MediaBackendLocal,
			LocalDir: filepath.Join("data", "media"),
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
			File:   "reelshare.log",
		},
	}
}

// PagerLayout converts the UI settings into carousel breakpoints
func (c *Config) PagerLayout() pager.Layout {
	return pager.Layout{
		Breakpoints: pager.Breakpoints{Medium: c.UI.Breakpoints.Medium, Wide: c.UI.Breakpoints.Wide},
		Slots:       pager.Slots{Narrow: c.UI.Slots.Narrow, Medium: c.UI.Slots.Medium, Wide: c.UI.Slots.Wide},
	}
}

// WidthUnits converts a terminal width in columns into layout units
func (c *Config) WidthUnits(columns int) int {
	upc := c.UI.UnitsPerColumn
	if upc < 1 {
		upc = 1
	}
	return columns * upc
}

func (c *Config) ClientTimeout() time.Duration {
	return durationOr(c.Client.Timeout, 30*time.Second)
}

func (c *Config) TokenTTL() time.Duration {
	return durationOr(c.Server.TokenTTL, time.Hour)
}

func (c *Config) RateLimitWindow() time.Duration {
	return durationOr(c.Server.RateLimitWindow, time.Minute)
}

func durationOr(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

// ValidateClient checks the settings the TUI depends on
func (c *Config) ValidateClient() error {
	var errs []error
	if c.Client.APIURL == "" {
		errs = append(errs, errors.New("client.api_url is required"))
	}
	if _, err := time.ParseDuration(c.Client.Timeout); err != nil {
		errs = append(errs, fmt.Errorf("client.timeout: %w", err))
	}
	if c.UI.Breakpoints.Medium <= 0 || c.UI.Breakpoints.Wide <= c.UI.Breakpoints.Medium {
		errs = append(errs, fmt.Errorf("ui.breakpoints: need 0 < medium < wide, got %d/%d",
			c.UI.Breakpoints.Medium, c.UI.Breakpoints.Wide))
	}
	if c.UI.Slots.Narrow < 1 || c.UI.Slots.Medium < 1 || c.UI.Slots.Wide < 1 {
		errs = append(errs, errors.New("ui.slots: every class needs at least one slot"))
	}
	return errors.Join(errs...)
}

// ValidateServer checks the settings the API server depends on
func (c *Config) ValidateServer() error {
	var errs []error
	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr is required"))
	}
	if len(c.Server.JWTSecret) < 32 {
		errs = append(errs, errors.New("server.jwt_secret must be at least 32 characters"))
	}
	if _, err := time.ParseDuration(c.Server.TokenTTL); err != nil {
		errs = append(errs, fmt.Errorf("server.token_ttl: %w", err))
	}
	if _, err := time.ParseDuration(c.Server.RateLimitWindow); err != nil {
		errs = append(errs, fmt.Errorf("server.rate_limit_window: %w", err))
	}
	if c.Server.RateLimitMax < 1 {
		errs = append(errs, errors.New("server.rate_limit_max must be positive"))
	}
	if c.Server.MaxUploadBytes < 1 {
		errs = append(errs, errors.New("server.max_upload_bytes must be positive"))
	}
	switch c.Media.Backend {
	case MediaBackendLocal:
		if c.Media.LocalDir == "" {
			errs = append(errs, errors.New("media.local_dir is required for the local backend"))
		}
	case MediaBackendGCS:
		if c.Media.GCSBucket == "" {
			errs = append(errs, errors.New("media.gcs_bucket is required for the gcs backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("media.backend: unknown backend %q", c.Media.Backend))
	}
	return errors.Join(errs...)
}
