// Package config loads the watch configuration from TOML, the environment and defaults.
package config

import (
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	pkgerrors "github.com/pkg/errors"
)

const (
	EnvConfigPath = "WRISTFACE_CONFIG"
	EnvListenAddr = "WRISTFACE_LISTEN"
	EnvDevMode    = "WRISTFACE_DEV"
	EnvOutboxURL  = "WRISTFACE_OUTBOX_URL"
	EnvDisplay    = "WRISTFACE_DISPLAY"
)

// Display backends.
const (
	DisplayFramebuffer = "framebuffer"
	DisplayEPaper      = "epaper"
	DisplayNone        = "none"
)

type Config struct {
	Server    ServerConfig    `toml:"server"`
	Display   DisplayConfig   `toml:"display"`
	Companion CompanionConfig `toml:"companion"`
	Sources   SourcesConfig   `toml:"sources"`
	Haptics   HapticsConfig   `toml:"haptics"`
	Settings  SettingsConfig  `toml:"settings"`
	Log       LogConfig       `toml:"log"`
}

type ServerConfig struct {
	Listen string `toml:"listen"`
	Dev    bool   `toml:"dev"`
	// PublicURL is what the pairing QR code points phones at. Empty derives
	// it from the listen address.
	PublicURL string `toml:"public_url"`
}

type DisplayConfig struct {
	Backend       string   `toml:"backend"`
	Framebuffer   string   `toml:"framebuffer"`
	SPIPort       string   `toml:"spi_port"`
	Clock24h      bool     `toml:"clock_24h"`
	StepGoal      int      `toml:"step_goal"`
	LineWidth     int      `toml:"line_width"`
	FrameInterval Duration `toml:"frame_interval"`
}

type CompanionConfig struct {
	OutboxURL string   `toml:"outbox_url"`
	Timeout   Duration `toml:"timeout"`
	InboxSize int      `toml:"inbox_size"`
}

type SourcesConfig struct {
	BatteryInterval Duration `toml:"battery_interval"`
	Bluetooth       bool     `toml:"bluetooth"`
}

type HapticsConfig struct {
	// Pin names the GPIO driving the vibration motor. Empty logs pulses instead.
	Pin string `toml:"pin"`
}

type SettingsConfig struct {
	Path string `toml:"path"`
}

type LogConfig struct {
	File  string `toml:"file"`
	Debug bool   `toml:"debug"`
}

// Load reads the configuration. An explicit path must exist; otherwise the
// search order is:
//  1. $WRISTFACE_CONFIG
//  2. $XDG_CONFIG_HOME/wristface/config.toml
//  3. ~/.config/wristface/config.toml
//
// If no file exists, returns DefaultConfig() with environment overrides.
func Load(explicitPath string) (*Config, error) {
	if explicitPath != "" {
		f, err := os.Open(explicitPath)
		if err != nil {
			return nil, pkgerrors.Wrap(err, "open config")
		}
		defer f.Close()
		return LoadFromReader(f)
	}
	for _, p := range configSearchPaths() {
		if _, err := os.Stat(p); err == nil {
			return LoadFromFile(p)
		}
	}
	return finish(DefaultConfig())
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return finish(DefaultConfig())
		}
		return nil, pkgerrors.Wrap(err, "open config")
	}
	defer f.Close()
	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

// LoadFromReader decodes TOML over the defaults, then applies the environment.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.NewDecoder(r).Decode(cfg); err != nil {
		return nil, pkgerrors.Wrap(err, "decode config")
	}
	return finish(cfg)
}

func finish(cfg *Config) (*Config, error) {
	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		Server: ServerConfig{Listen: ":80"},
		Display: DisplayConfig{
			Backend:       DisplayFramebuffer,
			Framebuffer:   "/dev/fb0",
			Clock24h:      true,
			StepGoal:      100,
			LineWidth:     6,
			FrameInterval: Duration{time.Second / 30},
		},
		Companion: CompanionConfig{
			Timeout:   Duration{10 * time.Second},
			InboxSize: 128,
		},
		Sources: SourcesConfig{
			BatteryInterval: Duration{30 * time.Second},
			Bluetooth:       true,
		},
		Settings: SettingsConfig{
			Path: filepath.Join(xdgStateHome(home), "wristface", "settings.bin"),
		},
	}
}

// Validate rejects values no component can run with.
func (c *Config) Validate() error {
	switch c.Display.Backend {
	case DisplayFramebuffer, DisplayEPaper, DisplayNone:
	default:
		return pkgerrors.Errorf("display.backend must be %q, %q or %q (got %q)",
			DisplayFramebuffer, DisplayEPaper, DisplayNone, c.Display.Backend)
	}
	if c.Display.StepGoal <= 0 {
		return pkgerrors.Errorf("display.step_goal must be positive (got %d)", c.Display.StepGoal)
	}
	if c.Display.LineWidth <= 0 {
		return pkgerrors.Errorf("display.line_width must be positive (got %d)", c.Display.LineWidth)
	}
	if c.Companion.InboxSize <= 0 {
		return pkgerrors.Errorf("companion.inbox_size must be positive (got %d)", c.Companion.InboxSize)
	}
	if c.Settings.Path == "" {
		return pkgerrors.New("settings.path must be set")
	}
	return nil
}

// applyEnvOverrides checks environment variables and overrides config values.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv(EnvListenAddr); v != "" {
		cfg.Server.Listen = v
	}
	if raw := os.Getenv(EnvDevMode); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return pkgerrors.Wrapf(err, "%s must be a boolean (got %q)", EnvDevMode, raw)
		}
		cfg.Server.Dev = parsed
	}
	if v := os.Getenv(EnvOutboxURL); v != "" {
		cfg.Companion.OutboxURL = v
	}
	if v := os.Getenv(EnvDisplay); v != "" {
		cfg.Display.Backend = v
	}
	return nil
}

// configSearchPaths returns the ordered list of config file paths to try.
func configSearchPaths() []string {
	home, _ := os.UserHomeDir()
	var paths []string
	if v := os.Getenv(EnvConfigPath); v != "" {
		paths = append(paths, v)
	}

	xdg := xdgConfigHome(home)
	paths = append(paths, filepath.Join(xdg, "wristface", "config.toml"))

	defaultXDG := filepath.Join(home, ".config")
	if xdg != defaultXDG {
		paths = append(paths, filepath.Join(defaultXDG, "wristface", "config.toml"))
	}
	return paths
}

func xdgConfigHome(home string) string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	return filepath.Join(home, ".config")
}

func xdgStateHome(home string) string {
	if v := os.Getenv("XDG_STATE_HOME"); v != "" {
		return v
	}
	return filepath.Join(home, ".local", "state")
}
