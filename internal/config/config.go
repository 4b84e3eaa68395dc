// internal/config/config.go
package config

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. KRYON_LAYOUT_MAX_ROUNDS.
const EnvPrefix = "KRYON"

// Config is the full application configuration.
type Config struct {
	Logger LoggerConfig `mapstructure:"logger" yaml:"logger"`
	Window WindowConfig `mapstructure:"window" yaml:"window"`
	Layout LayoutConfig `mapstructure:"layout" yaml:"layout"`
	Scene  SceneConfig  `mapstructure:"scene" yaml:"scene"`
}

// LoggerConfig holds all the configuration for the logger.
type LoggerConfig struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Format      string `mapstructure:"format" yaml:"format"`
	AddSource   bool   `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int    `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int    `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool   `mapstructure:"compress" yaml:"compress"`
}

// WindowConfig describes the window the renderer opens.
type WindowConfig struct {
	Width      int    `mapstructure:"width" yaml:"width"`
	Height     int    `mapstructure:"height" yaml:"height"`
	Title      string `mapstructure:"title" yaml:"title"`
	Resizable  bool   `mapstructure:"resizable" yaml:"resizable"`
	TargetFPS  int    `mapstructure:"target_fps" yaml:"target_fps"`
	Background string `mapstructure:"background" yaml:"background"`
}

// LayoutConfig tunes the layout resolver.
type LayoutConfig struct {
	MaxRounds int `mapstructure:"max_rounds" yaml:"max_rounds"`
}

// SceneConfig points at the scene to load and the directory images are read from.
type SceneConfig struct {
	Path     string `mapstructure:"path" yaml:"path"`
	AssetDir string `mapstructure:"asset_dir" yaml:"asset_dir"`
}

// NewDefaultConfig creates a new configuration struct populated with default values.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return &cfg
}

// SetDefaults initializes default values for every configuration key.
func SetDefaults(v *viper.Viper) {
	// Logger
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "kryon")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 10)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 7)
	v.SetDefault("logger.compress", false)

	// Window
	v.SetDefault("window.width", 800)
	v.SetDefault("window.height", 600)
	v.SetDefault("window.title", "Kryon Application")
	v.SetDefault("window.resizable", true)
	v.SetDefault("window.target_fps", 60)
	v.SetDefault("window.background", "#1e1e1e")

	// Layout
	v.SetDefault("layout.max_rounds", 10)

	// Scene
	v.SetDefault("scene.path", "")
	v.SetDefault("scene.asset_dir", "")
}

// NewConfigFromViper unmarshals v, applying KRYON_* environment overrides,
// and validates the result.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration for sane values.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window.width and window.height must be positive integers")
	}
	if c.Window.TargetFPS < 0 {
		return fmt.Errorf("window.target_fps must not be negative")
	}
	if _, err := ParseHexColor(c.Window.Background); err != nil {
		return fmt.Errorf("window.background: %w", err)
	}
	if c.Layout.MaxRounds <= 0 {
		return fmt.Errorf("layout.max_rounds must be a positive integer")
	}
	switch c.Logger.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logger.format must be 'console' or 'json', got %q", c.Logger.Format)
	}
	return nil
}

// ParseHexColor parses "#rrggbb" or "#rrggbbaa".
func ParseHexColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("color %q must be #rrggbb or #rrggbbaa", s)
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(n >> 24), G: uint8(n >> 16), B: uint8(n >> 8), A: uint8(n)}, nil
}
