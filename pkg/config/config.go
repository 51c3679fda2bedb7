// Package config holds the runtime configuration shared by the command
// line tools. Values come from defaults, an optional YAML file and
// AUTOSIZE_* environment variables, in increasing precedence. Without an
// explicit file, autosize.yaml is looked up in the working directory and
// then in ~/.config/autosize.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"autosize/pkg/layout"
	"autosize/pkg/page"
)

// EnvPrefix prefixes environment overrides, e.g. AUTOSIZE_VIEWPORT_WIDTH.
const EnvPrefix = "AUTOSIZE"

type Config struct {
	Viewport ViewportConfig `mapstructure:"viewport" yaml:"viewport"`
	Engine   EngineConfig   `mapstructure:"engine" yaml:"engine"`
	Logger   LoggerConfig   `mapstructure:"logger" yaml:"logger"`
	Render   RenderConfig   `mapstructure:"render" yaml:"render"`
}

type ViewportConfig struct {
	Width          int     `mapstructure:"width" yaml:"width"`
	Height         int     `mapstructure:"height" yaml:"height"`
	ScrollbarWidth float64 `mapstructure:"scrollbar_width" yaml:"scrollbar_width"`
}

// EngineConfig selects host quirks and autosize options.
type EngineConfig struct {
	StaleOverflowReflow   bool `mapstructure:"stale_overflow_reflow" yaml:"stale_overflow_reflow"`
	DetachedDispatchError bool `mapstructure:"detached_dispatch_error" yaml:"detached_dispatch_error"`
	NoComputedStyle       bool `mapstructure:"no_computed_style" yaml:"no_computed_style"`
	KeyupFallback         bool `mapstructure:"keyup_fallback" yaml:"keyup_fallback"`
}

type LoggerConfig struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Format      string `mapstructure:"format" yaml:"format"`
	ServiceName string `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int    `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int    `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool   `mapstructure:"compress" yaml:"compress"`
}

type RenderConfig struct {
	// Output is the PNG path; empty skips rendering.
	Output string `mapstructure:"output" yaml:"output"`
	// FontsDir overrides the directory holding the bundled fonts.
	FontsDir string `mapstructure:"fonts_dir" yaml:"fonts_dir"`
}

// SetDefaults registers every default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("viewport.width", 800)
	v.SetDefault("viewport.height", 600)
	v.SetDefault("viewport.scrollbar_width", layout.DefaultScrollbarWidth)

	v.SetDefault("engine.stale_overflow_reflow", false)
	v.SetDefault("engine.detached_dispatch_error", false)
	v.SetDefault("engine.no_computed_style", false)
	v.SetDefault("engine.keyup_fallback", false)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.service_name", "autosize")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 10)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 7)
	v.SetDefault("logger.compress", false)

	v.SetDefault("render.output", "")
	v.SetDefault("render.fonts_dir", "")
}

// NewDefaultConfig returns the configuration with only defaults applied.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return &cfg
}

// Prepare wires defaults and environment lookup into v and reads the
// config file when one is named. A missing default config file is not an
// error.
func Prepare(v *viper.Viper, file string) error {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		path, err := homedir.Expand(file)
		if err != nil {
			return fmt.Errorf("config path: %w", err)
		}
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		if home, err := homedir.Dir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "autosize"))
		}
		v.SetConfigName("autosize")
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}
	return nil
}

// Load unmarshals and validates the configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	for _, p := range []*string{&cfg.Logger.LogFile, &cfg.Render.Output, &cfg.Render.FontsDir} {
		expanded, err := homedir.Expand(*p)
		if err != nil {
			return nil, fmt.Errorf("expand %q: %w", *p, err)
		}
		*p = expanded
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		return fmt.Errorf("invalid viewport %dx%d", c.Viewport.Width, c.Viewport.Height)
	}
	if c.Viewport.ScrollbarWidth < 0 {
		return fmt.Errorf("invalid scrollbar width %v", c.Viewport.ScrollbarWidth)
	}
	switch c.Logger.Format {
	case "console", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.Logger.Format)
	}
	return nil
}

// PageOptions converts the configuration to page options.
func (c *Config) PageOptions(logger *zap.Logger) page.Options {
	opts := page.DefaultOptions()
	opts.ViewportWidth = float64(c.Viewport.Width)
	opts.ViewportHeight = float64(c.Viewport.Height)
	opts.ScrollbarWidth = c.Viewport.ScrollbarWidth
	opts.Quirks = page.Quirks{
		StaleOverflowReflow:   c.Engine.StaleOverflowReflow,
		DetachedDispatchError: c.Engine.DetachedDispatchError,
	}
	opts.NoComputedStyle = c.Engine.NoComputedStyle
	opts.Logger = logger
	return opts
}
