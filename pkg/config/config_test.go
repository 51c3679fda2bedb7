package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()
	assert.Equal(t, 800, cfg.Viewport.Width)
	assert.Equal(t, 600, cfg.Viewport.Height)
	assert.Equal(t, 15.0, cfg.Viewport.ScrollbarWidth)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "console", cfg.Logger.Format)
	assert.False(t, cfg.Engine.StaleOverflowReflow)
	require.NoError(t, cfg.Validate())
}

func TestPrepareReadsFileAndEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "autosize.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
viewport:
  width: 640
engine:
  stale_overflow_reflow: true
logger:
  format: json
`), 0o644))
	t.Setenv("AUTOSIZE_VIEWPORT_HEIGHT", "480")

	v := viper.New()
	require.NoError(t, Prepare(v, path))
	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, 640, cfg.Viewport.Width)
	assert.Equal(t, 480, cfg.Viewport.Height)
	assert.True(t, cfg.Engine.StaleOverflowReflow)
	assert.Equal(t, "json", cfg.Logger.Format)
}

func TestPrepareMissingFile(t *testing.T) {
	t.Run("named file must exist", func(t *testing.T) {
		err := Prepare(viper.New(), filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
	t.Run("default file is optional", func(t *testing.T) {
		chdir(t, t.TempDir())
		assert.NoError(t, Prepare(viper.New(), ""))
	})
}

func TestHomeDirectory(t *testing.T) {
	homedir.DisableCache = true
	t.Cleanup(func() { homedir.DisableCache = false })
	home := t.TempDir()
	t.Setenv("HOME", home)
	dir := filepath.Join(home, ".config", "autosize")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "autosize.yaml"), []byte("viewport:\n  width: 1024\nrender:\n  fonts_dir: ~/fonts\n"), 0o644))

	t.Run("user config is found", func(t *testing.T) {
		chdir(t, t.TempDir())
		v := viper.New()
		require.NoError(t, Prepare(v, ""))
		cfg, err := Load(v)
		require.NoError(t, err)
		assert.Equal(t, 1024, cfg.Viewport.Width)
		assert.Equal(t, filepath.Join(home, "fonts"), cfg.Render.FontsDir)
	})
	t.Run("tilde in named file", func(t *testing.T) {
		v := viper.New()
		require.NoError(t, Prepare(v, "~/.config/autosize/autosize.yaml"))
		cfg, err := Load(v)
		require.NoError(t, err)
		assert.Equal(t, 1024, cfg.Viewport.Width)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Viewport.Width = 0 }},
		{"negative height", func(c *Config) { c.Viewport.Height = -1 }},
		{"negative scrollbar", func(c *Config) { c.Viewport.ScrollbarWidth = -1 }},
		{"unknown format", func(c *Config) { c.Logger.Format = "xml" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestPageOptions(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Viewport.Width = 320
	cfg.Engine.DetachedDispatchError = true
	cfg.Engine.NoComputedStyle = true

	opts := cfg.PageOptions(nil)
	assert.Equal(t, 320.0, opts.ViewportWidth)
	assert.Equal(t, 600.0, opts.ViewportHeight)
	assert.True(t, opts.Quirks.DetachedDispatchError)
	assert.False(t, opts.Quirks.StaleOverflowReflow)
	assert.True(t, opts.NoComputedStyle)
}

// chdir is a Go 1.21-compatible stand-in for testing.T.Chdir (Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(wd); err != nil {
			t.Fatal(err)
		}
	})
}
