package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Empty(t, cfg.URLFile)
	assert.Empty(t, cfg.Plumber)
	assert.Empty(t, cfg.Piper)
	assert.Equal(t, "sfeed_markread read", cfg.MarkRead)
	assert.Equal(t, "sfeed_markread unread", cfg.MarkUnread)
	assert.True(t, cfg.Mouse)
	assert.False(t, cfg.OnlyNew)
	assert.False(t, cfg.LazyLoad)
	assert.Empty(t, cfg.Debug)
}

func TestLoadFromFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
url_file = "/tmp/urls"
plumber = "xdg-open"
piper = "less -R"
mouse = false
only_new = true
lazy_load = true
debug = "info"
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/urls", cfg.URLFile)
	assert.Equal(t, "xdg-open", cfg.Plumber)
	assert.Equal(t, "less -R", cfg.Piper)
	assert.False(t, cfg.Mouse)
	assert.True(t, cfg.OnlyNew)
	assert.True(t, cfg.LazyLoad)
	assert.Equal(t, "info", cfg.Debug)
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("SFEED_URL_FILE", "/tmp/env-urls")
	t.Setenv("SFEED_PLUMBER", "open")
	t.Setenv("SFEED_PIPER", "more")
	t.Setenv("SFEED_MARK_READ", "mark r")
	t.Setenv("SFEED_MARK_UNREAD", "mark u")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "/tmp/env-urls", cfg.URLFile)
	assert.Equal(t, "open", cfg.Plumber)
	assert.Equal(t, "more", cfg.Piper)
	assert.Equal(t, "mark r", cfg.MarkRead)
	assert.Equal(t, "mark u", cfg.MarkUnread)
}

func TestURLFileTildeExpansion(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("SFEED_URL_FILE", "~/urls")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "urls"), cfg.URLFile)
}

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty stays empty", input: "", want: ""},
		{name: "tilde expands", input: "~/x/urls", want: filepath.Join(home, "x", "urls")},
		{name: "absolute unchanged", input: "/tmp/urls", want: "/tmp/urls"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, expandPath(tt.input))
		})
	}
}

func TestMissingExplicitConfigFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}
