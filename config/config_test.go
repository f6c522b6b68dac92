package config

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())
	assert.Equal(t, "fragment.kage", c.Shader.Path)
	assert.Equal(t, ResolutionWindow, c.Window.Resolution)
	assert.Equal(t, OnErrorAbort, c.Shader.OnError)
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "host.yaml", `
window:
  width: 1280
  resolution: fixed
shader:
  path: shaders/tunnel.kage
  watch: true
log_level: debug
`)
	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1280, c.Window.Width)
	// untouched keys keep their defaults
	assert.Equal(t, 600, c.Window.Height)
	assert.Equal(t, 60, c.Window.TPS)
	assert.Equal(t, ResolutionFixed, c.Window.Resolution)
	assert.Equal(t, "shaders/tunnel.kage", c.Shader.Path)
	assert.True(t, c.Shader.Watch)
	assert.Equal(t, OnErrorAbort, c.Shader.OnError)

	l, err := c.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, l)
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "host.toml", `
log_level = "warn"

[window]
height = 720
tps = 30

[shader]
on_error = "continue"
`)
	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 800, c.Window.Width)
	assert.Equal(t, 720, c.Window.Height)
	assert.Equal(t, 30, c.Window.TPS)
	assert.Equal(t, OnErrorContinue, c.Shader.OnError)
	assert.Equal(t, "warn", c.LogLevel)
}

func TestLoadRejects(t *testing.T) {
	tests := []struct {
		name, file, contents string
	}{
		{"unknown extension", "host.ini", "width=1"},
		{"bad yaml", "host.yaml", "window: [1, 2"},
		{"bad resolution", "host.yaml", "window:\n  resolution: stretch\n"},
		{"bad on_error", "host.toml", "[shader]\non_error = \"retry\"\n"},
		{"negative size", "host.yaml", "window:\n  width: -3\n"},
		{"bad level", "host.yaml", "log_level: loud\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.file, tt.contents))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestParsePrecedence(t *testing.T) {
	path := writeFile(t, "host.yaml", "window:\n  width: 1024\n  height: 512\nshader:\n  watch: true\n")

	c, err := Parse("raytracer", []string{"-config", path, "-height", "400", "-check"}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, 1024, c.Window.Width, "file beats defaults")
	assert.Equal(t, 400, c.Window.Height, "flags beat file")
	assert.True(t, c.Shader.Watch)
	assert.True(t, c.Check)
}

func TestParseUnsetFlagsDoNotOverrideFile(t *testing.T) {
	path := writeFile(t, "host.toml", "[shader]\npath = \"a.kage\"\n")
	c, err := Parse("raytracer", []string{"-config", path}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "a.kage", c.Shader.Path)
	assert.False(t, c.Check)
}

func TestParseErrors(t *testing.T) {
	_, err := Parse("raytracer", []string{"-nope"}, io.Discard)
	assert.Error(t, err)

	_, err = Parse("raytracer", []string{"-on-error", "shrug"}, io.Discard)
	assert.Error(t, err)
}
