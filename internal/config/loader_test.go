package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/pong3d/internal/core"
	"github.com/vovakirdan/pong3d/internal/physics"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := Parse(defaultPongYAML)
	require.NoError(t, err)
	assert.Equal(t, DefaultPongConfig(), cfg)
}

func TestDefaultsAreValid(t *testing.T) {
	require.NoError(t, DefaultPongConfig().Validate())
}

func TestParsePartialOverride(t *testing.T) {
	cfg, err := Parse([]byte(`
ball:
  speed: 4
physics:
  penetration: push_out
`))
	require.NoError(t, err)

	assert.Equal(t, 4.0, cfg.Ball.Speed)
	assert.Equal(t, physics.PenetrationPushOut, cfg.PenetrationPolicy())
	// Untouched keys keep their defaults
	assert.Equal(t, 0.1, cfg.Ball.Radius)
	assert.Equal(t, core.V3(-2, 0.5, 0), cfg.ServeDirection())
}

func TestParseRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"zero speed", "ball: {speed: 0}"},
		{"negative paddle height", "paddle: {height: -1}"},
		{"short direction", "ball: {initial_direction: [1, 0]}"},
		{"zero direction", "ball: {initial_direction: [0, 0, 0]}"},
		{"unknown penetration", "physics: {penetration: bounce_twice}"},
		{"negative max delta", "physics: {max_delta: -0.1}"},
		{"flat border", "border: {thickness: 0}"},
		{"fisheye", "camera: {fov: 190}"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.yaml))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalid), "expected ErrInvalid, got %v", err)
		})
	}
}

func TestBorderlessSkipsBorderChecks(t *testing.T) {
	_, err := Parse([]byte("arena: {borders: false}\nborder: {thickness: 0}"))
	assert.NoError(t, err)
}

func TestParseMalformedYAML(t *testing.T) {
	_, err := Parse([]byte("ball: [not, a, map"))
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrInvalid))
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("arena: {bound_x: 8}\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8.0, cfg.Arena.BoundX)
}

func TestLoadMissingCustomPath(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadUserDirectory(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".pong3d", "configs")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pong.yaml"), []byte("input: {pointer_scale: 2}\n"), 0o600))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 2.0, cfg.Input.PointerScale)
}

func TestLoadFallsBackToEmbedded(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultPongConfig(), cfg)
}
