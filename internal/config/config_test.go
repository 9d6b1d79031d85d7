package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/starfall/internal/core/combat"
	"github.com/zeusync/starfall/internal/core/observability/log"
)

func TestDefaultIsValid(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())
	assert.Equal(t, 3, c.Player.Health)
	assert.Equal(t, 400.0, c.Player.Speed)
	assert.Equal(t, 800.0, c.Projectile.Speed)
	assert.Equal(t, 5.0, c.Meteor.Grace)
	assert.Equal(t, 1.0, c.Spawner.IntervalMin)
	assert.Equal(t, 3.0, c.Spawner.IntervalMax)
}

func TestLoadReaderOverridesDefaults(t *testing.T) {
	const doc = `
seed: nebula-7
log_level: debug
player:
  health: 5
  auto_fire: true
spawner:
  interval_min: 0.5
  interval_max: 0.75
`
	c, err := LoadReader(strings.NewReader(doc))
	require.NoError(t, err)

	assert.Equal(t, "nebula-7", c.Seed)
	assert.Equal(t, log.LevelDebug, c.Level())
	assert.Equal(t, 5, c.Player.Health)
	assert.True(t, c.Player.AutoFire)
	assert.Equal(t, 0.2, c.Player.FireDelay, "untouched keys keep defaults")
	assert.Equal(t, 0.5, c.Spawner.IntervalMin)
	assert.Equal(t, combat.DefaultMeteorConfig(), c.Meteor)
}

func TestLoadReaderEmpty(t *testing.T) {
	c, err := LoadReader(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
}

func TestLoadReaderRejects(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		unknown bool
	}{
		{name: "unknown key", doc: "playr:\n  health: 2\n", unknown: true},
		{name: "projectile spread comes from player", doc: "projectile:\n  spread: 0.5\n", unknown: true},
		{name: "bad level", doc: "log_level: loud\n"},
		{name: "inverted interval", doc: "spawner:\n  interval_min: 3\n  interval_max: 1\n"},
		{name: "dead player", doc: "player:\n  health: 0\n"},
		{name: "no viewport", doc: "viewport:\n  width: 0\n"},
		{name: "volume", doc: "audio:\n  volume: 2\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadReader(strings.NewReader(tt.doc))
			require.Error(t, err)
			if !tt.unknown {
				assert.ErrorIs(t, err, ErrInvalidConfig)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "starfall.yaml")
	require.NoError(t, os.WriteFile(path, []byte("meteor:\n  grace: 2.5\n"), 0o600))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2.5, c.Meteor.Grace)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	c, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
}
