// Package config loads the game configuration from YAML. Every key is optional;
// missing keys keep the values from Default.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/zeusync/starfall/internal/core/combat"
	"github.com/zeusync/starfall/internal/core/observability/log"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	// Seed feeds the random source. Empty picks a fresh seed every run.
	Seed     string         `yaml:"seed"`
	LogLevel string         `yaml:"log_level"`
	Viewport ViewportConfig `yaml:"viewport"`
	Session  SessionConfig  `yaml:"session"`
	Audio    AudioConfig    `yaml:"audio"`

	Player     combat.PlayerConfig     `yaml:"player"`
	Projectile combat.ProjectileConfig `yaml:"projectile"`
	Meteor     combat.MeteorConfig     `yaml:"meteor"`
	Spawner    combat.SpawnerConfig    `yaml:"spawner"`
}

type ViewportConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type SessionConfig struct {
	// MaxStep caps a single frame so a stalled host does not tunnel bodies.
	MaxStep float64 `yaml:"max_step"`
	// FollowPlayer keeps the camera centered on the ship.
	FollowPlayer bool `yaml:"follow_player"`
}

type AudioConfig struct {
	Enabled    bool    `yaml:"enabled"`
	SampleRate int     `yaml:"sample_rate"`
	Volume     float64 `yaml:"volume"`
}

func Default() *Config {
	return &Config{
		LogLevel: "info",
		Viewport: ViewportConfig{Width: 1152, Height: 648},
		Session:  SessionConfig{MaxStep: 0.05, FollowPlayer: true},
		Audio:    AudioConfig{SampleRate: 44100, Volume: 0.3},

		Player:     combat.DefaultPlayerConfig(),
		Projectile: combat.DefaultProjectileConfig(),
		Meteor:     combat.DefaultMeteorConfig(),
		Spawner:    combat.DefaultSpawnerConfig(),
	}
}

// Load reads a YAML file over the defaults. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		c := Default()
		return c, c.Validate()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	c, err := LoadReader(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// LoadReader decodes YAML from r over the defaults. Unknown keys are rejected.
func LoadReader(r io.Reader) (*Config, error) {
	c := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) Validate() error {
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w: %w", ErrInvalidConfig, err)
	}
	switch {
	case c.Viewport.Width <= 0 || c.Viewport.Height <= 0:
		return fmt.Errorf("viewport %vx%v: %w", c.Viewport.Width, c.Viewport.Height, ErrInvalidConfig)
	case c.Session.MaxStep <= 0:
		return fmt.Errorf("session.max_step %v: %w", c.Session.MaxStep, ErrInvalidConfig)
	case c.Audio.SampleRate <= 0:
		return fmt.Errorf("audio.sample_rate %d: %w", c.Audio.SampleRate, ErrInvalidConfig)
	case c.Audio.Volume < 0 || c.Audio.Volume > 1:
		return fmt.Errorf("audio.volume %v: %w", c.Audio.Volume, ErrInvalidConfig)
	}
	for _, check := range []func() error{
		c.Player.Validate,
		c.Projectile.Validate,
		c.Meteor.Validate,
		c.Spawner.Validate,
	} {
		if err := check(); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}
	return nil
}

// Level returns the parsed log level. Call after Validate.
func (c *Config) Level() log.Level {
	level, _ := log.ParseLevel(c.LogLevel)
	return level
}
