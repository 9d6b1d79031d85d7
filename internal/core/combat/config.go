package combat

import (
	"fmt"
	"math"
)

// ProjectileConfig tunes fired bullets. Durations are in seconds, angles in radians.
type ProjectileConfig struct {
	Speed    float64 `yaml:"speed"`
	Lifetime float64 `yaml:"lifetime"`
	// Spread is taken from PlayerConfig for the player's bullets, so it is
	// not read from config files.
	Spread float64 `yaml:"-"`
	Radius float64 `yaml:"radius"`
}

type MeteorConfig struct {
	Speed  float64 `yaml:"speed"`
	Grace  float64 `yaml:"grace"`
	Radius float64 `yaml:"radius"`
	Mass   float64 `yaml:"mass"`
	Drag   float64 `yaml:"drag"`
}

type PlayerConfig struct {
	Speed        float64 `yaml:"speed"`
	Acceleration float64 `yaml:"acceleration"`
	RotationSlew float64 `yaml:"rotation_slew"`
	Health       int     `yaml:"health"`
	Spread       float64 `yaml:"spread"`
	FireDelay    float64 `yaml:"fire_delay"`
	// Muzzle is the distance along the facing at which bullets appear.
	Muzzle float64 `yaml:"muzzle"`
	Radius float64 `yaml:"radius"`
	// AutoFire keeps shooting while fire is held instead of once per press.
	AutoFire bool `yaml:"auto_fire"`
}

type SpawnerConfig struct {
	IntervalMin float64 `yaml:"interval_min"`
	IntervalMax float64 `yaml:"interval_max"`
	// AimSpread bounds the random deviation from the direct line to the player.
	AimSpread float64 `yaml:"aim_spread"`
}

func DefaultProjectileConfig() ProjectileConfig {
	return ProjectileConfig{Speed: 800, Lifetime: 5, Radius: 4}
}

func DefaultMeteorConfig() MeteorConfig {
	return MeteorConfig{Speed: 100, Grace: 5, Radius: 24, Mass: 1, Drag: 0.5}
}

func DefaultPlayerConfig() PlayerConfig {
	return PlayerConfig{
		Speed:        400,
		Acceleration: 2,
		RotationSlew: 4 * math.Pi,
		Health:       3,
		Spread:       0.1,
		FireDelay:    0.2,
		Muzzle:       28,
		Radius:       16,
	}
}

func DefaultSpawnerConfig() SpawnerConfig {
	return SpawnerConfig{IntervalMin: 1, IntervalMax: 3, AimSpread: math.Pi / 2}
}

func (c ProjectileConfig) Validate() error {
	switch {
	case c.Speed < 0:
		return fmt.Errorf("projectile speed %v: %w", c.Speed, ErrInvalidConfig)
	case c.Lifetime <= 0:
		return fmt.Errorf("projectile lifetime %v: %w", c.Lifetime, ErrInvalidConfig)
	case c.Spread < 0:
		return fmt.Errorf("projectile spread %v: %w", c.Spread, ErrInvalidConfig)
	case c.Radius <= 0:
		return fmt.Errorf("projectile radius %v: %w", c.Radius, ErrInvalidConfig)
	}
	return nil
}

func (c MeteorConfig) Validate() error {
	switch {
	case c.Speed < 0:
		return fmt.Errorf("meteor speed %v: %w", c.Speed, ErrInvalidConfig)
	case c.Grace <= 0:
		return fmt.Errorf("meteor grace %v: %w", c.Grace, ErrInvalidConfig)
	case c.Radius <= 0:
		return fmt.Errorf("meteor radius %v: %w", c.Radius, ErrInvalidConfig)
	case c.Mass <= 0:
		return fmt.Errorf("meteor mass %v: %w", c.Mass, ErrInvalidConfig)
	case c.Drag < 0:
		return fmt.Errorf("meteor drag %v: %w", c.Drag, ErrInvalidConfig)
	}
	return nil
}

func (c PlayerConfig) Validate() error {
	switch {
	case c.Speed < 0:
		return fmt.Errorf("player speed %v: %w", c.Speed, ErrInvalidConfig)
	case c.Acceleration < 0:
		return fmt.Errorf("player acceleration %v: %w", c.Acceleration, ErrInvalidConfig)
	case c.RotationSlew < 0:
		return fmt.Errorf("player rotation slew %v: %w", c.RotationSlew, ErrInvalidConfig)
	case c.Health <= 0:
		return fmt.Errorf("player health %d: %w", c.Health, ErrInvalidConfig)
	case c.Spread < 0:
		return fmt.Errorf("player spread %v: %w", c.Spread, ErrInvalidConfig)
	case c.FireDelay < 0:
		return fmt.Errorf("player fire delay %v: %w", c.FireDelay, ErrInvalidConfig)
	case c.Radius <= 0:
		return fmt.Errorf("player radius %v: %w", c.Radius, ErrInvalidConfig)
	}
	return nil
}

func (c SpawnerConfig) Validate() error {
	switch {
	case c.IntervalMin <= 0:
		return fmt.Errorf("spawn interval min %v: %w", c.IntervalMin, ErrInvalidConfig)
	case c.IntervalMax < c.IntervalMin:
		return fmt.Errorf("spawn interval [%v, %v]: %w", c.IntervalMin, c.IntervalMax, ErrInvalidConfig)
	case c.AimSpread < 0:
		return fmt.Errorf("spawn aim spread %v: %w", c.AimSpread, ErrInvalidConfig)
	}
	return nil
}
