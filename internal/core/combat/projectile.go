package combat

import (
	"math"

	"github.com/zeusync/starfall/internal/core/observability/log"
	"github.com/zeusync/starfall/internal/core/systems/physics"
	"github.com/zeusync/starfall/internal/core/timer"
)

// Sprites point up while angle zero points right.
const drawOffset = math.Pi / 2

// Projectile flies in a straight line until it hits something or its lifetime
// runs out.
type Projectile struct {
	base
	cfg       ProjectileConfig
	origin    physics.Vec2
	rotation  float64
	direction physics.Vec2
	lifetime  *timer.Timer
}

// NewProjectile aims a projectile along orientation, perturbed by a random
// angle in [-cfg.Spread, cfg.Spread]. The same perturbation applies to the
// sprite rotation and the travel direction.
func NewProjectile(deps Deps, cfg ProjectileConfig, origin physics.Vec2, orientation float64) (*Projectile, error) {
	deps, err := deps.validate()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	spread := 0.0
	if cfg.Spread > 0 {
		spread = deps.Rand.Range(-cfg.Spread, cfg.Spread)
	}
	p := &Projectile{
		base:      newBase(KindProjectile, deps),
		cfg:       cfg,
		origin:    origin,
		rotation:  orientation + drawOffset + spread,
		direction: physics.FromAngle(orientation + spread),
	}
	p.self = p
	return p, nil
}

// Spawn places the projectile in the world and starts its lifetime.
func (p *Projectile) Spawn() error {
	spec := physics.BodySpec{
		Radius: p.cfg.Radius,
		Layer:  physics.LayerProjectile,
		Mask:   physics.LayerMeteor,
	}
	if err := p.register(spec, p.origin, p.rotation, func() { p.lifetime.Cancel() }); err != nil {
		return err
	}
	p.lifetime = p.deps.Timers.Schedule(p.cfg.Lifetime, false, p.destroy)
	p.deps.Log.Debug("projectile spawned",
		log.Stringer("id", p.id),
		log.Float64("x", p.origin.X),
		log.Float64("y", p.origin.Y),
	)
	return nil
}

// Direction is the unit travel direction, or zero when the projectile cannot move.
func (p *Projectile) Direction() physics.Vec2 { return p.direction }

// Redirect points the projectile along dir. A zero dir stops it in place.
func (p *Projectile) Redirect(dir physics.Vec2) {
	p.direction = dir.Normalized()
	if !p.direction.IsZero() {
		p.deps.Physics.SetRotation(p, p.direction.Angle()+drawOffset)
	}
}

func (p *Projectile) OnTick(dt float64) {
	if p.Destroyed() || dt <= 0 {
		return
	}
	displacement := p.direction.Scale(p.cfg.Speed * dt)
	if displacement.IsZero() {
		return
	}
	if other, hit := p.deps.Physics.MoveAndCollide(p, displacement); hit {
		p.strike(other)
		p.destroy()
	}
}
