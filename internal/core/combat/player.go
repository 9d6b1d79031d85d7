package combat

import (
	"fmt"
	"math"

	"github.com/zeusync/starfall/internal/core/observability/log"
	"github.com/zeusync/starfall/internal/core/systems/physics"
	"github.com/zeusync/starfall/internal/core/timer"
)

type nopDisplay struct{}

func (nopDisplay) OnHealthChanged(int) {}

// Player is the ship steered by the input collaborator.
type Player struct {
	base
	cfg        PlayerConfig
	projectile ProjectileConfig
	input      Input
	display    HealthDisplay

	health   int
	cooldown *timer.Timer
	firing   bool
	shots    uint64
}

// NewPlayer builds the ship. Bullets use projectile with its Spread replaced
// by the player's own.
// A nil display discards health notifications.
func NewPlayer(deps Deps, cfg PlayerConfig, projectile ProjectileConfig, input Input, display HealthDisplay) (*Player, error) {
	deps, err := deps.validate()
	if err != nil {
		return nil, err
	}
	if input == nil {
		return nil, fmt.Errorf("input: %w", ErrMissingCollaborator)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	projectile.Spread = cfg.Spread
	if err := projectile.Validate(); err != nil {
		return nil, err
	}
	if display == nil {
		display = nopDisplay{}
	}
	p := &Player{
		base:       newBase(KindPlayer, deps),
		cfg:        cfg,
		projectile: projectile,
		input:      input,
		display:    display,
		health:     cfg.Health,
	}
	p.self = p
	return p, nil
}

// Spawn places the ship at position facing rotation.
func (p *Player) Spawn(position physics.Vec2, rotation float64) error {
	spec := physics.BodySpec{
		Radius: p.cfg.Radius,
		Layer:  physics.LayerPlayer,
		Mask:   physics.LayerMeteor,
	}
	if err := p.register(spec, position, rotation, func() { p.cooldown.Cancel() }); err != nil {
		return err
	}
	p.deps.Log.Info("player spawned", log.Stringer("id", p.id), log.Int("health", p.health))
	return nil
}

func (p *Player) Health() int { return p.health }

// Shots counts projectiles fired so far.
func (p *Player) Shots() uint64 { return p.shots }

// Facing is the unit vector the nose of the ship points along.
func (p *Player) Facing() physics.Vec2 {
	return physics.FromAngle(p.deps.Physics.Rotation(p))
}

// CoolingDown reports whether the fire cooldown is still running.
func (p *Player) CoolingDown() bool { return !p.cooldown.Stopped() }

func (p *Player) OnTick(dt float64) {
	if p.Destroyed() {
		return
	}
	if dt < 0 {
		dt = 0
	}
	p.handleFire()

	phys := p.deps.Physics
	intent := p.input.Intent()
	intent = physics.Vec2{X: physics.Clamp(intent.X, -1, 1), Y: physics.Clamp(intent.Y, -1, 1)}
	velocity := phys.Velocity(p)

	// turn towards where the ship is going, not where the stick points
	if !velocity.IsZero() {
		rotation := phys.Rotation(p)
		theta := physics.WrapAngle(velocity.Angle() - rotation)
		step := physics.Clamp(p.cfg.RotationSlew*dt, 0, math.Abs(theta)) * physics.Sign(theta)
		phys.SetRotation(p, physics.WrapAngle(rotation+step))
	}

	velocity = velocity.Lerp(intent.Scale(p.cfg.Speed), p.cfg.Acceleration*dt)
	phys.SetVelocity(p, velocity)

	// a zero move still reports bodies that drifted onto the ship
	if other, hit := phys.MoveAndCollide(p, velocity.Scale(dt)); hit {
		p.TakeDamage(1)
		p.strike(other)
	}
}

func (p *Player) handleFire() {
	pressed := p.input.FirePressed()
	trigger := pressed && (p.cfg.AutoFire || !p.firing)
	p.firing = pressed
	if !trigger || p.CoolingDown() {
		return
	}

	if p.cooldown == nil {
		p.cooldown = p.deps.Timers.Schedule(p.cfg.FireDelay, false, nil)
	} else {
		p.cooldown.Restart()
	}
	if _, err := p.Shoot(); err != nil {
		p.deps.Log.Warn("shot failed", log.Stringer("id", p.id), log.Error(err))
	}
}

// Shoot fires a projectile from the muzzle along the current facing. It does
// not consult or restart the cooldown. A destroyed ship returns ErrDestroyed.
func (p *Player) Shoot() (*Projectile, error) {
	if p.Destroyed() {
		return nil, fmt.Errorf("player %s: %w", p.id, ErrDestroyed)
	}
	rotation := p.deps.Physics.Rotation(p)
	muzzle := p.deps.Physics.Position(p).Add(physics.FromAngle(rotation).Scale(p.cfg.Muzzle))

	proj, err := NewProjectile(p.deps, p.projectile, muzzle, rotation)
	if err != nil {
		return nil, err
	}
	if err := proj.Spawn(); err != nil {
		return nil, err
	}
	p.shots++
	p.deps.publish(EventProjectileFired, FiredEvent{
		Projectile: proj.ID(),
		Position:   muzzle,
		Direction:  proj.Direction(),
	})
	return proj, nil
}

// TakeDamage removes amount health, tells the display, and destroys the ship
// once health reaches zero. Damage after that is ignored.
func (p *Player) TakeDamage(amount int) {
	if p.Destroyed() {
		return
	}
	p.health -= amount
	p.display.OnHealthChanged(amount)
	p.deps.Log.Debug("player damaged",
		log.Stringer("id", p.id),
		log.Int("amount", amount),
		log.Int("health", p.health),
	)
	p.deps.publish(EventPlayerDamaged, DamagedEvent{Player: p.id, Amount: amount, Health: p.health})
	if p.health <= 0 {
		p.destroy()
	}
}
