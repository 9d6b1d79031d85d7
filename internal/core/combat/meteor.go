package combat

import (
	"fmt"
	"sync/atomic"

	"github.com/zeusync/starfall/internal/core/observability/log"
	"github.com/zeusync/starfall/internal/core/systems/physics"
	"github.com/zeusync/starfall/internal/core/timer"
)

type MeteorState uint8

const (
	MeteorSpawned MeteorState = iota
	MeteorOnScreen
	MeteorOffScreenPending
	MeteorDestroyed
)

func (s MeteorState) String() string {
	switch s {
	case MeteorSpawned:
		return "spawned"
	case MeteorOnScreen:
		return "on_screen"
	case MeteorOffScreenPending:
		return "off_screen_pending"
	case MeteorDestroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}

// Meteor thrusts along a fixed pursuit direction and removes itself once it
// has been off screen when its grace timer fires.
type Meteor struct {
	base
	cfg      MeteorConfig
	position physics.Vec2
	pursuit  physics.Vec2
	spawned  bool
	// hidden is written by visibility callbacks and read by the grace timer.
	hidden atomic.Bool
	grace  *timer.Timer
}

func NewMeteor(deps Deps, cfg MeteorConfig, position, pursuit physics.Vec2) (*Meteor, error) {
	deps, err := deps.validate()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	m := &Meteor{
		base:     newBase(KindMeteor, deps),
		cfg:      cfg,
		position: position,
		pursuit:  pursuit.Normalized(),
	}
	m.self = m
	return m, nil
}

// Spawn adds the meteor to the world. A body without a visibility notifier is
// rejected and nothing is left behind.
func (m *Meteor) Spawn() error {
	spec := physics.BodySpec{
		Radius:   m.cfg.Radius,
		Mass:     m.cfg.Mass,
		Drag:     m.cfg.Drag,
		Layer:    physics.LayerMeteor,
		Notifier: true,
	}
	phys := m.deps.Physics
	if err := phys.AddBody(m, spec, m.position); err != nil {
		return err
	}
	if err := phys.OnVisibilityExit(m, m.onScreenExited); err != nil {
		phys.RemoveBody(m)
		return fmt.Errorf("meteor %s: %w: %w", m.id, ErrNoVisibilityNotifier, err)
	}
	if err := phys.OnVisibilityEnter(m, m.onScreenEntered); err != nil {
		phys.RemoveBody(m)
		return fmt.Errorf("meteor %s: %w: %w", m.id, ErrNoVisibilityNotifier, err)
	}
	phys.SetRotation(m, m.pursuit.Angle())

	m.deps.Owner.Add(m)
	m.grace = m.deps.Timers.Schedule(m.cfg.Grace, false, m.onGraceElapsed)
	m.deps.Owner.OnRemove(m, func() {
		m.grace.Cancel()
		phys.RemoveBody(m)
	})
	m.spawned = true

	m.deps.Log.Debug("meteor spawned",
		log.Stringer("id", m.id),
		log.Float64("x", m.position.X),
		log.Float64("y", m.position.Y),
	)
	m.deps.publish(EventMeteorSpawned, SpawnedEvent{Meteor: m.id, Position: m.position, Pursuit: m.pursuit})
	return nil
}

func (m *Meteor) State() MeteorState {
	switch {
	case m.Destroyed():
		return MeteorDestroyed
	case !m.spawned:
		return MeteorSpawned
	case m.hidden.Load():
		return MeteorOffScreenPending
	default:
		return MeteorOnScreen
	}
}

func (m *Meteor) Pursuit() physics.Vec2 { return m.pursuit }

func (m *Meteor) onScreenExited()  { m.hidden.Store(true) }
func (m *Meteor) onScreenEntered() { m.hidden.Store(false) }

func (m *Meteor) onGraceElapsed() {
	if m.Destroyed() {
		return
	}
	if m.hidden.Load() {
		m.destroy()
		return
	}
	m.grace.Restart()
}

// OnTick pushes the meteor along its pursuit direction. How fast it actually
// goes is up to the body's mass and drag.
func (m *Meteor) OnTick(float64) {
	if m.Destroyed() {
		return
	}
	m.deps.Physics.ApplyForce(m, m.pursuit.Scale(m.cfg.Speed))
}
