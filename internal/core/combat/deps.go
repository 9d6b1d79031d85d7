package combat

import (
	"fmt"

	"github.com/zeusync/starfall/internal/core/events/bus"
	"github.com/zeusync/starfall/internal/core/observability/log"
	"github.com/zeusync/starfall/internal/core/systems/physics"
	"github.com/zeusync/starfall/internal/core/timer"
)

// Physics is the spatial service entities move through.
type Physics interface {
	AddBody(e Entity, spec physics.BodySpec, position physics.Vec2) error
	RemoveBody(e Entity)

	// MoveAndCollide moves e and returns the first body it hit, if any.
	MoveAndCollide(e Entity, displacement physics.Vec2) (Entity, bool)
	ApplyForce(e Entity, force physics.Vec2)

	Position(e Entity) physics.Vec2
	SetPosition(e Entity, p physics.Vec2)
	Rotation(e Entity) float64
	SetRotation(e Entity, r float64)
	Velocity(e Entity) physics.Vec2
	SetVelocity(e Entity, v physics.Vec2)

	OnVisibilityExit(e Entity, fn func()) error
	OnVisibilityEnter(e Entity, fn func()) error
}

// Owner is the world side of entity lifetimes.
type Owner interface {
	Add(e Entity)
	// RequestDestroy is idempotent and safe to call from callbacks.
	RequestDestroy(e Entity) bool
	OnRemove(e Entity, fn func())
}

// Input is polled by the player once per tick.
type Input interface {
	// Intent returns the desired direction, each axis in [-1, 1].
	Intent() physics.Vec2
	FirePressed() bool
}

// HealthDisplay receives the amount of health lost on every hit.
type HealthDisplay interface {
	OnHealthChanged(delta int)
}

type Rand interface {
	Range(min, max float64) float64
}

// Camera describes the visible part of the world. Position is the top-left
// corner of the view.
type Camera interface {
	Position() physics.Vec2
	ViewportSize() physics.Vec2
}

// Deps are the collaborators shared by every entity of a session.
// Bus and Log are optional.
type Deps struct {
	Physics Physics
	Timers  timer.Scheduler
	Owner   Owner
	Rand    Rand
	Bus     bus.EventBus
	Log     log.Log
}

func (d Deps) validate() (Deps, error) {
	switch {
	case d.Physics == nil:
		return d, fmt.Errorf("physics: %w", ErrMissingCollaborator)
	case d.Timers == nil:
		return d, fmt.Errorf("timers: %w", ErrMissingCollaborator)
	case d.Owner == nil:
		return d, fmt.Errorf("owner: %w", ErrMissingCollaborator)
	case d.Rand == nil:
		return d, fmt.Errorf("rand: %w", ErrMissingCollaborator)
	}
	if d.Log == nil {
		d.Log = log.NewNop()
	}
	return d, nil
}

func (d Deps) publish(typ string, data any) {
	if d.Bus == nil {
		return
	}
	if err := d.Bus.Publish(bus.NewEvent(typ, source, data)); err != nil {
		d.Log.Warn("event handler failed", log.String("type", typ), log.Error(err))
	}
}
