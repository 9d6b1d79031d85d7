// Package combat holds the entity lifecycle and combat rules of the shooter:
// projectiles, meteors, the player ship and the meteor spawner. Everything the
// entities need from the outside world (physics, timers, ownership, input,
// randomness) is passed in as a narrow collaborator.
package combat

import (
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/zeusync/starfall/internal/core/observability/log"
	"github.com/zeusync/starfall/internal/core/systems/physics"
)

type Kind uint8

const (
	KindProjectile Kind = iota + 1
	KindMeteor
	KindPlayer
)

func (k Kind) String() string {
	switch k {
	case KindProjectile:
		return "projectile"
	case KindMeteor:
		return "meteor"
	case KindPlayer:
		return "player"
	default:
		return "unknown"
	}
}

// Entity is a simulated actor driven by the host each frame.
type Entity interface {
	ID() uuid.UUID
	Kind() Kind
	OnTick(dt float64)
	OnCollision(other Entity)
	OnDestroyRequested()
	// Destroyed reports whether destruction has been requested.
	Destroyed() bool
}

// base carries identity and the destroy-once guard shared by all entities.
type base struct {
	id        uuid.UUID
	kind      Kind
	self      Entity
	deps      Deps
	destroyed atomic.Bool
}

func newBase(kind Kind, deps Deps) base {
	return base{id: uuid.New(), kind: kind, deps: deps}
}

func (b *base) ID() uuid.UUID   { return b.id }
func (b *base) Kind() Kind      { return b.kind }
func (b *base) Destroyed() bool { return b.destroyed.Load() }

// OnCollision is a no-op by default: the moving side of a collision decides
// what happens to both parties.
func (b *base) OnCollision(Entity) {}

// OnDestroyRequested is called exactly once by the owner when the entity is
// marked for removal, whoever asked for it.
func (b *base) OnDestroyRequested() {
	b.destroyed.Store(true)
	at := b.deps.Physics.Position(b.self)
	b.deps.Log.Debug("entity destroyed",
		log.Stringer("id", b.id),
		log.Stringer("kind", b.kind),
		log.Point("at", at.X, at.Y),
	)
	b.deps.publish(EventEntityDestroyed, DestroyedEvent{Entity: b.id, Kind: b.kind, Position: at})
}

// destroy asks the owner to remove the entity. Only the first call has any effect.
func (b *base) destroy() {
	if b.destroyed.CompareAndSwap(false, true) {
		b.deps.Owner.RequestDestroy(b.self)
	}
}

// strike reports a collision to both parties and removes the collider.
func (b *base) strike(other Entity) {
	b.deps.publish(EventCollision, CollisionEvent{
		Source:     b.id,
		SourceKind: b.kind,
		Target:     other.ID(),
		TargetKind: other.Kind(),
	})
	other.OnCollision(b.self)
	b.deps.Owner.RequestDestroy(other)
}

// register adds the entity's body to the arena, hands ownership to the world
// and ties body removal plus any extra cleanup to the entity's removal.
func (b *base) register(spec physics.BodySpec, position physics.Vec2, rotation float64, cleanup ...func()) error {
	if err := b.deps.Physics.AddBody(b.self, spec, position); err != nil {
		return err
	}
	b.deps.Physics.SetRotation(b.self, rotation)
	b.deps.Owner.Add(b.self)
	b.deps.Owner.OnRemove(b.self, func() {
		for _, fn := range cleanup {
			fn()
		}
		b.deps.Physics.RemoveBody(b.self)
	})
	return nil
}
