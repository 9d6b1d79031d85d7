package combat

import (
	"github.com/google/uuid"

	"github.com/zeusync/starfall/internal/core/systems/physics"
)

const source = "combat"

// Event types published on the bus.
const (
	EventProjectileFired = "combat.projectile.fired"
	EventCollision       = "combat.collision"
	EventPlayerDamaged   = "combat.player.damaged"
	EventEntityDestroyed = "combat.entity.destroyed"
	EventMeteorSpawned   = "combat.meteor.spawned"
)

type FiredEvent struct {
	Projectile uuid.UUID
	Position   physics.Vec2
	Direction  physics.Vec2
}

type CollisionEvent struct {
	Source     uuid.UUID
	SourceKind Kind
	Target     uuid.UUID
	TargetKind Kind
}

type DamagedEvent struct {
	Player uuid.UUID
	Amount int
	Health int
}

type DestroyedEvent struct {
	Entity   uuid.UUID
	Kind     Kind
	Position physics.Vec2
}

type SpawnedEvent struct {
	Meteor   uuid.UUID
	Position physics.Vec2
	Pursuit  physics.Vec2
}
