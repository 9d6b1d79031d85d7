package combat

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/starfall/internal/core/events/bus"
	"github.com/zeusync/starfall/internal/core/systems/physics"
	"github.com/zeusync/starfall/internal/core/timer"
	"github.com/zeusync/starfall/internal/core/world"
)

var testView = physics.Rect{Size: physics.Vec2{X: 800, Y: 600}}

// countingPhysics records the calls the property tests care about.
type countingPhysics struct {
	*physics.Arena[Entity]
	moves  map[uuid.UUID]int
	forces map[uuid.UUID]int
}

func (c *countingPhysics) MoveAndCollide(e Entity, d physics.Vec2) (Entity, bool) {
	c.moves[e.ID()]++
	return c.Arena.MoveAndCollide(e, d)
}

func (c *countingPhysics) ApplyForce(e Entity, f physics.Vec2) {
	c.forces[e.ID()]++
	c.Arena.ApplyForce(e, f)
}

type countingOwner struct {
	*world.World[Entity]
	requests map[uuid.UUID]int
}

func (o *countingOwner) RequestDestroy(e Entity) bool {
	o.requests[e.ID()]++
	return o.World.RequestDestroy(e)
}

type stubRand struct{ frac float64 }

func (r stubRand) Range(min, max float64) float64 { return min + (max-min)*r.frac }

type scriptedInput struct {
	intent physics.Vec2
	fire   bool
}

func (i *scriptedInput) Intent() physics.Vec2 { return i.intent }
func (i *scriptedInput) FirePressed() bool    { return i.fire }

type recordingDisplay struct{ deltas []int }

func (d *recordingDisplay) OnHealthChanged(delta int) { d.deltas = append(d.deltas, delta) }

type fixedCamera struct{ pos, size physics.Vec2 }

func (c fixedCamera) Position() physics.Vec2     { return c.pos }
func (c fixedCamera) ViewportSize() physics.Vec2 { return c.size }

type harness struct {
	t      *testing.T
	arena  *physics.Arena[Entity]
	phys   *countingPhysics
	clock  *timer.Clock
	world  *world.World[Entity]
	owner  *countingOwner
	bus    bus.EventBus
	events map[string][]bus.Event
	deps   Deps
}

func newHarness(t *testing.T, r Rand) *harness {
	t.Helper()
	arena := physics.NewArena[Entity](testView)
	w := world.New[Entity](nil)
	h := &harness{
		t:      t,
		arena:  arena,
		phys:   &countingPhysics{Arena: arena, moves: map[uuid.UUID]int{}, forces: map[uuid.UUID]int{}},
		clock:  timer.NewClock(),
		world:  w,
		owner:  &countingOwner{World: w, requests: map[uuid.UUID]int{}},
		bus:    bus.New(),
		events: map[string][]bus.Event{},
	}
	for _, typ := range []string{EventProjectileFired, EventCollision, EventPlayerDamaged, EventEntityDestroyed, EventMeteorSpawned} {
		_, err := h.bus.Subscribe(typ, func(e bus.Event) error {
			h.events[e.Type()] = append(h.events[e.Type()], e)
			return nil
		})
		require.NoError(t, err)
	}
	h.deps = Deps{Physics: h.phys, Timers: h.clock, Owner: h.owner, Rand: r, Bus: h.bus}
	return h
}

// step runs one frame in the same order as a session does.
func (h *harness) step(dt float64) {
	h.clock.Advance(dt)
	h.world.Tick(dt)
	h.arena.Integrate(dt)
	h.world.Flush()
}

func (h *harness) run(seconds, dt float64) {
	for elapsed := 0.0; elapsed < seconds; elapsed += dt {
		h.step(dt)
	}
}

func (h *harness) player(input Input, display HealthDisplay, at physics.Vec2) *Player {
	h.t.Helper()
	p, err := NewPlayer(h.deps, DefaultPlayerConfig(), DefaultProjectileConfig(), input, display)
	require.NoError(h.t, err)
	require.NoError(h.t, p.Spawn(at, 0))
	return p
}

func (h *harness) meteor(at, pursuit physics.Vec2) *Meteor {
	h.t.Helper()
	m, err := NewMeteor(h.deps, DefaultMeteorConfig(), at, pursuit)
	require.NoError(h.t, err)
	require.NoError(h.t, m.Spawn())
	return m
}
