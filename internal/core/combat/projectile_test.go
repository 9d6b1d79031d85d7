package combat

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/starfall/internal/core/systems/physics"
)

func spawnProjectile(t *testing.T, h *harness, cfg ProjectileConfig, at physics.Vec2, orientation float64) *Projectile {
	t.Helper()
	p, err := NewProjectile(h.deps, cfg, at, orientation)
	require.NoError(t, err)
	require.NoError(t, p.Spawn())
	return p
}

func TestProjectileSpreadAppliesToRotationAndDirection(t *testing.T) {
	h := newHarness(t, stubRand{frac: 1})
	cfg := DefaultProjectileConfig()
	cfg.Spread = 0.1

	p := spawnProjectile(t, h, cfg, physics.Vec2{X: 100, Y: 100}, 0.5)

	assert.InDelta(t, 0.5+math.Pi/2+0.1, h.arena.Rotation(p), 1e-12)
	want := physics.FromAngle(0.6)
	assert.InDelta(t, want.X, p.Direction().X, 1e-12)
	assert.InDelta(t, want.Y, p.Direction().Y, 1e-12)
}

func TestProjectileTravelsAndExpires(t *testing.T) {
	h := newHarness(t, stubRand{frac: 0.5})
	p := spawnProjectile(t, h, DefaultProjectileConfig(), physics.Vec2{X: 100, Y: 100}, 0)

	h.step(0.25)
	pos := h.arena.Position(p)
	assert.InDelta(t, 300, pos.X, 1e-9)
	assert.InDelta(t, 100, pos.Y, 1e-9)

	h.run(5, 0.25)
	assert.True(t, p.Destroyed())
	assert.False(t, h.arena.Has(p))
	assert.Equal(t, 0, h.world.Len())
	assert.Equal(t, 1, h.owner.requests[p.ID()])
	assert.Equal(t, 0, h.clock.Pending())
}

func TestProjectileHitDestroysBoth(t *testing.T) {
	h := newHarness(t, stubRand{frac: 0.5})
	m := h.meteor(physics.Vec2{X: 125, Y: 100}, physics.Zero)
	p := spawnProjectile(t, h, DefaultProjectileConfig(), physics.Vec2{X: 100, Y: 100}, 0)

	h.step(0.01)

	assert.True(t, p.Destroyed())
	assert.True(t, m.Destroyed())
	assert.Equal(t, MeteorDestroyed, m.State())
	assert.Equal(t, 0, h.world.Len())
	assert.Equal(t, 0, h.arena.Len())
	assert.Equal(t, 0, h.clock.Pending(), "lifetime and grace timers are cancelled on removal")

	require.Len(t, h.events[EventCollision], 1)
	hit := h.events[EventCollision][0].Data().(CollisionEvent)
	assert.Equal(t, p.ID(), hit.Source)
	assert.Equal(t, m.ID(), hit.Target)
	assert.Equal(t, KindMeteor, hit.TargetKind)
	assert.Len(t, h.events[EventEntityDestroyed], 2)
}

func TestProjectileIgnoresTicksAfterDestroy(t *testing.T) {
	h := newHarness(t, stubRand{frac: 0.5})
	p := spawnProjectile(t, h, DefaultProjectileConfig(), physics.Vec2{X: 100, Y: 100}, 0)

	p.destroy()
	p.destroy()
	p.OnTick(0.1)
	p.OnTick(1)

	assert.Zero(t, h.phys.moves[p.ID()])
	assert.Equal(t, 1, h.owner.requests[p.ID()])
}

func TestProjectileExpiryWinsOverPendingHit(t *testing.T) {
	h := newHarness(t, stubRand{frac: 0.5})
	cfg := DefaultProjectileConfig()
	cfg.Lifetime = 0.01
	h.meteor(physics.Vec2{X: 125, Y: 100}, physics.Zero)
	p := spawnProjectile(t, h, cfg, physics.Vec2{X: 100, Y: 100}, 0)

	// the lifetime fires inside Advance, before the tick that collides
	h.clock.Advance(0.02)
	h.world.Tick(0.02)
	h.world.Flush()

	assert.True(t, p.Destroyed())
	assert.Equal(t, 1, h.owner.requests[p.ID()])
	assert.Zero(t, h.phys.moves[p.ID()])
	assert.Equal(t, 1, h.world.Len(), "meteor survives")
}

func TestProjectileZeroDirectionDoesNotMove(t *testing.T) {
	h := newHarness(t, stubRand{frac: 0.5})
	p := spawnProjectile(t, h, DefaultProjectileConfig(), physics.Vec2{X: 100, Y: 100}, 0)
	p.Redirect(physics.Zero)

	h.step(0.5)

	assert.Zero(t, h.phys.moves[p.ID()])
	assert.Equal(t, physics.Vec2{X: 100, Y: 100}, h.arena.Position(p))
	assert.False(t, p.Destroyed())
}

func TestProjectileRejectsBadConfig(t *testing.T) {
	h := newHarness(t, stubRand{})
	cfg := DefaultProjectileConfig()
	cfg.Lifetime = 0

	_, err := NewProjectile(h.deps, cfg, physics.Zero, 0)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	deps := h.deps
	deps.Timers = nil
	_, err = NewProjectile(deps, DefaultProjectileConfig(), physics.Zero, 0)
	assert.ErrorIs(t, err, ErrMissingCollaborator)
}
