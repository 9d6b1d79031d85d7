package session

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zeusync/starfall/internal/core/combat"
	"github.com/zeusync/starfall/internal/core/systems/physics"
)

func TestAutopilotTapsFire(t *testing.T) {
	s := newSession(t)
	pilot := NewAutopilot(s)

	for range 10 {
		pilot.Drive()
		s.Step(0.02)
	}

	assert.GreaterOrEqual(t, s.Stats().ShotsFired, uint64(1))
}

func TestAutopilotRetreatsFromCloseMeteor(t *testing.T) {
	ship := physics.Vec2{X: 100, Y: 100}
	sprites := []Sprite{
		{Kind: combat.KindPlayer, Position: ship},
		{Kind: combat.KindMeteor, Position: physics.Vec2{X: 400, Y: 100}},
		{Kind: combat.KindMeteor, Position: physics.Vec2{X: 150, Y: 100}},
		{Kind: combat.KindProjectile, Position: physics.Vec2{X: 101, Y: 100}},
	}

	at, ok := nearest(ship, sprites)
	assert.True(t, ok)
	assert.Equal(t, physics.Vec2{X: 150, Y: 100}, at)

	_, ok = nearest(ship, sprites[:1])
	assert.False(t, ok)
}

func TestAutopilotIdlesWhenOver(t *testing.T) {
	s := newSession(t)
	s.Player().TakeDamage(3)
	s.Step(0.02)

	NewAutopilot(s).Drive()

	assert.Equal(t, physics.Zero, s.Controls().Intent())
	assert.False(t, s.Controls().FirePressed())
}
