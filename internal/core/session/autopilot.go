package session

import (
	"github.com/zeusync/starfall/internal/core/combat"
	"github.com/zeusync/starfall/internal/core/systems/physics"
	"github.com/zeusync/starfall/pkg/sequence"
)

// Autopilot flies the ship without a human: it drifts towards the nearest
// meteor, backs off when one gets close, and taps fire every other frame.
type Autopilot struct {
	session *Session
	// Keep is the distance under which the ship retreats.
	Keep float64
	tap  bool
}

func NewAutopilot(s *Session) *Autopilot {
	return &Autopilot{session: s, Keep: 180}
}

// Drive writes one frame of input into the session controls.
func (a *Autopilot) Drive() {
	s := a.session
	a.tap = !a.tap
	if s.Over() {
		s.Controls().Set(physics.Zero, false)
		return
	}

	ship := s.PlayerPosition()
	target, ok := nearest(ship, s.Sprites())
	if !ok {
		s.Controls().Set(physics.Zero, a.tap)
		return
	}

	toward := target.Sub(ship)
	intent := toward.Normalized()
	if toward.Len() < a.Keep {
		intent = intent.Scale(-1)
	}
	s.Controls().Set(intent, a.tap)
}

func nearest(from physics.Vec2, sprites []Sprite) (physics.Vec2, bool) {
	meteor, ok := sequence.From(sprites).
		Filter(func(sp Sprite) bool { return sp.Kind == combat.KindMeteor }).
		MinBy(func(sp Sprite) float64 { return from.DistanceTo(sp.Position) })
	return meteor.Position, ok
}
