package session

import (
	"sync"

	"github.com/zeusync/starfall/internal/core/combat"
	"github.com/zeusync/starfall/internal/core/systems/physics"
)

var (
	_ combat.Input  = (*Controls)(nil)
	_ combat.Camera = (*Camera)(nil)
)

// Controls is the input state a host writes into and the player reads from.
// Hosts that poll input on another goroutine may write concurrently.
type Controls struct {
	mu     sync.RWMutex
	intent physics.Vec2
	fire   bool
}

func NewControls() *Controls { return &Controls{} }

// Set replaces the whole input state.
func (c *Controls) Set(intent physics.Vec2, fire bool) {
	c.mu.Lock()
	c.intent, c.fire = intent, fire
	c.mu.Unlock()
}

func (c *Controls) SetIntent(intent physics.Vec2) {
	c.mu.Lock()
	c.intent = intent
	c.mu.Unlock()
}

func (c *Controls) SetFire(fire bool) {
	c.mu.Lock()
	c.fire = fire
	c.mu.Unlock()
}

func (c *Controls) Intent() physics.Vec2 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.intent
}

func (c *Controls) FirePressed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.fire
}

// Camera is the view rectangle spawns and visibility are computed against.
type Camera struct {
	pos  physics.Vec2
	size physics.Vec2
}

func NewCamera(size physics.Vec2) *Camera { return &Camera{size: size} }

// Position is the world coordinate of the top-left corner of the view.
func (c *Camera) Position() physics.Vec2     { return c.pos }
func (c *Camera) ViewportSize() physics.Vec2 { return c.size }

// Follow centers the view on target.
func (c *Camera) Follow(target physics.Vec2) {
	c.pos = target.Sub(c.size.Scale(0.5))
}

func (c *Camera) Rect() physics.Rect { return physics.Rect{Min: c.pos, Size: c.size} }
