package physics

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrBodyExists   = errors.New("body already registered")
	ErrBodyNotFound = errors.New("body not found")
	ErrNoNotifier   = errors.New("body has no visibility notifier")
)

// Identified is anything the arena can key a body by.
type Identified interface {
	ID() uuid.UUID
}

// Collision layers used by the default body specs.
const (
	LayerPlayer uint32 = 1 << iota
	LayerProjectile
	LayerMeteor
)

// BodySpec describes the collision shape and dynamics of a body.
// Bodies with Mass > 0 are force driven and advanced by Integrate; the rest only
// move through MoveAndCollide or SetPosition.
type BodySpec struct {
	Radius   float64
	Mass     float64
	Drag     float64
	Layer    uint32
	Mask     uint32
	Notifier bool
}

type body[E Identified] struct {
	owner    E
	spec     BodySpec
	pos      Vec2
	vel      Vec2
	rotation float64
	force    Vec2

	visible bool
	onExit  []func()
	onEnter []func()
}

// Arena is a minimal spatial service: circle bodies, first-hit move queries,
// force integration with linear drag and on-screen notifications.
// It is not safe for concurrent use; the host drives it from its frame loop.
type Arena[E Identified] struct {
	bodies map[uuid.UUID]*body[E]
	order  []uuid.UUID
	view   Rect
}

func NewArena[E Identified](view Rect) *Arena[E] {
	return &Arena[E]{
		bodies: make(map[uuid.UUID]*body[E]),
		view:   view,
	}
}

// AddBody registers e at position. Bodies with a notifier start visible.
func (a *Arena[E]) AddBody(e E, spec BodySpec, position Vec2) error {
	id := e.ID()
	if _, exists := a.bodies[id]; exists {
		return fmt.Errorf("%s: %w", id, ErrBodyExists)
	}
	a.bodies[id] = &body[E]{owner: e, spec: spec, pos: position, visible: spec.Notifier}
	a.order = append(a.order, id)
	return nil
}

// RemoveBody drops the body and its notifier callbacks. Unknown bodies are ignored.
func (a *Arena[E]) RemoveBody(e E) {
	id := e.ID()
	if _, ok := a.bodies[id]; !ok {
		return
	}
	delete(a.bodies, id)
	for i, oid := range a.order {
		if oid == id {
			a.order = append(a.order[:i], a.order[i+1:]...)
			break
		}
	}
}

func (a *Arena[E]) Has(e E) bool {
	_, ok := a.bodies[e.ID()]
	return ok
}

func (a *Arena[E]) Len() int { return len(a.bodies) }

// MoveAndCollide moves e by displacement. If the body then overlaps another body
// on its collision mask, it is put back where it was and the first such body (in
// registration order) is returned.
func (a *Arena[E]) MoveAndCollide(e E, displacement Vec2) (E, bool) {
	var none E
	b, ok := a.bodies[e.ID()]
	if !ok {
		return none, false
	}
	prev := b.pos
	b.pos = b.pos.Add(displacement)
	for _, id := range a.order {
		other := a.bodies[id]
		if other == b || other.spec.Layer&b.spec.Mask == 0 {
			continue
		}
		if b.pos.DistanceTo(other.pos) < b.spec.Radius+other.spec.Radius {
			b.pos = prev
			return other.owner, true
		}
	}
	return none, false
}

// ApplyForce accumulates a force for the next Integrate step.
func (a *Arena[E]) ApplyForce(e E, force Vec2) {
	if b, ok := a.bodies[e.ID()]; ok {
		b.force = b.force.Add(force)
	}
}

// Integrate advances force-driven bodies and refreshes visibility.
func (a *Arena[E]) Integrate(dt float64) {
	if dt > 0 {
		for _, id := range a.order {
			b := a.bodies[id]
			if b.spec.Mass <= 0 {
				b.force = Zero
				continue
			}
			b.vel = b.vel.Add(b.force.Scale(dt / b.spec.Mass))
			b.vel = b.vel.Scale(1 / (1 + b.spec.Drag*dt))
			b.pos = b.pos.Add(b.vel.Scale(dt))
			b.force = Zero
		}
	}
	a.refreshVisibility()
}

func (a *Arena[E]) refreshVisibility() {
	// callbacks may remove bodies, so walk a snapshot
	ids := append([]uuid.UUID(nil), a.order...)
	for _, id := range ids {
		b, ok := a.bodies[id]
		if !ok || !b.spec.Notifier {
			continue
		}
		visible := a.view.IntersectsCircle(b.pos, b.spec.Radius)
		if visible == b.visible {
			continue
		}
		b.visible = visible
		callbacks := b.onExit
		if visible {
			callbacks = b.onEnter
		}
		for _, fn := range callbacks {
			fn()
		}
	}
}

// OnVisibilityExit registers fn to run when e leaves the view.
func (a *Arena[E]) OnVisibilityExit(e E, fn func()) error {
	b, err := a.notifier(e)
	if err != nil {
		return err
	}
	b.onExit = append(b.onExit, fn)
	return nil
}

// OnVisibilityEnter registers fn to run when e comes back into view.
func (a *Arena[E]) OnVisibilityEnter(e E, fn func()) error {
	b, err := a.notifier(e)
	if err != nil {
		return err
	}
	b.onEnter = append(b.onEnter, fn)
	return nil
}

func (a *Arena[E]) notifier(e E) (*body[E], error) {
	b, ok := a.bodies[e.ID()]
	if !ok {
		return nil, fmt.Errorf("%s: %w", e.ID(), ErrBodyNotFound)
	}
	if !b.spec.Notifier {
		return nil, fmt.Errorf("%s: %w", e.ID(), ErrNoNotifier)
	}
	return b, nil
}

// Visible reports the last computed on-screen state of e.
func (a *Arena[E]) Visible(e E) bool {
	b, ok := a.bodies[e.ID()]
	return ok && b.visible
}

func (a *Arena[E]) View() Rect        { return a.view }
func (a *Arena[E]) SetView(view Rect) { a.view = view }

func (a *Arena[E]) Position(e E) Vec2 {
	if b, ok := a.bodies[e.ID()]; ok {
		return b.pos
	}
	return Zero
}

func (a *Arena[E]) SetPosition(e E, p Vec2) {
	if b, ok := a.bodies[e.ID()]; ok {
		b.pos = p
	}
}

func (a *Arena[E]) Rotation(e E) float64 {
	if b, ok := a.bodies[e.ID()]; ok {
		return b.rotation
	}
	return 0
}

func (a *Arena[E]) SetRotation(e E, r float64) {
	if b, ok := a.bodies[e.ID()]; ok {
		b.rotation = r
	}
}

func (a *Arena[E]) Velocity(e E) Vec2 {
	if b, ok := a.bodies[e.ID()]; ok {
		return b.vel
	}
	return Zero
}

func (a *Arena[E]) SetVelocity(e E, v Vec2) {
	if b, ok := a.bodies[e.ID()]; ok {
		b.vel = v
	}
}

// Radius returns the collision radius of e, or 0 when e has no body.
func (a *Arena[E]) Radius(e E) float64 {
	if b, ok := a.bodies[e.ID()]; ok {
		return b.spec.Radius
	}
	return 0
}

// Each visits bodies in registration order.
func (a *Arena[E]) Each(fn func(owner E, position Vec2, rotation, radius float64)) {
	for _, id := range a.order {
		b := a.bodies[id]
		fn(b.owner, b.pos, b.rotation, b.spec.Radius)
	}
}
