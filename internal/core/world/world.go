// Package world owns entity lifetimes: entities are added, ticked in insertion
// order, and removed in a deferred pass so that destruction requested in the
// middle of a frame never invalidates the frame itself.
package world

import (
	"github.com/google/uuid"

	"github.com/zeusync/starfall/internal/core/observability/log"
	"github.com/zeusync/starfall/pkg/sequence"
)

// Entity is the lifecycle surface the world needs from a simulated actor.
type Entity interface {
	ID() uuid.UUID
	OnTick(dt float64)
	OnDestroyRequested()
}

type World[E Entity] struct {
	entities map[uuid.UUID]E
	order    []uuid.UUID
	pending  map[uuid.UUID]struct{}
	queue    []uuid.UUID
	cleanups map[uuid.UUID][]func()
	removed  uint64
	log      log.Log
}

func New[E Entity](logger log.Log) *World[E] {
	if logger == nil {
		logger = log.NewNop()
	}
	return &World[E]{
		entities: make(map[uuid.UUID]E),
		pending:  make(map[uuid.UUID]struct{}),
		cleanups: make(map[uuid.UUID][]func()),
		log:      logger,
	}
}

// Add hands ownership of e to the world. Adding the same entity twice is a no-op.
func (w *World[E]) Add(e E) {
	id := e.ID()
	if _, ok := w.entities[id]; ok {
		return
	}
	w.entities[id] = e
	w.order = append(w.order, id)
}

// OnRemove registers fn to run when e is removed by Flush. Hooks run in
// registration order. Hooks for unknown entities are dropped.
func (w *World[E]) OnRemove(e E, fn func()) {
	id := e.ID()
	if _, ok := w.entities[id]; !ok {
		return
	}
	w.cleanups[id] = append(w.cleanups[id], fn)
}

// RequestDestroy marks e for removal and notifies it once. It reports whether
// this call was the one that marked it; repeated or late requests are no-ops.
func (w *World[E]) RequestDestroy(e E) bool {
	id := e.ID()
	if _, ok := w.entities[id]; !ok {
		return false
	}
	if _, ok := w.pending[id]; ok {
		return false
	}
	w.pending[id] = struct{}{}
	w.queue = append(w.queue, id)
	e.OnDestroyRequested()
	return true
}

// Destroying reports whether e has been marked for removal.
func (w *World[E]) Destroying(e E) bool {
	_, ok := w.pending[e.ID()]
	return ok
}

// Tick advances every live entity once. Entities added during the tick start
// ticking on the next call; entities marked during the tick are skipped.
func (w *World[E]) Tick(dt float64) {
	ids := append([]uuid.UUID(nil), w.order...)
	for _, id := range ids {
		e, ok := w.entities[id]
		if !ok {
			continue
		}
		if _, dying := w.pending[id]; dying {
			continue
		}
		e.OnTick(dt)
	}
}

// Flush removes every entity marked for destruction and runs its cleanup hooks.
// Hooks may request further destruction; those entities are removed in the same pass.
func (w *World[E]) Flush() int {
	n := 0
	for len(w.queue) > 0 {
		id := w.queue[0]
		w.queue = w.queue[1:]

		hooks := w.cleanups[id]
		delete(w.cleanups, id)
		for _, fn := range hooks {
			fn()
		}

		delete(w.entities, id)
		delete(w.pending, id)
		w.dropOrder(id)
		n++
	}
	if n > 0 {
		w.removed += uint64(n)
		w.log.Debug("entities removed", log.Int("count", n), log.Int("alive", len(w.entities)))
	}
	return n
}

func (w *World[E]) dropOrder(id uuid.UUID) {
	for i, oid := range w.order {
		if oid == id {
			w.order = append(w.order[:i], w.order[i+1:]...)
			return
		}
	}
}

// Get returns a live or dying entity by id.
func (w *World[E]) Get(id uuid.UUID) (E, bool) {
	e, ok := w.entities[id]
	return e, ok
}

// Alive reports whether id is owned and not marked for destruction.
func (w *World[E]) Alive(id uuid.UUID) bool {
	if _, ok := w.entities[id]; !ok {
		return false
	}
	_, dying := w.pending[id]
	return !dying
}

// Len counts owned entities, including those awaiting Flush.
func (w *World[E]) Len() int { return len(w.entities) }

// Removed counts entities removed since the world was created.
func (w *World[E]) Removed() uint64 { return w.removed }

// Entities returns live entities in insertion order.
func (w *World[E]) Entities() []E {
	live := make([]E, 0, len(w.order))
	for _, id := range w.order {
		if _, dying := w.pending[id]; dying {
			continue
		}
		live = append(live, w.entities[id])
	}
	return live
}

// Query iterates live entities in insertion order.
func (w *World[E]) Query() *sequence.Iterator[E] {
	return sequence.From(w.Entities())
}

// Count counts live entities accepted by match.
func (w *World[E]) Count(match func(E) bool) int {
	return w.Query().Filter(match).Count()
}
