package world

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type probe struct {
	id        uuid.UUID
	ticks     int
	destroyed int
	onTick    func()
}

func newProbe() *probe { return &probe{id: uuid.New()} }

func (p *probe) ID() uuid.UUID { return p.id }

func (p *probe) OnTick(float64) {
	p.ticks++
	if p.onTick != nil {
		p.onTick()
	}
}

func (p *probe) OnDestroyRequested() { p.destroyed++ }

func TestRequestDestroyIsIdempotent(t *testing.T) {
	w := New[*probe](nil)
	p := newProbe()
	w.Add(p)

	assert.True(t, w.RequestDestroy(p))
	assert.False(t, w.RequestDestroy(p))
	assert.Equal(t, 1, p.destroyed)
	assert.True(t, w.Destroying(p))
	assert.False(t, w.Alive(p.id))

	assert.Equal(t, 1, w.Flush())
	assert.False(t, w.RequestDestroy(p), "request after removal is a no-op")
	assert.Equal(t, 1, p.destroyed)
	assert.Equal(t, 0, w.Len())
	assert.Equal(t, uint64(1), w.Removed())
}

func TestCleanupHooksRunOnFlush(t *testing.T) {
	w := New[*probe](nil)
	p := newProbe()
	w.Add(p)

	var calls []string
	w.OnRemove(p, func() { calls = append(calls, "timer") })
	w.OnRemove(p, func() { calls = append(calls, "body") })

	w.RequestDestroy(p)
	assert.Empty(t, calls)
	w.Flush()
	assert.Equal(t, []string{"timer", "body"}, calls)
}

func TestTickSkipsDyingAndNewcomers(t *testing.T) {
	w := New[*probe](nil)
	a, b, c := newProbe(), newProbe(), newProbe()
	w.Add(a)
	w.Add(b)
	a.onTick = func() {
		w.RequestDestroy(b)
		w.Add(c)
	}

	w.Tick(0.016)
	assert.Equal(t, 1, a.ticks)
	assert.Equal(t, 0, b.ticks)
	assert.Equal(t, 0, c.ticks)

	w.Flush()
	a.onTick = nil
	w.Tick(0.016)
	assert.Equal(t, 1, c.ticks)
}

func TestFlushHandlesCascadingDestroy(t *testing.T) {
	w := New[*probe](nil)
	a, b := newProbe(), newProbe()
	w.Add(a)
	w.Add(b)
	w.OnRemove(a, func() { w.RequestDestroy(b) })

	w.RequestDestroy(a)
	assert.Equal(t, 2, w.Flush())
	assert.Equal(t, 0, w.Len())
}

func TestQueryReturnsLiveInOrder(t *testing.T) {
	w := New[*probe](nil)
	a, b, c := newProbe(), newProbe(), newProbe()
	w.Add(a)
	w.Add(b)
	w.Add(c)
	w.Add(a)
	w.RequestDestroy(b)

	live := w.Query().Collect()
	require.Len(t, live, 2)
	assert.Same(t, a, live[0])
	assert.Same(t, c, live[1])
}

func TestCountAndEntities(t *testing.T) {
	w := New[*probe](nil)
	a, b := newProbe(), newProbe()
	w.Add(a)
	w.Add(b)
	a.ticks = 5

	assert.Equal(t, 1, w.Count(func(p *probe) bool { return p.ticks > 0 }))
	assert.Len(t, w.Entities(), 2)
	w.RequestDestroy(a)
	assert.Equal(t, 0, w.Count(func(p *probe) bool { return p.ticks > 0 }))
	assert.Equal(t, 2, w.Len())
}
