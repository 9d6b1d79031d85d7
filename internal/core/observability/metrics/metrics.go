// Package metrics keeps in-process counters. The bus observer turns every
// published event into a per-type counter, which is enough to profile a run
// without an external metrics backend.
package metrics

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/zeusync/starfall/internal/core/events/bus"
)

type Counter interface {
	Inc()
	Add(delta uint64)
	Value() uint64
}

type counter struct{ v atomic.Uint64 }

func (c *counter) Inc()             { c.v.Add(1) }
func (c *counter) Add(delta uint64) { c.v.Add(delta) }
func (c *counter) Value() uint64    { return c.v.Load() }

// Registry hands out named counters. Asking twice for a name returns the same counter.
type Registry struct {
	mu       sync.Mutex
	counters map[string]*counter
}

func NewRegistry() *Registry {
	return &Registry{counters: make(map[string]*counter)}
}

func (r *Registry) Counter(name string) Counter {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.counters[name]
	if !ok {
		c = &counter{}
		r.counters[name] = c
	}
	return c
}

// Sample is one counter value at snapshot time.
type Sample struct {
	Name  string
	Value uint64
}

// Snapshot returns all counters sorted by name.
func (r *Registry) Snapshot() []Sample {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Sample, 0, len(r.counters))
	for name, c := range r.counters {
		out = append(out, Sample{Name: name, Value: c.Value()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

var _ bus.EventBusObserver = (*BusObserver)(nil)

// BusObserver counts published events, handler failures and delivery time per
// event type. Counter names are "<type>.published", "<type>.errors" and
// "<type>.micros".
type BusObserver struct {
	registry *Registry
}

func NewBusObserver(r *Registry) *BusObserver { return &BusObserver{registry: r} }

func (o *BusObserver) OnPublish(eventType string, _ bus.Event) {
	o.registry.Counter(eventType + ".published").Inc()
}

func (o *BusObserver) OnDelivered(eventType string, _ int, err error, durationMicros int64) {
	if err != nil {
		o.registry.Counter(eventType + ".errors").Inc()
	}
	if durationMicros > 0 {
		o.registry.Counter(eventType + ".micros").Add(uint64(durationMicros))
	}
}

// Since adds the microseconds elapsed since start to the named counter.
func (r *Registry) Since(name string, start time.Time) {
	if d := time.Since(start).Microseconds(); d > 0 {
		r.Counter(name).Add(uint64(d))
	}
}
