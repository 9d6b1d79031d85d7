package bus

import (
	"errors"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

var ErrNilHandler = errors.New("event handler is nil")

type event struct {
	typ    string
	source string
	at     time.Time
	data   any
}

func (e event) Type() string         { return e.typ }
func (e event) Source() string       { return e.source }
func (e event) Timestamp() time.Time { return e.at }
func (e event) Data() any            { return e.data }

// NewEvent stamps data with the current wall time.
func NewEvent(typ, source string, data any) Event {
	return event{typ: typ, source: source, at: time.Now(), data: data}
}

type subscription struct {
	id      string
	typ     string
	handler EventHandler
	active  atomic.Bool
	bus     *inMemoryBus
}

func (s *subscription) ID() string        { return s.id }
func (s *subscription) EventType() string { return s.typ }
func (s *subscription) IsActive() bool    { return s.active.Load() }

func (s *subscription) Cancel() error {
	if s.active.CompareAndSwap(true, false) {
		s.bus.drop(s)
	}
	return nil
}

type inMemoryBus struct {
	mu        sync.RWMutex
	handlers  map[string][]*subscription
	observers []EventBusObserver
}

func New() EventBus {
	return &inMemoryBus{handlers: make(map[string][]*subscription)}
}

func (b *inMemoryBus) Subscribe(eventType string, handler EventHandler) (Subscription, error) {
	if handler == nil {
		return nil, ErrNilHandler
	}
	s := &subscription{id: uuid.NewString(), typ: eventType, handler: handler, bus: b}
	s.active.Store(true)

	b.mu.Lock()
	b.handlers[eventType] = append(b.handlers[eventType], s)
	b.mu.Unlock()
	return s, nil
}

func (b *inMemoryBus) Unsubscribe(sub Subscription) error {
	if sub == nil {
		return nil
	}
	return sub.Cancel()
}

// drop copies on write so a delivery already holding the old slice is unaffected.
func (b *inMemoryBus) drop(s *subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	subs := slices.DeleteFunc(slices.Clone(b.handlers[s.typ]), func(cur *subscription) bool { return cur == s })
	if len(subs) == 0 {
		delete(b.handlers, s.typ)
		return
	}
	b.handlers[s.typ] = subs
}

func (b *inMemoryBus) AddObserver(obs EventBusObserver) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !slices.Contains(b.observers, obs) {
		b.observers = append(slices.Clone(b.observers), obs)
	}
}

func (b *inMemoryBus) RemoveObserver(obs EventBusObserver) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.observers = slices.DeleteFunc(slices.Clone(b.observers), func(cur EventBusObserver) bool { return cur == obs })
}

func (b *inMemoryBus) Publish(e Event) error {
	typ := e.Type()
	b.mu.RLock()
	subs := b.handlers[typ]
	observers := b.observers
	b.mu.RUnlock()

	start := time.Now()
	for _, obs := range observers {
		obs.OnPublish(typ, e)
	}

	var errs error
	delivered := 0
	for _, s := range subs {
		if !s.IsActive() {
			continue
		}
		delivered++
		if err := s.handler(e); err != nil {
			errs = errors.Join(errs, err)
		}
	}

	if len(observers) > 0 {
		micros := time.Since(start).Microseconds()
		for _, obs := range observers {
			obs.OnDelivered(typ, delivered, errs, micros)
		}
	}
	return errs
}
