package bus

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingObserver struct {
	published int
	delivered int
	lastErr   error
}

func (o *countingObserver) OnPublish(string, Event) { o.published++ }

func (o *countingObserver) OnDelivered(_ string, handlers int, err error, _ int64) {
	o.delivered += handlers
	o.lastErr = err
}

func TestPublishIsSynchronousAndOrdered(t *testing.T) {
	b := New()
	var order []int
	for i := 0; i < 3; i++ {
		_, err := b.Subscribe("combat.collision", func(Event) error {
			order = append(order, i)
			return nil
		})
		require.NoError(t, err)
	}

	require.NoError(t, b.Publish(NewEvent("combat.collision", "test", nil)))
	assert.Equal(t, []int{0, 1, 2}, order)
}

func TestHandlerErrorsAreJoined(t *testing.T) {
	b := New()
	errA, errB := errors.New("a"), errors.New("b")
	_, _ = b.Subscribe("x", func(Event) error { return errA })
	_, _ = b.Subscribe("x", func(Event) error { return errB })

	err := b.Publish(NewEvent("x", "src", nil))
	require.Error(t, err)
	assert.ErrorIs(t, err, errA)
	assert.ErrorIs(t, err, errB)
	assert.NoError(t, b.Publish(NewEvent("y", "src", nil)))
}

func TestCancelStopsDelivery(t *testing.T) {
	b := New()
	calls := 0
	sub, err := b.Subscribe("x", func(Event) error { calls++; return nil })
	require.NoError(t, err)

	require.NoError(t, b.Publish(NewEvent("x", "src", nil)))
	require.NoError(t, b.Unsubscribe(sub))
	require.NoError(t, sub.Cancel())
	require.NoError(t, b.Unsubscribe(nil))
	require.NoError(t, b.Publish(NewEvent("x", "src", nil)))

	assert.Equal(t, 1, calls)
	assert.False(t, sub.IsActive())
}

func TestCancelDuringDelivery(t *testing.T) {
	b := New()
	var second Subscription
	calls := 0
	_, _ = b.Subscribe("x", func(Event) error {
		return second.Cancel()
	})
	second, _ = b.Subscribe("x", func(Event) error { calls++; return nil })

	require.NoError(t, b.Publish(NewEvent("x", "src", nil)))
	assert.Zero(t, calls, "a handler cancelled mid-delivery is skipped")
}

func TestSubscribeRejectsNilHandler(t *testing.T) {
	_, err := New().Subscribe("x", nil)
	assert.ErrorIs(t, err, ErrNilHandler)
}

func TestObservers(t *testing.T) {
	b := New()
	boom := errors.New("boom")
	_, _ = b.Subscribe("e", func(Event) error { return boom })

	obs := &countingObserver{}
	b.AddObserver(obs)
	b.AddObserver(obs)
	_ = b.Publish(NewEvent("e", "s", nil))
	assert.Equal(t, 1, obs.published)
	assert.Equal(t, 1, obs.delivered)
	assert.ErrorIs(t, obs.lastErr, boom)

	b.RemoveObserver(obs)
	_ = b.Publish(NewEvent("e", "s", nil))
	assert.Equal(t, 1, obs.published)
}

func TestSubscribeAllAndHandle(t *testing.T) {
	b := New()
	var sum int
	var texts []string
	subs, err := SubscribeAll(b, map[string]EventHandler{
		"num":  Handle(func(n int) error { sum += n; return nil }),
		"text": Handle(func(s string) error { texts = append(texts, s); return nil }),
	})
	require.NoError(t, err)
	require.Len(t, subs, 2)

	require.NoError(t, b.Publish(NewEvent("num", "t", 2)))
	require.NoError(t, b.Publish(NewEvent("num", "t", "not a number")))
	require.NoError(t, b.Publish(NewEvent("text", "t", "hi")))
	assert.Equal(t, 2, sum)
	assert.Equal(t, []string{"hi"}, texts)

	require.NoError(t, subs.Cancel())
	require.NoError(t, b.Publish(NewEvent("num", "t", 5)))
	assert.Equal(t, 2, sum)
}

func TestSubscribeAllRollsBack(t *testing.T) {
	b := New()
	_, err := SubscribeAll(b, map[string]EventHandler{
		"ok":  func(Event) error { return nil },
		"bad": nil,
	})
	require.ErrorIs(t, err, ErrNilHandler)

	obs := &countingObserver{}
	b.AddObserver(obs)
	require.NoError(t, b.Publish(NewEvent("ok", "t", nil)))
	assert.Zero(t, obs.delivered, "partial registrations must be cancelled")
}
