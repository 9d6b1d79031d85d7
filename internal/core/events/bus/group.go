package bus

import "errors"

// Subscriptions is a set of handlers registered together and cancelled together.
type Subscriptions []Subscription

// SubscribeAll registers every handler in the map. If one registration fails
// the ones already made are cancelled.
func SubscribeAll(b EventBus, handlers map[string]EventHandler) (Subscriptions, error) {
	subs := make(Subscriptions, 0, len(handlers))
	for typ, h := range handlers {
		sub, err := b.Subscribe(typ, h)
		if err != nil {
			return nil, errors.Join(err, subs.Cancel())
		}
		subs = append(subs, sub)
	}
	return subs, nil
}

func (s Subscriptions) Cancel() error {
	var errs []error
	for _, sub := range s {
		if sub != nil {
			errs = append(errs, sub.Cancel())
		}
	}
	return errors.Join(errs...)
}

// Handle adapts fn to an EventHandler. Events whose data is not a T are ignored.
func Handle[T any](fn func(T) error) EventHandler {
	return func(e Event) error {
		if data, ok := e.Data().(T); ok {
			return fn(data)
		}
		return nil
	}
}
