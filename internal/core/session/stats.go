package session

import (
	"github.com/zeusync/starfall/internal/core/combat"
	"github.com/zeusync/starfall/internal/core/events/bus"
)

// Stats are running totals collected from combat events.
type Stats struct {
	Frames           uint64
	Elapsed          float64
	ShotsFired       uint64
	MeteorsSpawned   uint64
	MeteorsDestroyed uint64
	Collisions       uint64
	DamageTaken      int
}

type statsCollector struct {
	stats Stats
	subs  bus.Subscriptions
}

func (c *statsCollector) attach(b bus.EventBus) error {
	count := func(n *uint64) bus.EventHandler {
		return func(bus.Event) error {
			*n++
			return nil
		}
	}
	subs, err := bus.SubscribeAll(b, map[string]bus.EventHandler{
		combat.EventProjectileFired: count(&c.stats.ShotsFired),
		combat.EventMeteorSpawned:   count(&c.stats.MeteorsSpawned),
		combat.EventCollision:       count(&c.stats.Collisions),
		combat.EventPlayerDamaged: bus.Handle(func(d combat.DamagedEvent) error {
			c.stats.DamageTaken += d.Amount
			return nil
		}),
		combat.EventEntityDestroyed: bus.Handle(func(d combat.DestroyedEvent) error {
			if d.Kind == combat.KindMeteor {
				c.stats.MeteorsDestroyed++
			}
			return nil
		}),
	})
	c.subs = subs
	return err
}

func (c *statsCollector) detach() error {
	subs := c.subs
	c.subs = nil
	return subs.Cancel()
}
