// Package hud models the on-screen health pips shown next to the ship.
package hud

import (
	"sync"

	"github.com/zeusync/starfall/internal/core/observability/log"
)

// Bar is a row of health pips. Every hit removes as many pips as health lost.
type Bar struct {
	mu   sync.RWMutex
	pips int
	max  int
	log  log.Log
}

func NewBar(initial int, logger log.Log) *Bar {
	if initial < 0 {
		initial = 0
	}
	if logger == nil {
		logger = log.NewNop()
	}
	return &Bar{pips: initial, max: initial, log: logger}
}

// OnHealthChanged removes delta pips. A negative delta restores pips up to the
// initial count. The bar never drops below zero.
func (b *Bar) OnHealthChanged(delta int) {
	b.mu.Lock()
	b.pips = min(max(b.pips-delta, 0), b.max)
	pips := b.pips
	b.mu.Unlock()

	b.log.Debug("health bar changed", log.Int("delta", delta), log.Int("pips", pips))
}

func (b *Bar) Pips() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.pips
}

func (b *Bar) Max() int { return b.max }
