package sfx

import (
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/starfall/internal/config"
	"github.com/zeusync/starfall/internal/core/combat"
	"github.com/zeusync/starfall/internal/core/events/bus"
)

type recordingSink struct{ streams []beep.Streamer }

func (r *recordingSink) Play(s beep.Streamer) { r.streams = append(r.streams, s) }

func drain(s beep.Streamer) (n int, peak float64) {
	buf := make([][2]float64, 512)
	for {
		got, ok := s.Stream(buf)
		for _, smp := range buf[:got] {
			peak = max(peak, smp[0], -smp[0])
		}
		n += got
		if !ok {
			return n, peak
		}
	}
}

func TestStreamerLengthAndVolume(t *testing.T) {
	cfg := config.AudioConfig{SampleRate: 44100, Volume: 0.25}
	p := NewPlayer(cfg, &recordingSink{}, nil)
	rate := beep.SampleRate(cfg.SampleRate)

	s, err := p.Streamer(CuePlayerDestroyed)
	require.NoError(t, err)

	n, peak := drain(s)
	want := rate.N(150*time.Millisecond)*2 + rate.N(300*time.Millisecond)
	assert.Equal(t, want, n)
	assert.LessOrEqual(t, peak, 0.25+1e-9)
	assert.Greater(t, peak, 0.2)
}

func TestEventsTriggerCues(t *testing.T) {
	sink := &recordingSink{}
	p := NewPlayer(config.Default().Audio, sink, nil)
	b := bus.New()
	require.NoError(t, p.Attach(b))

	require.NoError(t, b.Publish(bus.NewEvent(combat.EventProjectileFired, "test", combat.FiredEvent{})))
	require.NoError(t, b.Publish(bus.NewEvent(combat.EventPlayerDamaged, "test", combat.DamagedEvent{Amount: 1})))
	require.NoError(t, b.Publish(bus.NewEvent(combat.EventEntityDestroyed, "test", combat.DestroyedEvent{Kind: combat.KindMeteor})))
	require.NoError(t, b.Publish(bus.NewEvent(combat.EventEntityDestroyed, "test", combat.DestroyedEvent{Kind: combat.KindProjectile})))
	require.NoError(t, b.Publish(bus.NewEvent(combat.EventEntityDestroyed, "test", combat.DestroyedEvent{Kind: combat.KindPlayer})))

	assert.Len(t, sink.streams, 4)
	assert.Equal(t, uint64(1), p.Played(CueFire))
	assert.Equal(t, uint64(1), p.Played(CueHit))
	assert.Equal(t, uint64(1), p.Played(CueMeteorDestroyed))
	assert.Equal(t, uint64(1), p.Played(CuePlayerDestroyed))

	require.NoError(t, p.Detach())
	require.NoError(t, b.Publish(bus.NewEvent(combat.EventProjectileFired, "test", combat.FiredEvent{})))
	assert.Len(t, sink.streams, 4)
}

func TestUnknownCue(t *testing.T) {
	p := NewPlayer(config.Default().Audio, &recordingSink{}, nil)
	assert.Error(t, p.Play(Cue(42)))
	assert.Zero(t, p.Played(Cue(42)))
}
