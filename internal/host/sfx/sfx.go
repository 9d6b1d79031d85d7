// Package sfx turns combat events into short synthesized sound cues.
package sfx

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/zeusync/starfall/internal/config"
	"github.com/zeusync/starfall/internal/core/combat"
	"github.com/zeusync/starfall/internal/core/events/bus"
	"github.com/zeusync/starfall/internal/core/observability/log"
)

type Cue uint8

const (
	CueFire Cue = iota
	CueHit
	CueMeteorDestroyed
	CuePlayerDestroyed
)

func (c Cue) String() string {
	switch c {
	case CueFire:
		return "fire"
	case CueHit:
		return "hit"
	case CueMeteorDestroyed:
		return "meteor_destroyed"
	case CuePlayerDestroyed:
		return "player_destroyed"
	default:
		return "unknown"
	}
}

type tone struct {
	freq float64
	dur  time.Duration
}

var cues = map[Cue][]tone{
	CueFire:            {{freq: 880, dur: 40 * time.Millisecond}},
	CueHit:             {{freq: 160, dur: 120 * time.Millisecond}},
	CueMeteorDestroyed: {{freq: 330, dur: 60 * time.Millisecond}, {freq: 220, dur: 80 * time.Millisecond}},
	CuePlayerDestroyed: {{freq: 440, dur: 150 * time.Millisecond}, {freq: 330, dur: 150 * time.Millisecond}, {freq: 110, dur: 300 * time.Millisecond}},
}

// Sink plays finished streamers. The speaker is the real one.
type Sink interface {
	Play(s beep.Streamer)
}

type speakerSink struct{}

func (speakerSink) Play(s beep.Streamer) { speaker.Play(s) }

// InitSpeaker opens the audio device and returns a sink playing on it.
func InitSpeaker(rate beep.SampleRate) (Sink, error) {
	if err := speaker.Init(rate, rate.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}
	return speakerSink{}, nil
}

// Player maps bus events to cues.
type Player struct {
	mu     sync.Mutex
	rate   beep.SampleRate
	volume float64
	sink   Sink
	subs   bus.Subscriptions
	played map[Cue]uint64
	log    log.Log
}

func NewPlayer(cfg config.AudioConfig, sink Sink, logger log.Log) *Player {
	if logger == nil {
		logger = log.NewNop()
	}
	return &Player{
		rate:   beep.SampleRate(cfg.SampleRate),
		volume: cfg.Volume,
		sink:   sink,
		played: make(map[Cue]uint64),
		log:    logger,
	}
}

// Attach subscribes to the combat events that have a cue.
func (p *Player) Attach(b bus.EventBus) error {
	subs, err := bus.SubscribeAll(b, map[string]bus.EventHandler{
		combat.EventProjectileFired: func(bus.Event) error { return p.Play(CueFire) },
		combat.EventPlayerDamaged:   func(bus.Event) error { return p.Play(CueHit) },
		combat.EventEntityDestroyed: bus.Handle(func(d combat.DestroyedEvent) error {
			switch d.Kind {
			case combat.KindMeteor:
				return p.Play(CueMeteorDestroyed)
			case combat.KindPlayer:
				return p.Play(CuePlayerDestroyed)
			}
			return nil
		}),
	})
	if err != nil {
		return err
	}
	p.mu.Lock()
	p.subs = append(p.subs, subs...)
	p.mu.Unlock()
	return nil
}

// Detach cancels every subscription made by Attach.
func (p *Player) Detach() error {
	p.mu.Lock()
	subs := p.subs
	p.subs = nil
	p.mu.Unlock()
	return subs.Cancel()
}

// Play sends cue to the sink.
func (p *Player) Play(cue Cue) error {
	s, err := p.Streamer(cue)
	if err != nil {
		return err
	}
	p.mu.Lock()
	p.played[cue]++
	p.mu.Unlock()
	p.sink.Play(s)
	return nil
}

// Played counts how many times cue has been sent to the sink.
func (p *Player) Played(cue Cue) uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.played[cue]
}

// Streamer renders cue as a finite sequence of sine tones scaled by the volume.
func (p *Player) Streamer(cue Cue) (beep.Streamer, error) {
	tones, ok := cues[cue]
	if !ok {
		return nil, fmt.Errorf("unknown cue %d", cue)
	}
	parts := make([]beep.Streamer, 0, len(tones))
	for _, t := range tones {
		sine, err := generators.SineTone(p.rate, t.freq)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", cue, err)
		}
		parts = append(parts, beep.Take(p.rate.N(t.dur), sine))
	}
	return gain(beep.Seq(parts...), p.volume), nil
}

func gain(s beep.Streamer, volume float64) beep.Streamer {
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		n, ok := s.Stream(samples)
		for i := range samples[:n] {
			samples[i][0] *= volume
			samples[i][1] *= volume
		}
		return n, ok
	})
}
