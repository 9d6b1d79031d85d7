package combat

import (
	"fmt"

	"github.com/zeusync/starfall/internal/core/observability/log"
	"github.com/zeusync/starfall/internal/core/systems/physics"
	"github.com/zeusync/starfall/internal/core/timer"
)

// Spawner drops meteors somewhere in the current view at random intervals,
// each one heading roughly towards the player.
type Spawner struct {
	deps    Deps
	cfg     SpawnerConfig
	meteor  MeteorConfig
	camera  Camera
	target  *Player
	timer   *timer.Timer
	spawned uint64
	skipped uint64
}

func NewSpawner(deps Deps, cfg SpawnerConfig, meteor MeteorConfig, camera Camera, target *Player) (*Spawner, error) {
	deps, err := deps.validate()
	if err != nil {
		return nil, err
	}
	switch {
	case camera == nil:
		return nil, fmt.Errorf("camera: %w", ErrMissingCollaborator)
	case target == nil:
		return nil, fmt.Errorf("target: %w", ErrMissingCollaborator)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := meteor.Validate(); err != nil {
		return nil, err
	}
	return &Spawner{deps: deps, cfg: cfg, meteor: meteor, camera: camera, target: target}, nil
}

// Start arms the first interval. Later calls do nothing.
func (s *Spawner) Start() {
	if s.timer != nil {
		return
	}
	s.timer = s.deps.Timers.Schedule(s.nextInterval(), false, s.OnIntervalElapsed)
}

func (s *Spawner) Stop() { s.timer.Cancel() }

// Running reports whether an interval is armed.
func (s *Spawner) Running() bool { return !s.timer.Stopped() }

func (s *Spawner) Spawned() uint64 { return s.spawned }

// Skipped counts intervals that elapsed after the target was gone.
func (s *Spawner) Skipped() uint64 { return s.skipped }

func (s *Spawner) nextInterval() float64 {
	return s.deps.Rand.Range(s.cfg.IntervalMin, s.cfg.IntervalMax)
}

// OnIntervalElapsed re-arms the timer with a freshly sampled interval and
// spawns one meteor.
func (s *Spawner) OnIntervalElapsed() {
	next := s.nextInterval()
	if s.timer == nil {
		s.timer = s.deps.Timers.Schedule(next, false, s.OnIntervalElapsed)
	} else {
		s.timer.SetDuration(next)
		s.timer.Restart()
	}

	if s.target.Destroyed() {
		s.skipped++
		return
	}
	if _, err := s.SpawnOne(); err != nil {
		s.deps.Log.Error("meteor spawn failed", log.Error(err))
	}
}

// SpawnOne places a meteor at a random point of the view, aimed at the target
// plus a random deviation of at most AimSpread.
func (s *Spawner) SpawnOne() (*Meteor, error) {
	view := s.camera.ViewportSize()
	position := s.camera.Position().Add(physics.Vec2{
		X: s.deps.Rand.Range(0, view.X),
		Y: s.deps.Rand.Range(0, view.Y),
	})

	aim := position.AngleTo(s.deps.Physics.Position(s.target))
	if s.cfg.AimSpread > 0 {
		aim += s.deps.Rand.Range(-s.cfg.AimSpread, s.cfg.AimSpread)
	}

	m, err := NewMeteor(s.deps, s.meteor, position, physics.FromAngle(aim))
	if err != nil {
		return nil, err
	}
	if err := m.Spawn(); err != nil {
		return nil, err
	}
	s.spawned++
	return m, nil
}
