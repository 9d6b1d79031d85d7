// Package session wires the combat entities to the reference physics arena,
// the tick-driven clock and the world, and steps them frame by frame in a
// fixed order.
package session

import (
	"fmt"
	"math"

	"github.com/zeusync/starfall/internal/config"
	"github.com/zeusync/starfall/internal/core/combat"
	"github.com/zeusync/starfall/internal/core/events/bus"
	"github.com/zeusync/starfall/internal/core/hud"
	"github.com/zeusync/starfall/internal/core/observability/log"
	"github.com/zeusync/starfall/internal/core/rng"
	"github.com/zeusync/starfall/internal/core/systems/physics"
	"github.com/zeusync/starfall/internal/core/timer"
	"github.com/zeusync/starfall/internal/core/world"
)

// Sprite is what a host needs to draw one body.
type Sprite struct {
	Kind     combat.Kind
	Position physics.Vec2
	Rotation float64
	Radius   float64
}

type Session struct {
	cfg    *config.Config
	log    log.Log
	bus    bus.EventBus
	clock  *timer.Clock
	arena  *physics.Arena[combat.Entity]
	world  *world.World[combat.Entity]
	camera *Camera
	health *hud.Bar

	controls *Controls
	player   *combat.Player
	spawner  *combat.Spawner
	stats    statsCollector
	over     bool
	lastSeen physics.Vec2
}

// New builds a session with the player in the middle of the first screen and
// the spawner armed.
func New(cfg *config.Config, logger log.Log, eventBus bus.EventBus, source rng.Source, controls *Controls) (_ *Session, err error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.NewNop()
	}
	if eventBus == nil {
		eventBus = bus.New()
	}
	if source == nil {
		source = rng.FromString(cfg.Seed)
	}
	if controls == nil {
		controls = NewControls()
	}

	size := physics.Vec2{X: cfg.Viewport.Width, Y: cfg.Viewport.Height}
	camera := NewCamera(size)
	s := &Session{
		cfg:      cfg,
		log:      logger,
		bus:      eventBus,
		clock:    timer.NewClock(),
		arena:    physics.NewArena[combat.Entity](camera.Rect()),
		world:    world.New[combat.Entity](logger),
		camera:   camera,
		health:   hud.NewBar(cfg.Player.Health, logger),
		controls: controls,
	}
	if err := s.stats.attach(eventBus); err != nil {
		return nil, fmt.Errorf("attach stats: %w", err)
	}
	defer func() {
		if err != nil {
			_ = s.stats.detach()
		}
	}()

	deps := combat.Deps{
		Physics: s.arena,
		Timers:  s.clock,
		Owner:   s.world,
		Rand:    source,
		Bus:     eventBus,
		Log:     logger,
	}

	player, err := combat.NewPlayer(deps, cfg.Player, cfg.Projectile, controls, s.health)
	if err != nil {
		return nil, fmt.Errorf("create player: %w", err)
	}
	start := size.Scale(0.5)
	// screen y grows downwards, so -π/2 points the nose up
	if err = player.Spawn(start, -math.Pi/2); err != nil {
		return nil, fmt.Errorf("spawn player: %w", err)
	}
	s.player = player
	s.lastSeen = start

	spawner, err := combat.NewSpawner(deps, cfg.Spawner, cfg.Meteor, camera, player)
	if err != nil {
		return nil, fmt.Errorf("create spawner: %w", err)
	}
	spawner.Start()
	s.spawner = spawner

	logger.Info("session started",
		log.String("seed", cfg.Seed),
		log.Float64("width", size.X),
		log.Float64("height", size.Y),
	)
	return s, nil
}

// Step advances the simulation by dt seconds: timers fire first, then entities
// tick, the camera follows the ship, physics integrates and refreshes
// visibility, and finally destroyed entities are removed.
func (s *Session) Step(dt float64) {
	dt = physics.Clamp(dt, 0, s.cfg.Session.MaxStep)

	s.clock.Advance(dt)
	s.world.Tick(dt)
	if !s.player.Destroyed() {
		s.lastSeen = s.arena.Position(s.player)
		if s.cfg.Session.FollowPlayer {
			s.camera.Follow(s.lastSeen)
		}
	}
	s.arena.SetView(s.camera.Rect())
	s.arena.Integrate(dt)
	s.world.Flush()

	s.stats.stats.Frames++
	s.stats.stats.Elapsed += dt

	if !s.over && s.player.Destroyed() {
		s.over = true
		st := s.stats.stats
		s.log.Info("player destroyed",
			log.Float64("elapsed", st.Elapsed),
			log.Uint64("shots", st.ShotsFired),
			log.Uint64("meteors_destroyed", st.MeteorsDestroyed),
		)
	}
}

// Over reports whether the player has been destroyed.
func (s *Session) Over() bool { return s.over }

func (s *Session) Stats() Stats { return s.stats.stats }

func (s *Session) Player() *combat.Player   { return s.player }
func (s *Session) Spawner() *combat.Spawner { return s.spawner }
func (s *Session) Controls() *Controls      { return s.controls }
func (s *Session) Camera() *Camera          { return s.camera }
func (s *Session) Health() *hud.Bar         { return s.health }
func (s *Session) Bus() bus.EventBus        { return s.bus }
func (s *Session) Now() float64             { return s.clock.Now() }

// PlayerPosition returns the ship position, or the last known one after death.
func (s *Session) PlayerPosition() physics.Vec2 {
	if s.arena.Has(s.player) {
		return s.arena.Position(s.player)
	}
	return s.lastSeen
}

// Count returns the number of live entities of kind.
func (s *Session) Count(kind combat.Kind) int {
	return s.world.Count(func(e combat.Entity) bool { return e.Kind() == kind })
}

// Sprites lists every body in draw order.
func (s *Session) Sprites() []Sprite {
	sprites := make([]Sprite, 0, s.arena.Len())
	s.arena.Each(func(owner combat.Entity, pos physics.Vec2, rot, radius float64) {
		sprites = append(sprites, Sprite{Kind: owner.Kind(), Position: pos, Rotation: rot, Radius: radius})
	})
	return sprites
}

// Close stops spawning and detaches the stats collector from the bus.
func (s *Session) Close() error {
	s.spawner.Stop()
	return s.stats.detach()
}
