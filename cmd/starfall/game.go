package main

import (
	"fmt"
	"image/color"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/zeusync/starfall/internal/config"
	"github.com/zeusync/starfall/internal/core/combat"
	"github.com/zeusync/starfall/internal/core/observability/log"
	"github.com/zeusync/starfall/internal/core/session"
	"github.com/zeusync/starfall/internal/core/systems/physics"
	"github.com/zeusync/starfall/internal/host/sfx"
	"github.com/zeusync/starfall/internal/injector"
)

var (
	colorBackground = color.RGBA{R: 10, G: 10, B: 24, A: 255}
	colorShip       = color.RGBA{R: 120, G: 220, B: 255, A: 255}
	colorMeteor     = color.RGBA{R: 200, G: 130, B: 70, A: 255}
	colorMeteorCore = color.RGBA{R: 90, G: 60, B: 40, A: 255}
	colorBullet     = color.RGBA{R: 255, G: 240, B: 150, A: 255}
	colorPip        = color.RGBA{R: 230, G: 60, B: 70, A: 255}
	colorPipEmpty   = color.RGBA{R: 80, G: 30, B: 35, A: 255}
)

type game struct {
	cfg     *config.Config
	log     log.Log
	session *session.Session
	release func()
	audio   *sfx.Player

	prevRestart bool
}

func newGame(cfg *config.Config, logger log.Log) (*game, error) {
	g := &game{cfg: cfg, log: logger}
	if cfg.Audio.Enabled {
		sink, err := sfx.InitSpeaker(beep.SampleRate(cfg.Audio.SampleRate))
		if err != nil {
			// non-fatal, the game runs silent
			logger.Warn("audio disabled", log.Error(err))
		} else {
			g.audio = sfx.NewPlayer(cfg.Audio, sink, logger)
		}
	}
	if err := g.restart(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *game) restart() error {
	if g.release != nil {
		if g.audio != nil {
			_ = g.audio.Detach()
		}
		g.release()
	}
	s, release, err := injector.InitializeSession(g.cfg)
	if err != nil {
		return err
	}
	if g.audio != nil {
		if err := g.audio.Attach(s.Bus()); err != nil {
			release()
			return err
		}
	}
	g.session, g.release = s, release
	return nil
}

func (g *game) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	restartPressed := ebiten.IsKeyPressed(ebiten.KeyR)
	if g.session.Over() && restartPressed && !g.prevRestart {
		if err := g.restart(); err != nil {
			return err
		}
	}
	g.prevRestart = restartPressed

	g.session.Controls().Set(readIntent(), ebiten.IsKeyPressed(ebiten.KeySpace))
	g.session.Step(1 / float64(ebiten.TPS()))
	return nil
}

func pressed(keys ...ebiten.Key) float64 {
	for _, k := range keys {
		if ebiten.IsKeyPressed(k) {
			return 1
		}
	}
	return 0
}

// readIntent maps arrows and WASD to a direction, normalized for diagonals.
func readIntent() physics.Vec2 {
	v := physics.Vec2{
		X: pressed(ebiten.KeyRight, ebiten.KeyD) - pressed(ebiten.KeyLeft, ebiten.KeyA),
		Y: pressed(ebiten.KeyDown, ebiten.KeyS) - pressed(ebiten.KeyUp, ebiten.KeyW),
	}
	return v.Normalized()
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)
	origin := g.session.Camera().Position()

	for _, sp := range g.session.Sprites() {
		at := sp.Position.Sub(origin)
		x, y, r := float32(at.X), float32(at.Y), float32(sp.Radius)
		switch sp.Kind {
		case combat.KindPlayer:
			drawShip(screen, at, sp.Rotation, sp.Radius)
		case combat.KindMeteor:
			vector.FillCircle(screen, x, y, r, colorMeteorCore, true)
			vector.StrokeCircle(screen, x, y, r, 2, colorMeteor, true)
		case combat.KindProjectile:
			vector.FillCircle(screen, x, y, r, colorBullet, true)
		}
	}

	g.drawHUD(screen)
}

func drawShip(screen *ebiten.Image, at physics.Vec2, rotation, radius float64) {
	nose := at.Add(physics.FromAngle(rotation).Scale(radius * 1.4))
	left := at.Add(physics.FromAngle(rotation + 2.5).Scale(radius))
	right := at.Add(physics.FromAngle(rotation - 2.5).Scale(radius))
	for _, edge := range [][2]physics.Vec2{{nose, left}, {left, right}, {right, nose}} {
		vector.StrokeLine(screen,
			float32(edge[0].X), float32(edge[0].Y),
			float32(edge[1].X), float32(edge[1].Y),
			2, colorShip, true)
	}
}

func (g *game) drawHUD(screen *ebiten.Image) {
	bar := g.session.Health()
	for i := range bar.Max() {
		c := colorPipEmpty
		if i < bar.Pips() {
			c = colorPip
		}
		vector.FillCircle(screen, float32(20+i*22), 20, 8, c, true)
	}

	st := g.session.Stats()
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("t=%.1fs  shots %d  meteors %d/%d  fps %.0f",
		st.Elapsed, st.ShotsFired, st.MeteorsDestroyed, st.MeteorsSpawned, ebiten.ActualFPS()), 12, 34)

	if g.session.Over() {
		w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
		msg := "GAME OVER - press R to restart"
		ebitenutil.DebugPrintAt(screen, msg, w/2-len(msg)*3, h/2)
	}
}

func (g *game) Layout(_, _ int) (int, int) {
	return int(g.cfg.Viewport.Width), int(g.cfg.Viewport.Height)
}

func (g *game) cleanup() {
	if g.release != nil {
		g.release()
	}
	if g.audio != nil {
		speaker.Close()
	}
}

