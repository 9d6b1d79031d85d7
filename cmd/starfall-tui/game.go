package main

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/zeusync/starfall/internal/config"
	"github.com/zeusync/starfall/internal/core/combat"
	"github.com/zeusync/starfall/internal/core/observability/log"
	"github.com/zeusync/starfall/internal/core/session"
	"github.com/zeusync/starfall/internal/core/systems/physics"
	"github.com/zeusync/starfall/internal/host/sfx"
	"github.com/zeusync/starfall/internal/injector"
)

const (
	frame = 16 * time.Millisecond
	// terminals only report key presses, so a press counts as held for this long
	holdWindow = 150 * time.Millisecond
)

type game struct {
	cfg     *config.Config
	screen  tcell.Screen
	session *session.Session
	release func()
	audio   *sfx.Player

	pressed map[tcell.Key]time.Time
	fire    bool
	last    time.Time
}

func newGame(cfg *config.Config) (*game, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.HideCursor()

	g := &game{cfg: cfg, screen: screen, pressed: make(map[tcell.Key]time.Time)}
	if cfg.Audio.Enabled {
		sink, err := sfx.InitSpeaker(beep.SampleRate(cfg.Audio.SampleRate))
		if err != nil {
			// non-fatal, the game runs silent
			log.Provide().Warn("audio disabled", log.Error(err))
		} else {
			g.audio = sfx.NewPlayer(cfg.Audio, sink, log.Provide())
		}
	}
	if err := g.restart(); err != nil {
		screen.Fini()
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
	g.last = time.Now()
	return nil
}

func (g *game) run() {
	ticker := time.NewTicker(frame)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := g.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			if !g.handleInput(ev) {
				return
			}
		case now := <-ticker.C:
			dt := now.Sub(g.last).Seconds()
			g.last = now
			g.applyInput(now)
			g.session.Step(dt)
			g.draw()
		}
	}
}

func (g *game) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyUp, tcell.KeyDown, tcell.KeyLeft, tcell.KeyRight:
			g.pressed[ev.Key()] = time.Now()
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case ' ':
				g.fire = true
			case 'r':
				if g.session.Over() {
					if err := g.restart(); err != nil {
						log.Provide().Error("restart failed", log.Error(err))
						return false
					}
				}
			case 'w':
				g.pressed[tcell.KeyUp] = time.Now()
			case 's':
				g.pressed[tcell.KeyDown] = time.Now()
			case 'a':
				g.pressed[tcell.KeyLeft] = time.Now()
			case 'd':
				g.pressed[tcell.KeyRight] = time.Now()
			}
		}
	case *tcell.EventResize:
		g.screen.Sync()
	}
	return true
}

func (g *game) held(key tcell.Key, now time.Time) float64 {
	if at, ok := g.pressed[key]; ok && now.Sub(at) < holdWindow {
		return 1
	}
	return 0
}

func (g *game) applyInput(now time.Time) {
	intent := physics.Vec2{
		X: g.held(tcell.KeyRight, now) - g.held(tcell.KeyLeft, now),
		Y: g.held(tcell.KeyDown, now) - g.held(tcell.KeyUp, now),
	}
	// a press is fire for exactly one frame, so every press is a new edge
	g.session.Controls().Set(intent.Normalized(), g.fire)
	g.fire = false
}

var (
	stylePlayer     = tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true)
	styleMeteor     = tcell.StyleDefault.Foreground(tcell.ColorOrange)
	styleProjectile = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleHUD        = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleHealth     = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleOver       = tcell.StyleDefault.Foreground(tcell.ColorRed).Reverse(true)
)

// arrows indexed by facing octant, starting east and turning clockwise on screen
var arrows = []rune{'→', '↘', '↓', '↙', '←', '↖', '↑', '↗'}

func (g *game) draw() {
	g.screen.Clear()
	cols, rows := g.screen.Size()
	if cols == 0 || rows < 2 {
		g.screen.Show()
		return
	}

	cam := g.session.Camera()
	origin, size := cam.Position(), cam.ViewportSize()
	cellW, cellH := size.X/float64(cols), size.Y/float64(rows-1)

	for _, sp := range g.session.Sprites() {
		x := int((sp.Position.X - origin.X) / cellW)
		y := int((sp.Position.Y-origin.Y)/cellH) + 1
		if x < 0 || x >= cols || y < 1 || y >= rows {
			continue
		}
		switch sp.Kind {
		case combat.KindPlayer:
			octant := int(math.Round(physics.WrapAngle(sp.Rotation)/(math.Pi/4)+8)) % 8
			g.screen.SetContent(x, y, arrows[octant], nil, stylePlayer)
		case combat.KindMeteor:
			g.screen.SetContent(x, y, '@', nil, styleMeteor)
		case combat.KindProjectile:
			g.screen.SetContent(x, y, '•', nil, styleProjectile)
		}
	}

	st := g.session.Stats()
	health := strings.Repeat("♥", g.session.Health().Pips())
	g.print(0, 0, health, styleHealth)
	g.print(len([]rune(health))+2, 0, fmt.Sprintf("t=%5.1fs  shots %d  meteors %d/%d",
		st.Elapsed, st.ShotsFired, st.MeteorsDestroyed, st.MeteorsSpawned), styleHUD)
	if g.session.Over() {
		msg := " GAME OVER  r: restart  q: quit "
		g.print((cols-len([]rune(msg)))/2, rows/2, msg, styleOver)
	}
	g.screen.Show()
}

func (g *game) print(x, y int, text string, style tcell.Style) {
	for _, r := range text {
		g.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

func (g *game) cleanup() {
	if g.release != nil {
		g.release()
	}
	if g.audio != nil {
		speaker.Close()
	}
	g.screen.Fini()
}
