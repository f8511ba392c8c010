package testbed

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"time"

	"github.com/spaghettifunk/gamecore/engine"
	"github.com/spaghettifunk/gamecore/engine/core"
	"github.com/spaghettifunk/gamecore/engine/renderer"
	"github.com/spaghettifunk/gamecore/engine/renderer/metadata"
	"github.com/spaghettifunk/gamecore/engine/tuning"
)

var (
	textColor  = color.RGBA{R: 240, G: 240, B: 240, A: 255}
	panelColor = color.RGBA{R: 0, G: 0, B: 0, A: 140}
	boxColor   = color.RGBA{R: 220, G: 90, B: 40, A: 255}
)

type TestGame struct {
	*engine.Game

	renderer *renderer.Renderer
	input    *core.Input
	metrics  *core.Metrics
	tuning   *tuning.Registry
	state    *gameState
}

type gameState struct {
	elapsed  float64
	x, y     float64
	dx, dy   float64
	width    uint32
	height   uint32
	focused  bool
	suspends int

	speed   *tuning.NumberVar[float64]
	boxSize *tuning.NumberVar[int]
	paused  *tuning.BoolVar
}

func NewTestGame(config *engine.ApplicationConfig, r *renderer.Renderer, input *core.Input, metrics *core.Metrics, registry *tuning.Registry) *TestGame {
	state := &gameState{
		dx:      1,
		dy:      0.7,
		width:   config.DisplayWidth,
		height:  config.DisplayHeight,
		focused: true,
	}
	tg := &TestGame{
		Game: &engine.Game{
			ApplicationConfig: config,
			State:             state,
		},
		renderer: r,
		input:    input,
		metrics:  metrics,
		tuning:   registry,
		state:    state,
	}

	tg.FnOnSuspend = func() {
		state.suspends++
		core.LogInfo("testbed suspended")
	}
	tg.FnOnResume = func() {
		core.LogInfo("testbed resumed")
	}
	tg.FnOnActivate = func() { state.focused = true }
	tg.FnOnDeactivate = func() { state.focused = false }

	return tg
}

func (g *TestGame) Startup() error {
	core.LogInfo("starting testbed...")
	g.state.speed = g.tuning.Float("Testbed/Speed", 240, 0, 2000, 20)
	g.state.boxSize = g.tuning.Int("Testbed/Box Size", 64, 8, 512, 8)
	g.state.paused = g.tuning.Bool("Testbed/Paused", false)
	return nil
}

func (g *TestGame) Cleanup() error {
	core.LogInfo("testbed ran for %.1fs, suspended %d times", g.state.elapsed, g.state.suspends)
	return nil
}

func (g *TestGame) Update(deltaTime float64) error {
	s := g.state

	if g.input.IsFirstPressed(core.KeyBackspace) {
		g.tuning.Visible().Toggle()
	}
	if g.input.IsFirstPressed(core.KeySpace) {
		s.paused.Toggle()
	}
	if g.input.IsFirstPressed(core.KeyF12) {
		name := fmt.Sprintf("screenshot-%s.png", time.Now().Format("20060102-150405"))
		if err := g.renderer.Screenshot(name); err != nil {
			core.LogWarn("screenshot failed: %s", err)
		} else {
			core.LogInfo("screenshot saved to %s", name)
		}
	}
	if s.paused.Get() {
		return nil
	}

	s.elapsed += deltaTime
	step := s.speed.Get() * deltaTime
	s.x += s.dx * step
	s.y += s.dy * step
	s.bounce()
	return nil
}

// bounce keeps the box inside the window.
func (s *gameState) bounce() {
	size := float64(s.boxSize.Get())
	maxX := math.Max(float64(s.width)-size, 0)
	maxY := math.Max(float64(s.height)-size, 0)
	if s.x < 0 || s.x > maxX {
		s.dx = -s.dx
		s.x = math.Min(math.Max(s.x, 0), maxX)
	}
	if s.y < 0 || s.y > maxY {
		s.dy = -s.dy
		s.y = math.Min(math.Max(s.y, 0), maxY)
	}
}

func (g *TestGame) RenderScene() error {
	scene := g.renderer.Scene()
	if scene == nil {
		return renderer.ErrNotInitialized
	}
	s := g.state

	// slow background pulse
	shade := uint8(30 + 20*math.Sin(s.elapsed))
	scene.Clear(color.RGBA{R: shade / 2, G: shade / 2, B: shade, A: 255})

	size := s.boxSize.Get()
	x, y := int(s.x), int(s.y)
	scene.FillRect(image.Rect(x, y, x+size, y+size), boxColor)
	return nil
}

func (g *TestGame) RenderUI(ui metadata.UIContext) error {
	fps, frameTime := g.metrics.Frame()
	lines := []string{
		fmt.Sprintf("FPS: %.0f (%.2fms)", fps, frameTime),
		fmt.Sprintf("Window: %dx%d", g.state.width, g.state.height),
		"Backspace: tuning  Space: pause  F12: screenshot  Esc: quit",
	}
	if !g.state.focused {
		lines = append(lines, "(unfocused)")
	}

	lh := ui.LineHeight()
	ui.FillRect(4, 4, 440, lh*float32(len(lines))+8, panelColor)
	for i, line := range lines {
		ui.DrawText(8, 8+lh*float32(i), line, textColor)
	}
	return nil
}

func (g *TestGame) OnResize(width uint32, height uint32) {
	g.state.width = width
	g.state.height = height
	core.LogDebug("testbed resized to %dx%d", width, height)
}
