package testbed

import (
	"testing"
	"time"

	"github.com/spaghettifunk/gamecore/engine"
	"github.com/spaghettifunk/gamecore/engine/core"
	"github.com/spaghettifunk/gamecore/engine/platform"
	"github.com/spaghettifunk/gamecore/engine/renderer"
	"github.com/spaghettifunk/gamecore/engine/tuning"
)

type window struct{}

func (window) ClientSize() (uint32, uint32)                                 { return 320, 200 }
func (window) Geometry() platform.Geometry                                  { return platform.Geometry{Width: 320, Height: 200} }
func (window) ApplyFullscreen() error                                       { return nil }
func (window) ApplyWindowed(platform.Geometry)                              {}
func (window) Show(bool) error                                              { return nil }
func (window) PollNotifications(*platform.NotificationQueue, time.Duration) {}
func (window) AcknowledgeSuspend()                                          {}
func (window) Destroy()                                                     {}

func newTestbed(t *testing.T) (*TestGame, *core.Input) {
	t.Helper()
	config := engine.DefaultApplicationConfig()
	config.DisplayWidth, config.DisplayHeight = 320, 200

	r := renderer.New(renderer.Options{})
	if err := r.Initialize(window{}); err != nil {
		t.Fatal(err)
	}
	input := core.NewInput(nil)
	input.Initialize()

	g := NewTestGame(config, r, input, core.NewMetrics(), tuning.NewRegistry(""))
	if err := g.Startup(); err != nil {
		t.Fatalf("Startup: %v", err)
	}
	return g, input
}

func TestBoxStaysInsideWindow(t *testing.T) {
	g, _ := newTestbed(t)
	g.state.speed.Set(2000)

	for i := 0; i < 500; i++ {
		if err := g.Update(1.0 / 30); err != nil {
			t.Fatal(err)
		}
		size := float64(g.state.boxSize.Get())
		if g.state.x < 0 || g.state.x > 320-size || g.state.y < 0 || g.state.y > 200-size {
			t.Fatalf("box left the window at (%v, %v)", g.state.x, g.state.y)
		}
	}
}

func TestPauseAndTuningKeys(t *testing.T) {
	g, input := newTestbed(t)

	input.ProcessKey(core.KeySpace, true)
	input.ProcessKey(core.KeyBackspace, true)
	input.Update(0)
	g.Update(0.1)
	if !g.state.paused.Get() {
		t.Error("space did not pause")
	}
	if !g.tuning.Visible().Get() {
		t.Error("backspace did not show the tuning overlay")
	}

	x := g.state.x
	input.Update(0)
	g.Update(0.1)
	if g.state.x != x || g.state.elapsed != 0 {
		t.Error("paused game moved")
	}
}

func TestRenderAndResize(t *testing.T) {
	g, _ := newTestbed(t)
	g.OnResize(640, 480)
	if g.state.width != 640 || g.state.height != 480 {
		t.Errorf("size = %dx%d", g.state.width, g.state.height)
	}

	if err := g.RenderScene(); err != nil {
		t.Fatalf("RenderScene: %v", err)
	}
	ui := g.renderer.BeginUI("test")
	ui.SetRenderTarget(g.renderer.Overlay())
	if err := g.RenderUI(ui); err != nil {
		t.Fatalf("RenderUI: %v", err)
	}
	if err := ui.Finish(); err != nil {
		t.Fatal(err)
	}

	g.OnSuspend()
	g.OnDeactivate()
	if g.state.suspends != 1 || g.state.focused {
		t.Error("lifecycle callbacks not applied")
	}
}

func TestLifecycleCallbacksReachTestbed(t *testing.T) {
	g, _ := newTestbed(t)
	var handler engine.LifecycleHandler = g

	handler.OnResize(1024, 768)
	handler.OnDeactivate()
	handler.OnSuspend()
	handler.OnResume()
	handler.OnActivate()

	if g.state.width != 1024 || g.state.height != 768 {
		t.Errorf("size = %dx%d, want 1024x768", g.state.width, g.state.height)
	}
	if g.state.suspends != 1 || !g.state.focused {
		t.Errorf("suspends = %d, focused = %t", g.state.suspends, g.state.focused)
	}
}
