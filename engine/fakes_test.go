package engine

import (
	"image/color"
	"time"

	"github.com/spaghettifunk/gamecore/engine/core"
	"github.com/spaghettifunk/gamecore/engine/platform"
	"github.com/spaghettifunk/gamecore/engine/renderer/metadata"
)

type recorder struct {
	calls []string
}

func (r *recorder) add(call string) {
	r.calls = append(r.calls, call)
}

func (r *recorder) count(call string) int {
	n := 0
	for _, c := range r.calls {
		if c == call {
			n++
		}
	}
	return n
}

// fakeWindow hands out one batch of notifications per poll and reports a
// destroy once the script runs out.
type fakeWindow struct {
	rec    *recorder
	script [][]platform.Notification

	width, height uint32
	geometry      platform.Geometry

	fullscreenErr     error
	fullscreenApplied int
	windowedApplied   []platform.Geometry
	acks              int
	waits             []time.Duration
	shown             bool
	destroyed         bool
}

func newFakeWindow(rec *recorder, width, height uint32) *fakeWindow {
	return &fakeWindow{
		rec:      rec,
		width:    width,
		height:   height,
		geometry: platform.Geometry{X: 100, Y: 100, Width: width, Height: height},
	}
}

func (w *fakeWindow) ClientSize() (uint32, uint32) { return w.width, w.height }
func (w *fakeWindow) Geometry() platform.Geometry  { return w.geometry }

func (w *fakeWindow) ApplyFullscreen() error {
	if w.fullscreenErr != nil {
		return w.fullscreenErr
	}
	w.fullscreenApplied++
	w.geometry = platform.Geometry{Width: 1920, Height: 1080}
	w.width, w.height = 1920, 1080
	return nil
}

func (w *fakeWindow) ApplyWindowed(g platform.Geometry) {
	w.windowedApplied = append(w.windowedApplied, g)
	w.geometry = g
	w.width, w.height = g.Width, g.Height
}

func (w *fakeWindow) Show(fullscreen bool) error {
	w.shown = true
	if fullscreen {
		return w.ApplyFullscreen()
	}
	return nil
}

func (w *fakeWindow) PollNotifications(q *platform.NotificationQueue, wait time.Duration) {
	w.waits = append(w.waits, wait)
	if len(w.script) == 0 {
		q.Push(platform.Simple(platform.NotifyDestroy))
		return
	}
	for _, n := range w.script[0] {
		q.Push(n)
	}
	w.script = w.script[1:]
}

func (w *fakeWindow) AcknowledgeSuspend() { w.acks++ }

func (w *fakeWindow) Destroy() {
	w.destroyed = true
	if w.rec != nil {
		w.rec.add("window.destroy")
	}
}

type fakePlatform struct {
	window    *fakeWindow
	classErr  error
	windowErr error
	nilWindow bool
	config    platform.WindowConfig
}

func (p *fakePlatform) Initialize() error { return nil }
func (p *fakePlatform) Terminate() error  { return nil }

func (p *fakePlatform) RegisterClass(name string) error {
	return p.classErr
}

func (p *fakePlatform) CreateWindow(config platform.WindowConfig) (platform.Window, error) {
	p.config = config
	if p.windowErr != nil {
		return nil, p.windowErr
	}
	if p.nilWindow {
		return nil, nil
	}
	return p.window, nil
}

type fakeSurface struct {
	width, height uint32
}

func (s *fakeSurface) Width() uint32  { return s.width }
func (s *fakeSurface) Height() uint32 { return s.height }

type fakeUI struct {
	rec *recorder
}

func (u *fakeUI) ClearColor(metadata.Surface)                    { u.rec.add("ui.clear") }
func (u *fakeUI) SetRenderTarget(metadata.Surface)               { u.rec.add("ui.target") }
func (u *fakeUI) SetViewportAndScissor(int, int, uint32, uint32) { u.rec.add("ui.viewport") }
func (u *fakeUI) FillRect(float32, float32, float32, float32, color.Color) {}
func (u *fakeUI) DrawText(float32, float32, string, color.Color)           {}
func (u *fakeUI) LineHeight() float32                                      { return 12 }

func (u *fakeUI) Finish() error {
	u.rec.add("ui.finish")
	return nil
}

type fakeGraphics struct {
	rec        *recorder
	initErr    error
	presentErr error
	overlay    *fakeSurface
	resizes    []core.ResizeEvent
}

func newFakeGraphics(rec *recorder) *fakeGraphics {
	return &fakeGraphics{rec: rec, overlay: &fakeSurface{width: 1280, height: 720}}
}

func (g *fakeGraphics) Initialize(window platform.Window) error {
	g.rec.add("graphics.init")
	return g.initErr
}

func (g *fakeGraphics) Resize(width uint32, height uint32) error {
	g.resizes = append(g.resizes, core.ResizeEvent{Width: width, Height: height})
	g.overlay = &fakeSurface{width: width, height: height}
	return nil
}

func (g *fakeGraphics) Overlay() metadata.Surface { return g.overlay }

func (g *fakeGraphics) BeginUI(label string) metadata.UIContext {
	return &fakeUI{rec: g.rec}
}

func (g *fakeGraphics) Present() error {
	g.rec.add("present")
	return g.presentErr
}

func (g *fakeGraphics) Idle() error {
	g.rec.add("graphics.idle")
	return nil
}

func (g *fakeGraphics) Shutdown() error {
	g.rec.add("graphics.shutdown")
	return nil
}

type fakeProfiler struct{ rec *recorder }

func (p *fakeProfiler) Update() { p.rec.add("profiler") }

// fakeTimer returns 0 on the first tick, then a fixed frame time, also
// after a reset.
type fakeTimer struct {
	rec    *recorder
	ticked bool
	resets int
}

func (t *fakeTimer) Start() {}

func (t *fakeTimer) Reset() {
	t.resets++
}

func (t *fakeTimer) Tick() float64 {
	t.rec.add("timer")
	if !t.ticked {
		t.ticked = true
		return 0
	}
	return 1.0 / 60
}

type recordingInput struct {
	*core.Input
	rec *recorder
}

func (in *recordingInput) Initialize() error {
	in.rec.add("input.init")
	return in.Input.Initialize()
}

func (in *recordingInput) Shutdown() error {
	in.rec.add("input.shutdown")
	return in.Input.Shutdown()
}

func (in *recordingInput) Update(deltaTime float64) {
	in.rec.add("input")
	in.Input.Update(deltaTime)
}

type fakeTuning struct {
	rec     *recorder
	initErr error
}

func (t *fakeTuning) Initialize() error {
	t.rec.add("tuning.init")
	return t.initErr
}

func (t *fakeTuning) Shutdown() error {
	t.rec.add("tuning.shutdown")
	return nil
}

func (t *fakeTuning) Update(float64) { t.rec.add("tuning") }

func (t *fakeTuning) Display(metadata.UIContext, float32, float32, float32, float32) {
	t.rec.add("tuning.display")
}

type fakePostEffects struct{ rec *recorder }

func (p *fakePostEffects) Render() error {
	p.rec.add("post-effects")
	return nil
}

type fakeApp struct {
	rec *recorder

	startupErr error
	cleanupErr error
	// failures by frame number, starting at 1
	updateErrs map[int]error
	onUpdate   func(frame int)

	updates int
	deltas  []float64
	resized []core.ResizeEvent
}

func (a *fakeApp) Startup() error {
	a.rec.add("startup")
	return a.startupErr
}

func (a *fakeApp) Cleanup() error {
	a.rec.add("cleanup")
	return a.cleanupErr
}

func (a *fakeApp) Update(deltaTime float64) error {
	a.updates++
	a.rec.add("update")
	a.deltas = append(a.deltas, deltaTime)
	if a.onUpdate != nil {
		a.onUpdate(a.updates)
	}
	return a.updateErrs[a.updates]
}

func (a *fakeApp) RenderScene() error {
	a.rec.add("render-scene")
	return nil
}

func (a *fakeApp) RenderUI(ui metadata.UIContext) error {
	a.rec.add("render-ui")
	return nil
}

func (a *fakeApp) OnSuspend()    { a.rec.add("on-suspend") }
func (a *fakeApp) OnResume()     { a.rec.add("on-resume") }
func (a *fakeApp) OnActivate()   { a.rec.add("on-activate") }
func (a *fakeApp) OnDeactivate() { a.rec.add("on-deactivate") }
func (a *fakeApp) OnDestroy()    { a.rec.add("on-destroy") }

func (a *fakeApp) OnResize(width uint32, height uint32) {
	a.rec.add("on-resize")
	a.resized = append(a.resized, core.ResizeEvent{Width: width, Height: height})
}

type harness struct {
	rec      *recorder
	window   *fakeWindow
	platform *fakePlatform
	graphics *fakeGraphics
	timer    *fakeTimer
	tuning   *fakeTuning
	app      *fakeApp
}

func newHarness(script ...[]platform.Notification) *harness {
	rec := &recorder{}
	window := newFakeWindow(rec, 1280, 720)
	window.script = script
	return &harness{
		rec:      rec,
		window:   window,
		platform: &fakePlatform{window: window},
		graphics: newFakeGraphics(rec),
		timer:    &fakeTimer{rec: rec},
		tuning:   &fakeTuning{rec: rec},
		app:      &fakeApp{rec: rec},
	}
}

func (h *harness) engine(opts ...Option) (*Engine, error) {
	config := DefaultApplicationConfig()
	events := core.NewEventBus()
	e, err := New(config, h.platform, Subsystems{
		Graphics:    h.graphics,
		Profiler:    &fakeProfiler{rec: h.rec},
		Timer:       h.timer,
		Input:       &recordingInput{Input: core.NewInput(events), rec: h.rec},
		Tuning:      h.tuning,
		PostEffects: &fakePostEffects{rec: h.rec},
	}, opts...)
	return e, err
}

// frameCalls returns the calls between the n-th profiler tick (1 based) and
// the next one, or the end of the recording.
func (h *harness) frameCalls(n int) []string {
	start, seen := -1, 0
	for i, c := range h.rec.calls {
		if c != "profiler" {
			continue
		}
		seen++
		if seen == n {
			start = i
		} else if seen == n+1 {
			return h.rec.calls[start:i]
		}
	}
	if start < 0 {
		return nil
	}
	return h.rec.calls[start:]
}
