package engine

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spaghettifunk/gamecore/engine/core"
	"github.com/spaghettifunk/gamecore/engine/platform"
	"github.com/spaghettifunk/gamecore/engine/tuning"
)

// Process exit codes returned by Run.
const (
	ExitOK           = 0
	ExitInitFailure  = 1
	ExitFrameFailure = 2
)

// FrameErrorHandler decides what happens after a frame step failed. The rest
// of that frame is skipped either way; returning nil lets the next frame run,
// returning an error stops the loop.
type FrameErrorHandler func(step string, err error) error

// DiagnosticHook runs after the post effects and before the UI pass.
type DiagnosticHook func() error

type Option func(*Engine)

func WithFrameErrorHandler(h FrameErrorHandler) Option {
	return func(e *Engine) {
		e.onFrameError = h
	}
}

func WithDiagnosticHook(h DiagnosticHook) Option {
	return func(e *Engine) {
		e.diagnostics = append(e.diagnostics, h)
	}
}

// WithQuitKey changes the key that ends the loop when first pressed.
func WithQuitKey(key core.KeyCode) Option {
	return func(e *Engine) {
		e.quitKey = key
	}
}

type frameStep struct {
	name string
	fn   func() error
}

type Engine struct {
	config   *ApplicationConfig
	platform platform.Platform

	graphics    Graphics
	profiler    Profiler
	timer       FrameTimer
	input       InputSystem
	tuning      Tuning
	postEffects PostEffects

	lifecycle     *Lifecycle
	events        *core.EventBus
	notifications *platform.NotificationQueue

	app           Application
	runID         string
	steps         []frameStep
	delta         float64
	frames        uint64
	quitRequested bool
	quitKey       core.KeyCode
	onFrameError  FrameErrorHandler
	diagnostics   []DiagnosticHook

	// shutdown functions of the initialized subsystems, in init order
	shutdowns []func() error
}

func New(config *ApplicationConfig, p platform.Platform, subsystems Subsystems, opts ...Option) (*Engine, error) {
	if config == nil {
		config = DefaultApplicationConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: no platform", core.ErrPlatformInit)
	}
	if subsystems.Graphics == nil {
		return nil, core.ErrNoGraphics
	}

	e := &Engine{
		config:        config,
		platform:      p,
		graphics:      subsystems.Graphics,
		profiler:      subsystems.Profiler,
		timer:         subsystems.Timer,
		input:         subsystems.Input,
		tuning:        subsystems.Tuning,
		postEffects:   subsystems.PostEffects,
		lifecycle:     NewLifecycle(config.DefaultWidth, config.DefaultHeight),
		events:        core.NewEventBus(),
		notifications: platform.NewNotificationQueue(),
		quitKey:       core.KeyEscape,
		onFrameError: func(step string, err error) error {
			return nil
		},
	}

	if e.profiler == nil {
		e.profiler = core.NewMetrics()
	}
	if e.timer == nil {
		clock := core.NewClock()
		clock.SetMaxDelta(config.MaxFrameDelta.Duration)
		e.timer = clock
	}
	if e.input == nil {
		e.input = core.NewInput(e.events)
	}
	if e.tuning == nil {
		e.tuning = tuning.NewRegistry(config.TuningFile, tuning.WithKeys(e.input))
	}
	if e.postEffects == nil {
		e.postEffects = noPostEffects{}
	}

	for _, opt := range opts {
		opt(e)
	}

	return e, nil
}

// Events is the bus lifecycle and input events are fired on. Firing
// core.EventCodeApplicationQuit ends the loop at the next iteration boundary.
func (e *Engine) Events() *core.EventBus {
	return e.events
}

// Notifications is the queue drained before each frame. Producers running on
// other goroutines, such as OS signal handlers, push onto it.
func (e *Engine) Notifications() *platform.NotificationQueue {
	return e.notifications
}

func (e *Engine) WindowState() WindowState {
	return e.lifecycle.State()
}

func (e *Engine) Stage() Stage {
	return e.lifecycle.Stage()
}

// Frames is the number of frames started so far.
func (e *Engine) Frames() uint64 {
	return e.frames
}

// RunID identifies the current run in the logs.
func (e *Engine) RunID() string {
	return e.runID
}

// Run creates the window, runs the loop until the window is destroyed or
// quit is requested, and tears everything down. It returns the process exit
// code together with the error that caused a non-zero one.
func (e *Engine) Run(app Application, title string) (int, error) {
	if app == nil {
		return ExitInitFailure, core.ErrNoApplication
	}
	if e.lifecycle.Stage() != EngineStageUninitialized {
		return ExitInitFailure, core.ErrAlreadyRunning
	}
	e.app = app

	e.runID = uuid.NewString()
	core.SetLogSession(e.runID)
	defer core.SetLogSession("")

	appStarted, err := e.startup(title)
	if err != nil {
		core.LogError("failed to start %q: %s", title, err)
		if terr := e.teardown(appStarted); terr != nil {
			core.LogError("teardown after failed startup: %s", terr)
		}
		return ExitInitFailure, err
	}

	code, err := e.loop()

	if terr := e.teardown(true); terr != nil {
		core.LogError("teardown: %s", terr)
		if err == nil {
			err = terr
		}
	}
	core.LogInfo("run finished after %d frames", e.frames)
	return code, err
}

func (e *Engine) startup(title string) (bool, error) {
	if err := e.platform.RegisterClass(title); err != nil {
		return false, wrapIfNeeded(err, core.ErrWindowClassRegistration)
	}

	window, err := e.platform.CreateWindow(platform.WindowConfig{
		ClassName: title,
		Title:     title,
		X:         e.config.StartPosX,
		Y:         e.config.StartPosY,
		Width:     e.config.DisplayWidth,
		Height:    e.config.DisplayHeight,
		MinWidth:  e.config.MinWidth,
		MinHeight: e.config.MinHeight,
	})
	if err != nil {
		return false, wrapIfNeeded(err, core.ErrWindowCreation)
	}
	if window == nil {
		return false, core.ErrWindowCreation
	}
	e.lifecycle.Attach(window, e.config.Fullscreen)

	// initialize subsystems
	if err := e.graphics.Initialize(window); err != nil {
		return false, fmt.Errorf("graphics: %w", err)
	}
	e.shutdowns = append(e.shutdowns, e.graphics.Shutdown)

	e.timer.Start()

	if err := e.input.Initialize(); err != nil {
		return false, fmt.Errorf("input: %w", err)
	}
	e.shutdowns = append(e.shutdowns, e.input.Shutdown)

	if err := e.tuning.Initialize(); err != nil {
		return false, fmt.Errorf("tuning: %w", err)
	}
	e.shutdowns = append(e.shutdowns, e.tuning.Shutdown)

	e.registerListeners()
	e.buildFrameSteps()

	if err := e.app.Startup(); err != nil {
		return false, fmt.Errorf("application startup: %w", err)
	}

	e.lifecycle.Start()
	if err := window.Show(e.config.Fullscreen); err != nil {
		core.LogWarn("starting windowed: %s", err)
		e.lifecycle.Attach(window, false)
	}

	state := e.lifecycle.State()
	core.LogInfo("%q running at %dx%d", title, state.Width, state.Height)
	return true, nil
}

func (e *Engine) registerListeners() {
	e.events.Register(core.EventCodeApplicationQuit, e, func(context core.EventContext) bool {
		core.LogInfo("quit requested, shutting down.")
		e.quitRequested = true
		return false
	})
	e.events.Register(core.EventCodeResized, e, func(context core.EventContext) bool {
		re, ok := context.Data.(core.ResizeEvent)
		if !ok {
			core.LogError("wrong event associated with the event type `%s`", context.Type)
			return false
		}
		if err := e.graphics.Resize(re.Width, re.Height); err != nil {
			core.LogError("graphics resize to %dx%d: %s", re.Width, re.Height, err)
		}
		return false
	})
	e.events.Register(core.EventCodeResume, e, func(context core.EventContext) bool {
		// time spent suspended is not simulation time
		e.timer.Reset()
		if r, ok := e.profiler.(interface{ Reset() }); ok {
			r.Reset()
		}
		return false
	})

	handler, ok := e.app.(LifecycleHandler)
	if !ok {
		return
	}
	e.events.Register(core.EventCodeSuspend, handler, func(core.EventContext) bool {
		handler.OnSuspend()
		return false
	})
	e.events.Register(core.EventCodeResume, handler, func(core.EventContext) bool {
		handler.OnResume()
		return false
	})
	e.events.Register(core.EventCodeActivate, handler, func(core.EventContext) bool {
		handler.OnActivate()
		return false
	})
	e.events.Register(core.EventCodeDeactivate, handler, func(core.EventContext) bool {
		handler.OnDeactivate()
		return false
	})
	e.events.Register(core.EventCodeResized, handler, func(context core.EventContext) bool {
		if re, ok := context.Data.(core.ResizeEvent); ok {
			handler.OnResize(re.Width, re.Height)
		}
		return false
	})
	e.events.Register(core.EventCodeDestroy, handler, func(core.EventContext) bool {
		handler.OnDestroy()
		return false
	})
}

// buildFrameSteps fixes the order of the frame body after the per-frame
// subsystem updates: update, scene, post effects, diagnostics, UI, present.
func (e *Engine) buildFrameSteps() {
	e.steps = []frameStep{
		{"update", func() error { return e.app.Update(e.delta) }},
		{"render-scene", e.app.RenderScene},
		{"post-effects", e.postEffects.Render},
	}
	for i, hook := range e.diagnostics {
		e.steps = append(e.steps, frameStep{fmt.Sprintf("diagnostic-%d", i), hook})
	}
	e.steps = append(e.steps,
		frameStep{"render-ui", e.renderUI},
		frameStep{"present", e.graphics.Present},
	)
}

func (e *Engine) loop() (int, error) {
	for !e.quitRequested {
		if !e.pumpNotifications() {
			return ExitOK, nil
		}
		if e.quitRequested {
			break
		}

		state := e.lifecycle.State()
		if state.IsMinimized || state.IsSuspended {
			continue
		}

		if err := e.runFrame(); err != nil {
			return ExitFrameFailure, err
		}

		if e.input.IsFirstPressed(e.quitKey) {
			core.LogInfo("quit key pressed, shutting down.")
			break
		}
	}
	return ExitOK, nil
}

// pumpNotifications drains every pending notification. It returns false once
// the window has been destroyed.
func (e *Engine) pumpNotifications() bool {
	wait := e.config.SuspendedPollInterval.Duration
	state := e.lifecycle.State()
	if !state.IsMinimized && !state.IsSuspended {
		wait = 0
	}
	state.Handle.PollNotifications(e.notifications, wait)

	for {
		n, ok := e.notifications.Pop()
		if !ok {
			return true
		}
		if n.Kind == platform.NotifyKey {
			e.input.ProcessKey(n.Key, n.Pressed)
			continue
		}
		for _, event := range e.lifecycle.Translate(n) {
			e.dispatch(event)
			if event.Type == EventDestroy {
				core.LogInfo("window destroyed, shutting down.")
				return false
			}
		}
	}
}

func (e *Engine) dispatch(event LifecycleEvent) {
	core.LogDebug("lifecycle event: %s", event)
	context := core.EventContext{Type: event.Code()}
	if event.Type == EventResize {
		context.Data = core.ResizeEvent{Width: event.Width, Height: event.Height}
	}
	e.events.Fire(context)
}

func (e *Engine) runFrame() error {
	e.frames++

	e.profiler.Update()
	e.delta = e.timer.Tick()
	e.input.Update(e.delta)
	e.tuning.Update(e.delta)

	for _, step := range e.steps {
		if err := step.fn(); err != nil {
			core.LogError("frame %d: %s failed: %s", e.frames, step.name, err)
			if herr := e.onFrameError(step.name, err); herr != nil {
				return fmt.Errorf("frame %d %s: %w", e.frames, step.name, herr)
			}
			return nil
		}
	}
	return nil
}

// renderUI clears the overlay every frame, even if the application draws
// nothing, so composited overlay planes never show stale pixels.
func (e *Engine) renderUI() error {
	overlay := e.graphics.Overlay()
	ui := e.graphics.BeginUI("Render UI")
	ui.ClearColor(overlay)
	ui.SetRenderTarget(overlay)
	ui.SetViewportAndScissor(0, 0, overlay.Width(), overlay.Height())

	err := e.app.RenderUI(ui)
	if err == nil {
		e.tuning.Display(ui, 10.0, 40.0, 1900.0, 1040.0)
	}
	if ferr := ui.Finish(); ferr != nil && err == nil {
		err = ferr
	}
	return err
}

func (e *Engine) teardown(appStarted bool) error {
	e.lifecycle.BeginShutdown()

	var errs []error
	if len(e.shutdowns) > 0 {
		// graphics is always the first subsystem up
		if err := e.graphics.Idle(); err != nil {
			errs = append(errs, fmt.Errorf("graphics idle: %w", err))
		}
	}
	if appStarted {
		if err := e.app.Cleanup(); err != nil {
			errs = append(errs, fmt.Errorf("application cleanup: %w", err))
		}
	}
	for i := len(e.shutdowns) - 1; i >= 0; i-- {
		if err := e.shutdowns[i](); err != nil {
			errs = append(errs, err)
		}
	}
	e.shutdowns = nil
	e.events.Shutdown()

	if window := e.lifecycle.State().Handle; window != nil {
		window.Destroy()
	}
	e.lifecycle.Terminate()
	return errors.Join(errs...)
}

func wrapIfNeeded(err error, sentinel error) error {
	if errors.Is(err, sentinel) {
		return err
	}
	return fmt.Errorf("%w: %w", sentinel, err)
}
