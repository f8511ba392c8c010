package core

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"
	"time"
)

type fakeTime struct {
	now time.Time
}

func (f *fakeTime) Now() time.Time { return f.now }

func (f *fakeTime) advance(d time.Duration) { f.now = f.now.Add(d) }

func TestClockTick(t *testing.T) {
	ft := &fakeTime{now: time.Unix(1000, 0)}
	c := NewClockWithSource(ft.Now)
	c.Start()

	if d := c.Tick(); d != 0 {
		t.Errorf("first tick = %v, want 0", d)
	}
	ft.advance(16 * time.Millisecond)
	if d := c.Tick(); d != 0.016 {
		t.Errorf("second tick = %v, want 0.016", d)
	}
	// identical instants still move time forward
	if d := c.Tick(); d <= 0 {
		t.Errorf("tick without elapsed time = %v, want > 0", d)
	}
	if c.Elapsed() != 0.016 {
		t.Errorf("elapsed = %v, want 0.016", c.Elapsed())
	}
}

func TestClockMaxDeltaAndReset(t *testing.T) {
	ft := &fakeTime{now: time.Unix(1000, 0)}
	c := NewClockWithSource(ft.Now)
	c.SetMaxDelta(100 * time.Millisecond)
	c.Tick()

	ft.advance(2 * time.Second)
	if d := c.Tick(); d != 0.1 {
		t.Errorf("capped tick = %v, want 0.1", d)
	}

	ft.advance(time.Minute)
	c.Reset()
	if d := c.Tick(); d != 0.1 {
		t.Errorf("tick after reset = %v, want the last delta 0.1", d)
	}
	ft.advance(20 * time.Millisecond)
	if d := c.Tick(); d != 0.02 {
		t.Errorf("tick after the resumed one = %v, want 0.02", d)
	}
}

func TestClockResetBeforeAnyDelta(t *testing.T) {
	ft := &fakeTime{now: time.Unix(1000, 0)}
	c := NewClockWithSource(ft.Now)
	c.Start()
	c.Tick()

	ft.advance(time.Hour)
	c.Reset()
	d := c.Tick()
	if d <= 0 || d > 0.02 {
		t.Errorf("tick after reset = %v, want a nominal frame time", d)
	}
}

func TestMetrics(t *testing.T) {
	ft := &fakeTime{now: time.Unix(0, 0)}
	m := NewMetricsWithSource(ft.Now)

	for i := 0; i < 70; i++ {
		m.Update()
		ft.advance(20 * time.Millisecond)
	}
	if m.TotalFrames != 70 {
		t.Errorf("total frames = %d, want 70", m.TotalFrames)
	}
	fps, avg := m.Frame()
	if fps < 49 || fps > 51 {
		t.Errorf("fps = %v, want about 50", fps)
	}
	if avg < 19.9 || avg > 20.1 {
		t.Errorf("frame average = %vms, want 20ms", avg)
	}

	// a pause is not one long frame
	m.Reset()
	ft.advance(time.Hour)
	m.Update()
	if m.FrameTime() > 20.1 {
		t.Errorf("frame time after reset = %v", m.FrameTime())
	}
}

func TestInputFirstPressed(t *testing.T) {
	events := NewEventBus()
	var pressed []KeyCode
	events.Register(EventCodeKeyPressed, t, func(context EventContext) bool {
		pressed = append(pressed, context.Data.(KeyEvent).KeyCode)
		return false
	})

	in := NewInput(events)
	in.ProcessKey(KeyA, true)
	if len(pressed) != 0 {
		t.Fatal("uninitialized input fired events")
	}
	in.Initialize()

	in.ProcessKey(KeyEscape, true)
	if in.IsFirstPressed(KeyEscape) {
		t.Error("key visible before the next Update")
	}
	in.Update(0)
	if !in.IsFirstPressed(KeyEscape) || !in.IsKeyDown(KeyEscape) {
		t.Error("key not first pressed after Update")
	}
	in.Update(0)
	if in.IsFirstPressed(KeyEscape) {
		t.Error("held key first pressed twice")
	}
	if !in.WasKeyDown(KeyEscape) {
		t.Error("WasKeyDown false for a held key")
	}

	// pressed and released between two frames still counts once
	in.ProcessKey(KeyEscape, false)
	in.Update(0)
	in.ProcessKey(KeyP, true)
	in.ProcessKey(KeyP, false)
	in.Update(0)
	if !in.IsFirstPressed(KeyP) {
		t.Error("tap between frames lost")
	}
	in.Update(0)
	if in.IsKeyDown(KeyP) {
		t.Error("tapped key still down")
	}

	if len(pressed) != 2 || pressed[0] != KeyEscape || pressed[1] != KeyP {
		t.Errorf("pressed events = %v", pressed)
	}
	if in.IsKeyDown(KeyMaxKeys) {
		t.Error("out of range key down")
	}
}

func TestEventBus(t *testing.T) {
	bus := NewEventBus()
	var got []string
	first, second := new(int), new(int)

	bus.Register(EventCodeResized, first, func(context EventContext) bool {
		got = append(got, "first")
		return false
	})
	if bus.Register(EventCodeResized, first, func(EventContext) bool { return false }) {
		t.Error("duplicate registration accepted")
	}
	bus.Register(EventCodeResized, second, func(context EventContext) bool {
		got = append(got, "second")
		return true
	})
	bus.Register(EventCodeResized, nil, func(context EventContext) bool {
		got = append(got, "never")
		return false
	})

	if !bus.Fire(EventContext{Type: EventCodeResized, Data: ResizeEvent{Width: 1, Height: 1}}) {
		t.Error("handled event reported as unhandled")
	}
	if strings.Join(got, ",") != "first,second" {
		t.Errorf("listeners = %v", got)
	}

	if !bus.Unregister(EventCodeResized, second) || bus.Unregister(EventCodeResized, second) {
		t.Error("unregister did not remove exactly once")
	}
	got = nil
	bus.Fire(EventContext{Type: EventCodeResized})
	if strings.Join(got, ",") != "first,never" {
		t.Errorf("listeners after unregister = %v", got)
	}

	bus.Shutdown()
	if bus.Fire(EventContext{Type: EventCodeResized}) {
		t.Error("event handled after shutdown")
	}
}

func TestLogSession(t *testing.T) {
	var buf bytes.Buffer
	SetLogOutput(&buf)
	SetLogLevel(InfoLevel)
	defer func() {
		SetLogSession("")
		SetLogOutput(os.Stderr)
		SetLogLevel(DebugLevel)
	}()

	SetLogSession("abc-123")
	LogInfo("hello %s", "world")
	LogDebug("hidden")
	SetLogSession("")
	LogInfo("untagged")

	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines: %q", len(lines), out)
	}
	if !strings.Contains(lines[0], "hello world") || !strings.Contains(lines[0], "run=abc-123") {
		t.Errorf("tagged line = %q", lines[0])
	}
	if strings.Contains(lines[1], "run=") {
		t.Errorf("untagged line = %q", lines[1])
	}

	if _, err := ParseLogLevel("verbose"); err == nil {
		t.Error("unknown level accepted")
	}
}

func TestLogSessionSwapWhileLogging(t *testing.T) {
	var buf safeBuffer
	SetLogOutput(&buf)
	defer func() {
		SetLogSession("")
		SetLogOutput(os.Stderr)
	}()

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				LogInfo("tick %d", j)
			}
		}()
	}
	for i := 0; i < 50; i++ {
		SetLogSession(fmt.Sprintf("run-%d", i))
	}
	wg.Wait()

	if n := strings.Count(buf.String(), "tick"); n != 200 {
		t.Errorf("got %d lines, want 200", n)
	}
}

// safeBuffer is written by several goroutines at once.
type safeBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *safeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *safeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
