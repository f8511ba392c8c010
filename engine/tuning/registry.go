package tuning

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/pelletier/go-toml/v2"
	"github.com/spaghettifunk/gamecore/engine/core"
	"github.com/spaghettifunk/gamecore/engine/renderer/metadata"
)

const VisibleVarName = "Display/Tuning Overlay"

// Keys used to edit the variables while the overlay is visible.
const (
	KeyPrevious  = core.KeyUp
	KeyNext      = core.KeyDown
	KeyDecrement = core.KeyLeft
	KeyIncrement = core.KeyRight
	KeySave      = core.KeyF5
)

// KeyState reports keys that went down in the current frame.
type KeyState interface {
	IsFirstPressed(key core.KeyCode) bool
}

type Option func(*Registry)

// WithKeys lets the registry edit its variables from the keyboard.
func WithKeys(keys KeyState) Option {
	return func(r *Registry) {
		r.keys = keys
	}
}

var (
	overlayBackground = color.RGBA{R: 0, G: 0, B: 0, A: 160}
	overlayText       = color.RGBA{R: 230, G: 230, B: 230, A: 255}
	overlayTitle      = color.RGBA{R: 255, G: 200, B: 60, A: 255}
	overlaySelected   = color.RGBA{R: 120, G: 220, B: 255, A: 255}
)

// Registry holds the tuning variables of the engine and the application.
// Values can be loaded from a TOML file, which is watched for changes while
// the registry is initialized. Changes are applied on the next Update, so
// variables are only ever touched by the thread running the frame loop.
type Registry struct {
	path    string
	vars    map[string]Var
	names   []string
	pending map[string]any
	visible *BoolVar

	keys     KeyState
	selected string

	watcher *fsnotify.Watcher
	changed chan struct{}
	done    chan struct{}
	wg      sync.WaitGroup
}

// NewRegistry creates a registry backed by the file at path. An empty path
// disables loading, watching and saving.
func NewRegistry(path string, opts ...Option) *Registry {
	r := &Registry{
		path:    path,
		vars:    make(map[string]Var),
		pending: make(map[string]any),
	}
	if path != "" {
		r.path = filepath.Clean(path)
	}
	r.visible = r.Bool(VisibleVarName, false)
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Visible controls whether Display draws anything.
func (r *Registry) Visible() *BoolVar {
	return r.visible
}

func (r *Registry) Bool(name string, initial bool) *BoolVar {
	if v, ok := r.vars[name].(*BoolVar); ok {
		return v
	}
	v := &BoolVar{name: name, value: initial}
	r.register(v)
	return v
}

func (r *Registry) Float(name string, initial, min, max, step float64) *NumberVar[float64] {
	if v, ok := r.vars[name].(*NumberVar[float64]); ok {
		return v
	}
	v := &NumberVar[float64]{name: name, Min: min, Max: max, Step: step}
	v.Set(initial)
	r.register(v)
	return v
}

func (r *Registry) Int(name string, initial, min, max, step int) *NumberVar[int] {
	if v, ok := r.vars[name].(*NumberVar[int]); ok {
		return v
	}
	v := &NumberVar[int]{name: name, Min: min, Max: max, Step: step}
	v.Set(initial)
	r.register(v)
	return v
}

func (r *Registry) register(v Var) {
	if _, exists := r.vars[v.Name()]; exists {
		core.LogWarn("tuning variable %q registered twice with different types, replacing it", v.Name())
	} else {
		r.names = append(r.names, v.Name())
		sort.Strings(r.names)
	}
	r.vars[v.Name()] = v

	// values loaded before the variable existed
	if value, ok := r.pending[v.Name()]; ok {
		delete(r.pending, v.Name())
		if err := v.set(value); err != nil {
			core.LogWarn("tuning: %s", err)
		}
	}
}

func (r *Registry) Lookup(name string) (Var, bool) {
	v, ok := r.vars[name]
	return v, ok
}

// Names returns the variable names in display order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.names))
	copy(names, r.names)
	return names
}

func (r *Registry) Initialize() error {
	if r.path == "" {
		return nil
	}
	if err := r.Load(r.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("tuning watcher: %w", err)
	}
	// editors replace files, so watch the directory instead of the file
	if err := watcher.Add(filepath.Dir(r.path)); err != nil {
		watcher.Close()
		return fmt.Errorf("tuning watcher: %w", err)
	}
	r.watcher = watcher
	r.changed = make(chan struct{}, 1)
	r.done = make(chan struct{})

	r.wg.Add(1)
	go r.watch()

	core.LogInfo("tuning: watching %s", r.path)
	return nil
}

func (r *Registry) watch() {
	defer r.wg.Done()
	for {
		select {
		case <-r.done:
			return
		case event, ok := <-r.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != r.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			select {
			case r.changed <- struct{}{}:
			default:
			}
		case err, ok := <-r.watcher.Errors:
			if !ok {
				return
			}
			core.LogWarn("tuning watcher: %s", err)
		}
	}
}

// Update applies a reloaded tuning file, if it changed since the last frame,
// then handles the editing keys while the overlay is visible.
func (r *Registry) Update(deltaTime float64) {
	r.reload()
	if r.keys != nil && r.visible.Get() {
		r.edit()
	}
}

func (r *Registry) reload() {
	if r.changed == nil {
		return
	}
	select {
	case <-r.changed:
		if err := r.Load(r.path); err != nil {
			core.LogWarn("tuning: reload failed: %s", err)
			return
		}
		core.LogDebug("tuning: reloaded %s", r.path)
	default:
	}
}

// Selected is the variable the editing keys apply to.
func (r *Registry) Selected() Var {
	v, _ := r.Lookup(r.names[r.selectedIndex()])
	return v
}

func (r *Registry) selectedIndex() int {
	i := sort.SearchStrings(r.names, r.selected)
	if i < len(r.names) && r.names[i] == r.selected {
		return i
	}
	return 0
}

func (r *Registry) edit() {
	i := r.selectedIndex()
	switch {
	case r.keys.IsFirstPressed(KeyPrevious):
		i = (i + len(r.names) - 1) % len(r.names)
	case r.keys.IsFirstPressed(KeyNext):
		i = (i + 1) % len(r.names)
	}
	r.selected = r.names[i]

	v := r.Selected()
	switch {
	case r.keys.IsFirstPressed(KeyIncrement):
		v.step(1)
	case r.keys.IsFirstPressed(KeyDecrement):
		v.step(-1)
	}

	if r.keys.IsFirstPressed(KeySave) {
		if r.path == "" {
			core.LogWarn("tuning: no file to save to")
			return
		}
		if err := r.Save(r.path); err != nil {
			core.LogError("tuning: save failed: %s", err)
			return
		}
		core.LogInfo("tuning: saved %s", r.path)
	}
}

func (r *Registry) Shutdown() error {
	if r.watcher == nil {
		return nil
	}
	close(r.done)
	err := r.watcher.Close()
	r.wg.Wait()
	r.watcher = nil
	r.changed = nil
	return err
}

// Load applies the values of a TOML file. Values of unknown variables are
// kept until a variable with that name is registered.
func (r *Registry) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	values := make(map[string]any)
	if err := toml.Unmarshal(data, &values); err != nil {
		return fmt.Errorf("tuning file %s: %w", path, err)
	}

	var errs []error
	for name, value := range values {
		v, ok := r.vars[name]
		if !ok {
			r.pending[name] = value
			continue
		}
		if err := v.set(value); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Save writes every variable to a TOML file.
func (r *Registry) Save(path string) error {
	values := make(map[string]any, len(r.vars))
	for name, v := range r.vars {
		values[name] = v.Value()
	}
	data, err := toml.Marshal(values)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Display draws the variables inside the given rectangle, one per line.
func (r *Registry) Display(ui metadata.UIContext, x, y, width, height float32) {
	if !r.visible.Get() {
		return
	}

	const padding = 6
	lineHeight := ui.LineHeight()
	lines := len(r.names) + 1
	boxHeight := float32(lines)*lineHeight + 2*padding
	if boxHeight > height {
		boxHeight = height
	}
	ui.FillRect(x, y, width, boxHeight, overlayBackground)

	cursor := y + padding
	ui.DrawText(x+padding, cursor, "Tuning", overlayTitle)
	selected := r.selectedIndex()
	for i, name := range r.names {
		cursor += lineHeight
		if cursor+lineHeight > y+boxHeight {
			break
		}
		line, c := "  ", color.Color(overlayText)
		if i == selected {
			line, c = "> ", overlaySelected
		}
		ui.DrawText(x+padding, cursor, line+fmt.Sprintf("%s: %s", name, r.vars[name]), c)
	}
}
