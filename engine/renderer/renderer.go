package renderer

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"time"

	"github.com/fzipp/bmfont"
	"github.com/spaghettifunk/gamecore/engine/core"
	"github.com/spaghettifunk/gamecore/engine/platform"
	"github.com/spaghettifunk/gamecore/engine/renderer/metadata"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

var ErrNotInitialized = errors.New("renderer not initialized")

type Options struct {
	// VSync paces Present to RefreshRate.
	VSync       bool
	RefreshRate int
	// OverlayFont is an optional BMFont descriptor used for UI text.
	OverlayFont string
	ClearColor  color.Color
}

// Renderer is a software Graphics implementation. The scene and the overlay
// are separate RGBA buffers; Present composites the overlay over the scene
// into the front buffer.
type Renderer struct {
	options Options

	scene   *Surface
	overlay *Surface
	front   *image.RGBA

	face   font.Face
	bitmap *bmfont.BitmapFont

	lastPresent time.Time
	presented   uint64
	ui          *uiContext

	now   func() time.Time
	sleep func(time.Duration)
}

func New(options Options) *Renderer {
	if options.ClearColor == nil {
		options.ClearColor = color.RGBA{R: 20, G: 20, B: 28, A: 255}
	}
	return &Renderer{
		options: options,
		face:    basicfont.Face7x13,
		now:     time.Now,
		sleep:   time.Sleep,
	}
}

func (r *Renderer) Initialize(window platform.Window) error {
	width, height := window.ClientSize()
	r.allocate(width, height)

	if r.options.OverlayFont != "" {
		f, err := bmfont.Load(r.options.OverlayFont)
		if err != nil {
			core.LogWarn("overlay font %s not loaded, using the builtin font: %s", r.options.OverlayFont, err)
		} else {
			r.bitmap = f
		}
	}

	core.LogInfo("software renderer initialized at %dx%d (vsync: %t)", width, height, r.options.VSync)
	return nil
}

func (r *Renderer) allocate(width, height uint32) {
	r.scene = newSurface("scene", width, height)
	r.overlay = newSurface("overlay", width, height)
	r.front = image.NewRGBA(r.scene.Image().Bounds())
	r.scene.Clear(r.options.ClearColor)
}

func (r *Renderer) Resize(width uint32, height uint32) error {
	if r.scene == nil {
		return ErrNotInitialized
	}
	if width == 0 || height == 0 {
		return fmt.Errorf("invalid size %dx%d", width, height)
	}
	if width == r.scene.Width() && height == r.scene.Height() {
		return nil
	}
	r.allocate(width, height)
	core.LogDebug("renderer resized to %dx%d", width, height)
	return nil
}

// Scene is the primary frame buffer the application renders into.
func (r *Renderer) Scene() *Surface {
	return r.scene
}

func (r *Renderer) Overlay() metadata.Surface {
	return r.overlay
}

func (r *Renderer) BeginUI(label string) metadata.UIContext {
	r.ui = &uiContext{renderer: r, label: label}
	return r.ui
}

func (r *Renderer) lineHeight() float32 {
	if r.bitmap != nil {
		return float32(r.bitmap.Descriptor.Common.LineHeight)
	}
	return float32(r.face.Metrics().Height.Ceil())
}

func (r *Renderer) Present() error {
	if r.scene == nil {
		return ErrNotInitialized
	}
	if r.ui != nil && !r.ui.finished {
		return fmt.Errorf("present with the %q pass still open", r.ui.label)
	}

	bounds := r.front.Bounds()
	draw.Draw(r.front, bounds, r.scene.Image(), image.Point{}, draw.Src)
	draw.Draw(r.front, bounds, r.overlay.Image(), image.Point{}, draw.Over)

	if r.options.VSync && r.options.RefreshRate > 0 {
		interval := time.Second / time.Duration(r.options.RefreshRate)
		if wait := r.lastPresent.Add(interval).Sub(r.now()); wait > 0 {
			r.sleep(wait)
		}
	}
	r.lastPresent = r.now()
	r.presented++
	return nil
}

// Frame is the last presented image.
func (r *Renderer) Frame() image.Image {
	return r.front
}

func (r *Renderer) Presented() uint64 {
	return r.presented
}

// Screenshot writes the last presented frame as a PNG file.
func (r *Renderer) Screenshot(path string) error {
	if r.front == nil {
		return ErrNotInitialized
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, r.front); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Idle has nothing to wait for, frames are complete once Present returns.
func (r *Renderer) Idle() error {
	return nil
}

func (r *Renderer) Shutdown() error {
	r.scene = nil
	r.overlay = nil
	r.front = nil
	r.bitmap = nil
	r.ui = nil
	core.LogInfo("software renderer shut down after %d frames", r.presented)
	return nil
}
