package renderer

import (
	"errors"
	"image"
	"image/color"
	"image/draw"

	"github.com/spaghettifunk/gamecore/engine/core"
	"github.com/spaghettifunk/gamecore/engine/renderer/metadata"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

var ErrUIFinished = errors.New("ui pass already finished")

type uiContext struct {
	renderer *Renderer
	label    string
	target   *Surface
	clip     image.Rectangle
	finished bool
}

func (u *uiContext) surface(s metadata.Surface) *Surface {
	target, ok := s.(*Surface)
	if !ok {
		core.LogError("ui pass %q: surface %T does not belong to the renderer", u.label, s)
		return nil
	}
	return target
}

func (u *uiContext) ClearColor(s metadata.Surface) {
	if target := u.surface(s); target != nil {
		target.Clear(color.Transparent)
	}
}

func (u *uiContext) SetRenderTarget(s metadata.Surface) {
	u.target = u.surface(s)
	if u.target != nil {
		u.clip = u.target.Image().Bounds()
	}
}

func (u *uiContext) SetViewportAndScissor(x, y int, width, height uint32) {
	if u.target == nil {
		return
	}
	u.clip = image.Rect(x, y, x+int(width), y+int(height)).Intersect(u.target.Image().Bounds())
}

func (u *uiContext) FillRect(x, y, width, height float32, c color.Color) {
	if u.target == nil || u.finished {
		return
	}
	r := image.Rect(int(x), int(y), int(x+width), int(y+height)).Intersect(u.clip)
	draw.Draw(u.target.Image(), r, image.NewUniform(c), image.Point{}, draw.Over)
}

// DrawText draws one line of text with its top left corner at (x, y). The
// bitmap font, when loaded, keeps the colors of its page images.
func (u *uiContext) DrawText(x, y float32, text string, c color.Color) {
	if u.target == nil || u.finished {
		return
	}
	dst, ok := u.target.Image().SubImage(u.clip).(draw.Image)
	if !ok {
		return
	}

	if u.renderer.bitmap != nil {
		u.renderer.bitmap.DrawText(dst, image.Pt(int(x), int(y)), text)
		return
	}

	face := u.renderer.face
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(int(x), int(y)+face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(text)
}

func (u *uiContext) LineHeight() float32 {
	return u.renderer.lineHeight()
}

func (u *uiContext) Finish() error {
	if u.finished {
		return ErrUIFinished
	}
	u.finished = true
	return nil
}
