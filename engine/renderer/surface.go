package renderer

import (
	"image"
	"image/color"
	"image/draw"
)

// Surface is an RGBA render target.
type Surface struct {
	name string
	img  *image.RGBA
}

func newSurface(name string, width, height uint32) *Surface {
	return &Surface{
		name: name,
		img:  image.NewRGBA(image.Rect(0, 0, int(max(width, 1)), int(max(height, 1)))),
	}
}

func (s *Surface) Name() string { return s.name }

func (s *Surface) Width() uint32 {
	return uint32(s.img.Bounds().Dx())
}

func (s *Surface) Height() uint32 {
	return uint32(s.img.Bounds().Dy())
}

// Image exposes the pixels, for drawing and for inspection.
func (s *Surface) Image() *image.RGBA {
	return s.img
}

func (s *Surface) Clear(c color.Color) {
	draw.Draw(s.img, s.img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

func (s *Surface) FillRect(r image.Rectangle, c color.Color) {
	draw.Draw(s.img, r.Intersect(s.img.Bounds()), image.NewUniform(c), image.Point{}, draw.Over)
}
