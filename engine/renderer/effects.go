package renderer

import (
	"math"

	"github.com/spaghettifunk/gamecore/engine/tuning"
)

// PostEffects runs over the scene buffer after the application rendered it
// and before the UI pass. The parameters are tuning variables.
type PostEffects struct {
	renderer *Renderer

	Enabled  *tuning.BoolVar
	Gamma    *tuning.NumberVar[float64]
	Vignette *tuning.NumberVar[float64]

	lutGamma float64
	lut      [256]uint8
}

func NewPostEffects(r *Renderer, registry *tuning.Registry) *PostEffects {
	return &PostEffects{
		renderer: r,
		Enabled:  registry.Bool("Post Effects/Enable", true),
		Gamma:    registry.Float("Post Effects/Gamma", 1.0, 0.5, 3.0, 0.1),
		Vignette: registry.Float("Post Effects/Vignette", 0.0, 0.0, 1.0, 0.05),
	}
}

func (p *PostEffects) Render() error {
	scene := p.renderer.Scene()
	if scene == nil {
		return ErrNotInitialized
	}
	if !p.Enabled.Get() {
		return nil
	}

	gamma := p.Gamma.Get()
	vignette := p.Vignette.Get()
	if gamma == 1.0 && vignette == 0 {
		return nil
	}
	if gamma != p.lutGamma {
		p.buildLUT(gamma)
	}

	img := scene.Image()
	bounds := img.Bounds()
	cx := float64(bounds.Dx()) / 2
	cy := float64(bounds.Dy()) / 2
	maxDist := math.Hypot(cx, cy)

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			i := img.PixOffset(x, y)
			px := img.Pix[i : i+3 : i+3]
			scale := 1.0
			if vignette > 0 {
				d := math.Hypot(float64(x-bounds.Min.X)-cx, float64(y-bounds.Min.Y)-cy) / maxDist
				scale = 1 - vignette*d*d
			}
			for c := range px {
				px[c] = uint8(float64(p.lut[px[c]]) * scale)
			}
		}
	}
	return nil
}

func (p *PostEffects) buildLUT(gamma float64) {
	for i := range p.lut {
		p.lut[i] = uint8(math.Round(255 * math.Pow(float64(i)/255, 1/gamma)))
	}
	p.lutGamma = gamma
}
