package metadata

import "image/color"

// Surface is a render target with a fixed size.
type Surface interface {
	Width() uint32
	Height() uint32
}

// UIContext records the overlay pass of a frame.
type UIContext interface {
	// ClearColor clears the surface to transparent.
	ClearColor(target Surface)
	SetRenderTarget(target Surface)
	SetViewportAndScissor(x, y int, width, height uint32)
	FillRect(x, y, width, height float32, c color.Color)
	DrawText(x, y float32, text string, c color.Color)
	// LineHeight is the vertical advance of one DrawText line.
	LineHeight() float32
	// Finish submits the recorded work.
	Finish() error
}
