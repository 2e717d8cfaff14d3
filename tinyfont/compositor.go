// Package tinyfont is the Font Facade: it ties an ibmf.FontData and a face
// index together and exposes the line-drawing and text-measurement API a
// display driver actually calls (spec.md §6.3). It also re-exposes the
// Compositor's blit primitive for callers holding a cached, decoded glyph
// bitmap they want to place on their own canvas.
package tinyfont

import "github.com/sindarin-inc/tiny-font/ibmf"

// Canvas is a drawing surface: a caller-owned pixel buffer at 1 bpp or
// 8 bpp. It is exactly ibmf.Bitmap; tinyfont re-exports the name so
// display-driver code need not import the ibmf package directly.
type Canvas = ibmf.Bitmap

// Resolution names a canvas's bit depth.
type Resolution = ibmf.PixelResolution

const (
	OneBit    = ibmf.OneBit
	EightBits = ibmf.EightBits
)

// NewCanvas allocates a zeroed Canvas of the given dimensions and
// resolution.
func NewCanvas(width, height int, res Resolution) *Canvas {
	return ibmf.NewBitmap(width, height, res)
}

// Blit composites a decoded glyph bitmap onto dst at (atX, atY). Used by
// callers rendering a Glyph obtained with caching=true; Font.DrawSingleLineOfText
// uses the ibmf package's direct path instead.
func Blit(dst *Canvas, atX, atY int, src *Canvas) {
	ibmf.Blit(dst, atX, atY, src)
}
