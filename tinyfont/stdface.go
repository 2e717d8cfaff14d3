package tinyfont

import (
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/sindarin-inc/tiny-font/ibmf"
)

// StdFace adapts a Font to golang.org/x/image/font.Face so this engine
// drops into existing Go text-drawing code (font.Drawer) without its
// callers needing to know the glyphs come from RLE bitmaps rather than
// TrueType outlines. Grounded on truetype/face.go's face type: same
// method set, same "quantize the dot, rasterize, return a mask" shape,
// adapted from vector rasterization to RLE-glyph blitting.
type StdFace struct {
	font *Font
}

// NewStdFace wraps f as a font.Face.
func NewStdFace(f *Font) *StdFace {
	return &StdFace{font: f}
}

func (s *StdFace) Close() error { return nil }

// Metrics reports the face's line-layout metrics, converting from this
// engine's native pixel/Fix16 units to font's 26.6 fixed-point format.
func (s *StdFace) Metrics() font.Metrics {
	lh := s.font.LineHeight()
	return font.Metrics{
		Height:     fixed.I(lh),
		Ascent:     fixed.I(lh),
		Descent:    0,
		XHeight:    fixed.I(lh),
		CapHeight:  fixed.I(lh),
		CaretSlope: fixed.Point26_6{X: 0, Y: fixed.I(1)},
	}
}

func (s *StdFace) GlyphAdvance(r rune) (fixed.Int26_6, bool) {
	face := s.font.face()
	if face == nil {
		return 0, false
	}
	code := s.font.data.Translate(r)
	m, err := face.GlyphMetrics(code)
	if err != nil {
		return 0, false
	}
	return fix16ToFixed(m.Advance), true
}

func (s *StdFace) GlyphBounds(r rune) (fixed.Rectangle26_6, fixed.Int26_6, bool) {
	face := s.font.face()
	if face == nil {
		return fixed.Rectangle26_6{}, 0, false
	}
	code := s.font.data.Translate(r)
	m, err := face.GlyphMetrics(code)
	if err != nil {
		return fixed.Rectangle26_6{}, 0, false
	}
	width := face.GetGlyphWidth(code)
	bounds := fixed.Rectangle26_6{
		Min: fixed.Point26_6{X: fixed.I(0), Y: fixed.I(-m.YOff)},
		Max: fixed.Point26_6{X: fixed.I(width), Y: fixed.I(m.Descent)},
	}
	return bounds, fix16ToFixed(m.Advance), true
}

// Glyph rasterizes r at dot, returning an 8-bit alpha mask the standard
// font-drawing package composites onto its destination image.
func (s *StdFace) Glyph(dot fixed.Point26_6, r rune) (image.Rectangle, image.Image, image.Point, fixed.Int26_6, bool) {
	face := s.font.face()
	if face == nil {
		return image.Rectangle{}, nil, image.Point{}, 0, false
	}
	code := s.font.data.Translate(r)
	glyph, err := face.GetGlyph(code, true, nil, 0, 0, false)
	if err != nil || glyph.Bitmap == nil {
		return image.Rectangle{}, nil, image.Point{}, fix16ToFixed(glyph.Metrics.Advance), code != ibmf.SpaceCode
	}

	x0, y0 := dot.X.Round(), dot.Y.Round()
	mask := bitmapToAlpha(glyph.Bitmap)
	dr := image.Rect(x0, y0-glyph.Bitmap.Height, x0+glyph.Bitmap.Width, y0)
	return dr, mask, image.Point{}, fix16ToFixed(glyph.Metrics.Advance), true
}

// Kern returns the pairwise kern the ligature/kerning program assigns to
// (r0, r1), ignoring any ligature substitution (a font.Face caller draws
// one rune at a time and cannot accept a replacement).
func (s *StdFace) Kern(r0, r1 rune) fixed.Int26_6 {
	face := s.font.face()
	if face == nil {
		return 0
	}
	c0 := s.font.data.Translate(r0)
	c1 := s.font.data.Translate(r1)
	var kern ibmf.Fix16
	face.LigKern(c0, &c1, &kern)
	return fix16ToFixed(kern)
}

// fix16ToFixed widens a Fix16 (16-bit, 6 fractional bits) to fixed.Int26_6
// (32-bit, 6 fractional bits): same scale, just a wider integer part.
func fix16ToFixed(v ibmf.Fix16) fixed.Int26_6 {
	return fixed.Int26_6(v)
}

func bitmapToAlpha(b *ibmf.Bitmap) *image.Alpha {
	img := image.NewAlpha(image.Rect(0, 0, b.Width, b.Height))
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			if b.PixelInk(x, y) {
				img.SetAlpha(x, y, image.Alpha{A: 255})
			}
		}
	}
	return img
}
