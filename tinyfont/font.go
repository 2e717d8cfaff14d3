package tinyfont

import (
	"go.uber.org/zap"

	"github.com/sindarin-inc/tiny-font/ibmf"
)

// Font is the Font Facade (spec.md §2, §6.3): it ties an ibmf.FontData and
// a face index together. Grounded on freetype/freetype.go's Context, whose
// DrawString/recalc/SetFontSize shape this type mirrors, adapted from
// outline rasterization to RLE-bitmap blitting.
type Font struct {
	data      *ibmf.FontData
	faceIndex int
	log       *zap.Logger
}

// NewFont returns a Font facade over data, fixed to faceIndex. log may be
// nil.
func NewFont(data *ibmf.FontData, faceIndex int, log *zap.Logger) *Font {
	if log == nil {
		log = zap.NewNop()
	}
	return &Font{data: data, faceIndex: faceIndex, log: log}
}

func (f *Font) face() *ibmf.Face { return f.data.GetFace(f.faceIndex) }

// LineHeight returns the face's line height in pixels.
func (f *Font) LineHeight() int {
	if !f.data.IsInitialized() {
		return 0
	}
	return int(f.face().Header.LineHeight)
}

// GetFacePtSize returns the face's nominal point size.
func (f *Font) GetFacePtSize() int {
	if !f.data.IsInitialized() {
		return 0
	}
	return int(f.face().Header.PointSize)
}

// SetDisplayCapability declares the physical display's fixed maximum bit
// depth (spec.md §7's ConfigError scenario: requesting 8 bpp rendering on
// a display that only supports 1 bpp). Call this once at setup time
// before SetDisplayPixelResolution; a Font that never calls this accepts
// any resolution.
func (f *Font) SetDisplayCapability(res ibmf.PixelResolution) {
	if !f.data.IsInitialized() {
		return
	}
	f.face().SetDisplayCapability(res)
}

// SetDisplayPixelResolution sets the bit depth this face decodes glyphs
// into. Returns false (spec.md §6.3) when res is incompatible with the
// display capability declared via SetDisplayCapability.
func (f *Font) SetDisplayPixelResolution(res ibmf.PixelResolution) bool {
	if !f.data.IsInitialized() {
		return false
	}
	return f.face().SetDisplayPixelResolution(res) == nil
}

// DrawSingleLineOfText draws line onto canvas with its first glyph's pen
// position at (atX, atY), returning the pen x after the last glyph.
// Drawing against an uninitialized font is a no-op that returns atX
// (spec.md §7 "drawing a string against an uninitialized font produces an
// empty canvas").
func (f *Font) DrawSingleLineOfText(canvas *Canvas, atX, atY int, line string, inverted bool) int {
	if !f.data.IsInitialized() {
		return atX
	}
	face := f.face()
	w := ibmf.NewWalker(line, f.data.Shaper(f.faceIndex))

	penX, penY := atX, atY
	for {
		t, ok := w.Next()
		if !ok {
			break
		}
		if t.FirstWordChar {
			penX += face.GetGlyphHOffset(t.GlyphCode)
		}

		glyph, err := face.GetGlyph(t.GlyphCode, false, canvas, penX, penY, inverted)
		if err != nil {
			f.log.Warn("skipping glyph that failed to decode",
				zap.Uint16("code", t.GlyphCode), zap.Error(err))
		}

		switch {
		case t.GlyphCode == ibmf.SpaceCode:
			penX += int(glyph.Metrics.Advance) >> 6
		case t.LastWordChar:
			penX += face.GetGlyphWidth(t.GlyphCode) - int(t.Kern)/64 - glyph.Metrics.XOff
		default:
			penX += int(glyph.Metrics.Advance+t.Kern) >> 6
		}
	}
	return penX
}

// GetTextSize returns line's pixel width and height, running the same
// walk as DrawSingleLineOfText but collecting only metrics (spec.md §4.7).
func (f *Font) GetTextSize(line string) (width, height int) {
	if !f.data.IsInitialized() {
		return 0, 0
	}
	face := f.face()
	w := ibmf.NewWalker(line, f.data.Shaper(f.faceIndex))

	penX := 0
	up, down := 0, 0
	for {
		t, ok := w.Next()
		if !ok {
			break
		}
		if t.FirstWordChar {
			penX += face.GetGlyphHOffset(t.GlyphCode)
		}

		m, err := face.GlyphMetrics(t.GlyphCode)
		if err != nil {
			continue
		}
		if m.YOff > up {
			up = m.YOff
		}
		if m.Descent > down {
			down = m.Descent
		}

		switch {
		case t.GlyphCode == ibmf.SpaceCode:
			penX += int(m.Advance) >> 6
		case t.LastWordChar:
			penX += face.GetGlyphWidth(t.GlyphCode) - int(t.Kern)/64 - m.XOff
		default:
			penX += int(m.Advance+t.Kern) >> 6
		}
	}
	return penX, up + down
}

// GetTextWidth returns line's pixel width.
func (f *Font) GetTextWidth(line string) int {
	w, _ := f.GetTextSize(line)
	return w
}

// GetTextHeight returns line's pixel height.
func (f *Font) GetTextHeight(line string) int {
	_, h := f.GetTextSize(line)
	return h
}

// QuickTextWidth estimates line's pixel width without running the
// ligature/kerning walk, summing each codepoint's GlyphHorizontalMetrics
// advance directly. Grounded on IBMFFont's getTextWidthQuick /
// IBMFFace::getGlyphHorizontalMetrics (SPEC_FULL.md §12); the result is an
// approximation, not exact, by design.
func (f *Font) QuickTextWidth(line string) int {
	if !f.data.IsInitialized() {
		return 0
	}
	face := f.face()
	cur := ibmf.NewCursor([]byte(line))
	width := 0
	for {
		r, ok := cur.Next()
		if !ok {
			break
		}
		code := f.data.Translate(r)
		if code == ibmf.SpaceCode {
			width += int(face.Header.SpaceSize)
			continue
		}
		adv, err := face.GlyphHorizontalMetrics(code)
		if err != nil {
			continue
		}
		width += int(adv) >> 6
	}
	return width
}
