package ibmf

import "go.uber.org/zap"

// FaceHeader carries the per-face parameters laid out at the head of a
// face's byte range (spec.md §6.1).
type FaceHeader struct {
	DPI               uint16
	PointSize         uint8
	LineHeight        uint8
	XHeight           Fix16
	EmHeight          Fix16
	SpaceSize         uint8
	GlyphCount        uint16
	LigKernStepCount  uint16
	PixelsPoolSize    uint32
	SlantCorrection   Fix16
	DescenderHeight   uint8
}

// GlyphInfo is one entry of a face's glyph directory.
type GlyphInfo struct {
	BitmapWidth      uint8
	BitmapHeight     uint8
	HorizontalOffset int8
	VerticalOffset   int8
	PacketLength     uint16
	Advance          Fix16
	RLE              RLEMetrics
	LigKernPgmIndex  uint16
	MainCode         uint16
}

// ligKernKind tags the payload carried in the packed field b of a LigKernStep
// (spec.md §6.1).
type ligKernKind int

const (
	ligKernKind_Kern ligKernKind = iota
	ligKernKind_Replace
	ligKernKind_Goto
)

// LigKernStep is one step of a ligature/kerning program.
type LigKernStep struct {
	NextGlyphCode uint16
	Stop          bool

	Kind        ligKernKind
	KernValue   Fix16  // valid when Kind == ligKernKind_Kern
	ReplGlyph   uint16 // valid when Kind == ligKernKind_Replace
	Displacement uint16 // valid when Kind == ligKernKind_Goto
}

func (s LigKernStep) isAKern() bool { return s.Kind == ligKernKind_Kern || s.Kind == ligKernKind_Goto }
func (s LigKernStep) isAGoTo() bool { return s.Kind == ligKernKind_Goto }

// Face owns one point-size of a font: its header, glyph directory, pixel
// pool, and ligature/kerning program. Its pixel pool is a non-owning slice
// into the blob its owning FontData holds (spec.md §9's cyclic-reference
// avoidance note): the blob outlives every Face built from it. The glyph
// directory, pool index and ligKern program are decoded into arrays of
// the Face's own at parse time.
type Face struct {
	Header FaceHeader

	glyphs      []GlyphInfo
	poolIndex   []uint32
	pixelPool   []byte
	ligKern     []LigKernStep

	resolution        PixelResolution
	displayCapability PixelResolution
	capabilitySet     bool
	log               *zap.Logger
}

// parseFace parses one face's contiguous byte range per spec.md §6.1,
// grounded on IBMFFace::load. It requires the cursor to land exactly at
// the end of the supplied range.
func parseFace(blob []byte, log *zap.Logger) (*Face, error) {
	c := newCursor(blob)

	var h FaceHeader
	h.DPI = c.u16()
	h.PointSize = c.u8()
	h.LineHeight = c.u8()
	h.XHeight = Fix16(c.u16())
	h.EmHeight = Fix16(c.u16())
	h.SpaceSize = c.u8()
	h.GlyphCount = c.u16()
	h.LigKernStepCount = c.u16()
	h.PixelsPoolSize = c.u32()
	h.SlantCorrection = Fix16(c.i16())
	h.DescenderHeight = c.u8()

	if c.err != nil {
		return nil, c.err
	}
	if int(h.GlyphCount) >= UTF32MaxGlyphCount {
		return nil, ParseError("glyph count exceeds UTF32MaxGlyphCount")
	}

	poolIndex := make([]uint32, h.GlyphCount)
	for i := range poolIndex {
		poolIndex[i] = c.u32()
	}

	glyphs := make([]GlyphInfo, h.GlyphCount)
	for i := range glyphs {
		g := &glyphs[i]
		g.BitmapWidth = c.u8()
		g.BitmapHeight = c.u8()
		g.HorizontalOffset = c.i8()
		g.VerticalOffset = c.i8()
		g.PacketLength = c.u16()
		g.Advance = Fix16(c.i16())
		rle := c.u8()
		g.RLE = RLEMetrics{
			DynF:               rle & 0x0F,
			FirstIsBlack:       rle&0x10 != 0,
			BeforeAddedOptKern: (rle >> 5) & 0x03,
			AfterAddedOptKern:  rle&0x80 != 0,
		}
		g.LigKernPgmIndex = c.u16()
		g.MainCode = c.u16()
	}

	pixelPool := c.bytes(int(h.PixelsPoolSize))

	ligKern := make([]LigKernStep, h.LigKernStepCount)
	for i := range ligKern {
		a := c.u16()
		b := c.u16()
		step := LigKernStep{
			NextGlyphCode: a & 0x7FFF,
			Stop:          a&0x8000 != 0,
		}
		isAKern := b&0x8000 != 0
		isAGoTo := b&0x4000 != 0
		switch {
		case isAKern && isAGoTo:
			step.Kind = ligKernKind_Goto
			step.Displacement = b & 0x3FFF
		case isAKern:
			// Bit 14 doubles as the isAGoTo discriminant, so a Kern step's
			// value can only safely occupy the remaining 14 bits (0-13):
			// letting it use bit 14 too would make a negative kern
			// indistinguishable from a Goto. See DESIGN.md.
			step.Kind = ligKernKind_Kern
			step.KernValue = signExtend14(b & 0x3FFF)
		default:
			step.Kind = ligKernKind_Replace
			step.ReplGlyph = b & 0x7FFF
		}
		ligKern[i] = step
	}

	if c.err != nil {
		return nil, c.err
	}
	if !c.atEnd() {
		return nil, ParseError("face blob has trailing bytes after ligKern program")
	}

	if log == nil {
		log = zap.NewNop()
	}

	return &Face{
		Header:     h,
		glyphs:     glyphs,
		poolIndex:  poolIndex,
		pixelPool:  pixelPool,
		ligKern:    ligKern,
		resolution: OneBit,
		log:        log,
	}, nil
}

// signExtend14 sign-extends the low 14 bits of v (bit 13 is the sign bit)
// into a Fix16.
func signExtend14(v uint16) Fix16 {
	sv := int32(v)
	if v&0x2000 != 0 {
		sv -= 0x4000
	}
	return Fix16(sv)
}

// GlyphCount returns the number of glyphs this face defines.
func (f *Face) GlyphCount() int { return len(f.glyphs) }

// SetDisplayCapability declares the physical display's fixed maximum bit
// depth: a display reporting OneBit cannot be asked to render 8 bpp
// glyphs. Called once at setup time by the owning display driver; a Face
// that never calls this accepts any resolution subsequent
// SetDisplayPixelResolution calls request. Mutating this concurrently
// with rendering is the caller's responsibility to serialize (spec.md
// §5).
func (f *Face) SetDisplayCapability(res PixelResolution) {
	f.displayCapability = res
	f.capabilitySet = true
}

// SetDisplayPixelResolution sets the bit depth subsequent GetGlyph calls
// decode into. Returns ConfigError (spec.md §7) when res is 8 bpp but
// SetDisplayCapability previously declared the display 1-bpp-only;
// resolution is left unchanged in that case. Mutating this concurrently
// with rendering is the caller's responsibility to serialize (spec.md
// §5).
func (f *Face) SetDisplayPixelResolution(res PixelResolution) error {
	if f.capabilitySet && res == EightBits && f.displayCapability == OneBit {
		return ConfigError("cannot set 8 bpp font pixel resolution on a 1 bpp display")
	}
	f.resolution = res
	return nil
}

// GetGlyphWidth returns the glyph's bitmap width, spaceSize for SpaceCode,
// or 0 for any other unrecognized code.
func (f *Face) GetGlyphWidth(code uint16) int {
	if code == SpaceCode {
		return int(f.Header.SpaceSize)
	}
	if int(code) < len(f.glyphs) {
		return int(f.glyphs[code].BitmapWidth)
	}
	return 0
}

// GetGlyphHOffset returns the glyph's horizontal offset.
func (f *Face) GetGlyphHOffset(code uint16) int {
	if int(code) < len(f.glyphs) {
		return int(f.glyphs[code].HorizontalOffset)
	}
	return 0
}

// GlyphMetrics is the subset of a decoded glyph's properties that does not
// require expanding its RLE packet.
type GlyphMetrics struct {
	XOff      int
	YOff      int
	Descent   int
	Advance   Fix16
	LineHeight int
}

// GlyphMetrics returns a glyph's metrics without decoding its bitmap
// (spec.md §4.4). SpaceCode's advance is spaceSize<<6; any other code
// outside the glyph count is a LookupError.
func (f *Face) GlyphMetrics(code uint16) (GlyphMetrics, error) {
	if code == SpaceCode {
		return GlyphMetrics{
			Advance:    FromPixels(int(f.Header.SpaceSize)),
			LineHeight: int(f.Header.LineHeight),
		}, nil
	}
	if int(code) >= len(f.glyphs) {
		f.log.Warn("glyph metrics lookup miss", zap.Uint16("code", code))
		return GlyphMetrics{}, LookupError{Code: code, GlyphCount: uint16(len(f.glyphs))}
	}
	g := f.glyphs[code]
	descent := int(g.BitmapHeight) - int(g.VerticalOffset)
	if descent < 0 {
		descent = 0
	}
	return GlyphMetrics{
		XOff:       int(g.HorizontalOffset),
		YOff:       int(g.VerticalOffset),
		Descent:    descent,
		Advance:    g.Advance,
		LineHeight: int(f.Header.LineHeight),
	}, nil
}

// GlyphHorizontalMetrics is the cheap, approximate variant of GlyphMetrics
// used by quick-width estimates that skip the ligature/kerning walk
// entirely. Grounded on IBMFFace::getGlyphHorizontalMetrics: when the
// glyph's declared advance is narrower than its own bitmap plus one pixel,
// widen the reported advance by one pixel so tightly-kerned glyphs are not
// clipped in the estimate.
func (f *Face) GlyphHorizontalMetrics(code uint16) (advance Fix16, err error) {
	m, err := f.GlyphMetrics(code)
	if err != nil {
		return 0, err
	}
	width := f.GetGlyphWidth(code)
	if int(m.Advance) < (width+1)<<6 {
		return m.Advance + (1 << 6), nil
	}
	return m.Advance, nil
}

// Glyph is a decoded glyph: metrics plus, when requested, its bitmap.
type Glyph struct {
	Metrics GlyphMetrics
	Bitmap  *Bitmap
}

// GetGlyph decodes glyph code and either hands back a freshly allocated,
// caller-owned Bitmap (caching=true) or blits directly into dst with its
// top-left corner at (atX-horizontalOffset, atY-verticalOffset)
// (caching=false). SpaceCode and
// ZeroWidthCode never carry a bitmap. inverted swaps ink/paper polarity.
func (f *Face) GetGlyph(code uint16, caching bool, dst *Bitmap, atX, atY int, inverted bool) (Glyph, error) {
	m, err := f.GlyphMetrics(code)
	if err != nil {
		return Glyph{}, err
	}
	if code == SpaceCode || code == ZeroWidthCode || int(code) >= len(f.glyphs) {
		return Glyph{Metrics: m}, nil
	}

	g := f.glyphs[code]
	if g.BitmapWidth == 0 || g.BitmapHeight == 0 {
		return Glyph{Metrics: m}, nil
	}

	packet := f.glyphPacket(code)
	local, err := decodeGlyph(packet, int(g.BitmapWidth), int(g.BitmapHeight), g.RLE, f.resolution, inverted)
	if err != nil {
		f.log.Warn("glyph decode failed, skipping glyph", zap.Uint16("code", code), zap.Error(err))
		return Glyph{Metrics: m}, err
	}

	if caching {
		return Glyph{Metrics: m, Bitmap: local}, nil
	}

	blit(dst, atX-int(g.HorizontalOffset), atY-int(g.VerticalOffset), local)
	return Glyph{Metrics: m}, nil
}

// glyphPacket returns the packed RLE bytes for code, bounded by its
// declared packet length.
func (f *Face) glyphPacket(code uint16) []byte {
	g := f.glyphs[code]
	off := int(f.poolIndex[code])
	end := off + int(g.PacketLength)
	if off < 0 || end > len(f.pixelPool) {
		return nil
	}
	return f.pixelPool[off:end]
}

// LigKern executes one ligature/kerning program step for the pair
// (code1, *code2), grounded on IBMFFace::ligKern (spec.md §4.4). It
// returns true when a ligature fired (*code2 now holds the ligature glyph
// that replaces the pair; kern is zero), false otherwise (kern holds the
// pairwise kern, possibly zero).
func (f *Face) LigKern(code1 uint16, code2 *uint16, kern *Fix16) bool {
	*kern = 0
	if int(code1) >= len(f.glyphs) || int(*code2) >= len(f.glyphs) {
		return false
	}
	lkIdx := f.glyphs[code1].LigKernPgmIndex
	if lkIdx == NoLigKernPgm {
		return false
	}
	if int(lkIdx) >= len(f.ligKern) {
		return false
	}
	step := f.ligKern[lkIdx]
	if step.isAKern() && step.isAGoTo() {
		if int(step.Displacement) >= len(f.ligKern) {
			return false
		}
		lkIdx = step.Displacement
		step = f.ligKern[lkIdx]
	}

	mainCode := f.glyphs[*code2].MainCode
	for {
		if step.NextGlyphCode == mainCode {
			switch step.Kind {
			case ligKernKind_Replace:
				*code2 = step.ReplGlyph
				return true
			default:
				*kern = step.KernValue
				return false
			}
		}
		if step.Stop {
			return false
		}
		lkIdx++
		if int(lkIdx) >= len(f.ligKern) {
			return false
		}
		step = f.ligKern[lkIdx]
	}
}
