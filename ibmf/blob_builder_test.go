package ibmf

// faceBlobBuilder assembles a well-formed face byte range field by field,
// mirroring parseFace's read order exactly so tests can construct synthetic
// faces without a real .ibmf fixture.
type faceBlobBuilder struct {
	buf []byte

	glyphCount       int
	ligKernStepCount int
}

func newFaceBlobBuilder() *faceBlobBuilder {
	return &faceBlobBuilder{}
}

func (b *faceBlobBuilder) u8(v uint8)   { b.buf = append(b.buf, v) }
func (b *faceBlobBuilder) i8(v int8)    { b.u8(uint8(v)) }
func (b *faceBlobBuilder) u16(v uint16) { b.buf = append(b.buf, byte(v), byte(v>>8)) }
func (b *faceBlobBuilder) i16(v int16)  { b.u16(uint16(v)) }
func (b *faceBlobBuilder) u32(v uint32) {
	b.buf = append(b.buf, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
}
func (b *faceBlobBuilder) bytes(v []byte) { b.buf = append(b.buf, v...) }

// header writes the FaceHeader. Call first.
func (b *faceBlobBuilder) header(h FaceHeader, glyphCount, ligKernStepCount int, poolSize uint32) {
	b.glyphCount = glyphCount
	b.ligKernStepCount = ligKernStepCount
	b.u16(h.DPI)
	b.u8(h.PointSize)
	b.u8(h.LineHeight)
	b.u16(uint16(h.XHeight))
	b.u16(uint16(h.EmHeight))
	b.u8(h.SpaceSize)
	b.u16(uint16(glyphCount))
	b.u16(uint16(ligKernStepCount))
	b.u32(poolSize)
	b.i16(int16(h.SlantCorrection))
	b.u8(h.DescenderHeight)
}

func (b *faceBlobBuilder) poolIndex(offsets ...uint32) {
	for _, off := range offsets {
		b.u32(off)
	}
}

type testGlyph struct {
	width, height     uint8
	hOff, vOff        int8
	packetLength      uint16
	advance           Fix16
	dynF              uint8
	firstIsBlack      bool
	ligKernPgmIndex   uint16
	mainCode          uint16
}

func (b *faceBlobBuilder) glyph(g testGlyph) {
	b.u8(g.width)
	b.u8(g.height)
	b.i8(g.hOff)
	b.i8(g.vOff)
	b.u16(g.packetLength)
	b.i16(int16(g.advance))
	rle := g.dynF & 0x0F
	if g.firstIsBlack {
		rle |= 0x10
	}
	b.u8(rle)
	b.u16(g.ligKernPgmIndex)
	b.u16(g.mainCode)
}

func (b *faceBlobBuilder) pixelPool(p []byte) { b.bytes(p) }

// kernStep appends a plain kerning step. The kern magnitude is limited to
// 14 signed bits (see signExtend14 in face.go): bit 14 of field b is
// reserved for the isAGoTo discriminant even on non-Goto steps.
func (b *faceBlobBuilder) kernStep(nextGlyphCode uint16, stop bool, kern Fix16) {
	a := nextGlyphCode & 0x7FFF
	if stop {
		a |= 0x8000
	}
	b.u16(a)
	kv := uint16(kern) & 0x3FFF
	b.u16(kv | 0x8000)
}

// replaceStep appends a ligature-replacement step.
func (b *faceBlobBuilder) replaceStep(nextGlyphCode uint16, stop bool, replGlyph uint16) {
	a := nextGlyphCode & 0x7FFF
	if stop {
		a |= 0x8000
	}
	b.u16(a)
	b.u16(replGlyph & 0x7FFF)
}

// gotoStep appends a goto redirect step.
func (b *faceBlobBuilder) gotoStep(nextGlyphCode uint16, stop bool, displacement uint16) {
	a := nextGlyphCode & 0x7FFF
	if stop {
		a |= 0x8000
	}
	b.u16(a)
	b.u16((displacement & 0x3FFF) | 0xC000)
}

func (b *faceBlobBuilder) bytesOut() []byte { return b.buf }
