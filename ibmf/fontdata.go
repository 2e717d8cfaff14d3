package ibmf

import "go.uber.org/zap"

// magic identifies an IBMF blob. Implementations are free to define the
// exact preamble layout (spec.md §6.1 item 1); this one is a fixed magic
// tag, a format version, a table of face byte-ranges, and the plane/bundle
// translation tables, all ahead of the first face's bytes.
var magic = [4]byte{'I', 'B', 'M', 'F'}

// FontData owns a whole IBMF blob: every face it contains and the
// codepoint translator built from the blob's plane/bundle tables. It is
// immutable after NewFontData returns; the sole exception is each Face's display
// resolution (spec.md §5).
type FontData struct {
	blob        []byte
	faces       []*Face
	translator  translator
	initialized bool
	log         *zap.Logger
}

// NewFontData parses blob and returns a FontData. A malformed blob is
// reported once here; per spec.md §7 there is no local recovery — the
// caller decides whether to retry with different bytes. log may be nil.
func NewFontData(blob []byte, log *zap.Logger) (*FontData, error) {
	if log == nil {
		log = zap.NewNop()
	}
	fd := &FontData{blob: blob, log: log}
	if err := fd.load(); err != nil {
		log.Error("ibmf font load failed", zap.Error(err))
		return fd, err
	}
	fd.initialized = true
	return fd, nil
}

// IsInitialized reports whether NewFontData completed without a ParseError.
func (fd *FontData) IsInitialized() bool { return fd.initialized }

func (fd *FontData) load() error {
	c := newCursor(fd.blob)

	var gotMagic [4]byte
	copy(gotMagic[:], c.bytes(4))
	if c.err != nil {
		return c.err
	}
	if gotMagic != magic {
		return ParseError("bad magic in preamble")
	}
	_ = c.u8() // format version, reserved for future wire revisions
	faceCount := c.u8()

	type faceRange struct{ offset, length uint32 }
	ranges := make([]faceRange, faceCount)
	for i := range ranges {
		ranges[i].offset = c.u32()
	}
	for i := range ranges {
		ranges[i].length = c.u32()
	}

	planeCount := c.u16()
	planes := make([]plane, planeCount)
	for i := range planes {
		bundleCount := c.u16()
		bundles := make([]bundle, bundleCount)
		for j := range bundles {
			bundles[j] = bundle{
				FirstCode:  rune(c.u32()),
				Count:      int(c.u16()),
				FirstGlyph: c.u16(),
			}
		}
		planes[i] = plane{Bundles: bundles}
	}
	if c.err != nil {
		return c.err
	}
	// The header region runs from the start of the blob to the first face.
	headerEnd := len(fd.blob)
	for _, r := range ranges {
		if int(r.offset) < headerEnd {
			headerEnd = int(r.offset)
		}
	}
	if c.pos != headerEnd {
		return ParseError("preamble and translation tables do not exactly span the blob header region")
	}

	fd.faces = make([]*Face, faceCount)
	for i, r := range ranges {
		start, end := int(r.offset), int(r.offset+r.length)
		if start < 0 || end > len(fd.blob) || start > end {
			return ParseError("face byte range out of bounds")
		}
		f, err := parseFace(fd.blob[start:end], fd.log)
		if err != nil {
			return err
		}
		fd.faces[i] = f
	}

	fd.translator = translator{planes: planes}
	fd.translator.unknownGlyphCode = fd.translator.translate(UnknownCodepoint)
	return nil
}

// GetFaceCount returns the number of faces this blob defines.
func (fd *FontData) GetFaceCount() int { return len(fd.faces) }

// GetFace returns the face at index i, clamping to the last available face
// when i is out of range rather than failing (spec.md §4.5).
func (fd *FontData) GetFace(i int) *Face {
	if len(fd.faces) == 0 {
		return nil
	}
	if i < 0 {
		i = 0
	}
	if i >= len(fd.faces) {
		i = len(fd.faces) - 1
	}
	return fd.faces[i]
}

// Translate maps codepoint cp to a glyph code per spec.md §4.2.
func (fd *FontData) Translate(cp rune) uint16 {
	if !fd.initialized {
		return fd.translator.unknownGlyphCode
	}
	return fd.translator.translate(cp)
}

// Shaper returns the Walker capability set for faceIndex: translation
// comes from FontData (shared by every face), ligature/kerning from the
// selected Face.
func (fd *FontData) Shaper(faceIndex int) Shaper {
	return &faceShaper{fd: fd, face: fd.GetFace(faceIndex)}
}

type faceShaper struct {
	fd   *FontData
	face *Face
}

func (s *faceShaper) Translate(cp rune) uint16 { return s.fd.Translate(cp) }

func (s *faceShaper) LigKern(code1 uint16, code2 *uint16, kern *Fix16) bool {
	if s.face == nil {
		*kern = 0
		return false
	}
	return s.face.LigKern(code1, code2, kern)
}
