package ibmf

// Cursor decodes a byte sequence into Unicode codepoints using the strict
// four-length UTF-8 leading-byte classification. On any malformed byte —
// a premature end of input mid-sequence, a leading byte in the
// continuation range, a continuation byte out of range, or an orphan
// continuation — it emits UnknownCodepoint and resynchronizes by
// advancing exactly one byte, then retries from the next byte. This
// produces exactly one UnknownCodepoint event per malformed byte (see
// DESIGN.md's Open Question resolution for why this differs from a
// byte-run-collapsing convention).
//
// Cursor intentionally does not use unicode/utf8.DecodeRune: that
// function's replacement-byte policy collapses a malformed run into a
// single replacement rune in a way that does not reproduce the
// one-event-per-bad-byte contract this format requires.
type Cursor struct {
	b   []byte
	pos int
}

// NewCursor returns a Cursor over b.
func NewCursor(b []byte) *Cursor {
	return &Cursor{b: b}
}

// Next returns the next codepoint and true, or (0, false) once the input
// is exhausted.
func (c *Cursor) Next() (rune, bool) {
	if c.pos >= len(c.b) {
		return 0, false
	}
	return c.decodeOne(), true
}

// decodeOne decodes the codepoint starting at c.pos, always advancing
// c.pos by at least one byte.
func (c *Cursor) decodeOne() rune {
	lead := c.b[c.pos]

	switch {
	case lead < 0x80:
		c.pos++
		return rune(lead)

	case lead&0xE0 == 0xC0:
		return c.decodeMulti(lead&0x1F, 1)

	case lead&0xF0 == 0xE0:
		return c.decodeMulti(lead&0x0F, 2)

	case lead&0xF8 == 0xF0:
		return c.decodeMulti(lead&0x07, 3)

	default:
		// Either a continuation byte (0x80-0xBF) seen where a leading byte
		// was expected, or a byte with no valid leading-byte classification
		// (0xF8-0xFF).
		c.pos++
		return UnknownCodepoint
	}
}

// decodeMulti decodes a multi-byte sequence whose leading byte has already
// been classified as carrying nCont continuation bytes and payload bits
// init. On any malformed continuation byte it backs off to resync by one
// byte from the leading byte, per the cursor's resynchronization policy.
func (c *Cursor) decodeMulti(init byte, nCont int) rune {
	start := c.pos
	if start+nCont >= len(c.b) {
		// Not enough bytes left for the full sequence: premature end.
		c.pos++
		return UnknownCodepoint
	}
	payload := rune(init)
	for i := 1; i <= nCont; i++ {
		cb := c.b[start+i]
		if cb&0xC0 != 0x80 {
			c.pos++
			return UnknownCodepoint
		}
		payload = payload<<6 | rune(cb&0x3F)
	}
	c.pos = start + nCont + 1
	return payload
}
