package ibmf

// cursor walks a byte slice left to right, decoding the little-endian
// integer fields of the IBMF wire format. It never panics: reads past the
// end of the underlying slice set a sticky error and return zero, so a
// parse can run to completion and report one ParseError instead of a bounds
// panic mid-field. Modeled on the teacher's data cursor
// (freetype/truetype/truetype.go), generalized from big-endian TTF fields
// to the little-endian fields IBMF uses.
type cursor struct {
	b   []byte
	pos int
	err error
}

func newCursor(b []byte) *cursor {
	return &cursor{b: b}
}

func (c *cursor) fail(msg string) {
	if c.err == nil {
		c.err = ParseError(msg)
	}
}

func (c *cursor) need(n int) bool {
	if c.err != nil {
		return false
	}
	if c.pos+n > len(c.b) {
		c.fail("unexpected end of face blob")
		return false
	}
	return true
}

func (c *cursor) u8() uint8 {
	if !c.need(1) {
		return 0
	}
	v := c.b[c.pos]
	c.pos++
	return v
}

func (c *cursor) i8() int8 { return int8(c.u8()) }

func (c *cursor) u16() uint16 {
	if !c.need(2) {
		return 0
	}
	v := uint16(c.b[c.pos]) | uint16(c.b[c.pos+1])<<8
	c.pos += 2
	return v
}

func (c *cursor) i16() int16 { return int16(c.u16()) }

func (c *cursor) u32() uint32 {
	if !c.need(4) {
		return 0
	}
	v := uint32(c.b[c.pos]) | uint32(c.b[c.pos+1])<<8 | uint32(c.b[c.pos+2])<<16 | uint32(c.b[c.pos+3])<<24
	c.pos += 4
	return v
}

// bytes returns the next n bytes as a slice into the underlying blob (no
// copy); the caller must not retain it beyond the blob's own lifetime.
func (c *cursor) bytes(n int) []byte {
	if !c.need(n) {
		return nil
	}
	v := c.b[c.pos : c.pos+n]
	c.pos += n
	return v
}

func (c *cursor) skip(n int) {
	c.need(n)
	if c.err == nil {
		c.pos += n
	}
}

// atEnd reports whether the cursor has consumed exactly the whole blob.
func (c *cursor) atEnd() bool {
	return c.err == nil && c.pos == len(c.b)
}
