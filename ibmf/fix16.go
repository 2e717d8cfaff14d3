// Package ibmf parses the IBMF binary face format and implements the glyph
// decoding and ligature/kerning shaping pipeline. It has no notion of a
// display surface; see package tinyfont for drawing and sizing.
package ibmf

import "fmt"

// Fix16 is a signed, 16-bit fixed-point number with 6 fractional bits: the
// value v represents v/64 pixels. It is used for kerning values, glyph
// advances, and any other horizontal metric that the wire format stores in
// sub-pixel precision.
type Fix16 int16

// FromPixels converts a whole pixel count to Fix16.
func FromPixels(px int) Fix16 {
	return Fix16(px << 6)
}

// ToPixels rounds x to the nearest whole pixel, rounding a .5 boundary up,
// computed as (v + 32) >> 6.
func (x Fix16) ToPixels() int {
	return int(x+32) >> 6
}

// String renders x as "whole:frac", e.g. Fix16(80) is "1:016".
func (x Fix16) String() string {
	i, f := int32(x)>>6, int32(x)&0x3f
	if f < 0 {
		f = -f
	}
	return fmt.Sprintf("%d:%03d", i, f)
}
