package ibmf

// bundle is one contiguous run of codepoints mapping to a contiguous run of
// glyph codes: codepoint c in [FirstCode, FirstCode+Count) maps to glyph
// code FirstGlyph + (c - FirstCode).
type bundle struct {
	FirstCode  rune
	Count      int
	FirstGlyph uint16
}

// plane is the first level of the two-level translation index: the
// high-order bits of a codepoint select a plane, and the plane owns a
// contiguous run of bundles sorted by FirstCode.
type plane struct {
	Bundles []bundle
}

// translator maps codepoints to glyph codes via the two-level plane/bundle
// index described in IBMFFontData.hpp's planes_/codePointBundles_ tables.
// It is read-only after FontData construction.
type translator struct {
	planes           []plane
	unknownGlyphCode uint16
}

// planeOf returns the plane index for codepoint cp, per the wire format's
// plane size (0x10000 codepoints per plane, matching Unicode's own plane
// size).
func planeOf(cp rune) int { return int(cp >> 16) }

// translate implements Codepoint Translator rule order (spec.md §4.2):
// space-family sentinels, then the zero-width sentinel, then the two-level
// index, then fall back to unknownGlyphCode on a miss.
func (t *translator) translate(cp rune) uint16 {
	if isSpaceCodepoint(cp) {
		return SpaceCode
	}
	if cp == ZeroWidthCodepoint {
		return ZeroWidthCode
	}
	pi := planeOf(cp)
	if pi >= 0 && pi < len(t.planes) {
		if gc, ok := lookupBundle(t.planes[pi].Bundles, cp); ok {
			return gc
		}
	}
	return t.unknownGlyphCode
}

// isSpaceCodepoint reports whether cp is one of the codepoints the
// translator maps to SpaceCode: the ASCII space, NBSP, narrow no-break
// space, or any codepoint in the General Punctuation space-separator block
// U+2000..U+200F.
func isSpaceCodepoint(cp rune) bool {
	switch cp {
	case 0x0020, 0x00A0, 0x202F:
		return true
	}
	return cp >= 0x2000 && cp <= 0x200F
}

// lookupBundle binary-searches bundles (sorted by FirstCode) for one
// covering cp.
func lookupBundle(bundles []bundle, cp rune) (uint16, bool) {
	lo, hi := 0, len(bundles)-1
	for lo <= hi {
		mid := (lo + hi) / 2
		b := bundles[mid]
		switch {
		case cp < b.FirstCode:
			hi = mid - 1
		case cp >= b.FirstCode+rune(b.Count):
			lo = mid + 1
		default:
			return b.FirstGlyph + uint16(cp-b.FirstCode), true
		}
	}
	return 0, false
}
