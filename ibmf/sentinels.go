package ibmf

// Reserved glyph codes. Glyph codes are 16-bit; implementations must not
// reuse these values for a real glyph.
const (
	ZeroWidthCode uint16 = 0x7FFD
	SpaceCode     uint16 = 0x7FFE
	NoGlyphCode   uint16 = 0x7FFF
)

// NoLigKernPgm marks a glyph with no ligature/kerning program.
const NoLigKernPgm uint16 = 0xFFFF

// UnknownCodepoint is the sentinel codepoint the UTF8 Cursor emits for a
// malformed byte sequence.
const UnknownCodepoint rune = 0xE05E

// ZeroWidthCodepoint (U+FEFF) translates to ZeroWidthCode.
const ZeroWidthCodepoint rune = 0xFEFF

// UTF32MaxGlyphCount bounds the glyph directory; a face whose glyphCount
// meets or exceeds this value is rejected at load time.
const UTF32MaxGlyphCount = 0x10000
