package ibmf

// Shaper is the capability set the Ligature/Kerning Walker needs from a
// face: translate a codepoint to a glyph code, and run one ligature/
// kerning program step. FontData.Shaper returns one that pairs the
// FontData's translator with a Face's LigKern; an external scalable-font adapter can satisfy
// it too, per spec.md §9's "polymorphism via capability set" note, rather
// than requiring a common base type.
type Shaper interface {
	Translate(cp rune) uint16
	LigKern(code1 uint16, code2 *uint16, kern *Fix16) bool
}

// Tuple is one unit of shaped output: a glyph to draw, the kern to apply
// before it, and its position within its word.
type Tuple struct {
	GlyphCode     uint16
	Kern          Fix16
	FirstWordChar bool
	LastWordChar  bool
}

// Walker is the Ligature/Kerning Walker (spec.md §4.6): a pull iterator
// over a line's shaped tuples. It is re-expressed from the source's
// callback-based Font::ligKernUTF8Map as a lazy sequence per spec.md §9,
// so the drawing and sizing paths can each build their own Walker over
// the same line without sharing mutable captured state.
type Walker struct {
	cursor *Cursor
	shaper Shaper

	g1, g2        uint16
	firstWordChar bool
	wasEndOfWord  bool
	done          bool

	peeked     bool
	peekedCode uint16
}

// NewWalker returns a Walker over line, shaped using shaper.
func NewWalker(line string, shaper Shaper) *Walker {
	w := &Walker{
		cursor:        NewCursor([]byte(line)),
		shaper:        shaper,
		firstWordChar: true,
	}
	w.g1 = w.next()
	w.g2 = w.next()
	return w
}

// next returns the glyph code for the next codepoint in the line, or
// NoGlyphCode once the line is exhausted.
func (w *Walker) next() uint16 {
	r, ok := w.cursor.Next()
	if !ok {
		return NoGlyphCode
	}
	return w.shaper.Translate(r)
}

// Next returns the next shaped tuple and true, or a zero Tuple and false
// once the walker has emitted its last one, per the Running/Done states
// of spec.md §4.8.
func (w *Walker) Next() (Tuple, bool) {
	if w.done || w.g1 == NoGlyphCode {
		w.done = true
		return Tuple{}, false
	}

	if w.wasEndOfWord && w.g1 != SpaceCode {
		w.wasEndOfWord = false
		w.firstWordChar = true
	}

	var kern Fix16
	for w.shaper.LigKern(w.g1, &w.g2, &kern) {
		w.g1 = w.g2
		w.g2 = w.next()
	}

	g3 := w.peek()
	if g3 != NoGlyphCode {
		var k Fix16
		someLig := false
		for w.shaper.LigKern(w.g2, &g3, &k) {
			w.g2 = g3
			g3 = w.consumePeeked()
			someLig = true
		}
		if someLig {
			w.shaper.LigKern(w.g1, &w.g2, &kern)
		}
	}

	lastWordChar := w.g2 == SpaceCode || w.g2 == NoGlyphCode
	tuple := Tuple{
		GlyphCode:     w.g1,
		Kern:          kern,
		FirstWordChar: w.firstWordChar,
		LastWordChar:  lastWordChar,
	}

	w.firstWordChar = false
	if lastWordChar {
		w.wasEndOfWord = true
	}

	// Whatever code the lookahead above left peeked (g3, or the code after
	// the last lookahead ligature) becomes the new g2 without re-reading
	// the cursor — mirrors the source re-dereferencing the same un-advanced
	// iterator position.
	w.g1 = w.g2
	if w.peeked {
		w.g2 = w.peekedCode
		w.peeked = false
	} else {
		w.g2 = w.next()
	}

	return tuple, true
}

// peek and consumePeeked implement the one-codepoint lookahead beyond g2
// that the lookahead-ligature step (spec.md §4.6 step d) needs, without
// disturbing g1/g2. peek is idempotent until consumePeeked is called;
// consumePeeked discards the peeked code (folded into a ligature) and
// peeks the one after it, which stays pending for the next g2.
func (w *Walker) peek() uint16 {
	if w.peeked {
		return w.peekedCode
	}
	w.peekedCode = w.next()
	w.peeked = true
	return w.peekedCode
}

func (w *Walker) consumePeeked() uint16 {
	w.peekedCode = w.next()
	w.peeked = true
	return w.peekedCode
}
