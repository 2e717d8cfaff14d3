package ibmf

import (
	"fmt"
	"io"
)

// Dump writes a human-readable summary of the face header to w;
// DumpGlyphInfo and DumpLigKern cover the glyph directory and the
// ligature/kerning program. Reintroduced from
// IBMFFace::showFace / showGlyphInfo / showLigKerns, which the original
// repository used for on-device debugging; here it backs cmd/ibmfdump.
func (f *Face) Dump(w io.Writer) {
	h := f.Header
	fmt.Fprintf(w, "face: dpi=%d pointSize=%d lineHeight=%d glyphCount=%d ligKernSteps=%d poolBytes=%d\n",
		h.DPI, h.PointSize, h.LineHeight, h.GlyphCount, h.LigKernStepCount, h.PixelsPoolSize)
	fmt.Fprintf(w, "  xHeight=%s emHeight=%s spaceSize=%d slant=%s descender=%d\n",
		h.XHeight, h.EmHeight, h.SpaceSize, h.SlantCorrection, h.DescenderHeight)
}

// DumpGlyphInfo writes one glyph's directory entry.
func (f *Face) DumpGlyphInfo(w io.Writer, code uint16) {
	if int(code) >= len(f.glyphs) {
		fmt.Fprintf(w, "  glyph %d: out of range\n", code)
		return
	}
	g := f.glyphs[code]
	fmt.Fprintf(w, "  glyph %d: %dx%d hoff=%d voff=%d advance=%s ligKernIdx=%d mainCode=%d\n",
		code, g.BitmapWidth, g.BitmapHeight, g.HorizontalOffset, g.VerticalOffset,
		g.Advance, g.LigKernPgmIndex, g.MainCode)
}

// DumpLigKern writes the ligature/kerning program in order, one step per
// line.
func (f *Face) DumpLigKern(w io.Writer) {
	for i, s := range f.ligKern {
		switch s.Kind {
		case ligKernKind_Goto:
			fmt.Fprintf(w, "  [%d] next=%d stop=%v GOTO %d\n", i, s.NextGlyphCode, s.Stop, s.Displacement)
		case ligKernKind_Kern:
			fmt.Fprintf(w, "  [%d] next=%d stop=%v KERN %s\n", i, s.NextGlyphCode, s.Stop, s.KernValue)
		default:
			fmt.Fprintf(w, "  [%d] next=%d stop=%v REPLACE %d\n", i, s.NextGlyphCode, s.Stop, s.ReplGlyph)
		}
	}
}
