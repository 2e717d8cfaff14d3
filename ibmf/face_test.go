package ibmf

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

// buildTestFace assembles a 4-glyph synthetic face:
//
//	0: 'A' (mainCode 65), ligKernPgmIndex 0
//	1: 'V' (mainCode 86), no ligKern program
//	2: "AV" ligature result, no ligKern program
//	3: 'Z' (mainCode 90), no ligKern program
//
// ligKern program: step 0 kerns against mainCode 90 (non-stop), step 1
// replaces against mainCode 86 (stop). Glyph 0 against 'Z' kerns; glyph 0
// against 'V' ligates to glyph 2; glyph 0 against anything else falls
// through both steps and reports no kern.
func buildTestFace(t *testing.T) *Face {
	t.Helper()

	b := newFaceBlobBuilder()
	b.header(FaceHeader{
		DPI:        96,
		PointSize:  12,
		LineHeight: 16,
		SpaceSize:  4,
	}, 4, 2, 4)

	// one 1-byte single-black-pixel packet, reused by every glyph.
	packet := packNybbles(1) // dynF=2, n=1 literal run

	b.poolIndex(0, 1, 2, 3)

	b.glyph(testGlyph{width: 1, height: 1, packetLength: 1, advance: FromPixels(5), dynF: 2, firstIsBlack: true, ligKernPgmIndex: 0, mainCode: 65})
	b.glyph(testGlyph{width: 1, height: 1, packetLength: 1, advance: FromPixels(5), dynF: 2, firstIsBlack: true, ligKernPgmIndex: NoLigKernPgm, mainCode: 86})
	b.glyph(testGlyph{width: 1, height: 1, packetLength: 1, advance: FromPixels(8), dynF: 2, firstIsBlack: true, ligKernPgmIndex: NoLigKernPgm, mainCode: 0})
	b.glyph(testGlyph{width: 1, height: 1, packetLength: 1, advance: FromPixels(5), dynF: 2, firstIsBlack: true, ligKernPgmIndex: NoLigKernPgm, mainCode: 90})

	b.pixelPool(append(append(append(append([]byte{}, packet...), packet...), packet...), packet...))

	b.kernStep(90, false, FromPixels(-2))
	b.replaceStep(86, true, 2)

	face, err := parseFace(b.bytesOut(), nil)
	require.NoError(t, err)
	return face
}

func TestParseFaceRoundTrip(t *testing.T) {
	f := buildTestFace(t)
	require.Equal(t, 4, f.GlyphCount())
	require.Equal(t, uint16(96), f.Header.DPI)
	require.Equal(t, uint8(16), f.Header.LineHeight)

	want := FaceHeader{
		DPI:              96,
		PointSize:        12,
		LineHeight:       16,
		SpaceSize:        4,
		GlyphCount:       4,
		LigKernStepCount: 2,
		PixelsPoolSize:   4,
	}
	if diff := cmp.Diff(want, f.Header); diff != "" {
		t.Errorf("parsed FaceHeader mismatch (-want +got):\n%s", diff)
	}
}

func TestParseFaceTrailingBytesIsError(t *testing.T) {
	b := newFaceBlobBuilder()
	b.header(FaceHeader{DPI: 96, SpaceSize: 4}, 0, 0, 0)
	blob := append(b.bytesOut(), 0xFF)
	_, err := parseFace(blob, nil)
	require.Error(t, err)
	var perr ParseError
	require.ErrorAs(t, err, &perr)
}

func TestParseFaceTruncatedIsError(t *testing.T) {
	b := newFaceBlobBuilder()
	b.header(FaceHeader{DPI: 96, SpaceSize: 4}, 1, 0, 0)
	blob := b.bytesOut() // header says 1 glyph but no pool index / glyph info follows
	_, err := parseFace(blob, nil)
	require.Error(t, err)
}

func TestSetDisplayPixelResolutionRejectsEightBitsOnOneBitDisplay(t *testing.T) {
	f := buildTestFace(t)
	f.SetDisplayCapability(OneBit)

	err := f.SetDisplayPixelResolution(EightBits)
	require.Error(t, err)
	var cerr ConfigError
	require.ErrorAs(t, err, &cerr)
}

func TestSetDisplayPixelResolutionWithoutCapabilityAcceptsAnyResolution(t *testing.T) {
	f := buildTestFace(t)
	require.NoError(t, f.SetDisplayPixelResolution(EightBits))
	require.NoError(t, f.SetDisplayPixelResolution(OneBit))
}

func TestSetDisplayPixelResolutionAllowsOneBitOnOneBitDisplay(t *testing.T) {
	f := buildTestFace(t)
	f.SetDisplayCapability(OneBit)
	require.NoError(t, f.SetDisplayPixelResolution(OneBit))
}

func TestGetGlyphWidth(t *testing.T) {
	f := buildTestFace(t)
	require.Equal(t, 1, f.GetGlyphWidth(0))
	require.Equal(t, 4, f.GetGlyphWidth(SpaceCode))
	require.Equal(t, 0, f.GetGlyphWidth(999))
}

func TestGlyphMetricsLookupError(t *testing.T) {
	f := buildTestFace(t)
	_, err := f.GlyphMetrics(999)
	require.Error(t, err)
	var lerr LookupError
	require.ErrorAs(t, err, &lerr)
	require.Equal(t, uint16(999), lerr.Code)
}

func TestGetGlyphDecodesBitmapWhenCaching(t *testing.T) {
	f := buildTestFace(t)
	g, err := f.GetGlyph(0, true, nil, 0, 0, false)
	require.NoError(t, err)
	require.NotNil(t, g.Bitmap)
	require.True(t, g.Bitmap.PixelInk(0, 0))
}

func TestGetGlyphBlitsWhenNotCaching(t *testing.T) {
	f := buildTestFace(t)
	canvas := NewBitmap(4, 4, OneBit)
	g, err := f.GetGlyph(0, false, canvas, 1, 1, false)
	require.NoError(t, err)
	require.Nil(t, g.Bitmap)
	require.True(t, canvas.PixelInk(1, 1))
}

func TestLigKernKernsOnNonLigatureMatch(t *testing.T) {
	f := buildTestFace(t)
	code2 := uint16(3) // 'Z', mainCode 90
	var kern Fix16
	fired := f.LigKern(0, &code2, &kern)
	require.False(t, fired)
	require.Equal(t, FromPixels(-2), kern)
	require.Equal(t, uint16(3), code2) // unchanged
}

func TestLigKernReplacesOnLigatureMatch(t *testing.T) {
	f := buildTestFace(t)
	code2 := uint16(1) // 'V', mainCode 86
	var kern Fix16
	fired := f.LigKern(0, &code2, &kern)
	require.True(t, fired)
	require.Equal(t, uint16(2), code2)
}

func TestLigKernNoMatchStopsWithZeroKern(t *testing.T) {
	f := buildTestFace(t)
	code2 := uint16(2) // "AV" ligature glyph, mainCode 0: matches neither 90 nor 86
	var kern Fix16
	fired := f.LigKern(0, &code2, &kern)
	require.False(t, fired)
	require.Equal(t, Fix16(0), kern)
	require.Equal(t, uint16(2), code2)
}

func TestLigKernNoProgramIsNoOp(t *testing.T) {
	f := buildTestFace(t)
	code2 := uint16(0)
	var kern Fix16
	fired := f.LigKern(1, &code2, &kern) // glyph 1 has NoLigKernPgm
	require.False(t, fired)
	require.Equal(t, Fix16(0), kern)
}

func TestLigKernOutOfRangeCodesAreNoOp(t *testing.T) {
	f := buildTestFace(t)
	code2 := uint16(999)
	var kern Fix16
	fired := f.LigKern(0, &code2, &kern)
	require.False(t, fired)
	require.Equal(t, Fix16(0), kern)
}

func TestGlyphHorizontalMetricsKeepsWideAdvance(t *testing.T) {
	f := buildTestFace(t)
	// glyph 0: width 1px, advance 5px (>= (1+1)<<6), so no widening.
	adv, err := f.GlyphHorizontalMetrics(0)
	require.NoError(t, err)
	require.Equal(t, FromPixels(5), adv)
}
