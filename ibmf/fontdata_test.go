package ibmf

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// fontDataBuilder assembles a whole FontData blob: preamble, face
// byte-range table, plane/bundle translation tables, then the concatenated
// face blobs themselves, mirroring FontData.load's read order.
type fontDataBuilder struct {
	buf []byte
}

func (b *fontDataBuilder) u8(v uint8)   { b.buf = append(b.buf, v) }
func (b *fontDataBuilder) u16(v uint16) { b.buf = append(b.buf, byte(v), byte(v>>8)) }
func (b *fontDataBuilder) u32(v uint32) {
	b.buf = append(b.buf, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
}

// buildFontDataBlob assembles a single-face FontData blob wrapping
// faceBlob, with one plane containing two bundles: 'A' (U+0041) -> glyph 0,
// and UNKNOWN_CODEPOINT -> glyph 99 (the font's "missing glyph").
func buildFontDataBlob(faceBlob []byte) []byte {
	var b fontDataBuilder
	b.buf = append(b.buf, magic[:]...)
	b.u8(1) // format version
	b.u8(1) // face count

	// The face's start offset within the blob. The preamble is:
	// magic(4) + version(1) + faceCount(1) + offsets(4*1) + lengths(4*1)
	// + planeCount(2) + bundleCount(2) + 2*(FirstCode(4)+Count(2)+FirstGlyph(2)).
	preambleLen := 4 + 1 + 1 + 4 + 4 + 2 + 2 + 2*(4+2+2)
	b.u32(uint32(preambleLen))  // face 0 offset
	b.u32(uint32(len(faceBlob))) // face 0 length

	b.u16(1) // plane count
	b.u16(2) // bundle count in plane 0

	b.u32(uint32('A'))
	b.u16(1) // count
	b.u16(0) // firstGlyph

	b.u32(uint32(UnknownCodepoint))
	b.u16(1)  // count
	b.u16(99) // firstGlyph

	b.buf = append(b.buf, faceBlob...)
	return b.buf
}

func TestFontDataLoadConsumesExactlyDeclaredLength(t *testing.T) {
	faceBlob := newFaceBlobBuilder()
	faceBlob.header(FaceHeader{DPI: 96, SpaceSize: 4}, 0, 0, 0)

	blob := buildFontDataBlob(faceBlob.bytesOut())
	fd, err := NewFontData(blob, nil)
	require.NoError(t, err)
	require.True(t, fd.IsInitialized())
	require.Equal(t, 1, fd.GetFaceCount())
}

func TestFontDataTruncatedFaceRangeIsParseError(t *testing.T) {
	faceBlob := newFaceBlobBuilder()
	faceBlob.header(FaceHeader{DPI: 96, SpaceSize: 4}, 0, 0, 0)

	blob := buildFontDataBlob(faceBlob.bytesOut())
	truncated := blob[:len(blob)-1] // chop the last byte of the (empty) face body...
	_, err := NewFontData(truncated, nil)
	require.Error(t, err)
}

func TestFontDataBadMagicIsParseError(t *testing.T) {
	faceBlob := newFaceBlobBuilder()
	faceBlob.header(FaceHeader{DPI: 96, SpaceSize: 4}, 0, 0, 0)
	blob := buildFontDataBlob(faceBlob.bytesOut())
	blob[0] = 'X'

	fd, err := NewFontData(blob, nil)
	require.Error(t, err)
	require.False(t, fd.IsInitialized())
}

func TestFontDataTranslateHitsAndMisses(t *testing.T) {
	faceBlob := newFaceBlobBuilder()
	faceBlob.header(FaceHeader{DPI: 96, SpaceSize: 4}, 0, 0, 0)
	blob := buildFontDataBlob(faceBlob.bytesOut())

	fd, err := NewFontData(blob, nil)
	require.NoError(t, err)

	require.Equal(t, uint16(0), fd.Translate('A'))
	require.Equal(t, SpaceCode, fd.Translate(' '))
	require.Equal(t, ZeroWidthCode, fd.Translate(0xFEFF))
	require.Equal(t, uint16(99), fd.Translate('Z')) // miss falls back to unknownGlyphCode (99)
}

func TestFontDataGetFaceClampsOutOfRange(t *testing.T) {
	faceBlob := newFaceBlobBuilder()
	faceBlob.header(FaceHeader{DPI: 96, SpaceSize: 4}, 0, 0, 0)
	blob := buildFontDataBlob(faceBlob.bytesOut())

	fd, err := NewFontData(blob, nil)
	require.NoError(t, err)
	require.NotNil(t, fd.GetFace(0))
	require.Same(t, fd.GetFace(0), fd.GetFace(5))
	require.Same(t, fd.GetFace(0), fd.GetFace(-1))
}
