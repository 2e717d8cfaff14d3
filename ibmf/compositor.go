package ibmf

// Blit composites src onto dst with src's top-left corner placed at
// (atX, atY) in dst's coordinate space. Pixels of src that fall outside
// dst are silently clipped, matching a caller-owned canvas that may be
// smaller than the line being drawn. Polarity has already been applied by
// decodeGlyph's inverted flag; Blit copies every src pixel, ink and paper
// alike, and never inverts.
//
// This is the Compositor's blit primitive (spec.md §4.7, §8 "Compositor
// masking"); package tinyfont exposes it to callers compositing a cached
// Glyph.Bitmap onto their own canvas, and Face.GetGlyph uses it directly
// for its caching=false path.
func Blit(dst *Bitmap, atX, atY int, src *Bitmap) {
	if src == nil || dst == nil {
		return
	}
	for y := 0; y < src.Height; y++ {
		dy := atY + y
		if dy < 0 || dy >= dst.Height {
			continue
		}
		for x := 0; x < src.Width; x++ {
			dx := atX + x
			if dx < 0 || dx >= dst.Width {
				continue
			}
			dst.setPixel(dx, dy, src.pixelInk(x, y), false)
		}
	}
}

func blit(dst *Bitmap, atX, atY int, src *Bitmap) { Blit(dst, atX, atY, src) }

// PixelInk reports whether the pixel at (x, y) is ink (as opposed to
// paper), independent of the bitmap's resolution.
func (b *Bitmap) PixelInk(x, y int) bool { return b.pixelInk(x, y) }

// pixelInk reports whether the pixel at (x, y) is ink (as opposed to
// paper), independent of the bitmap's resolution.
func (b *Bitmap) pixelInk(x, y int) bool {
	switch b.Resolution {
	case EightBits:
		return b.Pixels[y*b.Pitch+x] == 0
	default:
		idx := y*b.Pitch + x/8
		mask := byte(0x80 >> uint(x%8))
		return b.Pixels[idx]&mask != 0
	}
}

// Invert bitwise-negates every pixel of b in place: ink becomes paper and
// vice versa. Used to verify the inversion-involution testable property
// (spec.md §8).
func (b *Bitmap) Invert() {
	if b.Resolution == EightBits {
		for i, v := range b.Pixels {
			b.Pixels[i] = 255 - v
		}
		return
	}
	for i, v := range b.Pixels {
		b.Pixels[i] = ^v
	}
}
