package tinyfont

// ellipsis is the Unicode ellipsis character appended to a truncated line.
const ellipsis = "…"

// TruncateToWidth truncates line and appends an ellipsis, returning line
// unchanged if it already fits within maxWidth pixels when drawn with f.
// Grounded on TextTruncation.cpp's TruncateStringToFitEstimateImpl, the
// variant the source actually wires up as TruncateStringToFit: guess a cut
// point from the line's average glyph width, then walk outward one
// codepoint at a time until the width of the kept text plus the width of
// the ellipsis, each measured on its own, just fits. The width of the
// joined result is not measured and can exceed maxWidth, since kerning
// and the last-character advance rule apply differently to the joined
// string.
func TruncateToWidth(f *Font, line string, maxWidth int) string {
	runes := []rune(line)
	if len(runes) == 0 {
		return line
	}

	fullWidth := f.GetTextWidth(line)
	if fullWidth <= maxWidth {
		return line
	}

	ellipsisWidth := f.GetTextWidth(ellipsis)

	estimatedEnd := len(runes)*maxWidth/fullWidth - 2
	if estimatedEnd < 0 {
		estimatedEnd = 0
	}
	if estimatedEnd > len(runes) {
		estimatedEnd = len(runes)
	}

	w := f.GetTextWidth(string(runes[:estimatedEnd]))
	up := w+ellipsisWidth < maxWidth

	for {
		if up {
			if estimatedEnd >= len(runes) {
				break
			}
			estimatedEnd++
		} else {
			if estimatedEnd <= 0 {
				break
			}
			estimatedEnd--
		}
		w = f.GetTextWidth(string(runes[:estimatedEnd])) + ellipsisWidth

		if up && w > maxWidth {
			estimatedEnd--
			break
		}
		if !up && w < maxWidth {
			break
		}
	}

	if estimatedEnd < 0 {
		estimatedEnd = 0
	}
	return string(runes[:estimatedEnd]) + ellipsis
}
