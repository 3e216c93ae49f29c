package icon

// MaskAlphaThreshold is the alpha value below which a pixel is marked
// transparent in a derived mask.
const MaskAlphaThreshold = 128

// MaskStride returns the bytes per mask row for width pixels. Rows are padded
// to 16-bit boundaries as monochrome bitmaps require.
func MaskStride(width int) int {
	return (width + 15) / 16 * 2
}

// Mask builds a 1bpp AND mask, most significant bit first. A zero bit means
// "paint the color plane here". When alphaInColor is true the color plane
// carries alpha itself and every bit is zero. Otherwise a bit is set for each
// pixel whose alpha is below MaskAlphaThreshold.
func Mask(ic *Icon, alphaInColor bool) []byte {
	stride := MaskStride(ic.width)
	mask := make([]byte, stride*ic.height)
	if alphaInColor {
		return mask
	}
	for y := 0; y < ic.height; y++ {
		for x := 0; x < ic.width; x++ {
			_, _, _, a := ic.pixel(y*ic.width + x)
			if a < MaskAlphaThreshold {
				mask[y*stride+x/8] |= 0x80 >> uint(x%8)
			}
		}
	}
	return mask
}

// MaskBit reports whether the mask bit for (x, y) is set (transparent).
func MaskBit(mask []byte, width, x, y int) bool {
	stride := MaskStride(width)
	return mask[y*stride+x/8]&(0x80>>uint(x%8)) != 0
}
