package icon

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// FromHex builds an Icon from one "RRGGBBAA" string per pixel, row-major.
func FromHex(width, height int, pixels []string) (*Icon, error) {
	if err := checkSides(width, height); err != nil {
		return nil, err
	}
	if uint64(width)*uint64(height) != uint64(len(pixels)) {
		return nil, fmt.Errorf("%w: %dx%d with %d pixels", ErrInvalidDimensions, width, height, len(pixels))
	}
	pix := make([]byte, 0, len(pixels)*BytesPerPixel)
	for i, p := range pixels {
		p = strings.TrimPrefix(strings.TrimSpace(p), "#")
		if len(p) != 8 {
			return nil, fmt.Errorf("pixel %d: expected RRGGBBAA, got %q", i, p)
		}
		b, err := hex.DecodeString(p)
		if err != nil {
			return nil, fmt.Errorf("pixel %d: %w", i, err)
		}
		pix = append(pix, b...)
	}
	return New(width, height, pix)
}

// Hex returns the pixels in the form accepted by FromHex.
func (ic *Icon) Hex() []string {
	out := make([]string, ic.Len())
	for i := range out {
		o := i * BytesPerPixel
		out[i] = hex.EncodeToString(ic.pix[o : o+BytesPerPixel])
	}
	return out
}
