// Package icon holds the RGBA pixel source used for both the window icon and
// the custom cursor, and converts it into the native layouts each windowing
// backend expects.
package icon

import (
	"errors"
	"fmt"
	"image/color"
)

var (
	// ErrInvalidDimensions is returned when a pixel buffer does not hold
	// exactly width*height*4 bytes.
	ErrInvalidDimensions = errors.New("invalid icon dimensions")

	// ErrUnsupportedTarget is returned when an encoding is requested for an
	// unknown backend kind, target or native format.
	ErrUnsupportedTarget = errors.New("unsupported icon target")
)

// BytesPerPixel is the size of one RGBA pixel in the source buffer.
const BytesPerPixel = 4

// defaultPixels is the 3x3 reference bitmap: red, with a transparent pixel at
// index 3 and two yellow pixels in the middle row.
var defaultPixels = [3 * 3 * BytesPerPixel]byte{
	0xFF, 0x00, 0x00, 0xFF, 0xFF, 0x00, 0x00, 0xFF, 0xFF, 0x00, 0x00, 0xFF,
	0xFF, 0x00, 0x00, 0x00, 0xFF, 0xFF, 0x00, 0xFF, 0xFF, 0xFF, 0x00, 0xFF,
	0xFF, 0x00, 0x00, 0xFF, 0xFF, 0x00, 0x00, 0xFF, 0xFF, 0x00, 0x00, 0xFF,
}

// Icon is an immutable RGBA bitmap, row-major, top row first, 8 bits per
// channel, not premultiplied.
type Icon struct {
	width  int
	height int
	pix    []byte
}

// New copies pix into a new Icon.
func New(width, height int, pix []byte) (*Icon, error) {
	if err := CheckDimensions(width, height, len(pix)); err != nil {
		return nil, err
	}
	buf := make([]byte, len(pix))
	copy(buf, pix)
	return &Icon{width: width, height: height, pix: buf}, nil
}

// Default returns the 3x3 reference icon.
func Default() *Icon {
	ic, err := New(3, 3, defaultPixels[:])
	if err != nil {
		panic(err)
	}
	return ic
}

// MaxDimension is the largest accepted width or height. X11 cursor images
// carry 16-bit sizes and hotspots, so no backend can use a larger side.
const MaxDimension = 65535

// CheckDimensions reports ErrInvalidDimensions unless length == width*height*4
// for width and height in [1, MaxDimension].
func CheckDimensions(width, height, length int) error {
	if err := checkSides(width, height); err != nil {
		return err
	}
	need := uint64(width) * uint64(height) * BytesPerPixel
	if length < 0 || need != uint64(length) {
		return fmt.Errorf("%w: %dx%d needs %d bytes, got %d",
			ErrInvalidDimensions, width, height, need, length)
	}
	return nil
}

// checkSides bounds each side before any multiplication so products cannot
// wrap.
func checkSides(width, height int) error {
	if width <= 0 || height <= 0 || width > MaxDimension || height > MaxDimension {
		return fmt.Errorf("%w: %dx%d (each side must be 1..%d)", ErrInvalidDimensions, width, height, MaxDimension)
	}
	return nil
}

// Width returns the icon width in pixels.
func (ic *Icon) Width() int { return ic.width }

// Height returns the icon height in pixels.
func (ic *Icon) Height() int { return ic.height }

// Len returns the number of pixels.
func (ic *Icon) Len() int { return ic.width * ic.height }

// Pix returns a copy of the RGBA bytes.
func (ic *Icon) Pix() []byte {
	out := make([]byte, len(ic.pix))
	copy(out, ic.pix)
	return out
}

// At returns the pixel at column x, row y.
func (ic *Icon) At(x, y int) color.NRGBA {
	i := (y*ic.width + x) * BytesPerPixel
	return color.NRGBA{R: ic.pix[i], G: ic.pix[i+1], B: ic.pix[i+2], A: ic.pix[i+3]}
}

func (ic *Icon) pixel(i int) (r, g, b, a byte) {
	o := i * BytesPerPixel
	return ic.pix[o], ic.pix[o+1], ic.pix[o+2], ic.pix[o+3]
}

// valid guards against zero-value or hand-built icons reaching the codec.
func (ic *Icon) valid() error {
	if ic == nil {
		return fmt.Errorf("%w: nil icon", ErrInvalidDimensions)
	}
	return CheckDimensions(ic.width, ic.height, len(ic.pix))
}
