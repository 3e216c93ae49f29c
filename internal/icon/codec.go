package icon

import (
	"encoding/binary"
	"fmt"
	"image"
)

// Kind identifies the native windowing substrate an image is encoded for.
type Kind int

const (
	KindX11 Kind = iota + 1
	KindCocoa
	KindWin32
)

func (k Kind) String() string {
	switch k {
	case KindX11:
		return "x11"
	case KindCocoa:
		return "cocoa"
	case KindWin32:
		return "win32"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind converts a backend name to a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "x11":
		return KindX11, nil
	case "cocoa":
		return KindCocoa, nil
	case "win32":
		return KindWin32, nil
	}
	return 0, fmt.Errorf("%w: backend %q", ErrUnsupportedTarget, s)
}

// Target selects what the encoded image is used for.
type Target int

const (
	TargetIcon Target = iota + 1
	TargetCursor
)

func (t Target) String() string {
	switch t {
	case TargetIcon:
		return "icon"
	case TargetCursor:
		return "cursor"
	default:
		return fmt.Sprintf("target(%d)", int(t))
	}
}

// ParseTarget converts "icon" or "cursor" to a Target.
func ParseTarget(s string) (Target, error) {
	switch s {
	case "icon":
		return TargetIcon, nil
	case "cursor":
		return TargetCursor, nil
	}
	return 0, fmt.Errorf("%w: target %q", ErrUnsupportedTarget, s)
}

// Format is the byte layout of a NativeImage.
type Format int

const (
	// FormatRGBA is a byte-exact copy of the source: R, G, B, A per pixel,
	// not premultiplied.
	FormatRGBA Format = iota + 1
	// FormatARGB32Prefixed is the _NET_WM_ICON layout: width, height, then one
	// 0xAARRGGBB word per pixel, each word stored little-endian.
	FormatARGB32Prefixed
	// FormatARGB32Premultiplied holds one premultiplied 0xAARRGGBB word per
	// pixel, stored little-endian.
	FormatARGB32Premultiplied
	// FormatBGRAWithMask is a top-down 32bpp B, G, R, A color plane plus a
	// 1bpp AND mask in Mask.
	FormatBGRAWithMask
)

func (f Format) String() string {
	switch f {
	case FormatRGBA:
		return "rgba"
	case FormatARGB32Prefixed:
		return "argb32-prefixed"
	case FormatARGB32Premultiplied:
		return "argb32-premultiplied"
	case FormatBGRAWithMask:
		return "bgra+mask"
	default:
		return fmt.Sprintf("format(%d)", int(f))
	}
}

// NativeImage is an Icon converted for one backend and target. The receiver
// of a NativeImage owns it; the source Icon is never shared with it.
type NativeImage struct {
	Kind    Kind
	Target  Target
	Format  Format
	Width   int
	Height  int
	Hotspot image.Point
	Pix     []byte
	Mask    []byte
}

// Words decodes Pix as little-endian 32-bit words. It is only meaningful for
// the ARGB32 formats.
func (n *NativeImage) Words() []uint32 {
	words := make([]uint32, len(n.Pix)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(n.Pix[i*4:])
	}
	return words
}

// FormatFor returns the native layout used for kind and target.
func FormatFor(kind Kind, target Target) (Format, error) {
	if target != TargetIcon && target != TargetCursor {
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedTarget, target)
	}
	switch kind {
	case KindX11:
		if target == TargetCursor {
			return FormatARGB32Premultiplied, nil
		}
		return FormatARGB32Prefixed, nil
	case KindCocoa:
		return FormatRGBA, nil
	case KindWin32:
		return FormatBGRAWithMask, nil
	}
	return 0, fmt.Errorf("%w: %s", ErrUnsupportedTarget, kind)
}

// Encode converts ic into the native representation for kind and target.
// It never mutates ic and returns identical bytes for identical input.
func Encode(ic *Icon, kind Kind, target Target) (*NativeImage, error) {
	if err := ic.valid(); err != nil {
		return nil, err
	}
	format, err := FormatFor(kind, target)
	if err != nil {
		return nil, err
	}

	img := &NativeImage{
		Kind:   kind,
		Target: target,
		Format: format,
		Width:  ic.width,
		Height: ic.height,
	}

	switch format {
	case FormatRGBA:
		img.Pix = ic.Pix()
	case FormatARGB32Prefixed:
		img.Pix = encodeNetWMIcon(ic)
	case FormatARGB32Premultiplied:
		img.Pix = encodePremultiplied(ic)
	case FormatBGRAWithMask:
		img.Pix = encodeBGRA(ic)
		img.Mask = Mask(ic, true)
	}
	return img, nil
}

// ARGB packs one pixel as a 0xAARRGGBB word.
func ARGB(r, g, b, a byte) uint32 {
	return uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// Premultiply scales c by a/255, truncating.
func Premultiply(c, a byte) byte {
	return byte(uint32(c) * uint32(a) / 255)
}

func encodeNetWMIcon(ic *Icon) []byte {
	out := make([]byte, (2+ic.Len())*4)
	binary.LittleEndian.PutUint32(out[0:], uint32(ic.width))
	binary.LittleEndian.PutUint32(out[4:], uint32(ic.height))
	for i := 0; i < ic.Len(); i++ {
		r, g, b, a := ic.pixel(i)
		binary.LittleEndian.PutUint32(out[(2+i)*4:], ARGB(r, g, b, a))
	}
	return out
}

func encodePremultiplied(ic *Icon) []byte {
	out := make([]byte, ic.Len()*4)
	for i := 0; i < ic.Len(); i++ {
		r, g, b, a := ic.pixel(i)
		word := ARGB(Premultiply(r, a), Premultiply(g, a), Premultiply(b, a), a)
		binary.LittleEndian.PutUint32(out[i*4:], word)
	}
	return out
}

func encodeBGRA(ic *Icon) []byte {
	out := make([]byte, ic.Len()*4)
	for i := 0; i < ic.Len(); i++ {
		r, g, b, a := ic.pixel(i)
		o := i * 4
		out[o], out[o+1], out[o+2], out[o+3] = b, g, r, a
	}
	return out
}

// Decode recovers straight RGBA pixels from a NativeImage. Formats that carry
// premultiplied color are un-premultiplied with rounding, so non-opaque
// pixels may differ from the source by one unit.
func Decode(img *NativeImage) (*Icon, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: nil image", ErrInvalidDimensions)
	}
	if err := checkSides(img.Width, img.Height); err != nil {
		return nil, err
	}
	n := img.Width * img.Height
	pix := make([]byte, n*BytesPerPixel)

	switch img.Format {
	case FormatRGBA:
		if len(img.Pix) != len(pix) {
			return nil, fmt.Errorf("%w: rgba payload %d bytes", ErrInvalidDimensions, len(img.Pix))
		}
		copy(pix, img.Pix)
	case FormatARGB32Prefixed:
		words := img.Words()
		if len(words) != n+2 || int(words[0]) != img.Width || int(words[1]) != img.Height {
			return nil, fmt.Errorf("%w: malformed icon property", ErrInvalidDimensions)
		}
		for i, w := range words[2:] {
			putARGB(pix[i*4:], w, false)
		}
	case FormatARGB32Premultiplied:
		words := img.Words()
		if len(words) != n {
			return nil, fmt.Errorf("%w: cursor payload %d words", ErrInvalidDimensions, len(words))
		}
		for i, w := range words {
			putARGB(pix[i*4:], w, true)
		}
	case FormatBGRAWithMask:
		if len(img.Pix) != len(pix) {
			return nil, fmt.Errorf("%w: bgra payload %d bytes", ErrInvalidDimensions, len(img.Pix))
		}
		for i := 0; i < n; i++ {
			o := i * 4
			pix[o], pix[o+1], pix[o+2], pix[o+3] = img.Pix[o+2], img.Pix[o+1], img.Pix[o], img.Pix[o+3]
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedTarget, img.Format)
	}
	return New(img.Width, img.Height, pix)
}

func putARGB(dst []byte, w uint32, premultiplied bool) {
	a := byte(w >> 24)
	r, g, b := byte(w>>16), byte(w>>8), byte(w)
	if premultiplied {
		r, g, b = unpremultiply(r, a), unpremultiply(g, a), unpremultiply(b, a)
	}
	dst[0], dst[1], dst[2], dst[3] = r, g, b, a
}

func unpremultiply(c, a byte) byte {
	if a == 0 {
		return 0
	}
	v := (uint32(c)*255 + uint32(a)/2) / uint32(a)
	if v > 255 {
		v = 255
	}
	return byte(v)
}
