package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/iconwin/internal/icon"
)

var kinds = []icon.Kind{icon.KindX11, icon.KindCocoa, icon.KindWin32}

var transparentCell = lipgloss.NewStyle().Foreground(lipgloss.Color("238")).Render("··")

// IconTab shows the icon pixel grid next to the native encoding of the
// selected pixel.
type IconTab struct {
	ic   *icon.Icon
	keys keyMap

	kindIdx int
	target  icon.Target
	encoded *icon.NativeImage
	err     error

	// selected pixel
	x, y int
}

// NewIconTab creates an IconTab showing the X11 icon encoding of ic.
func NewIconTab(ic *icon.Icon, keys keyMap) IconTab {
	t := IconTab{ic: ic, keys: keys, target: icon.TargetIcon}
	t.reencode()
	return t
}

// SetIcon replaces the icon, keeping the selection inside its bounds.
func (t *IconTab) SetIcon(ic *icon.Icon) {
	t.ic = ic
	t.x = clamp(t.x, 0, ic.Width()-1)
	t.y = clamp(t.y, 0, ic.Height()-1)
	t.reencode()
}

func (t *IconTab) reencode() {
	t.encoded, t.err = icon.Encode(t.ic, kinds[t.kindIdx], t.target)
}

// Update implements tea.Model.
func (t IconTab) Update(msg tea.Msg) (IconTab, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return t, nil
	}
	switch {
	case key.Matches(km, t.keys.Left):
		t.x = clamp(t.x-1, 0, t.ic.Width()-1)
	case key.Matches(km, t.keys.Right):
		t.x = clamp(t.x+1, 0, t.ic.Width()-1)
	case key.Matches(km, t.keys.Up):
		t.y = clamp(t.y-1, 0, t.ic.Height()-1)
	case key.Matches(km, t.keys.Down):
		t.y = clamp(t.y+1, 0, t.ic.Height()-1)
	case key.Matches(km, t.keys.Backend):
		t.kindIdx = (t.kindIdx + 1) % len(kinds)
		t.reencode()
	case key.Matches(km, t.keys.Target):
		if t.target == icon.TargetIcon {
			t.target = icon.TargetCursor
		} else {
			t.target = icon.TargetIcon
		}
		t.reencode()
	}
	return t, nil
}

// Heading names the encoding currently shown.
func (t IconTab) Heading() string {
	return fmt.Sprintf("%s %s", kinds[t.kindIdx], t.target)
}

// View implements tea.Model.
func (t IconTab) View() string {
	return lipgloss.JoinHorizontal(lipgloss.Top, t.renderGrid(), "    ", t.renderDetail())
}

func (t IconTab) renderGrid() string {
	rows := make([]string, 0, t.ic.Height())
	for y := 0; y < t.ic.Height(); y++ {
		var row strings.Builder
		for x := 0; x < t.ic.Width(); x++ {
			row.WriteString(t.renderCell(x, y))
		}
		rows = append(rows, row.String())
	}
	return strings.Join(rows, "\n")
}

func (t IconTab) renderCell(x, y int) string {
	c := t.ic.At(x, y)
	selected := x == t.x && y == t.y
	if c.A < icon.MaskAlphaThreshold {
		if selected {
			return dimStyle.Render("[]")
		}
		return transparentCell
	}
	style := lipgloss.NewStyle().Background(lipgloss.Color(hexColor(c.R, c.G, c.B)))
	if !selected {
		return style.Render("  ")
	}
	fg := "0"
	if int(c.R)+int(c.G)+int(c.B) < 384 {
		fg = "15"
	}
	return style.Foreground(lipgloss.Color(fg)).Render("[]")
}

func (t IconTab) renderDetail() string {
	c := t.ic.At(t.x, t.y)
	lines := []string{
		titleStyle.Render(fmt.Sprintf("pixel (%d,%d)", t.x, t.y)),
		fmt.Sprintf("source  %02x%02x%02x%02x", c.R, c.G, c.B, c.A),
	}
	if t.err != nil {
		return strings.Join(append(lines, errStyle.Render(t.err.Error())), "\n")
	}
	lines = append(lines,
		fmt.Sprintf("format  %s", t.encoded.Format),
		fmt.Sprintf("native  %s", nativePixel(t.encoded, t.x, t.y)),
	)
	if t.encoded.Mask != nil {
		state := "paint"
		if icon.MaskBit(t.encoded.Mask, t.encoded.Width, t.x, t.y) {
			state = "transparent"
		}
		lines = append(lines, fmt.Sprintf("mask    %s", state))
	}
	return strings.Join(lines, "\n")
}

// nativePixel formats the encoded value of one pixel: a 0xAARRGGBB word for
// the ARGB32 formats and the raw bytes otherwise.
func nativePixel(img *icon.NativeImage, x, y int) string {
	i := y*img.Width + x
	switch img.Format {
	case icon.FormatARGB32Prefixed:
		return fmt.Sprintf("0x%08x", img.Words()[2+i])
	case icon.FormatARGB32Premultiplied:
		return fmt.Sprintf("0x%08x", img.Words()[i])
	}
	o := i * icon.BytesPerPixel
	return fmt.Sprintf("% x", img.Pix[o:o+icon.BytesPerPixel])
}

func hexColor(r, g, b uint8) string {
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
