package main

import (
	"flag"
	"fmt"
	"image"
	"io"
	"os"
	"strings"

	"github.com/1broseidon/iconwin/internal/config"
	"github.com/1broseidon/iconwin/internal/icon"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

func printIconUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  iconwin icon inspect [--path PATH] [--kind x11|cocoa|win32] [--target icon|cursor]")
	fmt.Fprintln(w, "  iconwin icon preview [--path PATH] [--scale N] [--plain]")
}

func runIcon(args []string) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		printIconUsage(os.Stderr)
		return 2
	}

	switch args[0] {
	case "inspect":
		return runIconInspect(args[1:])
	case "preview":
		return runIconPreview(args[1:])
	default:
		fmt.Fprintf(os.Stderr, "Unknown icon subcommand: %s\n", args[0])
		return 2
	}
}

func runIconInspect(args []string) int {
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("path", "", "Config file path (default: ~/.config/iconwin/config.yaml)")
	kindName := fs.String("kind", "x11", "Backend encoding: x11, cocoa, win32")
	targetName := fs.String("target", "icon", "Encoding target: icon, cursor")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	kind, err := icon.ParseKind(*kindName)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	target, err := icon.ParseTarget(*targetName)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	res, err := loadConfig(*path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	img, err := encodeConfigured(res.Config, kind, target)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	writeInspect(os.Stdout, img)
	return 0
}

func runIconPreview(args []string) int {
	fs := flag.NewFlagSet("preview", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("path", "", "Config file path (default: ~/.config/iconwin/config.yaml)")
	scale := fs.Int("scale", 0, "Terminal cells per pixel (default: fit to terminal width)")
	plain := fs.Bool("plain", false, "Print RRGGBBAA rows instead of colored blocks")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	ic, err := configuredIcon(*path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	fd := int(os.Stdout.Fd())
	if *plain || !term.IsTerminal(fd) {
		writeHexRows(os.Stdout, ic)
		return 0
	}
	s := *scale
	if s <= 0 {
		s = 1
		if width, _, err := term.GetSize(fd); err == nil {
			s = fitScale(width, ic.Width())
		}
	}
	writeBlocks(os.Stdout, ic, s)
	return 0
}

// encodeConfigured encodes the configured icon. Cursor images carry the
// configured hotspot, as they do when the window runs.
func encodeConfigured(cfg *config.Config, kind icon.Kind, target icon.Target) (*icon.NativeImage, error) {
	ic, err := cfg.BuildIcon()
	if err != nil {
		return nil, err
	}
	img, err := icon.Encode(ic, kind, target)
	if err != nil {
		return nil, err
	}
	if target == icon.TargetCursor {
		img.Hotspot = image.Pt(cfg.Hotspot.X, cfg.Hotspot.Y)
	}
	return img, nil
}

func configuredIcon(path string) (*icon.Icon, error) {
	res, err := loadConfig(path)
	if err != nil {
		return nil, err
	}
	return res.Config.BuildIcon()
}

// writeInspect prints the encoded image. ARGB32 formats are shown as words,
// the others as 4-byte groups per pixel.
func writeInspect(w io.Writer, img *icon.NativeImage) {
	fmt.Fprintf(w, "kind: %s\n", img.Kind)
	fmt.Fprintf(w, "target: %s\n", img.Target)
	fmt.Fprintf(w, "format: %s\n", img.Format)
	fmt.Fprintf(w, "size: %dx%d\n", img.Width, img.Height)
	if img.Target == icon.TargetCursor {
		fmt.Fprintf(w, "hotspot: %d,%d\n", img.Hotspot.X, img.Hotspot.Y)
	}

	fmt.Fprintln(w, "pixels:")
	switch img.Format {
	case icon.FormatARGB32Prefixed, icon.FormatARGB32Premultiplied:
		words := img.Words()
		if img.Format == icon.FormatARGB32Prefixed {
			fmt.Fprintf(w, "  header: %d %d\n", words[0], words[1])
			words = words[2:]
		}
		for y := 0; y < img.Height; y++ {
			row := make([]string, img.Width)
			for x := range row {
				row[x] = fmt.Sprintf("0x%08x", words[y*img.Width+x])
			}
			fmt.Fprintf(w, "  %s\n", strings.Join(row, " "))
		}
	default:
		for y := 0; y < img.Height; y++ {
			row := make([]string, img.Width)
			for x := range row {
				o := (y*img.Width + x) * icon.BytesPerPixel
				row[x] = fmt.Sprintf("%x", img.Pix[o:o+icon.BytesPerPixel])
			}
			fmt.Fprintf(w, "  %s\n", strings.Join(row, " "))
		}
	}

	if img.Mask != nil {
		stride := icon.MaskStride(img.Width)
		fmt.Fprintln(w, "mask:")
		for y := 0; y < img.Height; y++ {
			fmt.Fprintf(w, "  %x\n", img.Mask[y*stride:(y+1)*stride])
		}
	}
}

func writeHexRows(w io.Writer, ic *icon.Icon) {
	hex := ic.Hex()
	for y := 0; y < ic.Height(); y++ {
		fmt.Fprintln(w, strings.Join(hex[y*ic.Width():(y+1)*ic.Width()], " "))
	}
}

// writeBlocks draws each pixel as a truecolor block scale rows high and
// 2*scale columns wide. Pixels with alpha below 128 are left blank.
func writeBlocks(w io.Writer, ic *icon.Icon, scale int) {
	cell := strings.Repeat("  ", scale)
	for y := 0; y < ic.Height(); y++ {
		var line strings.Builder
		for x := 0; x < ic.Width(); x++ {
			c := ic.At(x, y)
			if c.A < icon.MaskAlphaThreshold {
				line.WriteString(cell)
				continue
			}
			color := lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
			line.WriteString(lipgloss.NewStyle().Background(color).Render(cell))
		}
		for i := 0; i < scale; i++ {
			fmt.Fprintln(w, line.String())
		}
	}
}

// fitScale picks the largest scale (at most 8) that keeps the preview
// within termWidth columns.
func fitScale(termWidth, iconWidth int) int {
	s := termWidth / (2 * iconWidth)
	if s > 8 {
		s = 8
	}
	if s < 1 {
		s = 1
	}
	return s
}
