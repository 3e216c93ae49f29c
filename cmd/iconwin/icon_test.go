package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/1broseidon/iconwin/internal/config"
	"github.com/1broseidon/iconwin/internal/icon"
	"github.com/charmbracelet/lipgloss"
)

func TestWriteInspect_X11IconShowsHeaderAndWords(t *testing.T) {
	img, err := icon.Encode(icon.Default(), icon.KindX11, icon.TargetIcon)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	var buf bytes.Buffer
	writeInspect(&buf, img)
	out := buf.String()

	for _, want := range []string{
		"kind: x11\n",
		"format: argb32-prefixed\n",
		"size: 3x3\n",
		"header: 3 3\n",
		"0xffff0000",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output, got:\n%s", want, out)
		}
	}
	if strings.Contains(out, "hotspot") {
		t.Fatalf("expected no hotspot line for icon target, got:\n%s", out)
	}
}

func TestWriteInspect_Win32CursorShowsMask(t *testing.T) {
	img, err := icon.Encode(icon.Default(), icon.KindWin32, icon.TargetCursor)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	var buf bytes.Buffer
	writeInspect(&buf, img)
	out := buf.String()

	if !strings.Contains(out, "hotspot: 0,0\n") {
		t.Fatalf("expected hotspot line, got:\n%s", out)
	}
	if !strings.Contains(out, "mask:\n  0000\n  0000\n  0000\n") {
		t.Fatalf("expected three all-paint mask rows, got:\n%s", out)
	}
	// Red pixel in B, G, R, A order.
	if !strings.Contains(out, "0000ffff") {
		t.Fatalf("expected BGRA red pixel, got:\n%s", out)
	}
}

func TestEncodeConfigured_CursorCarriesConfiguredHotspot(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Hotspot = config.Point{X: 2, Y: 1}

	img, err := encodeConfigured(cfg, icon.KindWin32, icon.TargetCursor)
	if err != nil {
		t.Fatalf("encodeConfigured: %v", err)
	}
	var buf bytes.Buffer
	writeInspect(&buf, img)
	if !strings.Contains(buf.String(), "hotspot: 2,1\n") {
		t.Fatalf("expected configured hotspot, got:\n%s", buf.String())
	}

	img, err = encodeConfigured(cfg, icon.KindX11, icon.TargetIcon)
	if err != nil {
		t.Fatalf("encodeConfigured: %v", err)
	}
	if img.Hotspot.X != 0 || img.Hotspot.Y != 0 {
		t.Fatalf("expected no hotspot on icon target, got %v", img.Hotspot)
	}
}

func TestWriteHexRows(t *testing.T) {
	ic, err := icon.FromHex(2, 1, []string{"ff0000ff", "00ff0080"})
	if err != nil {
		t.Fatalf("FromHex: %v", err)
	}
	var buf bytes.Buffer
	writeHexRows(&buf, ic)
	if buf.String() != "ff0000ff 00ff0080\n" {
		t.Fatalf("expected one hex row, got %q", buf.String())
	}
}

func TestWriteBlocks_SkipsTransparentPixels(t *testing.T) {
	ic, err := icon.FromHex(2, 1, []string{"ff000000", "00ff00ff"})
	if err != nil {
		t.Fatalf("FromHex: %v", err)
	}
	var buf bytes.Buffer
	writeBlocks(&buf, ic, 2)
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 rows at scale 2, got %d", len(lines))
	}
	// The transparent pixel stays blank; the opaque one fills the rest.
	if !strings.HasPrefix(lines[0], "    ") {
		t.Fatalf("expected blank leading cell, got %q", lines[0])
	}
	if lipgloss.Width(lines[0]) != 8 {
		t.Fatalf("expected 8 visible columns, got %d in %q", lipgloss.Width(lines[0]), lines[0])
	}
	if lines[0] != lines[1] {
		t.Fatalf("expected repeated rows at scale 2, got %q and %q", lines[0], lines[1])
	}
}

func TestFitScale(t *testing.T) {
	tests := []struct {
		termWidth, iconWidth, want int
	}{
		{80, 3, 8},
		{30, 3, 5},
		{4, 3, 1},
		{0, 3, 1},
	}
	for _, tt := range tests {
		if got := fitScale(tt.termWidth, tt.iconWidth); got != tt.want {
			t.Fatalf("fitScale(%d, %d): expected %d, got %d", tt.termWidth, tt.iconWidth, tt.want, got)
		}
	}
}

func TestFormatSource(t *testing.T) {
	tests := []struct {
		src  config.Source
		want string
	}{
		{config.Source{Kind: config.SourceFile, File: "/c.yaml", Line: 3, Column: 5}, "file:/c.yaml:3:5"},
		{config.Source{Kind: config.SourceFile, File: "/c.yaml"}, "file:/c.yaml"},
		{config.Source{Kind: config.SourceDefault, Name: "defaults"}, "default:defaults"},
		{config.Source{Kind: config.SourceDefault}, "default"},
	}
	for _, tt := range tests {
		if got := formatSource(tt.src); got != tt.want {
			t.Fatalf("expected %q, got %q", tt.want, got)
		}
	}
}
