package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/1broseidon/iconwin/internal/config"
	"github.com/1broseidon/iconwin/internal/icon"
)

func runeKey(r rune) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}} }

func pressIcon(t IconTab, keys ...tea.KeyMsg) IconTab {
	for _, k := range keys {
		t, _ = t.Update(k)
	}
	return t
}

func press(m model, keys ...tea.KeyMsg) model {
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(model)
	}
	return m
}

func writeConfig(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestIconTab_MovementClampsToIcon(t *testing.T) {
	tab := NewIconTab(icon.Default(), defaultKeyMap())
	tab = pressIcon(tab, tea.KeyMsg{Type: tea.KeyLeft}, tea.KeyMsg{Type: tea.KeyUp})
	if tab.x != 0 || tab.y != 0 {
		t.Fatalf("expected (0,0), got (%d,%d)", tab.x, tab.y)
	}
	tab = pressIcon(tab, runeKey('l'), runeKey('l'), runeKey('l'), runeKey('j'))
	if tab.x != 2 || tab.y != 1 {
		t.Fatalf("expected (2,1), got (%d,%d)", tab.x, tab.y)
	}
}

func TestIconTab_CyclesBackendsAndTargets(t *testing.T) {
	tab := NewIconTab(icon.Default(), defaultKeyMap())
	if tab.encoded.Format != icon.FormatARGB32Prefixed {
		t.Fatalf("expected x11 icon first, got %s", tab.encoded.Format)
	}

	tab = pressIcon(tab, runeKey('t'))
	if tab.encoded.Format != icon.FormatARGB32Premultiplied {
		t.Fatalf("expected x11 cursor, got %s", tab.encoded.Format)
	}

	tab = pressIcon(tab, runeKey('b'))
	if tab.encoded.Kind != icon.KindCocoa || tab.encoded.Format != icon.FormatRGBA {
		t.Fatalf("expected cocoa rgba, got %s %s", tab.encoded.Kind, tab.encoded.Format)
	}

	tab = pressIcon(tab, runeKey('b'), runeKey('b'))
	if tab.encoded.Kind != icon.KindX11 {
		t.Fatalf("expected x11 after wrapping, got %s", tab.encoded.Kind)
	}
}

func TestIconTab_SetIconClampsSelection(t *testing.T) {
	tab := NewIconTab(icon.Default(), defaultKeyMap())
	tab = pressIcon(tab, runeKey('l'), runeKey('l'), runeKey('j'))

	small, err := icon.FromHex(1, 1, []string{"102030ff"})
	if err != nil {
		t.Fatalf("FromHex: %v", err)
	}
	tab.SetIcon(small)
	if tab.x != 0 || tab.y != 0 {
		t.Fatalf("expected selection clamped to (0,0), got (%d,%d)", tab.x, tab.y)
	}
}

func TestIconTab_ViewShowsSelectedPixel(t *testing.T) {
	tab := NewIconTab(icon.Default(), defaultKeyMap())
	out := tab.View()
	for _, want := range []string{"pixel (0,0)", "source  ff0000ff", "native  0xffff0000"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in view, got:\n%s", want, out)
		}
	}

	tab = pressIcon(tab, runeKey('b'), runeKey('b'))
	if !strings.Contains(tab.View(), "mask    paint") {
		t.Fatalf("expected mask line for win32, got:\n%s", tab.View())
	}
}

func TestNativePixel(t *testing.T) {
	ic, err := icon.New(1, 1, []byte{0xFF, 0x00, 0x00, 0x80})
	if err != nil {
		t.Fatalf("icon.New: %v", err)
	}
	tests := []struct {
		kind   icon.Kind
		target icon.Target
		want   string
	}{
		{icon.KindX11, icon.TargetIcon, "0x80ff0000"},
		{icon.KindX11, icon.TargetCursor, "0x80800000"},
		{icon.KindCocoa, icon.TargetIcon, "ff 00 00 80"},
		{icon.KindWin32, icon.TargetCursor, "00 00 ff 80"},
	}
	for _, tt := range tests {
		img, err := icon.Encode(ic, tt.kind, tt.target)
		if err != nil {
			t.Fatalf("encode: %v", err)
		}
		if got := nativePixel(img, 0, 0); got != tt.want {
			t.Fatalf("%s/%s: expected %q, got %q", tt.kind, tt.target, tt.want, got)
		}
	}
}

func TestModel_QuitKeys(t *testing.T) {
	path := writeConfig(t, "")
	for _, k := range []tea.KeyMsg{runeKey('q'), {Type: tea.KeyCtrlC}, {Type: tea.KeyEsc}} {
		_, cmd := newModel(path).Update(k)
		if cmd == nil {
			t.Fatalf("expected quit command for %q", k.String())
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Fatalf("expected tea.QuitMsg for %q", k.String())
		}
	}
}

func TestModel_TabSwitching(t *testing.T) {
	m := newModel(writeConfig(t, ""))
	m = press(m, tea.KeyMsg{Type: tea.KeyTab})
	if m.activeTab != TabWindow {
		t.Fatalf("expected window tab, got %s", m.activeTab)
	}
	if !strings.Contains(m.View(), "Key Policy") {
		t.Fatalf("expected window settings in view, got:\n%s", m.View())
	}
	m = press(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.activeTab != TabIcon {
		t.Fatalf("expected icon tab, got %s", m.activeTab)
	}
}

func TestModel_LoadsIconFromConfigAndKeepsItOnError(t *testing.T) {
	path := writeConfig(t, "icon:\n  width: 1\n  height: 1\n  pixels: [\"102030ff\"]\n")

	m := newModel(path)
	if m.lastError != "" {
		t.Fatalf("expected no error, got %s", m.lastError)
	}
	if m.iconTab.ic.Width() != 1 || m.iconTab.ic.At(0, 0).G != 0x20 {
		t.Fatalf("expected configured 1x1 icon, got %dx%d", m.iconTab.ic.Width(), m.iconTab.ic.Height())
	}

	if err := os.WriteFile(path, []byte("width: -1\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	m = press(m, runeKey('r'))
	if m.lastError == "" {
		t.Fatalf("expected reload error to be shown")
	}
	if m.iconTab.ic.Width() != 1 {
		t.Fatalf("expected previous icon to be kept, got width %d", m.iconTab.ic.Width())
	}
	if m.cfg.Width != 200 {
		t.Fatalf("expected previous config to be kept, got width %d", m.cfg.Width)
	}
}

func TestModel_SaveWritesConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	m := newModel(path)
	m.cfg.Title = "edited"

	m = press(m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if m.lastError != "" {
		t.Fatalf("expected save to succeed, got %s", m.lastError)
	}
	if m.status != "saved" {
		t.Fatalf("expected saved status, got %q", m.status)
	}

	res, err := config.LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if res.Config.Title != "edited" {
		t.Fatalf("expected title %q, got %q", "edited", res.Config.Title)
	}
}

func TestWindowTab_ApplyForm(t *testing.T) {
	cfg := config.DefaultConfig()
	w := NewWindowTab(cfg)
	w.startEditing()
	if !w.Editing() {
		t.Fatalf("expected editing after startEditing")
	}

	w.fTitle = "  renamed "
	w.fWidth = "320"
	w.fHeight = "bogus"
	w.fKeyPolicy = "reset-cursor"
	w.fStyle = nil
	w.applyForm()

	if cfg.Title != "renamed" {
		t.Fatalf("expected trimmed title, got %q", cfg.Title)
	}
	if cfg.Width != 320 {
		t.Fatalf("expected width 320, got %d", cfg.Width)
	}
	if cfg.Height != 200 {
		t.Fatalf("expected invalid height to be ignored, got %d", cfg.Height)
	}
	if cfg.KeyPolicy != "reset-cursor" {
		t.Fatalf("expected reset-cursor, got %q", cfg.KeyPolicy)
	}
	if cfg.Style == nil || len(cfg.Style) != 0 {
		t.Fatalf("expected empty non-nil style (borderless), got %#v", cfg.Style)
	}
}

func TestWindowTab_EscCancelsEditing(t *testing.T) {
	w := NewWindowTab(config.DefaultConfig())
	w, _ = w.Update(runeKey('e'))
	if !w.Editing() {
		t.Fatalf("expected editing after 'e'")
	}
	w, _ = w.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if w.Editing() {
		t.Fatalf("expected esc to cancel editing")
	}
}

func TestPositiveInt(t *testing.T) {
	if err := positiveInt("12"); err != nil {
		t.Fatalf("expected 12 to be valid, got %v", err)
	}
	for _, s := range []string{"0", "-3", "x", ""} {
		if err := positiveInt(s); err == nil {
			t.Fatalf("expected %q to be rejected", s)
		}
	}
}
