package cursor

import (
	"errors"
	"image"
	"testing"

	"github.com/1broseidon/iconwin/internal/icon"
	"github.com/1broseidon/iconwin/internal/platform"
	"github.com/1broseidon/iconwin/internal/platform/platformtest"
)

func customImage(t *testing.T) *icon.NativeImage {
	t.Helper()
	img, err := icon.Encode(icon.Default(), icon.KindX11, icon.TargetCursor)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	return img
}

func TestInstall_UsesCustomImageAndHotspot(t *testing.T) {
	win := platformtest.NewWindow()
	img := customImage(t)
	c := NewController(win, img, image.Pt(1, 2))

	if err := c.Install(); err != nil {
		t.Fatalf("Install: %v", err)
	}
	if c.State() != StateCustom {
		t.Fatalf("expected state custom, got %s", c.State())
	}
	if len(win.Cursors) != 1 || win.Cursors[0] != img {
		t.Fatalf("expected custom image installed once, got %d installs", len(win.Cursors))
	}
	if win.Hotspots[0] != image.Pt(1, 2) {
		t.Fatalf("expected hotspot (1,2), got %v", win.Hotspots[0])
	}
	if len(c.History()) != 0 {
		t.Fatalf("expected Install to stay out of history, got %v", c.History())
	}
}

func TestSet_MapsStatesToSystemCursors(t *testing.T) {
	tests := []struct {
		state State
		want  platform.SystemCursor
	}{
		{StateDefault, platform.SystemArrow},
		{StateAlternate, platform.SystemIBeam},
		{StateBusy, platform.SystemWait},
	}
	for _, tt := range tests {
		t.Run(tt.state.String(), func(t *testing.T) {
			win := platformtest.NewWindow()
			c := NewController(win, customImage(t), image.Point{})
			if err := c.Set(tt.state); err != nil {
				t.Fatalf("Set: %v", err)
			}
			if len(win.SystemCursors) != 1 || win.SystemCursors[0] != tt.want {
				t.Fatalf("expected %s, got %v", tt.want, win.SystemCursors)
			}
		})
	}
}

func TestSet_SameStateIsNoOpExceptCustom(t *testing.T) {
	win := platformtest.NewWindow()
	c := NewController(win, customImage(t), image.Point{})

	_ = c.Set(StateBusy)
	_ = c.Set(StateBusy)
	if len(win.SystemCursors) != 1 {
		t.Fatalf("expected one wait install, got %d", len(win.SystemCursors))
	}

	_ = c.Set(StateCustom)
	_ = c.Set(StateCustom)
	if len(win.Cursors) != 2 {
		t.Fatalf("expected custom to re-install every time, got %d installs", len(win.Cursors))
	}

	want := []State{StateBusy, StateCustom, StateCustom}
	got := c.History()
	if len(got) != len(want) {
		t.Fatalf("expected history %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected history %v, got %v", want, got)
		}
	}
}

func TestSet_FailureKeepsState(t *testing.T) {
	win := platformtest.NewWindow()
	c := NewController(win, customImage(t), image.Point{})
	if err := c.Install(); err != nil {
		t.Fatalf("Install: %v", err)
	}

	win.SystemCursorErr = platform.ErrResourceAllocationFailed
	err := c.Set(StateBusy)
	if !errors.Is(err, platform.ErrResourceAllocationFailed) {
		t.Fatalf("expected ErrResourceAllocationFailed, got %v", err)
	}
	if c.State() != StateCustom {
		t.Fatalf("expected state to stay custom, got %s", c.State())
	}
	if len(c.History()) != 0 {
		t.Fatalf("expected empty history, got %v", c.History())
	}
}

func TestCustomWithoutImageFallsBackToArrow(t *testing.T) {
	win := platformtest.NewWindow()
	c := NewController(win, nil, image.Point{})
	if err := c.Install(); err != nil {
		t.Fatalf("Install: %v", err)
	}
	if len(win.Cursors) != 0 {
		t.Fatalf("expected no image cursor, got %d", len(win.Cursors))
	}
	if len(win.SystemCursors) != 1 || win.SystemCursors[0] != platform.SystemArrow {
		t.Fatalf("expected arrow fallback, got %v", win.SystemCursors)
	}
}

func TestSet_RejectsUnknownState(t *testing.T) {
	c := NewController(platformtest.NewWindow(), nil, image.Point{})
	if err := c.Set(State(99)); err == nil {
		t.Fatalf("expected error for unknown state")
	}
}

func TestHistory_ReturnsCopy(t *testing.T) {
	c := NewController(platformtest.NewWindow(), nil, image.Point{})
	_ = c.Set(StateBusy)
	h := c.History()
	h[0] = StateDefault
	if c.History()[0] != StateBusy {
		t.Fatalf("expected history to be unaffected by caller mutation")
	}
}
