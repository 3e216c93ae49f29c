//go:build windows

package platform

import (
	"testing"

	"github.com/1broseidon/iconwin/internal/win32"
)

func TestTranslateMessage(t *testing.T) {
	tests := []struct {
		msg  uint32
		want EventKind
	}{
		{win32.WM_LBUTTONDOWN, EventPrimaryPress},
		{win32.WM_LBUTTONUP, EventPrimaryRelease},
		{win32.WM_RBUTTONUP, EventSecondaryRelease},
		{win32.WM_KEYDOWN, EventKeyPress},
		{win32.WM_KEYUP, EventKeyRelease},
		{win32.WM_CLOSEREQUESTED, EventCloseRequested},
		{win32.WM_CLOSE, EventOther},
		{win32.WM_SETCURSOR, EventOther},
		{0x0204, EventOther}, // WM_RBUTTONDOWN
	}
	for _, tt := range tests {
		if got := translateMessage(tt.msg); got != tt.want {
			t.Fatalf("message 0x%04x: expected %s, got %s", tt.msg, tt.want, got)
		}
	}
}
