//go:build darwin

package platform

import (
	"testing"

	"github.com/1broseidon/iconwin/internal/cocoa"
)

func TestTranslateEvent(t *testing.T) {
	tests := []struct {
		name string
		ev   cocoa.Event
		want EventKind
	}{
		{"left mouse down", cocoa.Event{Type: cocoa.EventLeftMouseDown}, EventPrimaryPress},
		{"left mouse up", cocoa.Event{Type: cocoa.EventLeftMouseUp}, EventPrimaryRelease},
		{"right mouse up", cocoa.Event{Type: cocoa.EventRightMouseUp}, EventSecondaryRelease},
		{"key down", cocoa.Event{Type: cocoa.EventKeyDown}, EventKeyPress},
		{"key up", cocoa.Event{Type: cocoa.EventKeyUp}, EventKeyRelease},
		{"close request", cocoa.Event{Type: cocoa.EventApplicationDefined, Subtype: cocoa.CloseSubtype}, EventCloseRequested},
		{"other app event", cocoa.Event{Type: cocoa.EventApplicationDefined, Subtype: cocoa.CloseSubtype + 1}, EventOther},
		{"right mouse down", cocoa.Event{Type: 3}, EventOther},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := translateEvent(tt.ev); got != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, got)
			}
		})
	}
}
