//go:build linux

package platform

import (
	"testing"

	"github.com/BurntSushi/xgb/xproto"
)

func TestTranslateX11(t *testing.T) {
	const win xproto.Window = 0x200001
	const other xproto.Window = 0x300001
	const deleteAtom xproto.Atom = 42

	isDelete := func(ev xproto.ClientMessageEvent) bool {
		return ev.Format == 32 && xproto.Atom(ev.Data.Data32[0]) == deleteAtom
	}
	clientMessage := func(target xproto.Window, atom xproto.Atom) xproto.ClientMessageEvent {
		return xproto.ClientMessageEvent{
			Format: 32,
			Window: target,
			Data:   xproto.ClientMessageDataUnionData32New([]uint32{uint32(atom), 0, 0, 0, 0}),
		}
	}

	tests := []struct {
		name string
		ev   any
		want EventKind
	}{
		{"button 1 press", xproto.ButtonPressEvent{Event: win, Detail: xproto.ButtonIndex1}, EventPrimaryPress},
		{"button 3 press", xproto.ButtonPressEvent{Event: win, Detail: xproto.ButtonIndex3}, EventOther},
		{"button 1 release", xproto.ButtonReleaseEvent{Event: win, Detail: xproto.ButtonIndex1}, EventPrimaryRelease},
		{"button 3 release", xproto.ButtonReleaseEvent{Event: win, Detail: xproto.ButtonIndex3}, EventSecondaryRelease},
		{"button 2 release", xproto.ButtonReleaseEvent{Event: win, Detail: xproto.ButtonIndex2}, EventOther},
		{"key press", xproto.KeyPressEvent{Event: win, Detail: 38}, EventKeyPress},
		{"key release", xproto.KeyReleaseEvent{Event: win, Detail: 38}, EventKeyRelease},
		{"delete window", clientMessage(win, deleteAtom), EventCloseRequested},
		{"other client message", clientMessage(win, deleteAtom+1), EventOther},
		{"destroy notify", xproto.DestroyNotifyEvent{Window: win, Event: win}, EventCloseRequested},
		{"expose", xproto.ExposeEvent{Window: win}, EventOther},
		{"press on other window", xproto.ButtonPressEvent{Event: other, Detail: xproto.ButtonIndex1}, EventOther},
		{"release on other window", xproto.ButtonReleaseEvent{Event: other, Detail: xproto.ButtonIndex1}, EventOther},
		{"key on other window", xproto.KeyPressEvent{Event: other}, EventOther},
		{"delete for other window", clientMessage(other, deleteAtom), EventOther},
		{"destroy of other window", xproto.DestroyNotifyEvent{Window: other}, EventOther},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := translateX11(tt.ev, win, isDelete); got != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, got)
			}
		})
	}
}
