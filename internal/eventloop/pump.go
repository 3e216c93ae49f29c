// Package eventloop runs the blocking window event loop: fetch a native
// event, apply the cursor and stop transitions, forward it to native
// dispatch, repeat.
package eventloop

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/1broseidon/iconwin/internal/cursor"
	"github.com/1broseidon/iconwin/internal/platform"
)

// LoopState tracks the pump's lifecycle. It only moves forward.
type LoopState int

const (
	Running LoopState = iota
	Stopping
	Stopped
)

func (s LoopState) String() string {
	switch s {
	case Running:
		return "running"
	case Stopping:
		return "stopping"
	case Stopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// KeyPolicy decides what a key press does. It is the same on every backend.
type KeyPolicy int

const (
	// KeyPolicyQuit stops the loop on any key press.
	KeyPolicyQuit KeyPolicy = iota
	// KeyPolicyResetCursor restores the system arrow on any key press.
	KeyPolicyResetCursor
)

func (p KeyPolicy) String() string {
	switch p {
	case KeyPolicyQuit:
		return "quit"
	case KeyPolicyResetCursor:
		return "reset-cursor"
	default:
		return "unknown"
	}
}

// ParseKeyPolicy parses "quit" or "reset-cursor". Empty means quit.
func ParseKeyPolicy(s string) (KeyPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "quit":
		return KeyPolicyQuit, nil
	case "reset-cursor":
		return KeyPolicyResetCursor, nil
	}
	return 0, fmt.Errorf("invalid key policy %q (expected quit or reset-cursor)", s)
}

// ErrNotRunning is returned by Step once the loop has left Running.
var ErrNotRunning = errors.New("event loop is not running")

// Pump drives one window's event loop on the calling goroutine.
type Pump struct {
	win     platform.Window
	cursors *cursor.Controller
	policy  KeyPolicy
	logger  *slog.Logger

	state LoopState
}

// NewPump creates a pump in the Running state.
func NewPump(win platform.Window, cursors *cursor.Controller, policy KeyPolicy, logger *slog.Logger) *Pump {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Pump{win: win, cursors: cursors, policy: policy, logger: logger}
}

// State returns the current loop state.
func (p *Pump) State() LoopState { return p.state }

// Transitions returns the cursor states applied so far, oldest first.
func (p *Pump) Transitions() []cursor.State { return p.cursors.History() }

// Run steps until the loop stops. A NextEvent failure stops the loop and is
// returned.
func (p *Pump) Run() error {
	for p.state == Running {
		if err := p.Step(); err != nil {
			return err
		}
	}
	p.state = Stopped
	return nil
}

// Step runs one iteration: begin scope, block for an event, apply it,
// dispatch it unless it stopped the loop, end scope.
func (p *Pump) Step() error {
	if p.state != Running {
		return ErrNotRunning
	}
	end := p.win.BeginIteration()
	defer end()

	ev, err := p.win.NextEvent()
	if err != nil {
		p.state = Stopped
		return fmt.Errorf("next event: %w", err)
	}
	p.apply(ev.Kind)
	if p.state != Running {
		return nil
	}
	p.win.Dispatch(ev)
	return nil
}

func (p *Pump) apply(kind platform.EventKind) {
	switch kind {
	case platform.EventPrimaryPress:
		p.setCursor(kind, cursor.StateBusy)
	case platform.EventPrimaryRelease:
		p.setCursor(kind, cursor.StateAlternate)
	case platform.EventSecondaryRelease:
		p.setCursor(kind, cursor.StateCustom)
	case platform.EventCloseRequested:
		p.stop(kind)
	case platform.EventKeyPress:
		if p.policy == KeyPolicyResetCursor {
			p.setCursor(kind, cursor.StateDefault)
			return
		}
		p.stop(kind)
	}
}

func (p *Pump) setCursor(kind platform.EventKind, s cursor.State) {
	if err := p.cursors.Set(s); err != nil {
		p.logger.Warn("cursor change failed", "event", kind.String(), "cursor", s.String(), "error", err)
		return
	}
	p.logger.Debug("cursor changed", "event", kind.String(), "cursor", s.String())
}

func (p *Pump) stop(kind platform.EventKind) {
	p.logger.Debug("stopping event loop", "event", kind.String())
	p.state = Stopping
}
