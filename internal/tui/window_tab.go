package tui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/iconwin/internal/config"
)

var styleNames = []string{"titled", "closable", "miniaturizable", "resizable"}

// WindowTab is the sub-model for the window settings tab.
type WindowTab struct {
	cfg *config.Config

	// Display dimensions
	width  int
	height int

	// Edit mode
	editing bool
	form    *huh.Form

	// Form-bound values (strings for huh, converted on submit)
	fTitle     string
	fX         string
	fY         string
	fWidth     string
	fHeight    string
	fKeyPolicy string
	fStyle     []string
}

// NewWindowTab creates a WindowTab bound to cfg. Submitted edits are written
// into cfg.
func NewWindowTab(cfg *config.Config) WindowTab {
	return WindowTab{cfg: cfg}
}

// SetConfig updates the config reference.
func (w *WindowTab) SetConfig(cfg *config.Config) {
	w.cfg = cfg
}

// Editing reports whether the form is capturing input.
func (w WindowTab) Editing() bool {
	return w.editing
}

// Update implements tea.Model.
func (w WindowTab) Update(msg tea.Msg) (WindowTab, tea.Cmd) {
	if w.editing {
		return w.updateEditing(msg)
	}
	return w.updateDisplay(msg)
}

func (w WindowTab) updateDisplay(msg tea.Msg) (WindowTab, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "e" {
			w.startEditing()
			return w, w.form.Init()
		}
	case tea.WindowSizeMsg:
		w.width = msg.Width
		w.height = msg.Height
	}
	return w, nil
}

func (w WindowTab) updateEditing(msg tea.Msg) (WindowTab, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "esc" {
			w.editing = false
			w.form = nil
			return w, nil
		}
	case tea.WindowSizeMsg:
		w.width = msg.Width
		w.height = msg.Height
	}

	form, cmd := w.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		w.form = f
	}

	if w.form.State == huh.StateCompleted {
		w.applyForm()
		w.editing = false
		w.form = nil
		return w, nil
	}

	return w, cmd
}

func (w *WindowTab) startEditing() {
	cfg := w.cfg
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	w.fTitle = cfg.Title
	w.fX = strconv.Itoa(cfg.X)
	w.fY = strconv.Itoa(cfg.Y)
	w.fWidth = strconv.Itoa(cfg.Width)
	w.fHeight = strconv.Itoa(cfg.Height)
	w.fKeyPolicy = cfg.KeyPolicy
	w.fStyle = append([]string(nil), cfg.Style...)

	width := w.width - 4
	if width < 40 {
		width = 40
	}

	w.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("title").
				Title("Title").
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("title is required")
					}
					return nil
				}).
				Value(&w.fTitle),

			huh.NewInput().
				Key("width").
				Title("Width").
				Description("Content width in pixels").
				Validate(positiveInt).
				Value(&w.fWidth),

			huh.NewInput().
				Key("height").
				Title("Height").
				Description("Content height in pixels").
				Validate(positiveInt).
				Value(&w.fHeight),

			huh.NewInput().
				Key("x").
				Title("X").
				Validate(anyInt).
				Value(&w.fX),

			huh.NewInput().
				Key("y").
				Title("Y").
				Validate(anyInt).
				Value(&w.fY),
		),
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Key("style").
				Title("Style").
				Description("None selected is a borderless window").
				Options(huh.NewOptions(styleNames...)...).
				Value(&w.fStyle),

			huh.NewSelect[string]().
				Key("key_policy").
				Title("Key Policy").
				Description("What a key press does in the window").
				Options(
					huh.NewOption("quit", "quit"),
					huh.NewOption("reset-cursor", "reset-cursor"),
				).
				Value(&w.fKeyPolicy),
		),
	).WithWidth(width).WithShowHelp(true).WithShowErrors(true)

	w.editing = true
}

func positiveInt(s string) error {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v <= 0 {
		return fmt.Errorf("must be a positive integer")
	}
	return nil
}

func anyInt(s string) error {
	if _, err := strconv.Atoi(strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("must be an integer")
	}
	return nil
}

func (w *WindowTab) applyForm() {
	if w.cfg == nil {
		return
	}

	if t := strings.TrimSpace(w.fTitle); t != "" {
		w.cfg.Title = t
	}
	if v, err := strconv.Atoi(strings.TrimSpace(w.fWidth)); err == nil && v > 0 {
		w.cfg.Width = v
	}
	if v, err := strconv.Atoi(strings.TrimSpace(w.fHeight)); err == nil && v > 0 {
		w.cfg.Height = v
	}
	if v, err := strconv.Atoi(strings.TrimSpace(w.fX)); err == nil {
		w.cfg.X = v
	}
	if v, err := strconv.Atoi(strings.TrimSpace(w.fY)); err == nil {
		w.cfg.Y = v
	}
	if w.fKeyPolicy != "" {
		w.cfg.KeyPolicy = w.fKeyPolicy
	}
	w.cfg.Style = append([]string{}, w.fStyle...)
}

// View implements tea.Model.
func (w WindowTab) View() string {
	if w.editing && w.form != nil {
		return w.viewEditing()
	}
	return w.viewDisplay()
}

func (w WindowTab) viewDisplay() string {
	cfg := w.cfg
	if cfg == nil {
		return dimStyle.Render("No config loaded")
	}

	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("250")).
		Width(14).
		Align(lipgloss.Right).
		PaddingRight(2)

	valueStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("15")).
		Bold(true)

	row := func(label, value string) string {
		return labelStyle.Render(label) + valueStyle.Render(value)
	}

	style := strings.Join(cfg.Style, ", ")
	if style == "" {
		style = "(borderless)"
	}

	lines := []string{
		row("Title", cfg.Title),
		row("Position", fmt.Sprintf("%d,%d", cfg.X, cfg.Y)),
		row("Size", fmt.Sprintf("%dx%d", cfg.Width, cfg.Height)),
		row("Style", style),
		row("Key Policy", cfg.KeyPolicy),
		row("Hotspot", fmt.Sprintf("%d,%d", cfg.Hotspot.X, cfg.Hotspot.Y)),
		row("Display", displayOrDefault(cfg.Display, "(auto)")),
		row("Log Level", cfg.Logging.Level),
		"",
		dimStyle.Render("  Press 'e' to edit settings"),
	}
	return strings.Join(lines, "\n")
}

func (w WindowTab) viewEditing() string {
	header := lipgloss.NewStyle().
		Foreground(lipgloss.Color("62")).
		Bold(true).
		Render("Editing Window Settings") +
		dimStyle.Render("  (esc to cancel)")

	return header + "\n\n" + w.form.View()
}

func displayOrDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
