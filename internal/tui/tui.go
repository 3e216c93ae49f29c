// Package tui is an interactive terminal explorer for the configured icon,
// its native encodings and the window settings.
package tui

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/1broseidon/iconwin/internal/config"
	"github.com/1broseidon/iconwin/internal/icon"
)

// Run starts the explorer on the config at configPath (empty uses the
// default location).
func Run(configPath string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("tui requires an interactive terminal (stdin/stdout must be TTYs)")
	}
	_, err := tea.NewProgram(newModel(configPath), tea.WithAltScreen()).Run()
	return err
}

type editorFinishedMsg struct{ err error }

// model is the root bubbletea model for the TUI.
type model struct {
	configPath string
	cfg        *config.Config

	keys keyMap
	help help.Model

	activeTab Tab
	iconTab   IconTab
	windowTab WindowTab

	status    string
	lastError string

	// Terminal dimensions
	width  int
	height int
}

func newModel(configPath string) model {
	keys := defaultKeyMap()
	m := model{
		configPath: configPath,
		keys:       keys,
		help:       help.New(),
		activeTab:  TabIcon,
	}
	m.loadConfig()
	return m
}

// loadConfig reads the config and rebuilds both tabs. On failure the
// previous config stays in place, or the defaults on first load.
func (m *model) loadConfig() {
	var res *config.LoadResult
	var err error
	if m.configPath == "" {
		res, err = config.LoadWithSources()
	} else {
		res, err = config.LoadFromPath(m.configPath)
	}

	cfg := m.cfg
	if err == nil {
		cfg = res.Config
		m.lastError = ""
	} else {
		m.lastError = err.Error()
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	ic, err := cfg.BuildIcon()
	if err != nil {
		m.lastError = err.Error()
		ic = icon.Default()
	}

	m.cfg = cfg
	if m.iconTab.ic == nil {
		m.iconTab = NewIconTab(ic, m.keys)
	} else {
		m.iconTab.SetIcon(ic)
	}
	m.windowTab.SetConfig(cfg)
}

// Init implements tea.Model.
func (m model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.windowTab, _ = m.windowTab.Update(msg)
		return m, nil

	case editorFinishedMsg:
		if msg.err != nil {
			m.lastError = fmt.Sprintf("editor failed: %v", msg.err)
			return m, nil
		}
		m.loadConfig()
		m.status = "reloaded"
		return m, nil
	}

	// The form consumes keys while editing; only ctrl+c escapes to quit.
	if m.activeTab == TabWindow && m.windowTab.Editing() {
		if km, ok := msg.(tea.KeyMsg); ok && km.String() == "ctrl+c" {
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.windowTab, cmd = m.windowTab.Update(msg)
		return m, cmd
	}

	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(km, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(km, m.keys.NextTab):
		if km.String() == "shift+tab" {
			m.activeTab = (m.activeTab - 1 + tabCount) % tabCount
		} else {
			m.activeTab = (m.activeTab + 1) % tabCount
		}
		return m, nil

	case key.Matches(km, m.keys.Reload):
		m.loadConfig()
		if m.lastError == "" {
			m.status = "reloaded"
		}
		return m, nil

	case key.Matches(km, m.keys.Open):
		return m, m.openEditor()

	case key.Matches(km, m.keys.Save):
		m.save()
		return m, nil
	}

	var cmd tea.Cmd
	switch m.activeTab {
	case TabIcon:
		m.iconTab, cmd = m.iconTab.Update(msg)
	case TabWindow:
		m.windowTab, cmd = m.windowTab.Update(msg)
	}
	return m, cmd
}

func (m *model) save() {
	if err := config.SaveTo(m.configPath, m.cfg); err != nil {
		m.status = ""
		m.lastError = err.Error()
		return
	}
	m.lastError = ""
	m.status = "saved"
}

func (m model) openEditor() tea.Cmd {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = os.Getenv("VISUAL")
	}
	if editor == "" {
		editor = "vi"
	}

	configPath := m.configPath
	if configPath == "" {
		path, err := config.DefaultConfigPath()
		if err != nil {
			return func() tea.Msg { return editorFinishedMsg{err: err} }
		}
		configPath = path
	}

	editorParts := strings.Fields(editor)
	cmd := exec.Command(editorParts[0], append(editorParts[1:], configPath)...)
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{err: err}
	})
}

// View implements tea.Model.
func (m model) View() string {
	var b strings.Builder

	suffix := ""
	if m.activeTab == TabIcon {
		suffix = m.iconTab.Heading()
	}
	b.WriteString(renderTabBar(m.activeTab, suffix))
	b.WriteString("\n")

	switch m.activeTab {
	case TabIcon:
		b.WriteString(m.iconTab.View())
	case TabWindow:
		b.WriteString(m.windowTab.View())
	}
	b.WriteString("\n\n")

	if m.lastError != "" {
		b.WriteString(errStyle.Render("Error: " + m.lastError))
		b.WriteString("\n")
	} else if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}
	if !(m.activeTab == TabWindow && m.windowTab.Editing()) {
		b.WriteString(m.help.View(m.keys))
	}
	return b.String()
}
