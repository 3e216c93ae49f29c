package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Tab identifies a TUI tab.
type Tab int

const (
	TabIcon Tab = iota
	TabWindow
	tabCount // sentinel for iteration
)

func (t Tab) String() string {
	switch t {
	case TabIcon:
		return "Icon"
	case TabWindow:
		return "Window"
	default:
		return "?"
	}
}

var (
	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Padding(0, 2)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("250")).
				Background(lipgloss.Color("236")).
				Padding(0, 2)

	tabBarStyle = lipgloss.NewStyle().
			MarginBottom(1)

	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
)

func renderTabBar(active Tab, suffix string) string {
	var tabs []string
	for i := Tab(0); i < tabCount; i++ {
		if i == active {
			tabs = append(tabs, activeTabStyle.Render(i.String()))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(i.String()))
		}
	}
	bar := strings.Join(tabs, " ")
	if suffix != "" {
		bar += "  " + dimStyle.Render(suffix)
	}
	return tabBarStyle.Render(bar)
}
