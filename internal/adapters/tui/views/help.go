package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"nodedex/internal/adapters/tui/styles"
)

// HelpKeyMap defines key bindings for the help view
type HelpKeyMap struct {
	Close key.Binding
}

var HelpKeys = HelpKeyMap{
	Close: key.NewBinding(
		key.WithKeys("esc", "q", "?"),
		key.WithHelp("esc/q/?", "close"),
	),
}

// CloseHelpMsg is sent when the help view is dismissed
type CloseHelpMsg struct{}

// HelpModel is the model for the help view
type HelpModel struct {
	width  int
	height int
}

// NewHelpModel creates a new help view model
func NewHelpModel() *HelpModel {
	return &HelpModel{}
}

// Init initializes the help view
func (m *HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view
func (m *HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, HelpKeys.Close) {
			return m, func() tea.Msg {
				return CloseHelpMsg{}
			}
		}
	}

	return m, nil
}

// View renders the help view
func (m *HelpModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Nodedex Help"))
	b.WriteString("\n\n")

	b.WriteString(styles.Subtitle.Render("Workflow Node Knowledge Base"))
	b.WriteString("\n\n")

	// Search section
	b.WriteString(styles.InputLabel.Render("Search"))
	b.WriteString("\n")
	b.WriteString(helpLine("type", "Search as you type (2+ characters)"))
	b.WriteString(helpLine("↑ / ↓", "Move through results"))
	b.WriteString(helpLine("PgUp / PgDn", "Page through results"))
	b.WriteString(helpLine("Tab", "Cycle match mode (OR, AND, FUZZY)"))
	b.WriteString(helpLine("Ctrl+F", "Cycle source (all, core, community, verified)"))
	b.WriteString(helpLine("Ctrl+Y", "Copy node type to clipboard"))
	b.WriteString(helpLine("Enter", "Open node details"))
	b.WriteString("\n")

	// Detail section
	b.WriteString(styles.InputLabel.Render("Node details"))
	b.WriteString("\n")
	b.WriteString(helpLine("j / k", "Scroll"))
	b.WriteString(helpLine("y", "Copy node type to clipboard"))
	b.WriteString(helpLine("esc / q", "Back to search"))
	b.WriteString("\n")

	// General section
	b.WriteString(styles.InputLabel.Render("General"))
	b.WriteString("\n")
	b.WriteString(helpLine("?", "Toggle help (from details)"))
	b.WriteString(helpLine("esc", "Clear query, then quit"))
	b.WriteString(helpLine("Ctrl+C", "Quit"))
	b.WriteString("\n\n")

	// Node type info
	b.WriteString(styles.InputLabel.Render("Node Type Prefixes"))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("  Core      : nodes-base.httpRequest"))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("  Workflow  : loom-nodes-base.httpRequest"))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("  AI        : @loom/loom-nodes-ai.agent"))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("  Community : full package name, e.g. loom-nodes-browserless.browserless"))
	b.WriteString("\n\n")

	// Close hint
	b.WriteString(styles.HelpDesc.Render("Press "))
	b.WriteString(styles.HelpKey.Render("esc"))
	b.WriteString(styles.HelpDesc.Render(" or "))
	b.WriteString(styles.HelpKey.Render("?"))
	b.WriteString(styles.HelpDesc.Render(" to close"))

	return styles.App.Render(b.String())
}

func helpLine(key, desc string) string {
	return "  " + styles.HelpKey.Render(padRight(key, 20)) + styles.HelpDesc.Render(desc) + "\n"
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

// SetSize updates the view dimensions
func (m *HelpModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}
