package views

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"nodedex/internal/adapters/tui/styles"
	"nodedex/internal/application"
	"nodedex/internal/application/properties"
	"nodedex/internal/domain"
	"nodedex/internal/ports"
)

// DetailKeyMap defines key bindings for the node detail view
type DetailKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	PrevPage key.Binding
	NextPage key.Binding
	Copy     key.Binding
	Help     key.Binding
	Back     key.Binding
}

var DetailKeys = DetailKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "scroll up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "scroll down"),
	),
	PrevPage: key.NewBinding(
		key.WithKeys("pgup", "h"),
		key.WithHelp("pgup", "prev page"),
	),
	NextPage: key.NewBinding(
		key.WithKeys("pgdown", "l"),
		key.WithHelp("pgdn", "next page"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y", "ctrl+y"),
		key.WithHelp("y", "copy type"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc", "q"),
		key.WithHelp("esc", "back"),
	),
}

// DetailModel is the model for the node detail view
type DetailModel struct {
	ViewState

	nodes     *application.NodeService
	templates ports.TemplateSource

	def   *domain.NodeDefinition
	lines []string
	pager *Paginator
}

// NewDetailModel creates a new detail view model
func NewDetailModel(nodes *application.NodeService, templates ports.TemplateSource) *DetailModel {
	return &DetailModel{
		nodes:     nodes,
		templates: templates,
		pager:     NewPaginator(16),
	}
}

// Init initializes the detail view
func (m *DetailModel) Init() tea.Cmd {
	return nil
}

// Load fetches the node, its essentials, and template examples
func (m *DetailModel) Load(nodeType string) tea.Cmd {
	return func() tea.Msg {
		def, err := m.nodes.Resolve(nodeType)
		if err != nil {
			return errMsg{err}
		}
		ess, err := m.nodes.Essentials(nodeType)
		if err != nil {
			return errMsg{err}
		}
		wireType := domain.WorkflowNodeType(def.NodeType)
		examples, err := m.templates.ExamplesForNode(wireType, 2)
		if err != nil {
			return errMsg{err}
		}
		return nodeLoadedMsg{def: def, ess: ess, examples: examples}
	}
}

type nodeLoadedMsg struct {
	def      *domain.NodeDefinition
	ess      *application.NodeEssentials
	examples []domain.ConfigExample
}

// SwitchToSearchMsg is sent when the detail view is dismissed
type SwitchToSearchMsg struct{}

// SwitchToHelpMsg is sent when the help view is requested
type SwitchToHelpMsg struct{}

// Update handles messages for the detail view
func (m *DetailModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case nodeLoadedMsg:
		m.def = msg.def
		m.lines = buildDetailLines(msg.def, msg.ess, msg.examples)
		m.pager.Reset()
		m.pager.SetTotal(len(m.lines))
		return m, nil

	case errMsg:
		m.SetMessage(msg.err.Error(), true)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, DetailKeys.Back):
			return m, func() tea.Msg {
				return SwitchToSearchMsg{}
			}

		case key.Matches(msg, DetailKeys.Up):
			m.pager.CursorUp()
			return m, nil

		case key.Matches(msg, DetailKeys.Down):
			m.pager.CursorDown()
			return m, nil

		case key.Matches(msg, DetailKeys.PrevPage):
			m.pager.PrevPage()
			return m, nil

		case key.Matches(msg, DetailKeys.NextPage):
			m.pager.NextPage()
			return m, nil

		case key.Matches(msg, DetailKeys.Copy):
			if m.def != nil {
				wireType := domain.WorkflowNodeType(m.def.NodeType)
				clipboard.WriteAll(wireType)
				m.SetMessage(fmt.Sprintf("Copied %s", wireType), false)
			}
			return m, nil

		case key.Matches(msg, DetailKeys.Help):
			return m, func() tea.Msg {
				return SwitchToHelpMsg{}
			}
		}
	}

	return m, nil
}

// buildDetailLines renders the node detail sections into plain lines for
// paging.
func buildDetailLines(def *domain.NodeDefinition, ess *application.NodeEssentials, examples []domain.ConfigExample) []string {
	var lines []string
	add := func(s string) { lines = append(lines, s) }

	if def.Description != "" {
		add(styles.MutedText.Render(Truncate(def.Description, 100)))
		add("")
	}

	add(styles.InputLabel.Render("Required"))
	if len(ess.Required) == 0 {
		add(styles.MutedText.Render("  none"))
	}
	for _, p := range ess.Required {
		add(propertyLine(p))
	}
	add("")

	if len(ess.Common) > 0 {
		add(styles.InputLabel.Render("Common"))
		for _, p := range ess.Common {
			add(propertyLine(p))
		}
		add("")
	}

	if len(ess.Operations) > 0 {
		add(styles.InputLabel.Render("Operations"))
		for _, op := range ess.Operations {
			name := op.Name
			if name == "" {
				name = op.Operation
			}
			add(fmt.Sprintf("  %-12s %s", op.Resource, name))
		}
		add("")
	}

	if len(def.Credentials) > 0 {
		add(styles.InputLabel.Render("Credentials"))
		for _, c := range def.Credentials {
			line := "  " + c.Name
			if c.Required {
				line += styles.MutedText.Render(" (required)")
			}
			add(line)
		}
		add("")
	}

	if len(examples) > 0 {
		add(styles.InputLabel.Render("Template examples"))
		for _, e := range examples {
			add(fmt.Sprintf("  %s %s",
				Truncate(e.TemplateName, 44),
				styles.MutedText.Render(fmt.Sprintf("(%d views)", e.Views))))
			if keys := e.Config.Keys(); len(keys) > 0 {
				add(styles.MutedText.Render("    sets " + strings.Join(keys, ", ")))
			}
		}
		add("")
	}

	if def.Documentation != "" {
		add(styles.MutedText.Render("Documentation available: nodedex-cli docs " + def.NodeType))
	}

	return lines
}

func propertyLine(p properties.EssentialProperty) string {
	line := fmt.Sprintf("  %-24s %-14s", p.Name, string(p.Type))
	if p.Description != "" {
		line += styles.MutedText.Render(Truncate(p.Description, 48))
	}
	return line
}

// View renders the detail view
func (m *DetailModel) View() string {
	var b strings.Builder

	if m.def == nil {
		if m.Message != "" {
			b.WriteString(RenderMessage(m.Message, m.MessageErr))
		} else {
			b.WriteString("Loading...")
		}
		return styles.App.Render(b.String())
	}

	// Header
	b.WriteString(styles.Title.Render(m.def.DisplayName))
	b.WriteString("\n")
	sub := fmt.Sprintf("%s · v%g", m.def.NodeType, m.def.Version)
	b.WriteString(styles.Subtitle.Render(sub))
	if badges := RenderBadges(m.def.Summary()); badges != "" {
		b.WriteString("  ")
		b.WriteString(badges)
	}
	b.WriteString("\n\n")

	// Body
	start, end := m.pager.VisibleRange()
	for i := start; i < end; i++ {
		b.WriteString(m.lines[i])
		b.WriteString("\n")
	}

	if m.pager.TotalPages() > 1 {
		b.WriteString(styles.MutedText.Render(
			fmt.Sprintf("page %d/%d", m.pager.CurrentPage(), m.pager.TotalPages())))
		b.WriteString("\n")
	}

	b.WriteString("\n")

	// Message
	if m.Message != "" {
		b.WriteString(RenderMessage(m.Message, m.MessageErr))
		b.WriteString("\n\n")
	}

	// Help
	b.WriteString(RenderHelpLine(
		DetailKeys.Up, DetailKeys.Down, DetailKeys.Copy,
		DetailKeys.Help, DetailKeys.Back,
	))

	return styles.App.Render(b.String())
}
