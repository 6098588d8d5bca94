package views

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"nodedex/internal/adapters/tui/styles"
	"nodedex/internal/application/search"
	"nodedex/internal/domain"
)

// SearchKeyMap defines key bindings for the search view
type SearchKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	PrevPage key.Binding
	NextPage key.Binding
	Select   key.Binding
	Copy     key.Binding
	Mode     key.Binding
	Source   key.Binding
	Quit     key.Binding
}

var SearchKeys = SearchKeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "ctrl+p"),
		key.WithHelp("↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "ctrl+n"),
		key.WithHelp("↓", "down"),
	),
	PrevPage: key.NewBinding(
		key.WithKeys("pgup"),
		key.WithHelp("pgup", "prev page"),
	),
	NextPage: key.NewBinding(
		key.WithKeys("pgdown"),
		key.WithHelp("pgdn", "next page"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "details"),
	),
	Copy: key.NewBinding(
		key.WithKeys("ctrl+y"),
		key.WithHelp("ctrl+y", "copy type"),
	),
	Mode: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "match mode"),
	),
	Source: key.NewBinding(
		key.WithKeys("ctrl+f"),
		key.WithHelp("ctrl+f", "source"),
	),
	Quit: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "clear/quit"),
	),
}

// SearchModel is the model for the node search view
type SearchModel struct {
	ViewState

	engine    *search.Engine
	input     textinput.Model
	mode      search.Mode
	source    search.Source
	results   []domain.SearchCandidate
	pager     *Paginator
	lastQuery string
	searching bool
}

// NewSearchModel creates a new search view model
func NewSearchModel(engine *search.Engine) *SearchModel {
	input := textinput.New()
	input.Placeholder = "Search nodes..."
	input.Focus()

	return &SearchModel{
		engine: engine,
		input:  input,
		mode:   search.ModeOR,
		source: search.SourceAll,
		pager:  NewPaginator(10),
	}
}

// Init initializes the search view
func (m *SearchModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the search view
func (m *SearchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case searchResultsMsg:
		m.results = msg.results
		m.pager.Reset()
		m.pager.SetTotal(len(m.results))
		m.searching = false
		return m, nil

	case errMsg:
		m.SetMessage(msg.err.Error(), true)
		m.searching = false
		return m, nil

	case tea.KeyMsg:
		m.ClearMessage()

		switch {
		case key.Matches(msg, SearchKeys.Quit):
			if m.input.Value() != "" {
				m.input.SetValue("")
				m.results = nil
				m.lastQuery = ""
				m.pager.Reset()
				return m, nil
			}
			return m, tea.Quit

		case key.Matches(msg, SearchKeys.Up):
			m.pager.CursorUp()
			return m, nil

		case key.Matches(msg, SearchKeys.Down):
			m.pager.CursorDown()
			return m, nil

		case key.Matches(msg, SearchKeys.PrevPage):
			m.pager.PrevPage()
			return m, nil

		case key.Matches(msg, SearchKeys.NextPage):
			m.pager.NextPage()
			return m, nil

		case key.Matches(msg, SearchKeys.Mode):
			m.mode = nextMode(m.mode)
			return m, m.research()

		case key.Matches(msg, SearchKeys.Source):
			m.source = nextSource(m.source)
			return m, m.research()

		case key.Matches(msg, SearchKeys.Copy):
			if r := m.selected(); r != nil {
				clipboard.WriteAll(r.WorkflowNodeType)
				m.SetMessage(fmt.Sprintf("Copied %s", r.WorkflowNodeType), false)
			}
			return m, nil

		case key.Matches(msg, SearchKeys.Select):
			if r := m.selected(); r != nil {
				nodeType := r.NodeType
				return m, func() tea.Msg {
					return SwitchToDetailMsg{NodeType: nodeType}
				}
			}
			return m, nil
		}
	}

	// Update input
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	// Trigger search when the query text changes
	query := strings.TrimSpace(m.input.Value())
	if query != m.lastQuery {
		m.lastQuery = query
		if len(query) >= 2 {
			return m, tea.Batch(cmd, m.search(query))
		}
		m.results = nil
		m.pager.Reset()
	}

	return m, cmd
}

func (m *SearchModel) search(query string) tea.Cmd {
	m.searching = true
	return func() tea.Msg {
		resp, err := m.engine.Search(query, search.Options{
			Mode:   m.mode,
			Source: m.source,
			Limit:  50,
		})
		if err != nil {
			return errMsg{err}
		}
		return searchResultsMsg{results: resp.Results}
	}
}

// research reruns the current query after a mode or source change.
func (m *SearchModel) research() tea.Cmd {
	if len(m.lastQuery) >= 2 {
		return m.search(m.lastQuery)
	}
	return nil
}

func (m *SearchModel) selected() *domain.SearchCandidate {
	if c := m.pager.Cursor(); c >= 0 && c < len(m.results) {
		return &m.results[c]
	}
	return nil
}

func nextMode(mode search.Mode) search.Mode {
	switch mode {
	case search.ModeOR:
		return search.ModeAND
	case search.ModeAND:
		return search.ModeFuzzy
	default:
		return search.ModeOR
	}
}

func nextSource(source search.Source) search.Source {
	switch source {
	case search.SourceAll:
		return search.SourceCore
	case search.SourceCore:
		return search.SourceCommunity
	case search.SourceCommunity:
		return search.SourceVerified
	default:
		return search.SourceAll
	}
}

type searchResultsMsg struct {
	results []domain.SearchCandidate
}

// SwitchToDetailMsg is sent when a search result is selected
type SwitchToDetailMsg struct {
	NodeType string
}

// View renders the search view
func (m *SearchModel) View() string {
	var b strings.Builder

	// Title
	b.WriteString(styles.Title.Render("Nodedex"))
	b.WriteString("\n")
	b.WriteString(styles.Subtitle.Render("Workflow Node Search"))
	b.WriteString("\n\n")

	// Search input
	b.WriteString(styles.InputFocused.Render(m.input.View()))
	b.WriteString("\n\n")

	// Filter state
	b.WriteString(RenderLabelValue("mode", string(m.mode)))
	b.WriteString("   ")
	b.WriteString(RenderLabelValue("source", string(m.source)))
	b.WriteString("\n\n")

	// Results
	switch {
	case m.searching:
		b.WriteString(styles.MutedText.Render("Searching..."))
	case len(m.results) == 0:
		if len(m.lastQuery) >= 2 {
			b.WriteString(styles.MutedText.Render("No results found"))
		} else {
			b.WriteString(styles.MutedText.Render("Type at least 2 characters to search"))
		}
	default:
		b.WriteString(styles.Subtitle.Render(fmt.Sprintf("%d results", len(m.results))))
		b.WriteString("\n\n")

		start, end := m.pager.VisibleRange()
		for i := start; i < end; i++ {
			b.WriteString(m.renderResult(m.results[i], i == m.pager.Cursor()))
			b.WriteString("\n")
		}

		if m.pager.TotalPages() > 1 {
			b.WriteString(styles.MutedText.Render(
				fmt.Sprintf("page %d/%d", m.pager.CurrentPage(), m.pager.TotalPages())))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")

	// Message
	if m.Message != "" {
		b.WriteString(RenderMessage(m.Message, m.MessageErr))
		b.WriteString("\n\n")
	}

	// Help
	b.WriteString(RenderHelpLine(
		SearchKeys.Up, SearchKeys.Down, SearchKeys.Select,
		SearchKeys.Copy, SearchKeys.Mode, SearchKeys.Source, SearchKeys.Quit,
	))

	return styles.App.Render(b.String())
}

func (m *SearchModel) renderResult(r domain.SearchCandidate, selected bool) string {
	name := Truncate(r.DisplayName, 28)
	text := fmt.Sprintf("%-30s %s", name, r.NodeType)

	if selected {
		return styles.RowSelected.Render(text)
	}

	line := fmt.Sprintf("%-30s %s", name, styles.RowNodeType.Render(r.NodeType))
	if badges := RenderBadges(r.NodeSummary); badges != "" {
		line += " " + badges
	}
	return line
}
