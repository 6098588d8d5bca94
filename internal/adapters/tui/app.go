package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"nodedex/internal/adapters/tui/views"
	"nodedex/internal/application"
	"nodedex/internal/application/search"
	"nodedex/internal/ports"
)

// ViewState represents the current view
type ViewState int

const (
	ViewSearch ViewState = iota
	ViewDetail
	ViewHelp
)

// App is the main TUI application model
type App struct {
	state ViewState
	prev  ViewState

	search *views.SearchModel
	detail *views.DetailModel
	help   *views.HelpModel

	width  int
	height int
}

// NewApp creates a new TUI application
func NewApp(engine *search.Engine, nodes *application.NodeService, templates ports.TemplateSource) *App {
	return &App{
		state:  ViewSearch,
		search: views.NewSearchModel(engine),
		detail: views.NewDetailModel(nodes, templates),
		help:   views.NewHelpModel(),
	}
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return a.search.Init()
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.search.SetSize(msg.Width, msg.Height)
		a.detail.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

	// View switching messages
	case views.SwitchToDetailMsg:
		a.state = ViewDetail
		return a, a.detail.Load(msg.NodeType)

	case views.SwitchToSearchMsg:
		a.state = ViewSearch
		return a, nil

	case views.SwitchToHelpMsg:
		a.prev = a.state
		a.state = ViewHelp
		return a, nil

	case views.CloseHelpMsg:
		a.state = a.prev
		return a, nil
	}

	// Delegate to current view
	var cmd tea.Cmd
	switch a.state {
	case ViewSearch:
		_, cmd = a.search.Update(msg)
	case ViewDetail:
		_, cmd = a.detail.Update(msg)
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	}

	return a, cmd
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case ViewDetail:
		return a.detail.View()
	case ViewHelp:
		return a.help.View()
	default:
		return a.search.View()
	}
}
