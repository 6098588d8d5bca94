package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"nodedex/internal/adapters/sqlite"
	"nodedex/internal/adapters/tui"
	"nodedex/internal/application"
	"nodedex/internal/application/search"
	"nodedex/internal/catalog"
	"nodedex/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// The TUI owns the terminal; keep logging silent.
	log := zerolog.Nop()

	store, err := sqlite.Open(cfg.DatabasePath, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if cfg.AutoSeed {
		if _, err := catalog.Seed(store, log, false); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	app := tui.NewApp(
		search.NewEngine(store, store, log),
		application.NewNodeService(store),
		store,
	)

	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
