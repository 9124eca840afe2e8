package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/ledger/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/ledger/internal/app"
	"github.com/MrJamesThe3rd/ledger/internal/config"
)

type model struct {
	app *app.App

	currentView View

	ledgerView     view.LedgerModel
	exclusionsView view.ExclusionsModel
}

type View int

const (
	ViewMenu       View = 0
	ViewLedger     View = 1
	ViewExclusions View = 2
)

func initialModel(a *app.App) model {
	return model{
		app:            a,
		currentView:    ViewMenu,
		ledgerView:     newLedgerView(a),
		exclusionsView: view.NewExclusionsModel(a.Exclusions, a.Owner()),
	}
}

func newLedgerView(a *app.App) view.LedgerModel {
	return view.NewLedgerModel(a.Ledger, a.Exclusions, a.Transactions, a.Owner())
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.currentView == ViewMenu {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewLedger
				m.ledgerView = newLedgerView(m.app)

				return m, m.ledgerView.Init()
			case "2":
				m.currentView = ViewExclusions
				m.exclusionsView = view.NewExclusionsModel(m.app.Exclusions, m.app.Owner())

				return m, m.exclusionsView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewLedger:
		var newModel tea.Model
		newModel, cmd = m.ledgerView.Update(msg)
		m.ledgerView = newModel.(view.LedgerModel)
	case ViewExclusions:
		var newModel tea.Model
		newModel, cmd = m.exclusionsView.Update(msg)
		m.exclusionsView = newModel.(view.ExclusionsModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			m.app.Config.App.Name + " TUI\n\n" +
				"1. Ledger\n" +
				"2. Manual Exclusions\n\n" +
				"q. Quit",
		)
	case ViewLedger:
		return footer(m.ledgerView.View(), m.ledgerView.ShortHelp())
	case ViewExclusions:
		return footer(m.exclusionsView.View(), m.exclusionsView.ShortHelp())
	}

	return "Unknown View"
}

func footer(body, help string) string {
	return body + "\n" + lipgloss.NewStyle().Faint(true).PaddingLeft(1).Render(help)
}

func main() {
	if err := run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// Log lines would corrupt the terminal UI.
	logger := slog.Default()
	slog.SetDefault(slog.New(slog.DiscardHandler))
	defer slog.SetDefault(logger)

	a, err := app.New(context.Background(), cfg)
	if err != nil {
		return fmt.Errorf("starting app: %w", err)
	}
	defer a.Close()

	_, err = tea.NewProgram(initialModel(a), tea.WithAltScreen()).Run()

	return err
}
