package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/ledger/internal/exclusion"
)

// ExclusionsModel lists the persisted manual exclusions of a ledger.
type ExclusionsModel struct {
	CommonModel
	exclusions *exclusion.Service
	owner      string

	table table.Model
	ids   []string

	loading bool
	err     error
	status  string
}

func NewExclusionsModel(exclusions *exclusion.Service, owner string) ExclusionsModel {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Short", Width: 10},
			{Title: "Transaction ID", Width: 48},
		}),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return ExclusionsModel{
		exclusions: exclusions,
		owner:      owner,
		table:      t,
		loading:    true,
	}
}

func (m ExclusionsModel) Title() string { return "Manual Exclusions" }
func (m ExclusionsModel) ShortHelp() string {
	return "Esc: back | d: re-include | r: reload"
}

func (m ExclusionsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m ExclusionsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case exclusionsLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.ids = msg.ids
		m.refreshTable()
		return m, nil

	case exclusionRemovedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.status = fmt.Sprintf("Transaction %s... re-included.", exclusion.ShortID(msg.id))
		}
		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.table.SetHeight(max(msg.Height-10, 5))
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "d":
			return m, m.removeCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m ExclusionsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading exclusions...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	if len(m.ids) == 0 {
		return lipgloss.NewStyle().Padding(2).Render("No manual exclusions.")
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(fmt.Sprintf("Ledger %s: %d excluded", activeStyle(m.owner), len(m.ids))),
		lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			Render(m.table.View()),
	)

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *ExclusionsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.ids))
	for _, id := range m.ids {
		rows = append(rows, table.Row{exclusion.ShortID(id), id})
	}

	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(max(len(rows)-1, 0))
	}
}

// Messages

type exclusionsLoadedMsg struct {
	ids []string
	err error
}

type exclusionRemovedMsg struct {
	id  string
	err error
}

func (m ExclusionsModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		ids, err := m.exclusions.List(ctx, m.owner)
		return exclusionsLoadedMsg{ids: ids, err: err}
	}
}

func (m ExclusionsModel) removeCmd() tea.Cmd {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.ids) {
		return nil
	}

	id := m.ids[idx]

	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		_, err := m.exclusions.Include(ctx, m.owner, id)
		return exclusionRemovedMsg{id: id, err: err}
	}
}
