package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/ledger/internal/exclusion"
	"github.com/MrJamesThe3rd/ledger/internal/flash"
	"github.com/MrJamesThe3rd/ledger/internal/ledger"
	"github.com/MrJamesThe3rd/ledger/internal/transaction"
)

type ledgerState int

const (
	ledgerStateBrowse ledgerState = iota
	ledgerStateConfirm
)

type LedgerModel struct {
	CommonModel
	ledger       *ledger.Service
	exclusions   *exclusion.Service
	transactions *transaction.Service
	owner        string

	state   ledgerState
	table   table.Model
	spinner spinner.Model
	form    *huh.Form

	weekStart time.Time
	timeframe Timeframe
	view      *ledger.View
	rows      []ledger.Row

	loading bool
	notices []flash.Message

	// Form bindings
	confirmClear bool
}

func NewLedgerModel(svc *ledger.Service, exclusions *exclusion.Service, transactions *transaction.Service, owner string) LedgerModel {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Account", Width: 18},
		{Title: "Name", Width: 32},
		{Title: "Category", Width: 24},
		{Title: "Amount", Width: 12},
		{Title: "Status", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
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

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return LedgerModel{
		ledger:       svc,
		exclusions:   exclusions,
		transactions: transactions,
		owner:        owner,
		table:        t,
		spinner:      sp,
		loading:      true,
	}
}

func (m LedgerModel) Title() string { return "Ledger" }
func (m LedgerModel) ShortHelp() string {
	if m.state == ledgerStateConfirm {
		return "Enter: confirm | Esc: cancel"
	}
	return "Esc: back | ←/→: week | t: this week | m: week/month | x: exclude/include | r: refresh | c: clear exclusions"
}

func (m LedgerModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.buildCmd())
}

func (m LedgerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ledgerLoadedMsg:
		m.loading = false
		m.view = msg.view
		m.notices = append(m.notices, msg.view.Notices...)
		m.refreshTable()
		return m, nil

	case ledgerChangedMsg:
		m.notices = msg.notices
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, m.buildCmd())

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.table.SetHeight(max(msg.Height-16, 5))
		return m, nil
	}

	switch m.state {
	case ledgerStateBrowse:
		return m.updateBrowse(msg)
	case ledgerStateConfirm:
		return m.updateConfirm(msg)
	}

	return m, nil
}

func (m LedgerModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok && !m.loading {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "left", "h":
			if m.view != nil {
				return m.reload(m.view.Week.Prev)
			}
		case "right", "l":
			if m.view != nil {
				return m.reload(m.view.Week.Next)
			}
		case "t":
			return m.reload(time.Time{})
		case "m":
			m.timeframe = m.timeframe.Toggle()
			m.refreshTable()
			return m, nil
		case "r":
			dropped := m.transactions.Refresh()
			m.notices = []flash.Message{flash.Info(fmt.Sprintf("Refreshing transaction data... (%d cached ranges dropped)", dropped))}
			m.loading = true
			return m, tea.Batch(m.spinner.Tick, m.buildCmd())
		case "x":
			return m, m.toggleCmd()
		case "c":
			return m.enterConfirm()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m LedgerModel) reload(weekStart time.Time) (tea.Model, tea.Cmd) {
	m.weekStart = weekStart
	m.notices = nil
	m.loading = true
	return m, tea.Batch(m.spinner.Tick, m.buildCmd())
}

func (m LedgerModel) enterConfirm() (tea.Model, tea.Cmd) {
	m.confirmClear = false
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Key("clear").
				Title("Clear all manual exclusions?").
				Affirmative("Clear").
				Negative("Cancel").
				Value(&m.confirmClear),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = ledgerStateConfirm
	m.table.Blur()
	return m, m.form.Init()
}

func (m LedgerModel) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			return m.leaveConfirm(), nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		confirmed := m.confirmClear
		m = m.leaveConfirm()
		if !confirmed {
			return m, nil
		}
		return m, m.clearCmd()
	case huh.StateAborted:
		return m.leaveConfirm(), nil
	}

	return m, cmd
}

func (m LedgerModel) leaveConfirm() LedgerModel {
	m.state = ledgerStateBrowse
	m.form = nil
	m.table.Focus()
	return m
}

func (m LedgerModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render(
			fmt.Sprintf("%s Loading transactions...", m.spinner.View()),
		)
	}

	sections := []string{m.headerView()}

	for _, n := range m.notices {
		sections = append(sections, renderNotice(n))
	}

	if m.view == nil || !m.view.Loaded() {
		sections = append(sections, "", "No transaction data available.")
		return lipgloss.NewStyle().Padding(1).Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
	}

	sections = append(sections,
		"",
		m.totalsView(),
		lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			Render(m.table.View()),
	)

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	if m.state == ledgerStateConfirm && m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render(fmt.Sprintf("%d manual exclusions\n\n%s", m.view.ManualCount(), m.form.View()))

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m LedgerModel) headerView() string {
	if m.view == nil {
		return ""
	}

	week := m.view.Week.String()
	if m.view.Week.IsCurrent {
		week += " (current)"
	}

	return fmt.Sprintf(
		"Week: %s | [m] Showing: %s | Excluded: %d manual, %d total",
		activeStyle(week),
		activeStyle(m.timeframe.String()),
		m.view.ManualCount(),
		m.view.CombinedCount(),
	)
}

func (m LedgerModel) totalsView() string {
	t := m.timeframe.Totals(m.view)

	lines := []string{
		fmt.Sprintf("%s %s", m.timeframe, m.timeframe.Window(m.view)),
		fmt.Sprintf("Income:   %s", FormatAmount(t.Income)),
		fmt.Sprintf("Expenses: %s", FormatAmount(t.Expenses)),
		fmt.Sprintf("Net:      %s", FormatAmount(t.Net)),
		fmt.Sprintf("Expenses (no rent): %s", FormatAmount(t.ExpensesExcludingRent)),
	}

	return lipgloss.NewStyle().PaddingBottom(1).Render(strings.Join(lines, "\n"))
}

func (m *LedgerModel) refreshTable() {
	if m.view == nil {
		m.rows = nil
		m.table.SetRows(nil)
		return
	}

	m.rows = m.timeframe.Rows(m.view)

	rows := make([]table.Row, 0, len(m.rows))
	for _, r := range m.rows {
		tx := r.Transaction
		rows = append(rows, table.Row{
			FormatDate(tx.Date),
			tx.Account,
			tx.Name,
			tx.Category,
			FormatAmount(tx.Amount),
			statusLabel(r.Class),
		})
	}

	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(max(len(rows)-1, 0))
	}
}

func statusLabel(c ledger.Classification) string {
	switch c {
	case ledger.ManuallyExcluded:
		return "excluded"
	case ledger.AutoExcluded:
		return "transfer"
	}

	return ""
}

// Messages

type ledgerLoadedMsg struct {
	view *ledger.View
}

type ledgerChangedMsg struct {
	notices []flash.Message
}

func (m LedgerModel) buildCmd() tea.Cmd {
	req := ledger.Request{
		Owner:     m.owner,
		Today:     time.Now(),
		WeekStart: weekParam(m.weekStart),
	}

	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		return ledgerLoadedMsg{view: m.ledger.Build(ctx, req)}
	}
}

func (m LedgerModel) toggleCmd() tea.Cmd {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.rows) {
		return nil
	}

	row := m.rows[idx]
	id := row.Transaction.ID

	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		short := exclusion.ShortID(id)

		if row.Class == ledger.ManuallyExcluded {
			removed, err := m.exclusions.Include(ctx, m.owner, id)
			switch {
			case err != nil:
				return ledgerChangedMsg{notices: []flash.Message{flash.Danger(fmt.Sprintf("Could not include transaction: %v", err))}}
			case !removed:
				return ledgerChangedMsg{notices: []flash.Message{flash.Warning(fmt.Sprintf("Transaction %s... was not manually excluded.", short))}}
			}

			return ledgerChangedMsg{notices: []flash.Message{flash.Info(fmt.Sprintf("Transaction %s... re-included.", short))}}
		}

		added, err := m.exclusions.Exclude(ctx, m.owner, id)
		switch {
		case err != nil:
			return ledgerChangedMsg{notices: []flash.Message{flash.Danger(fmt.Sprintf("Could not exclude transaction: %v", err))}}
		case !added:
			return ledgerChangedMsg{notices: []flash.Message{flash.Info(fmt.Sprintf("Transaction %s... was already manually excluded.", short))}}
		}

		return ledgerChangedMsg{notices: []flash.Message{flash.Warning(fmt.Sprintf("Transaction %s... manually excluded.", short))}}
	}
}

func (m LedgerModel) clearCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		n, err := m.exclusions.Clear(ctx, m.owner)
		switch {
		case err != nil:
			return ledgerChangedMsg{notices: []flash.Message{flash.Danger(fmt.Sprintf("Could not clear exclusions: %v", err))}}
		case n == 0:
			return ledgerChangedMsg{notices: []flash.Message{flash.Info("No manual exclusions to clear.")}}
		}

		return ledgerChangedMsg{notices: []flash.Message{flash.Info("Manually excluded transactions reset.")}}
	}
}
