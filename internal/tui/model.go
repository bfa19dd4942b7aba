// Package tui implements the interactive review screen for stored batches.
// It lists one batch's transactions in a table; edits are kept in memory
// until the user saves, then written through the storage interface.
package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ewisehart/tally/internal/cli"
	"github.com/ewisehart/tally/internal/common"
	"github.com/ewisehart/tally/internal/model"
	"github.com/ewisehart/tally/internal/service"
)

const descriptionColumnWidth = 32

// Model holds the review screen state.
type Model struct {
	ctx            context.Context
	store          service.Storage
	err            error
	dirty          map[string]bool
	txns           []model.Transaction
	batchID        string
	status         string
	keys           KeyMap
	help           help.Model
	table          table.Model
	width          int
	height         int
	loaded         bool
	quitting       bool
	confirmDiscard bool
}

// New creates a review model for one stored batch.
func New(ctx context.Context, store service.Storage, batchID string) Model {
	columns := []table.Column{
		{Title: "Date", Width: 10},
		{Title: "Description", Width: descriptionColumnWidth},
		{Title: "Amount", Width: 13},
		{Title: "Direction", Width: 9},
		{Title: "Category", Width: 24},
		{Title: "", Width: 2},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	// The table's single-letter paging keys collide with the edit keys.
	t.KeyMap.PageDown.SetKeys("pgdown")
	t.KeyMap.PageUp.SetKeys("pgup")
	t.KeyMap.HalfPageDown.SetKeys("ctrl+d")
	t.KeyMap.HalfPageUp.SetKeys("ctrl+u")

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(cli.SubtleColor).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return Model{
		ctx:     ctx,
		store:   store,
		dirty:   make(map[string]bool),
		batchID: batchID,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		table:   t,
	}
}

// Init starts loading the batch.
func (m Model) Init() tea.Cmd {
	return loadTransactions(m.ctx, m.store, m.batchID)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetHeight(max(5, m.height-6))
		m.help.Width = msg.Width

	case transactionsLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.quitting = true
			return m, tea.Quit
		}
		m.txns = msg.txns
		m.loaded = true
		m.table.SetRows(m.buildRows())
		if len(m.txns) == 0 {
			m.status = "no transactions in this batch"
		} else {
			m.status = fmt.Sprintf("%d transactions loaded", len(m.txns))
		}

	case savedMsg:
		if msg.err != nil {
			m.status = cli.FormatError(fmt.Sprintf("save failed after %d rows: %v", msg.saved, msg.err))
		} else {
			m.dirty = make(map[string]bool)
			m.table.SetRows(m.buildRows())
			m.status = cli.FormatSuccess(fmt.Sprintf("saved %d transactions", msg.saved))
		}

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			if len(m.dirty) > 0 && !m.confirmDiscard {
				m.confirmDiscard = true
				m.status = cli.FormatWarning(fmt.Sprintf("%d unsaved changes, press again to discard", len(m.dirty)))
				return m, nil
			}
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help):
			m.confirmDiscard = false
			m.help.ShowAll = !m.help.ShowAll

		case key.Matches(msg, m.keys.NextCategory):
			m.confirmDiscard = false
			m.cycleCategory(1)

		case key.Matches(msg, m.keys.PrevCategory):
			m.confirmDiscard = false
			m.cycleCategory(-1)

		case key.Matches(msg, m.keys.ToggleFlag):
			m.confirmDiscard = false
			m.toggleFlag()

		case key.Matches(msg, m.keys.Save):
			m.confirmDiscard = false
			if len(m.dirty) == 0 {
				m.status = "nothing to save"
				return m, nil
			}
			m.status = "saving..."
			return m, saveEdits(m.ctx, m.store, m.txns, m.dirty)

		default:
			m.confirmDiscard = false
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the review screen.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.err != nil {
		return cli.FormatError(fmt.Sprintf("failed to load batch: %v", m.err)) + "\n"
	}
	if !m.loaded {
		return fmt.Sprintf("Loading batch %s...\n", m.batchID)
	}

	title := cli.FormatTitle(fmt.Sprintf("Reviewing %s", m.batchID))
	status := m.status
	if len(m.dirty) > 0 && !m.confirmDiscard {
		status = cli.WarningStyle.Render(fmt.Sprintf("%d unsaved", len(m.dirty))) + "  " + status
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		m.table.View(),
		cli.SubtleStyle.Render(status),
		m.help.View(m.keys),
	) + "\n"
}

// cycleCategory steps the selected row's category through the taxonomy.
func (m *Model) cycleCategory(step int) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.txns) {
		return
	}

	all := model.AllCategories()
	current := 0
	for i, cat := range all {
		if cat == m.txns[idx].Category {
			current = i
			break
		}
	}

	next := (current + step + len(all)) % len(all)
	m.txns[idx].Category = all[next]
	m.dirty[m.txns[idx].ID] = true
	m.table.SetRows(m.buildRows())
	m.status = fmt.Sprintf("%s: %s", common.Truncate(m.txns[idx].Description, 30), all[next])
}

// toggleFlag flips the selected row's clarification flag.
func (m *Model) toggleFlag() {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.txns) {
		return
	}

	m.txns[idx].NeedsClarification = !m.txns[idx].NeedsClarification
	m.dirty[m.txns[idx].ID] = true
	m.table.SetRows(m.buildRows())
	if m.txns[idx].NeedsClarification {
		m.status = fmt.Sprintf("%s flagged for clarification", common.Truncate(m.txns[idx].Description, 30))
	} else {
		m.status = fmt.Sprintf("%s unflagged", common.Truncate(m.txns[idx].Description, 30))
	}
}

func (m Model) buildRows() []table.Row {
	rows := make([]table.Row, 0, len(m.txns))
	for _, txn := range m.txns {
		flag := ""
		if txn.NeedsClarification {
			flag = "⚠"
		}
		category := string(txn.Category)
		if m.dirty[txn.ID] {
			category = "*" + category
		}
		rows = append(rows, table.Row{
			txn.Date,
			common.Truncate(txn.Description, descriptionColumnWidth),
			fmt.Sprintf("%.2f %s", txn.Amount, txn.Currency),
			string(txn.Direction),
			category,
			flag,
		})
	}
	return rows
}
