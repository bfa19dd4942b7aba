package tui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ewisehart/tally/internal/model"
	"github.com/ewisehart/tally/internal/service"
	"github.com/ewisehart/tally/internal/testutil"
)

func newLoadedModel(t *testing.T) (Model, service.Storage) {
	t.Helper()

	ctx := context.Background()
	store := testutil.SetupTestDB(t)

	batch := model.Batch{
		ID:        "batch-review",
		Source:    "extract",
		CreatedAt: time.Now(),
		Count:     3,
	}
	txns := testutil.MakeTransactions("batch-review", 3)
	require.NoError(t, store.SaveBatch(ctx, batch, txns))

	m := New(ctx, store, "batch-review")
	msg := m.Init()()
	updated, _ := m.Update(msg)
	return updated.(Model), store
}

func pressKey(t *testing.T, m Model, keys string) Model {
	t.Helper()
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(keys)})
	return updated.(Model)
}

func TestModelLoadsBatch(t *testing.T) {
	m, _ := newLoadedModel(t)

	assert.True(t, m.loaded)
	assert.Len(t, m.txns, 3)
	assert.Len(t, m.table.Rows(), 3)
	assert.Contains(t, m.status, "3 transactions loaded")
	assert.Empty(t, m.dirty)
}

func TestModelLoadFailure(t *testing.T) {
	ctx := context.Background()
	store := testutil.SetupTestDB(t)
	require.NoError(t, store.Close())

	m := New(ctx, store, "batch-gone")
	msg := m.Init()()

	updated, cmd := m.Update(msg)
	m = updated.(Model)

	assert.Error(t, m.err)
	assert.NotNil(t, cmd)
}

func TestCycleCategoryMarksDirty(t *testing.T) {
	m, _ := newLoadedModel(t)

	// Seed transactions start at Shopping; the next taxonomy entry is
	// Entertainment.
	m = pressKey(t, m, "c")

	assert.Equal(t, model.CategoryEntertainment, m.txns[0].Category)
	assert.True(t, m.dirty[m.txns[0].ID])
	assert.Equal(t, "*"+string(model.CategoryEntertainment), m.table.Rows()[0][4])
}

func TestCycleCategoryBackward(t *testing.T) {
	m, _ := newLoadedModel(t)

	m = pressKey(t, m, "C")

	assert.Equal(t, model.CategoryTransport, m.txns[0].Category)
	assert.True(t, m.dirty[m.txns[0].ID])
}

func TestCycleCategoryWrapsAround(t *testing.T) {
	m, _ := newLoadedModel(t)

	all := model.AllCategories()
	for range all {
		m = pressKey(t, m, "c")
	}

	// A full cycle lands back on the starting category.
	assert.Equal(t, model.CategoryShopping, m.txns[0].Category)
}

func TestToggleFlag(t *testing.T) {
	m, _ := newLoadedModel(t)

	m = pressKey(t, m, "f")
	assert.True(t, m.txns[0].NeedsClarification)
	assert.Equal(t, "⚠", m.table.Rows()[0][5])

	m = pressKey(t, m, "f")
	assert.False(t, m.txns[0].NeedsClarification)
	assert.Equal(t, "", m.table.Rows()[0][5])
}

func TestNavigationMovesCursor(t *testing.T) {
	m, _ := newLoadedModel(t)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = updated.(Model)
	assert.Equal(t, 1, m.table.Cursor())

	m = pressKey(t, m, "c")
	assert.Equal(t, model.CategoryEntertainment, m.txns[1].Category)
	assert.Equal(t, model.CategoryShopping, m.txns[0].Category)

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = updated.(Model)
	assert.Equal(t, 0, m.table.Cursor())
}

func TestSavePersistsEdits(t *testing.T) {
	m, store := newLoadedModel(t)

	m = pressKey(t, m, "c")
	m = pressKey(t, m, "f")

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})
	m = updated.(Model)
	require.NotNil(t, cmd)

	msg := cmd()
	saved, ok := msg.(savedMsg)
	require.True(t, ok)
	require.NoError(t, saved.err)
	assert.Equal(t, 1, saved.saved)

	updated, _ = m.Update(msg)
	m = updated.(Model)
	assert.Empty(t, m.dirty)
	assert.Contains(t, m.status, "saved 1")

	stored, err := store.GetTransactionsByBatch(context.Background(), "batch-review")
	require.NoError(t, err)
	assert.Equal(t, model.CategoryEntertainment, stored[0].Category)
	assert.True(t, stored[0].NeedsClarification)
}

func TestSaveWithNoEdits(t *testing.T) {
	m, _ := newLoadedModel(t)

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})
	m = updated.(Model)

	assert.Nil(t, cmd)
	assert.Equal(t, "nothing to save", m.status)
}

func TestQuitConfirmsWithUnsavedChanges(t *testing.T) {
	m, _ := newLoadedModel(t)
	m = pressKey(t, m, "c")

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	m = updated.(Model)
	assert.Nil(t, cmd)
	assert.False(t, m.quitting)
	assert.Contains(t, m.status, "unsaved")

	updated, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	m = updated.(Model)
	assert.NotNil(t, cmd)
	assert.True(t, m.quitting)
}

func TestQuitImmediatelyWhenClean(t *testing.T) {
	m, _ := newLoadedModel(t)

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	m = updated.(Model)

	assert.NotNil(t, cmd)
	assert.True(t, m.quitting)
}

func TestViewShowsBatchAndStatus(t *testing.T) {
	m, _ := newLoadedModel(t)

	view := m.View()
	assert.Contains(t, view, "batch-review")
	assert.Contains(t, view, "Test transaction 1")

	m = pressKey(t, m, "c")
	assert.Contains(t, m.View(), "1 unsaved")
}
