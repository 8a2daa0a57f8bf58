package ui

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(src *fakeSource) (*AppModel, tea.Model) {
	m := NewAppModel(ItemListConfig{
		Source:         src,
		ImageHost:      testImageHost,
		PlaceholderURL: testPlaceholder,
	})
	m.now = func() time.Time { return time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC) }
	return m, m.AsTeaModel()
}

func drainApp(t *testing.T, a tea.Model, cmd tea.Cmd) {
	t.Helper()
	drain(t, func(msg tea.Msg) tea.Cmd {
		_, c := a.Update(msg)
		return c
	}, cmd)
}

func TestAppModel_InitialLoadLowersReload(t *testing.T) {
	src := &fakeSource{list: chairList()}
	m, a := newTestApp(src)
	require.True(t, m.Reloading())

	drainApp(t, a, a.Init())

	assert.Equal(t, 1, src.calls)
	assert.False(t, m.Reloading())
	assert.Equal(t, 1, m.Loads())
	out := a.View()
	assert.Contains(t, out, "Items (1)")
	assert.Contains(t, out, "Name: Chair")
	assert.Contains(t, out, "loaded 09:30:00")
}

func TestAppModel_ReloadKeyFetchesAgain(t *testing.T) {
	src := &fakeSource{list: chairList()}
	m, a := newTestApp(src)
	drainApp(t, a, a.Init())

	_, cmd := a.Update(keyMsg("r"))
	drainApp(t, a, cmd)
	assert.Equal(t, 2, src.calls)
	assert.Equal(t, 2, m.Loads())

	_, cmd = a.Update(keyMsg(" "))
	assert.Nil(t, cmd)
	assert.Contains(t, a.View(), "Reload items")
	_, cmd = a.Update(keyMsg("r"))
	drainApp(t, a, cmd)
	assert.Equal(t, 3, src.calls)
}

func TestAppModel_RefreshAfterFailureRetriggers(t *testing.T) {
	captureLog(t)
	src := &fakeSource{err: errors.New("connection refused")}
	m, a := newTestApp(src)
	drainApp(t, a, a.Init())
	require.True(t, m.Reloading(), "reload stays raised when the load fails")
	require.Zero(t, m.Loads())

	src.err = nil
	src.list = chairList()
	drainApp(t, a, func() tea.Msg { return RefreshMsg{} })

	assert.Equal(t, 2, src.calls)
	assert.Equal(t, 1, m.Loads())
	assert.Len(t, m.Items.Items(), 1)
}

func TestAppModel_RefreshWhileLoadingIsIgnored(t *testing.T) {
	src := &fakeSource{list: chairList()}
	m, a := newTestApp(src)
	initCmd := a.Init()
	require.True(t, m.Items.Loading())

	_, cmd := a.Update(RefreshMsg{})
	assert.Nil(t, cmd)

	drainApp(t, a, initCmd)
	assert.Equal(t, 1, src.calls)
}

func TestAppModel_QuitKeys(t *testing.T) {
	_, a := newTestApp(&fakeSource{})
	for _, k := range []string{"q", "ctrl+c"} {
		_, cmd := a.Update(keyMsg(k))
		require.NotNil(t, cmd, k)
		_, ok := cmd().(tea.QuitMsg)
		assert.True(t, ok, "%s should quit", k)
	}
}

func TestAppModel_CloseDropsPendingLoad(t *testing.T) {
	src := &fakeSource{list: chairList()}
	m, a := newTestApp(src)
	cmd := a.Init()
	m.Close()

	drainApp(t, a, cmd)
	assert.Zero(t, m.Loads())
	assert.Contains(t, a.View(), "No items")
}
