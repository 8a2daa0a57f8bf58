package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// AppModel is the root model. It owns the reload input of the item list and
// the load-completed callback, the way a page owns its list component.
type AppModel struct {
	Items      *ItemListView
	KeyHandler *KeyHandler

	reload     bool
	loads      int
	lastLoaded time.Time
	spinner    spinner.Model
	now        func() time.Time

	onLoadCompleted func()
}

// Ensure AppModel can be used as tea.Model via adapter.
var _ tea.Model = (*appModelAdapter)(nil)

// appModelAdapter wraps AppModel to implement tea.Model.
type appModelAdapter struct {
	*AppModel
}

// NewAppModel creates the root model. The list starts with reload raised so
// the first render triggers a fetch.
func NewAppModel(cfg ItemListConfig) *AppModel {
	reg := NewKeybindRegistry()
	reg.BindWithDesc("q", tea.Quit, "Quit")
	reg.BindWithDesc("ctrl+c", tea.Quit, "Quit")
	reg.BindWithDesc("r", refreshCmd, "Reload items")
	reg.BindWithDesc("SPC q", tea.Quit, "Quit")
	reg.BindWithDesc("SPC r", refreshCmd, "Reload items")

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccent))

	m := &AppModel{
		KeyHandler: NewKeyHandler(reg),
		reload:     true,
		spinner:    s,
		now:        time.Now,
	}
	m.onLoadCompleted = m.loadCompleted
	m.Items = NewItemListView(cfg, m.reload, m.onLoadCompleted)
	return m
}

func refreshCmd() tea.Msg { return RefreshMsg{} }

// loadCompleted is handed to the list as its completion callback.
func (m *AppModel) loadCompleted() {
	m.reload = false
	m.loads++
	m.lastLoaded = m.now()
}

// Reloading reports the current reload input.
func (m *AppModel) Reloading() bool {
	return m.reload
}

// Loads returns how many loads have completed.
func (m *AppModel) Loads() int {
	return m.loads
}

// Close tears down the list, dropping any in-flight fetch.
func (m *AppModel) Close() {
	m.Items.Close()
}

// refresh raises reload. If it is still raised from an attempt that failed,
// it is lowered first so the list sees a new rising edge.
func (m *AppModel) refresh() tea.Cmd {
	if m.reload && m.Items.Loading() {
		return nil
	}
	var cmds []tea.Cmd
	if m.reload {
		m.reload = false
		cmds = append(cmds, m.Items.SetProps(m.reload, m.onLoadCompleted))
	}
	m.reload = true
	cmds = append(cmds, m.Items.SetProps(m.reload, m.onLoadCompleted), m.spinner.Tick)
	return tea.Batch(cmds...)
}

// Init implements tea.Model.
func (a *appModelAdapter) Init() tea.Cmd {
	return tea.Batch(a.Items.Init(), a.spinner.Tick)
}

// Update implements tea.Model.
func (a *appModelAdapter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case RefreshMsg:
		return a, a.refresh()
	case spinner.TickMsg:
		if !a.Items.Loading() {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd
	case tea.KeyMsg:
		if a.KeyHandler != nil {
			if consumed, keyCmd := a.KeyHandler.Handle(msg); consumed {
				return a, keyCmd
			}
		}
	}

	_, cmd := a.Items.Update(msg)
	// The completion callback may have lowered reload; push it back down.
	return a, tea.Batch(cmd, a.Items.SetProps(a.reload, a.onLoadCompleted))
}

// View implements tea.Model.
func (a *appModelAdapter) View() string {
	var b strings.Builder
	title := fmt.Sprintf("Items (%d)", len(a.Items.Items()))
	if a.Items.Loading() {
		title += " " + a.spinner.View()
	}
	b.WriteString(Styles.Title.Render(title) + "\n")
	hint := "Press [SPC] for commands · r reload · q quit"
	if !a.lastLoaded.IsZero() {
		hint += " · loaded " + a.lastLoaded.Format("15:04:05")
	}
	b.WriteString(Styles.Hint.Render(hint) + "\n\n")
	b.WriteString(a.Items.View())
	if help := RenderKeybindHelp(a.KeyHandler); help != "" {
		b.WriteString("\n" + help)
	}
	return b.String()
}

// AsTeaModel returns a tea.Model adapter for use with tea.NewProgram.
func (m *AppModel) AsTeaModel() tea.Model {
	return &appModelAdapter{AppModel: m}
}
