// Package tui is the interactive list browser of the CLI. It drives a
// listctl.Controller from key presses and renders its snapshots.
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dheerendra45/news-analyzer/internal/client/listctl"
	"github.com/dheerendra45/news-analyzer/internal/client/view"
)

// Columns describes how items of one collection are shown.
type Columns[T any] struct {
	Headers []string
	Row     func(T) []string
	// Detail renders the selected item; nil disables the detail pane.
	Detail func(T) string
}

// fetchedMsg is sent when a controller operation returns.
type fetchedMsg struct{}

// Model is the bubbletea model of the browser.
type Model[T any] struct {
	ctx     context.Context
	title   string
	ctl     *listctl.Controller[T]
	cols    Columns[T]
	styles  view.Styles
	snap    listctl.Snapshot[T]
	search  textinput.Model
	spinner spinner.Model

	searching bool
	detail    bool
	cursor    int
}

// New builds a browser over ctl. The initial query is loaded by Init.
func New[T any](ctx context.Context, title string, ctl *listctl.Controller[T], cols Columns[T]) Model[T] {
	ti := textinput.New()
	ti.Placeholder = "Search..."
	ti.CharLimit = 100
	ti.Width = 40
	ti.SetValue(ctl.Snapshot().SearchInput)

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model[T]{
		ctx:     ctx,
		title:   title,
		ctl:     ctl,
		cols:    cols,
		styles:  view.DefaultStyles(),
		snap:    ctl.Snapshot(),
		search:  ti,
		spinner: sp,
	}
}

// Init loads the current query and starts the spinner.
func (m Model[T]) Init() tea.Cmd {
	return tea.Batch(m.do(m.ctl.Refresh), m.spinner.Tick)
}

// do runs op off the UI loop. The resulting message carries no data: the
// model always re-reads the controller, so a late reply cannot overwrite a
// newer snapshot.
func (m Model[T]) do(op func(context.Context) listctl.Snapshot[T]) tea.Cmd {
	return func() tea.Msg {
		op(m.ctx)
		return fetchedMsg{}
	}
}

// Snapshot returns the state currently displayed.
func (m Model[T]) Snapshot() listctl.Snapshot[T] { return m.snap }

// Update handles key presses and fetch completions.
func (m Model[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case fetchedMsg:
		m.sync()
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.sync()
		return m, cmd
	case tea.WindowSizeMsg:
		m.search.Width = max(10, msg.Width-12)
		return m, nil
	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m Model[T]) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.searching = false
		m.search.Blur()
		m.ctl.SetSearchInput(m.search.Value())
		return m, m.do(m.ctl.SubmitSearch)
	case tea.KeyEsc:
		m.searching = false
		m.search.Blur()
		m.search.SetValue(m.snap.SearchInput)
		return m, nil
	case tea.KeyCtrlC:
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.ctl.SetSearchInput(m.search.Value())
	return m, cmd
}

func (m Model[T]) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.detail = false
	case "/":
		m.searching = true
		m.detail = false
		return m, m.search.Focus()
	case "up", "k":
		m.cursor = max(0, m.cursor-1)
	case "down", "j":
		m.cursor = min(len(m.snap.Items)-1, m.cursor+1)
		m.cursor = max(0, m.cursor)
	case "enter":
		if m.cols.Detail != nil && len(m.snap.Items) > 0 {
			m.detail = !m.detail
		}
	case "right", "n":
		return m.page(m.ctl.Next)
	case "left", "p":
		return m.page(m.ctl.Prev)
	case "home", "g":
		return m.page(m.ctl.First)
	case "end", "G":
		return m.page(m.ctl.Last)
	case "r":
		return m, m.do(m.ctl.Refresh)
	case "c":
		m.search.SetValue("")
		return m.page(m.ctl.ClearAll)
	case "x":
		if n := len(m.snap.Chips); n > 0 {
			key := m.snap.Chips[n-1].Key
			if key == listctl.DefaultSearchKey {
				m.search.SetValue("")
			}
			return m.page(func(ctx context.Context) listctl.Snapshot[T] {
				return m.ctl.ClearFilter(ctx, key)
			})
		}
	}
	return m, nil
}

func (m Model[T]) page(op func(context.Context) listctl.Snapshot[T]) (tea.Model, tea.Cmd) {
	m.cursor = 0
	m.detail = false
	return m, m.do(op)
}

func (m *Model[T]) sync() {
	m.snap = m.ctl.Snapshot()
	if m.cursor >= len(m.snap.Items) {
		m.cursor = max(0, len(m.snap.Items)-1)
	}
}

// View renders the browser.
func (m Model[T]) View() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render(m.title))
	if m.snap.State == listctl.Loading {
		sb.WriteString(" " + m.spinner.View())
	}
	sb.WriteString("\n")
	if m.searching || m.snap.SearchInput != "" {
		sb.WriteString(m.search.View() + "\n")
	}
	sb.WriteString("\n")

	if m.detail && m.cursor < len(m.snap.Items) {
		sb.WriteString(m.cols.Detail(m.snap.Items[m.cursor]))
		sb.WriteString("\n\n" + m.styles.Muted.Render("esc back · q quit"))
		return sb.String()
	}

	cursor := m.cursor
	row := func(it T) []string {
		cells := m.cols.Row(it)
		mark := " "
		if cursor == 0 {
			mark = "›"
		}
		cursor--
		return append([]string{mark}, cells...)
	}
	headers := append([]string{" "}, m.cols.Headers...)
	sb.WriteString(view.List(m.snap, headers, row, m.styles))
	sb.WriteString("\n\n" + m.styles.Muted.Render(help))
	return sb.String()
}

const help = "↑/↓ select · enter open · ←/→ page · g/G first/last · / search · x drop filter · c clear · r refresh · q quit"
