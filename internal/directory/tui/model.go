// Package tui is the interactive terminal front end of the directory.
package tui

import (
	"context"
	"fmt"
	"slices"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/gartstein/directory/internal/directory/controller"
	"github.com/gartstein/directory/internal/directory/models"
	"github.com/gartstein/directory/internal/directory/render"
	"github.com/gartstein/directory/internal/directory/source"
	"github.com/gartstein/directory/internal/directory/state"
	"go.uber.org/zap"
)

const title = "Company Directory"

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	activeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("178"))
)

// fetchedMsg carries the outcome of the background fetch.
type fetchedMsg struct {
	result *source.Result
	err    error
}

// Model is the bubbletea model driving a controller.Directory.
type Model struct {
	ctx    context.Context
	dir    *controller.Directory
	src    source.Source
	logger *zap.Logger

	renderer *render.Renderer
	spinner  spinner.Model
	search   textinput.Model
	help     help.Model
	keys     KeyMap

	snap      controller.Snapshot
	searching bool
}

// New creates the model. src is fetched once when the program starts and the
// outcome is committed to dir.
func New(ctx context.Context, dir *controller.Directory, src source.Source, logger *zap.Logger) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = activeStyle

	in := textinput.New()
	in.Prompt = "Search: "
	in.Placeholder = "name or description"
	in.SetValue(dir.State().Filter.Search)

	return Model{
		ctx:      ctx,
		dir:      dir,
		src:      src,
		logger:   logger.Named("tui"),
		renderer: render.New(0),
		spinner:  sp,
		search:   in,
		help:     help.New(),
		keys:     DefaultKeyMap,
		snap:     dir.Snapshot(),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetch())
}

func (m Model) fetch() tea.Cmd {
	ctx, src := m.ctx, m.src
	return func() tea.Msg {
		res, err := src.Fetch(ctx)
		return fetchedMsg{result: res, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.renderer.SetWidth(msg.Width)
		m.help.Width = msg.Width
		m.search.Width = max(0, msg.Width-len(m.search.Prompt)-1)
		return m, nil

	case fetchedMsg:
		m.snap = m.dir.Apply(msg.result, msg.err)
		m.logger.Debug("Fetch settled", zap.Stringer("status", m.snap.Status))
		return m, nil

	case spinner.TickMsg:
		if m.snap.Status != controller.Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return m, tea.Quit
	case key.Matches(msg, m.keys.Done):
		m.searching = false
		m.search.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if term := m.search.Value(); term != m.snap.State.Filter.Search {
		m.snap = m.dir.Dispatch(state.SetSearch{Term: term})
	}
	return m, cmd
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}
	if key.Matches(msg, m.keys.Help) {
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}
	if m.snap.Status != controller.Ready {
		return m, nil
	}

	s := m.snap.State
	var action state.Action
	switch {
	case key.Matches(msg, m.keys.Search):
		m.searching = true
		cmd := m.search.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.Industry):
		action = state.SetIndustry{Industry: cycle(m.snap.Industries, s.Filter.Industry)}
	case key.Matches(msg, m.keys.Location):
		action = state.SetLocation{Location: cycle(m.snap.Locations, s.Filter.Location)}
	case key.Matches(msg, m.keys.SortBy):
		action = state.SetSortField{Field: nextSortField(s.Sort.Field)}
	case key.Matches(msg, m.keys.Order):
		dir := models.Descending
		if s.Sort.Direction == models.Descending {
			dir = models.Ascending
		}
		action = state.SetSortDirection{Direction: dir}
	case key.Matches(msg, m.keys.Prev):
		action = state.PrevPage{}
	case key.Matches(msg, m.keys.Next):
		action = state.NextPage{}
	case key.Matches(msg, m.keys.View):
		action = state.ToggleViewMode{}
	case key.Matches(msg, m.keys.Reset):
		action = state.Reset{}
		m.search.SetValue("")
	default:
		return m, nil
	}

	m.snap = m.dir.Dispatch(action)
	return m, nil
}

// cycle returns the option after current, wrapping through "" (all).
func cycle(options []string, current string) string {
	if len(options) == 0 {
		return ""
	}
	i := slices.Index(options, current)
	if i == len(options)-1 {
		return ""
	}
	return options[i+1]
}

func nextSortField(current models.SortField) models.SortField {
	fields := models.SortFields()
	i := slices.Index(fields, current)
	return fields[(i+1)%len(fields)]
}

func (m Model) View() string {
	var body string
	switch m.snap.Status {
	case controller.Loading:
		body = m.renderer.Loading(m.spinner.View())
	case controller.Failed:
		body = m.renderer.Error(m.snap.Message)
	default:
		parts := []string{m.search.View(), m.filters(), "", m.renderer.Summary(m.snap.Page), m.renderer.Page(m.snap.Page, m.snap.State.ViewMode)}
		if pg := m.renderer.Pagination(m.snap.Page); pg != "" {
			parts = append(parts, pg)
		}
		if m.snap.Rejected > 0 {
			parts = append(parts, noticeStyle.Render(fmt.Sprintf("%d malformed records were skipped", m.snap.Rejected)))
		}
		body = lipgloss.JoinVertical(lipgloss.Left, parts...)
	}
	return lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(title), body, "", m.help.View(m.keys))
}

// filters renders the active facet and sort selection.
func (m Model) filters() string {
	s := m.snap.State
	return lipgloss.JoinHorizontal(lipgloss.Top,
		labelStyle.Render("Industry: "), optionLabel(s.Filter.Industry, "All Industries"),
		labelStyle.Render("  Location: "), optionLabel(s.Filter.Location, "All Locations"),
		labelStyle.Render("  Sort: "), activeStyle.Render(s.Sort.Field.Label()+" "+arrow(s.Sort.Direction)),
	)
}

func optionLabel(value, all string) string {
	if value == "" {
		return labelStyle.Render(all)
	}
	return activeStyle.Render(value)
}

func arrow(d models.SortDirection) string {
	if d == models.Descending {
		return "↓"
	}
	return "↑"
}
