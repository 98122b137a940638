// Package tui renders the patient roster screen. It is a consumer of the
// list controller: it reads the controller's derived state and feeds
// keystrokes, scope changes, cancellations and pagination requests back in.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"ward/internal/lister"
	"ward/internal/logging"
	"ward/internal/patient"
	"ward/internal/resource"
)

const (
	// chrome is the number of lines taken by the title, tabs, search box and
	// footer.
	chrome = 5

	mrnWidth    = 12
	wardWidth   = 14
	statusWidth = 12
	ageWidth    = 4
)

// Roster is the controller the screen is backed by.
type Roster = lister.Scoped[*patient.Patient, patient.Query, patient.Filter]

type Options struct {
	Roster *Roster
	Logger *logging.Logger
}

type Model struct {
	roster *Roster
	logger *logging.Logger

	search  textinput.Model
	spinner spinner.Model

	// state is the most recently observed controller state; re-read whenever
	// the controller publishes a transition.
	state  lister.State[*patient.Patient]
	cursor int

	width  int
	height int

	// err is displayed once and cleared on the next keypress.
	err string

	showLogs bool
}

func New(opts Options) Model {
	search := textinput.New()
	search.Prompt = "Search: "
	search.Placeholder = "name or MRN"
	search.Focus()

	return Model{
		roster:  opts.Roster,
		logger:  opts.Logger,
		search:  search,
		spinner: spinner.New(spinner.WithSpinner(spinner.MiniDot)),
		state:   opts.Roster.State(),
		width:   80,
		height:  24,
	}
}

func (m Model) Init() tea.Cmd {
	// First appearance: a redundant load is skipped by the controller.
	m.roster.Load(false)
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.search.Width = msg.Width - len(m.search.Prompt) - 2
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case resource.Event[lister.Snapshot]:
		return m.refresh(msg.Payload), nil

	case tea.KeyMsg:
		m.err = ""
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Logs):
			m.showLogs = !m.showLogs
			return m, nil
		case key.Matches(msg, keys.NextScope):
			m.roster.SetScope(nextFilter(m.roster.Scope(), 1))
			return m, nil
		case key.Matches(msg, keys.PrevScope):
			m.roster.SetScope(nextFilter(m.roster.Scope(), -1))
			return m, nil
		case key.Matches(msg, keys.Reload):
			m.roster.Load(true)
			return m, nil
		case key.Matches(msg, keys.Cancel):
			m.roster.CancelLoad()
			return m, nil
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case key.Matches(msg, keys.Down):
			items, _ := m.state.Content()
			if m.cursor < len(items)-1 {
				m.cursor++
			} else {
				// Reaching the pagination affordance fetches the next page;
				// the controller ignores this unless pagination is ready.
				m.roster.LoadMore()
			}
			return m, nil
		case key.Matches(msg, keys.PageDown):
			m.roster.LoadMore()
			return m, nil
		}

		// Remaining keys belong to the search box; each edit feeds the
		// controller's debounced search.
		before := m.search.Value()
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		cmds = append(cmds, cmd)
		if m.search.Value() != before {
			m.roster.Search(m.search.Value())
		}
		return m, tea.Batch(cmds...)
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

// refresh re-reads the controller after it has published a transition.
func (m Model) refresh(snap lister.Snapshot) Model {
	m.state = m.roster.State()
	if items, ok := m.state.Content(); ok && m.cursor >= len(items) {
		m.cursor = len(items) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if snap.Kind == lister.StateErrored {
		m.err = snap.Message
	}
	return m
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("ward · patient roster"))
	b.WriteString("\n")
	b.WriteString(m.viewTabs())
	b.WriteString("\n")
	b.WriteString(m.search.View())
	b.WriteString("\n")

	if m.showLogs {
		b.WriteString(m.viewLogs())
	} else {
		b.WriteString(m.viewRoster())
	}

	b.WriteString("\n")
	b.WriteString(m.viewFooter())
	return b.String()
}

func (m Model) viewTabs() string {
	var tabs []string
	for _, f := range patient.Filters() {
		style := tabStyle
		if f == m.roster.Scope() {
			style = activeTabStyle
		}
		tabs = append(tabs, style.Render(string(f)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewRoster() string {
	items, ok := m.state.Content()
	if !ok {
		if cfg, isEmpty := m.state.Empty(); isEmpty && m.state.Kind() == lister.StateEmpty {
			return emptyStyle.Render(fmt.Sprintf("%s %s", cfg.Icon, cfg.Label))
		}
		return ""
	}

	nameWidth := m.width - mrnWidth - wardWidth - statusWidth - ageWidth - 4
	if nameWidth < 10 {
		nameWidth = 10
	}

	var rows []string
	rows = append(rows, headerRowStyle.Render(renderRow("NAME", "MRN", "WARD", "STATUS", "AGE", nameWidth)))

	visible := m.visibleWindow(len(items))
	for i := visible.start; i < visible.end; i++ {
		p := items[i]
		row := renderRow(p.Name, p.MRN, p.Ward, string(p.Status), fmt.Sprintf("%d", p.Age), nameWidth)
		if i == m.cursor {
			row = cursorRowStyle.Render(row)
		}
		rows = append(rows, row)
	}
	return strings.Join(rows, "\n")
}

type window struct {
	start, end int
}

// visibleWindow keeps the cursor within the rows that fit on screen.
func (m Model) visibleWindow(n int) window {
	max := m.height - chrome - 1 // minus header row
	if max < 1 {
		max = 1
	}
	if n <= max {
		return window{0, n}
	}
	start := m.cursor - max/2
	if start < 0 {
		start = 0
	}
	if start+max > n {
		start = n - max
	}
	return window{start, start + max}
}

func renderRow(name, mrn, ward, status, age string, nameWidth int) string {
	return fmt.Sprintf("%s  %s  %s  %s  %s",
		pad(name, nameWidth),
		pad(mrn, mrnWidth),
		pad(ward, wardWidth),
		pad(status, statusWidth),
		pad(age, ageWidth),
	)
}

// pad truncates s to width cells then right-pads it to exactly that many.
func pad(s string, width int) string {
	s = runewidth.Truncate(s, width, "…")
	return s + strings.Repeat(" ", width-runewidth.StringWidth(s))
}

func (m Model) viewLogs() string {
	if m.logger == nil {
		return ""
	}
	max := m.height - chrome
	var rows []string
	for i, msg := range m.logger.Messages() {
		if i >= max {
			break
		}
		rows = append(rows, fmt.Sprintf("%s %s %s",
			msg.Time.Format("15:04:05"), pad(msg.Level, 5), msg.Message))
	}
	return strings.Join(rows, "\n")
}

func (m Model) viewFooter() string {
	if m.err != "" {
		return errorStyle.Render("✗ " + m.err)
	}

	if m.state.Kind() == lister.StateLoading {
		return m.spinner.View() + " loading… (esc to cancel)"
	}

	items, ok := m.state.Content()
	if !ok {
		return footerStyle.Render("0 patients")
	}

	status := fmt.Sprintf("%d patients", len(items))
	switch m.state.Paging() {
	case lister.PagingReady:
		status += " · more available (↓ to fetch)"
	case lister.PagingInProgress:
		status = m.spinner.View() + " " + status + " · fetching more… (esc to cancel)"
	default:
		status += " · end of list"
	}
	return footerStyle.Render(status)
}

func nextFilter(current patient.Filter, delta int) patient.Filter {
	filters := patient.Filters()
	for i, f := range filters {
		if f == current {
			return filters[(i+delta+len(filters))%len(filters)]
		}
	}
	return filters[0]
}
