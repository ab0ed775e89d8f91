package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-dash/internal/games/dash"
	"github.com/vovakirdan/tui-dash/internal/registry"
	"github.com/vovakirdan/tui-dash/internal/storage"
)

// Stats screen layout constants
const (
	tableMinWidth = 50
	maxRuns       = 100
)

// statsTab is one page of the stats screen.
type statsTab int

const (
	tabLevels statsTab = iota
	tabAchievements
	tabRuns
	tabCount
)

func (t statsTab) String() string {
	switch t {
	case tabLevels:
		return "Levels"
	case tabAchievements:
		return "Achievements"
	case tabRuns:
		return "Recent runs"
	default:
		return "?"
	}
}

// StatsKeyMap defines the key bindings for the stats screen.
type StatsKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	NextTab key.Binding
	PrevTab key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k StatsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextTab, k.PrevTab, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k StatsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.NextTab, k.PrevTab, k.Quit},
	}
}

// DefaultStatsKeyMap returns default key bindings.
func DefaultStatsKeyMap() StatsKeyMap {
	return StatsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next page"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev page"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// StatsModel is the Bubble Tea model for the stats screen.
type StatsModel struct {
	tracker   *dash.StatsTracker
	summaries map[int]*storage.LevelStats
	runs      []storage.RunEntry
	tab       statsTab
	table     table.Model
	help      help.Model
	keys      StatsKeyMap
	width     int
	height    int
	quitting  bool
}

// NewStatsModel creates the stats screen. store may be nil.
func NewStatsModel(store *storage.Store, width, height int) StatsModel {
	var statsStore dash.StatsStore
	if store != nil {
		statsStore = store
	}

	m := StatsModel{
		tracker: dash.NewStatsTracker(statsStore, 0),
		keys:    DefaultStatsKeyMap(),
		help:    help.New(),
		width:   width,
		height:  height,
	}
	if store != nil {
		if s, err := store.LevelSummaries(); err == nil {
			m.summaries = s
		}
		if r, err := store.RecentRuns(maxRuns); err == nil {
			m.runs = r
		}
	}

	m.table = m.createTable()
	return m
}

// createTable creates the table for the current tab.
func (m *StatsModel) createTable() table.Model {
	width := atLeast(m.width-4, tableMinWidth)

	var columns []table.Column
	var rows []table.Row
	switch m.tab {
	case tabLevels:
		columns = []table.Column{
			{Title: "ID", Width: 4},
			{Title: "Level", Width: 18},
			{Title: "Difficulty", Width: 10},
			{Title: "Best", Width: 6},
			{Title: "Runs", Width: 6},
			{Title: "Wins", Width: 6},
		}
		rows = m.levelRows()
	case tabAchievements:
		columns = []table.Column{
			{Title: "", Width: 2},
			{Title: "Achievement", Width: 18},
			{Title: "Goal", Width: atLeast(width-40, 20)},
			{Title: "Unlocked", Width: 14},
		}
		rows = m.achievementRows()
	case tabRuns:
		columns = []table.Column{
			{Title: "Level", Width: 18},
			{Title: "Result", Width: 10},
			{Title: "Date", Width: 14},
		}
		rows = m.runRows()
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(atLeast(m.height-10, 3)), // Leave room for header, counters and help
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// atLeast returns v, or min when v is smaller.
func atLeast(v, min int) int {
	if v < min {
		return min
	}
	return v
}

func (m *StatsModel) levelRows() []table.Row {
	levels := registry.List()
	rows := make([]table.Row, 0, len(levels))
	for _, l := range levels {
		runs, wins := "-", "-"
		if s := m.summaries[l.ID]; s != nil {
			runs = fmt.Sprintf("%d", s.Runs)
			wins = fmt.Sprintf("%d", s.Victories)
		}
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", l.ID),
			l.Name,
			l.Difficulty.Label(),
			fmt.Sprintf("%d%%", m.tracker.Best(l.ID)),
			runs,
			wins,
		})
	}
	return rows
}

func (m *StatsModel) achievementRows() []table.Row {
	rows := make([]table.Row, 0, len(dash.Achievements))
	unlocked := make(map[string]dash.Unlocked)
	for _, u := range m.tracker.Unlocked() {
		unlocked[u.ID] = u
	}
	for _, a := range dash.Achievements {
		mark, when := "·", ""
		if u, ok := unlocked[a.ID]; ok {
			mark = "★"
			when = u.At.Format("Jan 02 15:04")
		}
		rows = append(rows, table.Row{mark, a.Title, a.Description, when})
	}
	return rows
}

func (m *StatsModel) runRows() []table.Row {
	names := make(map[int]string)
	for _, l := range registry.List() {
		names[l.ID] = l.Name
	}

	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		name, ok := names[r.LevelID]
		if !ok {
			name = fmt.Sprintf("Level %d", r.LevelID)
		}
		result := fmt.Sprintf("%d%%", r.Percent)
		if r.Victory {
			result = "complete"
		}
		rows[i] = table.Row{name, result, r.PlayedAt.Format("Jan 02 15:04")}
	}
	return rows
}

// Init initializes the stats model.
func (m StatsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the stats screen.
func (m StatsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextTab):
			m.tab = (m.tab + 1) % tabCount
			m.table = m.createTable()
			return m, nil

		case key.Matches(msg, m.keys.PrevTab):
			m.tab = (m.tab + tabCount - 1) % tabCount
			m.table = m.createTable()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass other messages to table for scrolling
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the stats screen.
func (m StatsModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	b.WriteString(titleStyle.Render(centerText("STATS", m.width)))
	b.WriteString("\n\n")

	st := m.tracker.Stats()
	counterStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#A5F3FC"))
	b.WriteString(centerText(counterStyle.Render(fmt.Sprintf(
		"jumps %d   deaths %d   attempts %d   achievements %d/%d",
		st.TotalJumps, st.TotalDeaths, st.TotalAttempts, len(m.tracker.Unlocked()), len(dash.Achievements),
	)), m.width))
	b.WriteString("\n\n")

	// Tabs
	tabStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Padding(0, 1)
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)
	tabs := make([]string, tabCount)
	for t := statsTab(0); t < tabCount; t++ {
		if t == m.tab {
			tabs[t] = activeTabStyle.Render(t.String())
		} else {
			tabs[t] = tabStyle.Render(t.String())
		}
	}
	b.WriteString(centerText(lipgloss.JoinHorizontal(lipgloss.Top, tabs...), m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(centerText(tableStyle.Render(m.renderTableContent()), m.width))

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTableContent renders the table or an empty message.
func (m StatsModel) renderTableContent() string {
	if len(m.table.Rows()) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("Nothing recorded yet.\nPlay a level to fill this page!")
	}
	return m.table.View()
}

// centerText centers each line of text within the given width.
func centerText(text string, width int) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		w := lipgloss.Width(line)
		if w < width {
			lines[i] = strings.Repeat(" ", (width-w)/2) + line
		}
	}
	return strings.Join(lines, "\n")
}

// RunStats runs the stats screen.
func RunStats(store *storage.Store, width, height int) error {
	p := tea.NewProgram(
		NewStatsModel(store, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
