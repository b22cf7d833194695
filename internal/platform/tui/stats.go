package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-patience/internal/registry"
	"github.com/vovakirdan/tui-patience/internal/storage"
)

// Stats screen layout constants
const (
	minWidthForSidebar = 80 // Minimum width to show game list sidebar
	sidebarWidth       = 20 // Width of game list sidebar
	maxResults         = 100
)

// StatsKeyMap defines the key bindings for the stats screen.
type StatsKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextGame key.Binding
	PrevGame key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k StatsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextGame, k.PrevGame, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k StatsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextGame, k.PrevGame},
		{k.Back, k.Quit},
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
		NextGame: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next game"),
		),
		PrevGame: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev game"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// StatsModel is the Bubble Tea model for the statistics screen: the
// aggregate of one game and its latest results.
type StatsModel struct {
	games       []registry.GameInfo
	gameCursor  int
	store       *storage.Store
	summary     *storage.GameStats
	results     []storage.Result
	table       table.Model
	help        help.Model
	keys        StatsKeyMap
	width       int
	height      int
	embedded    bool
	quitting    bool
	goingBack   bool
	showSidebar bool
}

// NewStatsModel creates a stats screen, starting at gameID when given.
func NewStatsModel(store *storage.Store, gameID string, width, height int) StatsModel {
	m := StatsModel{
		games:       registry.List(),
		store:       store,
		keys:        DefaultStatsKeyMap(),
		help:        help.New(),
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	for i, g := range m.games {
		if g.ID == gameID {
			m.gameCursor = i
		}
	}

	m.table = m.createTable()
	if len(m.games) > 0 {
		m.load(m.games[m.gameCursor].ID)
	}
	return m
}

func (m *StatsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Date", Width: 13},
		{Title: "Seed", Width: 10},
		{Title: "Result", Width: 6},
		{Title: "Moves", Width: 6},
		{Title: "Time", Width: 8},
	}

	// The seed column takes what is left; MS deals are short, random seeds are not.
	tableWidth := m.width - 4
	if m.showSidebar {
		tableWidth -= sidebarWidth + 3
	}
	if rest := tableWidth - 13 - 6 - 6 - 8 - 10; rest > 10 {
		columns[1].Width = min(rest, 22)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-10)),
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

// load reads the aggregate and the results of a game.
func (m *StatsModel) load(gameID string) {
	m.summary, m.results = nil, nil
	if m.store != nil {
		if st, err := m.store.GetGameStats(gameID); err == nil {
			m.summary = st
		}
		if rs, err := m.store.RecentResults(gameID, maxResults); err == nil {
			m.results = rs
		}
	}
	m.updateTableRows()
}

func (m *StatsModel) updateTableRows() {
	m.table.SetRows(resultRows(m.results))
	m.table.GotoTop()
}

// resultRows formats results for the stats table.
func resultRows(results []storage.Result) []table.Row {
	rows := make([]table.Row, len(results))
	for i, r := range results {
		outcome := "lost"
		if r.Won {
			outcome = "won"
		}
		rows[i] = table.Row{
			r.CreatedAt.Format("Jan 02 15:04"),
			r.Seed,
			outcome,
			fmt.Sprintf("%d", r.Moves),
			formatDuration(r.Duration),
		}
	}
	return rows
}

// Summary formats an aggregate as one line.
func Summary(st *storage.GameStats) string {
	if st == nil || st.Played == 0 {
		return "no games played"
	}
	line := fmt.Sprintf("played %d  won %d (%.0f%%)", st.Played, st.Won, st.WinRate()*100)
	if st.Won > 0 {
		line += fmt.Sprintf("  best %d moves  fastest %s", st.BestMoves, formatDuration(st.Fastest))
	}
	return line
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
			return m, m.exit()

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, m.exit()

		case key.Matches(msg, m.keys.NextGame):
			if len(m.games) > 0 {
				m.gameCursor = (m.gameCursor + 1) % len(m.games)
				m.load(m.games[m.gameCursor].ID)
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevGame):
			if len(m.games) > 0 {
				m.gameCursor = (m.gameCursor - 1 + len(m.games)) % len(m.games)
				m.load(m.games[m.gameCursor].ID)
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m StatsModel) exit() tea.Cmd {
	if m.embedded {
		return nil
	}
	return tea.Quit
}

// View renders the stats screen.
func (m StatsModel) View() string {
	if m.quitting || (m.goingBack && !m.embedded) {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	title := "STATISTICS"
	if len(m.games) > 0 {
		title = fmt.Sprintf("STATISTICS - %s", m.games[m.gameCursor].Title)
	}
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n")
	b.WriteString(centerText(Summary(m.summary), m.width))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderWideLayout renders the table with a sidebar for game selection.
func (m StatsModel) renderWideLayout() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Games\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, g := range m.games {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.gameCursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}
		name := g.Title
		if maxLen := sidebarWidth - 6; len(name) > maxLen {
			name = name[:maxLen-1] + "."
		}
		sidebar.WriteString(style.Render(cursor + name))
		sidebar.WriteString("\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		sidebarStyle.Render(sidebar.String()), "  ", tableStyle.Render(m.renderTableContent()))
}

// renderNarrowLayout renders the current game name above the table.
func (m StatsModel) renderNarrowLayout() string {
	var b strings.Builder
	if len(m.games) > 0 {
		b.WriteString(centerText(fmt.Sprintf("< %s >", m.games[m.gameCursor].Title), m.width))
		b.WriteString("\n\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(tableStyle.Render(m.renderTableContent()))
	return b.String()
}

func (m StatsModel) renderTableContent() string {
	if len(m.results) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No results recorded yet.\nFinish a deal to see it here!")
	}
	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to the menu.
func (m StatsModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m StatsModel) IsQuitting() bool {
	return m.quitting
}

// RunStats runs the stats screen.
func RunStats(store *storage.Store, gameID string, width, height int) error {
	p := tea.NewProgram(
		NewStatsModel(store, gameID, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
