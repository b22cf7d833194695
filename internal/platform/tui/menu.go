package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-patience/internal/registry"
	"github.com/vovakirdan/tui-patience/internal/storage"
)

const maxMenuSaves = 5

// MenuItem represents a selectable entry: a new deal of a game or a
// saved game to resume.
type MenuItem struct {
	GameID string
	Title  string
	SaveID string // set for saved games
}

// MenuModel is the Bubble Tea model for the game picker menu.
type MenuModel struct {
	items     []MenuItem
	cursor    int
	width     int
	height    int
	store     *storage.Store
	keyMapper *KeyMapper
	embedded  bool
	quitting  bool
	selected  *MenuItem // Set when user selects a game
	openStats bool      // True if user pressed Tab for statistics
}

// NewMenuModel creates a new menu model.
func NewMenuModel(store *storage.Store, width, height int) MenuModel {
	games := registry.List()
	items := make([]MenuItem, 0, len(games))

	for _, g := range games {
		title := g.Title
		if store != nil {
			if st, err := store.GetGameStats(g.ID); err == nil && st.Played > 0 {
				title = fmt.Sprintf("%s  (%d/%d won)", g.Title, st.Won, st.Played)
			}
		}
		items = append(items, MenuItem{GameID: g.ID, Title: title})
	}

	if store != nil {
		saves, err := store.ListSaves("")
		if err == nil {
			for _, s := range saves[:min(len(saves), maxMenuSaves)] {
				items = append(items, MenuItem{
					GameID: s.GameID,
					Title:  fmt.Sprintf("Resume %s #%s (%s)", s.GameID, s.Seed, s.CreatedAt.Format("Jan 02 15:04")),
					SaveID: s.ID,
				})
			}
		}
	}

	return MenuModel{
		items:     items,
		width:     width,
		height:    height,
		store:     store,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	return m, nil
}

func (m MenuModel) exit() tea.Cmd {
	if m.embedded {
		return nil
	}
	return tea.Quit
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "tab" {
		m.openStats = true
		return m, m.exit()
	}

	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, m.exit()
		}
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("  P A T I E N C E  ", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select a game", m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(cursor+item.Title, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Select  |  Tab: Statistics  |  Q: Quit"
	b.WriteString(centerText(controls, m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsStats returns true if user requested the statistics screen.
func (m MenuModel) WantsStats() bool {
	return m.openStats
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	n := len([]rune(text))
	if n >= width {
		return text
	}
	padding := (width - n) / 2
	return strings.Repeat(" ", padding) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	GameID     string
	SaveID     string
	Width      int
	Height     int
	WantsStats bool
	Quit       bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, width, height int) (MenuResult, error) {
	p := tea.NewProgram(
		NewMenuModel(store, width, height),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Width: width, Height: height}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Width: width, Height: height, Quit: true}, nil
	}

	result := MenuResult{Width: m.width, Height: m.height}
	switch {
	case m.WantsStats():
		result.WantsStats = true
	case m.IsQuitting() || m.Selected() == nil:
		result.Quit = true
	default:
		result.GameID = m.Selected().GameID
		result.SaveID = m.Selected().SaveID
	}
	return result, nil
}
