package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-patience/internal/core"
)

// KeyMap defines the key bindings of the board.
type KeyMap struct {
	Left         key.Binding
	Right        key.Binding
	Select       key.Binding
	Cancel       key.Binding
	Deal         key.Binding
	Undo         key.Binding
	Redo         key.Binding
	Hint         key.Binding
	Demo         key.Binding
	Restart      key.Binding
	NewGame      key.Binding
	Save         key.Binding
	Bookmark     key.Binding
	GotoBookmark key.Binding
	UndoGoto     key.Binding
	Special      key.Binding
	Screenshot   key.Binding
	Help         key.Binding
	Quit         key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Select, k.Deal, k.Undo, k.Hint, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Select, k.Cancel, k.Deal, k.Special},
		{k.Undo, k.Redo, k.Hint, k.Demo},
		{k.Bookmark, k.GotoBookmark, k.UndoGoto, k.Save},
		{k.Restart, k.NewGame, k.Screenshot, k.Help, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "prev pile"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l", "tab"),
			key.WithHelp("→/l", "next pile"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "pick/drop"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "drop selection"),
		),
		Deal: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "deal"),
		),
		Undo: key.NewBinding(
			key.WithKeys("u", "ctrl+z"),
			key.WithHelp("u", "undo"),
		),
		Redo: key.NewBinding(
			key.WithKeys("ctrl+r", "ctrl+y"),
			key.WithHelp("C-r", "redo"),
		),
		Hint: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "hint"),
		),
		Demo: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "demo"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		NewGame: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new deal"),
		),
		Save: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "save"),
		),
		Bookmark: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "bookmark"),
		),
		GotoBookmark: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "go to bookmark"),
		),
		UndoGoto: key.NewBinding(
			key.WithKeys("G"),
			key.WithHelp("G", "undo go to"),
		),
		Special: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "merci"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("C-s", "screenshot"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// KeyMapper translates Bubble Tea key messages to board actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	keys    KeyMap
	actions []boundAction
}

type boundAction struct {
	binding *key.Binding
	action  core.Action
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	km := &KeyMapper{keys: DefaultKeyMap()}
	k := &km.keys
	km.actions = []boundAction{
		{&k.Quit, core.ActionQuit},
		{&k.Left, core.ActionLeft},
		{&k.Right, core.ActionRight},
		{&k.Select, core.ActionSelect},
		{&k.Cancel, core.ActionCancel},
		{&k.Deal, core.ActionDeal},
		{&k.Undo, core.ActionUndo},
		{&k.Redo, core.ActionRedo},
		{&k.Hint, core.ActionHint},
		{&k.Demo, core.ActionDemo},
		{&k.Restart, core.ActionRestart},
		{&k.NewGame, core.ActionNewGame},
		{&k.Save, core.ActionSave},
		{&k.Bookmark, core.ActionBookmark},
		{&k.GotoBookmark, core.ActionGotoBookmark},
		{&k.UndoGoto, core.ActionUndoGoto},
		{&k.Special, core.ActionSpecial},
		{&k.Help, core.ActionHelp},
	}
	return km
}

// Keys returns the bindings, for the help view.
func (km *KeyMapper) Keys() KeyMap {
	return km.keys
}

// MapKey translates a key message to a board action.
// Returns ActionNone for unbound keys.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) core.Action {
	for _, b := range km.actions {
		if key.Matches(msg, *b.binding) {
			return b.action
		}
	}
	return core.ActionNone
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	key := msg.String()

	switch key {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	}

	return MenuActionNone
}
