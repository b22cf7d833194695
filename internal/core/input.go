package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows the board to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone         Action = iota
	ActionLeft                // H, Left arrow - move the cursor to the previous pile
	ActionRight               // L, Right arrow - move the cursor to the next pile
	ActionSelect              // Enter, Space - pick up cards or drop them on the cursor pile
	ActionCancel              // Esc - drop the selection
	ActionDeal                // D - deal from the talon
	ActionUndo                // U, Ctrl+Z
	ActionRedo                // Ctrl+R, Ctrl+Y
	ActionHint                // T - show the best move
	ActionDemo                // A - toggle the demo
	ActionRestart             // R - deal the same seed again
	ActionNewGame             // N - deal a fresh seed
	ActionSave                // S - save the game
	ActionBookmark            // B - set the bookmark
	ActionGotoBookmark        // G - return to the bookmark
	ActionUndoGoto            // Shift+G - undo the last bookmark jump
	ActionSpecial             // M - the rule-set's special move
	ActionHelp                // ? - toggle full help
	ActionQuit                // Q, Ctrl+C - leave the game
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionSelect:
		return "Select"
	case ActionCancel:
		return "Cancel"
	case ActionDeal:
		return "Deal"
	case ActionUndo:
		return "Undo"
	case ActionRedo:
		return "Redo"
	case ActionHint:
		return "Hint"
	case ActionDemo:
		return "Demo"
	case ActionRestart:
		return "Restart"
	case ActionNewGame:
		return "NewGame"
	case ActionSave:
		return "Save"
	case ActionBookmark:
		return "Bookmark"
	case ActionGotoBookmark:
		return "GotoBookmark"
	case ActionUndoGoto:
		return "UndoGoto"
	case ActionSpecial:
		return "Special"
	case ActionHelp:
		return "Help"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}
