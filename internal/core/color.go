package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors for table elements.
const (
	ColorDefault Color = iota
	ColorRedSuit
	ColorBlackSuit
	ColorCardBack
	ColorEmptySlot
	ColorCursor
	ColorSelected
	ColorHint
	ColorStatus
	ColorWarning
	ColorWin
)
