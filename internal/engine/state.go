package engine

import "fmt"

// MoveState is the engine's recording state. Lower values are more
// restrictive; Undo and Redo are transient and always return to Play.
type MoveState int

const (
	StateInit    MoveState = 0x00
	StateDeal    MoveState = 0x10
	StateFill    MoveState = 0x20
	StateRestore MoveState = 0x30
	StatePlay    MoveState = 0x40
	StateUndo    MoveState = 0x50
	StateRedo    MoveState = 0x60
)

func (s MoveState) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateDeal:
		return "deal"
	case StateFill:
		return "fill"
	case StateRestore:
		return "restore"
	case StatePlay:
		return "play"
	case StateUndo:
		return "undo"
	case StateRedo:
		return "redo"
	}
	return fmt.Sprintf("state(0x%02x)", int(s))
}

// recording reports whether atomic moves made in this state are stored.
func (s MoveState) recording() bool {
	return s >= StateDeal && s <= StatePlay
}

// StateGuard restores the state that was active before EnterState.
type StateGuard struct {
	g   *Game
	old MoveState
}

// EnterState lowers the move state to s if s is more restrictive than the
// current one. Call Leave on the returned guard, usually with defer.
func (g *Game) EnterState(s MoveState) StateGuard {
	old := g.moves.State
	if s < old {
		g.moves.State = s
	}
	return StateGuard{g: g, old: old}
}

// Leave restores the saved state.
func (sg StateGuard) Leave() {
	sg.g.moves.State = sg.old
}

// ContractError is the panic value for violated engine preconditions, such
// as undoing with nothing to undo or moving cards onto a pile that refuses
// them during play. It signals a bug in the caller, never bad user input.
type ContractError struct {
	Op  string
	Msg string
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("engine: %s: %s", e.Op, e.Msg)
}

func contract(ok bool, op, format string, args ...any) {
	if !ok {
		panic(&ContractError{Op: op, Msg: fmt.Sprintf(format, args...)})
	}
}
