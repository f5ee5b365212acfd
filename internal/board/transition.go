package board

// MoveStatus is the outcome of Player.MakeMove.
type MoveStatus uint8

const (
	// MoveDone means the move was applied; the transition board is the new position.
	MoveDone MoveStatus = iota
	// MoveIllegal means the move is not in the player's legal set.
	MoveIllegal
	// MoveLeavesPlayerInCheck means the move would expose the mover's king.
	MoveLeavesPlayerInCheck
)

// IsDone reports whether the move was applied.
func (s MoveStatus) IsDone() bool {
	return s == MoveDone
}

// String returns the status name.
func (s MoveStatus) String() string {
	switch s {
	case MoveDone:
		return "DONE"
	case MoveIllegal:
		return "ILLEGAL"
	case MoveLeavesPlayerInCheck:
		return "LEAVES_PLAYER_IN_CHECK"
	default:
		return "UNKNOWN"
	}
}

// MoveTransition is the result of validating and executing a move.
type MoveTransition struct {
	board  *Board
	move   Move
	status MoveStatus
	err    error
}

// Board returns the resulting board on MoveDone, the rejected candidate on
// MoveLeavesPlayerInCheck, and the unchanged input board on MoveIllegal.
func (t MoveTransition) Board() *Board { return t.board }

// Move returns the move that was attempted.
func (t MoveTransition) Move() Move { return t.move }

// Status returns the outcome.
func (t MoveTransition) Status() MoveStatus { return t.status }

// Err returns the execution failure behind a MoveIllegal status, if any.
func (t MoveTransition) Err() error { return t.err }
