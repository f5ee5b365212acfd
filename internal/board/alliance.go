package board

// Alliance is the side a piece or player belongs to.
type Alliance uint8

const (
	White Alliance = iota
	Black
)

// String returns the alliance name.
func (a Alliance) String() string {
	switch a {
	case White:
		return "White"
	case Black:
		return "Black"
	default:
		return "NoAlliance"
	}
}

// Direction is the flat-index sign of a pawn advance: White moves toward
// rank 8 (lower indices), Black toward rank 1.
func (a Alliance) Direction() int {
	if a == White {
		return -1
	}
	return 1
}

// OppositeDirection is the negated advance direction.
func (a Alliance) OppositeDirection() int {
	return -a.Direction()
}

// Opponent returns the other alliance.
func (a Alliance) Opponent() Alliance {
	return a ^ 1
}

// IsWhite reports whether a is White.
func (a Alliance) IsWhite() bool {
	return a == White
}

// IsBlack reports whether a is Black.
func (a Alliance) IsBlack() bool {
	return a == Black
}

// ChoosePlayer returns whichever of the two players belongs to a.
func (a Alliance) ChoosePlayer(white, black *Player) *Player {
	if a == White {
		return white
	}
	return black
}

// pawnStartRow is the row a pawn of this alliance may jump from.
func (a Alliance) pawnStartRow() int {
	if a == White {
		return 6
	}
	return 1
}

// promotionRow is the last row a pawn of this alliance can reach.
func (a Alliance) promotionRow() int {
	if a == White {
		return 0
	}
	return 7
}
