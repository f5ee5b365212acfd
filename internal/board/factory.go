package board

import "fmt"

// CreateMove resolves a coordinate pair to a legal move on b, searching both
// players' moves. It returns NullMove when nothing matches.
func CreateMove(b *Board, from, to Square) Move {
	for _, m := range b.AllLegalMoves() {
		if m.From() == from && m.To() == to {
			return m
		}
	}
	return NullMove
}

// ParseCoordinates splits coordinate text such as "e2e4" into its squares.
func ParseCoordinates(s string) (from, to Square, err error) {
	if len(s) != 4 {
		return NoSquare, NoSquare, fmt.Errorf("invalid move string: %q", s)
	}

	from, err = ParseSquare(s[0:2])
	if err != nil {
		return NoSquare, NoSquare, err
	}

	to, err = ParseSquare(s[2:4])
	if err != nil {
		return NoSquare, NoSquare, err
	}

	return from, to, nil
}

// ParseMove parses coordinate text and resolves it with CreateMove.
func ParseMove(b *Board, s string) (Move, error) {
	from, to, err := ParseCoordinates(s)
	if err != nil {
		return NullMove, err
	}
	return CreateMove(b, from, to), nil
}
