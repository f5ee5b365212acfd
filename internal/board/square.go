// Package board implements an immutable chess board, per-piece move
// generation, and player-level legality checks.
package board

import (
	"errors"
	"fmt"
)

const (
	// NumTiles is the number of squares on the board.
	NumTiles = 64
	// NumTilesPerRow is the number of squares in a row or column.
	NumTilesPerRow = 8
)

// ErrInvalidSquare is returned when coordinate text does not name a square.
var ErrInvalidSquare = errors.New("invalid square")

// Square represents a square on the chess board (0-63).
// Row-major with rank 8 first: A8=0, H8=7, A1=56, H1=63.
type Square int8

// Square constants for all 64 squares.
const (
	A8 Square = iota
	B8
	C8
	D8
	E8
	F8
	G8
	H8
	A7
	B7
	C7
	D7
	E7
	F7
	G7
	H7
	A6
	B6
	C6
	D6
	E6
	F6
	G6
	H6
	A5
	B5
	C5
	D5
	E5
	F5
	G5
	H5
	A4
	B4
	C4
	D4
	E4
	F4
	G4
	H4
	A3
	B3
	C3
	D3
	E3
	F3
	G3
	H3
	A2
	B2
	C2
	D2
	E2
	F2
	G2
	H2
	A1
	B1
	C1
	D1
	E1
	F1
	G1
	H1
	NoSquare Square = 64
)

// Column returns the column of the square (0-7, where 0=a, 7=h).
func (sq Square) Column() int {
	return int(sq) % NumTilesPerRow
}

// Row returns the row of the square counted from the top (0=rank 8, 7=rank 1).
func (sq Square) Row() int {
	return int(sq) / NumTilesPerRow
}

// Rank returns the chess rank of the square (1-8).
func (sq Square) Rank() int {
	return NumTilesPerRow - sq.Row()
}

// IsValid returns true if the square is a valid board square (0-63).
func (sq Square) IsValid() bool {
	return sq >= 0 && sq < NoSquare
}

// String returns the algebraic notation for the square (e.g., "e4").
func (sq Square) String() string {
	if !sq.IsValid() {
		return "-"
	}
	return fmt.Sprintf("%c%d", 'a'+sq.Column(), sq.Rank())
}

// NewSquare creates a square from a column (0=a) and a row counted from rank 8.
func NewSquare(column, row int) Square {
	return Square(row*NumTilesPerRow + column)
}

// ParseSquare parses algebraic notation (e.g., "e4") into a Square.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("%w: %q", ErrInvalidSquare, s)
	}

	column := int(s[0]) - 'a'
	rank := int(s[1]) - '0'

	if column < 0 || column >= NumTilesPerRow || rank < 1 || rank > NumTilesPerRow {
		return NoSquare, fmt.Errorf("%w: %q", ErrInvalidSquare, s)
	}

	return NewSquare(column, NumTilesPerRow-rank), nil
}

// offset returns the square reached by adding a flat-index offset, which may
// be off the board. Column wraparound is the caller's concern.
func (sq Square) offset(delta int) Square {
	return Square(int(sq) + delta)
}

func onColumn(sq Square, column int) bool {
	return sq.IsValid() && sq.Column() == column
}

func onRow(sq Square, row int) bool {
	return sq.IsValid() && sq.Row() == row
}
