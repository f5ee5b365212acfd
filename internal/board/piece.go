package board

// PieceType represents the type of a chess piece.
type PieceType uint8

const (
	Pawn PieceType = iota
	Knight
	Bishop
	Rook
	Queen
	King
	NoPieceType PieceType = 6
)

// String returns the piece type name.
func (pt PieceType) String() string {
	switch pt {
	case Pawn:
		return "Pawn"
	case Knight:
		return "Knight"
	case Bishop:
		return "Bishop"
	case Rook:
		return "Rook"
	case Queen:
		return "Queen"
	case King:
		return "King"
	default:
		return "None"
	}
}

// Char returns the upper-case letter for the piece type.
func (pt PieceType) Char() byte {
	chars := []byte{'P', 'N', 'B', 'R', 'Q', 'K', '-'}
	if pt > NoPieceType {
		return '-'
	}
	return chars[pt]
}

// PieceValue returns the material value of each piece type, used to order
// captured pieces.
var PieceValue = [7]int{100, 300, 300, 500, 900, 10000, 0}

// Piece is an immutable snapshot of a piece on a square.
// The zero value is not a piece; use NoPiece for empty tiles.
type Piece struct {
	Type     PieceType
	Alliance Alliance
	Square   Square
	Moved    bool
}

// NoPiece marks an empty tile.
var NoPiece = Piece{Type: NoPieceType, Square: NoSquare}

// NewPiece creates a piece that has not moved yet.
func NewPiece(pt PieceType, a Alliance, sq Square) Piece {
	return Piece{Type: pt, Alliance: a, Square: sq}
}

// Exists reports whether p is a real piece rather than NoPiece.
func (p Piece) Exists() bool {
	return p.Type < NoPieceType
}

// IsFirstMove reports whether the piece has never moved.
func (p Piece) IsFirstMove() bool {
	return !p.Moved
}

// Move returns the piece relocated to dest with its moved flag set.
func (p Piece) Move(dest Square) Piece {
	p.Square = dest
	p.Moved = true
	return p
}

// Value returns the material value of the piece.
func (p Piece) Value() int {
	return PieceValue[p.Type]
}

// String returns the piece letter: upper case for White, lower case for Black.
func (p Piece) String() string {
	if !p.Exists() {
		return "-"
	}
	c := p.Type.Char()
	if p.Alliance == Black {
		c |= 0x20
	}
	return string(c)
}

// LegalMoves generates the piece's geometry-valid moves on b. It does not
// consider whether the move leaves the own king attacked.
func (p Piece) LegalMoves(b *Board) []Move {
	switch p.Type {
	case Pawn:
		return p.pawnMoves(b)
	case Knight, King:
		return p.leapingMoves(b)
	case Bishop, Rook, Queen:
		return p.slidingMoves(b)
	default:
		return nil
	}
}
