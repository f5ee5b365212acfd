package board

import "errors"

// ErrNullMove is returned when the null move sentinel is executed.
var ErrNullMove = errors.New("cannot execute the null move")

// MoveKind tags the variant of a Move.
type MoveKind uint8

const (
	KindNull MoveKind = iota
	KindMajor
	KindAttack
	KindMajorAttack
	KindPawn
	KindPawnAttack
	KindPawnEnPassantAttack
	KindPawnJump
	KindKingSideCastle
	KindQueenSideCastle
)

// String returns the variant name.
func (k MoveKind) String() string {
	switch k {
	case KindMajor:
		return "MajorMove"
	case KindAttack:
		return "AttackMove"
	case KindMajorAttack:
		return "MajorAttackMove"
	case KindPawn:
		return "PawnMove"
	case KindPawnAttack:
		return "PawnAttackMove"
	case KindPawnEnPassantAttack:
		return "PawnEnPassantAttackMove"
	case KindPawnJump:
		return "PawnJump"
	case KindKingSideCastle:
		return "KingSideCastleMove"
	case KindQueenSideCastle:
		return "QueenSideCastleMove"
	default:
		return "NullMove"
	}
}

// Move is one ply generated against a specific board. Moves are values;
// compare them with Equal.
type Move struct {
	kind        MoveKind
	board       *Board
	piece       Piece
	destination Square
	firstMove   bool

	captured Piece

	rook            Piece
	rookOrigin      Square
	rookDestination Square
}

// NullMove is the sentinel returned when no legal move matches a request.
var NullMove = Move{
	kind:            KindNull,
	piece:           NoPiece,
	destination:     NoSquare,
	captured:        NoPiece,
	rook:            NoPiece,
	rookOrigin:      NoSquare,
	rookDestination: NoSquare,
}

func newMove(kind MoveKind, b *Board, p Piece, dest Square) Move {
	return Move{
		kind:            kind,
		board:           b,
		piece:           p,
		destination:     dest,
		firstMove:       p.IsFirstMove(),
		captured:        NoPiece,
		rook:            NoPiece,
		rookOrigin:      NoSquare,
		rookDestination: NoSquare,
	}
}

func newMajorMove(b *Board, p Piece, dest Square) Move {
	return newMove(KindMajor, b, p, dest)
}

// NewAttackMove creates a generic capture of captured by p on dest.
func NewAttackMove(b *Board, p Piece, dest Square, captured Piece) Move {
	m := newMove(KindAttack, b, p, dest)
	m.captured = captured
	return m
}

func newMajorAttackMove(b *Board, p Piece, dest Square, captured Piece) Move {
	m := NewAttackMove(b, p, dest, captured)
	m.kind = KindMajorAttack
	return m
}

func newPawnMove(b *Board, p Piece, dest Square) Move {
	return newMove(KindPawn, b, p, dest)
}

func newPawnAttackMove(b *Board, p Piece, dest Square, captured Piece) Move {
	m := NewAttackMove(b, p, dest, captured)
	m.kind = KindPawnAttack
	return m
}

func newPawnEnPassantAttackMove(b *Board, p Piece, dest Square, captured Piece) Move {
	m := NewAttackMove(b, p, dest, captured)
	m.kind = KindPawnEnPassantAttack
	return m
}

func newPawnJump(b *Board, p Piece, dest Square) Move {
	return newMove(KindPawnJump, b, p, dest)
}

func newCastleMove(kind MoveKind, b *Board, king Piece, dest Square, rook Piece, rookDest Square) Move {
	m := newMove(kind, b, king, dest)
	m.rook = rook
	m.rookOrigin = rook.Square
	m.rookDestination = rookDest
	return m
}

// Kind returns the move variant.
func (m Move) Kind() MoveKind { return m.kind }

// Board returns the board the move was generated against.
func (m Move) Board() *Board { return m.board }

// Piece returns the moving piece as it stood before the move.
func (m Move) Piece() Piece { return m.piece }

// From returns the origin square of the moving piece.
func (m Move) From() Square { return m.piece.Square }

// To returns the destination square.
func (m Move) To() Square { return m.destination }

// IsNull reports whether m is the null move sentinel.
func (m Move) IsNull() bool { return m.kind == KindNull }

// IsAttack reports whether the move captures a piece.
func (m Move) IsAttack() bool {
	switch m.kind {
	case KindAttack, KindMajorAttack, KindPawnAttack, KindPawnEnPassantAttack:
		return true
	default:
		return false
	}
}

// IsEnPassant reports whether the move is an en passant capture.
func (m Move) IsEnPassant() bool { return m.kind == KindPawnEnPassantAttack }

// IsCastle reports whether the move is either castle.
func (m Move) IsCastle() bool {
	return m.kind == KindKingSideCastle || m.kind == KindQueenSideCastle
}

// IsPromotion reports whether executing the move promotes a pawn.
func (m Move) IsPromotion() bool {
	switch m.kind {
	case KindPawn, KindPawnAttack, KindPawnEnPassantAttack:
		return onRow(m.destination, m.piece.Alliance.promotionRow())
	default:
		return false
	}
}

// AttackedPiece returns the captured piece, or NoPiece for quiet moves.
func (m Move) AttackedPiece() Piece { return m.captured }

// CastleRook returns the rook a castle relocates, or NoPiece.
func (m Move) CastleRook() Piece { return m.rook }

// RookOrigin returns the castling rook's square before the move.
func (m Move) RookOrigin() Square { return m.rookOrigin }

// RookDestination returns the castling rook's square after the move.
func (m Move) RookDestination() Square { return m.rookDestination }

// Equal reports structural equality. The null move equals nothing, not even
// itself.
func (m Move) Equal(o Move) bool {
	if m.kind == KindNull || o.kind == KindNull {
		return false
	}
	return m.kind == o.kind &&
		m.piece == o.piece &&
		m.destination == o.destination &&
		m.firstMove == o.firstMove &&
		m.captured == o.captured &&
		m.rook == o.rook &&
		m.rookDestination == o.rookDestination
}

// Execute builds the board that results from playing m. The move's board is
// left untouched.
func (m Move) Execute() (*Board, error) {
	if m.kind == KindNull || m.board == nil {
		return nil, ErrNullMove
	}

	builder := NewBuilder(m.piece.Alliance.Opponent())
	for _, p := range m.board.AllActivePieces() {
		if p == m.piece || (m.IsAttack() && p == m.captured) || (m.IsCastle() && p == m.rook) {
			continue
		}
		builder.SetPiece(p)
	}

	moved := m.piece.Move(m.destination)
	if m.IsPromotion() {
		moved.Type = Queen
	}
	builder.SetPiece(moved)

	switch m.kind {
	case KindPawnJump:
		builder.SetEnPassantPawn(moved)
	case KindKingSideCastle, KindQueenSideCastle:
		builder.SetPiece(m.rook.Move(m.rookDestination))
	}

	return builder.Build()
}

// String returns a short human-readable form: "Nf3", "e4", "exd5", "O-O".
func (m Move) String() string {
	switch m.kind {
	case KindNull:
		return "NullMove"
	case KindKingSideCastle:
		return "O-O"
	case KindQueenSideCastle:
		return "O-O-O"
	case KindPawn, KindPawnJump:
		return m.destination.String() + m.promotionSuffix()
	case KindPawnAttack, KindPawnEnPassantAttack:
		return m.From().String()[:1] + "x" + m.destination.String() + m.promotionSuffix()
	case KindAttack, KindMajorAttack:
		return string(m.piece.Type.Char()) + "x" + m.destination.String()
	default:
		return string(m.piece.Type.Char()) + m.destination.String()
	}
}

// Coordinates returns the from/to form used for textual move input ("e2e4").
func (m Move) Coordinates() string {
	if m.kind == KindNull {
		return "0000"
	}
	return m.From().String() + m.destination.String()
}

func (m Move) promotionSuffix() string {
	if m.IsPromotion() {
		return "=Q"
	}
	return ""
}
