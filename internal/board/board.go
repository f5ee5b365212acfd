package board

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingKing is returned when an alliance has no king.
	ErrMissingKing = errors.New("no king found")
	// ErrMultipleKings is returned when an alliance has more than one king.
	ErrMultipleKings = errors.New("more than one king")
	// ErrPieceOffBoard is returned when a piece is placed outside the board.
	ErrPieceOffBoard = errors.New("piece placed off the board")
)

// Tile is one square of a board and its occupant, if any.
type Tile struct {
	square Square
	piece  Piece
}

// Square returns the tile's square.
func (t Tile) Square() Square { return t.square }

// IsOccupied reports whether a piece stands on the tile.
func (t Tile) IsOccupied() bool { return t.piece.Exists() }

// Piece returns the occupant, or NoPiece.
func (t Tile) Piece() Piece { return t.piece }

// String returns the occupant letter, or "-" for an empty tile.
func (t Tile) String() string { return t.piece.String() }

// Builder collects pieces for a new Board.
type Builder struct {
	pieces    map[Square]Piece
	nextMover Alliance
	enPassant Piece
}

// NewBuilder starts a board on which nextMover is to move.
func NewBuilder(nextMover Alliance) *Builder {
	return &Builder{
		pieces:    make(map[Square]Piece, NumTiles),
		nextMover: nextMover,
		enPassant: NoPiece,
	}
}

// SetPiece places p on its square, replacing any previous occupant.
func (bl *Builder) SetPiece(p Piece) *Builder {
	if p.Exists() {
		bl.pieces[p.Square] = p
	}
	return bl
}

// SetEnPassantPawn records the pawn that just jumped two squares.
func (bl *Builder) SetEnPassantPawn(p Piece) *Builder {
	bl.enPassant = p
	return bl
}

// Build materialises the board and derives both players.
func (bl *Builder) Build() (*Board, error) {
	b := &Board{enPassant: bl.enPassant}

	for sq := Square(0); sq < NoSquare; sq++ {
		b.tiles[sq] = Tile{square: sq, piece: NoPiece}
	}
	for sq, p := range bl.pieces {
		if !sq.IsValid() {
			return nil, fmt.Errorf("%w: %s %s", ErrPieceOffBoard, p.Alliance, p.Type)
		}
		b.tiles[sq].piece = p
	}

	b.whitePieces = b.activePieces(White)
	b.blackPieces = b.activePieces(Black)

	whiteMoves := b.calculateLegalMoves(b.whitePieces)
	blackMoves := b.calculateLegalMoves(b.blackPieces)

	var err error
	if b.whitePlayer, err = newPlayer(b, White, whiteMoves, blackMoves); err != nil {
		return nil, err
	}
	if b.blackPlayer, err = newPlayer(b, Black, blackMoves, whiteMoves); err != nil {
		return nil, err
	}
	b.currentPlayer = bl.nextMover.ChoosePlayer(b.whitePlayer, b.blackPlayer)

	return b, nil
}

// Board is an immutable chess position. Every move yields a new Board.
type Board struct {
	tiles [NumTiles]Tile

	whitePieces []Piece
	blackPieces []Piece

	whitePlayer   *Player
	blackPlayer   *Player
	currentPlayer *Player

	enPassant Piece
}

// NewStandardBoard returns the starting position with White to move.
func NewStandardBoard() *Board {
	bl := NewBuilder(White)
	backRank := []PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for column, pt := range backRank {
		bl.SetPiece(NewPiece(pt, Black, NewSquare(column, 0)))
		bl.SetPiece(NewPiece(Pawn, Black, NewSquare(column, 1)))
		bl.SetPiece(NewPiece(Pawn, White, NewSquare(column, 6)))
		bl.SetPiece(NewPiece(pt, White, NewSquare(column, 7)))
	}
	b, err := bl.Build()
	if err != nil {
		// The standard position always has both kings.
		panic(err)
	}
	return b
}

// TileAt returns the tile on sq. sq must be valid.
func (b *Board) TileAt(sq Square) Tile {
	return b.tiles[sq]
}

// CurrentPlayer returns the player whose turn it is.
func (b *Board) CurrentPlayer() *Player { return b.currentPlayer }

// WhitePlayer returns the White player.
func (b *Board) WhitePlayer() *Player { return b.whitePlayer }

// BlackPlayer returns the Black player.
func (b *Board) BlackPlayer() *Player { return b.blackPlayer }

// Player returns the player of alliance a.
func (b *Board) Player(a Alliance) *Player {
	return a.ChoosePlayer(b.whitePlayer, b.blackPlayer)
}

// WhitePieces returns White's pieces in square order.
func (b *Board) WhitePieces() []Piece { return b.whitePieces }

// BlackPieces returns Black's pieces in square order.
func (b *Board) BlackPieces() []Piece { return b.blackPieces }

// ActivePieces returns the pieces of alliance a in square order.
func (b *Board) ActivePieces(a Alliance) []Piece {
	if a == White {
		return b.whitePieces
	}
	return b.blackPieces
}

// AllActivePieces returns White's pieces followed by Black's.
func (b *Board) AllActivePieces() []Piece {
	all := make([]Piece, 0, len(b.whitePieces)+len(b.blackPieces))
	all = append(all, b.whitePieces...)
	return append(all, b.blackPieces...)
}

// EnPassantPawn returns the pawn that jumped on the previous ply.
func (b *Board) EnPassantPawn() (Piece, bool) {
	return b.enPassant, b.enPassant.Exists()
}

// AllLegalMoves returns both players' legal moves, White's first.
func (b *Board) AllLegalMoves() []Move {
	white, black := b.whitePlayer.LegalMoves(), b.blackPlayer.LegalMoves()
	all := make([]Move, 0, len(white)+len(black))
	all = append(all, white...)
	return append(all, black...)
}

// String renders the placement as eight rows of piece letters, rank 8 first.
func (b *Board) String() string {
	var sb strings.Builder
	for sq := Square(0); sq < NoSquare; sq++ {
		fmt.Fprintf(&sb, "%3s", b.tiles[sq])
		if sq.Column() == NumTilesPerRow-1 && sq < NoSquare-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func (b *Board) activePieces(a Alliance) []Piece {
	var pieces []Piece
	for _, t := range b.tiles {
		if t.IsOccupied() && t.piece.Alliance == a {
			pieces = append(pieces, t.piece)
		}
	}
	return pieces
}

func (b *Board) calculateLegalMoves(pieces []Piece) []Move {
	var moves []Move
	for _, p := range pieces {
		moves = append(moves, p.LegalMoves(b)...)
	}
	return moves
}
