package board

import "fmt"

// castleGeometry fixes the squares one castle uses.
type castleGeometry struct {
	kind     MoveKind
	rook     Square
	between  []Square // must be empty
	transit  []Square // must not be attacked
	kingDest Square
	rookDest Square
}

var kingHome = [2]Square{White: E1, Black: E8}

// castles lists king-side then queen-side geometry per alliance.
var castles = [2][2]castleGeometry{
	White: {
		{kind: KindKingSideCastle, rook: H1, between: []Square{F1, G1}, transit: []Square{F1, G1}, kingDest: G1, rookDest: F1},
		{kind: KindQueenSideCastle, rook: A1, between: []Square{B1, C1, D1}, transit: []Square{C1, D1}, kingDest: C1, rookDest: D1},
	},
	Black: {
		{kind: KindKingSideCastle, rook: H8, between: []Square{F8, G8}, transit: []Square{F8, G8}, kingDest: G8, rookDest: F8},
		{kind: KindQueenSideCastle, rook: A8, between: []Square{B8, C8, D8}, transit: []Square{C8, D8}, kingDest: C8, rookDest: D8},
	},
}

// Player is one side's view of a board: its king, legal moves, and check
// state. It is derived entirely from the board at construction.
type Player struct {
	board         *Board
	alliance      Alliance
	king          Piece
	legalMoves    []Move
	opponentMoves []Move
	inCheck       bool
}

func newPlayer(b *Board, a Alliance, moves, opponentMoves []Move) (*Player, error) {
	p := &Player{
		board:         b,
		alliance:      a,
		opponentMoves: opponentMoves,
	}

	king, err := establishKing(b.ActivePieces(a))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", a, err)
	}
	p.king = king
	p.inCheck = len(attacksOnSquare(king.Square, opponentMoves)) > 0

	legal := make([]Move, 0, len(moves)+2)
	legal = append(legal, moves...)
	p.legalMoves = append(legal, p.calculateKingCastles(opponentMoves)...)
	return p, nil
}

func establishKing(pieces []Piece) (Piece, error) {
	king := NoPiece
	for _, p := range pieces {
		if p.Type != King {
			continue
		}
		if king.Exists() {
			return NoPiece, ErrMultipleKings
		}
		king = p
	}
	if !king.Exists() {
		return NoPiece, ErrMissingKing
	}
	return king, nil
}

// attacksOnSquare returns the moves whose destination is sq.
func attacksOnSquare(sq Square, moves []Move) []Move {
	var attacks []Move
	for _, m := range moves {
		if m.destination == sq {
			attacks = append(attacks, m)
		}
	}
	return attacks
}

// Alliance returns the player's side.
func (p *Player) Alliance() Alliance { return p.alliance }

// King returns the player's king.
func (p *Player) King() Piece { return p.king }

// Board returns the board the player was derived from.
func (p *Player) Board() *Board { return p.board }

// LegalMoves returns the geometry-valid moves including castles. Moves that
// leave the own king attacked are rejected later by MakeMove.
func (p *Player) LegalMoves() []Move { return p.legalMoves }

// ActivePieces returns the player's pieces on the board.
func (p *Player) ActivePieces() []Piece { return p.board.ActivePieces(p.alliance) }

// Opponent returns the other player of the same board.
func (p *Player) Opponent() *Player {
	return p.board.Player(p.alliance.Opponent())
}

// IsMoveLegal reports whether m is in the player's legal move set.
func (p *Player) IsMoveLegal(m Move) bool {
	for _, lm := range p.legalMoves {
		if lm.Equal(m) {
			return true
		}
	}
	return false
}

// IsInCheck reports whether an opponent move lands on the king.
func (p *Player) IsInCheck() bool { return p.inCheck }

// IsInCheckMate reports check with no escape.
func (p *Player) IsInCheckMate() bool {
	return p.inCheck && !p.HasEscapeMoves()
}

// IsInStaleMate reports no escape while not in check.
func (p *Player) IsInStaleMate() bool {
	return !p.inCheck && !p.HasEscapeMoves()
}

// HasEscapeMoves plays out every legal move and reports whether any of
// them completes without leaving the king attacked.
func (p *Player) HasEscapeMoves() bool {
	for _, m := range p.legalMoves {
		if p.MakeMove(m).Status().IsDone() {
			return true
		}
	}
	return false
}

// MakeMove validates m and, when it is legal, returns the board after it.
// The player's own board is never modified.
func (p *Player) MakeMove(m Move) MoveTransition {
	if !p.IsMoveLegal(m) {
		return MoveTransition{board: p.board, move: m, status: MoveIllegal}
	}

	next, err := m.Execute()
	if err != nil {
		return MoveTransition{board: p.board, move: m, status: MoveIllegal, err: err}
	}

	mover := next.Player(p.alliance)
	if len(attacksOnSquare(mover.King().Square, mover.Opponent().LegalMoves())) > 0 {
		return MoveTransition{board: next, move: m, status: MoveLeavesPlayerInCheck}
	}
	return MoveTransition{board: next, move: m, status: MoveDone}
}

// calculateKingCastles adds the castles whose preconditions hold.
func (p *Player) calculateKingCastles(opponentMoves []Move) []Move {
	if !p.king.IsFirstMove() || p.inCheck || p.king.Square != kingHome[p.alliance] {
		return nil
	}
	var moves []Move
	for _, g := range castles[p.alliance] {
		if !p.canCastle(g, opponentMoves) {
			continue
		}
		rook := p.board.TileAt(g.rook).Piece()
		moves = append(moves, newCastleMove(g.kind, p.board, p.king, g.kingDest, rook, g.rookDest))
	}
	return moves
}

func (p *Player) canCastle(g castleGeometry, opponentMoves []Move) bool {
	for _, sq := range g.between {
		if p.board.TileAt(sq).IsOccupied() {
			return false
		}
	}
	rook := p.board.TileAt(g.rook).Piece()
	if rook.Type != Rook || rook.Alliance != p.alliance || !rook.IsFirstMove() {
		return false
	}
	for _, sq := range g.transit {
		if len(attacksOnSquare(sq, opponentMoves)) > 0 || p.pawnThreatens(sq) {
			return false
		}
	}
	return true
}

// pawnThreatens reports whether an enemy pawn covers sq diagonally. Pawn
// captures are only generated onto occupied squares, so empty transit
// squares need this extra test.
func (p *Player) pawnThreatens(sq Square) bool {
	enemy := p.alliance.Opponent()
	// An enemy pawn attacking sq stands one row behind it from the
	// enemy's point of view.
	back := -enemy.Direction() * NumTilesPerRow
	for _, side := range []int{-1, 1} {
		if (side == -1 && onColumn(sq, 0)) || (side == 1 && onColumn(sq, 7)) {
			continue
		}
		from := sq.offset(back + side)
		if !from.IsValid() {
			continue
		}
		if pc := p.board.TileAt(from).Piece(); pc.Type == Pawn && pc.Alliance == enemy {
			return true
		}
	}
	return false
}
