// Package game holds the state of one interactive game on top of the board
// engine: the current position, the move log, and view preferences.
package game

import (
	"fmt"
	"slices"
	"sort"

	"github.com/hailam/chessrules/internal/board"
)

// Outcome summarises the position from the side to move.
type Outcome uint8

const (
	InProgress Outcome = iota
	Check
	WhiteWins
	BlackWins
	Stalemate
)

// String returns a short description of the outcome.
func (o Outcome) String() string {
	switch o {
	case Check:
		return "Check"
	case WhiteWins:
		return "White wins by checkmate"
	case BlackWins:
		return "Black wins by checkmate"
	case Stalemate:
		return "Draw by stalemate"
	default:
		return "In progress"
	}
}

// IsOver reports whether no further moves can be played.
func (o Outcome) IsOver() bool {
	return o == WhiteWins || o == BlackWins || o == Stalemate
}

// HistoryRow is one numbered line of the move history.
type HistoryRow struct {
	Number int
	White  string
	Black  string
}

// Option configures a Session.
type Option func(*Session)

// WithFlipped starts the session with the board viewed from Black's side.
func WithFlipped(flipped bool) Option {
	return func(s *Session) { s.flipped = flipped }
}

// WithHighlightLegalMoves enables legal move highlighting.
func WithHighlightLegalMoves(enabled bool) Option {
	return func(s *Session) { s.highlightLegalMoves = enabled }
}

// WithBoard starts the session from b instead of the standard position.
func WithBoard(b *board.Board) Option {
	return func(s *Session) {
		if b != nil {
			s.start = b
		}
	}
}

// Session is a single game: the current board plus everything a host needs
// to display it. A Session is not safe for concurrent use.
type Session struct {
	start   *board.Board
	board   *board.Board
	moveLog []board.Move

	flipped             bool
	highlightLegalMoves bool
}

// NewSession starts a game from the standard position unless WithBoard is
// given.
func NewSession(opts ...Option) *Session {
	s := &Session{}
	for _, opt := range opts {
		opt(s)
	}
	if s.start == nil {
		s.start = board.NewStandardBoard()
	}
	s.board = s.start
	return s
}

// Board returns the current position.
func (s *Session) Board() *board.Board { return s.board }

// castleAliases maps dragging the king onto its own rook to the castle.
var castleAliases = map[[2]board.Square]board.Square{
	{board.E1, board.H1}: board.G1,
	{board.E1, board.A1}: board.C1,
	{board.E8, board.H8}: board.G8,
	{board.E8, board.A8}: board.C8,
}

// findMove resolves from/to to a move on the current board, accepting the
// king-onto-rook form for castling.
func (s *Session) findMove(from, to board.Square) board.Move {
	m := board.CreateMove(s.board, from, to)
	if !m.IsNull() {
		return m
	}
	if dest, ok := castleAliases[[2]board.Square{from, to}]; ok {
		if c := board.CreateMove(s.board, from, dest); c.IsCastle() {
			return c
		}
	}
	return board.NullMove
}

// Play attempts the move from one square to another for the side to move.
// The session only advances when the move completes.
func (s *Session) Play(from, to board.Square) (board.MoveStatus, error) {
	if !from.IsValid() || !to.IsValid() {
		return board.MoveIllegal, fmt.Errorf("%w: %w", ErrIllegalMove, board.ErrInvalidSquare)
	}
	if s.Outcome().IsOver() {
		return board.MoveIllegal, ErrGameOver
	}

	m := s.findMove(from, to)
	t := s.board.CurrentPlayer().MakeMove(m)

	switch t.Status() {
	case board.MoveDone:
		s.board = t.Board()
		s.moveLog = append(s.moveLog, t.Move())
		return board.MoveDone, nil
	case board.MoveLeavesPlayerInCheck:
		return t.Status(), fmt.Errorf("%w: %s", ErrLeavesInCheck, m)
	default:
		if t.Err() != nil {
			return t.Status(), fmt.Errorf("%w: %w", ErrIllegalMove, t.Err())
		}
		if reason := s.invalidMoveReason(from, to); reason != nil {
			return t.Status(), fmt.Errorf("%w: %w", ErrIllegalMove, reason)
		}
		return t.Status(), fmt.Errorf("%w: %s%s", ErrIllegalMove, from, to)
	}
}

// invalidMoveReason explains why from/to did not resolve to a legal move,
// or returns nil when the piece simply cannot move that way.
func (s *Session) invalidMoveReason(from, to board.Square) error {
	piece := s.board.TileAt(from).Piece()
	if !piece.Exists() {
		return ErrNoPiece
	}
	if piece.Alliance != s.board.CurrentPlayer().Alliance() {
		return ErrNotYourTurn
	}
	if dest := s.board.TileAt(to).Piece(); dest.Exists() && dest.Alliance == piece.Alliance {
		return ErrBlockedByOwnPiece
	}
	return nil
}

// PlayText plays a move given in coordinate form, such as "e2e4".
func (s *Session) PlayText(text string) (board.MoveStatus, error) {
	from, to, err := board.ParseCoordinates(text)
	if err != nil {
		return board.MoveIllegal, fmt.Errorf("%w: %w", ErrIllegalMove, err)
	}
	return s.Play(from, to)
}

// Reset returns to the starting position and clears the log.
func (s *Session) Reset() {
	s.board = s.start
	s.moveLog = nil
}

// Replay resets the session and plays moves in order. On failure the session
// is left as it was before the call.
func (s *Session) Replay(moves []string) error {
	next := &Session{
		start:               s.start,
		board:               s.start,
		flipped:             s.flipped,
		highlightLegalMoves: s.highlightLegalMoves,
	}
	for i, text := range moves {
		if _, err := next.PlayText(text); err != nil {
			return fmt.Errorf("replay move %d (%s): %w", i+1, text, err)
		}
	}
	s.board = next.board
	s.moveLog = next.moveLog
	return nil
}

// MoveLog returns the moves played so far.
func (s *Session) MoveLog() []board.Move {
	log := make([]board.Move, len(s.moveLog))
	copy(log, s.moveLog)
	return log
}

// Moves returns the played moves in coordinate form.
func (s *Session) Moves() []string {
	moves := make([]string, len(s.moveLog))
	for i, m := range s.moveLog {
		moves[i] = m.Coordinates()
	}
	return moves
}

// LastMove returns the most recent move, if any.
func (s *Session) LastMove() (board.Move, bool) {
	if len(s.moveLog) == 0 {
		return board.NullMove, false
	}
	return s.moveLog[len(s.moveLog)-1], true
}

// History lays the move log out in numbered White/Black rows. The last move
// carries "#" for mate or "+" for check.
func (s *Session) History() []HistoryRow {
	var rows []HistoryRow
	for i, m := range s.moveLog {
		text := m.String()
		if i == len(s.moveLog)-1 {
			text += s.checkSuffix()
		}
		if m.Piece().Alliance == board.White || len(rows) == 0 {
			rows = append(rows, HistoryRow{Number: len(rows) + 1})
		}
		row := &rows[len(rows)-1]
		if m.Piece().Alliance == board.White {
			row.White = text
		} else {
			row.Black = text
		}
	}
	return rows
}

func (s *Session) checkSuffix() string {
	current := s.board.CurrentPlayer()
	switch {
	case current.IsInCheckMate():
		return "#"
	case current.IsInCheck():
		return "+"
	default:
		return ""
	}
}

// TakenPieces returns the pieces of alliance a captured so far, cheapest
// first.
func (s *Session) TakenPieces(a board.Alliance) []board.Piece {
	var taken []board.Piece
	for _, m := range s.moveLog {
		if !m.IsAttack() {
			continue
		}
		if p := m.AttackedPiece(); p.Alliance == a {
			taken = append(taken, p)
		}
	}
	sort.SliceStable(taken, func(i, j int) bool {
		return taken[i].Value() < taken[j].Value()
	})
	return taken
}

// LegalMovesFrom returns the moves the side to move can complete with the
// piece on sq.
func (s *Session) LegalMovesFrom(sq board.Square) []board.Move {
	if !sq.IsValid() || s.Outcome().IsOver() {
		return nil
	}
	current := s.board.CurrentPlayer()
	piece := s.board.TileAt(sq).Piece()
	if !piece.Exists() || piece.Alliance != current.Alliance() {
		return nil
	}

	var moves []board.Move
	for _, m := range current.LegalMoves() {
		if m.From() == sq && current.MakeMove(m).Status().IsDone() {
			moves = append(moves, m)
		}
	}
	return moves
}

// HighlightedMoves is LegalMovesFrom gated by the highlight preference.
func (s *Session) HighlightedMoves(sq board.Square) []board.Move {
	if !s.highlightLegalMoves {
		return nil
	}
	return s.LegalMovesFrom(sq)
}

// Outcome reports check, mate or stalemate for the side to move.
func (s *Session) Outcome() Outcome {
	current := s.board.CurrentPlayer()
	switch {
	case current.IsInCheckMate():
		if current.Alliance() == board.White {
			return BlackWins
		}
		return WhiteWins
	case current.IsInStaleMate():
		return Stalemate
	case current.IsInCheck():
		return Check
	default:
		return InProgress
	}
}

// Flip toggles the board orientation.
func (s *Session) Flip() { s.flipped = !s.flipped }

// Flipped reports whether the board is viewed from Black's side.
func (s *Session) Flipped() bool { return s.flipped }

// SetHighlightLegalMoves sets the highlight preference.
func (s *Session) SetHighlightLegalMoves(enabled bool) { s.highlightLegalMoves = enabled }

// HighlightLegalMoves reports the highlight preference.
func (s *Session) HighlightLegalMoves() bool { return s.highlightLegalMoves }

// Squares returns all squares in display order, top-left first.
func (s *Session) Squares() []board.Square {
	squares := make([]board.Square, 0, board.NumTiles)
	for sq := board.Square(0); sq < board.NoSquare; sq++ {
		squares = append(squares, sq)
	}
	if s.flipped {
		slices.Reverse(squares)
	}
	return squares
}
