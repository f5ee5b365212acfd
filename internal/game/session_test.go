package game

import (
	"errors"
	"testing"

	"github.com/hailam/chessrules/internal/board"
)

func mustBuild(t *testing.T, next board.Alliance, pieces ...board.Piece) *board.Board {
	t.Helper()
	bl := board.NewBuilder(next)
	for _, p := range pieces {
		bl.SetPiece(p)
	}
	b, err := bl.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return b
}

func mustReplay(t *testing.T, s *Session, moves ...string) {
	t.Helper()
	if err := s.Replay(moves); err != nil {
		t.Fatalf("Replay failed: %v", err)
	}
}

func TestNewSession(t *testing.T) {
	s := NewSession()

	if s.Outcome() != InProgress {
		t.Errorf("Outcome() = %s, want in progress", s.Outcome())
	}
	if len(s.MoveLog()) != 0 || len(s.History()) != 0 {
		t.Error("new session should have an empty log")
	}
	if s.Board().String() != board.NewStandardBoard().String() {
		t.Error("new session should start from the standard position")
	}
	if s.Flipped() || s.HighlightLegalMoves() {
		t.Error("preferences should default to off")
	}
	if _, ok := s.LastMove(); ok {
		t.Error("new session should have no last move")
	}
}

func TestPlay(t *testing.T) {
	s := NewSession()

	status, err := s.PlayText("e2e4")
	if err != nil || status != board.MoveDone {
		t.Fatalf("PlayText(e2e4) = %s, %v", status, err)
	}
	if got := s.Moves(); len(got) != 1 || got[0] != "e2e4" {
		t.Errorf("Moves() = %v, want [e2e4]", got)
	}
	if s.Board().CurrentPlayer().Alliance() != board.Black {
		t.Error("Black should be to move")
	}

	status, err = s.Play(board.E7, board.E5)
	if err != nil || status != board.MoveDone {
		t.Fatalf("Play(e7, e5) = %s, %v", status, err)
	}
	if last, ok := s.LastMove(); !ok || last.Coordinates() != "e7e5" {
		t.Errorf("LastMove() = %v, %v", last, ok)
	}
}

func TestPlayRejects(t *testing.T) {
	tests := []struct {
		name       string
		move       string
		wantStatus board.MoveStatus
		wantErr    []error
	}{
		{name: "bad text", move: "zz", wantStatus: board.MoveIllegal, wantErr: []error{ErrIllegalMove}},
		{name: "bad square", move: "e2e9", wantStatus: board.MoveIllegal, wantErr: []error{ErrIllegalMove, board.ErrInvalidSquare}},
		{name: "impossible", move: "e2e5", wantStatus: board.MoveIllegal, wantErr: []error{ErrIllegalMove}},
		{name: "empty square", move: "e4e5", wantStatus: board.MoveIllegal, wantErr: []error{ErrIllegalMove, ErrNoPiece}},
		{name: "wrong side", move: "e7e5", wantStatus: board.MoveIllegal, wantErr: []error{ErrIllegalMove, ErrNotYourTurn}},
		{name: "own piece", move: "a1a2", wantStatus: board.MoveIllegal, wantErr: []error{ErrIllegalMove, ErrBlockedByOwnPiece}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSession()
			before := s.Board()

			status, err := s.PlayText(tt.move)
			if status != tt.wantStatus {
				t.Errorf("status = %s, want %s", status, tt.wantStatus)
			}
			for _, want := range tt.wantErr {
				if !errors.Is(err, want) {
					t.Errorf("error = %v, want %v", err, want)
				}
			}
			if s.Board() != before || len(s.MoveLog()) != 0 {
				t.Error("rejected move changed the session")
			}
		})
	}
}

func TestPlayLeavesInCheck(t *testing.T) {
	b := mustBuild(t, board.White,
		board.NewPiece(board.King, board.White, board.E1),
		board.NewPiece(board.Bishop, board.White, board.E2),
		board.NewPiece(board.Rook, board.Black, board.E8),
		board.NewPiece(board.King, board.Black, board.A8),
	)
	s := NewSession(WithBoard(b))

	status, err := s.Play(board.E2, board.D3)
	if status != board.MoveLeavesPlayerInCheck || !errors.Is(err, ErrLeavesInCheck) {
		t.Errorf("Play(e2, d3) = %s, %v", status, err)
	}
	if s.Board() != b {
		t.Error("rejected move changed the board")
	}
	if got := s.LegalMovesFrom(board.E2); len(got) != 0 {
		t.Errorf("pinned bishop has %d completable moves, want 0", len(got))
	}
}

func TestFoolsMateSession(t *testing.T) {
	s := NewSession()
	mustReplay(t, s, "f2f3", "e7e5", "g2g4", "d8h4")

	if s.Outcome() != BlackWins || !s.Outcome().IsOver() {
		t.Errorf("Outcome() = %s, want black wins", s.Outcome())
	}

	want := []HistoryRow{
		{Number: 1, White: "f3", Black: "e5"},
		{Number: 2, White: "g4", Black: "Qh4#"},
	}
	got := s.History()
	if len(got) != len(want) {
		t.Fatalf("History() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("row %d = %+v, want %+v", i, got[i], want[i])
		}
	}

	if _, err := s.PlayText("a2a3"); !errors.Is(err, ErrGameOver) {
		t.Errorf("move after mate: error = %v, want ErrGameOver", err)
	}
	if got := s.LegalMovesFrom(board.A2); got != nil {
		t.Errorf("LegalMovesFrom after mate = %v, want nil", got)
	}
}

func TestHistoryCheckSuffix(t *testing.T) {
	s := NewSession()
	mustReplay(t, s, "e2e4", "f7f6", "d1h5")

	if s.Outcome() != Check {
		t.Errorf("Outcome() = %s, want check", s.Outcome())
	}
	rows := s.History()
	if len(rows) != 2 {
		t.Fatalf("History() has %d rows, want 2", len(rows))
	}
	if want := (HistoryRow{Number: 2, White: "Qh5+"}); rows[1] != want {
		t.Errorf("row 2 = %+v, want %+v", rows[1], want)
	}
}

func TestStalemateSession(t *testing.T) {
	b := mustBuild(t, board.Black,
		board.NewPiece(board.Queen, board.White, board.C7),
		board.NewPiece(board.King, board.White, board.E1),
		board.NewPiece(board.King, board.Black, board.A8),
	)
	s := NewSession(WithBoard(b))

	if s.Outcome() != Stalemate {
		t.Errorf("Outcome() = %s, want stalemate", s.Outcome())
	}
	if _, err := s.Play(board.A8, board.A7); !errors.Is(err, ErrGameOver) {
		t.Errorf("error = %v, want ErrGameOver", err)
	}
}

func TestTakenPieces(t *testing.T) {
	s := NewSession()
	mustReplay(t, s, "e2e4", "d7d5", "e4d5", "d8d5", "b1c3", "d5a2", "a1a2")

	black := s.TakenPieces(board.Black)
	if len(black) != 2 || black[0].Type != board.Pawn || black[1].Type != board.Queen {
		t.Errorf("black taken = %v, want pawn then queen", black)
	}
	white := s.TakenPieces(board.White)
	if len(white) != 2 || white[0].Type != board.Pawn || white[1].Type != board.Pawn {
		t.Errorf("white taken = %v, want two pawns", white)
	}
}

func TestCastleByKingOntoRook(t *testing.T) {
	s := NewSession()
	mustReplay(t, s, "e2e4", "e7e5", "g1f3", "b8c6", "f1c4", "g8f6")

	status, err := s.PlayText("e1h1")
	if err != nil || status != board.MoveDone {
		t.Fatalf("PlayText(e1h1) = %s, %v", status, err)
	}
	b := s.Board()
	if b.TileAt(board.G1).Piece().Type != board.King || b.TileAt(board.F1).Piece().Type != board.Rook {
		t.Errorf("castle did not land king on g1 and rook on f1:\n%s", b)
	}
	if rows := s.History(); rows[len(rows)-1].White != "O-O" {
		t.Errorf("last row = %+v, want O-O", rows[len(rows)-1])
	}
	if got := s.Moves()[len(s.Moves())-1]; got != "e1g1" {
		t.Errorf("logged move = %s, want e1g1", got)
	}
}

func TestReplayAndReset(t *testing.T) {
	s := NewSession()
	mustReplay(t, s, "e2e4")
	before := s.Board()

	if err := s.Replay([]string{"d2d4", "zz"}); !errors.Is(err, ErrIllegalMove) {
		t.Errorf("Replay error = %v, want ErrIllegalMove", err)
	}
	if s.Board() != before || len(s.Moves()) != 1 {
		t.Error("failed replay changed the session")
	}

	mustReplay(t, s, "d2d4", "d7d5")
	if got := s.Moves(); len(got) != 2 || got[0] != "d2d4" {
		t.Errorf("Moves() = %v, want [d2d4 d7d5]", got)
	}

	s.Reset()
	if len(s.MoveLog()) != 0 || s.Board().CurrentPlayer().Alliance() != board.White {
		t.Error("Reset should return to the start")
	}
}

func TestHighlightedMoves(t *testing.T) {
	s := NewSession()

	if got := s.HighlightedMoves(board.E2); got != nil {
		t.Errorf("highlighting off: got %v", got)
	}
	if got := len(s.LegalMovesFrom(board.E2)); got != 2 {
		t.Errorf("LegalMovesFrom(e2) = %d moves, want 2", got)
	}
	if got := s.LegalMovesFrom(board.E7); got != nil {
		t.Errorf("LegalMovesFrom(e7) on White's turn = %v, want nil", got)
	}

	s.SetHighlightLegalMoves(true)
	if got := len(s.HighlightedMoves(board.G1)); got != 2 {
		t.Errorf("HighlightedMoves(g1) = %d moves, want 2", got)
	}
}

func TestSquaresOrientation(t *testing.T) {
	s := NewSession()
	sq := s.Squares()
	if len(sq) != board.NumTiles || sq[0] != board.A8 || sq[63] != board.H1 {
		t.Errorf("normal view starts %s ends %s", sq[0], sq[63])
	}

	s.Flip()
	sq = s.Squares()
	if !s.Flipped() || sq[0] != board.H1 || sq[63] != board.A8 {
		t.Errorf("flipped view starts %s ends %s", sq[0], sq[63])
	}

	flipped := NewSession(WithFlipped(true), WithHighlightLegalMoves(true))
	if !flipped.Flipped() || !flipped.HighlightLegalMoves() {
		t.Error("options not applied")
	}
}
