package board

import (
	"errors"
	"strings"
	"testing"
)

func TestStandardBoard(t *testing.T) {
	b1, b2 := NewStandardBoard(), NewStandardBoard()

	if b1.String() != b2.String() {
		t.Errorf("standard boards differ:\n%s\n\n%s", b1, b2)
	}
	if len(b1.WhitePieces()) != 16 || len(b1.BlackPieces()) != 16 {
		t.Errorf("piece counts = %d/%d, want 16/16", len(b1.WhitePieces()), len(b1.BlackPieces()))
	}
	if k := b1.WhitePlayer().King(); k.Square != E1 {
		t.Errorf("white king on %s, want e1", k.Square)
	}
	if k := b1.BlackPlayer().King(); k.Square != E8 {
		t.Errorf("black king on %s, want e8", k.Square)
	}

	lines := strings.Split(b1.String(), "\n")
	if len(lines) != 8 {
		t.Fatalf("board renders %d lines, want 8", len(lines))
	}
	if want := "  r  n  b  q  k  b  n  r"; lines[0] != want {
		t.Errorf("rank 8 = %q, want %q", lines[0], want)
	}
	if want := "  -  -  -  -  -  -  -  -"; lines[4] != want {
		t.Errorf("rank 4 = %q, want %q", lines[4], want)
	}
	if want := "  R  N  B  Q  K  B  N  R"; lines[7] != want {
		t.Errorf("rank 1 = %q, want %q", lines[7], want)
	}

	if _, ok := b1.EnPassantPawn(); ok {
		t.Error("standard board should have no en passant pawn")
	}
}

func TestBuildRejectsBadKings(t *testing.T) {
	tests := []struct {
		name    string
		pieces  []Piece
		wantErr error
	}{
		{
			name:    "no kings",
			pieces:  []Piece{NewPiece(Rook, White, A1)},
			wantErr: ErrMissingKing,
		},
		{
			name:    "black king missing",
			pieces:  []Piece{NewPiece(King, White, E1)},
			wantErr: ErrMissingKing,
		},
		{
			name: "two white kings",
			pieces: []Piece{
				NewPiece(King, White, E1),
				NewPiece(King, White, D1),
				NewPiece(King, Black, E8),
			},
			wantErr: ErrMultipleKings,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bl := NewBuilder(White)
			for _, p := range tt.pieces {
				bl.SetPiece(p)
			}
			if _, err := bl.Build(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Build() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestMakeMoveDoesNotMutate(t *testing.T) {
	b := NewStandardBoard()
	before := b.String()

	m := CreateMove(b, E2, E4)
	tr := b.CurrentPlayer().MakeMove(m)
	if tr.Status() != MoveDone {
		t.Fatalf("e2e4 status = %s, want DONE", tr.Status())
	}

	if b.String() != before {
		t.Errorf("source board changed:\n%s", b)
	}
	if !b.TileAt(E2).IsOccupied() || b.TileAt(E4).IsOccupied() {
		t.Error("source board pieces moved")
	}

	next := tr.Board()
	if next.CurrentPlayer().Alliance() != Black {
		t.Errorf("after e2e4 %s is to move, want Black", next.CurrentPlayer().Alliance())
	}
	pawn := next.TileAt(E4).Piece()
	if pawn.Type != Pawn || pawn.Alliance != White || pawn.IsFirstMove() {
		t.Errorf("e4 holds %+v, want a moved white pawn", pawn)
	}
	if ep, ok := next.EnPassantPawn(); !ok || ep.Square != E4 {
		t.Errorf("en passant pawn = %+v, %v; want e4", ep, ok)
	}
}

func TestMakeMoveIllegal(t *testing.T) {
	b := NewStandardBoard()

	tests := []struct {
		name string
		move Move
	}{
		{name: "null move", move: NullMove},
		{name: "opponent's move", move: CreateMove(b, E7, E5)},
		{name: "foreign board", move: CreateMove(play(t, NewStandardBoard(), "e2e4", "e7e5"), D1, H5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := b.CurrentPlayer().MakeMove(tt.move)
			if tr.Status() != MoveIllegal {
				t.Errorf("status = %s, want ILLEGAL", tr.Status())
			}
			if tr.Board() != b {
				t.Error("illegal move should return the unchanged board")
			}
		})
	}
}

func TestMakeMoveLeavesPlayerInCheck(t *testing.T) {
	b := buildBoard(t, White,
		NewPiece(King, White, E1),
		NewPiece(Bishop, White, E2),
		NewPiece(Rook, Black, E8),
		NewPiece(King, Black, A8),
	)

	m := CreateMove(b, E2, D3)
	if m.IsNull() {
		t.Fatal("bishop move e2d3 not generated")
	}
	tr := b.CurrentPlayer().MakeMove(m)
	if tr.Status() != MoveLeavesPlayerInCheck {
		t.Fatalf("status = %s, want LEAVES_PLAYER_IN_CHECK", tr.Status())
	}
	if tr.Board() == b {
		t.Error("rejected transition should carry the candidate board")
	}
	if !b.TileAt(E2).IsOccupied() {
		t.Error("source board changed")
	}
}

func TestEnPassant(t *testing.T) {
	b := play(t, NewStandardBoard(), "e2e4", "a7a6", "e4e5", "d7d5")

	ep, ok := b.EnPassantPawn()
	if !ok || ep.Square != D5 || ep.Alliance != Black {
		t.Fatalf("en passant pawn = %+v, %v; want black pawn on d5", ep, ok)
	}
	if got := countKind(b.AllLegalMoves(), KindPawnEnPassantAttack); got != 1 {
		t.Fatalf("en passant moves = %d, want 1", got)
	}

	m := CreateMove(b, E5, D6)
	if !m.IsEnPassant() || m.AttackedPiece().Square != D5 {
		t.Fatalf("e5d6 = %s capturing %v, want en passant of d5", m.Kind(), m.AttackedPiece())
	}

	after := play(t, b, "e5d6")
	if after.TileAt(D5).IsOccupied() {
		t.Error("captured pawn still on d5")
	}
	if p := after.TileAt(D6).Piece(); p.Type != Pawn || p.Alliance != White {
		t.Errorf("d6 holds %+v, want white pawn", p)
	}
	if len(after.BlackPieces()) != 15 {
		t.Errorf("black has %d pieces, want 15", len(after.BlackPieces()))
	}

	// The right lapses once another ply is played.
	later := play(t, b, "h2h3")
	if _, ok := later.EnPassantPawn(); ok {
		t.Error("en passant pawn should clear after a quiet move")
	}
	if got := countKind(later.AllLegalMoves(), KindPawnEnPassantAttack); got != 0 {
		t.Errorf("en passant moves a ply later = %d, want 0", got)
	}
}

func TestPromotion(t *testing.T) {
	b := buildBoard(t, White,
		moved(NewPiece(Pawn, White, A7)),
		NewPiece(King, White, E1),
		NewPiece(King, Black, H5),
	)

	m := CreateMove(b, A7, A8)
	if !m.IsPromotion() {
		t.Fatalf("a7a8 = %s, want a promotion", m.Kind())
	}
	if got := m.String(); got != "a8=Q" {
		t.Errorf("String() = %q, want %q", got, "a8=Q")
	}

	after := play(t, b, "a7a8")
	if p := after.TileAt(A8).Piece(); p.Type != Queen || p.Alliance != White {
		t.Errorf("a8 holds %+v, want white queen", p)
	}
}

func TestNullMove(t *testing.T) {
	if _, err := NullMove.Execute(); !errors.Is(err, ErrNullMove) {
		t.Errorf("Execute() error = %v, want ErrNullMove", err)
	}
	if NullMove.Equal(NullMove) {
		t.Error("null move should not equal itself")
	}
	if NullMove.Coordinates() != "0000" {
		t.Errorf("Coordinates() = %q", NullMove.Coordinates())
	}
}

func TestCreateMove(t *testing.T) {
	b := NewStandardBoard()

	tests := []struct {
		from, to Square
		wantKind MoveKind
		wantText string
	}{
		{from: E2, to: E4, wantKind: KindPawnJump, wantText: "e4"},
		{from: E2, to: E3, wantKind: KindPawn, wantText: "e3"},
		{from: G1, to: F3, wantKind: KindMajor, wantText: "Nf3"},
		{from: B8, to: C6, wantKind: KindMajor, wantText: "Nc6"},
		{from: E2, to: E5, wantKind: KindNull, wantText: "NullMove"},
		{from: E1, to: E2, wantKind: KindNull, wantText: "NullMove"},
	}

	for _, tt := range tests {
		m := CreateMove(b, tt.from, tt.to)
		if m.Kind() != tt.wantKind {
			t.Errorf("CreateMove(%s, %s) kind = %s, want %s", tt.from, tt.to, m.Kind(), tt.wantKind)
		}
		if m.String() != tt.wantText {
			t.Errorf("CreateMove(%s, %s) = %q, want %q", tt.from, tt.to, m.String(), tt.wantText)
		}
	}

	// Moves compare by structure, not by the board they came from.
	if !CreateMove(b, E2, E4).Equal(CreateMove(NewStandardBoard(), E2, E4)) {
		t.Error("e2e4 from equal boards should be equal")
	}
	if CreateMove(b, E2, E4).Equal(CreateMove(b, E2, E3)) {
		t.Error("e2e4 and e2e3 should differ")
	}
}

func TestParseMove(t *testing.T) {
	b := NewStandardBoard()

	m, err := ParseMove(b, "g1f3")
	if err != nil {
		t.Fatalf("ParseMove: %v", err)
	}
	if m.Coordinates() != "g1f3" {
		t.Errorf("Coordinates() = %q, want g1f3", m.Coordinates())
	}

	for _, bad := range []string{"", "e2", "e2e", "z2e4", "e2e9", "e2-e4"} {
		if _, err := ParseMove(b, bad); err == nil {
			t.Errorf("ParseMove(%q) should fail", bad)
		}
	}
}
