package board

import "testing"

// buildBoard builds a board from pieces or fails the test.
func buildBoard(t *testing.T, next Alliance, pieces ...Piece) *Board {
	t.Helper()
	bl := NewBuilder(next)
	for _, p := range pieces {
		bl.SetPiece(p)
	}
	b, err := bl.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return b
}

// play resolves and applies coordinate moves, failing unless each is DONE.
func play(t *testing.T, b *Board, moves ...string) *Board {
	t.Helper()
	for _, s := range moves {
		m, err := ParseMove(b, s)
		if err != nil {
			t.Fatalf("ParseMove(%s): %v", s, err)
		}
		tr := b.CurrentPlayer().MakeMove(m)
		if !tr.Status().IsDone() {
			t.Fatalf("move %s: got status %s", s, tr.Status())
		}
		b = tr.Board()
	}
	return b
}

func destinations(moves []Move) map[Square]bool {
	dests := make(map[Square]bool, len(moves))
	for _, m := range moves {
		dests[m.To()] = true
	}
	return dests
}

func movesFrom(moves []Move, from Square) []Move {
	var out []Move
	for _, m := range moves {
		if m.From() == from {
			out = append(out, m)
		}
	}
	return out
}

func countKind(moves []Move, kind MoveKind) int {
	n := 0
	for _, m := range moves {
		if m.Kind() == kind {
			n++
		}
	}
	return n
}

func moved(p Piece) Piece {
	p.Moved = true
	return p
}
