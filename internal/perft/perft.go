// Package perft walks the legal move tree of a position and counts the leaves.
// The counts are compared against published results to check move generation.
package perft

import (
	"context"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/hailam/chessrules/internal/board"
)

// Stats holds the leaf count and a breakdown of the moves leading to leaves.
type Stats struct {
	Nodes      uint64
	Captures   uint64
	EnPassant  uint64
	Castles    uint64
	Promotions uint64
	Checks     uint64
}

func (s *Stats) add(o Stats) {
	s.Nodes += o.Nodes
	s.Captures += o.Captures
	s.EnPassant += o.EnPassant
	s.Castles += o.Castles
	s.Promotions += o.Promotions
	s.Checks += o.Checks
}

// String formats the counts with thousands separators.
func (s Stats) String() string {
	return message.NewPrinter(language.English).
		Sprintf("nodes=%d cap=%d enp=%d cas=%d pro=%d chk=%d",
			s.Nodes, s.Captures, s.EnPassant, s.Castles, s.Promotions, s.Checks)
}

// Split is the node count below one root move.
type Split struct {
	Move  string
	Nodes uint64
}

// Count walks the tree to depth plies.
func Count(b *board.Board, depth int) Stats {
	var s Stats
	count(b, depth, &s)
	return s
}

func count(b *board.Board, depth int, s *Stats) {
	if depth == 0 {
		s.Nodes++
		return
	}

	current := b.CurrentPlayer()
	for _, m := range current.LegalMoves() {
		t := current.MakeMove(m)
		if !t.Status().IsDone() {
			continue
		}
		if depth == 1 {
			s.Nodes++
			tally(m, t.Board(), s)
			continue
		}
		count(t.Board(), depth-1, s)
	}
}

// tally records what kind of move produced a leaf.
func tally(m board.Move, after *board.Board, s *Stats) {
	if m.IsAttack() {
		s.Captures++
	}
	if m.IsEnPassant() {
		s.EnPassant++
	}
	if m.IsCastle() {
		s.Castles++
	}
	if m.IsPromotion() {
		s.Promotions++
	}
	if after.CurrentPlayer().IsInCheck() {
		s.Checks++
	}
}

// Divide returns the node count below each completed root move.
func Divide(b *board.Board, depth int) []Split {
	if depth < 1 {
		return nil
	}
	current := b.CurrentPlayer()
	var splits []Split
	for _, m := range current.LegalMoves() {
		t := current.MakeMove(m)
		if !t.Status().IsDone() {
			continue
		}
		splits = append(splits, Split{
			Move:  m.Coordinates(),
			Nodes: Count(t.Board(), depth-1).Nodes,
		})
	}
	return splits
}

// CountParallel is Count with the root moves spread across goroutines. It
// stops early when ctx is cancelled.
func CountParallel(ctx context.Context, b *board.Board, depth int) (Stats, error) {
	if depth < 2 {
		return Count(b, depth), nil
	}

	var (
		mu    sync.Mutex
		total Stats
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	current := b.CurrentPlayer()
	for _, m := range current.LegalMoves() {
		m := m
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			t := current.MakeMove(m)
			if !t.Status().IsDone() {
				return nil
			}
			var s Stats
			count(t.Board(), depth-1, &s)

			mu.Lock()
			total.add(s)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Stats{}, err
	}
	return total, nil
}
