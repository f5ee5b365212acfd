package board

// exclusion vetoes an offset for a piece standing on sq when applying it
// would wrap across the board edge to the opposite side.
type exclusion func(sq Square, offset int) bool

// moveRules is the per-type move generation contract: candidate offsets and
// the four column exclusions.
type moveRules struct {
	offsets []int

	firstColumn   exclusion
	secondColumn  exclusion
	seventhColumn exclusion
	eighthColumn  exclusion
}

// excluded reports whether any of the four column exclusions applies.
func (r *moveRules) excluded(sq Square, offset int) bool {
	return r.firstColumn(sq, offset) ||
		r.secondColumn(sq, offset) ||
		r.seventhColumn(sq, offset) ||
		r.eighthColumn(sq, offset)
}

func never(Square, int) bool { return false }

// columnExclusion vetoes the listed offsets for pieces on the given column.
func columnExclusion(column int, offsets ...int) exclusion {
	return func(sq Square, offset int) bool {
		if !onColumn(sq, column) {
			return false
		}
		for _, o := range offsets {
			if o == offset {
				return true
			}
		}
		return false
	}
}

var (
	kingQueenOffsets = []int{-9, -8, -7, -1, 1, 7, 8, 9}

	rules = [NoPieceType]moveRules{
		Pawn: {
			offsets:       []int{8, 16, 7, 9},
			firstColumn:   never,
			secondColumn:  never,
			seventhColumn: never,
			eighthColumn:  never,
		},
		Knight: {
			offsets:       []int{-17, -15, -10, -6, 6, 10, 15, 17},
			firstColumn:   columnExclusion(0, -17, -10, 6, 15),
			secondColumn:  columnExclusion(1, -10, 6),
			seventhColumn: columnExclusion(6, -6, 10),
			eighthColumn:  columnExclusion(7, -15, -6, 10, 17),
		},
		Bishop: {
			offsets:       []int{-9, -7, 7, 9},
			firstColumn:   columnExclusion(0, -9, 7),
			secondColumn:  never,
			seventhColumn: never,
			eighthColumn:  columnExclusion(7, -7, 9),
		},
		Rook: {
			offsets:       []int{-8, -1, 1, 8},
			firstColumn:   columnExclusion(0, -1),
			secondColumn:  never,
			seventhColumn: never,
			eighthColumn:  columnExclusion(7, 1),
		},
		Queen: {
			offsets:       kingQueenOffsets,
			firstColumn:   columnExclusion(0, -9, -1, 7),
			secondColumn:  never,
			seventhColumn: never,
			eighthColumn:  columnExclusion(7, -7, 1, 9),
		},
		King: {
			offsets:       kingQueenOffsets,
			firstColumn:   columnExclusion(0, -9, -1, 7),
			secondColumn:  never,
			seventhColumn: never,
			eighthColumn:  columnExclusion(7, -7, 1, 9),
		},
	}
)

// HasExclusion reports whether offset is vetoed for p on sq by any of its
// type's column exclusions.
func (p Piece) HasExclusion(sq Square, offset int) bool {
	if !p.Exists() {
		return false
	}
	return rules[p.Type].excluded(sq, offset)
}

// leapingMoves tests each offset once (knight, king).
func (p Piece) leapingMoves(b *Board) []Move {
	r := &rules[p.Type]
	var moves []Move
	for _, offset := range r.offsets {
		dest := p.Square.offset(offset)
		if !dest.IsValid() || r.excluded(p.Square, offset) {
			continue
		}
		tile := b.TileAt(dest)
		if !tile.IsOccupied() {
			moves = append(moves, newMajorMove(b, p, dest))
			continue
		}
		if target := tile.Piece(); target.Alliance != p.Alliance {
			moves = append(moves, newMajorAttackMove(b, p, dest, target))
		}
	}
	return moves
}

// slidingMoves walks each offset as a ray (bishop, rook, queen).
func (p Piece) slidingMoves(b *Board) []Move {
	r := &rules[p.Type]
	var moves []Move
	for _, offset := range r.offsets {
		cur := p.Square
		for {
			if r.excluded(cur, offset) {
				break
			}
			cur = cur.offset(offset)
			if !cur.IsValid() {
				break
			}
			tile := b.TileAt(cur)
			if !tile.IsOccupied() {
				moves = append(moves, newMajorMove(b, p, cur))
				continue
			}
			if target := tile.Piece(); target.Alliance != p.Alliance {
				moves = append(moves, newMajorAttackMove(b, p, cur, target))
			}
			break
		}
	}
	return moves
}

// pawnMoves applies the bespoke pawn rules: pushes onto empty squares only,
// the jump from the start row on the first move, and diagonal captures
// including en passant.
func (p Piece) pawnMoves(b *Board) []Move {
	dir := p.Alliance.Direction()
	var moves []Move
	for _, offset := range rules[Pawn].offsets {
		dest := p.Square.offset(offset * dir)
		if !dest.IsValid() {
			continue
		}

		switch offset {
		case 8:
			if !b.TileAt(dest).IsOccupied() {
				moves = append(moves, newPawnMove(b, p, dest))
			}
		case 16:
			if !p.IsFirstMove() || !onRow(p.Square, p.Alliance.pawnStartRow()) {
				continue
			}
			behind := p.Square.offset(8 * dir)
			if !b.TileAt(behind).IsOccupied() && !b.TileAt(dest).IsOccupied() {
				moves = append(moves, newPawnJump(b, p, dest))
			}
		case 7:
			if (p.Alliance.IsWhite() && onColumn(p.Square, 7)) ||
				(p.Alliance.IsBlack() && onColumn(p.Square, 0)) {
				continue
			}
			if m, ok := p.pawnCapture(b, dest, p.Square.offset(p.Alliance.OppositeDirection())); ok {
				moves = append(moves, m)
			}
		case 9:
			if (p.Alliance.IsWhite() && onColumn(p.Square, 0)) ||
				(p.Alliance.IsBlack() && onColumn(p.Square, 7)) {
				continue
			}
			if m, ok := p.pawnCapture(b, dest, p.Square.offset(-p.Alliance.OppositeDirection())); ok {
				moves = append(moves, m)
			}
		}
	}
	return moves
}

// pawnCapture builds the diagonal move onto dest: a capture when dest holds
// an enemy, or en passant when dest is empty and the board's en-passant pawn
// is an enemy standing on beside.
func (p Piece) pawnCapture(b *Board, dest, beside Square) (Move, bool) {
	tile := b.TileAt(dest)
	if tile.IsOccupied() {
		target := tile.Piece()
		if target.Alliance == p.Alliance {
			return NullMove, false
		}
		return newPawnAttackMove(b, p, dest, target), true
	}
	ep, ok := b.EnPassantPawn()
	if !ok || ep.Alliance == p.Alliance || ep.Square != beside {
		return NullMove, false
	}
	return newPawnEnPassantAttackMove(b, p, dest, ep), true
}
