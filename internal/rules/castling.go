package rules

import (
	. "github.com/cricklet/xxlchess/internal/board"
	. "github.com/cricklet/xxlchess/internal/helpers"
)

var castlingDirections = []int{-1, 1}

// CastlingCandidates lists the two-file king moves that castle.
func CastlingCandidates(b *Board, king PieceID, inCheck bool) []Movement {
	k := b.Piece(king)
	if k.Kind != King || k.HasMoved() || k.IsCaptured() || inCheck {
		return []Movement{}
	}
	from := k.Coord()

	result := []Movement{}
	for _, dir := range castlingDirections {
		to := Coord{X: from.X + 2*dir, Y: from.Y}
		if !to.InBounds() {
			continue
		}
		m := NewMovement(b, king, to)
		if CastlingMovement(b, m, inCheck).HasValue() {
			result = append(result, m)
		}
	}
	return result
}

// CastlingMovement returns the rook half of a castling king move, or nothing
// when m doesn't castle. The partner is the unmoved rook farthest from the
// king on its side; pieces in between don't matter. It lands next to the
// king's destination, which must be free.
func CastlingMovement(b *Board, m Movement, inCheck bool) Optional[Movement] {
	k := b.Piece(m.Piece)
	if inCheck || k.Kind != King || k.HasMoved() {
		return Empty[Movement]()
	}
	if m.From.Y != m.To.Y || AbsDiff(m.From.X, m.To.X) != 2 {
		return Empty[Movement]()
	}
	if b.Occupant(m.To).HasValue() {
		return Empty[Movement]()
	}

	dir := Sign(m.To.X - m.From.X)
	partner := Empty[PieceID]()
	for at := m.From.Add(Coord{X: dir}); at.InBounds(); at = at.Add(Coord{X: dir}) {
		occupant := b.Occupant(at)
		if occupant.IsEmpty() {
			continue
		}
		p := b.Piece(occupant.Value())
		if p.Kind == Rook && !p.HasMoved() && p.Color == k.Color {
			partner = occupant
		}
	}
	if partner.IsEmpty() {
		return Empty[Movement]()
	}

	landing := Coord{X: m.To.X - dir, Y: m.From.Y}
	if b.Occupant(landing).HasValue() {
		return Empty[Movement]()
	}
	return Some(NewMovement(b, partner.Value(), landing))
}
