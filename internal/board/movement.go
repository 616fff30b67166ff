package board

import (
	"fmt"

	. "github.com/cricklet/xxlchess/internal/helpers"
)

// Movement is one ply of one piece. From and Captured are snapshots taken
// when the movement was built.
type Movement struct {
	Piece    PieceID
	From     Coord
	To       Coord
	Captured Optional[PieceID]
}

func NewMovement(b *Board, id PieceID, to Coord) Movement {
	return Movement{
		Piece:    id,
		From:     b.Piece(id).Coord(),
		To:       to,
		Captured: b.Occupant(to),
	}
}

// MovementKey identifies a movement regardless of what it would capture.
type MovementKey struct {
	Piece PieceID
	From  Coord
	To    Coord
}

func (m Movement) Key() MovementKey {
	return MovementKey{m.Piece, m.From, m.To}
}

func (m Movement) Equal(o Movement) bool {
	return m.Key() == o.Key()
}

func (m Movement) IsCapture() bool {
	return m.Captured.HasValue()
}

// Perform applies the movement to b and returns whatever stood on the
// destination at that moment.
func (m Movement) Perform(b *Board) Optional[PieceID] {
	captured := b.lift(m.To)
	lifted := b.lift(m.From)
	if lifted.IsEmpty() || lifted.Value() != m.Piece {
		panic(fmt.Sprintf("%v: piece #%v is not on %v", m, m.Piece, m.From))
	}
	b.place(m.Piece, m.To)
	b.pieces[m.Piece].moved = true
	return captured
}

// Revert undoes Perform given its result and the piece's moved flag from
// before the movement.
func (m Movement) Revert(b *Board, captured Optional[PieceID], wasMoved bool) {
	b.lift(m.To)
	b.place(m.Piece, m.From)
	b.pieces[m.Piece].moved = wasMoved
	if captured.HasValue() {
		b.place(captured.Value(), m.To)
	}
}

func (m Movement) String() string {
	return fmt.Sprintf("#%v%v->%v", m.Piece, m.From, m.To)
}

func MovementKeys(moves []Movement) map[MovementKey]Movement {
	result := make(map[MovementKey]Movement, len(moves))
	for _, m := range moves {
		result[m.Key()] = m
	}
	return result
}
