package rules

import (
	. "github.com/cricklet/xxlchess/internal/board"
	. "github.com/cricklet/xxlchess/internal/helpers"
)

// InCheckIncident names a king that is currently attacked.
type InCheckIncident struct {
	King PieceID
}

// DetectThreats lists the enemy pieces whose attack range covers the
// subject's tile. A captured subject has no threats.
func DetectThreats(b *Board, subject PieceID) []PieceID {
	target := b.Piece(subject)
	if target.IsCaptured() {
		return []PieceID{}
	}
	at := target.Coord()
	color := target.Color

	return FilterSlice(b.Pieces(), func(id PieceID) bool {
		return b.Piece(id).Color != color && b.AttackRange(id).Has(at)
	})
}

// PredictThreats replays move on a clone of b and detects threats against
// the clone's copy of subject. b is left untouched.
func PredictThreats(b *Board, move Movement, subject PieceID) []PieceID {
	simulation := b.Clone()
	move.Perform(simulation)
	simulation.Refresh()
	return DetectThreats(simulation, subject)
}

func DetectInCheck(b *Board, king PieceID) Optional[InCheckIncident] {
	if len(DetectThreats(b, king)) > 0 {
		return Some(InCheckIncident{king})
	}
	return Empty[InCheckIncident]()
}

func PredictInCheck(b *Board, king PieceID, move Movement) Optional[InCheckIncident] {
	if len(PredictThreats(b, move, king)) > 0 {
		return Some(InCheckIncident{king})
	}
	return Empty[InCheckIncident]()
}
