package rules

import (
	. "github.com/cricklet/xxlchess/internal/board"
	. "github.com/cricklet/xxlchess/internal/helpers"
)

// AllMovements builds one movement per reachable tile of every rostered
// piece, in roster order. Castling candidates follow the king's ordinary
// moves.
func AllMovements(b *Board, roster []PieceID, inCheck bool) []Movement {
	result := []Movement{}
	for _, id := range roster {
		p := b.Piece(id)
		if p.IsCaptured() {
			continue
		}
		for _, to := range b.Targets(id).Coords() {
			result = append(result, NewMovement(b, id, to))
		}
		if p.Kind == King {
			result = append(result, CastlingCandidates(b, id, inCheck)...)
		}
	}
	return result
}

// SafeMovements drops every candidate that would leave king attacked.
func SafeMovements(b *Board, candidates []Movement, king PieceID) []Movement {
	return FilterSlice(candidates, func(m Movement) bool {
		return PredictInCheck(b, king, m).IsEmpty()
	})
}

// SolveIncident lists the moves of the checked side that get its king out of
// check.
func SolveIncident(b *Board, roster []PieceID, incident InCheckIncident) []Movement {
	return SafeMovements(b, AllMovements(b, roster, true), incident.King)
}

// IsKingCapture reports whether m lands on an enemy king.
func IsKingCapture(b *Board, m Movement) bool {
	if m.Captured.IsEmpty() {
		return false
	}
	return b.Piece(m.Captured.Value()).Kind == King
}
