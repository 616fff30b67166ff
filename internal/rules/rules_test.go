package rules

import (
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/cricklet/xxlchess/internal/board"
	. "github.com/cricklet/xxlchess/internal/helpers"
)

func pp(t any) string {
	return spew.Sdump(t)
}

// layoutWith places the given rows (keyed by y) on an otherwise empty board.
func layoutWith(rows map[int]string) string {
	all := make([]string, Width)
	for y := range all {
		all[y] = ".............."
	}
	for y, row := range rows {
		all[y] = row
	}
	return strings.Join(all, "\n")
}

func mustParse(t *testing.T, layout string) *Board {
	b, err := ParseLayoutString(layout, White)
	require.True(t, IsNil(err), "%v", err)
	return b
}

func kingOf(t *testing.T, b *Board, c Color) PieceID {
	king := b.King(c)
	require.True(t, king.HasValue())
	return king.Value()
}

func at(b *Board, x, y int) PieceID {
	return b.PieceAt(x, y).Value()
}

func targetsOf(moves []Movement, piece PieceID) []Coord {
	return MapSlice(FilterSlice(moves, func(m Movement) bool {
		return m.Piece == piece
	}), func(m Movement) Coord {
		return m.To
	})
}

func TestDetectThreats(t *testing.T) {
	b := mustParse(t, layoutWith(map[int]string{
		0:  "K.............",
		5:  "......R.......",
		12: "......k.P.....",
		13: "..............",
	}))
	king := kingOf(t, b, White)

	threats := DetectThreats(b, king)
	assert.Equal(t, []PieceID{at(b, 6, 5)}, threats)
	assert.True(t, DetectInCheck(b, king).HasValue())
	assert.Equal(t, king, DetectInCheck(b, king).Value().King)

	// the black pawn on (8,12) moves downwards and attacks (7,13) and (9,13)
	assert.Empty(t, DetectThreats(b, at(b, 6, 5)))
	assert.True(t, DetectInCheck(b, kingOf(t, b, Black)).IsEmpty())
}

func TestPawnsOnlyThreatenDiagonally(t *testing.T) {
	b := mustParse(t, layoutWith(map[int]string{
		0:  "K.............",
		10: "......P.......",
		11: "......k.......",
	}))
	king := kingOf(t, b, White)
	assert.Empty(t, DetectThreats(b, king))

	b = mustParse(t, layoutWith(map[int]string{
		0:  "K.............",
		10: ".....P........",
		11: "......k.......",
	}))
	king = kingOf(t, b, White)
	assert.Equal(t, []PieceID{at(b, 5, 10)}, DetectThreats(b, king))
}

func TestCapturedSubjectHasNoThreats(t *testing.T) {
	b := mustParse(t, layoutWith(map[int]string{
		0: "K.............",
		5: "......R.....r.",
		9: "......k.......",
	}))
	rook := at(b, 6, 5)
	NewMovement(b, at(b, 12, 5), Coord{X: 6, Y: 5}).Perform(b)

	assert.True(t, b.Piece(rook).IsCaptured())
	assert.Empty(t, DetectThreats(b, rook))
}

func TestPredictThreatsLeavesBoardAlone(t *testing.T) {
	b := mustParse(t, layoutWith(map[int]string{
		0:  "R...K.....Q...",
		3:  "..a...C.g.....",
		6:  ".....h..p.....",
		7:  "..E...P..n....",
		9:  "...b....c...r.",
		12: ".p...pp.......",
		13: "r......k.....r",
	}))
	before := b.String()
	count := b.Occupied()
	numPieces := b.NumPieces()

	for _, color := range []Color{White, Black} {
		king := kingOf(t, b, color)
		for _, m := range AllMovements(b, b.PiecesOf(color), false) {
			PredictThreats(b, m, king)
			PredictInCheck(b, king, m)
		}
	}

	assert.Equal(t, before, b.String())
	assert.Equal(t, count, b.Occupied())
	assert.Equal(t, numPieces, b.NumPieces())
}

func TestSafeMovementsMatchSimulation(t *testing.T) {
	b := mustParse(t, layoutWith(map[int]string{
		0:  "....K.........",
		4:  "....R.........",
		8:  "....b...Q.....",
		10: "..n...........",
		12: "...p..........",
		13: "....k.........",
	}))
	king := kingOf(t, b, White)
	candidates := AllMovements(b, b.PiecesOf(White), DetectInCheck(b, king).HasValue())
	safe := MovementKeys(SafeMovements(b, candidates, king))

	for _, m := range candidates {
		simulation := b.Clone()
		m.Perform(simulation)
		simulation.Refresh()
		_, isSafe := safe[m.Key()]
		assert.Equal(t, len(DetectThreats(simulation, king)) == 0, isSafe, m.String())
	}
}

func TestPinnedPieceStaysOnTheLine(t *testing.T) {
	b := mustParse(t, layoutWith(map[int]string{
		0:  "....K.........",
		4:  "....R.........",
		8:  "....b.........",
		13: "....k.........",
	}))
	king := kingOf(t, b, White)
	bishop := at(b, 4, 8)

	safe := SafeMovements(b, AllMovements(b, b.PiecesOf(White), false), king)
	assert.Empty(t, targetsOf(safe, bishop), pp(safe))

	// the bishop still shields the king when the king steps up
	kingMoves := targetsOf(safe, king)
	assert.Contains(t, kingMoves, Coord{X: 4, Y: 12})
	assert.Contains(t, kingMoves, Coord{X: 3, Y: 12})
}

func TestSolveIncident(t *testing.T) {
	b := mustParse(t, layoutWith(map[int]string{
		0:  "....K.........",
		4:  "....R.........",
		7:  "..r...........",
		13: "....k.........",
	}))
	king := kingOf(t, b, White)
	incident := DetectInCheck(b, king)
	require.True(t, incident.HasValue())

	solution := SolveIncident(b, b.PiecesOf(White), incident.Value())
	rook := at(b, 2, 7)

	// the rook can only block on (4,7); the king has to leave the file
	assert.Equal(t, []Coord{{X: 4, Y: 7}}, targetsOf(solution, rook))
	for _, to := range targetsOf(solution, king) {
		assert.NotEqual(t, 4, to.X, to.String())
	}

	for _, m := range solution {
		assert.Empty(t, PredictThreats(b, m, king))
	}
}

func TestCheckmateHasNoSolution(t *testing.T) {
	b := mustParse(t, layoutWith(map[int]string{
		0:  "....K.........",
		12: ".............R",
		13: "k...........R.",
	}))
	king := kingOf(t, b, White)
	incident := DetectInCheck(b, king)
	require.True(t, incident.HasValue())
	assert.Empty(t, SolveIncident(b, b.PiecesOf(White), incident.Value()))
}

var castlingLayout = layoutWith(map[int]string{
	0:  "K.............",
	13: "r......k.....r",
})

func TestCastlingCandidates(t *testing.T) {
	b := mustParse(t, castlingLayout)
	king := kingOf(t, b, White)

	candidates := CastlingCandidates(b, king, false)
	assert.Equal(t, []Coord{{X: 5, Y: 13}, {X: 9, Y: 13}}, MapSlice(candidates, func(m Movement) Coord {
		return m.To
	}))

	rook := CastlingMovement(b, candidates[0], false)
	require.True(t, rook.HasValue())
	assert.Equal(t, at(b, 0, 13), rook.Value().Piece)
	assert.Equal(t, Coord{X: 6, Y: 13}, rook.Value().To)

	rook = CastlingMovement(b, candidates[1], false)
	require.True(t, rook.HasValue())
	assert.Equal(t, at(b, 13, 13), rook.Value().Piece)
	assert.Equal(t, Coord{X: 8, Y: 13}, rook.Value().To)

	// castling shows up among the king's movements
	all := AllMovements(b, b.PiecesOf(White), false)
	assert.Contains(t, targetsOf(all, king), Coord{X: 5, Y: 13})
	assert.Contains(t, targetsOf(all, king), Coord{X: 9, Y: 13})

	// but never while in check
	assert.Empty(t, CastlingCandidates(b, king, true))
	assert.NotContains(t, targetsOf(AllMovements(b, b.PiecesOf(White), true), king), Coord{X: 5, Y: 13})
}

func TestCastlingBlocked(t *testing.T) {
	{
		// the rook would land on the knight
		b := mustParse(t, layoutWith(map[int]string{
			0:  "K.............",
			13: "r.....nk......",
		}))
		assert.Empty(t, CastlingCandidates(b, kingOf(t, b, White), false))
	}
	{
		// an enemy rook isn't a partner
		b := mustParse(t, layoutWith(map[int]string{
			0:  "K.............",
			13: "R......k......",
		}))
		assert.Empty(t, CastlingCandidates(b, kingOf(t, b, White), false))
	}
	{
		// a rook that has moved can't castle
		b := mustParse(t, castlingLayout)
		rook := at(b, 0, 13)
		NewMovement(b, rook, Coord{X: 0, Y: 12}).Perform(b)
		NewMovement(b, rook, Coord{X: 0, Y: 13}).Perform(b)
		candidates := CastlingCandidates(b, kingOf(t, b, White), false)
		assert.Equal(t, 1, len(candidates))
		assert.Equal(t, Coord{X: 9, Y: 13}, candidates[0].To)
	}
	{
		// a king that has moved can't castle
		b := mustParse(t, castlingLayout)
		king := kingOf(t, b, White)
		NewMovement(b, king, Coord{X: 7, Y: 12}).Perform(b)
		NewMovement(b, king, Coord{X: 7, Y: 13}).Perform(b)
		assert.Empty(t, CastlingCandidates(b, king, false))
	}
}

func TestCastlingPastPieces(t *testing.T) {
	{
		// pieces between king and rook don't block
		b := mustParse(t, layoutWith(map[int]string{
			0:  "K.............",
			13: "r.n....k......",
		}))
		candidates := CastlingCandidates(b, kingOf(t, b, White), false)
		require.Equal(t, 1, len(candidates))
		assert.Equal(t, Coord{X: 5, Y: 13}, candidates[0].To)

		rook := CastlingMovement(b, candidates[0], false)
		require.True(t, rook.HasValue())
		assert.Equal(t, at(b, 0, 13), rook.Value().Piece)
		assert.Equal(t, Coord{X: 6, Y: 13}, rook.Value().To)
		assert.False(t, rook.Value().IsCapture())
	}
	{
		// the farthest unmoved rook is the partner
		b := mustParse(t, layoutWith(map[int]string{
			0:  "K.............",
			13: "r..r...k......",
		}))
		candidates := CastlingCandidates(b, kingOf(t, b, White), false)
		require.Equal(t, 1, len(candidates))
		rook := CastlingMovement(b, candidates[0], false)
		require.True(t, rook.HasValue())
		assert.Equal(t, at(b, 0, 13), rook.Value().Piece)
	}
	{
		// a rook already beside the king has nowhere to land
		b := mustParse(t, layoutWith(map[int]string{
			0:  "K.............",
			13: "......rk......",
		}))
		assert.Empty(t, CastlingCandidates(b, kingOf(t, b, White), false))
	}
}

func TestKingCapture(t *testing.T) {
	b := mustParse(t, layoutWith(map[int]string{
		0:  "....K.........",
		13: "....r...k.....",
	}))
	rook := at(b, 4, 13)
	capture := NewMovement(b, rook, Coord{X: 4, Y: 0})
	assert.True(t, IsKingCapture(b, capture))
	assert.False(t, IsKingCapture(b, NewMovement(b, rook, Coord{X: 4, Y: 5})))
}
