package storage

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/cricklet/xxlchess/internal/board"
	"github.com/cricklet/xxlchess/internal/config"
	"github.com/cricklet/xxlchess/internal/game"
	. "github.com/cricklet/xxlchess/internal/helpers"
)

var standardLayout = strings.Join([]string{
	"RNBHCGAKECHBNR",
	"PPPPPPPPPPPPPP",
	"", "", "", "", "", "", "", "", "", "",
	"pppppppppppppp",
	"rnbhcgakechbnr",
}, "\n")

func TestRecordAndReadBack(t *testing.T) {
	ledger, err := Open(t.TempDir())
	require.True(t, IsNil(err), "%v", err)
	defer ledger.Close()

	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	first, err := ledger.Record(GameRecord{Reason: "player resigned", Plies: 4, FinishedAt: start.Add(time.Minute)})
	require.True(t, IsNil(err), "%v", err)
	second, err := ledger.Record(GameRecord{Reason: "computer checkmated", HumanWon: true, Plies: 30, FinishedAt: start})
	require.True(t, IsNil(err), "%v", err)
	_, err = ledger.Record(GameRecord{Reason: "draw", Draw: true, Plies: 10, FinishedAt: start.Add(time.Hour)})
	require.True(t, IsNil(err), "%v", err)

	assert.NotEmpty(t, first.ID)
	assert.NotEqual(t, first.ID, second.ID)

	got, err := ledger.Get(first.ID)
	require.True(t, IsNil(err))
	require.True(t, got.HasValue())
	assert.Equal(t, 4, got.Value().Plies)

	missing, err := ledger.Get("nope")
	require.True(t, IsNil(err))
	assert.True(t, missing.IsEmpty())

	records, err := ledger.Records()
	require.True(t, IsNil(err))
	assert.Equal(t, []string{"computer checkmated", "player resigned", "draw"},
		MapSlice(records, func(r GameRecord) string { return r.Reason }))

	stats, err := ledger.Stats()
	require.True(t, IsNil(err))
	assert.Equal(t, 3, stats.Games)
	assert.Equal(t, 1, stats.Wins)
	assert.Equal(t, 1, stats.Losses)
	assert.Equal(t, 1, stats.Draws)
	assert.Equal(t, 44, stats.TotalPlies)
	assert.Equal(t, 1, stats.ByReason["draw"])
	assert.Contains(t, stats.String(), "3 games")
}

func TestLedgerPersists(t *testing.T) {
	dir := t.TempDir()
	ledger, err := Open(dir)
	require.True(t, IsNil(err), "%v", err)
	r, err := ledger.Record(GameRecord{Reason: "player timeout", Plies: 1234})
	require.True(t, IsNil(err))
	require.True(t, IsNil(ledger.Close()))

	ledger, err = Open(dir)
	require.True(t, IsNil(err), "%v", err)
	defer ledger.Close()

	got, err := ledger.Get(r.ID)
	require.True(t, IsNil(err))
	require.True(t, got.HasValue())
	assert.Equal(t, r.ID, got.Value().ID)
	assert.True(t, r.FinishedAt.Equal(got.Value().FinishedAt))

	stats, err := ledger.Stats()
	require.True(t, IsNil(err))
	assert.Contains(t, stats.String(), "1,234 plies")
}

func TestRecordFromGame(t *testing.T) {
	b, err := ParseLayoutString(standardLayout, White)
	require.True(t, IsNil(err))
	g, err := game.New(b, game.Options{
		PlayerColor:        White,
		Player:             config.TimeControl{Seconds: 10},
		CPU:                config.TimeControl{Seconds: 10},
		PieceMovementSpeed: 1,
		MaxMovementTime:    1,
	})
	require.True(t, IsNil(err))

	_, err = RecordFromGame(g, "session")
	assert.False(t, IsNil(err))

	g.Resign(g.Human())
	r, err := RecordFromGame(g, "brave-otter")
	require.True(t, IsNil(err), "%v", err)
	assert.Equal(t, "player resigned", r.Reason)
	assert.False(t, r.HumanWon)
	assert.False(t, r.Draw)
	assert.Equal(t, "white", r.PlayerColour)
	assert.Equal(t, b.String(), r.FinalLayout)

	ledger, err := OpenInMemory()
	require.True(t, IsNil(err), "%v", err)
	defer ledger.Close()
	_, err = ledger.Record(r)
	require.True(t, IsNil(err))

	records, err := ledger.Records()
	require.True(t, IsNil(err))
	assert.Equal(t, 1, len(records))
	assert.Equal(t, "brave-otter", records[0].Session)
}
