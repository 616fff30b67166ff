package main

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	. "github.com/cricklet/xxlchess/internal/board"
	"github.com/cricklet/xxlchess/internal/config"
	"github.com/cricklet/xxlchess/internal/game"
	. "github.com/cricklet/xxlchess/internal/helpers"
	"github.com/cricklet/xxlchess/internal/storage"
)

var standardLayout = strings.Join([]string{
	"RNBHCGAKECHBNR",
	"PPPPPPPPPPPPPP",
	"", "", "", "", "", "", "", "", "", "",
	"pppppppppppppp",
	"rnbhcgakechbnr",
}, "\n")

func newSession(t *testing.T, ledger *storage.Ledger) *Session {
	b, err := ParseLayoutString(standardLayout, White)
	require.True(t, IsNil(err), "%v", err)
	g, err := game.New(b, game.Options{
		PlayerColor:        White,
		Player:             config.TimeControl{Seconds: 180, Increment: 2},
		CPU:                config.TimeControl{Seconds: 180, Increment: 2},
		PieceMovementSpeed: game.CellSize,
		MaxMovementTime:    1,
		Strategy:           Some[game.BotStrategy](game.FirstAvailableStrategy{}),
	})
	require.True(t, IsNil(err), "%v", err)
	return NewSession(g, ledger, &SilentLogger)
}

func handle(t *testing.T, s *Session, message string) UpdateToWeb {
	update, err := s.HandleMessage([]byte(message))
	require.True(t, IsNil(err), "%v", err)
	return update
}

func TestSessionMessages(t *testing.T) {
	s := newSession(t, nil)
	assert.NotEmpty(t, s.Name)
	assert.NotEmpty(t, s.ID)

	update := handle(t, s, `{"select":[7,12]}`)
	assert.Equal(t, []int{7, 12}, update.Selection)
	assert.Equal(t, [][2]int{{7, 10}, {7, 11}}, update.Targets)
	assert.Equal(t, "player turn", update.Status)
	assert.Equal(t, 14, len(update.Rows))
	assert.Equal(t, "3:00", update.PlayerTime)

	update = handle(t, s, `{"move":[7,10]}`)
	assert.Empty(t, update.Rejected)
	assert.Equal(t, "rendering animation", update.Status)
	assert.Equal(t, "(7,12)->(7,10)", update.LastMove)
	assert.Equal(t, ".......p......", update.Rows[10])

	update = handle(t, s, `{"tick":600}`)
	assert.Equal(t, "player turn", update.Status)
	assert.Equal(t, "N.............", update.Rows[2])

	update = handle(t, s, `{"move":[1,1]}`)
	assert.Contains(t, update.Rejected, "invalid piece movement")
}

func TestSessionResignIsRecorded(t *testing.T) {
	ledger, err := storage.OpenInMemory()
	require.True(t, IsNil(err), "%v", err)
	defer ledger.Close()

	s := newSession(t, ledger)
	update := handle(t, s, `{"resign":true}`)
	assert.Equal(t, "You lost by resignation!", update.Report)
	assert.True(t, s.Ended())

	// a second message doesn't record twice
	handle(t, s, `{"tick":1}`)

	records, err := ledger.Records()
	require.True(t, IsNil(err), "%v", err)
	require.Equal(t, 1, len(records))
	assert.Equal(t, s.ID, records[0].ID)
	assert.Equal(t, s.Name, records[0].Session)
	assert.Equal(t, "player resigned", records[0].Reason)
}

func TestSessionTickReportsChanges(t *testing.T) {
	s := newSession(t, nil)

	changes := 0
	for i := 0; i < game.FPS; i++ {
		if _, changed := s.Tick(); changed {
			changes++
		}
	}
	// only the clock reading moves, once per second
	assert.Equal(t, 1, changes)
}

func TestTickMessagesAreCapped(t *testing.T) {
	s := newSession(t, nil)

	update := handle(t, s, `{"tick":1000000000}`)
	assert.Equal(t, "player turn", update.Status)
	assert.Equal(t, "2:00", update.PlayerTime)
}

func TestBadMessage(t *testing.T) {
	s := newSession(t, nil)
	_, err := s.HandleMessage([]byte("{"))
	assert.False(t, IsNil(err))
}

func TestWebsocket(t *testing.T) {
	c, err := config.Load(RootDir() + "/config.json")
	require.True(t, IsNil(err), "%v", err)

	server := &Server{config: c, manual: true, logger: NewZapLogger(zap.NewNop(), "test")}
	ts := httptest.NewServer(server.Router())
	defer ts.Close()

	conn, _, dialErr := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", nil)
	require.NoError(t, dialErr)
	defer conn.Close()

	var update UpdateToWeb
	require.NoError(t, conn.ReadJSON(&update))
	assert.Equal(t, "player turn", update.Status)
	assert.Equal(t, "rnbhcgakechbnr", update.Rows[13])

	require.NoError(t, conn.WriteJSON(map[string]any{"select": []int{0, 12}}))
	require.NoError(t, conn.ReadJSON(&update))
	assert.Equal(t, []int{0, 12}, update.Selection)
}
