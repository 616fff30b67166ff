package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	petname "github.com/dustinkirkland/golang-petname"
	"github.com/google/uuid"

	. "github.com/cricklet/xxlchess/internal/board"
	"github.com/cricklet/xxlchess/internal/game"
	. "github.com/cricklet/xxlchess/internal/helpers"
	"github.com/cricklet/xxlchess/internal/storage"
)

// a single {tick:n} message advances at most a minute of frames
const maxTickFrames = 60 * game.FPS

type UpdateToWeb struct {
	Session      string   `json:"session"`
	Rows         []string `json:"rows"`
	Status       string   `json:"status"`
	Selection    []int    `json:"selection,omitempty"`
	Targets      [][2]int `json:"targets"`
	LastMove     string   `json:"lastMove,omitempty"`
	PlayerTime   string   `json:"playerTime"`
	ComputerTime string   `json:"computerTime"`
	InCheck      bool     `json:"inCheck"`
	RedLight     bool     `json:"redLight"`
	Report       string   `json:"report,omitempty"`
	Rejected     string   `json:"rejected,omitempty"`
}

func (u UpdateToWeb) String() string {
	return fmt.Sprint("UpdateToWeb: ", u.Status, ", ", u.LastMove, ", ", u.Selection, ", ", u.Targets, ", ", u.Report)
}

type MessageFromWeb struct {
	Select *[2]int `json:"select"`
	Move   *[2]int `json:"move"`
	Resign *bool   `json:"resign"`
	Tick   *int    `json:"tick"`
}

func (u MessageFromWeb) String() string {
	if u.Select != nil {
		return fmt.Sprint("MessageFromWeb Select: ", *u.Select)
	}
	if u.Move != nil {
		return fmt.Sprint("MessageFromWeb Move: ", *u.Move)
	}
	if u.Resign != nil {
		return fmt.Sprint("MessageFromWeb Resign: ", *u.Resign)
	}
	if u.Tick != nil {
		return fmt.Sprint("MessageFromWeb Tick: ", *u.Tick)
	}
	return "MessageFromWeb unknown"
}

// Session is one human's game. Messages from the socket and frame ticks
// both go through the mutex.
type Session struct {
	ID   string
	Name string

	mu       sync.Mutex
	game     *game.Game
	ledger   *storage.Ledger
	recorded bool
	logger   Logger
}

func NewSession(g *game.Game, ledger *storage.Ledger, logger Logger) *Session {
	return &Session{
		ID:     uuid.NewString(),
		Name:   petname.Generate(2, "-"),
		game:   g,
		ledger: ledger,
		logger: logger,
	}
}

func (s *Session) update() UpdateToWeb {
	g := s.game
	update := UpdateToWeb{
		Session:      s.Name,
		Rows:         strings.Split(strings.TrimRight(g.Board().String(), "\n"), "\n"),
		Status:       g.Status().String(),
		Targets:      [][2]int{},
		PlayerTime:   game.FormatSeconds(g.Human().RemainingTime()),
		ComputerTime: game.FormatSeconds(g.Bot().RemainingTime()),
		InCheck:      g.InCheck().HasValue(),
		RedLight:     g.Warning() != nil && g.Warning().IsRedLight(),
	}
	if selection := g.Human().Selection(); selection.HasValue() {
		update.Selection = []int{selection.Value().X, selection.Value().Y}
	}
	for _, c := range g.TargetTiles().Coords() {
		update.Targets = append(update.Targets, [2]int{c.X, c.Y})
	}
	if lastMove := g.LastMove(); lastMove.HasValue() {
		update.LastMove = fmt.Sprintf("%v->%v", lastMove.Value().From, lastMove.Value().To)
	}
	if report := g.Report(); report.HasValue() {
		update.Report = report.Value().Reason.Text()
	}
	return update
}

// HandleMessage applies one message and returns the update to send back.
func (s *Session) HandleMessage(bytes []byte) (UpdateToWeb, Error) {
	var message MessageFromWeb
	if err := json.Unmarshal(bytes, &message); err != nil {
		return UpdateToWeb{}, Errorf("handleMessageFromWeb: json unmarshal: %w", err)
	}
	s.logger.Println("received", message)

	s.mu.Lock()
	defer s.mu.Unlock()

	var rejection error
	switch {
	case message.Select != nil:
		rejection = s.game.SelectPiece(Coord{X: message.Select[0], Y: message.Select[1]})
	case message.Move != nil:
		rejection = s.game.AttemptMove(Coord{X: message.Move[0], Y: message.Move[1]})
	case message.Resign != nil && *message.Resign:
		s.game.Resign(s.game.Human())
	case message.Tick != nil:
		s.tick(*message.Tick)
	}

	s.record()
	update := s.update()
	if rejection != nil {
		update.Rejected = rejection.Error()
	}
	return update, NilError
}

func (s *Session) tick(frames int) {
	frames = MinInt(frames, maxTickFrames)
	for i := 0; i < frames && !s.game.Report().HasValue(); i++ {
		s.game.Tick()
	}
}

// Tick advances one frame. It reports whether anything a viewer would notice
// changed.
func (s *Session) Tick() (UpdateToWeb, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := s.update()
	s.tick(1)
	s.record()
	after := s.update()
	return after, after.String() != before.String() ||
		after.PlayerTime != before.PlayerTime || after.ComputerTime != before.ComputerTime ||
		after.RedLight != before.RedLight
}

func (s *Session) Ended() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.Report().HasValue()
}

func (s *Session) record() {
	if s.recorded || s.ledger == nil || s.game.Report().IsEmpty() {
		return
	}
	s.recorded = true

	r, err := storage.RecordFromGame(s.game, s.Name)
	if IsNil(err) {
		r.ID = s.ID
		_, err = s.ledger.Record(r)
	}
	if !IsNil(err) {
		s.logger.Println("ledger:", err)
		return
	}
	s.logger.Printf("recorded %v", s.game.Report().Value())
}
