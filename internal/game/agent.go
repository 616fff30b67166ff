package game

import (
	"fmt"

	. "github.com/cricklet/xxlchess/internal/board"
	"github.com/cricklet/xxlchess/internal/config"
	. "github.com/cricklet/xxlchess/internal/helpers"
)

type Controller uint8

const (
	Human Controller = iota
	Computer
)

func (c Controller) String() string {
	if c == Human {
		return "player"
	}
	return "computer"
}

// PlayerAgent is one side of the game: its clock, its live pieces and, for
// the human, the pending selection.
type PlayerAgent struct {
	Color      Color
	Controller Controller

	roster    []PieceID
	king      PieceID
	timer     *Timer
	increment int
	opponent  *PlayerAgent

	lastMove  Optional[Movement]
	selection Optional[Coord]
	strategy  BotStrategy
}

func newPlayerAgent(color Color, controller Controller, tc config.TimeControl) *PlayerAgent {
	return &PlayerAgent{
		Color:      color,
		Controller: controller,
		roster:     []PieceID{},
		timer:      NewTimer(float64(tc.Seconds)),
		increment:  tc.Increment,
	}
}

func (a *PlayerAgent) String() string {
	return fmt.Sprintf("%v (%v)", a.Controller, a.Color)
}

func (a *PlayerAgent) IsHuman() bool {
	return a.Controller == Human
}

// Roster lists the agent's live pieces. The slice is a copy.
func (a *PlayerAgent) Roster() []PieceID {
	return append([]PieceID{}, a.roster...)
}

func (a *PlayerAgent) King() PieceID {
	return a.king
}

func (a *PlayerAgent) Opponent() *PlayerAgent {
	return a.opponent
}

func (a *PlayerAgent) LastMove() Optional[Movement] {
	return a.lastMove
}

func (a *PlayerAgent) Selection() Optional[Coord] {
	return a.selection
}

func (a *PlayerAgent) ClearSelection() {
	a.selection = Empty[Coord]()
}

func (a *PlayerAgent) Increment() int {
	return a.increment
}

func (a *PlayerAgent) Timer() *Timer {
	return a.timer
}

func (a *PlayerAgent) IncreaseRemainingTime() {
	a.timer.AddRemainingSecs(float64(a.increment))
}

// DecreaseRemainingTime takes one second off the clock.
func (a *PlayerAgent) DecreaseRemainingTime() error {
	if a.timer.IsEnded() {
		return newViolation(a, ErrTimeout)
	}
	a.timer.AddRemainingSecs(-1)
	return nil
}

// RemainingTime is the clock in whole seconds, 0 once it has run out.
func (a *PlayerAgent) RemainingTime() int {
	if a.timer.IsEnded() {
		return 0
	}
	return int(a.timer.RemainingSecs())
}

func (a *PlayerAgent) Tick() error {
	return a.timer.Tick()
}

func (a *PlayerAgent) IsEnded() bool {
	return a.timer.IsEnded()
}

func (a *PlayerAgent) owns(id PieceID) bool {
	return Contains(a.roster, id)
}

func (a *PlayerAgent) removePiece(id PieceID) {
	a.roster = RemoveFromSlice(a.roster, id)
}

func (a *PlayerAgent) addPiece(id PieceID) {
	a.roster = append(a.roster, id)
}
