package game

import "fmt"

type EndReason uint8

const (
	ComputerTimeout EndReason = iota
	ComputerCheckmated
	Draw
	PlayerTimeout
	PlayerResigned
	PlayerCheckmated
	ComputerResigned
)

var _endReasonStrings = []string{
	"computer timeout",
	"computer checkmated",
	"draw",
	"player timeout",
	"player resigned",
	"player checkmated",
	"computer resigned",
}

func (r EndReason) String() string {
	return _endReasonStrings[r]
}

// HumanWins reports whether the human is the winner for this reason.
func (r EndReason) HumanWins() bool {
	return r == ComputerTimeout || r == ComputerCheckmated || r == ComputerResigned
}

// Text is the end-of-game banner.
func (r EndReason) Text() string {
	switch r {
	case ComputerCheckmated:
		return "You won by checkmate!"
	case ComputerTimeout:
		return "You won on time!"
	case ComputerResigned:
		return "You won by resignation!"
	case PlayerCheckmated:
		return "You lost by checkmate!"
	case PlayerTimeout:
		return "You lost on time!"
	case PlayerResigned:
		return "You lost by resignation!"
	}
	return "Stalemate! It's a draw."
}

// GameReport is the terminal summary. Winner and Loser are nil on a draw.
type GameReport struct {
	Winner *PlayerAgent
	Loser  *PlayerAgent
	Reason EndReason
	Plies  int
}

func newReport(human, bot *PlayerAgent, reason EndReason, plies int) GameReport {
	report := GameReport{Reason: reason, Plies: plies}
	if reason == Draw {
		return report
	}
	if reason.HumanWins() {
		report.Winner, report.Loser = human, bot
	} else {
		report.Winner, report.Loser = bot, human
	}
	return report
}

func (r GameReport) String() string {
	if r.Winner == nil {
		return fmt.Sprintf("%v after %v plies", r.Reason, r.Plies)
	}
	return fmt.Sprintf("%v wins, %v after %v plies", r.Winner, r.Reason, r.Plies)
}
