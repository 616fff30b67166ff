package game

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidMove  = errors.New("invalid piece movement")
	ErrKingInDanger = errors.New("the king is in danger and must be protected")
	ErrKingDignity  = errors.New("you must not actually capture the opponent's king")
	ErrTimeout      = errors.New("time expired")
)

// RuleViolation rejects an attempt by a player. Rejections never change the
// game state.
type RuleViolation struct {
	Violator *PlayerAgent
	cause    error
}

var _ error = (*RuleViolation)(nil)

func newViolation(violator *PlayerAgent, cause error) *RuleViolation {
	return &RuleViolation{Violator: violator, cause: cause}
}

func (e *RuleViolation) Error() string {
	return fmt.Sprintf("%v: %v", e.Violator, e.cause)
}

func (e *RuleViolation) Unwrap() error {
	return e.cause
}
