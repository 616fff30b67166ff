package game

import (
	"errors"
	"fmt"
)

// FPS is the number of frames per second of game time.
const FPS = 60

var ErrTimerEnded = errors.New("timer already ended")

// Timer counts remaining game time in frames.
type Timer struct {
	remainingFrames int
}

func NewTimer(seconds float64) *Timer {
	return &Timer{remainingFrames: int(seconds * FPS)}
}

func (t *Timer) RemainingSecs() float64 {
	return float64(t.remainingFrames) / FPS
}

func (t *Timer) RemainingFrames() int {
	return t.remainingFrames
}

// AddRemainingSecs adjusts the clock; negative values take time away.
func (t *Timer) AddRemainingSecs(seconds float64) {
	t.remainingFrames += int(seconds * FPS)
}

func (t *Timer) Tick() error {
	if t.IsEnded() {
		return ErrTimerEnded
	}
	t.remainingFrames--
	return nil
}

func (t *Timer) IsEnded() bool {
	return t.remainingFrames <= 0
}

// FormatSeconds renders a clock reading as m:ss.
func FormatSeconds(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
