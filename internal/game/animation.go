package game

import (
	"math"

	. "github.com/cricklet/xxlchess/internal/board"
)

// CellSize is the edge of one tile in pixels. Movement speed is configured in
// pixels per frame.
const CellSize = 48

// Animation slides one piece from its source to its destination over a
// fixed number of frames.
type Animation struct {
	Movement Movement

	frame  int
	frames int
}

// NewAnimation moves at speed pixels per frame but never takes longer than
// maxSeconds.
func NewAnimation(m Movement, speed int, maxSeconds int) *Animation {
	dx := float64(m.To.X - m.From.X)
	dy := float64(m.To.Y - m.From.Y)
	distance := math.Hypot(dx, dy) * CellSize

	frames := maxSeconds * FPS
	if speed > 0 {
		frames = min(frames, int(math.Ceil(distance/float64(speed))))
	}
	return &Animation{Movement: m, frames: max(frames, 1)}
}

func (a *Animation) Frames() int {
	return a.frames
}

func (a *Animation) IsEnded() bool {
	return a.frame >= a.frames
}

func (a *Animation) Tick() error {
	if a.IsEnded() {
		return ErrTimerEnded
	}
	a.frame++
	return nil
}

// Position is the piece's location in tile units.
func (a *Animation) Position() (float64, float64) {
	progress := float64(a.frame) / float64(a.frames)
	from, to := a.Movement.From, a.Movement.To
	return float64(from.X) + float64(to.X-from.X)*progress,
		float64(from.Y) + float64(to.Y-from.Y)*progress
}
