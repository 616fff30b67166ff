package game

import (
	"math/rand"

	. "github.com/cricklet/xxlchess/internal/board"
	. "github.com/cricklet/xxlchess/internal/helpers"
)

// BotStrategy picks one of the candidate movements. Candidates are already
// filtered for king safety.
type BotStrategy interface {
	Choose(candidates []Movement) Optional[Movement]
}

type RandomStrategy struct {
	rng *rand.Rand
}

var _ BotStrategy = (*RandomStrategy)(nil)

func NewRandomStrategy(source rand.Source) *RandomStrategy {
	return &RandomStrategy{rng: rand.New(source)}
}

func (s *RandomStrategy) Choose(candidates []Movement) Optional[Movement] {
	if len(candidates) == 0 {
		return Empty[Movement]()
	}
	return Some(candidates[s.rng.Intn(len(candidates))])
}

// FirstAvailableStrategy always plays the first candidate.
type FirstAvailableStrategy struct{}

var _ BotStrategy = FirstAvailableStrategy{}

func (FirstAvailableStrategy) Choose(candidates []Movement) Optional[Movement] {
	if len(candidates) == 0 {
		return Empty[Movement]()
	}
	return Some(candidates[0])
}
