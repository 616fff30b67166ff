package game

const (
	warningPhases      = 6
	warningPhaseLength = 0.5
)

// KingProtectionWarning flashes the checked king. Phases are counted from 1
// and the red light is on during odd phases.
type KingProtectionWarning struct {
	timer *Timer
	phase int
}

func NewKingProtectionWarning() *KingProtectionWarning {
	w := &KingProtectionWarning{}
	w.next()
	return w
}

func (w *KingProtectionWarning) next() {
	w.timer = NewTimer(warningPhaseLength)
	w.phase++
}

func (w *KingProtectionWarning) Phase() int {
	return w.phase
}

func (w *KingProtectionWarning) IsRedLight() bool {
	return w.phase%2 == 1
}

func (w *KingProtectionWarning) IsEnded() bool {
	return w.phase > warningPhases
}

func (w *KingProtectionWarning) Tick() error {
	if w.IsEnded() {
		return ErrTimerEnded
	}
	if w.timer.IsEnded() {
		w.next()
		return nil
	}
	return w.timer.Tick()
}
