package game

type GameStatus uint8

const (
	Ended GameStatus = iota
	RenderingWarning
	RenderingAnimation
	PlayerTurn
	ComputerTurn
)

var _statusStrings = []string{
	"ended", "rendering warning", "rendering animation", "player turn", "computer turn",
}

func (s GameStatus) String() string {
	return _statusStrings[s]
}
