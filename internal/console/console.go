package console

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	. "github.com/cricklet/xxlchess/internal/board"
	"github.com/cricklet/xxlchess/internal/display"
	"github.com/cricklet/xxlchess/internal/game"
)

var ErrQuit = errors.New("quit")

// Frames are ticked in bulk after a move so the computer replies before the
// prompt comes back. One minute of animation and thinking is plenty.
const maxAdvanceFrames = 60 * game.FPS

var Help = []string{
	"s x y   select the piece at (x, y)",
	"m x y   move the selection to (x, y)",
	"t n     advance n frames",
	"r       resign",
	"p       print the board",
	"q       quit",
}

type Console struct {
	Game     *game.Game
	Renderer *display.Renderer
}

func New(g *game.Game, r *display.Renderer) *Console {
	return &Console{Game: g, Renderer: r}
}

func parseCoord(fields []string) (Coord, error) {
	if len(fields) != 2 {
		return Coord{}, fmt.Errorf("expected x and y, got %v", strings.Join(fields, " "))
	}
	x, err := strconv.Atoi(fields[0])
	if err != nil {
		return Coord{}, fmt.Errorf("bad x %q", fields[0])
	}
	y, err := strconv.Atoi(fields[1])
	if err != nil {
		return Coord{}, fmt.Errorf("bad y %q", fields[1])
	}
	c := Coord{X: x, Y: y}
	if !c.InBounds() {
		return Coord{}, fmt.Errorf("%v is off the board", c)
	}
	return c, nil
}

func (c *Console) print() []string {
	return []string{strings.TrimRight(c.Renderer.Game(c.Game), "\n")}
}

// HandleInput runs one command line and returns what should be shown.
// Rejected moves are reported in the output; only ErrQuit is returned as an
// error.
func (c *Console) HandleInput(input string) ([]string, error) {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return nil, nil
	}
	args := fields[1:]

	switch fields[0] {
	case "q", "quit":
		return nil, ErrQuit
	case "h", "help":
		return Help, nil
	case "p":
		return c.print(), nil
	case "r":
		c.Game.Resign(c.Game.Human())
		return c.print(), nil
	case "t":
		n := 1
		if len(args) > 0 {
			parsed, err := strconv.Atoi(args[0])
			if err != nil || parsed < 0 {
				return []string{fmt.Sprintf("bad frame count %q", args[0])}, nil
			}
			n = parsed
		}
		for i := 0; i < n && !c.Game.Report().HasValue(); i++ {
			c.Game.Tick()
		}
		return c.print(), nil
	case "s":
		at, err := parseCoord(args)
		if err != nil {
			return []string{err.Error()}, nil
		}
		if err := c.Game.SelectPiece(at); err != nil {
			return append([]string{fmt.Sprintf("rejected: %v", err)}, c.print()...), nil
		}
		return c.print(), nil
	case "m":
		at, err := parseCoord(args)
		if err != nil {
			return []string{err.Error()}, nil
		}
		if err := c.Game.AttemptMove(at); err != nil {
			return append([]string{fmt.Sprintf("rejected: %v", err)}, c.print()...), nil
		}
		c.Game.AdvanceToPlayer(maxAdvanceFrames)
		return c.print(), nil
	}
	return []string{fmt.Sprintf("unknown command %q, try h", fields[0])}, nil
}
