package display

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"

	. "github.com/cricklet/xxlchess/internal/board"
	"github.com/cricklet/xxlchess/internal/game"
	. "github.com/cricklet/xxlchess/internal/helpers"
)

// IsTerminal reports whether f is attached to a terminal, i.e. whether
// colours will show.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Highlights are the tiles drawn with a background colour.
type Highlights struct {
	Targets  TileSet
	Selected Optional[Coord]
	LastMove Optional[Movement]
	Checked  Optional[Coord]
}

type Renderer struct {
	white    *color.Color
	black    *color.Color
	target   *color.Color
	selected *color.Color
	lastMove *color.Color
	checked  *color.Color
	dim      *color.Color
}

func NewRenderer(enableColor bool) *Renderer {
	r := &Renderer{
		white:    color.New(color.FgHiWhite, color.Bold),
		black:    color.New(color.FgHiMagenta, color.Bold),
		target:   color.New(color.BgGreen),
		selected: color.New(color.BgYellow),
		lastMove: color.New(color.BgBlue),
		checked:  color.New(color.BgRed),
		dim:      color.New(color.FgHiBlack),
	}
	for _, c := range []*color.Color{r.white, r.black, r.target, r.selected, r.lastMove, r.checked, r.dim} {
		if enableColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return r
}

func (r *Renderer) background(c Coord, h Highlights) *color.Color {
	switch {
	case h.Checked.HasValue() && h.Checked.Value() == c:
		return r.checked
	case h.Selected.HasValue() && h.Selected.Value() == c:
		return r.selected
	case h.Targets.Has(c):
		return r.target
	case h.LastMove.HasValue() && (h.LastMove.Value().From == c || h.LastMove.Value().To == c):
		return r.lastMove
	}
	return nil
}

// Board draws the grid with x labels across the top and y labels down the
// side. Empty tiles are dots; targets on empty tiles are '*'.
func (r *Renderer) Board(b *Board, h Highlights) string {
	sb := strings.Builder{}
	sb.WriteString("   ")
	for x := 0; x < Width; x++ {
		sb.WriteString(r.dim.Sprintf("%3d", x))
	}
	sb.WriteString("\n")

	for y := 0; y < Width; y++ {
		sb.WriteString(r.dim.Sprintf("%3d", y))
		for x := 0; x < Width; x++ {
			c := Coord{X: x, Y: y}
			cell := "  ."
			occupant := b.Occupant(c)
			if occupant.HasValue() {
				p := b.Piece(occupant.Value())
				pieceColor := r.white
				if p.Color == Black {
					pieceColor = r.black
				}
				cell = "  " + pieceColor.Sprint(string(p.Symbol()))
			} else if h.Targets.Has(c) {
				cell = "  *"
			}
			if bg := r.background(c, h); bg != nil {
				cell = bg.Sprint(cell)
			}
			sb.WriteString(cell)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// GameHighlights collects what the human should see highlighted right now.
func GameHighlights(g *game.Game) Highlights {
	h := Highlights{
		Targets:  g.TargetTiles(),
		Selected: g.Human().Selection(),
		LastMove: g.LastMove(),
	}
	if incident := g.InCheck(); incident.HasValue() {
		warning := g.Warning()
		if warning == nil || warning.IsRedLight() {
			h.Checked = Some(g.Board().Piece(incident.Value().King).Coord())
		}
	}
	return h
}

// Game draws the board followed by the clocks and the status line.
func (r *Renderer) Game(g *game.Game) string {
	sb := strings.Builder{}
	sb.WriteString(r.Board(g.Board(), GameHighlights(g)))
	sb.WriteString(fmt.Sprintf("%v %v   %v %v\n",
		g.Human(), game.FormatSeconds(g.Human().RemainingTime()),
		g.Bot(), game.FormatSeconds(g.Bot().RemainingTime())))
	sb.WriteString(r.Status(g))
	sb.WriteString("\n")
	return sb.String()
}

func (r *Renderer) Status(g *game.Game) string {
	if report := g.Report(); report.HasValue() {
		return report.Value().Reason.Text()
	}
	status := g.Status().String()
	if g.InCheck().HasValue() {
		status += ", " + r.checked.Sprint(fmt.Sprintf("%v in check", g.Current()))
	}
	return status
}
