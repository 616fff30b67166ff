package board

import (
	"fmt"
	"math"
	"unicode"

	. "github.com/cricklet/xxlchess/internal/helpers"
)

const Width = 14

type Color uint8

const (
	White Color = iota
	Black
)

var _colorStrings = [2]string{
	"white", "black",
}

func (c Color) String() string {
	return _colorStrings[c]
}

func (c Color) Other() Color {
	return 1 - c
}

func ColorFromString(s string) (Color, bool) {
	switch s {
	case "white":
		return White, true
	case "black":
		return Black, true
	}
	return White, false
}

type Kind uint8

const (
	Pawn Kind = iota
	Rook
	Knight
	Bishop
	Archbishop
	Camel
	General
	Amazon
	King
	Chancellor
	Queen
	NumKinds
)

var _kindSymbols = [NumKinds]rune{
	'p', 'r', 'n', 'b', 'h', 'c', 'g', 'a', 'k', 'e', 'q',
}

var _kindNames = [NumKinds]string{
	"pawn", "rook", "knight", "bishop", "archbishop", "camel",
	"knight-king", "amazon", "king", "chancellor", "queen",
}

var _kindValues = [NumKinds]float64{
	1.0, 5.25, 2.0, 3.625, 7.5, 2.0, 5.0, 12.0, math.Inf(1), 8.5, 9.5,
}

func (k Kind) String() string {
	return _kindNames[k]
}

// Value is the material value of the kind; the king is priceless.
func (k Kind) Value() float64 {
	return _kindValues[k]
}

// Symbol is the layout letter: lowercase for white, uppercase for black.
func (k Kind) Symbol(c Color) rune {
	if c == Black {
		return unicode.ToUpper(_kindSymbols[k])
	}
	return _kindSymbols[k]
}

func KindFromSymbol(r rune) (Kind, Color, bool) {
	color := White
	if unicode.IsUpper(r) {
		color = Black
	}
	lower := unicode.ToLower(r)
	for k, s := range _kindSymbols {
		if s == lower {
			return Kind(k), color, true
		}
	}
	return Pawn, White, false
}

type Coord struct {
	X int
	Y int
}

func (c Coord) InBounds() bool {
	return c.X >= 0 && c.Y >= 0 && c.X < Width && c.Y < Width
}

func (c Coord) Index() int {
	return c.Y*Width + c.X
}

func CoordFromIndex(i int) Coord {
	return Coord{X: i % Width, Y: i / Width}
}

func (c Coord) Add(o Coord) Coord {
	return Coord{c.X + o.X, c.Y + o.Y}
}

func (c Coord) String() string {
	return fmt.Sprintf("(%v,%v)", c.X, c.Y)
}

type PieceID int

type Piece struct {
	ID    PieceID
	Kind  Kind
	Color Color

	tile    Optional[Coord]
	moved   bool
	targets TileSet
}

func (p *Piece) Tile() Optional[Coord] {
	return p.tile
}

func (p *Piece) IsCaptured() bool {
	return p.tile.IsEmpty()
}

// Coord panics for a captured piece; callers check IsCaptured first.
func (p *Piece) Coord() Coord {
	if p.tile.IsEmpty() {
		panic(fmt.Sprintf("%v %v #%v was already captured", p.Color, p.Kind, p.ID))
	}
	return p.tile.Value()
}

func (p *Piece) HasMoved() bool {
	return p.moved
}

func (p *Piece) Symbol() rune {
	return p.Kind.Symbol(p.Color)
}

func (p *Piece) String() string {
	if p.IsCaptured() {
		return fmt.Sprintf("%c#%v(captured)", p.Symbol(), p.ID)
	}
	return fmt.Sprintf("%c#%v%v", p.Symbol(), p.ID, p.tile.Value())
}

type Tile struct {
	Coord
	Occupant Optional[PieceID]
}

func (t Tile) IsEmpty() bool {
	return t.Occupant.IsEmpty()
}
