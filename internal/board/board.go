package board

import (
	"strings"

	. "github.com/cricklet/xxlchess/internal/helpers"
)

// Board owns the tiles and the arena of every piece that was ever placed.
// Tiles hold piece handles and pieces hold their coordinate; both sides of
// the link are only written together, by place and lift.
type Board struct {
	tiles  [Width * Width]Optional[PieceID]
	pieces []Piece

	// pawns of this colour advance towards row 0, the others towards row Width-1
	upward Color

	// set by every mutation, cleared by Refresh
	dirty bool
}

func NewBoard(upward Color) *Board {
	return &Board{
		pieces: []Piece{},
		upward: upward,
	}
}

// Clone copies tile occupancy and piece state into an independent board.
// Handles are preserved so a piece can be looked up in the copy by its
// original PieceID.
func (b *Board) Clone() *Board {
	cloned := &Board{
		tiles:  b.tiles,
		pieces: make([]Piece, len(b.pieces)),
		upward: b.upward,
		dirty:  b.dirty,
	}
	copy(cloned.pieces, b.pieces)
	return cloned
}

func (b *Board) Upward() Color {
	return b.upward
}

// Forward is the row delta of a pawn step for the colour.
func (b *Board) Forward(c Color) int {
	if c == b.upward {
		return -1
	}
	return 1
}

func (b *Board) Tile(x, y int) Optional[Tile] {
	c := Coord{x, y}
	if !c.InBounds() {
		return Empty[Tile]()
	}
	return Some(Tile{Coord: c, Occupant: b.tiles[c.Index()]})
}

func (b *Board) PieceAt(x, y int) Optional[PieceID] {
	return b.Occupant(Coord{x, y})
}

func (b *Board) Occupant(c Coord) Optional[PieceID] {
	if !c.InBounds() {
		return Empty[PieceID]()
	}
	return b.tiles[c.Index()]
}

// Piece returns the arena entry for id. The pointer is only valid until the
// next AddPiece.
func (b *Board) Piece(id PieceID) *Piece {
	return &b.pieces[id]
}

func (b *Board) NumPieces() int {
	return len(b.pieces)
}

// Pieces lists the handles of pieces still on the board, in tile index order.
func (b *Board) Pieces() []PieceID {
	result := []PieceID{}
	for _, t := range b.tiles {
		if t.HasValue() {
			result = append(result, t.Value())
		}
	}
	return result
}

func (b *Board) PiecesOf(c Color) []PieceID {
	return FilterSlice(b.Pieces(), func(id PieceID) bool {
		return b.pieces[id].Color == c
	})
}

func (b *Board) Occupied() int {
	return len(b.Pieces())
}

func (b *Board) AddPiece(kind Kind, color Color, at Coord) (PieceID, Error) {
	if !at.InBounds() {
		return 0, Errorf("%v is off the board", at)
	}
	if occupant := b.Occupant(at); occupant.HasValue() {
		return 0, Errorf("%v is already occupied by %v", at, b.Piece(occupant.Value()))
	}
	id := PieceID(len(b.pieces))
	b.pieces = append(b.pieces, Piece{ID: id, Kind: kind, Color: color})
	b.place(id, at)
	return id, NilError
}

// Promote replaces the piece standing on at with a fresh piece of kind. The
// old piece becomes captured.
func (b *Board) Promote(at Coord, kind Kind) PieceID {
	old := b.lift(at)
	if old.IsEmpty() {
		panic("promotion on empty tile " + at.String())
	}
	prev := b.pieces[old.Value()]
	id := PieceID(len(b.pieces))
	b.pieces = append(b.pieces, Piece{ID: id, Kind: kind, Color: prev.Color, moved: prev.moved})
	b.place(id, at)
	return id
}

func (b *Board) place(id PieceID, at Coord) {
	b.tiles[at.Index()] = Some(id)
	b.pieces[id].tile = Some(at)
	b.dirty = true
}

func (b *Board) lift(at Coord) Optional[PieceID] {
	occupant := b.tiles[at.Index()]
	if occupant.HasValue() {
		b.tiles[at.Index()] = Empty[PieceID]()
		b.pieces[occupant.Value()].tile = Empty[Coord]()
		b.dirty = true
	}
	return occupant
}

// Targets is the reachable set of a piece. A stale cache is recomputed for
// every piece before it is read.
func (b *Board) Targets(id PieceID) TileSet {
	if b.dirty {
		b.Refresh()
	}
	return b.pieces[id].targets
}

func (b *Board) Refresh() {
	for i := range b.pieces {
		p := &b.pieces[i]
		if p.IsCaptured() {
			p.targets = TileSet{}
			continue
		}
		p.targets = b.computeTargets(p)
	}
	b.dirty = false
}

func (b *Board) colorAt(c Coord) Optional[Color] {
	occupant := b.Occupant(c)
	if occupant.IsEmpty() {
		return Empty[Color]()
	}
	return Some(b.pieces[occupant.Value()].Color)
}

// JumpingMove collects source+offset for every offset that lands on the board
// and not on a piece of the source piece's colour.
func (b *Board) JumpingMove(source Coord, offsets []Coord) TileSet {
	result := TileSet{}
	color := b.colorAt(source)
	if color.IsEmpty() {
		return result
	}
	for _, offset := range offsets {
		target := source.Add(offset)
		if !target.InBounds() {
			continue
		}
		if c := b.colorAt(target); c.HasValue() && c.Value() == color.Value() {
			continue
		}
		result.Add(target)
	}
	return result
}

// LinearMove walks from source in steps of (dx, dy). The walk stops at the
// edge or the first occupied tile, which is included only for an enemy.
func (b *Board) LinearMove(source Coord, dx, dy int) TileSet {
	result := TileSet{}
	color := b.colorAt(source)
	if color.IsEmpty() {
		return result
	}
	step := Coord{dx, dy}
	for target := source.Add(step); target.InBounds(); target = target.Add(step) {
		if c := b.colorAt(target); c.HasValue() {
			if c.Value() != color.Value() {
				result.Add(target)
			}
			break
		}
		result.Add(target)
	}
	return result
}

// String renders the layout grid, '.' for empty tiles.
func (b *Board) String() string {
	sb := strings.Builder{}
	for y := 0; y < Width; y++ {
		for x := 0; x < Width; x++ {
			occupant := b.PieceAt(x, y)
			if occupant.HasValue() {
				sb.WriteRune(b.pieces[occupant.Value()].Symbol())
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
