package board

import "math/bits"

const tileSetWords = (Width*Width + 63) / 64

// TileSet is a bitboard over the Width×Width tiles, indexed by Coord.Index.
type TileSet [tileSetWords]uint64

func SingleTileSet(coords ...Coord) TileSet {
	result := TileSet{}
	for _, c := range coords {
		result.Add(c)
	}
	return result
}

func (s *TileSet) Add(c Coord) {
	i := c.Index()
	s[i/64] |= 1 << (i % 64)
}

func (s *TileSet) Remove(c Coord) {
	i := c.Index()
	s[i/64] &^= 1 << (i % 64)
}

func (s TileSet) Has(c Coord) bool {
	if !c.InBounds() {
		return false
	}
	i := c.Index()
	return s[i/64]&(1<<(i%64)) != 0
}

func (s TileSet) Union(o TileSet) TileSet {
	for i := range s {
		s[i] |= o[i]
	}
	return s
}

func (s TileSet) Len() int {
	n := 0
	for _, w := range s {
		n += bits.OnesCount64(w)
	}
	return n
}

func (s TileSet) IsEmpty() bool {
	return s == TileSet{}
}

// Coords lists members in index order (row by row).
func (s TileSet) Coords() []Coord {
	result := make([]Coord, 0, s.Len())
	for w, word := range s {
		for word != 0 {
			bit := bits.TrailingZeros64(word)
			result = append(result, CoordFromIndex(w*64+bit))
			word &= word - 1
		}
	}
	return result
}
