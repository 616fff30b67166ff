package board

var knightOffsets = []Coord{
	{-1, -2}, {1, -2}, {-1, 2}, {1, 2},
	{-2, -1}, {2, -1}, {-2, 1}, {2, 1},
}

var camelOffsets = []Coord{
	{3, 1}, {3, -1}, {-3, 1}, {-3, -1},
	{1, 3}, {-1, 3}, {1, -3}, {-1, -3},
}

var kingOffsets = []Coord{
	{-1, -1}, {-1, 1}, {1, -1}, {1, 1},
	{-1, 0}, {1, 0}, {0, -1}, {0, 1},
}

var rookRays = []Coord{{0, 1}, {0, -1}, {1, 0}, {-1, 0}}
var bishopRays = []Coord{{1, 1}, {1, -1}, {-1, -1}, {-1, 1}}

// pawns may advance two rows when they haven't moved and stand on one of these
const (
	pawnHomeRowNear = 1
	pawnHomeRowFar  = Width - 2
)

func (b *Board) slide(from Coord, rays []Coord) TileSet {
	result := TileSet{}
	for _, ray := range rays {
		result = result.Union(b.LinearMove(from, ray.X, ray.Y))
	}
	return result
}

func rookTargets(b *Board, p *Piece) TileSet {
	return b.slide(p.Coord(), rookRays)
}

func bishopTargets(b *Board, p *Piece) TileSet {
	return b.slide(p.Coord(), bishopRays)
}

func knightTargets(b *Board, p *Piece) TileSet {
	return b.JumpingMove(p.Coord(), knightOffsets)
}

func camelTargets(b *Board, p *Piece) TileSet {
	return b.JumpingMove(p.Coord(), camelOffsets)
}

func kingTargets(b *Board, p *Piece) TileSet {
	return b.JumpingMove(p.Coord(), kingOffsets)
}

func queenTargets(b *Board, p *Piece) TileSet {
	return bishopTargets(b, p).Union(rookTargets(b, p))
}

func generalTargets(b *Board, p *Piece) TileSet {
	return knightTargets(b, p).Union(kingTargets(b, p))
}

func amazonTargets(b *Board, p *Piece) TileSet {
	return knightTargets(b, p).Union(bishopTargets(b, p)).Union(rookTargets(b, p))
}

func archbishopTargets(b *Board, p *Piece) TileSet {
	return bishopTargets(b, p).Union(knightTargets(b, p))
}

func chancellorTargets(b *Board, p *Piece) TileSet {
	return knightTargets(b, p).Union(rookTargets(b, p))
}

func pawnTargets(b *Board, p *Piece) TileSet {
	return b.pawnAttackRange(p).Union(b.pawnForwardRange(p))
}

var _targetFuncs = [NumKinds]func(*Board, *Piece) TileSet{
	Pawn:       pawnTargets,
	Rook:       rookTargets,
	Knight:     knightTargets,
	Bishop:     bishopTargets,
	Archbishop: archbishopTargets,
	Camel:      camelTargets,
	General:    generalTargets,
	Amazon:     amazonTargets,
	King:       kingTargets,
	Chancellor: chancellorTargets,
	Queen:      queenTargets,
}

func (b *Board) computeTargets(p *Piece) TileSet {
	return _targetFuncs[p.Kind](b, p)
}

// AttackRange is the set of tiles a piece threatens. It equals Targets for
// everything but pawns, which only threaten their forward diagonals.
func (b *Board) AttackRange(id PieceID) TileSet {
	p := b.Piece(id)
	if p.Kind == Pawn {
		return b.pawnAttackRange(p)
	}
	return b.Targets(id)
}

func (b *Board) pawnAttackRange(p *Piece) TileSet {
	forward := b.Forward(p.Color)
	diagonals := b.JumpingMove(p.Coord(), []Coord{{-1, forward}, {1, forward}})
	result := TileSet{}
	for _, c := range diagonals.Coords() {
		if b.Occupant(c).HasValue() {
			result.Add(c)
		}
	}
	return result
}

func (b *Board) pawnForwardRange(p *Piece) TileSet {
	from := p.Coord()
	forward := b.Forward(p.Color)
	result := TileSet{}

	one := from.Add(Coord{0, forward})
	if !one.InBounds() || b.Occupant(one).HasValue() {
		return result
	}
	result.Add(one)

	if p.moved || (from.Y != pawnHomeRowNear && from.Y != pawnHomeRowFar) {
		return result
	}
	two := one.Add(Coord{0, forward})
	if two.InBounds() && b.Occupant(two).IsEmpty() {
		result.Add(two)
	}
	return result
}
