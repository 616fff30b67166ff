package game

import (
	"math/rand"
	"time"

	. "github.com/cricklet/xxlchess/internal/board"
	"github.com/cricklet/xxlchess/internal/config"
	. "github.com/cricklet/xxlchess/internal/helpers"
	"github.com/cricklet/xxlchess/internal/rules"
)

// pawns reaching the middle row are promoted, whichever way they travel
const promotionRow = Width / 2

type Options struct {
	PlayerColor Color
	Player      config.TimeControl
	CPU         config.TimeControl

	PieceMovementSpeed int
	MaxMovementTime    int

	Strategy Optional[BotStrategy]
	Logger   Optional[Logger]
}

func OptionsFromConfig(c config.Config) Options {
	seed := time.Now().UnixNano()
	if c.Seed != nil {
		seed = *c.Seed
	}
	return Options{
		PlayerColor:        c.PlayerColor(),
		Player:             c.TimeControls.Player,
		CPU:                c.TimeControls.CPU,
		PieceMovementSpeed: c.PieceMovementSpeed,
		MaxMovementTime:    c.MaxMovementTime,
		Strategy:           Some[BotStrategy](NewRandomStrategy(rand.NewSource(seed))),
	}
}

type Game struct {
	board   *Board
	human   *PlayerAgent
	bot     *PlayerAgent
	current *PlayerAgent

	inCheck       Optional[rules.InCheckIncident]
	animation     *Animation
	rookAnimation *Animation
	warning       *KingProtectionWarning
	report        Optional[GameReport]
	lastMove      Optional[Movement]

	pieceMovementSpeed int
	maxMovementTime    int

	// safe movements per colour, valid until the next committed ply
	safe  map[Color][]Movement
	plies int

	logger Logger
}

// New starts a game on b. The board's upward colour must be the human's.
func New(b *Board, opts Options) (*Game, Error) {
	if b.Upward() != opts.PlayerColor {
		return nil, Errorf("board pawns advance upwards for %v but the player is %v", b.Upward(), opts.PlayerColor)
	}

	g := &Game{
		board:              b,
		human:              newPlayerAgent(opts.PlayerColor, Human, opts.Player),
		bot:                newPlayerAgent(opts.PlayerColor.Other(), Computer, opts.CPU),
		pieceMovementSpeed: opts.PieceMovementSpeed,
		maxMovementTime:    opts.MaxMovementTime,
		safe:               map[Color][]Movement{},
	}
	if opts.Logger.HasValue() {
		g.logger = opts.Logger.Value()
	} else {
		g.logger = &SilentLogger
	}
	if opts.Strategy.HasValue() {
		g.bot.strategy = opts.Strategy.Value()
	} else {
		g.bot.strategy = NewRandomStrategy(rand.NewSource(time.Now().UnixNano()))
	}

	g.human.opponent = g.bot
	g.bot.opponent = g.human

	for _, agent := range []*PlayerAgent{g.human, g.bot} {
		king := b.King(agent.Color)
		if king.IsEmpty() {
			return nil, Errorf("no %v king on the board", agent.Color)
		}
		agent.king = king.Value()
		agent.roster = b.PiecesOf(agent.Color)
	}

	if g.human.Color == White {
		g.current = g.human
	} else {
		g.current = g.bot
	}
	g.inCheck = rules.DetectInCheck(b, g.current.king)

	g.logger.Printf("new game: %v against %v, %v to move", g.human, g.bot, g.current)
	return g, NilError
}

func NewFromConfig(c config.Config, logger Optional[Logger]) (*Game, Error) {
	b, err := c.LoadBoard()
	if !IsNil(err) {
		return nil, err
	}
	opts := OptionsFromConfig(c)
	opts.Logger = logger
	return New(b, opts)
}

func (g *Game) Board() *Board {
	return g.board
}

func (g *Game) Human() *PlayerAgent {
	return g.human
}

func (g *Game) Bot() *PlayerAgent {
	return g.bot
}

func (g *Game) Current() *PlayerAgent {
	return g.current
}

func (g *Game) InCheck() Optional[rules.InCheckIncident] {
	return g.inCheck
}

func (g *Game) Warning() *KingProtectionWarning {
	return g.warning
}

func (g *Game) Animation() *Animation {
	return g.animation
}

func (g *Game) RookAnimation() *Animation {
	return g.rookAnimation
}

func (g *Game) Report() Optional[GameReport] {
	return g.report
}

// LastMove is the most recent committed ply of either side.
func (g *Game) LastMove() Optional[Movement] {
	return g.lastMove
}

func (g *Game) Plies() int {
	return g.plies
}

// SetStrategy replaces the bot's move selection.
func (g *Game) SetStrategy(s BotStrategy) {
	g.bot.strategy = s
}

func (g *Game) SetLogger(l Logger) {
	g.logger = l
}

// Owner is the agent playing the piece's colour.
func (g *Game) Owner(id PieceID) *PlayerAgent {
	if g.board.Piece(id).Color == g.human.Color {
		return g.human
	}
	return g.bot
}

func (g *Game) IsEnded() bool {
	return g.human.IsEnded() || g.bot.IsEnded()
}

func (g *Game) Status() GameStatus {
	if g.report.HasValue() {
		return Ended
	}
	if g.animation != nil || g.rookAnimation != nil {
		return RenderingAnimation
	}
	if g.warning != nil {
		return RenderingWarning
	}
	if g.current == g.human {
		return PlayerTurn
	}
	return ComputerTurn
}

// SafeMovements lists every movement of the agent that leaves its king
// unattacked. While in check these are exactly the moves that resolve it.
func (g *Game) SafeMovements(agent *PlayerAgent) []Movement {
	if moves, ok := g.safe[agent.Color]; ok {
		return moves
	}

	var moves []Movement
	incident := rules.DetectInCheck(g.board, agent.king)
	if incident.HasValue() {
		moves = rules.SolveIncident(g.board, agent.roster, incident.Value())
	} else {
		moves = rules.SafeMovements(g.board, rules.AllMovements(g.board, agent.roster, false), agent.king)
	}
	g.safe[agent.Color] = moves
	return moves
}

// Tick advances the game by one frame.
func (g *Game) Tick() {
	if g.report.HasValue() {
		return
	}
	if g.IsEnded() {
		if g.human.IsEnded() {
			g.end(PlayerTimeout)
		} else {
			g.end(ComputerTimeout)
		}
		return
	}

	g.inCheck = rules.DetectInCheck(g.board, g.current.king)

	switch g.Status() {
	case RenderingWarning:
		if g.warning.IsEnded() {
			g.warning = nil
		} else {
			g.warning.Tick()
		}
	case RenderingAnimation:
		g.animation = tickAnimation(g.animation)
		g.rookAnimation = tickAnimation(g.rookAnimation)
	case PlayerTurn:
		g.CheckmateInspection()
		if g.report.HasValue() {
			return
		}
		if len(g.SafeMovements(g.human)) == 0 {
			g.end(Draw)
			return
		}
		g.human.Tick()
	case ComputerTurn:
		g.computerTurn()
	}
}

// AdvanceToPlayer ticks through animations, warnings and the computer's turn
// until the human may act or the game ends. It gives up after maxFrames and
// returns the number of frames ticked.
func (g *Game) AdvanceToPlayer(maxFrames int) int {
	frames := 0
	for frames < maxFrames {
		status := g.Status()
		if status == Ended || status == PlayerTurn {
			break
		}
		g.Tick()
		frames++
	}
	return frames
}

func tickAnimation(a *Animation) *Animation {
	if a == nil || a.IsEnded() {
		return nil
	}
	a.Tick()
	return a
}

// CheckmateInspection returns the check-resolving moves of the side to
// move, ending the game when there are none. It returns nil when the side
// to move isn't in check.
func (g *Game) CheckmateInspection() []Movement {
	if g.inCheck.IsEmpty() {
		return nil
	}
	solution := g.SafeMovements(g.current)
	if len(solution) == 0 {
		if g.current.IsHuman() {
			g.end(PlayerCheckmated)
		} else {
			g.end(ComputerCheckmated)
		}
	}
	return solution
}

func (g *Game) computerTurn() {
	g.CheckmateInspection()
	if g.report.HasValue() {
		return
	}

	candidates := FilterSlice(g.SafeMovements(g.bot), func(m Movement) bool {
		return !rules.IsKingCapture(g.board, m)
	})
	choice := g.bot.strategy.Choose(candidates)
	if choice.IsEmpty() {
		g.end(ComputerResigned)
		return
	}
	if err := g.MovePiece(choice.Value()); err != nil {
		g.logger.Printf("computer broke a rule with %v: %v", choice.Value(), err)
		g.end(ComputerResigned)
		return
	}
	g.bot.Tick()
}

// MovePiece commits a movement for the side to move, including castling and
// promotion. A rejected movement returns a *RuleViolation and leaves the game
// as it was.
func (g *Game) MovePiece(m Movement) error {
	if m.Piece < 0 || int(m.Piece) >= g.board.NumPieces() {
		return newViolation(g.current, ErrInvalidMove)
	}
	mover := g.Owner(m.Piece)
	if g.report.HasValue() || mover != g.current || !mover.owns(m.Piece) {
		return newViolation(mover, ErrInvalidMove)
	}
	piece := g.board.Piece(m.Piece)
	if piece.Coord() != m.From {
		return newViolation(mover, ErrInvalidMove)
	}
	// the capture snapshot may be stale
	m = NewMovement(g.board, m.Piece, m.To)

	wasInCheck := rules.DetectInCheck(g.board, mover.king).HasValue()
	reachable := MovementKeys(rules.AllMovements(g.board, []PieceID{m.Piece}, wasInCheck))
	if _, ok := reachable[m.Key()]; !ok {
		return newViolation(mover, ErrInvalidMove)
	}
	if rules.PredictInCheck(g.board, mover.king, m).HasValue() {
		return newViolation(mover, ErrKingInDanger)
	}
	if rules.IsKingCapture(g.board, m) {
		return newViolation(mover, ErrKingDignity)
	}

	castling := rules.CastlingMovement(g.board, m, wasInCheck)

	captured := m.Perform(g.board)
	if captured.HasValue() {
		mover.opponent.removePiece(captured.Value())
	}
	mover.lastMove = Some(m)
	g.lastMove = Some(m)
	g.animation = NewAnimation(m, g.pieceMovementSpeed, g.maxMovementTime)

	promoted := Empty[PieceID]()
	if g.board.Piece(m.Piece).Kind == Pawn && m.To.Y == promotionRow {
		queen := g.board.Promote(m.To, Queen)
		mover.removePiece(m.Piece)
		mover.addPiece(queen)
		promoted = Some(queen)
	}

	mover.IncreaseRemainingTime()

	if castling.HasValue() {
		castling.Value().Perform(g.board)
		g.rookAnimation = NewAnimation(castling.Value(), g.pieceMovementSpeed, g.maxMovementTime)
	}

	g.plies++
	g.safe = map[Color][]Movement{}
	g.current = mover.opponent
	g.inCheck = rules.DetectInCheck(g.board, g.current.king)

	g.logger.Printf("ply %v: %v plays %v", g.plies, mover, m)
	if captured.HasValue() {
		g.logger.Printf("ply %v: captured %v", g.plies, g.board.Piece(captured.Value()))
	}
	if castling.HasValue() {
		g.logger.Printf("ply %v: castled with %v", g.plies, castling.Value())
	}
	if promoted.HasValue() {
		g.logger.Printf("ply %v: promoted to %v", g.plies, g.board.Piece(promoted.Value()))
	}
	if g.inCheck.HasValue() {
		g.logger.Printf("ply %v: %v is in check", g.plies, g.current)
	}
	return nil
}

// SelectPiece picks up one of the human's pieces. While in check only pieces
// that can resolve the check may be selected; anything else raises a
// KingProtectionWarning.
func (g *Game) SelectPiece(at Coord) error {
	if g.Status() != PlayerTurn {
		return newViolation(g.human, ErrInvalidMove)
	}
	occupant := g.board.Occupant(at)
	if occupant.IsEmpty() || g.board.Piece(occupant.Value()).Color != g.human.Color {
		return newViolation(g.human, ErrInvalidMove)
	}
	if g.inCheck.HasValue() {
		protective := AnyInSlice(g.SafeMovements(g.human), func(m Movement) bool {
			return m.Piece == occupant.Value()
		})
		if !protective {
			g.warning = NewKingProtectionWarning()
			g.logger.Printf("%v can't help the king, warning", g.board.Piece(occupant.Value()))
			return newViolation(g.human, ErrKingInDanger)
		}
	}
	g.human.selection = Some(at)
	return nil
}

// AttemptMove moves the selected piece to target. The selection is always
// cleared, whether or not the move is accepted.
func (g *Game) AttemptMove(target Coord) error {
	selection := g.human.selection
	g.human.ClearSelection()

	if selection.IsEmpty() || g.Status() != PlayerTurn || target == selection.Value() {
		return newViolation(g.human, ErrInvalidMove)
	}
	if occupant := g.board.Occupant(target); occupant.HasValue() &&
		g.board.Piece(occupant.Value()).Color == g.human.Color {
		return newViolation(g.human, ErrInvalidMove)
	}

	source := g.board.Occupant(selection.Value())
	if source.IsEmpty() {
		return newViolation(g.human, ErrInvalidMove)
	}
	m := NewMovement(g.board, source.Value(), target)

	if _, ok := MovementKeys(g.SafeMovements(g.human))[m.Key()]; !ok {
		all := rules.AllMovements(g.board, g.human.roster, g.inCheck.HasValue())
		if _, legal := MovementKeys(all)[m.Key()]; legal {
			g.logger.Printf("rejected %v: king in danger", m)
			return newViolation(g.human, ErrKingInDanger)
		}
		g.logger.Printf("rejected %v: invalid", m)
		return newViolation(g.human, ErrInvalidMove)
	}
	return g.MovePiece(m)
}

// TargetTiles are the safe destinations of the selected piece.
func (g *Game) TargetTiles() TileSet {
	result := TileSet{}
	selection := g.human.selection
	if selection.IsEmpty() {
		return result
	}
	source := g.board.Occupant(selection.Value())
	if source.IsEmpty() {
		return result
	}
	for _, m := range g.SafeMovements(g.human) {
		if m.Piece == source.Value() {
			result.Add(m.To)
		}
	}
	return result
}

// Resign ends the game in favour of agent's opponent.
func (g *Game) Resign(agent *PlayerAgent) {
	if g.report.HasValue() {
		return
	}
	if agent.IsHuman() {
		g.end(PlayerResigned)
	} else {
		g.end(ComputerResigned)
	}
}

func (g *Game) end(reason EndReason) {
	report := newReport(g.human, g.bot, reason, g.plies)
	g.report = Some(report)
	g.human.ClearSelection()
	g.logger.Printf("game over: %v", report)
}
