package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pkg/profile"

	. "github.com/cricklet/xxlchess/internal/board"
	"github.com/cricklet/xxlchess/internal/config"
	"github.com/cricklet/xxlchess/internal/game"
	. "github.com/cricklet/xxlchess/internal/helpers"
	"github.com/cricklet/xxlchess/internal/rules"
	"github.com/cricklet/xxlchess/internal/storage"
)

// PlayGame drives the human side with strategy through the same entry points
// a person would use. The human resigns once the game reaches maxPlies.
func PlayGame(g *game.Game, strategy game.BotStrategy, maxPlies int) game.GameReport {
	for g.Report().IsEmpty() {
		g.AdvanceToPlayer(60 * game.FPS)
		if g.Report().HasValue() {
			break
		}
		if g.Status() != game.PlayerTurn {
			continue
		}
		if g.Plies() >= maxPlies {
			g.Resign(g.Human())
			break
		}

		safe := g.SafeMovements(g.Human())
		if len(safe) == 0 {
			// the next frame declares checkmate or a draw
			g.Tick()
			continue
		}
		candidates := FilterSlice(safe, func(m Movement) bool {
			return !rules.IsKingCapture(g.Board(), m)
		})
		choice := strategy.Choose(candidates)
		if choice.IsEmpty() {
			g.Resign(g.Human())
			break
		}
		if err := g.SelectPiece(choice.Value().From); err != nil {
			panic(fmt.Errorf("selecting %v: %w", choice.Value(), err))
		}
		if err := g.AttemptMove(choice.Value().To); err != nil {
			panic(fmt.Errorf("moving %v: %w", choice.Value(), err))
		}
	}
	return g.Report().Value()
}

type Summary struct {
	Games    int
	Wins     int
	Draws    int
	Plies    int
	ByReason map[game.EndReason]int
}

func (s *Summary) Add(r game.GameReport) {
	if s.ByReason == nil {
		s.ByReason = map[game.EndReason]int{}
	}
	s.Games++
	s.Plies += r.Plies
	s.ByReason[r.Reason]++
	if r.Winner == nil {
		s.Draws++
	} else if r.Winner.IsHuman() {
		s.Wins++
	}
}

func (s *Summary) String() string {
	lines := []string{fmt.Sprintf("%v games, %v won by the random player, %v drawn, %v plies",
		humanize.Comma(int64(s.Games)), humanize.Comma(int64(s.Wins)),
		humanize.Comma(int64(s.Draws)), humanize.Comma(int64(s.Plies)))}

	reasons := []game.EndReason{}
	for reason := range s.ByReason {
		reasons = append(reasons, reason)
	}
	sort.Slice(reasons, func(i, j int) bool { return reasons[i] < reasons[j] })
	for _, reason := range reasons {
		lines = append(lines, fmt.Sprintf("  %-20v %v", reason, humanize.Comma(int64(s.ByReason[reason]))))
	}
	return strings.Join(lines, "\n")
}

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintln(os.Stderr, "recover()", r)
			os.Exit(1)
		}
	}()

	configPath := flag.String("config", "config.json", "game configuration")
	games := flag.Int("games", 10, "number of games")
	seed := flag.Int64("seed", time.Now().UnixNano(), "seed for both sides")
	maxPlies := flag.Int("max-plies", 1000, "plies before the random player resigns")
	ledgerDir := flag.String("ledger", "", "directory of the finished game ledger, none if empty")
	profiling := flag.Bool("profile", false, "write a cpu profile under data/")
	flag.Parse()

	if *profiling {
		p := profile.Start(profile.ProfilePath(RootDir() + "/data/CmdSelfplay"))
		defer p.Stop()
	}

	c, err := config.Load(*configPath)
	if !IsNil(err) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	var ledger *storage.Ledger
	if *ledgerDir != "" {
		ledger, err = storage.Open(*ledgerDir)
		if !IsNil(err) {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer ledger.Close()
	}

	logger := NewProductionLogger("selfplay", false)
	defer logger.Sync()

	summary := Summary{}
	progress := CreateProgressBar(*games, "selfplay")
	start := time.Now()
	for i := 0; i < *games; i++ {
		gameSeed := *seed + int64(i)
		c.Seed = &gameSeed

		g, err := game.NewFromConfig(c, Empty[Logger]())
		if !IsNil(err) {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		report := PlayGame(g, game.NewRandomStrategy(rand.NewSource(^gameSeed)), *maxPlies)
		summary.Add(report)
		progress.Add(1)

		if ledger != nil {
			record, err := storage.RecordFromGame(g, fmt.Sprintf("selfplay-%v", gameSeed))
			if IsNil(err) {
				_, err = ledger.Record(record)
			}
			if !IsNil(err) {
				logger.Println("ledger:", err)
			}
		}
	}
	progress.Close()

	fmt.Println(summary.String())
	fmt.Printf("took %v\n", time.Since(start).Round(time.Millisecond))
}
