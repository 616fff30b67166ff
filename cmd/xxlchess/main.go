package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/cricklet/xxlchess/internal/config"
	"github.com/cricklet/xxlchess/internal/console"
	"github.com/cricklet/xxlchess/internal/display"
	"github.com/cricklet/xxlchess/internal/game"
	. "github.com/cricklet/xxlchess/internal/helpers"
	"github.com/cricklet/xxlchess/internal/storage"
	"github.com/google/uuid"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintln(os.Stderr, "recover()", r)
			os.Exit(1)
		}
	}()

	configPath := flag.String("config", "config.json", "game configuration")
	ledgerDir := flag.String("ledger", "", "directory of the finished game ledger, none if empty")
	verbose := flag.Bool("v", false, "log every ply to stderr")
	flag.Parse()

	c, err := config.Load(*configPath)
	if !IsNil(err) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger := NewProductionLogger("xxlchess", *verbose)
	defer logger.Sync()

	var gameLogger Optional[Logger]
	if *verbose {
		gameLogger = Some[Logger](logger)
	}
	g, err := game.NewFromConfig(c, gameLogger)
	if !IsNil(err) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// a computer opening finishes before the first prompt
	g.AdvanceToPlayer(60 * game.FPS)

	cons := console.New(g, display.NewRenderer(display.IsTerminal(os.Stdout)))
	for _, line := range append(console.Help, "") {
		fmt.Println(line)
	}
	lines, _ := cons.HandleInput("p")
	for _, line := range lines {
		fmt.Println(line)
	}

	scanner := bufio.NewScanner(os.Stdin)
	for !g.Report().HasValue() && scanner.Scan() {
		lines, err := cons.HandleInput(scanner.Text())
		if errors.Is(err, console.ErrQuit) {
			break
		}
		for _, line := range lines {
			fmt.Println(line)
		}
	}

	if *ledgerDir == "" || g.Report().IsEmpty() {
		return
	}
	ledger, err := storage.Open(*ledgerDir)
	if !IsNil(err) {
		logger.Println("ledger:", err)
		return
	}
	defer ledger.Close()

	record, err := storage.RecordFromGame(g, uuid.NewString())
	if IsNil(err) {
		record, err = ledger.Record(record)
	}
	if !IsNil(err) {
		logger.Println("ledger:", err)
		return
	}
	logger.With("id", record.ID).Printf("recorded %v", g.Report().Value())

	stats, err := ledger.Stats()
	if IsNil(err) {
		fmt.Println(stats)
	}
}
