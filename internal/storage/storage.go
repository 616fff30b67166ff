package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/cricklet/xxlchess/internal/game"
	. "github.com/cricklet/xxlchess/internal/helpers"
)

const gamePrefix = "game/"

// GameRecord is one finished game in the ledger.
type GameRecord struct {
	ID           string    `json:"id"`
	Session      string    `json:"session,omitempty"`
	PlayerColour string    `json:"player_colour"`
	Reason       string    `json:"reason"`
	HumanWon     bool      `json:"human_won"`
	Draw         bool      `json:"draw"`
	Plies        int       `json:"plies"`
	FinalLayout  string    `json:"final_layout"`
	FinishedAt   time.Time `json:"finished_at"`
}

// RecordFromGame summarises an ended game. It fails for a game that is
// still running.
func RecordFromGame(g *game.Game, session string) (GameRecord, Error) {
	report := g.Report()
	if report.IsEmpty() {
		return GameRecord{}, Errorf("game hasn't ended")
	}
	r := report.Value()
	return GameRecord{
		Session:      session,
		PlayerColour: g.Human().Color.String(),
		Reason:       r.Reason.String(),
		HumanWon:     r.Winner == g.Human(),
		Draw:         r.Winner == nil,
		Plies:        r.Plies,
		FinalLayout:  g.Board().String(),
	}, NilError
}

type Stats struct {
	Games      int            `json:"games"`
	Wins       int            `json:"wins"`
	Losses     int            `json:"losses"`
	Draws      int            `json:"draws"`
	TotalPlies int            `json:"total_plies"`
	ByReason   map[string]int `json:"by_reason"`
}

func (s Stats) WinRate() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Games) * 100
}

func (s Stats) String() string {
	return fmt.Sprintf("%v games (%v won, %v lost, %v drawn, %.1f%% win rate), %v plies",
		humanize.Comma(int64(s.Games)), humanize.Comma(int64(s.Wins)),
		humanize.Comma(int64(s.Losses)), humanize.Comma(int64(s.Draws)),
		s.WinRate(), humanize.Comma(int64(s.TotalPlies)))
}

// Ledger stores finished games in BadgerDB, one JSON value per game.
type Ledger struct {
	db *badger.DB
}

func Open(dir string) (*Ledger, Error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil
	return open(opts)
}

// OpenInMemory keeps the ledger for the lifetime of the process only.
func OpenInMemory() (*Ledger, Error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil
	return open(opts)
}

func open(opts badger.Options) (*Ledger, Error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, Errorf("opening ledger: %w", err)
	}
	return &Ledger{db: db}, NilError
}

func (l *Ledger) Close() Error {
	if l.db == nil {
		return NilError
	}
	return Wrap(l.db.Close())
}

// Record stores r, assigning an ID and finish time when they are missing.
func (l *Ledger) Record(r GameRecord) (GameRecord, Error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.FinishedAt.IsZero() {
		r.FinishedAt = time.Now()
	}
	data, err := json.Marshal(r)
	if err != nil {
		return r, Wrap(err)
	}
	err = l.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(gamePrefix+r.ID), data)
	})
	return r, Wrap(err)
}

func (l *Ledger) Get(id string) (Optional[GameRecord], Error) {
	result := Empty[GameRecord]()
	err := l.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(gamePrefix + id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			r := GameRecord{}
			if err := json.Unmarshal(val, &r); err != nil {
				return err
			}
			result = Some(r)
			return nil
		})
	})
	return result, Wrap(err)
}

// Records lists every game, oldest first.
func (l *Ledger) Records() ([]GameRecord, Error) {
	records := []GameRecord{}
	err := l.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(gamePrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				r := GameRecord{}
				if err := json.Unmarshal(val, &r); err != nil {
					return err
				}
				records = append(records, r)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, Wrap(err)
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].FinishedAt.Before(records[j].FinishedAt)
	})
	return records, NilError
}

func (l *Ledger) Stats() (Stats, Error) {
	stats := Stats{ByReason: map[string]int{}}
	records, err := l.Records()
	if !IsNil(err) {
		return stats, err
	}
	for _, r := range records {
		stats.Games++
		stats.TotalPlies += r.Plies
		stats.ByReason[r.Reason]++
		switch {
		case r.Draw:
			stats.Draws++
		case r.HumanWon:
			stats.Wins++
		default:
			stats.Losses++
		}
	}
	return stats, NilError
}
