package config

import (
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"

	. "github.com/cricklet/xxlchess/internal/board"
	. "github.com/cricklet/xxlchess/internal/helpers"
)

var ErrInvalidConfig = errors.New("invalid config")

type TimeControl struct {
	Seconds   int `json:"seconds"`
	Increment int `json:"increment"`
}

type TimeControls struct {
	Player TimeControl `json:"player"`
	CPU    TimeControl `json:"cpu"`
}

// Config mirrors config.json. Layout is resolved relative to the directory
// the config was read from.
type Config struct {
	Layout             string       `json:"layout"`
	PlayerColour       string       `json:"player_colour"`
	TimeControls       TimeControls `json:"time_controls"`
	PieceMovementSpeed int          `json:"piece_movement_speed"`
	MaxMovementTime    int          `json:"max_movement_time"`
	Seed               *int64       `json:"seed,omitempty"`

	dir string
}

func Load(path string) (Config, Error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, Wrap(err)
	}
	defer f.Close()

	return Parse(f, filepath.Dir(path))
}

// Parse decodes and validates a config. dir is where relative layout paths
// are resolved from.
func Parse(r io.Reader, dir string) (Config, Error) {
	c := Config{dir: dir}
	decoder := json.NewDecoder(r)
	if err := decoder.Decode(&c); err != nil {
		return Config{}, Errorf("decoding config: %w", err)
	}
	if err := c.Validate(); !IsNil(err) {
		return Config{}, err
	}
	return c, NilError
}

func (c Config) Validate() Error {
	if c.Layout == "" {
		return Errorf("missing layout: %w", ErrInvalidConfig)
	}
	if _, ok := ColorFromString(c.PlayerColour); !ok {
		return Errorf("player_colour %q: %w", c.PlayerColour, ErrInvalidConfig)
	}
	for name, tc := range map[string]TimeControl{"player": c.TimeControls.Player, "cpu": c.TimeControls.CPU} {
		if tc.Seconds <= 0 {
			return Errorf("%v seconds must be positive, got %v: %w", name, tc.Seconds, ErrInvalidConfig)
		}
		if tc.Increment < 0 {
			return Errorf("%v increment must not be negative, got %v: %w", name, tc.Increment, ErrInvalidConfig)
		}
	}
	if c.PieceMovementSpeed <= 0 {
		return Errorf("piece_movement_speed must be positive: %w", ErrInvalidConfig)
	}
	if c.MaxMovementTime <= 0 {
		return Errorf("max_movement_time must be positive: %w", ErrInvalidConfig)
	}
	return NilError
}

func (c Config) PlayerColor() Color {
	color, _ := ColorFromString(c.PlayerColour)
	return color
}

func (c Config) LayoutPath() string {
	if filepath.IsAbs(c.Layout) {
		return c.Layout
	}
	return filepath.Join(c.dir, c.Layout)
}

// LoadBoard reads the layout file. The human's pawns advance towards row 0.
func (c Config) LoadBoard() (*Board, Error) {
	f, err := os.Open(c.LayoutPath())
	if err != nil {
		return nil, Wrap(err)
	}
	defer f.Close()

	return ParseLayout(f, c.PlayerColor())
}
