package board

import (
	"bufio"
	"errors"
	"io"
	"strings"

	. "github.com/cricklet/xxlchess/internal/helpers"
)

var (
	ErrLayoutSize    = errors.New("the map must have the size of 14*14")
	ErrUnknownSymbol = errors.New("unexpected piece character")
	ErrKingCount     = errors.New("each colour needs exactly one king")
)

// ParseLayout builds a board from a text grid of Width rows. Short rows are
// padded with empty tiles; ' ' and '.' are empty tiles.
func ParseLayout(r io.Reader, upward Color) (*Board, Error) {
	b := NewBoard(upward)
	kings := [2]int{}

	scanner := bufio.NewScanner(r)
	y := 0
	for scanner.Scan() {
		row := strings.TrimRight(scanner.Text(), "\r")
		if y >= Width {
			if strings.TrimSpace(row) == "" {
				continue
			}
			return nil, Errorf("row %v: %w", y, ErrLayoutSize)
		}

		x := 0
		for _, c := range row {
			if x >= Width {
				return nil, Errorf("row %v is wider than %v: %w", y, Width, ErrLayoutSize)
			}
			if c == ' ' || c == '.' {
				x++
				continue
			}
			kind, color, ok := KindFromSymbol(c)
			if !ok {
				return nil, Errorf("'%c' at (%v,%v): %w", c, x, y, ErrUnknownSymbol)
			}
			if kind == King {
				kings[color]++
			}
			if _, err := b.AddPiece(kind, color, Coord{x, y}); !IsNil(err) {
				return nil, err
			}
			x++
		}
		y++
	}
	if err := scanner.Err(); err != nil {
		return nil, Wrap(err)
	}
	if y != Width {
		return nil, Errorf("found %v rows: %w", y, ErrLayoutSize)
	}

	for _, color := range []Color{White, Black} {
		if kings[color] != 1 {
			return nil, Errorf("found %v %v kings: %w", kings[color], color, ErrKingCount)
		}
	}

	b.Refresh()
	return b, NilError
}

func ParseLayoutString(s string, upward Color) (*Board, Error) {
	return ParseLayout(strings.NewReader(s), upward)
}

// King finds the single king of the colour.
func (b *Board) King(c Color) Optional[PieceID] {
	return FindInSlice(b.PiecesOf(c), func(id PieceID) bool {
		return b.pieces[id].Kind == King
	})
}
