package bowling

import (
	"errors"
	"fmt"
)

// ErrInvalidGame is wrapped by every error Validate returns.
var ErrInvalidGame = errors.New("invalid game")

// Validate reports whether throws is a legal completed game: every value in
// [0, 10], no frame knocking down more than ten pins, nine complete frames,
// and a tenth frame with exactly the fill balls it earned.
func Validate(throws []int) error {
	for i, p := range throws {
		if p < 0 || p > Pins {
			return fmt.Errorf("%w: throw %d: %d pins is outside [0, %d]", ErrInvalidGame, i+1, p, Pins)
		}
	}

	b := 0
	for k := 1; k < Frames; k++ {
		if b >= len(throws) {
			return fmt.Errorf("%w: frame %d: missing", ErrInvalidGame, k)
		}
		if throws[b] == Pins {
			b++
			continue
		}
		if b+1 >= len(throws) {
			return fmt.Errorf("%w: frame %d: missing second ball", ErrInvalidGame, k)
		}
		if throws[b]+throws[b+1] > Pins {
			return fmt.Errorf("%w: frame %d: %d+%d pins", ErrInvalidGame, k, throws[b], throws[b+1])
		}
		b += 2
	}

	return validateTenth(throws[b:])
}

func validateTenth(t []int) error {
	if len(t) < 2 {
		return fmt.Errorf("%w: frame %d: incomplete", ErrInvalidGame, Frames)
	}

	want := 2
	switch {
	case t[0] == Pins:
		want = 3
		if len(t) >= 3 && t[1] != Pins && t[1]+t[2] > Pins {
			return fmt.Errorf("%w: frame %d: fill balls %d+%d pins", ErrInvalidGame, Frames, t[1], t[2])
		}
	case t[0]+t[1] > Pins:
		return fmt.Errorf("%w: frame %d: %d+%d pins", ErrInvalidGame, Frames, t[0], t[1])
	case t[0]+t[1] == Pins:
		want = 3
	}

	if len(t) != want {
		return fmt.Errorf("%w: frame %d: %d balls thrown, want %d", ErrInvalidGame, Frames, len(t), want)
	}
	return nil
}
