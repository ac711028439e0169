package sheet

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tenpin/tenpin/pkg/bowling"
)

// ErrNotation is wrapped by every error ParseNotation returns.
var ErrNotation = errors.New("bad notation")

// rack tracks the pins standing in front of the bowler.
type rack struct {
	standing int
	first    bool
}

func newRack() rack { return rack{standing: bowling.Pins, first: true} }

// roll records p pins and resets the rack after a strike or a second ball.
func (r *rack) roll(p int) {
	if r.first && p < r.standing {
		r.standing -= p
		r.first = false
		return
	}
	*r = newRack()
}

// ParseNotation converts a score sheet into the pins knocked down by every
// ball thrown.
func ParseNotation(s string) ([]int, error) {
	tokens := strings.FieldsFunc(s, func(c rune) bool {
		return c == '|' || c == ',' || c == ' ' || c == '\t' || c == '\n' || c == '\r'
	})
	if len(tokens) == 0 {
		return nil, fmt.Errorf("%w: empty sheet", ErrNotation)
	}

	throws := make([]int, 0, bowling.MaxThrows)
	r := newRack()
	for _, tok := range tokens {
		if tok == "10" {
			throws = append(throws, bowling.Pins)
			r.roll(bowling.Pins)
			continue
		}
		for _, c := range tok {
			var p int
			switch {
			case c == 'X' || c == 'x':
				if !r.first {
					return nil, fmt.Errorf("%w: ball %d: strike on a second ball, use /", ErrNotation, len(throws)+1)
				}
				p = bowling.Pins
			case c == '/':
				if r.first {
					return nil, fmt.Errorf("%w: ball %d: spare on a first ball", ErrNotation, len(throws)+1)
				}
				p = r.standing
			case c == '-':
				p = 0
			case c >= '0' && c <= '9':
				p = int(c - '0')
			default:
				return nil, fmt.Errorf("%w: ball %d: unexpected %q", ErrNotation, len(throws)+1, c)
			}
			throws = append(throws, p)
			r.roll(p)
		}
	}
	return throws, nil
}
