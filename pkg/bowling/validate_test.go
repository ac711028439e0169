package bowling

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate_Legal(t *testing.T) {
	tests := []struct {
		name   string
		throws []int
	}{
		{"all gutter", zeros(20)},
		{"perfect", repeat(10, 12)},
		{"strike in ninth", []int{4, 5, 5, 4, 3, 6, 2, 7, 0, 9, 6, 3, 8, 1, 1, 8, 10, 7, 2}},
		{"spare in tenth with fill", game(zeros(18), []int{9, 1, 10})},
		{"tenth strike then open fill", game(zeros(18), []int{10, 3, 6})},
		{"tenth strike then spare fill", game(zeros(18), []int{10, 3, 7})},
		{"all spares", repeat(5, 21)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.NoError(t, Validate(tc.throws))
		})
	}
}

func TestValidate_Illegal(t *testing.T) {
	tests := []struct {
		name   string
		throws []int
	}{
		{"empty", nil},
		{"negative pins", game([]int{-1, 5}, zeros(18))},
		{"eleven pins", game([]int{11}, zeros(18))},
		{"frame over ten pins", game([]int{6, 5}, zeros(18))},
		{"too short", zeros(18)},
		{"missing second ball in ninth", game(zeros(16), []int{3})},
		{"lone tenth ball", game(zeros(18), []int{4})},
		{"open tenth with fill ball", []int{4, 5, 5, 4, 3, 6, 2, 7, 0, 9, 6, 3, 8, 1, 1, 8, 10, 0, 0, 0}},
		{"tenth strike missing fill", game(zeros(16), []int{10, 10, 10})},
		{"tenth spare missing fill", game(zeros(18), []int{9, 1})},
		{"tenth fill balls over ten", game(zeros(18), []int{10, 6, 5})},
		{"tenth frame over ten", game(zeros(18), []int{8, 4})},
		{"extra balls after game", game(zeros(20), []int{0})},
		{"strike recorded as ten and zero", game([]int{10, 0}, zeros(18))},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(tc.throws)
			assert.ErrorIs(t, err, ErrInvalidGame, "throws %v", tc.throws)
		})
	}
}

func TestValidate_MessageNamesFrame(t *testing.T) {
	err := Validate(game(zeros(4), []int{7, 7}, zeros(14)))
	assert.ErrorContains(t, err, "frame 3")
}
