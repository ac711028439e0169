package sheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tenpin/tenpin/pkg/bowling"
)

func TestParseNotation(t *testing.T) {
	sample := []int{10, 7, 3, 9, 0, 10, 0, 8, 8, 2, 0, 6, 10, 10, 10, 8, 1}

	tests := []struct {
		name  string
		input string
		want  []int
	}{
		{"spaced", "X 7/ 9- X -8 8/ -6 X X X81", sample},
		{"piped", "X|7/|9-|X|-8|8/|-6|X|X|X81", sample},
		{"integers", "10 7 3 9 0 10 0 8 8 2 0 6 10 10 10 8 1", sample},
		{"commas", "10,7,3,9,0,10,0,8,8,2,0,6,10,10,10,8,1", sample},
		{"lower-case strikes", "x x x x x x x x x xxx", []int{10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10}},
		{"spare then fill", "-- -- -- -- -- -- -- -- -- 7/5", []int{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 7, 3, 5}},
		{"strike then spare fill", "X 4/", []int{10, 4, 6}},
		{"tenth strike spare", "X6/", []int{10, 6, 4}},
		{"integer spare", "0 10", []int{0, 10}},
		{"zero digit", "90 0-", []int{9, 0, 0, 0}},
		{"mixed whitespace", "X\t7/\n9-", []int{10, 7, 3, 9, 0}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseNotation(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseNotation_ScoresSheet(t *testing.T) {
	throws, err := ParseNotation("X|7/|9-|X|-8|8/|-6|X|X|X81")
	require.NoError(t, err)
	assert.Equal(t, 167, bowling.Score(throws))
}

func TestParseNotation_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"only separators", " | , "},
		{"spare on first ball", "/5"},
		{"strike on second ball", "5X"},
		{"unknown symbol", "X 7/ F"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseNotation(tc.input)
			assert.ErrorIs(t, err, ErrNotation)
		})
	}
}
