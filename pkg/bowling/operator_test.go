package bowling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildOperator_StrikeExample(t *testing.T) {
	// X 1 1: the 3×3 example from the package doc.
	a := BuildOperator([]int{10, 1, 1})

	want := [][]int{
		{1, 1, 1},
		{0, 1, 0},
		{0, 0, 1},
	}
	assert.Equal(t, want, a.Dense())
	assert.Equal(t, 12, a.Apply([]int{10, 1, 1}))
}

func TestBuildOperator_SpareMarksSecondBallRow(t *testing.T) {
	throws := game([]int{6, 4, 5, 2}, zeros(16))
	a := BuildOperator(throws)

	assert.Equal(t, []Mark{{Row: 1, Col: 2}}, a.Marks())
	assert.Equal(t, 0, a.At(0, 2), "first ball row must stay clear")
	assert.Equal(t, 1, a.At(1, 2))
}

func TestBuildOperator_NinthFrameStrikeReachesTenth(t *testing.T) {
	throws := []int{4, 5, 5, 4, 3, 6, 2, 7, 0, 9, 6, 3, 8, 1, 1, 8, 10, 7, 2}
	a := BuildOperator(throws)

	assert.Equal(t, []Mark{{Row: 16, Col: 17}, {Row: 16, Col: 18}}, a.Marks())
}

func TestBuildOperator_NoTenthFrameMarks(t *testing.T) {
	a := BuildOperator(repeat(10, 12))

	// Nine strikes, two marks each; the three tenth-frame balls add none.
	require.Len(t, a.Marks(), 18)
	for _, m := range a.Marks() {
		assert.Less(t, m.Row, 9, "mark %+v sits on a tenth-frame row", m)
	}
}

func TestBuildOperator_DropsOutOfRangeColumns(t *testing.T) {
	a := BuildOperator(game(zeros(16), []int{10, 10}))

	for _, m := range a.Marks() {
		assert.Less(t, m.Col, a.Size(), "mark %+v points past the game", m)
	}
	assert.Equal(t, []Mark{{Row: 16, Col: 17}}, a.Marks())
}

func TestBuildOperator_StrikeBeatsSpare(t *testing.T) {
	// 10 followed by 0 adds up to ten but is a strike, not a spare.
	a := BuildOperator(game([]int{10, 0, 3}, zeros(15)))

	assert.Equal(t, []Mark{{Row: 0, Col: 1}, {Row: 0, Col: 2}}, a.Marks())
}

func TestOperator_At_OutOfRange(t *testing.T) {
	a := BuildOperator([]int{10, 1, 1})
	assert.Zero(t, a.At(-1, 0))
	assert.Zero(t, a.At(0, 3))
	assert.Zero(t, a.At(3, 3))
}

func TestOperator_Invariants(t *testing.T) {
	for _, tc := range scoreCases {
		t.Run(tc.name, func(t *testing.T) {
			a := BuildOperator(tc.throws)
			d := a.Dense()
			n := len(tc.throws)
			require.Len(t, d, n)

			for i := 0; i < n; i++ {
				assert.Equal(t, 1, d[i][i], "A[%d][%d]", i, i)
				for j := 0; j < i; j++ {
					assert.Zero(t, d[i][j], "A[%d][%d] below the diagonal", i, j)
				}
				for j := i + 1; j < n; j++ {
					assert.Contains(t, []int{0, 1}, d[i][j])
				}
			}
		})
	}
}

func TestDenseScore_MatchesApply(t *testing.T) {
	for _, tc := range scoreCases {
		t.Run(tc.name, func(t *testing.T) {
			a := BuildOperator(tc.throws)
			assert.Equal(t, a.Apply(tc.throws), DenseScore(a.Dense(), tc.throws))
			assert.Equal(t, tc.want, DenseScore(a.Dense(), tc.throws))
		})
	}
}

func TestWalk(t *testing.T) {
	frames := Walk([]int{10, 7, 3, 9, 0})

	assert.Equal(t, []Frame{
		{Number: 1, Ball: 0, Kind: Strike},
		{Number: 2, Ball: 1, Kind: Spare},
		{Number: 3, Ball: 3, Kind: Open},
	}, frames)
}

func TestWalk_StopsAfterNineFrames(t *testing.T) {
	frames := Walk(repeat(10, 12))

	require.Len(t, frames, 9)
	assert.Equal(t, 9, frames[8].Number)
	assert.Equal(t, 8, frames[8].Ball)
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "strike", Strike.String())
	assert.Equal(t, "spare", Spare.String())
	assert.Equal(t, "open", Open.String())
}
