package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tenpin/tenpin/pkg/types"
)

func perfectGame() types.ScoredGame {
	throws := make([]int, 12)
	for i := range throws {
		throws[i] = 10
	}
	return types.ScoredGame{ID: "g1", Bowler: "alice", Throws: throws, Score: 300, Strikes: 12}
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, []types.ScoredGame{perfectGame()}))
	out := buf.String()

	assert.Contains(t, out, "# TYPE tenpin_game_score gauge")
	assert.Contains(t, out, `tenpin_game_score{bowler="alice",game="g1"} 300`)
	assert.Contains(t, out, `tenpin_game_strikes{bowler="alice",game="g1"} 12`)
	assert.Contains(t, out, `tenpin_game_opens{bowler="alice",game="g1"} 0`)
	assert.Contains(t, out, `tenpin_frame_running{bowler="alice",frame="1",game="g1"} 30`)
	assert.Contains(t, out, `tenpin_frame_running{bowler="alice",frame="10",game="g1"} 300`)
}

func TestWriteText_PositionalIDs(t *testing.T) {
	games := []types.ScoredGame{
		{Bowler: "bob", Throws: make([]int, 20)},
		{Bowler: "carol", Throws: make([]int, 20)},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, games))

	assert.Contains(t, buf.String(), `tenpin_game_score{bowler="bob",game="game-1"} 0`)
	assert.Contains(t, buf.String(), `tenpin_game_score{bowler="carol",game="game-2"} 0`)
}

func TestFamilies_RepeatedIDs(t *testing.T) {
	first, second, other := perfectGame(), perfectGame(), perfectGame()
	second.Throws = make([]int, 20)
	second.Score, second.Strikes = 0, 0
	other.ID = "g9"

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, []types.ScoredGame{first, second, other}))
	out := buf.String()

	assert.Contains(t, out, `tenpin_game_score{bowler="alice",game="game-1"} 300`)
	assert.Contains(t, out, `tenpin_game_score{bowler="alice",game="game-2"} 0`)
	assert.Contains(t, out, `tenpin_game_score{bowler="alice",game="g9"} 300`)
	assert.NotContains(t, out, `game="g1"`)
}

func TestWriteText_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, nil))
	assert.Empty(t, buf.String())
}

func TestFamilies_RunningPerFrame(t *testing.T) {
	fams := Families([]types.ScoredGame{perfectGame()})
	require.Len(t, fams, 5)

	var running int
	for _, mf := range fams {
		if mf.GetName() == RunningFamily {
			running = len(mf.Metric)
		} else {
			assert.Len(t, mf.Metric, 1, mf.GetName())
		}
	}
	assert.Equal(t, 10, running)
}
