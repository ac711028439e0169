package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/tenpin/tenpin/pkg/types"
)

func TestWriteXLSX(t *testing.T) {
	games := []types.ScoredGame{perfectGame(), {Bowler: "bo", Throws: make([]int, 20), Opens: 10}}

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, games))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(GamesSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"Bowler", "Game", "Score", "Strikes", "Spares", "Opens", "F1"}, rows[0][:7])
	assert.Equal(t, "F10", rows[0][15])
	assert.Equal(t, []string{"alice", "g1", "300", "12", "0", "0", "30"}, rows[1][:7])
	assert.Equal(t, "300", rows[1][15])
	assert.Equal(t, []string{"bo", "game-2", "0", "0", "0", "10"}, rows[2][:6])
}
