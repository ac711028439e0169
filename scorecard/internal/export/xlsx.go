package export

import (
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/tenpin/tenpin/pkg/bowling"
	"github.com/tenpin/tenpin/pkg/types"
)

// GamesSheet is the worksheet WriteXLSX fills.
const GamesSheet = "Games"

// WriteXLSX writes games to w as a workbook with one row per game: bowler,
// game, score, the frame tally, then the running total after each frame.
func WriteXLSX(w io.Writer, games []types.ScoredGame) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", GamesSheet); err != nil {
		return fmt.Errorf("export: %w", err)
	}

	header := []any{"Bowler", "Game", "Score", "Strikes", "Spares", "Opens"}
	for n := 1; n <= bowling.Frames; n++ {
		header = append(header, "F"+strconv.Itoa(n))
	}
	if err := f.SetSheetRow(GamesSheet, "A1", &header); err != nil {
		return fmt.Errorf("export: header: %w", err)
	}

	for i, g := range games {
		id := g.ID
		if id == "" {
			id = "game-" + strconv.Itoa(i+1)
		}
		row := []any{g.Bowler, id, g.Score, g.Strikes, g.Spares, g.Opens}
		for _, total := range bowling.Running(g.Throws) {
			row = append(row, total)
		}

		cellName, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("export: %w", err)
		}
		if err := f.SetSheetRow(GamesSheet, cellName, &row); err != nil {
			return fmt.Errorf("export: row %d: %w", i+2, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("export: write xlsx: %w", err)
	}
	return nil
}
