package sheet

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/tenpin/tenpin/pkg/bowling"
	"github.com/tenpin/tenpin/pkg/types"
)

// parseXLSX reads games from the first worksheet of a workbook. The first
// row is a header naming the columns: "bowler" and "id" are optional, and
// the throws come either from a "sheet" column holding a whole game or from
// frame columns "1" to "10" holding one frame each.
func parseXLSX(data []byte) ([]types.Game, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("xlsx has no sheets")
	}
	name := sheets[0]
	rows, err := f.GetRows(name)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", name, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", name)
	}

	cols, err := headerColumns(rows[0])
	if err != nil {
		return nil, fmt.Errorf("sheet %q: %w", name, err)
	}

	var games []types.Game
	for r, row := range rows[1:] {
		line := r + 2
		notation := cols.notation(row)
		if strings.TrimSpace(notation) == "" {
			continue
		}
		throws, err := ParseNotation(notation)
		if err != nil {
			return nil, fmt.Errorf("sheet %q row %d: %w", name, line, err)
		}
		games = append(games, types.Game{
			ID:     cell(row, cols.id),
			Bowler: cell(row, cols.bowler),
			Throws: throws,
		})
	}
	return games, nil
}

// columns maps header names to column indexes; -1 when absent.
type columns struct {
	bowler int
	id     int
	sheet  int
	frames []int
}

func headerColumns(header []string) (columns, error) {
	c := columns{bowler: -1, id: -1, sheet: -1}
	frames := make(map[int]int)
	for i, h := range header {
		switch h = strings.ToLower(strings.TrimSpace(h)); h {
		case "bowler":
			c.bowler = i
		case "id":
			c.id = i
		case "sheet", "throws":
			c.sheet = i
		default:
			if n, err := strconv.Atoi(h); err == nil && n >= 1 && n <= bowling.Frames {
				frames[n] = i
			}
		}
	}
	if c.sheet >= 0 {
		return c, nil
	}
	for n := 1; n <= bowling.Frames; n++ {
		i, ok := frames[n]
		if !ok {
			return c, fmt.Errorf("header needs a sheet column or frame columns 1-%d", bowling.Frames)
		}
		c.frames = append(c.frames, i)
	}
	return c, nil
}

// notation joins the cells holding the game's throws.
func (c columns) notation(row []string) string {
	if c.sheet >= 0 {
		return cell(row, c.sheet)
	}
	parts := make([]string, 0, len(c.frames))
	for _, i := range c.frames {
		parts = append(parts, cell(row, i))
	}
	return strings.Join(parts, " ")
}

// cell returns row[i], or "" when the row is shorter or i is -1.
func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
