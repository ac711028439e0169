package sheet

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tenpin/tenpin/pkg/types"
)

// entry is one game in a YAML sheet file. Either Throws or Sheet is set.
type entry struct {
	ID     string `yaml:"id"`
	Bowler string `yaml:"bowler"`
	Throws []int  `yaml:"throws"`
	Sheet  string `yaml:"sheet"`
}

// fileDoc is the top level of a YAML sheet file.
type fileDoc struct {
	Games []entry `yaml:"games"`
}

// ReadFile loads every game in the file at path.
//
// Files ending in .yaml or .yml hold a `games:` list whose entries carry
// either `throws` or `sheet`. Files ending in .xlsx are workbooks whose first
// worksheet has a header row. Anything else is read as text: one game per
// line, optionally prefixed with "bowler:", with # starting a comment.
func ReadFile(path string) ([]types.Game, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("sheet: read %q: %w", path, err)
	}

	var games []types.Game
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		games, err = parseYAML(data)
	case ".xlsx":
		games, err = parseXLSX(data)
	default:
		games, err = parseText(data)
	}
	if err != nil {
		return nil, fmt.Errorf("sheet: %s: %w", path, err)
	}
	return games, nil
}

func parseYAML(data []byte) ([]types.Game, error) {
	var doc fileDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	games := make([]types.Game, 0, len(doc.Games))
	for i, e := range doc.Games {
		g := types.Game{ID: e.ID, Bowler: e.Bowler, Throws: e.Throws}
		switch {
		case e.Sheet != "" && len(e.Throws) > 0:
			return nil, fmt.Errorf("games[%d]: set throws or sheet, not both", i)
		case e.Sheet != "":
			throws, err := ParseNotation(e.Sheet)
			if err != nil {
				return nil, fmt.Errorf("games[%d]: %w", i, err)
			}
			g.Throws = throws
		case len(e.Throws) == 0:
			return nil, fmt.Errorf("games[%d]: throws or sheet is required", i)
		}
		games = append(games, g)
	}
	return games, nil
}

func parseText(data []byte) ([]types.Game, error) {
	var games []types.Game
	sc := bufio.NewScanner(bytes.NewReader(data))
	for n := 1; sc.Scan(); n++ {
		line := sc.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		var bowler string
		if name, rest, ok := strings.Cut(line, ":"); ok {
			bowler, line = strings.TrimSpace(name), rest
		}
		throws, err := ParseNotation(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n, err)
		}
		games = append(games, types.Game{Bowler: bowler, Throws: throws})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return games, nil
}
