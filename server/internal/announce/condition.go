package announce

import (
	"strconv"
	"strings"

	"github.com/tenpin/tenpin/pkg/bowling"
	"github.com/tenpin/tenpin/pkg/types"
)

// evalCondition evaluates a rule condition string against a scored game.
//
// Supported expressions (field operator value):
//
//	score >= 300
//	score < 100
//	strikes >= 9
//	spares > 5
//	opens == 0
//	clean == true
//
// A clean game has no open frames. The opens and clean fields never fire for
// a game shorter than ten frames. Returns (fires bool, triggering value).
// Returns (false, 0) if the expression cannot be parsed or the field is unknown.
func evalCondition(cond string, g *types.ScoredGame) (bool, float64) {
	parts := strings.Fields(cond)
	if len(parts) != 3 {
		return false, 0
	}
	field, op, rhs := parts[0], parts[1], parts[2]

	if (field == "clean" || field == "opens") && !complete(g) {
		return false, 0
	}

	if field == "clean" {
		want, err := strconv.ParseBool(rhs)
		if err != nil {
			return false, 0
		}
		clean := g.Opens == 0
		switch op {
		case "==":
			return clean == want, float64(g.Opens)
		case "!=":
			return clean != want, float64(g.Opens)
		}
		return false, 0
	}

	v, ok := numericField(field, g)
	if !ok {
		return false, 0
	}
	threshold, err := strconv.ParseFloat(rhs, 64)
	if err != nil {
		return false, 0
	}
	return compare(v, op, threshold), v
}

// complete reports whether all ten frames of g were bowled.
func complete(g *types.ScoredGame) bool {
	return len(bowling.Running(g.Throws)) == bowling.Frames
}

func numericField(field string, g *types.ScoredGame) (float64, bool) {
	switch field {
	case "score":
		return float64(g.Score), true
	case "strikes":
		return float64(g.Strikes), true
	case "spares":
		return float64(g.Spares), true
	case "opens":
		return float64(g.Opens), true
	default:
		return 0, false
	}
}

func compare(v float64, op string, threshold float64) bool {
	switch op {
	case ">":
		return v > threshold
	case ">=":
		return v >= threshold
	case "<":
		return v < threshold
	case "<=":
		return v <= threshold
	case "==":
		return v == threshold
	case "!=":
		return v != threshold
	default:
		return false
	}
}
