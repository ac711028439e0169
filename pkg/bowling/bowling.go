package bowling

// Game constants for standard ten-pin bowling.
const (
	// Pins is the number of pins standing at the start of a frame.
	Pins = 10

	// Frames is the number of frames in a game.
	Frames = 10

	// StrikeBonus is the number of following balls credited to a strike.
	StrikeBonus = 2

	// SpareBonus is the number of following balls credited to a spare.
	SpareBonus = 1

	// MaxThrows is the longest legal game: nine open or spare frames plus
	// three balls in the tenth.
	MaxThrows = 2*(Frames-1) + 3

	// PerfectScore is twelve consecutive strikes.
	PerfectScore = 300
)

// Score returns the total score of a completed game.
//
// throws must be a legal completed game; it is not checked. Bonus balls that
// would fall past the end of throws are ignored, so a truncated game still
// yields a number. Use ScoreStrict when the input is untrusted.
func Score(throws []int) int {
	return BuildOperator(throws).Apply(throws)
}

// ScoreStrict validates throws and scores them. The returned error wraps
// ErrInvalidGame when the sequence is not a legal completed game.
func ScoreStrict(throws []int) (int, error) {
	if err := Validate(throws); err != nil {
		return 0, err
	}
	return Score(throws), nil
}
