// Package bowling scores completed games of ten-pin bowling.
//
// bowling.go provides the pure Score(throws) function. A game is given as the
// flat list of pin counts for every ball actually thrown, so a strike is a
// single 10 and never the pair (10, 0).
//
// operator.go expresses the bonus rule as a linear operator. For n throws the
// operator A is an n×n upper-triangular matrix with a unit diagonal; an
// off-diagonal 1 at A[i][j] means throw j is counted again as a bonus for the
// frame owning row i. The score is J·A·F where J is a row of ones and F the
// throw vector:
//
//	            [1 1 1]   [10]
//	[1 1 1]  ·  [0 1 0] · [ 1]  =  14
//	            [0 0 1]   [ 1]
//
// Only the off-diagonal marks are stored (at most two per frame); Dense and
// DenseScore materialise the full matrix for cross-checking.
//
// frame.go walks the first nine frames and classifies each as a strike, spare
// or open frame. Tenth-frame throws never add marks; their fill balls count
// through the diagonal only.
//
// validate.go is optional strict checking. Score itself assumes a legal game
// and never panics on malformed input.
package bowling
