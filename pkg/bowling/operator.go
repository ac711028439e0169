package bowling

// Mark is one off-diagonal 1 in the bonus operator: throw Col is credited
// again to the frame whose bonus row is Row.
type Mark struct {
	Row int
	Col int
}

// Operator is the bonus operator A for one game. The unit diagonal is
// implicit; only the off-diagonal marks are stored.
type Operator struct {
	n     int
	marks []Mark
}

// BuildOperator walks the first nine frames of throws and places the bonus
// marks. A strike marks the next two balls on its own row; a spare marks the
// next ball on the row of its second ball. Marks whose column would fall past
// the last throw are dropped.
func BuildOperator(throws []int) *Operator {
	a := &Operator{
		n:     len(throws),
		marks: make([]Mark, 0, StrikeBonus*(Frames-1)),
	}
	for _, f := range Walk(throws) {
		switch f.Kind {
		case Strike:
			a.mark(f.Ball, StrikeBonus)
		case Spare:
			a.mark(f.Ball+1, SpareBonus)
		}
	}
	return a
}

// mark sets A[row][row+1..row+depth], skipping columns outside the game.
func (a *Operator) mark(row, depth int) {
	for d := 1; d <= depth; d++ {
		col := row + d
		if col >= a.n {
			return
		}
		a.marks = append(a.marks, Mark{Row: row, Col: col})
	}
}

// Size returns n, the number of throws the operator was built for.
func (a *Operator) Size() int { return a.n }

// Marks returns a copy of the off-diagonal marks in row-major order.
func (a *Operator) Marks() []Mark {
	out := make([]Mark, len(a.marks))
	copy(out, a.marks)
	return out
}

// At returns A[i][j]. Indices outside the matrix read as 0.
func (a *Operator) At(i, j int) int {
	if i < 0 || j < 0 || i >= a.n || j >= a.n {
		return 0
	}
	if i == j {
		return 1
	}
	for _, m := range a.marks {
		if m.Row == i && m.Col == j {
			return 1
		}
	}
	return 0
}

// Apply evaluates J·A·F for the throw vector f: every pin once, plus one more
// time for each mark pointing at its throw. f must have the operator's size.
func (a *Operator) Apply(f []int) int {
	total := 0
	for _, pins := range f[:a.n] {
		total += pins
	}
	for _, m := range a.marks {
		total += f[m.Col]
	}
	return total
}

// Product returns the vector A·F: each throw's pins plus the bonus pins
// credited on its row. Summing it gives Apply(f).
func (a *Operator) Product(f []int) []int {
	out := make([]int, a.n)
	copy(out, f[:a.n])
	for _, m := range a.marks {
		out[m.Row] += f[m.Col]
	}
	return out
}

// Dense materialises A as an n×n matrix.
func (a *Operator) Dense() [][]int {
	out := make([][]int, a.n)
	for i := range out {
		out[i] = make([]int, a.n)
		out[i][i] = 1
	}
	for _, m := range a.marks {
		out[m.Row][m.Col] = 1
	}
	return out
}

// DenseScore computes J·(A·F) by plain matrix multiplication. It is the slow
// reference path used to cross-check Apply.
func DenseScore(a [][]int, f []int) int {
	total := 0
	for i := range a {
		row := 0
		for j, w := range a[i] {
			row += w * f[j]
		}
		total += row
	}
	return total
}
