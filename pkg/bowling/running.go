package bowling

// Running returns the score sheet's running total after each frame. A
// truncated game yields fewer than ten entries. The last entry of a complete
// game equals Score(throws).
func Running(throws []int) []int {
	rows := BuildOperator(throws).Product(throws)
	n := len(throws)

	out := make([]int, 0, Frames)
	total := 0
	frames := Walk(throws)
	for i, f := range frames {
		end := n
		if i+1 < len(frames) {
			end = frames[i+1].Ball
		} else if len(frames) == Frames-1 {
			end = tenthFrame(throws)
		}
		for _, v := range rows[f.Ball:min(end, n)] {
			total += v
		}
		out = append(out, total)
	}

	if start := tenthFrame(throws); len(frames) == Frames-1 && start < n {
		for _, v := range rows[start:] {
			total += v
		}
		out = append(out, total)
	}
	return out
}

// CardFrame is one box on a score sheet.
type CardFrame struct {
	Number  int   `json:"number"`
	Kind    Kind  `json:"-"`
	Pins    []int `json:"pins"`
	Running int   `json:"running"`
}

// Card splits throws into sheet frames with their running totals. Frame ten
// carries its fill balls; its Kind comes from its first two balls.
func Card(throws []int) []CardFrame {
	running := Running(throws)
	frames := Walk(throws)
	n := len(throws)

	out := make([]CardFrame, 0, len(running))
	for i, f := range frames {
		end := f.Ball + 2
		if f.Kind == Strike {
			end = f.Ball + 1
		}
		out = append(out, CardFrame{
			Number:  f.Number,
			Kind:    f.Kind,
			Pins:    throws[f.Ball:min(end, n)],
			Running: running[i],
		})
	}
	if len(running) == Frames {
		tenth := throws[tenthFrame(throws):]
		k := Open
		switch {
		case tenth[0] == Pins:
			k = Strike
		case len(tenth) > 1 && tenth[0]+tenth[1] == Pins:
			k = Spare
		}
		out = append(out, CardFrame{Number: Frames, Kind: k, Pins: tenth, Running: running[Frames-1]})
	}
	return out
}
