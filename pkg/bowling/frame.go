package bowling

// Kind classifies how a frame was closed.
type Kind int

// Frame kinds in detection order: a strike always wins over a spare.
const (
	Open Kind = iota
	Spare
	Strike
)

// String returns the lower-case name of k.
func (k Kind) String() string {
	switch k {
	case Strike:
		return "strike"
	case Spare:
		return "spare"
	default:
		return "open"
	}
}

// Frame is one of the first nine frames as seen by the walker.
type Frame struct {
	// Number is the 1-based frame number.
	Number int

	// Ball is the index into the throw list of the frame's first ball.
	Ball int

	Kind Kind
}

// Walk classifies the frames that can carry a bonus: at most the first nine.
// It stops early when the throws run out. A spare needs both balls present;
// a lone trailing ball is reported as an open frame.
func Walk(throws []int) []Frame {
	n := len(throws)
	frames := make([]Frame, 0, Frames-1)

	for b, k := 0, 0; b < n && k < Frames-1; k++ {
		f := Frame{Number: k + 1, Ball: b}
		switch {
		case throws[b] == Pins:
			f.Kind = Strike
			b++
		case b+1 < n && throws[b]+throws[b+1] == Pins:
			f.Kind = Spare
			b += 2
		default:
			f.Kind = Open
			b += 2
		}
		frames = append(frames, f)
	}
	return frames
}

// tenthFrame returns the index of the first ball of frame ten, or len(throws)
// if the game ends before it.
func tenthFrame(throws []int) int {
	frames := Walk(throws)
	if len(frames) < Frames-1 {
		return len(throws)
	}
	last := frames[len(frames)-1]
	if last.Kind == Strike {
		return min(last.Ball+1, len(throws))
	}
	return min(last.Ball+2, len(throws))
}

// Tally counts how the frames of a game were closed. Strikes and spares made
// with tenth-frame fill balls are included.
type Tally struct {
	Strikes int `json:"strikes"`
	Spares  int `json:"spares"`
	Opens   int `json:"opens"`
}

// Count tallies strikes, spares and open frames over all ten frames.
func Count(throws []int) Tally {
	var t Tally
	for _, f := range Walk(throws) {
		switch f.Kind {
		case Strike:
			t.Strikes++
		case Spare:
			t.Spares++
		default:
			t.Opens++
		}
	}

	tenth := throws[tenthFrame(throws):]
	if len(tenth) == 0 {
		return t
	}

	// Pins are reset after every strike or spare in frame ten.
	standing, first, closed := Pins, true, false
	for _, p := range tenth {
		if p >= standing {
			if first {
				t.Strikes++
			} else {
				t.Spares++
			}
			standing, first, closed = Pins, true, true
			continue
		}
		if first {
			standing -= p
			first = false
		} else {
			standing, first = Pins, true
		}
	}
	if !closed {
		t.Opens++
	}
	return t
}
