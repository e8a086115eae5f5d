package buckets

import "github.com/omahatools/bucketd/internal/domain/card"

// Backdoor straight draws are evaluated on the flop only: a window with 2-3
// hole ranks and exactly one board rank can still arrive runner-runner.

// backdoorKilled is returned per assignment when the hand already has a made
// straight or a live draw in some window; any such assignment disqualifies
// the whole backdoor classification.
const backdoorKilled = -1

// backdoorSingle scores one resolved vector: backdoorKilled, 1 (at least one
// qualifying runner-runner window) or 0.
func backdoorSingle(v presenceVector) int {
	res := 0
	for i := 0; i <= 9; i++ {
		c1, c2 := 0, 0
		for j := i; j < i+5; j++ {
			switch v[j] {
			case presenceHole:
				c1++
			case presenceBoard:
				c2++
			}
		}
		if (c1 == 2 || c1 == 3) && (c2 == 3 || c2 == 2) {
			return backdoorKilled
		}
		if c1 >= 2 && c2 == 1 {
			res = 1
		}
	}
	return res
}

// backdoorStraightDraw reports a runner-runner straight draw. A made straight
// or live draw under any resolution vetoes the classification.
func backdoorStraightDraw(v presenceVector, board []card.Card) bool {
	if len(board) > 3 {
		return false
	}
	killed := false
	found := false
	v.eachResolution(func(res presenceVector) {
		switch backdoorSingle(res) {
		case backdoorKilled:
			killed = true
		case 1:
			found = true
		}
	})
	return !killed && found
}

// backdoorWindowCount counts the distinct qualifying runner-runner windows
// across all resolutions. Unlike the presence check above, an assignment
// with a made/draw window simply contributes no windows rather than vetoing
// the union.
func backdoorWindowCount(v presenceVector, board []card.Card) int {
	if len(board) > 3 {
		return 0
	}
	var windows [10]bool
	v.eachResolution(func(res presenceVector) {
		var local [10]bool
		for i := 0; i <= 9; i++ {
			c1, c2 := 0, 0
			for j := i; j < i+5; j++ {
				switch res[j] {
				case presenceHole:
					c1++
				case presenceBoard:
					c2++
				}
			}
			if (c1 == 2 || c1 == 3) && (c2 == 3 || c2 == 2) {
				// Made or live window: this assignment yields nothing.
				return
			}
			if c1 >= 2 && c2 == 1 {
				local[i] = true
			}
		}
		for i, ok := range local {
			if ok {
				windows[i] = true
			}
		}
	})
	count := 0
	for _, ok := range windows {
		if ok {
			count++
		}
	}
	return count
}
