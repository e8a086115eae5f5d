package buckets

import "github.com/omahatools/bucketd/internal/domain/card"

// Rank bitmasks are MSB-first over the 14 presence slots: bit (13-i) stands
// for slot i, so the Ace-low slot is the top bit and Ace-high the bottom one.
const topSlotBit uint16 = 1 << 13

// rankBit returns the mask bit for a rank's high slot.
func rankBit(r card.Rank) uint16 { return topSlotBit >> (uint(r) - 1) }

// straightValueSingle scores a fully resolved vector. It scans 5-rank
// windows from Ace-high down to the wheel; a window is a completed straight
// only with exactly 2 hole ranks and 3 board ranks (the Omaha use-2 rule,
// the single point of change if other use-counts are ever needed). The
// return value is the top rank of the best window, 1 when only a one-away
// draw window exists, 0 otherwise.
func straightValueSingle(v presenceVector) int {
	hasDraw := false
	for i := 13; i >= 4; i-- {
		c1, c2 := 0, 0
		for j := i; j > i-5; j-- {
			switch v[j] {
			case presenceHole:
				c1++
			case presenceBoard:
				c2++
			}
		}
		if c1 == 2 && c2 == 3 {
			return i + 1
		}
		if c1 >= 2 && c2 == 2 {
			hasDraw = true
		}
	}
	if hasDraw {
		return 1
	}
	return 0
}

// straightValue resolves ambiguity by taking the maximum score across all
// assignments of the Both slots.
func straightValue(v presenceVector) int {
	best := 0
	v.eachResolution(func(res presenceVector) {
		if val := straightValueSingle(res); val > best {
			best = val
		}
	})
	return best
}

// straightDrawMaskSingle flags, per resolved vector, the ranks that complete
// a straight for the hand. A made window cancels the whole assignment. A
// 2-hole/2-board window flags its single missing rank; a 3-hole/2-board
// window flags the hole ranks themselves (pairing the board completes it).
func straightDrawMaskSingle(v presenceVector) uint16 {
	var res uint16
	for i := 0; i <= 9; i++ {
		missing := -1
		c1, c2 := 0, 0
		var holeBits uint16
		for j := i; j < i+5; j++ {
			switch v[j] {
			case presenceNone:
				missing = j
			case presenceHole:
				c1++
				holeBits |= topSlotBit >> j
			case presenceBoard:
				c2++
			}
		}
		switch {
		case c1 == 2 && c2 == 3:
			return 0
		case c1 == 2 && c2 == 2:
			res |= topSlotBit >> missing
		case c1 == 3 && c2 == 2:
			res |= holeBits
		}
	}
	return res
}

// straightDrawOuts counts straight outs: four per flagged rank, minus the
// flagged-rank cards already visible in the hand or on the board. Draws are
// only meaningful before the river.
func straightDrawOuts(v presenceVector, hole, board []card.Card) int {
	if len(board) == 5 {
		return 0
	}
	var mask uint16
	v.eachResolution(func(res presenceVector) {
		mask |= straightDrawMaskSingle(res)
	})
	if mask == 0 {
		return 0
	}
	outs := 0
	for i := 0; i < 14; i++ {
		if mask&(topSlotBit>>i) != 0 {
			outs += 4
		}
	}
	for _, c := range hole {
		if mask&rankBit(c.Rank) != 0 {
			outs--
		}
	}
	for _, c := range board {
		if mask&rankBit(c.Rank) != 0 {
			outs--
		}
	}
	return outs
}

// boardRankSet marks board rank values 1..14, duplicating the Ace low.
func boardRankSet(board []card.Card) [15]bool {
	var set [15]bool
	for _, c := range board {
		set[c.Rank] = true
	}
	set[1] = set[card.Ace]
	return set
}

// possibleStraights lists the top ranks of every board-possible straight
// window (3+ board ranks inside the window), best first. The hand's achieved
// straight value is compared against this list for the nut tiers.
func possibleStraights(board []card.Card) []int {
	set := boardRankSet(board)
	var res []int
	for i := 14; i >= 4; i-- {
		c := 0
		for j := i; j > i-5; j-- {
			if set[j] {
				c++
			}
		}
		if c >= 3 {
			res = append(res, i)
		}
	}
	return res
}
