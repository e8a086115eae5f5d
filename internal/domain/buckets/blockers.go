package buckets

import "github.com/omahatools/bucketd/internal/domain/card"

// Blockers follow one pattern: find the ranks an opponent would need for the
// relevant made hand or draw (restricted to ranks the board does not supply),
// then count the hero's hole cards occupying those ranks. A plain blocker
// additionally requires that the hero does not hold the made hand or draw
// itself; nut tiers restrict the candidate set to the best qualifying window
// or the highest missing card.

// straightBlockerRanks lists the ranks completing any board-possible
// straight. A window with exactly 3 board ranks contributes its missing
// ranks; a window with 4+ contributes every rank in it. nutOnly stops at the
// first (highest) qualifying window.
func straightBlockerRanks(board []card.Card, nutOnly bool) [15]bool {
	set := boardRankSet(board)
	var res [15]bool
	for i := 14; i >= 4; i-- {
		c := 0
		var missing []int
		for j := i; j > i-5; j-- {
			if set[j] {
				c++
			} else {
				missing = append(missing, j)
			}
		}
		switch {
		case c == 3:
			for _, j := range missing {
				res[j] = true
			}
		case c > 3:
			for j := i; j > i-5; j-- {
				res[j] = true
			}
		default:
			continue
		}
		if nutOnly {
			break
		}
	}
	return res
}

// straightDrawBlockerRanks lists the ranks that would give an opponent a
// straight draw: windows two short of a board straight contribute their
// missing ranks. Windows already board-complete are ignored. nutOnly stops
// at the first qualifying window.
func straightDrawBlockerRanks(board []card.Card, nutOnly bool) [15]bool {
	set := boardRankSet(board)
	var res [15]bool
	for i := 14; i >= 4; i-- {
		c := 0
		var missing []int
		for j := i; j > i-5; j-- {
			if set[j] {
				c++
			} else {
				missing = append(missing, j)
			}
		}
		if c >= 3 {
			continue
		}
		if c == 2 {
			for _, j := range missing {
				res[j] = true
			}
			if nutOnly {
				break
			}
		}
	}
	return res
}

// countHoleIn counts hole cards whose rank value is a candidate. The Ace-low
// candidate slot (1) never matches a hole card, matching the reference
// behavior of the blocker scans.
func (ctx *handContext) countHoleIn(candidates [15]bool) int {
	count := 0
	for _, c := range ctx.hole {
		if candidates[c.Rank] {
			count++
		}
	}
	return count
}

func (ctx *handContext) straightBlockersCount() int {
	return ctx.countHoleIn(straightBlockerRanks(ctx.board, false))
}

func (ctx *handContext) straightBlockersNutCount() int {
	return ctx.countHoleIn(straightBlockerRanks(ctx.board, true))
}

func (ctx *handContext) straightDrawBlockersCount() int {
	return ctx.countHoleIn(straightDrawBlockerRanks(ctx.board, false))
}

func (ctx *handContext) straightDrawBlockersNutCount() int {
	return ctx.countHoleIn(straightDrawBlockerRanks(ctx.board, true))
}

// flushBlockersCount counts hero cards of the board's three-plus suit,
// whether or not the hero has the flush.
func (ctx *handContext) flushBlockersCount() int {
	for s := card.Clubs; s <= card.Spades; s++ {
		if ctx.boardSuits[s] >= 3 {
			return ctx.holeSuits[s]
		}
	}
	return 0
}

func (ctx *handContext) flushBlocker() bool {
	return !ctx.flush() && ctx.flushBlockersCount() > 0
}

// flushBlockerNut: no flush, but the hero holds the nut card of the board's
// flush suit.
func (ctx *handContext) flushBlockerNut() bool {
	if ctx.flush() {
		return false
	}
	for s := card.Clubs; s <= card.Spades; s++ {
		if ctx.boardSuits[s] < 3 {
			continue
		}
		first, _ := ctx.flushMissing(s)
		return ctx.holeHas(first, s)
	}
	return false
}

func (ctx *handContext) flushBlockerNut2() bool {
	if ctx.flush() {
		return false
	}
	for s := card.Clubs; s <= card.Spades; s++ {
		if ctx.boardSuits[s] < 3 {
			continue
		}
		_, second := ctx.flushMissing(s)
		return ctx.holeHas(second, s)
	}
	return false
}

// flushDrawBlockersCount sums hero cards across every two-card board suit.
func (ctx *handContext) flushDrawBlockersCount() int {
	count := 0
	for s := card.Clubs; s <= card.Spades; s++ {
		if ctx.boardSuits[s] == 2 {
			count += ctx.holeSuits[s]
		}
	}
	return count
}

func (ctx *handContext) flushDrawBlocker() bool {
	return !ctx.flushDraw() && ctx.flushDrawBlockersCount() > 0
}

// flushDrawBlockerNut: the hero holds the nut card of some two-card board
// suit.
func (ctx *handContext) flushDrawBlockerNut() bool {
	for s := card.Clubs; s <= card.Spades; s++ {
		if ctx.boardSuits[s] != 2 {
			continue
		}
		first, _ := ctx.flushMissing(s)
		if ctx.holeHas(first, s) {
			return true
		}
	}
	return false
}

func (ctx *handContext) flushDrawBlockerNut2() bool {
	for s := card.Clubs; s <= card.Spades; s++ {
		if ctx.boardSuits[s] != 2 {
			continue
		}
		_, second := ctx.flushMissing(s)
		if ctx.holeHas(second, s) {
			return true
		}
	}
	return false
}
