package buckets

import "github.com/omahatools/bucketd/internal/domain/card"

// A flush needs 3+ board cards and 2+ hole cards of one suit; at most one
// suit can satisfy the board side on a five-card board. A flush draw is the
// same shape with exactly 2 board cards of the suit.

// flushSuit returns the suit completing a made flush, if any.
func (ctx *handContext) flushSuit() (card.Suit, bool) {
	for s := card.Clubs; s <= card.Spades; s++ {
		if ctx.boardSuits[s] >= 3 && ctx.holeSuits[s] >= 2 {
			return s, true
		}
	}
	return 0, false
}

// flushDrawSuit returns the first suit (fixed suit order, so the choice is
// input-order invariant) with a two-card board and two-card hole coverage.
func (ctx *handContext) flushDrawSuit() (card.Suit, bool) {
	for s := card.Clubs; s <= card.Spades; s++ {
		if ctx.boardSuits[s] == 2 && ctx.holeSuits[s] >= 2 {
			return s, true
		}
	}
	return 0, false
}

func (ctx *handContext) flush() bool {
	_, ok := ctx.flushSuit()
	return ok
}

func (ctx *handContext) flushDraw() bool {
	_, ok := ctx.flushDrawSuit()
	return ok
}

// flushMissing walks ranks from Ace down over the board cards of the suit
// and returns the two highest ranks the board does not show. The first is
// the nut card of the suit; whoever holds it has (or draws to) the best
// flush, and whoever merely holds it blocks it.
func (ctx *handContext) flushMissing(s card.Suit) (first, second card.Rank) {
	found := 0
	for r := card.Ace; r >= card.Two; r-- {
		if ctx.boardHas(r, s) {
			continue
		}
		if found == 0 {
			first = r
			found++
			continue
		}
		second = r
		return first, second
	}
	return first, second
}

// nutFlush reports a made flush holding exactly the nut card of the suit.
func (ctx *handContext) nutFlush() bool {
	s, ok := ctx.flushSuit()
	if !ok {
		return false
	}
	first, _ := ctx.flushMissing(s)
	return ctx.holeHas(first, s)
}

// nutFlush2 reports a made flush holding the second nut card but not the first.
func (ctx *handContext) nutFlush2() bool {
	s, ok := ctx.flushSuit()
	if !ok {
		return false
	}
	first, second := ctx.flushMissing(s)
	return ctx.holeHas(second, s) && !ctx.holeHas(first, s)
}

func (ctx *handContext) notNutFlush() bool {
	return ctx.flush() && !ctx.nutFlush()
}

func (ctx *handContext) nutFlushDraw() bool {
	s, ok := ctx.flushDrawSuit()
	if !ok {
		return false
	}
	first, _ := ctx.flushMissing(s)
	return ctx.holeHas(first, s)
}

func (ctx *handContext) nutFlushDraw2() bool {
	s, ok := ctx.flushDrawSuit()
	if !ok {
		return false
	}
	first, second := ctx.flushMissing(s)
	return ctx.holeHas(second, s) && !ctx.holeHas(first, s)
}

func (ctx *handContext) notNutFlushDraw() bool {
	s, ok := ctx.flushDrawSuit()
	if !ok {
		return false
	}
	first, second := ctx.flushMissing(s)
	return !ctx.holeHas(first, s) && !ctx.holeHas(second, s)
}

// suitedStraightValue evaluates the straight scan restricted to one suit's
// cards, which is exactly a straight flush check.
func (ctx *handContext) suitedStraightValue() (int, bool) {
	s, ok := ctx.flushSuit()
	if !ok {
		return 0, false
	}
	v := buildPresence(ctx.holeSuited(s), ctx.boardSuited(s))
	return straightValue(v), true
}

// flushRoyal reports an Ace-high straight flush.
func (ctx *handContext) flushRoyal() bool {
	val, ok := ctx.suitedStraightValue()
	return ok && val == 14
}

// straightFlush reports any straight flush.
func (ctx *handContext) straightFlush() bool {
	val, ok := ctx.suitedStraightValue()
	return ok && val > 3
}

// bdfdCount counts backdoor flush draws on the flop: suits where the hole
// holds two cards and the board shows exactly one.
func (ctx *handContext) bdfdCount() int {
	if len(ctx.board) != 3 {
		return 0
	}
	count := 0
	for s := card.Clubs; s <= card.Spades; s++ {
		if ctx.holeSuits[s] >= 2 && ctx.boardSuits[s] == 1 {
			count++
		}
	}
	return count
}

// bdfdNut reports a backdoor flush draw to the best reasonably achievable
// flush card: the Ace of the suit, or the King when the lone board card of
// the suit is already the Ace.
func (ctx *handContext) bdfdNut() bool {
	if len(ctx.board) != 3 {
		return false
	}
	for s := card.Clubs; s <= card.Spades; s++ {
		if ctx.holeSuits[s] < 2 || ctx.boardSuits[s] != 1 {
			continue
		}
		target := card.Ace
		if ctx.boardSuited(s)[0].Rank == card.Ace {
			target = card.King
		}
		// The hand's highest card of the suit must be the target itself.
		var max card.Rank
		for _, c := range ctx.holeSuited(s) {
			if c.Rank > max {
				max = c.Rank
			}
		}
		if max == target {
			return true
		}
	}
	return false
}
