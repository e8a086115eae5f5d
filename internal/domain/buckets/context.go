package buckets

import "github.com/omahatools/bucketd/internal/domain/card"

// handContext carries everything derived from one (hole, board) pair. It is
// built once per classification and passed by reference into the predicate
// methods, so suit counts, rank multisets and the straight scans are never
// recomputed per predicate. Contexts are created, consumed and discarded
// within a single call; nothing here outlives the classification.
type handContext struct {
	hole  []card.Card
	board []card.Card

	holeRanks  [15]int // rank value -> count among hole cards
	boardRanks [15]int // rank value -> count among board cards
	holeSuits  [card.NumSuits]int
	boardSuits [card.NumSuits]int

	boardMax card.Rank
	boardMin card.Rank

	presence presenceVector

	// Straight results, resolved once across all Both assignments.
	straightVal  int
	straightOuts int
	possible     []int // board-possible straight top ranks, best first

	// Shared ranks between a once-only hole rank and a once-only board rank;
	// the basis of every pair-tier predicate.
	sharedPairs []card.Rank
}

// newHandContext computes the derived data for a (hole, board) pair.
func newHandContext(hole, board []card.Card) *handContext {
	ctx := &handContext{hole: hole, board: board}

	for _, c := range hole {
		ctx.holeRanks[c.Rank]++
		ctx.holeSuits[c.Suit]++
	}
	for i, c := range board {
		ctx.boardRanks[c.Rank]++
		ctx.boardSuits[c.Suit]++
		if i == 0 || c.Rank > ctx.boardMax {
			ctx.boardMax = c.Rank
		}
		if i == 0 || c.Rank < ctx.boardMin {
			ctx.boardMin = c.Rank
		}
	}

	ctx.presence = buildPresence(hole, board)
	ctx.straightVal = straightValue(ctx.presence)
	ctx.straightOuts = straightDrawOuts(ctx.presence, hole, board)
	ctx.possible = possibleStraights(board)
	ctx.sharedPairs = sharedSinglePairs(ctx)

	return ctx
}

// sharedSinglePairs intersects hole ranks occurring exactly once in the hole
// with board ranks occurring exactly once on the board. Scanned from Ace
// down so the result is deterministic regardless of input card order.
func sharedSinglePairs(ctx *handContext) []card.Rank {
	var res []card.Rank
	for r := card.Ace; r >= card.Two; r-- {
		if ctx.holeRanks[r] == 1 && ctx.boardRanks[r] == 1 {
			res = append(res, r)
		}
	}
	return res
}

// holeSuited returns the hole cards of one suit.
func (ctx *handContext) holeSuited(s card.Suit) []card.Card {
	var res []card.Card
	for _, c := range ctx.hole {
		if c.Suit == s {
			res = append(res, c)
		}
	}
	return res
}

// boardSuited returns the board cards of one suit.
func (ctx *handContext) boardSuited(s card.Suit) []card.Card {
	var res []card.Card
	for _, c := range ctx.board {
		if c.Suit == s {
			res = append(res, c)
		}
	}
	return res
}

// holeHas reports whether the hole contains the exact card.
func (ctx *handContext) holeHas(r card.Rank, s card.Suit) bool {
	for _, c := range ctx.hole {
		if c.Rank == r && c.Suit == s {
			return true
		}
	}
	return false
}

// boardHas reports whether the board contains the exact card.
func (ctx *handContext) boardHas(r card.Rank, s card.Suit) bool {
	for _, c := range ctx.board {
		if c.Rank == r && c.Suit == s {
			return true
		}
	}
	return false
}
