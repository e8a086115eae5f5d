package buckets

import "github.com/omahatools/bucketd/internal/domain/card"

// The paired-hand engine works on rank multisets only; suits never matter
// here.

// boardPaired reports any rank appearing at least twice on the board.
func (ctx *handContext) boardPaired() bool {
	for r := card.Two; r <= card.Ace; r++ {
		if ctx.boardRanks[r] >= 2 {
			return true
		}
	}
	return false
}

// fullHousePair finds the best 2-from-hole + 3-from-board rank combination
// partitioning into one triple rank and one pair rank, ordered by triple
// rank then pair rank. ok is false when no full house exists.
func (ctx *handContext) fullHousePair() (triple, pair card.Rank, ok bool) {
	hole := ctx.hole
	board := ctx.board
	for i := 0; i < len(hole); i++ {
		for j := i + 1; j < len(hole); j++ {
			h1, h2 := hole[i].Rank, hole[j].Rank
			for a := 0; a < len(board); a++ {
				for b := a + 1; b < len(board); b++ {
					for c := b + 1; c < len(board); c++ {
						var counts [15]int
						counts[h1]++
						counts[h2]++
						counts[board[a].Rank]++
						counts[board[b].Rank]++
						counts[board[c].Rank]++

						var t, p card.Rank
						distinct := 0
						for r := card.Two; r <= card.Ace; r++ {
							switch counts[r] {
							case 0:
								continue
							case 3:
								t = r
							case 2:
								p = r
							}
							distinct++
						}
						if distinct != 2 || t == 0 || p == 0 {
							continue
						}
						if t > triple || (t == triple && p > pair) {
							triple, pair = t, p
							ok = true
						}
					}
				}
			}
		}
	}
	return triple, pair, ok
}

// fullHouse reports a made full house (paired board required).
func (ctx *handContext) fullHouse() bool {
	if !ctx.boardPaired() {
		return false
	}
	_, _, ok := ctx.fullHousePair()
	return ok
}

// fullHouseNut: the triple rank beats the pair rank and is at least the
// board's top rank, so no board pairing makes a better house.
func (ctx *handContext) fullHouseNut() bool {
	if !ctx.boardPaired() {
		return false
	}
	triple, pair, ok := ctx.fullHousePair()
	if !ok {
		return false
	}
	return triple > pair && triple >= ctx.boardMax
}

// fullHouseNotNut is the complement among made full houses.
func (ctx *handContext) fullHouseNotNut() bool {
	if !ctx.boardPaired() {
		return false
	}
	triple, pair, ok := ctx.fullHousePair()
	if !ok {
		return false
	}
	return triple < pair || triple < ctx.boardMax
}

// quads: a tripled board rank matched by a hole card, or a paired board rank
// matched by a hole pocket pair.
func (ctx *handContext) quads() bool {
	for r := card.Two; r <= card.Ace; r++ {
		if ctx.boardRanks[r] == 3 && ctx.holeRanks[r] >= 1 {
			return true
		}
		if ctx.boardRanks[r] == 2 && ctx.holeRanks[r] == 2 {
			return true
		}
	}
	return false
}

// setsCount counts board ranks matched by a hole pocket pair. Sets only
// exist on unpaired boards.
func (ctx *handContext) setsCount() int {
	if ctx.boardPaired() {
		return 0
	}
	count := 0
	for _, c := range ctx.board {
		if ctx.holeRanks[c.Rank] >= 2 {
			count++
		}
	}
	return count
}

func (ctx *handContext) hasSet() bool  { return ctx.setsCount() > 0 }
func (ctx *handContext) twoSets() bool { return ctx.setsCount() >= 2 }

func (ctx *handContext) topSet() bool {
	return !ctx.boardPaired() && ctx.holeRanks[ctx.boardMax] >= 2
}

func (ctx *handContext) middleSet() bool {
	if ctx.boardPaired() {
		return false
	}
	for _, c := range ctx.board {
		if ctx.holeRanks[c.Rank] >= 2 && c.Rank != ctx.boardMin && c.Rank != ctx.boardMax {
			return true
		}
	}
	return false
}

func (ctx *handContext) bottomSet() bool {
	return !ctx.boardPaired() && ctx.holeRanks[ctx.boardMin] >= 2
}

// trips: exactly one hole card matches a board-paired rank, and the hand is
// not already a full house.
func (ctx *handContext) trips() bool {
	if ctx.fullHouse() {
		return false
	}
	matching := 0
	for _, c := range ctx.hole {
		if ctx.boardRanks[c.Rank] == 2 {
			matching++
		}
	}
	return matching == 1
}

// pairedWith reports whether the shared single-rank pairs include r.
func (ctx *handContext) pairedWith(r card.Rank) bool {
	for _, p := range ctx.sharedPairs {
		if p == r {
			return true
		}
	}
	return false
}

func (ctx *handContext) pair() bool { return len(ctx.sharedPairs) == 1 }

func (ctx *handContext) topPair() bool { return ctx.pairedWith(ctx.boardMax) }

// middlePair pairs exactly the second-lowest distinct board rank.
func (ctx *handContext) middlePair() bool {
	if len(ctx.sharedPairs) != 1 {
		return false
	}
	mid := card.Rank(0)
	for _, c := range ctx.board {
		if c.Rank == ctx.boardMin {
			continue
		}
		if mid == 0 || c.Rank < mid {
			mid = c.Rank
		}
	}
	if mid == 0 {
		return false
	}
	return ctx.sharedPairs[0] == mid
}

func (ctx *handContext) bottomPair() bool {
	return len(ctx.sharedPairs) == 1 && ctx.sharedPairs[0] == ctx.boardMin
}

// topPairTopKicker: top pair plus the highest board-absent rank in hand.
func (ctx *handContext) topPairTopKicker() bool {
	if !ctx.topPair() {
		return false
	}
	kicker := card.Ace
	for kicker > card.Two && ctx.boardRanks[kicker] > 0 {
		kicker--
	}
	return ctx.holeRanks[kicker] > 0
}

func (ctx *handContext) twoPairs() bool {
	return ctx.setsCount() == 0 && len(ctx.sharedPairs) >= 2
}

func (ctx *handContext) topTwoPairs() bool {
	if ctx.setsCount() > 0 || len(ctx.sharedPairs) < 2 {
		return false
	}
	first, second := ctx.boardTopTwo()
	return ctx.pairedWith(first) && ctx.pairedWith(second)
}

func (ctx *handContext) topAndBottomPairs() bool {
	if ctx.setsCount() > 0 || len(ctx.sharedPairs) < 2 {
		return false
	}
	_, second := ctx.boardTopTwo()
	return ctx.pairedWith(ctx.boardMax) && ctx.pairedWith(ctx.boardMin) && !ctx.pairedWith(second)
}

func (ctx *handContext) bottomTwoPairs() bool {
	if ctx.setsCount() > 0 || len(ctx.sharedPairs) < 2 {
		return false
	}
	first, second := ctx.boardBottomTwo()
	return ctx.pairedWith(first) && ctx.pairedWith(second) && !ctx.pairedWith(ctx.boardMax)
}

func (ctx *handContext) threePairs() bool {
	return ctx.setsCount() == 0 && len(ctx.sharedPairs) >= 3
}

// boardTopTwo returns the two highest board cards by rank (with
// multiplicity, mirroring a descending sort of the board).
func (ctx *handContext) boardTopTwo() (first, second card.Rank) {
	ranks := ctx.sortedBoardRanksDesc()
	return ranks[0], ranks[1]
}

// boardBottomTwo returns the two lowest board cards by rank.
func (ctx *handContext) boardBottomTwo() (first, second card.Rank) {
	ranks := ctx.sortedBoardRanksDesc()
	return ranks[len(ranks)-1], ranks[len(ranks)-2]
}

func (ctx *handContext) sortedBoardRanksDesc() []card.Rank {
	ranks := make([]card.Rank, 0, len(ctx.board))
	for r := card.Ace; r >= card.Two; r-- {
		for i := 0; i < ctx.boardRanks[r]; i++ {
			ranks = append(ranks, r)
		}
	}
	return ranks
}

// overPairsCount counts distinct hole pocket pairs ranked above the board.
func (ctx *handContext) overPairsCount() int {
	count := 0
	for r := ctx.boardMax + 1; r <= card.Ace; r++ {
		if ctx.holeRanks[r] > 1 {
			count++
		}
	}
	return count
}

func (ctx *handContext) overPair() bool     { return ctx.overPairsCount() >= 1 }
func (ctx *handContext) twoOverPairs() bool { return ctx.overPairsCount() == 2 }

// overCardsCount counts hole cards ranked above the board's top card.
func (ctx *handContext) overCardsCount() int {
	count := 0
	for _, c := range ctx.hole {
		if c.Rank > ctx.boardMax {
			count++
		}
	}
	return count
}

func (ctx *handContext) overCard() bool { return ctx.overCardsCount() > 0 }

// pocketPair reports any duplicated rank within the hole cards.
func (ctx *handContext) pocketPair() bool {
	for r := card.Two; r <= card.Ace; r++ {
		if ctx.holeRanks[r] >= 2 {
			return true
		}
	}
	return false
}
