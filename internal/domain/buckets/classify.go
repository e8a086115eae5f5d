package buckets

import (
	"context"
	"fmt"

	"github.com/omahatools/bucketd/internal/domain/card"
)

// Classifier turns a hole string and a board string into the fixed-order
// bucket vector.
type Classifier interface {
	// Classify evaluates every bucket predicate for one (hole, board) pair.
	// Classification is all-or-nothing: a malformed input yields an error and
	// no partial vector.
	Classify(ctx context.Context, hole, board string) (Vector, error)
}

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithStrictInput toggles cardinality checking: hole/board sizes and card
// uniqueness across the union. Callers that pre-validate rows can disable it.
func WithStrictInput(strict bool) Option {
	return func(e *Engine) {
		e.strict = strict
	}
}

// Engine implements Classifier. It holds no per-hand state; a single Engine
// is safe for concurrent use from any number of goroutines.
type Engine struct {
	strict bool
}

// NewEngine creates an Engine with configuration options.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		strict: true, // reject malformed cardinality by default
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Supported input sizes: 4 or 5 hole cards (PLO4/PLO5), 3 to 5 board cards
// (flop, turn, river).
const (
	minHoleCards  = 4
	maxHoleCards  = 5
	minBoardCards = 3
	maxBoardCards = 5
)

// validate enforces the cardinality contract on parsed cards.
func validate(hole, board []card.Card) error {
	if len(hole) < minHoleCards || len(hole) > maxHoleCards {
		return fmt.Errorf("%w: %d hole cards, want %d or %d",
			ErrCardinality, len(hole), minHoleCards, maxHoleCards)
	}
	if len(board) < minBoardCards || len(board) > maxBoardCards {
		return fmt.Errorf("%w: %d board cards, want %d to %d",
			ErrCardinality, len(board), minBoardCards, maxBoardCards)
	}
	var seen [15][card.NumSuits]bool
	for _, c := range append(append([]card.Card{}, hole...), board...) {
		if seen[c.Rank][c.Suit] {
			return fmt.Errorf("%w: duplicate card %s", ErrCardinality, c)
		}
		seen[c.Rank][c.Suit] = true
	}
	return nil
}

// Classify parses both strings, validates cardinality and evaluates all
// bucket predicates through a single per-call context.
func (e *Engine) Classify(ctx context.Context, hole, board string) (Vector, error) {
	if err := ctx.Err(); err != nil {
		return Vector{}, fmt.Errorf("context cancelled: %w", err)
	}
	holeCards, err := card.Parse(hole)
	if err != nil {
		return Vector{}, fmt.Errorf("hole %q: %w", hole, err)
	}
	boardCards, err := card.Parse(board)
	if err != nil {
		return Vector{}, fmt.Errorf("board %q: %w", board, err)
	}
	if e.strict {
		if err := validate(holeCards, boardCards); err != nil {
			return Vector{}, err
		}
	}
	return classify(newHandContext(holeCards, boardCards)), nil
}

// Straight tier predicates over the cached scan results.

func (ctx *handContext) straight() bool { return ctx.straightVal > 3 }

// straightNut reports whether the hand's straight value equals the n-th best
// board-possible straight (0 = nuts).
func (ctx *handContext) straightNut(n int) bool {
	if ctx.straightVal < 3 {
		return false
	}
	if len(ctx.possible) <= n {
		return false
	}
	return ctx.straightVal == ctx.possible[n]
}

// straightDraw: the window scan found a one-away draw but no made straight.
func (ctx *handContext) straightDraw() bool {
	return len(ctx.board) < 5 && ctx.straightVal == 1
}

func (ctx *handContext) noDraw() bool {
	return !ctx.flushDraw() && !ctx.straightDraw()
}

// classify assembles the full vector in contract order.
func classify(ctx *handContext) Vector {
	var v Vector
	outs := ctx.straightOuts

	v.set(FlushRoyal, ctx.flushRoyal())
	v.set(Flush, ctx.flush())
	v.set(NutFlush, ctx.nutFlush())
	v.set(NutFlush2, ctx.nutFlush2())
	v.set(NotNutFlush, ctx.notNutFlush())
	v.set(FlushDraw, ctx.flushDraw())
	v.set(NotNutFlushDraw, ctx.notNutFlushDraw())
	v.set(NutFlushDraw, ctx.nutFlushDraw())
	v.set(NutFlushDraw2, ctx.nutFlushDraw2())
	v.set(Set, ctx.hasSet())
	v.set(TopSet, ctx.topSet())
	v.set(MiddleSet, ctx.middleSet())
	v.set(BottomSet, ctx.bottomSet())
	v.set(TwoSets, ctx.twoSets())
	v.set(Trips, ctx.trips())
	v.set(Quads, ctx.quads())
	v.set(FullHouse, ctx.fullHouse())
	v.set(FullHouseNut, ctx.fullHouseNut())
	v.set(FullHouseNotNut, ctx.fullHouseNotNut())
	v.set(PocketPair, ctx.pocketPair())
	v.set(Pair, ctx.pair())
	v.set(TopPair, ctx.topPair())
	v.set(MiddlePair, ctx.middlePair())
	v.set(BottomPair, ctx.bottomPair())
	v.set(TopPairTopKicker, ctx.topPairTopKicker())
	v.set(TwoPairs, ctx.twoPairs())
	v.set(TopTwoPairs, ctx.topTwoPairs())
	v.set(TopAndBottomPairs, ctx.topAndBottomPairs())
	v.set(BottomTwoPairs, ctx.bottomTwoPairs())
	v.set(ThreePairs, ctx.threePairs())
	v.set(OverPair, ctx.overPair())
	v.set(TwoOverPairs, ctx.twoOverPairs())
	v.set(OverCard, ctx.overCard())
	v.set(StraightFlush, ctx.straightFlush())
	v.set(StraightNut, ctx.straightNut(0))
	v.set(StraightNut2, ctx.straightNut(1))
	v.set(StraightNut3, ctx.straightNut(2))
	v.set(Straight, ctx.straight())
	v.set(StraightDraw, ctx.straightDraw())
	v.set(NoDraw, ctx.noDraw())
	v.set(BackdoorStraightDraw, backdoorStraightDraw(ctx.presence, ctx.board))
	v.set(BackdoorStraightDraw4, backdoorWindowCount(ctx.presence, ctx.board) >= 4)
	v.set(BackdoorFlushDraw, ctx.bdfdCount() > 0)
	v.set(BackdoorFlushDraw1, ctx.bdfdCount() == 1)
	v.set(BackdoorFlushDraw2, ctx.bdfdCount() == 2)
	v.set(BackdoorFlushDrawNut, ctx.bdfdNut())
	v.set(Gutshot, outs == 4)
	v.set(OESD, outs == 8)
	v.set(Wrap, outs > 8)
	v.set(Wrap9, outs == 9)
	v.set(Wrap12, outs == 12)
	v.set(Wrap13, outs == 13)
	v.set(MinorWrap, outs > 8 && outs <= 13)
	v.set(Wrap16, outs == 16)
	v.set(Wrap17, outs == 17)
	v.set(Wrap20, outs == 20)
	v.set(MajorWrap, outs >= 16)
	v.set(FlushBlocker, ctx.flushBlocker())
	v.set(FlushBlockerNut, ctx.flushBlockerNut())
	v.set(FlushBlockerNut2, ctx.flushBlockerNut2())
	v.set(FlushDrawBlocker, ctx.flushDrawBlocker())
	v.set(FlushDrawBlockerNut, ctx.flushDrawBlockerNut())
	v.set(FlushDrawBlocker1, !ctx.flushDraw() && ctx.flushDrawBlockersCount() == 1)
	v.set(FlushDrawBlocker2, !ctx.flushDraw() && ctx.flushDrawBlockersCount() == 2)
	v.set(FlushDrawBlockerNut2, ctx.flushDrawBlockerNut2())

	sb := ctx.straightBlockersCount()
	v.set(StraightBlocker, sb > 0)
	v.set(StraightBlocker1, sb == 1)
	v.set(StraightBlocker2, sb == 2)
	v.set(StraightBlocker3, sb == 3)
	v.set(StraightBlocker4, sb == 4)

	sbn := ctx.straightBlockersNutCount()
	v.set(StraightBlockerNut, sbn > 0)
	v.set(StraightBlockerNut1, sbn == 1)
	v.set(StraightBlockerNut2, sbn == 2)
	v.set(StraightBlockerNut3, sbn == 3)
	v.set(StraightBlockerNut4, sbn == 4)

	sdb := ctx.straightDrawBlockersCount()
	v.set(StraightDrawBlocker, sdb > 0)
	v.set(StraightDrawBlocker1, sdb == 1)
	v.set(StraightDrawBlocker2, sdb == 2)
	v.set(StraightDrawBlocker3, sdb == 3)
	v.set(StraightDrawBlocker4, sdb == 4)

	sdbn := ctx.straightDrawBlockersNutCount()
	v.set(StraightDrawBlockerNut, sdbn > 0)
	v.set(StraightDrawBlockerNut1, sdbn == 1)
	v.set(StraightDrawBlockerNut2, sdbn == 2)
	v.set(StraightDrawBlockerNut3, sdbn == 3)
	v.set(StraightDrawBlockerNut4, sdbn == 4)

	return v
}
