// Package buckets classifies an Omaha (hole, board) pair into a fixed-order
// vector of boolean hand-class features: made hands, draws, backdoor draws
// and blockers. The classifier is a pure function of its inputs with no
// shared state, safe to call from any number of goroutines.
package buckets

// Bucket identifies one feature in the classification vector. The numeric
// value is the feature's position in the output; it is a versioned contract
// consumed positionally by downstream tools and must not be reordered.
type Bucket int

// Buckets in vector order: flushes, paired hands, straights, draws,
// backdoor draws, then blockers.
const (
	FlushRoyal Bucket = iota
	Flush
	NutFlush
	NutFlush2
	NotNutFlush
	FlushDraw
	NotNutFlushDraw
	NutFlushDraw
	NutFlushDraw2
	Set
	TopSet
	MiddleSet
	BottomSet
	TwoSets
	Trips
	Quads
	FullHouse
	FullHouseNut
	FullHouseNotNut
	PocketPair
	Pair
	TopPair
	MiddlePair
	BottomPair
	TopPairTopKicker
	TwoPairs
	TopTwoPairs
	TopAndBottomPairs
	BottomTwoPairs
	ThreePairs
	OverPair
	TwoOverPairs
	OverCard
	StraightFlush
	StraightNut
	StraightNut2
	StraightNut3
	Straight
	StraightDraw
	NoDraw
	BackdoorStraightDraw
	BackdoorStraightDraw4
	BackdoorFlushDraw
	BackdoorFlushDraw1
	BackdoorFlushDraw2
	BackdoorFlushDrawNut
	Gutshot
	OESD
	Wrap
	Wrap9
	Wrap12
	Wrap13
	MinorWrap
	Wrap16
	Wrap17
	Wrap20
	MajorWrap
	FlushBlocker
	FlushBlockerNut
	FlushBlockerNut2
	FlushDrawBlocker
	FlushDrawBlockerNut
	FlushDrawBlocker1
	FlushDrawBlocker2
	FlushDrawBlockerNut2
	StraightBlocker
	StraightBlocker1
	StraightBlocker2
	StraightBlocker3
	StraightBlocker4
	StraightBlockerNut
	StraightBlockerNut1
	StraightBlockerNut2
	StraightBlockerNut3
	StraightBlockerNut4
	StraightDrawBlocker
	StraightDrawBlocker1
	StraightDrawBlocker2
	StraightDrawBlocker3
	StraightDrawBlocker4
	StraightDrawBlockerNut
	StraightDrawBlockerNut1
	StraightDrawBlockerNut2
	StraightDrawBlockerNut3
	StraightDrawBlockerNut4

	// NumBuckets is the size of the classification vector.
	NumBuckets
)

// Version identifies the bucket enumeration contract. Bump whenever the
// name-to-index mapping above changes.
const Version = "v1"

// bucketNames holds the wire names in vector order.
var bucketNames = [NumBuckets]string{
	FlushRoyal:              "flush_royal",
	Flush:                   "flush",
	NutFlush:                "nut_flush",
	NutFlush2:               "nut_flush2",
	NotNutFlush:             "not_nut_flush",
	FlushDraw:               "flush_draw",
	NotNutFlushDraw:         "not_nut_flush_draw",
	NutFlushDraw:            "nut_flush_draw",
	NutFlushDraw2:           "nut_flush_draw2",
	Set:                     "set",
	TopSet:                  "top_set",
	MiddleSet:               "middle_set",
	BottomSet:               "bottom_set",
	TwoSets:                 "two_sets",
	Trips:                   "trips",
	Quads:                   "quads",
	FullHouse:               "full_house",
	FullHouseNut:            "full_house_nut",
	FullHouseNotNut:         "full_house_not_nut",
	PocketPair:              "pocket_pair",
	Pair:                    "pair",
	TopPair:                 "top_pair",
	MiddlePair:              "middle_pair",
	BottomPair:              "bottom_pair",
	TopPairTopKicker:        "tp_tk",
	TwoPairs:                "two_pairs",
	TopTwoPairs:             "top_two_pairs",
	TopAndBottomPairs:       "top_and_bottom_pairs",
	BottomTwoPairs:          "bottom_two_pairs",
	ThreePairs:              "three_pairs",
	OverPair:                "over_pair",
	TwoOverPairs:            "two_over_pairs",
	OverCard:                "over_card",
	StraightFlush:           "straight_flush",
	StraightNut:             "straight_nut",
	StraightNut2:            "straight_nut2",
	StraightNut3:            "straight_nut3",
	Straight:                "straight",
	StraightDraw:            "straight_draw",
	NoDraw:                  "no_draw",
	BackdoorStraightDraw:    "backdoor_straight_draw",
	BackdoorStraightDraw4:   "backdoor_straight_draw4",
	BackdoorFlushDraw:       "bdfd",
	BackdoorFlushDraw1:      "bdfd1",
	BackdoorFlushDraw2:      "bdfd2",
	BackdoorFlushDrawNut:    "bdfd_nut",
	Gutshot:                 "gutshot",
	OESD:                    "oesd",
	Wrap:                    "wrap",
	Wrap9:                   "wrap9",
	Wrap12:                  "wrap12",
	Wrap13:                  "wrap13",
	MinorWrap:               "minor_wrap",
	Wrap16:                  "wrap16",
	Wrap17:                  "wrap17",
	Wrap20:                  "wrap20",
	MajorWrap:               "major_wrap",
	FlushBlocker:            "flush_blocker",
	FlushBlockerNut:         "flush_blocker_nut",
	FlushBlockerNut2:        "flush_blocker_nut2",
	FlushDrawBlocker:        "flush_draw_blocker",
	FlushDrawBlockerNut:     "flush_draw_blocker_nut",
	FlushDrawBlocker1:       "flush_draw_blocker1",
	FlushDrawBlocker2:       "flush_draw_blocker2",
	FlushDrawBlockerNut2:    "flush_draw_blocker_nut2",
	StraightBlocker:         "straight_blocker",
	StraightBlocker1:        "straight_blocker1",
	StraightBlocker2:        "straight_blocker2",
	StraightBlocker3:        "straight_blocker3",
	StraightBlocker4:        "straight_blocker4",
	StraightBlockerNut:      "straight_blocker_nut",
	StraightBlockerNut1:     "straight_blocker_nut1",
	StraightBlockerNut2:     "straight_blocker_nut2",
	StraightBlockerNut3:     "straight_blocker_nut3",
	StraightBlockerNut4:     "straight_blocker_nut4",
	StraightDrawBlocker:     "straight_draw_blocker",
	StraightDrawBlocker1:    "straight_draw_blocker1",
	StraightDrawBlocker2:    "straight_draw_blocker2",
	StraightDrawBlocker3:    "straight_draw_blocker3",
	StraightDrawBlocker4:    "straight_draw_blocker4",
	StraightDrawBlockerNut:  "straight_draw_blocker_nut",
	StraightDrawBlockerNut1: "straight_draw_blocker_nut1",
	StraightDrawBlockerNut2: "straight_draw_blocker_nut2",
	StraightDrawBlockerNut3: "straight_draw_blocker_nut3",
	StraightDrawBlockerNut4: "straight_draw_blocker_nut4",
}

// String returns the wire name of the bucket.
func (b Bucket) String() string {
	if b < 0 || b >= NumBuckets {
		return "unknown"
	}
	return bucketNames[b]
}

// Names returns the bucket wire names in vector order.
func Names() []string {
	out := make([]string, NumBuckets)
	copy(out, bucketNames[:])
	return out
}

// Lookup resolves a wire name to its bucket, reporting whether it exists.
func Lookup(name string) (Bucket, bool) {
	b, ok := nameIndex[name]
	return b, ok
}

var nameIndex = func() map[string]Bucket {
	m := make(map[string]Bucket, NumBuckets)
	for i := Bucket(0); i < NumBuckets; i++ {
		m[bucketNames[i]] = i
	}
	return m
}()

// Vector is the dense 0/1 classification output, indexed by Bucket.
type Vector [NumBuckets]uint8

// set stores a boolean predicate result at the bucket's position.
func (v *Vector) set(b Bucket, on bool) {
	if on {
		v[b] = 1
	}
}

// Has reports whether the bucket fired.
func (v Vector) Has(b Bucket) bool { return v[b] == 1 }

// Ints returns the vector as a plain 0/1 int slice in contract order.
func (v Vector) Ints() []int {
	out := make([]int, NumBuckets)
	for i, x := range v {
		out[i] = int(x)
	}
	return out
}
