package buckets

import "github.com/omahatools/bucketd/internal/domain/card"

// presence is the per-rank coverage state used by the straight logic.
type presence uint8

const (
	presenceNone presence = iota
	presenceHole
	presenceBoard
	presenceBoth
)

// presenceVector describes, per rank, whether the rank is covered by hole
// cards only, board cards only, both, or neither. Slot i holds rank i+1;
// slot 0 is the Ace duplicated at the low end for wheel straights.
type presenceVector [14]presence

// buildPresence derives the presence vector for a (hole, board) pair.
// Only rank presence matters here, never card counts.
func buildPresence(hole, board []card.Card) presenceVector {
	var holeSet, boardSet [15]bool
	for _, c := range hole {
		holeSet[c.Rank] = true
	}
	for _, c := range board {
		boardSet[c.Rank] = true
	}
	// Ace plays both high and low.
	holeSet[1] = holeSet[card.Ace]
	boardSet[1] = boardSet[card.Ace]

	var v presenceVector
	for i := 0; i < 14; i++ {
		h, b := holeSet[i+1], boardSet[i+1]
		switch {
		case h && b:
			v[i] = presenceBoth
		case h:
			v[i] = presenceHole
		case b:
			v[i] = presenceBoard
		}
	}
	return v
}

// eachResolution enumerates every assignment of the ambiguous Both slots to
// hole or board and invokes fn with each fully resolved vector. The ambiguity
// count is bounded by the distinct-rank overlap between hole and board, so
// the 2^k enumeration stays tiny.
func (v presenceVector) eachResolution(fn func(presenceVector)) {
	var ambiguous []int
	for i, p := range v {
		if p == presenceBoth {
			ambiguous = append(ambiguous, i)
		}
	}
	if len(ambiguous) == 0 {
		fn(v)
		return
	}
	for mask := 0; mask < 1<<len(ambiguous); mask++ {
		resolved := v
		for bit, idx := range ambiguous {
			if mask&(1<<bit) != 0 {
				resolved[idx] = presenceHole
			} else {
				resolved[idx] = presenceBoard
			}
		}
		fn(resolved)
	}
}
