// Package card models playing cards and parsing of flat card strings.
//
// Conventions:
// - Ranks are plain ordered integers, Ace high (14). The Ace-low duplication
//   used by straight logic is handled by consumers, not here.
// - Suit order is arbitrary but fixed; it exists for deterministic iteration
//   only and never carries hand-strength meaning.
package card

import (
	"fmt"
	"strings"
)

// Rank is a card rank, 2..14 with Ace = 14.
type Rank uint8

// Named ranks. Numeric ranks use their face value directly.
const (
	Two   Rank = 2
	Three Rank = 3
	Four  Rank = 4
	Five  Rank = 5
	Six   Rank = 6
	Seven Rank = 7
	Eight Rank = 8
	Nine  Rank = 9
	Ten   Rank = 10
	Jack  Rank = 11
	Queen Rank = 12
	King  Rank = 13
	Ace   Rank = 14
)

// String returns the single-character token for the rank.
func (r Rank) String() string {
	switch {
	case r >= Two && r <= Nine:
		return string(rune('0' + r))
	case r == Ten:
		return "T"
	case r == Jack:
		return "J"
	case r == Queen:
		return "Q"
	case r == King:
		return "K"
	case r == Ace:
		return "A"
	default:
		return fmt.Sprintf("rank(%d)", uint8(r))
	}
}

// Suit is one of the four card suits.
type Suit uint8

// Suits in fixed iteration order.
const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

// NumSuits is the size of the suit domain, for count arrays.
const NumSuits = 4

// String returns the single-character token for the suit.
func (s Suit) String() string {
	switch s {
	case Clubs:
		return "c"
	case Diamonds:
		return "d"
	case Hearts:
		return "h"
	case Spades:
		return "s"
	default:
		return fmt.Sprintf("suit(%d)", uint8(s))
	}
}

// Card is an immutable rank/suit value.
type Card struct {
	Rank Rank
	Suit Suit
}

// String renders the card as its two-character token, e.g. "As" or "7d".
func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}

// Less orders cards by rank first, suit second. The ordering is used only
// for determinism, never for hand strength.
func (c Card) Less(other Card) bool {
	if c.Rank != other.Rank {
		return c.Rank < other.Rank
	}
	return c.Suit < other.Suit
}

// parseRank maps a token character to a rank.
func parseRank(ch byte) (Rank, error) {
	switch {
	case ch >= '2' && ch <= '9':
		return Rank(ch - '0'), nil
	case ch == 'T':
		return Ten, nil
	case ch == 'J':
		return Jack, nil
	case ch == 'Q':
		return Queen, nil
	case ch == 'K':
		return King, nil
	case ch == 'A':
		return Ace, nil
	default:
		return 0, fmt.Errorf("%w: bad rank %q", ErrParse, string(ch))
	}
}

// parseSuit maps a token character to a suit.
func parseSuit(ch byte) (Suit, error) {
	switch ch {
	case 'C':
		return Clubs, nil
	case 'D':
		return Diamonds, nil
	case 'H':
		return Hearts, nil
	case 'S':
		return Spades, nil
	default:
		return 0, fmt.Errorf("%w: bad suit %q", ErrParse, string(ch))
	}
}

// Parse decodes a flat string of two-character <rank><suit> tokens,
// case-insensitive, into cards in input order. The whole string is rejected
// on the first malformed token; there are no partial results.
func Parse(s string) ([]Card, error) {
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("%w: odd length %d in %q", ErrParse, len(s), s)
	}
	up := strings.ToUpper(s)
	cards := make([]Card, 0, len(up)/2)
	for i := 0; i < len(up); i += 2 {
		r, err := parseRank(up[i])
		if err != nil {
			return nil, err
		}
		su, err := parseSuit(up[i+1])
		if err != nil {
			return nil, err
		}
		cards = append(cards, Card{Rank: r, Suit: su})
	}
	return cards, nil
}
