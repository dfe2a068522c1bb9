package jamdeck

import (
	"errors"
	"fmt"
	"math/bits"
)

// A RankPair is one field of a record: Value is written using exactly Width
// bits.
type RankPair struct {
	Value uint64
	Width uint
}

// Number of pairs produced for a deck. The last card is never encoded since
// it is the only one left.
const RankPairCount = NumCards - 1

// BitWidth returns the number of bits needed to hold every integer in
// [0, remaining-1].
func BitWidth(remaining int) uint {
	if remaining <= 1 {
		return 0
	}
	return uint(bits.Len(uint(remaining - 1)))
}

// EncodeRanks turns the first 51 cards of the deck into their ranks among
// the cards not yet dealt. Duplicates are not detected; they produce ranks
// that do not describe a permutation.
func EncodeRanks(deck Deck) ([]RankPair, error) {
	if len(deck) != NumCards {
		return nil, fmt.Errorf("%w: got %d cards", ErrDeckSize, len(deck))
	}

	var avail [NumCards]bool
	for i := range avail {
		avail[i] = true
	}

	pairs := make([]RankPair, 0, RankPairCount)
	for n := 0; n < RankPairCount; n++ {
		card := deck[n]
		if !card.Valid() {
			return nil, fmt.Errorf("position %d: %w (= %d)", n, ErrInvalidCard, card)
		}

		value := 0
		for i := 0; i < int(card); i++ {
			if avail[i] {
				value++
			}
		}
		avail[card] = false

		pairs = append(pairs, RankPair{Value: uint64(value), Width: BitWidth(NumCards - n)})
	}
	return pairs, nil
}

var ErrRankOutOfRange = errors.New("rank out of range")

// DecodeRanks rebuilds the deck from the ranks produced by EncodeRanks.
func DecodeRanks(pairs []RankPair) (Deck, error) {
	if len(pairs) != RankPairCount {
		return nil, fmt.Errorf("expected %d ranks, got %d", RankPairCount, len(pairs))
	}

	var avail [NumCards]bool
	for i := range avail {
		avail[i] = true
	}

	deck := make(Deck, 0, NumCards)
	for n, pair := range pairs {
		remaining := NumCards - n
		if pair.Value >= uint64(remaining) {
			return nil, fmt.Errorf("position %d: %w: %d >= %d", n, ErrRankOutOfRange, pair.Value, remaining)
		}
		card := nthAvailable(&avail, int(pair.Value))
		avail[card] = false
		deck = append(deck, card)
	}

	deck = append(deck, nthAvailable(&avail, 0))
	return deck, nil
}

func nthAvailable(avail *[NumCards]bool, n int) Card {
	for i, ok := range avail {
		if !ok {
			continue
		}
		if n == 0 {
			return Card(i)
		}
		n--
	}
	panic("nthAvailable: not enough cards left")
}
