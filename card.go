package jamdeck

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

// Number of cards in a deck.
const (
	NumRanks = 13
	NumSuits = 4
	NumCards = NumRanks * NumSuits
)

// A Card is a zero-based index into the alphabet. Index i holds rank i/4 + 1
// and suit i%4.
type Card uint8

type Suit int

const (
	Clubs Suit = iota
	Hearts
	Diamonds
	Spades
)

func (s Suit) String() string {
	switch s {
	case Clubs:
		return "clubs"
	case Hearts:
		return "hearts"
	case Diamonds:
		return "diamonds"
	case Spades:
		return "spades"
	default:
		return fmt.Sprintf("invalid_suit(= %d)", int(s))
	}
}

// Short form used in card names, e.g. the "C" of "AC".
func (s Suit) Letter() string {
	if s < Clubs || s > Spades {
		return "?"
	}
	return "CHDS"[s : s+1]
}

type Rank int

const (
	Ace   Rank = 1
	Jack  Rank = 11
	Queen Rank = 12
	King  Rank = 13
)

func (r Rank) String() string {
	switch {
	case r == Ace:
		return "A"
	case r == 10:
		return "T"
	case r == Jack:
		return "J"
	case r == Queen:
		return "Q"
	case r == King:
		return "K"
	case 2 <= r && r <= 9:
		return fmt.Sprintf("%d", int(r))
	default:
		return fmt.Sprintf("invalid_rank(= %d)", int(r))
	}
}

func MakeCard(r Rank, s Suit) Card {
	return Card((int(r)-1)*NumSuits + int(s))
}

func (c Card) Rank() Rank {
	return Rank(int(c)/NumSuits + 1)
}

func (c Card) Suit() Suit {
	return Suit(int(c) % NumSuits)
}

func (c Card) Valid() bool {
	return int(c) < NumCards
}

// Two character name such as "AC" or "TD".
func (c Card) Name() string {
	return c.Rank().String() + c.Suit().Letter()
}

func (c Card) String() string {
	return fmt.Sprintf("%s of %s", c.Rank().String(), c.Suit().String())
}

type Deck []Card

// Letters of the deck in catalog form.
func (d Deck) String() string {
	var sb strings.Builder
	sb.Grow(len(d))
	for _, card := range d {
		sb.WriteByte(card.Letter())
	}
	return sb.String()
}

func (d Deck) Len() int {
	return len(d)
}

func (d Deck) Swap(i, j int) {
	d[i], d[j] = d[j], d[i]
}

func (d Deck) Names() []string {
	names := make([]string, len(d))
	for i, card := range d {
		names[i] = card.Name()
	}
	return names
}

// Returns the 52 cards in alphabet order.
func NewOrderedDeck() Deck {
	deck := make(Deck, NumCards)
	for i := range deck {
		deck[i] = Card(i)
	}
	return deck
}

// Returns a uniformly shuffled full deck.
func NewShuffledDeck() Deck {
	deck := NewOrderedDeck()
	for i, j := range ShuffleIntRange(0, NumCards) {
		deck[i] = Card(j)
	}
	return deck
}

func (d Deck) Reversed() Deck {
	out := slices.Clone(d)
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out.Swap(i, j)
	}
	return out
}

var ErrDeckSize = errors.New("deck does not hold 52 cards")
var ErrDuplicateCard = errors.New("duplicate card in deck")
var ErrInvalidCard = errors.New("invalid card")

// Parses a deck from its 52 letter catalog form. Only the length and the
// letters are checked here, use Validate to check for a full permutation.
func ParseDeck(s string) (Deck, error) {
	if len(s) != NumCards {
		return nil, fmt.Errorf("%w: got %d letters", ErrDeckSize, len(s))
	}

	deck := make(Deck, len(s))
	for i := 0; i < len(s); i++ {
		card, err := CardFromLetter(s[i])
		if err != nil {
			return nil, fmt.Errorf("position %d: %w", i, err)
		}
		deck[i] = card
	}
	return deck, nil
}

// Validate checks that the deck is a permutation of the whole alphabet.
func (d Deck) Validate() error {
	if len(d) != NumCards {
		return fmt.Errorf("%w: got %d cards", ErrDeckSize, len(d))
	}

	var seen [NumCards]bool
	for i, card := range d {
		if !card.Valid() {
			return fmt.Errorf("position %d: %w (= %d)", i, ErrInvalidCard, card)
		}
		if seen[card] {
			first := slices.Index(d, card)
			return fmt.Errorf("%w: '%c' at positions %d and %d", ErrDuplicateCard, card.Letter(), first, i)
		}
		seen[card] = true
	}
	return nil
}

func (d Deck) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Deck) UnmarshalText(text []byte) error {
	deck, err := ParseDeck(string(text))
	if err != nil {
		return err
	}
	*d = deck
	return nil
}
