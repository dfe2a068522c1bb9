package jamdeck

import "fmt"

// Alphabet lists the card letters in rank order. The position of a letter is
// the index of its card.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

const noCard = 0xff

var cardOfLetter [256]uint8

func init() {
	for i := range cardOfLetter {
		cardOfLetter[i] = noCard
	}
	for i := 0; i < len(Alphabet); i++ {
		cardOfLetter[Alphabet[i]] = uint8(i)
	}
}

func CardFromLetter(letter byte) (Card, error) {
	index := cardOfLetter[letter]
	if index == noCard {
		return 0, fmt.Errorf("%w: letter %q", ErrInvalidCard, letter)
	}
	return Card(index), nil
}

func MustCardFromLetter(letter byte) Card {
	card, err := CardFromLetter(letter)
	if err != nil {
		panic(err)
	}
	return card
}

func (c Card) Letter() byte {
	if !c.Valid() {
		return '?'
	}
	return Alphabet[c]
}
