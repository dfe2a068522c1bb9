package jamdeck

import (
	"errors"
	"fmt"
)

const (
	// Size in bytes of one encoded configuration.
	RecordSize = 32

	DifficultyBits = 7

	// No solution can take fewer moves than there are cards.
	MinSolutionLength = NumCards
	MaxSolutionLength = MinSolutionLength + (1<<DifficultyBits - 1)
)

// A Record is the packed form of a Configuration: 7 bits holding
// MinSolutionLength-52, then the 51 ranks of the deck.
type Record [RecordSize]byte

// A Configuration is one line of the catalog. ID is kept for traceability
// only and is not part of the record.
type Configuration struct {
	ID                string `json:"id" yaml:"id"`
	Deck              Deck   `json:"deck" yaml:"deck"`
	MinSolutionLength int    `json:"best_known_solution_size" yaml:"best_known_solution_size"`
}

var ErrSolutionLengthOutOfRange = errors.New("solution length out of range")

// Validate checks what Encode leaves to the caller: the deck is a
// permutation and the solution length fits the difficulty field.
func (c *Configuration) Validate() error {
	if err := c.Deck.Validate(); err != nil {
		return err
	}
	if c.MinSolutionLength < MinSolutionLength || c.MinSolutionLength > MaxSolutionLength {
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrSolutionLengthOutOfRange, c.MinSolutionLength, MinSolutionLength, MaxSolutionLength)
	}
	return nil
}

// Difficulty is the value stored in the first 7 bits of the record.
func (c *Configuration) Difficulty() uint64 {
	return uint64(c.MinSolutionLength-MinSolutionLength) & (1<<DifficultyBits - 1)
}

// Pairs returns the full field sequence of the record.
func (c *Configuration) Pairs() ([]RankPair, error) {
	ranks, err := EncodeRanks(c.Deck)
	if err != nil {
		return nil, err
	}
	pairs := make([]RankPair, 0, len(ranks)+1)
	pairs = append(pairs, RankPair{Value: c.Difficulty(), Width: DifficultyBits})
	return append(pairs, ranks...), nil
}

// Encode packs the configuration. An error wrapping ErrUnalignedBitstream is
// a diagnostic only and comes with a usable record; any other error means no
// record was produced.
func (c *Configuration) Encode() (Record, error) {
	var record Record

	pairs, err := c.Pairs()
	if err != nil {
		return record, err
	}

	data, packErr := Pack(pairs)
	if packErr == nil && len(data) != RecordSize {
		packErr = fmt.Errorf("%w: packed %d bytes", ErrUnalignedBitstream, len(data))
	}
	copy(record[:], data)
	return record, packErr
}

func (r *Record) Difficulty() int {
	return int(r[0] >> (8 - DifficultyBits))
}

func (r *Record) MinSolutionLength() int {
	return MinSolutionLength + r.Difficulty()
}

// Ranks reads back the 51 rank fields following the difficulty field.
func (r *Record) Ranks() ([]RankPair, error) {
	reader := NewBitReader(r[:])
	if _, err := reader.ReadBits(DifficultyBits); err != nil {
		return nil, err
	}

	pairs := make([]RankPair, 0, RankPairCount)
	for n := 0; n < RankPairCount; n++ {
		width := BitWidth(NumCards - n)
		value, err := reader.ReadBits(width)
		if err != nil {
			return nil, fmt.Errorf("rank %d: %w", n, err)
		}
		pairs = append(pairs, RankPair{Value: value, Width: width})
	}
	return pairs, nil
}

func (r *Record) Deck() (Deck, error) {
	pairs, err := r.Ranks()
	if err != nil {
		return nil, err
	}
	return DecodeRanks(pairs)
}

// Decode rebuilds the configuration, leaving ID empty since it is not
// stored.
func (r *Record) Decode() (Configuration, error) {
	deck, err := r.Deck()
	if err != nil {
		return Configuration{}, err
	}
	return Configuration{Deck: deck, MinSolutionLength: r.MinSolutionLength()}, nil
}
