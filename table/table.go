// Package table gives read access to a binary table of configuration
// records, as produced by the catalog translator.
package table

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"

	pkgerrors "github.com/pkg/errors"
	"github.com/zeebo/blake3"

	"github.com/nrawrx3/jamdeck"
)

var ErrTruncatedTable = errors.New("table size is not a multiple of the record size")
var ErrNoSuchConfiguration = errors.New("no such configuration")

// A Table is immutable once created and safe for concurrent use.
type Table struct {
	data []byte
}

func New(data []byte) (*Table, error) {
	if len(data)%jamdeck.RecordSize != 0 {
		return nil, fmt.Errorf("%w: %d bytes", ErrTruncatedTable, len(data))
	}
	return &Table{data: data}, nil
}

func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "loading table %s", path)
	}
	return New(data)
}

func (t *Table) Count() int {
	return len(t.data) / jamdeck.RecordSize
}

func (t *Table) Bytes() []byte {
	return t.data
}

func (t *Table) Record(id int) (jamdeck.Record, error) {
	var record jamdeck.Record
	if id < 0 || id >= t.Count() {
		return record, fmt.Errorf("%w: %d (table holds %d)", ErrNoSuchConfiguration, id, t.Count())
	}
	copy(record[:], t.data[id*jamdeck.RecordSize:])
	return record, nil
}

// The size of the best known solution is the first seven bits of the
// record, offset by the size of the deck.
func (t *Table) BestKnownSolutionSize(id int) (int, error) {
	record, err := t.Record(id)
	if err != nil {
		return 0, err
	}
	return record.MinSolutionLength(), nil
}

// Deck returns the deck order for the configuration, top card first.
func (t *Table) Deck(id int) (jamdeck.Deck, error) {
	record, err := t.Record(id)
	if err != nil {
		return nil, err
	}
	deck, err := record.Deck()
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "configuration %d", id)
	}
	return deck, nil
}

// Configuration decodes a record. The ID is the record index, since the
// catalog identifier is not stored.
func (t *Table) Configuration(id int) (jamdeck.Configuration, error) {
	record, err := t.Record(id)
	if err != nil {
		return jamdeck.Configuration{}, err
	}
	config, err := record.Decode()
	if err != nil {
		return config, pkgerrors.Wrapf(err, "configuration %d", id)
	}
	config.ID = fmt.Sprintf("%d", id)
	return config, nil
}

// Hex encoded blake3-256 of the table bytes.
func (t *Table) Digest() string {
	sum := blake3.Sum256(t.data)
	return hex.EncodeToString(sum[:])
}
