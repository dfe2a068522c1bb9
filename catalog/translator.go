package catalog

import (
	"context"
	"errors"
	"io"
	"log"

	pkgerrors "github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/nrawrx3/jamdeck"
	"github.com/nrawrx3/jamdeck/internal/utils"
)

type ConfigNewTranslator struct {
	// Reject decks that are not permutations and solution lengths that do
	// not fit the difficulty field.
	Strict bool

	// Number of goroutines encoding records. Values below 2 encode on the
	// calling goroutine.
	Workers int

	Logger *log.Logger
}

type Translator struct {
	strict  bool
	workers int
	logger  *log.Logger
}

func NewTranslator(config *ConfigNewTranslator) *Translator {
	logger := config.Logger
	if logger == nil {
		logger = utils.DiscardLogger()
	}
	workers := config.Workers
	if workers < 1 {
		workers = 1
	}
	return &Translator{
		strict:  config.Strict,
		workers: workers,
		logger:  logger,
	}
}

// Translate reads the catalog from r and writes one record per configuration
// to w, in catalog order. Nothing is written unless every line encodes. It
// returns the number of records written.
func (t *Translator) Translate(ctx context.Context, r io.Reader, w io.Writer) (int, error) {
	entries, err := ReadEntries(r, t.logger)
	if err != nil {
		return 0, err
	}

	out, err := t.EncodeEntries(ctx, entries)
	if err != nil {
		return 0, err
	}

	if _, err := w.Write(out); err != nil {
		return 0, pkgerrors.Wrap(err, "writing records")
	}
	t.logger.Printf("wrote %d records (%d bytes)", len(entries), len(out))
	return len(entries), nil
}

// EncodeEntries returns the concatenated records of the entries. Record i of
// the output always belongs to entries[i].
func (t *Translator) EncodeEntries(ctx context.Context, entries []Entry) ([]byte, error) {
	out := make([]byte, len(entries)*jamdeck.RecordSize)

	if t.workers < 2 || len(entries) < 2 {
		for i := range entries {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if err := t.encodeInto(out, i, &entries[i]); err != nil {
				return nil, err
			}
		}
		return out, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	for worker := 0; worker < t.workers; worker++ {
		worker := worker

		g.Go(func() error {
			for i := worker; i < len(entries); i += t.workers {
				if err := ctx.Err(); err != nil {
					return err
				}
				if err := t.encodeInto(out, i, &entries[i]); err != nil {
					return err
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Each index owns a disjoint slice of out, so workers never share bytes.
func (t *Translator) encodeInto(out []byte, index int, entry *Entry) error {
	config := &entry.Configuration

	if t.strict {
		if err := config.Validate(); err != nil {
			return NewLineError(entry.Line, entry.Text, err)
		}
	}

	record, err := config.Encode()
	if errors.Is(err, jamdeck.ErrUnalignedBitstream) {
		t.logger.Printf("warning: line %d: %v", entry.Line, err)
	} else if err != nil {
		return NewLineError(entry.Line, entry.Text, err)
	}

	copy(out[index*jamdeck.RecordSize:], record[:])
	return nil
}
