package table

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/nrawrx3/jamdeck"
	"github.com/nrawrx3/jamdeck/catalog"
)

func buildTable(t *testing.T, configs []jamdeck.Configuration) *Table {
	t.Helper()
	var sb strings.Builder
	for _, config := range configs {
		sb.WriteString(catalog.FormatLine(config))
		sb.WriteString("\n")
	}

	var out bytes.Buffer
	translator := catalog.NewTranslator(&catalog.ConfigNewTranslator{Strict: true})
	if _, err := translator.Translate(context.Background(), strings.NewReader(sb.String()), &out); err != nil {
		t.Fatal(err)
	}
	table, err := New(out.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	return table
}

func TestTableLookups(t *testing.T) {
	configs := make([]jamdeck.Configuration, 20)
	for i := range configs {
		configs[i] = jamdeck.Configuration{
			ID:                "x",
			Deck:              jamdeck.NewShuffledDeck(),
			MinSolutionLength: 60 + i,
		}
	}
	table := buildTable(t, configs)

	if table.Count() != len(configs) {
		t.Fatalf("%d != %d", table.Count(), len(configs))
	}

	for i, config := range configs {
		best, err := table.BestKnownSolutionSize(i)
		if err != nil {
			t.Fatal(err)
		}
		if best != config.MinSolutionLength {
			t.Errorf("%d: %d != %d", i, best, config.MinSolutionLength)
		}

		deck, err := table.Deck(i)
		if err != nil {
			t.Fatal(err)
		}
		if !cmp.Equal(deck, config.Deck) {
			t.Errorf("%d: %s != %s", i, deck, config.Deck)
		}

		decoded, err := table.Configuration(i)
		if err != nil {
			t.Fatal(err)
		}
		if decoded.MinSolutionLength != config.MinSolutionLength || !cmp.Equal(decoded.Deck, config.Deck) {
			t.Errorf("%d: %+v != %+v", i, decoded, config)
		}
	}
}

func TestTableErrors(t *testing.T) {
	if _, err := New(make([]byte, jamdeck.RecordSize+1)); !errors.Is(err, ErrTruncatedTable) {
		t.Errorf("expected ErrTruncatedTable, got %v", err)
	}

	table, err := New(make([]byte, 2*jamdeck.RecordSize))
	if err != nil {
		t.Fatal(err)
	}
	for _, id := range []int{-1, 2} {
		if _, err := table.Deck(id); !errors.Is(err, ErrNoSuchConfiguration) {
			t.Errorf("id %d: expected ErrNoSuchConfiguration, got %v", id, err)
		}
	}

	deck, err := table.Deck(1)
	if err != nil {
		t.Fatal(err)
	}
	if deck.String() != jamdeck.Alphabet {
		t.Errorf("%s != %s", deck, jamdeck.Alphabet)
	}
}

func TestLoadAndDigest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "configs.bin")
	data := make([]byte, 3*jamdeck.RecordSize)
	data[0] = 0xfe
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	table, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if best, _ := table.BestKnownSolutionSize(0); best != 179 {
		t.Errorf("%d != 179", best)
	}

	other, _ := New(make([]byte, 3*jamdeck.RecordSize))
	if len(table.Digest()) != 64 {
		t.Errorf("unexpected digest length %d", len(table.Digest()))
	}
	if table.Digest() == other.Digest() {
		t.Errorf("different tables share a digest")
	}
}
