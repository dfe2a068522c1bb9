package console

import (
	"errors"
	"strings"
	"testing"

	"github.com/nrawrx3/jamdeck"
	"github.com/nrawrx3/jamdeck/table"
)

func newTestTable(t *testing.T) *table.Table {
	t.Helper()
	config := jamdeck.Configuration{Deck: jamdeck.NewOrderedDeck().Reversed(), MinSolutionLength: 88}
	record, err := config.Encode()
	if err != nil {
		t.Fatal(err)
	}
	tbl, err := table.New(record[:])
	if err != nil {
		t.Fatal(err)
	}
	return tbl
}

func TestEvalCommand(t *testing.T) {
	tbl := newTestTable(t)

	tests := []struct {
		line     string
		contains string
	}{
		{"count", "1"},
		{"best 0", "88"},
		{"show 0", "KS KD KH KC"},
		{"show 0", "zyxwvutsrqponmlkjihgfedcbaZYXWVUTSRQPONMLKJIHGFEDCBA"},
		{"digest", tbl.Digest()},
		{"help", "commands"},
		{"", ""},
	}
	for _, test := range tests {
		text, err := EvalCommand(tbl, test.line)
		if err != nil {
			t.Errorf("%q: %v", test.line, err)
			continue
		}
		if !strings.Contains(text, test.contains) {
			t.Errorf("%q: %q does not contain %q", test.line, text, test.contains)
		}
	}
}

func TestEvalCommandErrors(t *testing.T) {
	tbl := newTestTable(t)

	if _, err := EvalCommand(tbl, "quit"); !errors.Is(err, ErrQuit) {
		t.Errorf("expected ErrQuit, got %v", err)
	}
	if _, err := EvalCommand(tbl, "deal"); !errors.Is(err, ErrUnknownCommand) {
		t.Errorf("expected ErrUnknownCommand, got %v", err)
	}
	if _, err := EvalCommand(tbl, "show 1"); !errors.Is(err, table.ErrNoSuchConfiguration) {
		t.Errorf("expected ErrNoSuchConfiguration, got %v", err)
	}
	if _, err := EvalCommand(tbl, "best x"); err == nil {
		t.Errorf("expected an error for a bad id")
	}
}

func TestListRows(t *testing.T) {
	rows := listRows(newTestTable(t))
	if len(rows) != 1 || !strings.Contains(rows[0], "88") {
		t.Errorf("unexpected rows: %q", rows)
	}
}
