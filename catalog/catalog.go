// Package catalog reads the text catalog of deck configurations and turns it
// into the binary table of records.
//
// One configuration per line:
//
//	<id> <52 letter deck> <shortest solution length>
//
// Blank lines and lines starting with '#' are ignored.
package catalog

import (
	"errors"
	"io"
	"log"
	"strconv"
	"strings"

	pkgerrors "github.com/pkg/errors"

	"github.com/nrawrx3/jamdeck"
	"github.com/nrawrx3/jamdeck/internal/utils"
)

// An Entry is a parsed configuration along with where it came from.
type Entry struct {
	Configuration jamdeck.Configuration
	Line          int
	Text          string
}

// ParseLine parses one non-blank, non-comment catalog line.
func ParseLine(line string) (jamdeck.Configuration, error) {
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return jamdeck.Configuration{}, pkgerrors.Wrapf(ErrMalformedLine, "expected 3 fields, got %d", len(fields))
	}

	deck, err := jamdeck.ParseDeck(fields[1])
	if err != nil {
		return jamdeck.Configuration{}, pkgerrors.Wrap(err, "deck")
	}

	length, err := strconv.Atoi(fields[2])
	if err != nil {
		return jamdeck.Configuration{}, pkgerrors.Wrapf(ErrMalformedLine, "solution length %q is not an integer", fields[2])
	}

	return jamdeck.Configuration{
		ID:                fields[0],
		Deck:              deck,
		MinSolutionLength: length,
	}, nil
}

// FormatLine is the inverse of ParseLine.
func FormatLine(config jamdeck.Configuration) string {
	return config.ID + " " + config.Deck.String() + " " + strconv.Itoa(config.MinSolutionLength)
}

// ReadEntries parses the whole catalog, stopping at the first bad line.
func ReadEntries(r io.Reader, logger *log.Logger) ([]Entry, error) {
	reader := utils.NewLineReader(r, logger)
	entries := make([]Entry, 0, 1500)

	for {
		text, lineNumber, err := reader.Next()
		if errors.Is(err, utils.ErrDoneReadingLines) {
			return entries, nil
		}
		if err != nil {
			return nil, pkgerrors.Wrap(err, "reading catalog")
		}

		config, err := ParseLine(text)
		if err != nil {
			return nil, NewLineError(lineNumber, text, err)
		}
		entries = append(entries, Entry{Configuration: config, Line: lineNumber, Text: text})
	}
}
