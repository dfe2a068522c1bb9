package utils

import (
	"bufio"
	"errors"
	"io"
	"log"
	"strings"
)

var ErrDoneReadingLines = errors.New("done reading lines")

// LineReader hands out the meaningful lines of a text source. Blank lines
// and lines whose first non-space character is '#' are skipped.
type LineReader struct {
	scanner    *bufio.Scanner
	lineNumber int
	logger     *log.Logger
}

// Creates a new LineReader that reads from the given io.Reader.
func NewLineReader(r io.Reader, logger *log.Logger) *LineReader {
	return &LineReader{
		scanner: bufio.NewScanner(r),
		logger:  logger,
	}
}

// Next returns the next meaningful line, trimmed, along with its 1-based
// line number. If/when the underlying reader is exhausted, it returns
// ErrDoneReadingLines.
func (reader *LineReader) Next() (string, int, error) {
	for reader.scanner.Scan() {
		reader.lineNumber++
		line := strings.TrimSpace(reader.scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		return line, reader.lineNumber, nil
	}

	if err := reader.scanner.Err(); err != nil {
		return "", reader.lineNumber, err
	}
	if reader.logger != nil {
		reader.logger.Printf("done reading lines after line %d", reader.lineNumber)
	}
	return "", reader.lineNumber, ErrDoneReadingLines
}
