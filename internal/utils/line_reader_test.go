package utils

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLineReaderSkipsBlankAndComments(t *testing.T) {
	input := "# header\n\nfirst line\n   \n  # indented comment\n  second line  \nthird"
	reader := NewLineReader(strings.NewReader(input), DiscardLogger())

	var lines []string
	var numbers []int
	for {
		line, number, err := reader.Next()
		if errors.Is(err, ErrDoneReadingLines) {
			break
		}
		if err != nil {
			t.Fatal(err)
		}
		lines = append(lines, line)
		numbers = append(numbers, number)
	}

	if !cmp.Equal(lines, []string{"first line", "second line", "third"}) {
		t.Errorf("unexpected lines: %q", lines)
	}
	if !cmp.Equal(numbers, []int{3, 6, 7}) {
		t.Errorf("unexpected line numbers: %v", numbers)
	}
}

func TestTCPAddress(t *testing.T) {
	var addr TCPAddress
	addr.SetHostPort("http://localhost", 8080)
	if addr.BindString() != "localhost:8080" {
		t.Errorf("%s != localhost:8080", addr.BindString())
	}
	if addr.HTTPAddress() != "http://localhost:8080" {
		t.Errorf("%s != http://localhost:8080", addr.HTTPAddress())
	}
}
