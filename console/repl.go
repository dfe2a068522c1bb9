// Package console holds the interactive front ends for a configuration
// table: a line REPL and a full screen browser.
package console

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"github.com/nrawrx3/jamdeck/table"
)

var ErrQuit = errors.New("quit")
var ErrUnknownCommand = errors.New("unknown command")

const replHelp = `commands:
  count          number of configurations
  digest         blake3 digest of the table
  show <id>      deck and best known solution size
  best <id>      best known solution size
  help           this text
  quit           leave`

// Evaluates a single REPL line against the table and returns the text to
// print. ErrQuit asks the caller to stop.
func EvalCommand(tbl *table.Table, line string) (string, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil
	}

	switch fields[0] {
	case "q", "quit", "exit":
		return "", ErrQuit
	case "h", "help":
		return replHelp, nil
	case "count":
		return strconv.Itoa(tbl.Count()), nil
	case "digest":
		return tbl.Digest(), nil
	case "show", "best":
		if len(fields) != 2 {
			return "", fmt.Errorf("expected `%s <id>`", fields[0])
		}
		id, err := strconv.Atoi(fields[1])
		if err != nil {
			return "", fmt.Errorf("bad id %q", fields[1])
		}
		if fields[0] == "best" {
			best, err := tbl.BestKnownSolutionSize(id)
			if err != nil {
				return "", err
			}
			return strconv.Itoa(best), nil
		}
		return describeConfiguration(tbl, id)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownCommand, fields[0])
	}
}

func describeConfiguration(tbl *table.Table, id int) (string, error) {
	config, err := tbl.Configuration(id)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "configuration %d\n", id)
	fmt.Fprintf(&sb, "best known solution: %d moves\n", config.MinSolutionLength)
	fmt.Fprintf(&sb, "deck: %s\n", config.Deck)
	names := config.Deck.Names()
	for i := 0; i < len(names); i += 13 {
		end := i + 13
		if end > len(names) {
			end = len(names)
		}
		sb.WriteString(strings.Join(names[i:end], " "))
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n"), nil
}

// RunREPL reads commands until quit or end of input.
func RunREPL(tbl *table.Table, out io.Writer) error {
	rl, err := readline.New("> ")
	if err != nil {
		return err
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		text, err := EvalCommand(tbl, line)
		if errors.Is(err, ErrQuit) {
			return nil
		}
		if err != nil {
			fmt.Fprintf(out, "error: %s\n", err)
			continue
		}
		if text != "" {
			fmt.Fprintln(out, text)
		}
	}
}
