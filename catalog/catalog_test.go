package catalog

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/nrawrx3/jamdeck"
)

const identityLine = "C1 ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz 52"
const reversedLine = "C2 zyxwvutsrqponmlkjihgfedcbaZYXWVUTSRQPONMLKJIHGFEDCBA 179"

func newTestTranslator(strict bool, workers int) *Translator {
	return NewTranslator(&ConfigNewTranslator{Strict: strict, Workers: workers})
}

func randomCatalog(count int) (string, []jamdeck.Configuration) {
	var sb strings.Builder
	configs := make([]jamdeck.Configuration, 0, count)
	sb.WriteString("# generated\n")
	for i := 0; i < count; i++ {
		config := jamdeck.Configuration{
			ID:                fmt.Sprintf("%d", i+1),
			Deck:              jamdeck.NewShuffledDeck(),
			MinSolutionLength: jamdeck.MinSolutionLength + i%128,
		}
		configs = append(configs, config)
		sb.WriteString(FormatLine(config))
		sb.WriteString("\n")
		if i%10 == 0 {
			sb.WriteString("\n")
		}
	}
	return sb.String(), configs
}

func TestParseLine(t *testing.T) {
	config, err := ParseLine(identityLine)
	if err != nil {
		t.Fatal(err)
	}
	if config.ID != "C1" || config.MinSolutionLength != 52 {
		t.Errorf("unexpected configuration: %+v", config)
	}
	if config.Deck.String() != jamdeck.Alphabet {
		t.Errorf("%s != %s", config.Deck, jamdeck.Alphabet)
	}
	if FormatLine(config) != identityLine {
		t.Errorf("%s != %s", FormatLine(config), identityLine)
	}
}

func TestParseLineErrors(t *testing.T) {
	tests := []struct {
		name string
		line string
		err  error
	}{
		{"two fields", "C1 " + jamdeck.Alphabet, ErrMalformedLine},
		{"four fields", identityLine + " extra", ErrMalformedLine},
		{"bad length", "C1 " + jamdeck.Alphabet + " fifty", ErrMalformedLine},
		{"bad letter", "C1 " + jamdeck.Alphabet[:51] + "1 52", jamdeck.ErrInvalidCard},
		{"short deck", "C1 " + jamdeck.Alphabet[:51] + " 52", jamdeck.ErrDeckSize},
	}
	for _, test := range tests {
		t.Run(test.name, func(tt *testing.T) {
			_, err := ParseLine(test.line)
			if !errors.Is(err, test.err) {
				tt.Errorf("expected %v, got %v", test.err, err)
			}
		})
	}
}

func TestTranslateScenarios(t *testing.T) {
	input := "# header\n\n" + identityLine + "\n" + reversedLine + "\n"

	var out bytes.Buffer
	count, err := newTestTranslator(true, 1).Translate(context.Background(), strings.NewReader(input), &out)
	if err != nil {
		t.Fatal(err)
	}
	if count != 2 || out.Len() != 2*jamdeck.RecordSize {
		t.Fatalf("count = %d, bytes = %d", count, out.Len())
	}

	var first, second jamdeck.Record
	copy(first[:], out.Bytes()[:jamdeck.RecordSize])
	copy(second[:], out.Bytes()[jamdeck.RecordSize:])

	if first != (jamdeck.Record{}) {
		t.Errorf("identity record is not all zero: %x", first)
	}
	if second.Difficulty() != 127 {
		t.Errorf("%d != 127", second.Difficulty())
	}
	deck, err := second.Deck()
	if err != nil {
		t.Fatal(err)
	}
	if deck.String() != strings.Fields(reversedLine)[1] {
		t.Errorf("%s != %s", deck, strings.Fields(reversedLine)[1])
	}
}

func TestTranslateFailFast(t *testing.T) {
	input := identityLine + "\n" + "C2 " + jamdeck.Alphabet + "\n" + reversedLine + "\n"

	var out bytes.Buffer
	_, err := newTestTranslator(true, 1).Translate(context.Background(), strings.NewReader(input), &out)

	var lineErr *LineError
	if !errors.As(err, &lineErr) {
		t.Fatalf("expected a LineError, got %v", err)
	}
	if lineErr.Line != 2 {
		t.Errorf("%d != 2", lineErr.Line)
	}
	if !errors.Is(err, ErrMalformedLine) {
		t.Errorf("expected ErrMalformedLine, got %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("expected no output, got %d bytes", out.Len())
	}
}

func TestTranslateStrictness(t *testing.T) {
	duplicate := "D1 AA" + jamdeck.Alphabet[2:] + " 60\n"
	tooLong := "D2 " + jamdeck.Alphabet + " 180\n"

	t.Run("strict", func(tt *testing.T) {
		for _, input := range []string{duplicate, tooLong} {
			var out bytes.Buffer
			_, err := newTestTranslator(true, 1).Translate(context.Background(), strings.NewReader(input), &out)
			if err == nil {
				tt.Errorf("expected an error for %q", input)
			}
			if out.Len() != 0 {
				tt.Errorf("expected no output, got %d bytes", out.Len())
			}
		}
		var out bytes.Buffer
		_, err := newTestTranslator(true, 1).Translate(context.Background(), strings.NewReader(duplicate), &out)
		if !errors.Is(err, jamdeck.ErrDuplicateCard) {
			tt.Errorf("expected ErrDuplicateCard, got %v", err)
		}
	})

	t.Run("lenient", func(tt *testing.T) {
		var out bytes.Buffer
		count, err := newTestTranslator(false, 1).Translate(context.Background(), strings.NewReader(duplicate+tooLong), &out)
		if err != nil {
			tt.Fatal(err)
		}
		if count != 2 || out.Len() != 2*jamdeck.RecordSize {
			tt.Errorf("count = %d, bytes = %d", count, out.Len())
		}
		// 180 - 52 = 128 keeps only its low 7 bits.
		if out.Bytes()[jamdeck.RecordSize]>>1 != 0 {
			tt.Errorf("difficulty did not wrap: %d", out.Bytes()[jamdeck.RecordSize]>>1)
		}
	})
}

func TestTranslatePreservesOrder(t *testing.T) {
	input, configs := randomCatalog(300)

	for _, workers := range []int{1, 4, 7} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(tt *testing.T) {
			var out bytes.Buffer
			count, err := newTestTranslator(true, workers).Translate(context.Background(), strings.NewReader(input), &out)
			if err != nil {
				tt.Fatal(err)
			}
			if count != len(configs) {
				tt.Fatalf("%d != %d", count, len(configs))
			}

			data := out.Bytes()
			for i, config := range configs {
				var record jamdeck.Record
				copy(record[:], data[i*jamdeck.RecordSize:])
				decoded, err := record.Decode()
				if err != nil {
					tt.Fatal(err)
				}
				config.ID = ""
				if !cmp.Equal(decoded, config) {
					tt.Errorf("record %d: %s", i, cmp.Diff(config, decoded))
				}
			}
		})
	}
}

func TestParallelFailureWritesNothing(t *testing.T) {
	input, _ := randomCatalog(50)
	input += "Z9 AA" + jamdeck.Alphabet[2:] + " 70\n"

	var out bytes.Buffer
	_, err := newTestTranslator(true, 4).Translate(context.Background(), strings.NewReader(input), &out)
	if !errors.Is(err, jamdeck.ErrDuplicateCard) {
		t.Errorf("expected ErrDuplicateCard, got %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("expected no output, got %d bytes", out.Len())
	}
}

func TestTranslateCancelled(t *testing.T) {
	input, _ := randomCatalog(5)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	_, err := newTestTranslator(true, 1).Translate(ctx, strings.NewReader(input), &out)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
