package messages

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/nrawrx3/jamdeck"
)

// Response of GET /configurations
type TableSummaryMessage struct {
	Count  int    `json:"count"`
	Digest string `json:"digest"`
}

// Response of GET /configurations/{id}
type ConfigurationMessage struct {
	ID                    int      `json:"id"`
	Deck                  string   `json:"deck"`
	Cards                 []string `json:"cards"`
	BestKnownSolutionSize int      `json:"best_known_solution_size"`
}

func NewConfigurationMessage(id int, config jamdeck.Configuration) ConfigurationMessage {
	return ConfigurationMessage{
		ID:                    id,
		Deck:                  config.Deck.String(),
		Cards:                 config.Deck.Names(),
		BestKnownSolutionSize: config.MinSolutionLength,
	}
}

func (msg *ConfigurationMessage) Configuration() (jamdeck.Configuration, error) {
	deck, err := jamdeck.ParseDeck(msg.Deck)
	if err != nil {
		return jamdeck.Configuration{}, err
	}
	return jamdeck.Configuration{Deck: deck, MinSolutionLength: msg.BestKnownSolutionSize}, nil
}

type UnwrappedErrorPayload struct {
	Errors []string `json:"errors"`
}

func (payload *UnwrappedErrorPayload) Add(err error) {
	if payload.Errors == nil {
		payload.Errors = make([]string, 0, 4)
	}
	payload.Errors = append(payload.Errors, err.Error())
	for {
		err = errors.Unwrap(err)
		if err == nil {
			break
		}
		payload.Errors = append(payload.Errors, err.Error())
	}
}

func WriteErrorPayload(w io.Writer, err error) {
	payload := UnwrappedErrorPayload{}
	payload.Add(err)
	json.NewEncoder(w).Encode(&payload)
}
