package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/nrawrx3/jamdeck/internal/messages"
	"github.com/nrawrx3/jamdeck/internal/utils"
)

// HTTPResponseCodeError is returned for any non-200 response.
type HTTPResponseCodeError struct {
	StatusCode int
	Status     string
	Errors     []string
}

func (e *HTTPResponseCodeError) Error() string {
	if len(e.Errors) > 0 {
		return fmt.Sprintf("HTTP error response: %d (%s): %s", e.StatusCode, e.Status, e.Errors[0])
	}
	return fmt.Sprintf("HTTP error response: %d (%s)", e.StatusCode, e.Status)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: utils.CreateHTTPClient(timeout),
	}
}

func (c *Client) FetchSummary(ctx context.Context) (messages.TableSummaryMessage, error) {
	var msg messages.TableSummaryMessage
	err := c.get(ctx, "/configurations", &msg)
	return msg, err
}

func (c *Client) FetchConfiguration(ctx context.Context, id int) (messages.ConfigurationMessage, error) {
	var msg messages.ConfigurationMessage
	err := c.get(ctx, fmt.Sprintf("/configurations/%d", id), &msg)
	return msg, err
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	sender := utils.RequestSender{
		Client: c.httpClient,
		Method: "GET",
		URL:    c.baseURL + path,
	}

	resp, err := sender.Send(ctx)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		codeErr := &HTTPResponseCodeError{
			StatusCode: resp.StatusCode,
			Status:     http.StatusText(resp.StatusCode),
		}
		var payload messages.UnwrappedErrorPayload
		if json.NewDecoder(resp.Body).Decode(&payload) == nil {
			codeErr.Errors = payload.Errors
		}
		return codeErr
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
