package utils

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"
)

func CreateHTTPClient(timeout time.Duration) *http.Client {
	transport := &http.Transport{
		MaxIdleConns: 20,

		// Lookups go to a single server, a small pool is enough.
		MaxIdleConnsPerHost: 5,

		IdleConnTimeout: 5 * time.Minute,
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}

type RequestSender struct {
	Client     *http.Client
	Method     string
	URL        string
	BodyReader io.Reader
}

func (sender *RequestSender) SendWithTimeout(parentContext context.Context, timeout time.Duration) (*http.Response, context.CancelFunc, error) {
	ctx, cancel := context.WithTimeout(parentContext, timeout)

	req, err := http.NewRequestWithContext(ctx, sender.Method, sender.URL, sender.BodyReader)
	if err != nil {
		return nil, cancel, err
	}
	resp, err := sender.Client.Do(req)
	if err != nil {
		return nil, cancel, err
	}
	return resp, cancel, nil
}

func (sender *RequestSender) Send(parentContext context.Context) (*http.Response, error) {
	req, err := http.NewRequestWithContext(parentContext, sender.Method, sender.URL, sender.BodyReader)
	if err != nil {
		return nil, err
	}
	return sender.Client.Do(req)
}

func WriteJsonWithNewline(w io.Writer, data interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
