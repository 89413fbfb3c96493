// Package submit sends grouped rule payloads to the save endpoint.
package submit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/pkg/errors"

	"go-column-rules/internal/model"
	"go-column-rules/pkg/logger"
)

// SavePath is the endpoint the grouped payload is posted to.
const SavePath = "/save-file"

// StatusError is returned when the save endpoint answers with a non-2xx code.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP error! status: %d", e.Code)
}

// DecodeError is returned when a 2xx response body is not valid JSON.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return "decode save response: " + e.Err.Error()
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Client posts payloads to a rules server. It never retries.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        logger.LoggerI
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(l logger.LoggerI) Option {
	return func(c *Client) { c.log = l }
}

// NewClient builds a client for the server at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		log:        logger.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the server root the client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

// Submit sends payload as a single JSON POST and decodes the JSON reply,
// which may be any JSON value. No timeout is applied beyond what ctx carries.
func (c *Client) Submit(ctx context.Context, payload model.GroupedPayload) (interface{}, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrap(err, "marshal payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+SavePath, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "build save request")
	}
	req.Header.Set("Content-Type", "application/json")

	var result interface{}
	if err := c.doJSON(req, &result); err != nil {
		return nil, err
	}

	c.log.Debug("payload saved", logger.Int("columns", payload.Columns()))
	return result, nil
}
