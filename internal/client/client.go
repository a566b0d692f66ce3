// Package client talks to the LVR calculator over HTTP.
//
// Client maps each endpoint to a method. Form models the loan application
// form: every field change fires a calculation and the latest response
// to arrive is what the form shows.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/deppfellow/lvr-calculator/internal/lvr"
)

// DefaultBaseURL points at a locally running service on its default port.
const DefaultBaseURL = "http://localhost:3001"

// DefaultTimeout bounds each request made with the default HTTP client.
const DefaultTimeout = 10 * time.Second

// APIError is a non-2xx response. Message is the body's "error" field,
// or the status text when the body has none.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: DefaultTimeout},
	}
}

// Calculate posts payload to /api/lvr and returns the ratio. payload is
// anything that encodes to the loan application object, usually an
// lvr.Input or a map built by Form.
func (c *Client) Calculate(ctx context.Context, payload any) (float64, error) {
	var out lvr.Result
	if err := c.do(ctx, http.MethodPost, "/api/lvr", payload, &out); err != nil {
		return 0, err
	}
	return out.LVR, nil
}

// Validate posts payload to /api/validate. A nil error means the
// application is valid.
func (c *Client) Validate(ctx context.Context, payload any) error {
	var out lvr.ValidResult
	return c.do(ctx, http.MethodPost, "/api/validate", payload, &out)
}

// Health returns the status reported by /health.
func (c *Client) Health(ctx context.Context) (string, error) {
	var out struct {
		Status string `json:"status"`
	}
	if err := c.do(ctx, http.MethodGet, "/health", nil, &out); err != nil {
		return "", err
	}
	return out.Status, nil
}

// Example fetches the sample application.
func (c *Client) Example(ctx context.Context) (lvr.Input, error) {
	var out lvr.Input
	if err := c.do(ctx, http.MethodGet, "/api/example", nil, &out); err != nil {
		return lvr.Input{}, err
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf := new(bytes.Buffer)
		if err := json.NewEncoder(buf).Encode(in); err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = buf
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return decodeAPIError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s %s: decode response: %w", method, path, err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) *APIError {
	apiErr := &APIError{
		Status:  resp.StatusCode,
		Message: http.StatusText(resp.StatusCode),
	}

	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error != "" {
		apiErr.Message = body.Error
	}

	return apiErr
}
