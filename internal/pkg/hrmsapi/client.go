package hrmsapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/cmlabs-hris/hrms-lite-go/internal/config"
	"github.com/google/uuid"
)

// Client talks to the remote HRMS API. Every response is wrapped in the
// {success, data, message} envelope.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
}

// NewClient creates a new HRMS API client
func NewClient(cfg config.HRMSAPIConfig) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid HRMS API base URL: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("HRMS API base URL must be absolute: %q", cfg.BaseURL)
	}

	return &Client{
		baseURL:    base,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// APIError is a response the API itself reported as failed, either with
// success:false or with an error status that carried a message.
type APIError struct {
	Op         string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: HRMS API reported failure (status %d)", e.Op, e.StatusCode)
	}
	return e.Message
}

// TransportError is a failure to get a usable envelope at all: no
// response, an undecodable body, or an error status without a message.
type TransportError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	return e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// UserMessage picks the message to show for err: the API's own message,
// then the transport's, then fallback.
func UserMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return fallback
	}

	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		if msg := transportErr.Err.Error(); msg != "" {
			return msg
		}
	}
	return fallback
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Detail  json.RawMessage `json:"detail"`
}

// detailMessage reads a "detail" field that is either a string or a list
// of {msg} objects.
func (e envelope) detailMessage() string {
	if len(e.Detail) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(e.Detail, &s); err == nil {
		return s
	}

	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(e.Detail, &items); err == nil {
		msgs := make([]string, 0, len(items))
		for _, item := range items {
			if item.Msg != "" {
				msgs = append(msgs, item.Msg)
			}
		}
		return strings.Join(msgs, "; ")
	}
	return ""
}

func (e envelope) errorMessage() string {
	if e.Message != "" {
		return e.Message
	}
	return e.detailMessage()
}

func (c *Client) endpoint(query url.Values, segments ...string) string {
	escaped := make([]string, len(segments))
	for i, s := range segments {
		escaped[i] = url.PathEscape(s)
	}
	u := c.baseURL.JoinPath(escaped...)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// do sends one request and decodes the envelope's data into out.
func (c *Client) do(ctx context.Context, op, method, endpoint string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: failed to encode request: %w", op, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("%s: failed to build request: %w", op, err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	slog.Debug("HRMS API request", "op", op, "method", method, "url", endpoint, "request_id", requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Warn("HRMS API unreachable", "op", op, "request_id", requestID, "error", err)
		return &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	ok := resp.StatusCode >= 200 && resp.StatusCode < 300

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		slog.Warn("HRMS API returned an unreadable body", "op", op, "status", resp.StatusCode, "request_id", requestID)
		if ok {
			return &TransportError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("invalid response from HRMS API: %w", err)}
		}
		return &TransportError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("request failed with status code %d", resp.StatusCode)}
	}

	if !ok {
		msg := env.errorMessage()
		slog.Warn("HRMS API request failed", "op", op, "status", resp.StatusCode, "message", msg, "request_id", requestID)
		if msg == "" {
			return &TransportError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("request failed with status code %d", resp.StatusCode)}
		}
		return &APIError{Op: op, StatusCode: resp.StatusCode, Message: msg}
	}

	if !env.Success {
		slog.Warn("HRMS API reported failure", "op", op, "message", env.errorMessage(), "request_id", requestID)
		return &APIError{Op: op, StatusCode: resp.StatusCode, Message: env.errorMessage()}
	}

	if out == nil || len(env.Data) == 0 || bytes.Equal(env.Data, []byte("null")) {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return &TransportError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("invalid %s data: %w", op, err)}
	}
	return nil
}
