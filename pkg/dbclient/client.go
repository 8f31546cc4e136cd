// Package dbclient is a thin HTTP client for the alexdb collaborator,
// grounded on the original alex-db-client's connect/context/requests
// split: New carries the base URL and credential, per-request calls
// build on top of it.
package dbclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/alexdb/alexdb/internal/store/value"
)

// Client talks to a running alexdb HTTP collaborator.
type Client struct {
	baseURL    string
	authToken  string
	httpClient *http.Client
}

// New constructs a Client targeting baseURL (e.g. "http://127.0.0.1:8080").
// authToken is sent as X-Auth-Token on every request; pass "" when the
// server has authentication disabled.
func New(baseURL, authToken string) *Client {
	return &Client{
		baseURL:   baseURL,
		authToken: authToken,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Response mirrors store.Response for client-side decoding.
type Response struct {
	Key   string      `json:"key"`
	Value value.Value `json:"value"`
}

// Stats mirrors stats.Snapshot for client-side decoding.
type Stats struct {
	Reads       uint64 `json:"reads"`
	Writes      uint64 `json:"writes"`
	Requests    uint64 `json:"requests"`
	SavedWrites uint64 `json:"saved_writes"`
}

func (c *Client) do(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("dbclient: encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("dbclient: build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.authToken != "" {
		req.Header.Set("X-Auth-Token", c.authToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("dbclient: request: %w", err)
	}
	return resp, nil
}

// APIError is returned when the server responds with a non-2xx status.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("dbclient: server returned %d: %s", e.Status, e.Message)
}

func decodeOrError[T any](resp *http.Response) (T, error) {
	defer resp.Body.Close()
	var zero T
	if resp.StatusCode >= 300 {
		var body struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&body)
		return zero, &APIError{Status: resp.StatusCode, Message: body.Message}
	}
	var out T
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return zero, fmt.Errorf("dbclient: decode response: %w", err)
	}
	return out, nil
}

// Get fetches the value stored under key.
func (c *Client) Get(ctx context.Context, key string) (Response, error) {
	resp, err := c.do(ctx, http.MethodGet, "/values/"+url.PathEscape(key), nil)
	if err != nil {
		return Response{}, err
	}
	return decodeOrError[Response](resp)
}

// Set creates a record with the given key, value and optional TTL in
// seconds.
func (c *Client) Set(ctx context.Context, key string, v value.Value, ttl *int64) (Response, error) {
	resp, err := c.do(ctx, http.MethodPost, "/values", map[string]any{"key": key, "value": v, "ttl": ttl})
	if err != nil {
		return Response{}, err
	}
	return decodeOrError[Response](resp)
}

// Delete removes the record stored under key.
func (c *Client) Delete(ctx context.Context, key string) error {
	resp, err := c.do(ctx, http.MethodDelete, "/values/"+url.PathEscape(key), nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		var body struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&body)
		return &APIError{Status: resp.StatusCode, Message: body.Message}
	}
	return nil
}

// List fetches records matching the given query parameters. Any of
// direction/sort/limit/page may be empty/nil to use server defaults.
func (c *Client) List(ctx context.Context, direction, sort string, limit, page *int) ([]Response, error) {
	q := url.Values{}
	if direction != "" {
		q.Set("direction", direction)
	}
	if sort != "" {
		q.Set("sort", sort)
	}
	if limit != nil {
		q.Set("limit", strconv.Itoa(*limit))
	}
	if page != nil {
		q.Set("page", strconv.Itoa(*page))
	}
	path := "/values"
	if encoded := q.Encode(); encoded != "" {
		path += "?" + encoded
	}
	resp, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	return decodeOrError[[]Response](resp)
}

// Append concatenates elems onto the array stored under key.
func (c *Client) Append(ctx context.Context, key string, elems value.Value) (Response, error) {
	resp, err := c.do(ctx, http.MethodPut, "/values/"+url.PathEscape(key)+"/append", map[string]any{"append": elems})
	if err != nil {
		return Response{}, err
	}
	return decodeOrError[Response](resp)
}

// Prepend prepends elems onto the array stored under key.
func (c *Client) Prepend(ctx context.Context, key string, elems value.Value) (Response, error) {
	resp, err := c.do(ctx, http.MethodPut, "/values/"+url.PathEscape(key)+"/prepend", map[string]any{"prepend": elems})
	if err != nil {
		return Response{}, err
	}
	return decodeOrError[Response](resp)
}

// PopBack pops up to n elements from the back of the array stored
// under key. n may be nil to use the server default (1).
func (c *Client) PopBack(ctx context.Context, key string, n *int) ([]value.Value, error) {
	resp, err := c.do(ctx, http.MethodPut, "/values/"+url.PathEscape(key)+"/pop-back", map[string]any{"pop_back": n})
	if err != nil {
		return nil, err
	}
	return decodeOrError[[]value.Value](resp)
}

// PopFront pops up to n elements from the front of the array stored
// under key. n may be nil to use the server default (1).
func (c *Client) PopFront(ctx context.Context, key string, n *int) ([]value.Value, error) {
	resp, err := c.do(ctx, http.MethodPut, "/values/"+url.PathEscape(key)+"/pop-front", map[string]any{"pop_front": n})
	if err != nil {
		return nil, err
	}
	return decodeOrError[[]value.Value](resp)
}

// Increment adds the magnitude of n (default 1) to the integer stored
// under key.
func (c *Client) Increment(ctx context.Context, key string, n *int64) (Response, error) {
	resp, err := c.do(ctx, http.MethodPut, "/values/"+url.PathEscape(key)+"/increment", map[string]any{"increment": n})
	if err != nil {
		return Response{}, err
	}
	return decodeOrError[Response](resp)
}

// Decrement subtracts the magnitude of n (default 1) from the integer
// stored under key.
func (c *Client) Decrement(ctx context.Context, key string, n *int64) (Response, error) {
	resp, err := c.do(ctx, http.MethodPut, "/values/"+url.PathEscape(key)+"/decrement", map[string]any{"decrement": n})
	if err != nil {
		return Response{}, err
	}
	return decodeOrError[Response](resp)
}

// GetStats fetches the server's operation counters.
func (c *Client) GetStats(ctx context.Context) (Stats, error) {
	resp, err := c.do(ctx, http.MethodGet, "/stats", nil)
	if err != nil {
		return Stats{}, err
	}
	return decodeOrError[Stats](resp)
}
