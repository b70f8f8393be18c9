// Package client provides a Go client for the kektorpath HTTP API.
//
// It covers path and neighborhood queries, door control, solver reset and
// introspection. The client handles JSON encoding and turns error responses
// into *APIError values.
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
)

// --- Custom Errors ---

// APIError represents an error returned by the kektorpath API (status >= 400).
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (status %d): %s", e.StatusCode, e.Message)
}

// --- JSON Structs ---

// Point is a map cell as [x, y].
type Point [2]int

type PathResult struct {
	Status       string  `json:"status"`
	Cost         float64 `json:"cost"`
	Path         []Point `json:"path"`
	Checksum     uint64  `json:"checksum"`
	Expanded     int     `json:"expanded"`
	StraightLine float64 `json:"straight_line"`
}

type NearCell struct {
	Cell Point   `json:"cell"`
	Cost float64 `json:"cost"`
}

type Stats struct {
	Generation     uint32  `json:"generation"`
	Blocks         int     `json:"blocks"`
	NodesAllocated int     `json:"nodes_allocated"`
	NodesIndexed   int     `json:"nodes_indexed"`
	CacheCapacity  int     `json:"cache_capacity"`
	CacheUsed      int     `json:"cache_used"`
	CacheHits      int     `json:"cache_hits"`
	CacheMisses    int     `json:"cache_misses"`
	HitFraction    float64 `json:"hit_fraction"`
	MemoryFraction float64 `json:"memory_fraction"`
	Width          int     `json:"width"`
	Height         int     `json:"height"`
	DoorsOpen      bool    `json:"doors_open"`
	Checksum       uint64  `json:"checksum"`
}

type MapInfo struct {
	Map       string `json:"map"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	DoorsOpen bool   `json:"doors_open"`
}

// --- Client ---

// Client talks to one kektorpath server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for baseURL, e.g. "http://localhost:9191".
func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// jsonRequest executes one API call. A non-nil out receives the decoded
// response body.
func (c *Client) jsonRequest(ctx context.Context, method, endpoint string, payload, out any) error {
	var reqBody io.Reader
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal JSON payload: %w", err)
		}
		reqBody = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("connection error: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		if json.Unmarshal(respBody, &errResp) == nil && errResp["error"] != "" {
			return &APIError{StatusCode: resp.StatusCode, Message: errResp["error"]}
		}
		return &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(respBody))}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// FindPath asks for the cheapest walk between two cells.
func (c *Client) FindPath(ctx context.Context, from, to Point) (*PathResult, error) {
	payload := map[string]any{"from": from, "to": to}
	var res PathResult
	if err := c.jsonRequest(ctx, http.MethodPost, "/path", payload, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Near lists the cells reachable from from within maxCost, cheapest first.
func (c *Client) Near(ctx context.Context, from Point, maxCost float64) ([]NearCell, error) {
	payload := map[string]any{"from": from, "max_cost": maxCost}
	var res struct {
		Cells []NearCell `json:"cells"`
	}
	if err := c.jsonRequest(ctx, http.MethodPost, "/near", payload, &res); err != nil {
		return nil, err
	}
	return res.Cells, nil
}

// SetDoors opens or closes every door and returns the resulting state.
func (c *Client) SetDoors(ctx context.Context, open bool) (bool, error) {
	var res struct {
		DoorsOpen bool `json:"doors_open"`
	}
	if err := c.jsonRequest(ctx, http.MethodPut, "/doors", map[string]bool{"open": open}, &res); err != nil {
		return false, err
	}
	return res.DoorsOpen, nil
}

// Reset clears the server's solver state.
func (c *Client) Reset(ctx context.Context) error {
	return c.jsonRequest(ctx, http.MethodPost, "/reset", nil, nil)
}

func (c *Client) Stats(ctx context.Context) (*Stats, error) {
	var st Stats
	if err := c.jsonRequest(ctx, http.MethodGet, "/stats", nil, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

func (c *Client) Map(ctx context.Context) (*MapInfo, error) {
	var m MapInfo
	if err := c.jsonRequest(ctx, http.MethodGet, "/map", nil, &m); err != nil {
		return nil, err
	}
	return &m, nil
}
