package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/claude/push/internal/models"
	"github.com/claude/push/internal/rotation"
	"github.com/claude/push/internal/state"
)

// HTTPClient implements DataSource by calling the Push REST API.
// Used for remote MCP mode where the binary runs locally (stdio) but
// the workouts live on the remote server.
type HTTPClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Compile-time check: HTTPClient satisfies DataSource.
var _ DataSource = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTPClient targeting the given base URL. The
// API key is sent on mutating requests when not empty.
func NewHTTPClient(baseURL, apiKey string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body any, out any) error {
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("httpclient: encode body: %w", err)
		}
		r = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, r)
	if err != nil {
		return fmt.Errorf("httpclient: create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" && method != http.MethodGet {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("httpclient: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("httpclient: read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("httpclient: %s returned %d: %s", path, resp.StatusCode, apiErr.Error)
		}
		return fmt.Errorf("httpclient: %s returned %d: %s", path, resp.StatusCode, data)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("httpclient: decode %s: %w", path, err)
	}
	return nil
}

func (c *HTTPClient) Workouts(ctx context.Context) (models.Triple, error) {
	var t models.Triple
	err := c.do(ctx, http.MethodGet, "/api/v1/workouts", nil, &t)
	return t, err
}

func (c *HTTPClient) ExerciseViews(ctx context.Context, exerciseID string) (state.ExerciseViews, error) {
	var v state.ExerciseViews
	err := c.do(ctx, http.MethodGet, "/api/v1/exercises/"+url.PathEscape(exerciseID)+"/views", nil, &v)
	return v, err
}

func (c *HTTPClient) PlanNextSet(ctx context.Context, exerciseID, setID string, field models.FieldName, value *float64) (models.PlanSet, error) {
	path := fmt.Sprintf("/api/v1/next/exercises/%s/sets/%s/%s",
		url.PathEscape(exerciseID), url.PathEscape(setID), field)
	var set models.PlanSet
	err := c.do(ctx, http.MethodPut, path, map[string]*float64{"value": value}, &set)
	return set, err
}

func (c *HTTPClient) CheckRotation(ctx context.Context) (rotation.Outcome, error) {
	var out rotation.Outcome
	err := c.do(ctx, http.MethodPost, "/api/v1/session/foreground", nil, &out)
	return out, err
}
