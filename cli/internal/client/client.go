// ABOUTME: HTTP client for the workflow sizer API
// ABOUTME: Wraps API calls with proper error handling for CLI usage

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

	"github.com/markalston/workflow-sizer/backend/models"
)

// Client is the API client for the workflow sizer backend
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new API client with the given base URL
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// APIError is a non-2xx response decoded from the error envelope
type APIError struct {
	Status      int
	Message     string
	Details     string
	Suggestions []string
}

func (e *APIError) Error() string {
	msg := "backend error: " + e.Message
	if e.Details != "" {
		msg += " (" + e.Details + ")"
	}
	if len(e.Suggestions) > 0 {
		msg += "; did you mean " + strings.Join(e.Suggestions, ", ") + "?"
	}
	return msg
}

// Health calls GET /api/v1/health
func (c *Client) Health(ctx context.Context) (*models.HealthResponse, error) {
	var health models.HealthResponse
	if err := c.getJSON(ctx, "/api/v1/health", &health); err != nil {
		return nil, err
	}
	return &health, nil
}

// Catalog calls GET /api/v1/catalog
func (c *Client) Catalog(ctx context.Context) (*models.CatalogResponse, error) {
	var cat models.CatalogResponse
	if err := c.getJSON(ctx, "/api/v1/catalog", &cat); err != nil {
		return nil, err
	}
	return &cat, nil
}

// CatalogEntry calls GET /api/v1/catalog/{version}
func (c *Client) CatalogEntry(ctx context.Context, version string) (*models.CatalogEntry, error) {
	var entry models.CatalogEntry
	if err := c.getJSON(ctx, "/api/v1/catalog/"+version, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// Recommend calls POST /api/v1/recommend
func (c *Client) Recommend(ctx context.Context, in models.Inputs) (*models.Plan, error) {
	var plan models.Plan
	if err := c.postJSON(ctx, "/api/v1/recommend", in, &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

// RecommendBatch calls POST /api/v1/recommend/batch
func (c *Client) RecommendBatch(ctx context.Context, items []models.Inputs) ([]models.Plan, error) {
	var resp models.BatchResponse
	if err := c.postJSON(ctx, "/api/v1/recommend/batch", models.BatchRequest{Items: items}, &resp); err != nil {
		return nil, err
	}
	return resp.Plans, nil
}

// Export calls POST /api/v1/export and returns the configuration text
func (c *Client) Export(ctx context.Context, in models.Inputs) (string, error) {
	resp, err := c.post(ctx, "/api/v1/export", in)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", c.handleErrorResponse(resp)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("invalid response from backend: %w", err)
	}
	return strings.TrimRight(string(data), "\n"), nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.handleRequestError(ctx, err)
	}
	defer resp.Body.Close()

	return c.decode(resp, out)
}

func (c *Client) postJSON(ctx context.Context, path string, body, out any) error {
	resp, err := c.post(ctx, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return c.decode(resp, out)
}

func (c *Client) post(ctx context.Context, path string, body any) (*http.Response, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal input: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.handleRequestError(ctx, err)
	}
	return resp, nil
}

func (c *Client) decode(resp *http.Response, out any) error {
	if resp.StatusCode != http.StatusOK {
		return c.handleErrorResponse(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("invalid response from backend: %w", err)
	}
	return nil
}

// handleRequestError converts context errors to user-friendly messages
func (c *Client) handleRequestError(ctx context.Context, err error) error {
	if ctx.Err() == context.Canceled {
		return fmt.Errorf("request canceled")
	}
	if ctx.Err() == context.DeadlineExceeded {
		return fmt.Errorf("request timed out")
	}
	return fmt.Errorf("cannot connect to backend at %s: %w", c.baseURL, err)
}

// handleErrorResponse parses API error responses
func (c *Client) handleErrorResponse(resp *http.Response) error {
	var errResp models.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil || errResp.Error == "" {
		return fmt.Errorf("backend returned status %d", resp.StatusCode)
	}
	return &APIError{
		Status:      resp.StatusCode,
		Message:     errResp.Error,
		Details:     errResp.Details,
		Suggestions: errResp.Suggestions,
	}
}
