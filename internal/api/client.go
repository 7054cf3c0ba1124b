// Package api is the JSON-over-HTTP client for the external prediction service.
package api

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

// Service is the prediction-service surface consumed by the controllers and
// the TUI. *Client implements it; tests substitute a fake.
type Service interface {
	Health(ctx context.Context) (HealthResponse, error)
	RecommendByIndex(ctx context.Context, req RecommendByIndexRequest) (Recommendation, error)
	RecommendFromFeatures(ctx context.Context, req RecommendFromFeaturesRequest) (Recommendation, error)
	BookingWeekByIndex(ctx context.Context, req BookingWeekByIndexRequest) (BookingWeek, error)
	BookingWeekFromFeatures(ctx context.Context, req BookingWeekFromFeaturesRequest) (BookingWeek, error)
}

// Client talks to one prediction service instance.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

var _ Service = (*Client)(nil)

// NewClient creates a client for the given base URL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// SetBaseURL points the client at a different service instance. Used by the
// settings view; not safe while a request is in flight.
func (c *Client) SetBaseURL(baseURL string) {
	c.baseURL = strings.TrimSuffix(baseURL, "/")
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string { return c.baseURL }

func (c *Client) Health(ctx context.Context) (HealthResponse, error) {
	var out HealthResponse
	err := c.do(ctx, http.MethodGet, "/health", nil, &out)
	return out, err
}

func (c *Client) RecommendByIndex(ctx context.Context, req RecommendByIndexRequest) (Recommendation, error) {
	var out Recommendation
	err := c.do(ctx, http.MethodPost, "/recommend_by_index", req, &out)
	return out, err
}

func (c *Client) RecommendFromFeatures(ctx context.Context, req RecommendFromFeaturesRequest) (Recommendation, error) {
	var out Recommendation
	err := c.do(ctx, http.MethodPost, "/recommend_from_features", req, &out)
	return out, err
}

func (c *Client) BookingWeekByIndex(ctx context.Context, req BookingWeekByIndexRequest) (BookingWeek, error) {
	var out BookingWeek
	err := c.do(ctx, http.MethodPost, "/booking_week_by_index", req, &out)
	return out, err
}

func (c *Client) BookingWeekFromFeatures(ctx context.Context, req BookingWeekFromFeaturesRequest) (BookingWeek, error) {
	var out BookingWeek
	err := c.do(ctx, http.MethodPost, "/booking_week_from_features", req, &out)
	return out, err
}

// do sends one request and decodes the response into out. The body is read
// as text first; an empty body is treated as null and leaves out untouched.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	text, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp.StatusCode, text)
	}

	if len(bytes.TrimSpace(text)) == 0 || out == nil {
		return nil
	}
	if err := json.Unmarshal(text, out); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}
	return nil
}

// statusError extracts a server-supplied message from a detail or message
// field when present, else falls back to a generic message with the code.
func statusError(status int, body []byte) error {
	var payload struct {
		Detail  string `json:"detail"`
		Message string `json:"message"`
	}
	if len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, &payload); err == nil {
			if payload.Detail != "" {
				return fmt.Errorf("%s", payload.Detail)
			}
			if payload.Message != "" {
				return fmt.Errorf("%s", payload.Message)
			}
		}
	}
	return fmt.Errorf("request failed (%d)", status)
}
