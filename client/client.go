// File: questly/client/client.go

// Package client is the thin HTTP layer of the Go SDK. It speaks the REST
// API, attaches auth and device headers, and turns non-2xx responses into
// typed APIError values the loader's retry policy can classify.
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

	"questly/models"
)

const defaultTimeout = 10 * time.Second

// APIError is a non-2xx response from the API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// IsServerError reports whether the error is a 5xx response.
func (e *APIError) IsServerError() bool {
	return e.Status >= 500
}

// Config configures a Client. BaseURL and Token are required; the device
// fields identify this installation to the API the same way the mobile apps
// do.
type Config struct {
	BaseURL    string
	Token      string
	DeviceID   string
	DeviceName string
	Platform   string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client is a thin REST client. Safe for concurrent use.
type Client struct {
	baseURL    string
	token      string
	deviceID   string
	deviceName string
	platform   string
	http       *http.Client
}

func New(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	platform := cfg.Platform
	if platform == "" {
		platform = "go-sdk"
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		token:      cfg.Token,
		deviceID:   cfg.DeviceID,
		deviceName: cfg.DeviceName,
		platform:   platform,
		http:       httpClient,
	}
}

// DashboardOverview fetches the caller's role-scoped dashboard aggregate.
func (c *Client) DashboardOverview(ctx context.Context) (*models.DashboardOverview, error) {
	var overview models.DashboardOverview
	if err := c.do(ctx, http.MethodGet, "/api/dashboard/overview", nil, &overview); err != nil {
		return nil, err
	}
	return &overview, nil
}

// RecentActivity fetches persisted feed history to seed a feed before the
// live socket attaches.
func (c *Client) RecentActivity(ctx context.Context, limit int) ([]models.Activity, error) {
	var resp struct {
		Activities []models.Activity `json:"activities"`
	}
	path := fmt.Sprintf("/api/activity?limit=%d", limit)
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Activities, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("X-Device-ID", c.deviceID)
	req.Header.Set("X-Device-Name", c.deviceName)
	req.Header.Set("X-Platform", c.platform)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.apiError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) apiError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode, Message: resp.Status}

	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&body); err == nil && body.Error != "" {
		apiErr.Message = body.Error
	}
	return apiErr
}
