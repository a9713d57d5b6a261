// Package client talks to the netwatch API and keeps polled snapshots of
// its collections for consumers that render them.
package client

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

	"netwatch/internal/models"
)

// APIError carries the server's status code and message body.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.StatusCode, e.Message)
}

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var payload struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&payload)
		return &APIError{StatusCode: resp.StatusCode, Message: payload.Message}
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func getJSON[T any](ctx context.Context, c *Client, path string, query url.Values) (T, error) {
	var out T
	err := c.do(ctx, http.MethodGet, path, query, nil, &out)
	return out, err
}

func sendJSON[T any](ctx context.Context, c *Client, method, path string, body any) (*T, error) {
	var out T
	if err := c.do(ctx, method, path, nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func limitQuery(limit int) url.Values {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	return q
}

func (c *Client) Devices(ctx context.Context) ([]models.Device, error) {
	return getJSON[[]models.Device](ctx, c, "/api/devices", nil)
}

func (c *Client) Device(ctx context.Context, id uint) (*models.Device, error) {
	d, err := getJSON[models.Device](ctx, c, fmt.Sprintf("/api/devices/%d", id), nil)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (c *Client) CreateDevice(ctx context.Context, in models.DeviceInput) (*models.Device, error) {
	return sendJSON[models.Device](ctx, c, http.MethodPost, "/api/devices", in)
}

func (c *Client) UpdateDevice(ctx context.Context, id uint, in models.DeviceUpdate) (*models.Device, error) {
	return sendJSON[models.Device](ctx, c, http.MethodPut, fmt.Sprintf("/api/devices/%d", id), in)
}

func (c *Client) DeleteDevice(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/devices/%d", id), nil, nil, nil)
}

func (c *Client) BandwidthMetrics(ctx context.Context, deviceID *uint, limit int) ([]models.BandwidthMetric, error) {
	q := limitQuery(limit)
	if deviceID != nil {
		q.Set("deviceId", strconv.FormatUint(uint64(*deviceID), 10))
	}
	return getJSON[[]models.BandwidthMetric](ctx, c, "/api/bandwidth-metrics", q)
}

func (c *Client) CreateBandwidthMetric(ctx context.Context, in models.BandwidthMetricInput) (*models.BandwidthMetric, error) {
	return sendJSON[models.BandwidthMetric](ctx, c, http.MethodPost, "/api/bandwidth-metrics", in)
}

func (c *Client) LatestSystemMetric(ctx context.Context) (*models.SystemMetric, error) {
	m, err := getJSON[models.SystemMetric](ctx, c, "/api/system-metrics/latest", nil)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (c *Client) SystemMetricHistory(ctx context.Context, limit int) ([]models.SystemMetric, error) {
	return getJSON[[]models.SystemMetric](ctx, c, "/api/system-metrics/history", limitQuery(limit))
}

func (c *Client) CreateSystemMetric(ctx context.Context, in models.SystemMetricInput) (*models.SystemMetric, error) {
	return sendJSON[models.SystemMetric](ctx, c, http.MethodPost, "/api/system-metrics", in)
}

func (c *Client) GenerateMockData(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/generate-mock-data", nil, nil, nil)
}

func (c *Client) SecurityEvents(ctx context.Context, status string, limit int) ([]models.SecurityEvent, error) {
	q := limitQuery(limit)
	if status != "" {
		q.Set("status", status)
	}
	return getJSON[[]models.SecurityEvent](ctx, c, "/api/security-events", q)
}

func (c *Client) CreateSecurityEvent(ctx context.Context, in models.SecurityEventInput) (*models.SecurityEvent, error) {
	return sendJSON[models.SecurityEvent](ctx, c, http.MethodPost, "/api/security-events", in)
}

func (c *Client) UpdateSecurityEvent(ctx context.Context, id uint, in models.SecurityEventUpdate) (*models.SecurityEvent, error) {
	return sendJSON[models.SecurityEvent](ctx, c, http.MethodPut, fmt.Sprintf("/api/security-events/%d", id), in)
}

func (c *Client) DeleteSecurityEvent(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/security-events/%d", id), nil, nil, nil)
}

func (c *Client) IdsRules(ctx context.Context) ([]models.IdsRule, error) {
	return getJSON[[]models.IdsRule](ctx, c, "/api/ids-rules", nil)
}

func (c *Client) CreateIdsRule(ctx context.Context, in models.IdsRuleInput) (*models.IdsRule, error) {
	return sendJSON[models.IdsRule](ctx, c, http.MethodPost, "/api/ids-rules", in)
}

func (c *Client) UpdateIdsRule(ctx context.Context, id uint, in models.IdsRuleUpdate) (*models.IdsRule, error) {
	return sendJSON[models.IdsRule](ctx, c, http.MethodPut, fmt.Sprintf("/api/ids-rules/%d", id), in)
}

func (c *Client) DeleteIdsRule(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/ids-rules/%d", id), nil, nil, nil)
}

func (c *Client) PasswordVaults(ctx context.Context) ([]models.PasswordVault, error) {
	return getJSON[[]models.PasswordVault](ctx, c, "/api/password-vaults", nil)
}

func (c *Client) CreatePasswordVault(ctx context.Context, in models.PasswordVaultInput) (*models.PasswordVault, error) {
	return sendJSON[models.PasswordVault](ctx, c, http.MethodPost, "/api/password-vaults", in)
}

func (c *Client) UpdatePasswordVault(ctx context.Context, id uint, in models.PasswordVaultUpdate) (*models.PasswordVault, error) {
	return sendJSON[models.PasswordVault](ctx, c, http.MethodPut, fmt.Sprintf("/api/password-vaults/%d", id), in)
}

func (c *Client) DeletePasswordVault(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/password-vaults/%d", id), nil, nil, nil)
}

func (c *Client) PasswordEntries(ctx context.Context, vaultID *uint) ([]models.PasswordEntry, error) {
	q := url.Values{}
	if vaultID != nil {
		q.Set("vaultId", strconv.FormatUint(uint64(*vaultID), 10))
	}
	return getJSON[[]models.PasswordEntry](ctx, c, "/api/password-entries", q)
}

func (c *Client) CreatePasswordEntry(ctx context.Context, in models.PasswordEntryInput) (*models.PasswordEntry, error) {
	return sendJSON[models.PasswordEntry](ctx, c, http.MethodPost, "/api/password-entries", in)
}

func (c *Client) UpdatePasswordEntry(ctx context.Context, id uint, in models.PasswordEntryUpdate) (*models.PasswordEntry, error) {
	return sendJSON[models.PasswordEntry](ctx, c, http.MethodPut, fmt.Sprintf("/api/password-entries/%d", id), in)
}

func (c *Client) DeletePasswordEntry(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/password-entries/%d", id), nil, nil, nil)
}
