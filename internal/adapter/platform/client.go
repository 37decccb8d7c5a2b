// Package platform is the outbound adapter to the external ad-buying
// platform. It implements port.PlatformClient over the platform's JSON HTTP
// API with bounded retries.
package platform

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
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"

	"traffic-controller/internal/config/configs"
)

const (
	endTimeLayout = "2006-01-02 15:04:05"
	reportDate    = "2006-01-02"
)

// Error is a failed platform call. StatusCode is the HTTP status, or zero when
// the request never got a response.
type Error struct {
	Op         string
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("platform %s: %s", e.Op, e.Message)
	}
	return fmt.Sprintf("platform %s: status %d: %s", e.Op, e.StatusCode, e.Message)
}

// Temporary reports whether retrying the call may succeed.
func (e *Error) Temporary() bool {
	return e.StatusCode == 0 || e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

// Client talks to the platform API.
type Client struct {
	baseURL     string
	token       string
	maxAttempts int
	backoff     time.Duration
	httpClient  *http.Client
	logger      *slog.Logger
}

// NewClient builds a client from configuration.
func NewClient(cfg configs.Platform, logger *slog.Logger) *Client {
	attempts := cfg.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	return &Client{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		token:       cfg.APIToken,
		maxAttempts: attempts,
		backoff:     cfg.RetryBackoff,
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		logger:      logger,
	}
}

// Pause stops delivery of the campaign.
func (c *Client) Pause(ctx context.Context, campaignID string) error {
	return c.bulkAction(ctx, "pause", "/v1/campaigns/pause", campaignID)
}

// Activate resumes delivery of the campaign.
func (c *Client) Activate(ctx context.Context, campaignID string) error {
	return c.bulkAction(ctx, "activate", "/v1/campaigns/run", campaignID)
}

// SetEndTime schedules the campaign to stop at end (sent in UTC).
func (c *Client) SetEndTime(ctx context.Context, campaignID string, end time.Time) error {
	body := map[string]any{"schedule_end_time": end.UTC().Format(endTimeLayout)}
	_, err := c.do(ctx, "set_end_time", http.MethodPatch, "/v1/campaigns/"+url.PathEscape(campaignID), body)
	return err
}

// SetBudget sets the campaign's daily budget.
func (c *Client) SetBudget(ctx context.Context, campaignID string, amount decimal.Decimal) error {
	body := map[string]any{"max_daily": json.Number(amount.StringFixed(4))}
	_, err := c.do(ctx, "set_budget", http.MethodPatch, "/v1/campaigns/"+url.PathEscape(campaignID), body)
	return err
}

// GetDailySpend returns the amount the campaign spent on the given day.
func (c *Client) GetDailySpend(ctx context.Context, campaignID string, date time.Time) (decimal.Decimal, error) {
	day := date.UTC().Format(reportDate)
	q := url.Values{}
	q.Set("campaign_id", campaignID)
	q.Set("date_from", day)
	q.Set("date_to", day)

	raw, err := c.do(ctx, "get_daily_spend", http.MethodGet, "/v1/reports/by-day?"+q.Encode(), nil)
	if err != nil {
		return decimal.Zero, err
	}

	rows := gjson.GetBytes(raw, "response")
	if !rows.IsArray() {
		return decimal.Zero, &Error{Op: "get_daily_spend", StatusCode: http.StatusOK, Message: "report has no response array"}
	}
	total := decimal.Zero
	var parseErr error
	rows.ForEach(func(_, row gjson.Result) bool {
		amount := row.Get("amount")
		if !amount.Exists() {
			return true
		}
		v, err := decimal.NewFromString(amount.String())
		if err != nil {
			parseErr = fmt.Errorf("report amount %q: %w", amount.Raw, err)
			return false
		}
		total = total.Add(v)
		return true
	})
	if parseErr != nil {
		return decimal.Zero, &Error{Op: "get_daily_spend", StatusCode: http.StatusOK, Message: parseErr.Error()}
	}
	return total, nil
}

func (c *Client) bulkAction(ctx context.Context, op, path, campaignID string) error {
	var ids any = []string{campaignID}
	if n, err := strconv.ParseInt(campaignID, 10, 64); err == nil {
		ids = []int64{n}
	}
	raw, err := c.do(ctx, op, http.MethodPut, path, map[string]any{"campaign_ids": ids})
	if err != nil {
		return err
	}
	failed := gjson.GetBytes(raw, "failed")
	if failed.IsArray() && len(failed.Array()) > 0 {
		return &Error{Op: op, StatusCode: http.StatusOK, Message: "platform rejected campaign " + campaignID}
	}
	return nil
}

// do sends the request, retrying transport failures, 429 and 5xx responses
// until maxAttempts is reached or ctx is done. All attempts share one
// request id.
func (c *Client) do(ctx context.Context, op, method, path string, body any) ([]byte, error) {
	var payload []byte
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			return nil, fmt.Errorf("platform %s: encode request: %w", op, err)
		}
	}
	requestID := uuid.NewString()

	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		raw, err := c.send(ctx, op, method, path, payload, requestID)
		if err == nil {
			return raw, nil
		}
		lastErr = err

		var pe *Error
		if !errors.As(err, &pe) || !pe.Temporary() || attempt == c.maxAttempts {
			break
		}
		c.logger.Warn("platform call failed, retrying",
			slog.String("op", op),
			slog.Int("attempt", attempt),
			slog.String("request_id", requestID),
			slog.Any("error", err),
		)
		select {
		case <-ctx.Done():
			return nil, &Error{Op: op, Message: ctx.Err().Error()}
		case <-time.After(c.backoff * time.Duration(attempt)):
		}
	}
	return nil, lastErr
}

func (c *Client) send(ctx context.Context, op, method, path string, payload []byte, requestID string) ([]byte, error) {
	var rd io.Reader
	if payload != nil {
		rd = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return nil, fmt.Errorf("platform %s: build request: %w", op, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{Op: op, Message: err.Error()}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, &Error{Op: op, StatusCode: resp.StatusCode, Message: "read response: " + err.Error()}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Error{Op: op, StatusCode: resp.StatusCode, Message: errorMessage(raw, resp.Status)}
	}
	return raw, nil
}

func errorMessage(raw []byte, fallback string) string {
	if !gjson.ValidBytes(raw) {
		if s := strings.TrimSpace(string(raw)); s != "" {
			return s
		}
		return fallback
	}
	for _, path := range []string{"message", "error.message", "error_description", "error"} {
		if v := gjson.GetBytes(raw, path); v.Exists() && v.Type == gjson.String && v.String() != "" {
			return v.String()
		}
	}
	return fallback
}
