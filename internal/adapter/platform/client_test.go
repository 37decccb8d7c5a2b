package platform

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"traffic-controller/internal/config/configs"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(configs.Platform{
		BaseURL:      srv.URL + "/",
		APIToken:     "secret",
		Timeout:      2 * time.Second,
		MaxAttempts:  3,
		RetryBackoff: time.Millisecond,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestPauseSendsCampaignIDs(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/v1/campaigns/pause", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))

		var body map[string][]int64
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, []int64{995}, body["campaign_ids"])
		_, _ = w.Write([]byte(`{"success":[995],"failed":[]}`))
	})
	require.NoError(t, c.Pause(context.Background(), "995"))
}

func TestActivateRejectedCampaign(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/campaigns/run", r.URL.Path)
		_, _ = w.Write([]byte(`{"success":[],"failed":[995]}`))
	})
	err := c.Activate(context.Background(), "995")

	var pe *Error
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "activate", pe.Op)
	assert.False(t, pe.Temporary())
}

func TestSetBudgetAndEndTime(t *testing.T) {
	var bodies []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/v1/campaigns/abc-1", r.URL.Path)
		raw, _ := io.ReadAll(r.Body)
		bodies = append(bodies, string(raw))
		_, _ = w.Write([]byte(`{}`))
	})
	ctx := context.Background()
	require.NoError(t, c.SetBudget(ctx, "abc-1", decimal.RequireFromString("12.3")))
	end := time.Date(2024, 6, 1, 23, 59, 0, 0, time.FixedZone("X", 3600))
	require.NoError(t, c.SetEndTime(ctx, "abc-1", end))

	assert.Equal(t, []string{
		`{"max_daily":12.3000}`,
		`{"schedule_end_time":"2024-06-01 22:59:00"}`,
	}, bodies)
}

func TestGetDailySpendSumsRows(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/reports/by-day", r.URL.Path)
		assert.Equal(t, "77", r.URL.Query().Get("campaign_id"))
		assert.Equal(t, "2024-06-01", r.URL.Query().Get("date_from"))
		assert.Equal(t, "2024-06-01", r.URL.Query().Get("date_to"))
		_, _ = w.Write([]byte(`{"response":[{"day":"2024-06-01","amount":7.25},{"day":"2024-06-01","amount":"3.1"}]}`))
	})
	spend, err := c.GetDailySpend(context.Background(), "77", time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "10.35", spend.String())
}

func TestGetDailySpendMalformedReport(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":null}`))
	})
	_, err := c.GetDailySpend(context.Background(), "77", time.Now())
	var pe *Error
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "get_daily_spend", pe.Op)
}

func TestRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	ids := make(map[string]bool)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		ids[r.Header.Get("X-Request-ID")] = true
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte(`{"message":"upstream down"}`))
			return
		}
		_, _ = w.Write([]byte(`{"success":[1]}`))
	})
	require.NoError(t, c.Pause(context.Background(), "1"))
	assert.Equal(t, int32(3), calls.Load())
	assert.Len(t, ids, 1)
}

func TestGivesUpAfterMaxAttempts(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":{"message":"maintenance"}}`))
	})
	err := c.Pause(context.Background(), "1")

	var pe *Error
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, http.StatusServiceUnavailable, pe.StatusCode)
	assert.Equal(t, "maintenance", pe.Message)
	assert.Equal(t, int32(3), calls.Load())
}

func TestDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`max_daily must be positive`))
	})
	err := c.SetBudget(context.Background(), "1", decimal.Zero)

	var pe *Error
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, http.StatusUnprocessableEntity, pe.StatusCode)
	assert.Equal(t, "max_daily must be positive", pe.Message)
	assert.Equal(t, int32(1), calls.Load())
}

func TestContextCancellationStopsRetries(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})
	c.backoff = time.Hour
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := c.Pause(ctx, "1")
	require.Error(t, err)
	assert.True(t, errors.Is(ctx.Err(), context.DeadlineExceeded))
}
