package tablestore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/thorryuk/Sekai---Backend/internal/domain"
	"github.com/thorryuk/Sekai---Backend/internal/logger"
	appCtx "github.com/thorryuk/Sekai---Backend/internal/pkg/context"
)

var (
	upstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sekai",
			Subsystem: "tablestore",
			Name:      "requests_total",
			Help:      "Table API requests by table, method and outcome",
		},
		[]string{"table", "method", "status"},
	)

	upstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "sekai",
			Subsystem: "tablestore",
			Name:      "request_duration_seconds",
			Help:      "Table API request duration in seconds",
			Buckets:   []float64{0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"table", "method"},
	)
)

// Row is a record as the table API returns it. Payloads are forwarded
// as-is, so there is no per-table struct.
type Row = map[string]any

// Filter is a single equality condition, rendered as col=eq.value.
type Filter struct {
	Column string
	Value  string
}

func Eq(column, value string) Filter {
	return Filter{Column: column, Value: value}
}

// Client talks to a PostgREST-style table API (Supabase).
// Every request carries the service key in both the apikey and
// Authorization headers, and X-Request-Id from the inbound request.
type Client struct {
	baseURL string
	apiKey  string
	timeout time.Duration
	http    *http.Client
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		timeout: timeout,
		http: &http.Client{
			// No global timeout, each request gets a context deadline.
			Timeout: 0,
		},
	}
}

// Select fetches rows from table matching all filters.
func (c *Client) Select(ctx context.Context, table string, filters ...Filter) ([]Row, error) {
	return c.do(ctx, http.MethodGet, table, nil, filters)
}

// Insert creates rows and returns the created representation.
func (c *Client) Insert(ctx context.Context, table string, payload any) ([]Row, error) {
	return c.do(ctx, http.MethodPost, table, payload, nil)
}

// Update patches rows matching the filters and returns the updated rows.
func (c *Client) Update(ctx context.Context, table string, payload any, filters ...Filter) ([]Row, error) {
	return c.do(ctx, http.MethodPatch, table, payload, filters)
}

// Delete removes rows matching the filters and returns the deleted rows.
func (c *Client) Delete(ctx context.Context, table string, filters ...Filter) ([]Row, error) {
	return c.do(ctx, http.MethodDelete, table, nil, filters)
}

func (c *Client) do(ctx context.Context, method, table string, payload any, filters []Filter) ([]Row, error) {
	u := fmt.Sprintf("%s/rest/v1/%s", c.baseURL, table)
	if len(filters) > 0 {
		q := url.Values{}
		for _, f := range filters {
			q.Set(f.Column, "eq."+f.Value)
		}
		u += "?" + q.Encode()
	}

	var body io.Reader
	if payload != nil {
		jsonBody, err := json.Marshal(payload)
		if err != nil {
			return nil, domain.ErrInternal(err)
		}
		body = bytes.NewReader(jsonBody)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, domain.ErrInternal(err)
	}

	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Prefer", "return=representation")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if reqID := appCtx.GetRequestID(ctx); reqID != "" {
		req.Header.Set("X-Request-Id", reqID)
	}

	log := logger.Log.With().
		Str("method", method).
		Str("table", table).
		Logger()

	start := time.Now()
	resp, err := c.http.Do(req)
	duration := time.Since(start)
	upstreamRequestDuration.WithLabelValues(table, method).Observe(duration.Seconds())
	if err != nil {
		upstreamRequestsTotal.WithLabelValues(table, method, "error").Inc()
		log.Warn().
			Err(err).
			Dur("duration", duration).
			Msg("tablestore_request_failed")
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, domain.ErrUpstream("upstream timeout", err)
		}
		return nil, domain.ErrUpstream("upstream unavailable", err)
	}
	defer resp.Body.Close()

	upstreamRequestsTotal.WithLabelValues(table, method, strconv.Itoa(resp.StatusCode)).Inc()
	log.Debug().
		Int("status", resp.StatusCode).
		Dur("duration", duration).
		Msg("tablestore_request_completed")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, decodeError(resp)
	}

	// PostgREST answers with a JSON array even for single-row operations.
	// DELETE without representation may answer 204 with an empty body.
	if resp.StatusCode == http.StatusNoContent {
		return []Row{}, nil
	}

	var rows []Row
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, domain.ErrUpstream("invalid upstream response", err)
	}
	if rows == nil {
		rows = []Row{}
	}
	return rows, nil
}

// decodeError surfaces the table API's own message when it has one.
func decodeError(resp *http.Response) error {
	var apiErr struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Message != "" {
		return domain.ErrUpstream(apiErr.Message, nil)
	}
	return domain.ErrUpstream(fmt.Sprintf("unexpected upstream status: %d", resp.StatusCode), nil)
}
