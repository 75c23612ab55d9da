// Package recordstore is the HTTP client for the external book record store,
// the source of truth for book rows. It exposes the four CRUD calls the
// catalog consumes and surfaces remote failures verbatim.
package recordstore

import (
	"bytes"
	"context"
	"encoding/json/v2"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/shelfline/shelfline-server/internal/domain"
	"github.com/shelfline/shelfline-server/internal/errors"
	"github.com/shelfline/shelfline-server/internal/metrics"
)

const (
	defaultTimeout = 30 * time.Second
	defaultRPS     = 20
	defaultBurst   = 10
)

// Config holds client settings. Zero values fall back to defaults.
type Config struct {
	BaseURL           string
	Timeout           time.Duration
	RequestsPerSecond float64
	Burst             int
}

// Client is a rate-limited record store client.
type Client struct {
	http    *http.Client
	baseURL string
	limiter *rate.Limiter
	logger  *slog.Logger
	metrics *metrics.Registry
}

// New creates a record store client.
func New(cfg Config, logger *slog.Logger, reg *metrics.Registry) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = defaultRPS
	}
	if cfg.Burst <= 0 {
		cfg.Burst = defaultBurst
	}

	return &Client{
		http: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
		logger:  logger,
		metrics: reg,
	}
}

// List fetches the full book list.
func (c *Client) List(ctx context.Context) ([]domain.BookRecord, error) {
	var books []domain.BookRecord
	if err := c.do(ctx, "list", http.MethodGet, "/books", nil, &books); err != nil {
		return nil, err
	}
	return books, nil
}

// Create inserts a new book row.
func (c *Client) Create(ctx context.Context, draft domain.BookDraft) error {
	return c.do(ctx, "create", http.MethodPost, "/books", draft, nil)
}

// Update replaces the editable fields of one book row.
func (c *Client) Update(ctx context.Context, id int64, draft domain.BookDraft) error {
	return c.do(ctx, "update", http.MethodPut, fmt.Sprintf("/books/%d", id), draft, nil)
}

// Delete removes one book row.
func (c *Client) Delete(ctx context.Context, id int64) error {
	return c.do(ctx, "delete", http.MethodDelete, fmt.Sprintf("/books/%d", id), nil, nil)
}

// remoteError is the error body shape the record store returns.
type remoteError struct {
	Error string `json:"error"`
}

// do executes one rate-limited round-trip. Failures of any kind come back as
// REMOTE domain errors carrying the remote code/message unchanged.
func (c *Client) do(ctx context.Context, op, method, path string, body, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return errors.Wrap(err, errors.CodeRemote, "rate limit wait")
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, errors.CodeInternal, "encode request body")
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return errors.Wrap(err, errors.CodeInternal, "create request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug("record store request", "op", op, "method", method, "path", path)
	c.metrics.RemoteRequests.WithLabelValues(op).Inc()

	start := time.Now()
	resp, err := c.http.Do(req)
	c.metrics.RemoteLatencySec.Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.RemoteFailures.WithLabelValues(op).Inc()
		return errors.Wrap(err, errors.CodeRemote, "record store unreachable")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.RemoteFailures.WithLabelValues(op).Inc()
		return errors.Wrap(err, errors.CodeRemote, "read response body")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.metrics.RemoteFailures.WithLabelValues(op).Inc()
		return errors.Remote(remoteMessage(respBody, resp.StatusCode))
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			c.metrics.RemoteFailures.WithLabelValues(op).Inc()
			return errors.Wrap(err, errors.CodeRemote, "decode response body")
		}
	}

	return nil
}

// remoteMessage extracts the remote error code/message, falling back to the
// HTTP status text when the body is not the expected shape.
func remoteMessage(body []byte, status int) string {
	var re remoteError
	if err := json.Unmarshal(body, &re); err == nil && re.Error != "" {
		return re.Error
	}
	return http.StatusText(status)
}
