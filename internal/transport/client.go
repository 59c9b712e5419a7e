package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/hcmut-tutoring/tutorhub/pkg/errors"
)

// Client issues JSON requests against the tutoring backend. Every call hits
// the network; response caching is disabled end to end.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
	metrics *Metrics
}

// ClientParams groups constructor dependencies.
type ClientParams struct {
	BaseURL string
	Timeout time.Duration
	Logger  *zap.Logger
	Metrics *Metrics
}

// NewClient builds a Client with sane defaults.
func NewClient(params ClientParams) *Client {
	timeout := params.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(params.BaseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
		metrics: params.Metrics,
	}
}

// Do executes one request. Path is relative to the base URL. A non-empty
// token is attached as a bearer credential. A non-nil body is JSON encoded.
// A non-nil out receives the decoded response body; HTTP 204 leaves it
// untouched.
func (c *Client) Do(ctx context.Context, method, path, token string, body, out interface{}) error {
	if method == "" {
		method = http.MethodGet
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	url := c.baseURL + path

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return apperrors.Wrap(err, apperrors.KindValidation, "encode request body")
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return apperrors.Wrap(err, apperrors.KindTransport, fmt.Sprintf("build request for %s", path))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Cache-Control", "no-store")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	duration := time.Since(start)
	if err != nil {
		c.observe(method, path, "error", duration)
		if isTimeout(err) {
			c.logger.Warn("request timed out", zap.String("method", method), zap.String("path", path))
			return apperrors.Wrap(err, apperrors.KindTimeout, fmt.Sprintf("request to %s timed out", path))
		}
		return apperrors.Wrap(err, apperrors.KindTransport, fmt.Sprintf("request to %s failed", path))
	}
	defer resp.Body.Close() //nolint:errcheck

	c.observe(method, path, strconv.Itoa(resp.StatusCode), duration)
	c.logger.Debug("api call",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", duration),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.errorFrom(resp, path)
	}

	if resp.StatusCode == http.StatusNoContent || out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperrors.Wrap(err, apperrors.KindMalformed, fmt.Sprintf("decode response from %s", path))
	}
	return nil
}

// errorFrom derives the failure message in priority order: a message field
// from a JSON error body, then the HTTP status text, then a generic line.
// Reading or parsing the error body must never crash the call.
func (c *Client) errorFrom(resp *http.Response, path string) *apperrors.Error {
	kind := apperrors.KindTransport
	if resp.StatusCode == http.StatusNotFound {
		kind = apperrors.KindNotFound
	}

	message := ""
	if data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20)); err == nil {
		var parsed struct {
			Message string `json:"message"`
		}
		if jsonErr := json.Unmarshal(data, &parsed); jsonErr == nil && parsed.Message != "" {
			message = parsed.Message
		} else {
			var plain string
			if jsonErr := json.Unmarshal(data, &plain); jsonErr == nil && plain != "" {
				message = plain
			}
		}
	}
	if message == "" {
		message = http.StatusText(resp.StatusCode)
	}
	if message == "" {
		message = fmt.Sprintf("request to %s failed with status %d", path, resp.StatusCode)
	}

	return apperrors.New(kind, message).WithStatus(resp.StatusCode)
}

func (c *Client) observe(method, path, status string, duration time.Duration) {
	if c.metrics == nil {
		return
	}
	c.metrics.ObserveRequest(method, path, status, duration)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}
	return false
}
