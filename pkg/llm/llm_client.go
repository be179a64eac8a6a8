package llm

import (
	"Pantry-API/domain"
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	defaultMaxAttempts    = 3
	defaultBaseDelay      = 500 * time.Millisecond
	defaultRequestTimeout = 60 * time.Second
	defaultStreamTimeout  = 300 * time.Second
)

type (
	// Client is the transport to the external LLM service. It owns the
	// cross-cutting policy (timeout, retry with backoff, logging) and nothing
	// else; batching and fallbacks belong to callers.
	Client interface {
		Get(ctx context.Context, path string, query url.Values, out any) error
		Post(ctx context.Context, path string, body any, out any) error
		// Stream issues a long-lived request and hands each newline-delimited
		// JSON chunk to onChunk. Streams are never retried: a partially
		// consumed stream cannot be replayed safely.
		Stream(ctx context.Context, method string, path string, body any, onChunk func(chunk json.RawMessage)) error
	}

	// Config carries the client policy. Zero values fall back to the
	// production defaults (60s/300s timeouts, 3 attempts, 500ms base delay).
	Config struct {
		BaseURL        string
		Logger         *zap.Logger
		MaxAttempts    int
		BaseDelay      time.Duration
		RequestTimeout time.Duration
		StreamTimeout  time.Duration
	}

	client struct {
		baseURL        string
		httpClient     *http.Client
		log            *zap.Logger
		maxAttempts    int
		baseDelay      time.Duration
		requestTimeout time.Duration
		streamTimeout  time.Duration
	}
)

func NewClient(cfg Config) Client {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = defaultMaxAttempts
	}
	if cfg.BaseDelay <= 0 {
		cfg.BaseDelay = defaultBaseDelay
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = defaultRequestTimeout
	}
	if cfg.StreamTimeout <= 0 {
		cfg.StreamTimeout = defaultStreamTimeout
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	return &client{
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		httpClient:     &http.Client{},
		log:            cfg.Logger,
		maxAttempts:    cfg.MaxAttempts,
		baseDelay:      cfg.BaseDelay,
		requestTimeout: cfg.RequestTimeout,
		streamTimeout:  cfg.StreamTimeout,
	}
}

func (c *client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *client) Post(ctx context.Context, path string, body any, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

// do performs a single-response call: per-attempt timeout, exponential backoff
// between attempts. A terminal failure wraps domain.ErrLLMUnavailable so
// handlers can tell an upstream outage apart from bad input.
func (c *client) do(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	var lastErr error

	delay := c.baseDelay
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if attempt > 1 {
			c.log.Warn("llm request retrying",
				zap.String("path", path),
				zap.Int("attempt", attempt),
				zap.Int("max_attempts", c.maxAttempts),
				zap.Error(lastErr),
			)

			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return ctx.Err()
			}
			delay *= 2
		}

		lastErr = c.doOnce(ctx, method, path, query, body, out)
		if lastErr == nil {
			return nil
		}
	}

	c.log.Error("llm request exhausted retries",
		zap.String("path", path),
		zap.Int("attempts", c.maxAttempts),
		zap.Error(lastErr),
	)

	return fmt.Errorf("%w: %v", domain.ErrLLMUnavailable, lastErr)
}

func (c *client) doOnce(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	attemptCtx, cancel := context.WithTimeout(ctx, c.requestTimeout)
	defer cancel()

	req, err := c.newRequest(attemptCtx, method, path, query, body)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("llm api error: %s - %s", resp.Status, string(raw))
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("llm response decode error: %w", err)
	}

	return nil
}

func (c *client) Stream(ctx context.Context, method string, path string, body any, onChunk func(chunk json.RawMessage)) error {
	streamCtx, cancel := context.WithTimeout(ctx, c.streamTimeout)
	defer cancel()

	req, err := c.newRequest(streamCtx, method, path, nil, body)
	if err != nil {
		return err
	}

	c.log.Info("llm stream started", zap.String("path", path))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("llm stream error", zap.String("path", path), zap.Error(err))
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		err := fmt.Errorf("llm api error: %s - %s", resp.Status, string(raw))
		c.log.Error("llm stream error", zap.String("path", path), zap.Error(err))
		return err
	}

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		chunk := make(json.RawMessage, len(line))
		copy(chunk, line)
		onChunk(chunk)
	}

	if err := scanner.Err(); err != nil {
		c.log.Error("llm stream error", zap.String("path", path), zap.Error(err))
		return err
	}

	c.log.Info("llm stream completed", zap.String("path", path))
	return nil
}

func (c *client) newRequest(ctx context.Context, method, path string, query url.Values, body any) (*http.Request, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return req, nil
}
