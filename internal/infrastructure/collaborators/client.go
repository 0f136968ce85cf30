package collaborators

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// ServiceTokenHeader authenticates this service to its peers.
const ServiceTokenHeader = "X-Service-Token"

const defaultRetryDelay = 200 * time.Millisecond

var ErrNotFound = errors.New("resource not found")

// StatusError is a non-2xx answer from a peer service.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Body)
}

type Options struct {
	BaseURL      string
	ServiceToken string
	Timeout      time.Duration
	MaxRetries   int
	RetryDelay   time.Duration
}

// serviceClient issues JSON GETs against one peer service. Transport errors
// and 5xx answers are retried up to MaxRetries times with jittered backoff.
type serviceClient struct {
	baseURL    string
	token      string
	client     *http.Client
	maxRetries int
	retryDelay time.Duration
	logger     *zap.Logger
}

func newServiceClient(opts Options, logger *zap.Logger) *serviceClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = defaultRetryDelay
	}
	return &serviceClient{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		token:      opts.ServiceToken,
		client:     &http.Client{Timeout: opts.Timeout},
		maxRetries: max(opts.MaxRetries, 0),
		retryDelay: opts.RetryDelay,
		logger:     logger,
	}
}

func (c *serviceClient) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			// backoff doubles per attempt, plus up to 50% jitter
			delay := c.retryDelay << (attempt - 1)
			delay += rand.N(delay/2 + 1)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		retry, err := c.do(ctx, endpoint, out)
		if err == nil {
			return nil
		}
		lastErr = err
		if !retry {
			return err
		}
		c.logger.Debug("peer request failed", zap.String("url", endpoint), zap.Int("attempt", attempt+1), zap.Error(err))
	}
	return lastErr
}

func (c *serviceClient) do(ctx context.Context, endpoint string, out any) (retry bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return false, err
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set(ServiceTokenHeader, c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return ctx.Err() == nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return true, err
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return false, ErrNotFound
	case resp.StatusCode >= 500:
		return true, &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	case resp.StatusCode >= 300:
		return false, &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return false, fmt.Errorf("decode %s: %w", endpoint, err)
	}
	return false, nil
}

// unwrapData returns the "data" member of an envelope, or raw itself.
func unwrapData(raw json.RawMessage) json.RawMessage {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && len(envelope.Data) > 0 && string(envelope.Data) != "null" {
		return envelope.Data
	}
	return raw
}
