// Package backend is the portal's only path to the game backend. Every
// screen-facing flow goes through this client; nothing else in the repository
// opens an HTTP connection to the backend origin.
package backend

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"

	"github.com/ligafantasy/portal/internal/platform/logging"
	"github.com/ligafantasy/portal/internal/platform/resilience"
	"github.com/ligafantasy/portal/internal/usecase"
)

const (
	defaultTimeout      = 10 * time.Second
	maxResponseBytes    = 4 << 20
	sessionCookieHeader = "Cookie"
)

var errBackendTransient = crerr.New("backend transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

type Client struct {
	httpClient     *http.Client
	baseURL        string
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = defaultTimeout
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		maxRetries:     maxInt(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

type request struct {
	method string
	path   string
	query  map[string]string
	body   any
	cookie string
}

// getJSON runs an idempotent read. Concurrent identical reads for the same
// caller collapse into one backend round trip.
func (c *Client) getJSON(ctx context.Context, req request, target any) error {
	req.method = http.MethodGet

	key := req.cookie + "|" + req.path + "?" + encodeQuery(req.query)
	raw, err, _ := c.flight.Do(key, func() (any, error) {
		return c.roundTrip(ctx, req)
	})
	if err != nil {
		return err
	}

	return decodeTarget(raw.([]byte), target)
}

// sendJSON runs a mutating call. Never deduplicated, never retried beyond the
// transport's own semantics: a mutation that may have been applied must not
// be replayed blindly.
func (c *Client) sendJSON(ctx context.Context, req request, target any) error {
	raw, err := c.roundTrip(ctx, req)
	if err != nil {
		return err
	}
	if target == nil {
		return nil
	}

	return decodeTarget(raw, target)
}

func (c *Client) roundTrip(ctx context.Context, req request) ([]byte, error) {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "backend circuit breaker rejected request", "state", c.breaker.State(), "path", req.path)
			return nil, fmt.Errorf("%w: backend is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	raw, err := c.execute(ctx, req)
	if c.circuitEnabled {
		if err != nil && isTransient(err) {
			c.breaker.RecordFailure()
		} else {
			c.breaker.RecordSuccess()
		}
	}
	if err != nil && isTransient(err) {
		return nil, fmt.Errorf("%w: %v", usecase.ErrDependencyUnavailable, err)
	}

	return raw, err
}

func (c *Client) execute(ctx context.Context, req request) ([]byte, error) {
	fullURL := c.baseURL + req.path
	if encoded := encodeQuery(req.query); encoded != "" {
		fullURL += "?" + encoded
	}

	retries := c.maxRetries
	if req.method != http.MethodGet {
		retries = 0
	}

	var lastErr error
	for attempt := 0; attempt <= retries; attempt++ {
		raw, err := c.attempt(ctx, req, fullURL)
		if err == nil {
			return raw, nil
		}
		lastErr = err
		if !isTransient(err) {
			return nil, err
		}
		if attempt == retries {
			break
		}

		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	c.logger.WarnContext(ctx, "backend request failed", "method", req.method, "path", req.path, "error", lastErr)
	return nil, lastErr
}

func (c *Client) attempt(ctx context.Context, req request, fullURL string) ([]byte, error) {
	httpReq, err := c.buildJSONRequest(ctx, req.method, fullURL, req.body)
	if err != nil {
		return nil, err
	}
	if req.cookie != "" {
		httpReq.Header.Set(sessionCookieHeader, req.cookie)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: send request: %v", errBackendTransient, err)
	}
	defer resp.Body.Close()

	raw, err := readLimitedBody(resp)
	if err != nil {
		return nil, err
	}

	return raw, c.mapStatus(resp.StatusCode, raw)
}

func (c *Client) buildJSONRequest(ctx context.Context, method, fullURL string, body any) (*http.Request, error) {
	var bodyReader io.Reader
	if body != nil {
		buf := bytebufferpool.Get()
		defer bytebufferpool.Put(buf)

		encoded, err := sonic.Marshal(body)
		if err != nil {
			return nil, crerr.Wrap(err, "marshal request body")
		}
		if _, err := buf.Write(encoded); err != nil {
			return nil, crerr.Wrap(err, "buffer request body")
		}
		bodyReader = strings.NewReader(buf.String())
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, fullURL, bodyReader)
	if err != nil {
		return nil, crerr.Wrap(err, "build request")
	}
	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	return httpReq, nil
}

func readLimitedBody(resp *http.Response) ([]byte, error) {
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read response body: %v", errBackendTransient, err)
	}
	return raw, nil
}

func isSessionExpired(err error) bool {
	return stderrors.Is(err, usecase.ErrSessionExpired)
}

// mapStatus is the single place transport outcomes become portal errors.
// A 404 is a well-formed negative answer; only transport-level trouble maps
// to the transient sentinel. The two are never conflated.
func (c *Client) mapStatus(status int, raw []byte) error {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusUnauthorized:
		return fmt.Errorf("%w: backend rejected credentials", usecase.ErrSessionExpired)
	case status == http.StatusForbidden:
		return fmt.Errorf("%w: backend denied access", usecase.ErrForbidden)
	case status == http.StatusNotFound:
		return fmt.Errorf("%w: %s", usecase.ErrNotFound, serverMessage(raw, "resource not found"))
	case isRetryableStatus(status):
		return fmt.Errorf("%w: backend status=%d body=%s", errBackendTransient, status, abbreviate(raw))
	case status >= 400 && status < 500:
		return fmt.Errorf("%w: %s", usecase.ErrInvalidInput, serverMessage(raw, fmt.Sprintf("backend rejected request (status %d)", status)))
	default:
		return fmt.Errorf("%w: backend status=%d body=%s", errBackendTransient, status, abbreviate(raw))
	}
}

// serverMessage prefers the backend's message/error field, verbatim, and
// falls back to a generic string.
func serverMessage(raw []byte, fallback string) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := sonic.Unmarshal(raw, &payload); err == nil {
		if msg := strings.TrimSpace(payload.Message); msg != "" {
			return msg
		}
		if msg := strings.TrimSpace(payload.Error); msg != "" {
			return msg
		}
	}

	return fallback
}

func decodeTarget(raw []byte, target any) error {
	if target == nil {
		return nil
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		return crerr.Wrap(err, "decode backend payload")
	}

	return nil
}

func isTransient(err error) bool {
	return stderrors.Is(err, errBackendTransient)
}

func isRetryableStatus(code int) bool {
	switch code {
	case http.StatusRequestTimeout, http.StatusTooManyRequests,
		http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}

func encodeQuery(query map[string]string) string {
	if len(query) == 0 {
		return ""
	}
	values := url.Values{}
	for key, value := range query {
		values.Set(key, value)
	}
	return values.Encode()
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func abbreviate(raw []byte) string {
	const limit = 256
	text := strings.TrimSpace(string(raw))
	if len(text) <= limit {
		return text
	}
	return text[:limit] + "..."
}
