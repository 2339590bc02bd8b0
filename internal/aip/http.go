package aip

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
)

const apiBase = "/api/v1"

// Retry policy for idempotent reads: transport failures and 5xx responses
// are transient and retried up to defaultMaxRetries times after the initial
// attempt; anything the platform answered with a 4xx is final.
const (
	defaultMaxRetries    = 3
	defaultRetryInterval = 500 * time.Millisecond
)

// HTTPClient implements Client against the platform's REST API.
type HTTPClient struct {
	baseURL       string
	httpClient    *http.Client
	userAgent     string
	maxRetries    uint64
	retryInterval time.Duration
	memAccount    string
	memSecret     string
	logger        *slog.Logger
}

// Option configures an HTTPClient.
type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.httpClient = hc }
}

// WithUserAgent sets the User-Agent header sent on every request.
func WithUserAgent(ua string) Option {
	return func(c *HTTPClient) { c.userAgent = ua }
}

// WithMemoryCredentials enables conversation-memory persistence by attaching
// the Membase account headers to every request.
func WithMemoryCredentials(account, secret string) Option {
	return func(c *HTTPClient) { c.memAccount, c.memSecret = account, secret }
}

// WithMaxRetries overrides how many times idempotent reads are retried.
func WithMaxRetries(n uint64) Option {
	return func(c *HTTPClient) { c.maxRetries = n }
}

// WithRetryInterval overrides the initial backoff interval between retries.
func WithRetryInterval(d time.Duration) Option {
	return func(c *HTTPClient) { c.retryInterval = d }
}

// WithLogger sets the diagnostic logger. Diagnostics never touch stdout.
func WithLogger(l *slog.Logger) Option {
	return func(c *HTTPClient) { c.logger = l }
}

// NewHTTPClient returns a client targeting the given base URL.
func NewHTTPClient(baseURL string, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL:       baseURL,
		httpClient:    &http.Client{Timeout: 30 * time.Second},
		userAgent:     "aip-skill-cli",
		maxRetries:    defaultMaxRetries,
		retryInterval: defaultRetryInterval,
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ Client = (*HTTPClient)(nil)

// ListUserAgents lists agents registered by the given user.
func (c *HTTPClient) ListUserAgents(ctx context.Context, userID string, limit, offset int) (*AgentPage, error) {
	var page AgentPage
	path := fmt.Sprintf("%s/users/%s/agents", apiBase, url.PathEscape(userID))
	if err := c.getJSON(ctx, path, pageQuery(limit, offset), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetAgent returns one agent's detail record.
func (c *HTTPClient) GetAgent(ctx context.Context, userID, agentID string) (*Agent, error) {
	var agent Agent
	path := fmt.Sprintf("%s/users/%s/agents/%s", apiBase, url.PathEscape(userID), url.PathEscape(agentID))
	if err := c.getJSON(ctx, path, nil, &agent); err != nil {
		return nil, err
	}
	return &agent, nil
}

// Run invokes an agent synchronously and waits for its terminal result.
func (c *HTTPClient) Run(ctx context.Context, req RunRequest) (*RunResult, error) {
	timeout := req.Timeout
	if timeout <= 0 {
		timeout = DefaultRunTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	body := map[string]any{
		"objective":       req.Objective,
		"user_id":         req.UserID,
		"timeout_seconds": int(timeout.Seconds()),
	}
	if req.Agent != "" {
		body["agent"] = req.Agent
	}

	var result RunResult
	if err := c.postJSON(ctx, apiBase+"/runs", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetAgentPrice returns pricing for one agent.
func (c *HTTPClient) GetAgentPrice(ctx context.Context, userID, agentID string) (*PriceInfo, error) {
	var price PriceInfo
	path := fmt.Sprintf("%s/users/%s/agents/%s/price", apiBase, url.PathEscape(userID), url.PathEscape(agentID))
	if err := c.getJSON(ctx, path, nil, &price); err != nil {
		return nil, err
	}
	return &price, nil
}

// ListAgentPrices lists pricing across all agents.
func (c *HTTPClient) ListAgentPrices(ctx context.Context, limit, offset int) (*PricePage, error) {
	var page PricePage
	if err := c.getJSON(ctx, apiBase+"/prices", pageQuery(limit, offset), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// ListUserRuns lists the user's invocation history.
func (c *HTTPClient) ListUserRuns(ctx context.Context, userID string, limit, offset int) (*RunPage, error) {
	var page RunPage
	path := fmt.Sprintf("%s/users/%s/runs", apiBase, url.PathEscape(userID))
	if err := c.getJSON(ctx, path, pageQuery(limit, offset), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetRunEvents returns the recorded events of one run.
func (c *HTTPClient) GetRunEvents(ctx context.Context, runID string) ([]map[string]any, error) {
	var events []map[string]any
	path := fmt.Sprintf("%s/runs/%s/events", apiBase, url.PathEscape(runID))
	if err := c.getJSON(ctx, path, nil, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// GetRunPayments returns the payments settled for one run.
func (c *HTTPClient) GetRunPayments(ctx context.Context, runID string) ([]map[string]any, error) {
	var payments []map[string]any
	path := fmt.Sprintf("%s/runs/%s/payments", apiBase, url.PathEscape(runID))
	if err := c.getJSON(ctx, path, nil, &payments); err != nil {
		return nil, err
	}
	return payments, nil
}

// RegisterAgent registers a new agent under the given user.
func (c *HTTPClient) RegisterAgent(ctx context.Context, userID string, agentConfig map[string]any) (map[string]any, error) {
	var confirmation map[string]any
	path := fmt.Sprintf("%s/users/%s/agents", apiBase, url.PathEscape(userID))
	if err := c.postJSON(ctx, path, agentConfig, &confirmation); err != nil {
		return nil, err
	}
	return confirmation, nil
}

// UnregisterAgent removes an agent.
func (c *HTTPClient) UnregisterAgent(ctx context.Context, userID, agentID string) (map[string]any, error) {
	var confirmation map[string]any
	path := fmt.Sprintf("%s/users/%s/agents/%s", apiBase, url.PathEscape(userID), url.PathEscape(agentID))
	if err := c.doJSON(ctx, http.MethodDelete, path, nil, nil, &confirmation); err != nil {
		return nil, err
	}
	return confirmation, nil
}

// RegisterUser registers a wallet address as a platform user.
func (c *HTTPClient) RegisterUser(ctx context.Context, walletAddress, email string) (map[string]any, error) {
	body := map[string]any{"wallet_address": walletAddress}
	if email != "" {
		body["email"] = email
	}
	var confirmation map[string]any
	if err := c.postJSON(ctx, apiBase+"/users", body, &confirmation); err != nil {
		return nil, err
	}
	return confirmation, nil
}

// ListUsers lists registered users.
func (c *HTTPClient) ListUsers(ctx context.Context, limit, offset int) (*UserPage, error) {
	var page UserPage
	if err := c.getJSON(ctx, apiBase+"/users", pageQuery(limit, offset), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// HealthCheck probes the platform. A response of any status means the
// endpoint is reachable; only a 200 counts as healthy. Transport failures
// are returned as errors for the caller to interpret.
func (c *HTTPClient) HealthCheck(ctx context.Context) (bool, error) {
	err := c.getJSON(ctx, "/health", nil, nil)
	if err != nil {
		var apiErr *APIError
		if asAPIError(err, &apiErr) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// getJSON performs an idempotent GET with the retry policy applied.
func (c *HTTPClient) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	op := func() error {
		err := c.doJSON(ctx, http.MethodGet, path, query, nil, out)
		if err == nil {
			return nil
		}
		var apiErr *APIError
		if asAPIError(err, &apiErr) && apiErr.Status < 500 {
			return backoff.Permanent(err)
		}
		c.logger.Debug("retrying request", "path", path, "error", err)
		return err
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.retryInterval
	return backoff.Retry(op, backoff.WithContext(backoff.WithMaxRetries(b, c.maxRetries), ctx))
}

// postJSON performs a mutating POST. Mutating calls are never retried.
func (c *HTTPClient) postJSON(ctx context.Context, path string, body, out any) error {
	return c.doJSON(ctx, http.MethodPost, path, nil, body, out)
}

// doJSON performs one request and decodes a JSON response into out (when
// out is non-nil and the response has a body).
func (c *HTTPClient) doJSON(ctx context.Context, method, path string, query url.Values, body, out any) error {
	req, err := c.newRequest(ctx, method, path, query, body)
	if err != nil {
		return err
	}

	c.logger.Debug("platform request", "method", method, "path", path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("reaching platform: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(resp.StatusCode, respBody)
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decoding platform response: %w", err)
	}
	return nil
}

// newRequest builds a request with the standard headers attached.
func (c *HTTPClient) newRequest(ctx context.Context, method, path string, query url.Values, body any) (*http.Request, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.memAccount != "" {
		req.Header.Set("X-Membase-Account", c.memAccount)
		req.Header.Set("X-Membase-Secret-Key", c.memSecret)
	}
	return req, nil
}

func pageQuery(limit, offset int) url.Values {
	return url.Values{
		"limit":  []string{strconv.Itoa(limit)},
		"offset": []string{strconv.Itoa(offset)},
	}
}
