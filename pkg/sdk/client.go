package sdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/gouji-dev/gouji/internal/resilience"
)

const (
	defaultTimeout = 30 * time.Second
	apiV1BasePath  = "/api/v1"
)

// Client talks to a gouji game server. Transient connection failures
// are retried and a circuit breaker shields a server that keeps
// failing.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	retry      *resilience.RetryManager
	breakers   *resilience.CircuitBreakerManager

	Games   *GameService
	Matches *MatchService
}

type ClientOption func(*Client)

func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithMaxRetries adjusts how many times transient connection failures
// are retried. Zero disables retries.
func WithMaxRetries(attempts int) ClientOption {
	return func(c *Client) {
		config := resilience.DefaultRetryConfig()
		config.MaxAttempts = attempts
		config.Enabled = attempts > 0
		c.retry = resilience.NewRetryManager(config)
	}
}

// WithoutCircuitBreaker disables the client side circuit breaker.
func WithoutCircuitBreaker() ClientOption {
	return func(c *Client) {
		config := resilience.DefaultCircuitBreakerConfig()
		config.Enabled = false
		c.breakers = resilience.NewCircuitBreakerManager(config)
	}
}

func NewClient(baseURL string, opts ...ClientOption) (*Client, error) {
	parsedURL, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	client := &Client{
		baseURL: parsedURL,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		retry:    resilience.NewRetryManager(resilience.DefaultRetryConfig()),
		breakers: resilience.NewCircuitBreakerManager(resilience.DefaultCircuitBreakerConfig()),
	}

	for _, opt := range opts {
		opt(client)
	}

	client.Games = &GameService{client: client}
	client.Matches = &MatchService{client: client}

	return client, nil
}

// HealthCheck probes the server health endpoint.
func (c *Client) HealthCheck(ctx context.Context) error {
	resp, err := c.doRequest(ctx, http.MethodGet, "/health", nil, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check failed with status: %d", resp.StatusCode)
	}

	return nil
}

// ReadinessCheck probes the server readiness endpoint.
func (c *Client) ReadinessCheck(ctx context.Context) error {
	resp, err := c.doRequest(ctx, http.MethodGet, "/ready", nil, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("readiness check failed with status: %d", resp.StatusCode)
	}

	return nil
}

func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values, body any) (*http.Response, error) {
	u := *c.baseURL
	u.Path = path
	if query != nil {
		u.RawQuery = query.Encode()
	}

	var jsonBody []byte
	if body != nil {
		var err error
		jsonBody, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
	}

	var resp *http.Response
	err := c.retry.Execute(ctx, func() error {
		var bodyReader io.Reader
		if jsonBody != nil {
			bodyReader = bytes.NewReader(jsonBody)
		}

		req, err := http.NewRequestWithContext(ctx, method, u.String(), bodyReader)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")

		result, err := c.breakers.Execute("gouji-server", func() (any, error) {
			return c.httpClient.Do(req)
		})
		if err != nil {
			if resilience.IsCircuitOpen(err) {
				return fmt.Errorf("server circuit open: %w", err)
			}
			return fmt.Errorf("request failed: %w", err)
		}

		resp = result.(*http.Response)
		return nil
	}, resilience.TransientErrors)

	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) doJSONRequest(ctx context.Context, method, path string, query url.Values, reqBody, respBody any) error {
	resp, err := c.doRequest(ctx, method, path, query, reqBody)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return c.handleErrorResponse(resp)
	}

	if respBody != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(respBody); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// errorEnvelope matches the server's error response shape.
type errorEnvelope struct {
	Error struct {
		Code    string         `json:"code"`
		Message string         `json:"message"`
		Details map[string]any `json:"details,omitempty"`
	} `json:"error"`
}

func (c *Client) handleErrorResponse(resp *http.Response) error {
	var envelope errorEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		body, _ := io.ReadAll(resp.Body)
		return &APIError{
			Type:    ErrorTypeUnknown,
			Message: string(body),
			Status:  resp.StatusCode,
		}
	}

	apiErr := &APIError{
		Code:    envelope.Error.Code,
		Message: envelope.Error.Message,
		Details: envelope.Error.Details,
		Status:  resp.StatusCode,
	}

	switch resp.StatusCode {
	case http.StatusBadRequest:
		apiErr.Type = ErrorTypeValidation
	case http.StatusNotFound:
		apiErr.Type = ErrorTypeNotFound
	case http.StatusUnprocessableEntity:
		apiErr.Type = ErrorTypeInvalidPlay
	case http.StatusInternalServerError:
		apiErr.Type = ErrorTypeInternal
	default:
		apiErr.Type = ErrorTypeUnknown
	}

	return apiErr
}
