package codeassist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"

	apperrors "codeberg.org/algopatterns/codeassist/internal/errors"
	"golang.org/x/time/rate"
)

// manages HTTP requests to the code generation service
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	userAgent  string
}

// creates a new code service client.
// transports are applied in order, each wrapping the previous one, so the
// last option given sees the request first.
func NewClient(baseURL string, opts ...Option) *Client {
	cfg := defaultClientConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	httpClient := newHTTPClient(cfg)

	if len(cfg.transports) != 0 {
		httpClient = applyTransport(httpClient, cfg.transports...)
	}

	var limiter *rate.Limiter
	if cfg.rateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.rateLimit), cfg.rateBurst)
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		limiter:    limiter,
		userAgent:  cfg.userAgent,
	}
}

func newHTTPClient(cfg *clientConfig) *http.Client {
	dialer := net.Dialer{
		Timeout:   cfg.connTimeout,
		KeepAlive: cfg.keepAlive,
	}

	return &http.Client{
		Timeout: cfg.requestTimeout,
		Transport: &http.Transport{
			Proxy:                 http.ProxyFromEnvironment,
			DialContext:           dialer.DialContext,
			MaxIdleConns:          cfg.maxIdleConns,
			MaxIdleConnsPerHost:   cfg.maxIdleConnsPerHost,
			TLSHandshakeTimeout:   cfg.tlsHandshakeTimeout,
			ResponseHeaderTimeout: cfg.responseHeaderTimeout,
			IdleConnTimeout:       cfg.idleConnTimeout,
		},
	}
}

func applyTransport(client *http.Client, transports ...TransportFunc) *http.Client {
	transport := client.Transport

	if transport == nil {
		transport = http.DefaultTransport
	}

	for _, transportFunc := range transports {
		transport = transportFunc(transport)
	}

	clone := *client
	clone.Transport = transport

	return &clone
}

// returns the base URL every request is sent to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// requests generated code for a problem statement
func (c *Client) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	var body generateResponseBody
	if err := c.post(ctx, generateEndpoint, req, &body); err != nil {
		return nil, err
	}

	if body.Code == nil {
		return nil, apperrors.Malformed(fmt.Errorf("missing code"))
	}

	return &GenerateResponse{
		Language: body.Language,
		Code:     *body.Code,
	}, nil
}

// requests an optimized version of previously generated code
func (c *Client) Optimize(ctx context.Context, req OptimizeRequest) (*OptimizeResponse, error) {
	var body optimizeResponseBody
	if err := c.post(ctx, optimizeEndpoint, req, &body); err != nil {
		return nil, err
	}

	if body.OptimizedCode == nil {
		return nil, apperrors.Malformed(fmt.Errorf("missing optimized_code"))
	}

	return &OptimizeResponse{
		Language:        body.Language,
		OriginalCode:    body.OriginalCode,
		OptimizedCode:   *body.OptimizedCode,
		Improvements:    body.Improvements,
		PerformanceGain: body.PerformanceGain,
	}, nil
}

// sends exactly one JSON POST and decodes the response into respBody.
// every failure is returned as an *apperrors.Error.
func (c *Client) post(ctx context.Context, endpoint string, reqBody, respBody any) error {
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return apperrors.Transport(fmt.Errorf("failed to marshal request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, bytes.NewReader(payload))
	if err != nil {
		return apperrors.Transport(fmt.Errorf("failed to create request: %w", err))
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	// rate limiting
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return apperrors.Transport(fmt.Errorf("rate limiter: %w", err))
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperrors.Transport(err)
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperrors.Transport(fmt.Errorf("failed to read response: %w", err))
	}

	// handle error responses
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp apperrors.ErrorResponse
		if err := json.Unmarshal(body, &errResp); err == nil {
			return apperrors.Server(resp.StatusCode, errResp.Message())
		}
		return apperrors.Server(resp.StatusCode, "")
	}

	if err := json.Unmarshal(body, respBody); err != nil {
		return apperrors.Malformed(err)
	}

	return nil
}
