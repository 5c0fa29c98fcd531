package codeassist

import (
	"net/http"
	"time"
)

type TransportFunc func(http.RoundTripper) http.RoundTripper

type Option func(*clientConfig)

type clientConfig struct {
	requestTimeout        time.Duration
	connTimeout           time.Duration
	keepAlive             time.Duration
	tlsHandshakeTimeout   time.Duration
	responseHeaderTimeout time.Duration
	idleConnTimeout       time.Duration
	maxIdleConns          int
	maxIdleConnsPerHost   int
	transports            []TransportFunc
	rateLimit             float64
	rateBurst             int
	userAgent             string
}

func defaultClientConfig() *clientConfig {
	return &clientConfig{
		requestTimeout:      defaultRequestTimeout,
		connTimeout:         10 * time.Second,
		keepAlive:           90 * time.Second,
		tlsHandshakeTimeout: 10 * time.Second,
		idleConnTimeout:     90 * time.Second,
		maxIdleConns:        10,
		maxIdleConnsPerHost: 2,
		rateBurst:           1,
		userAgent:           defaultUserAgent,
	}
}

// sets the overall timeout of a single request, 0 disables it
func WithRequestTimeout(timeout time.Duration) Option {
	return func(c *clientConfig) {
		c.requestTimeout = timeout
	}
}

func WithConnectTimeout(timeout time.Duration) Option {
	return func(c *clientConfig) {
		c.connTimeout = timeout
	}
}

// bounds the wait for response headers after the request was written, 0 means none
func WithResponseHeaderTimeout(timeout time.Duration) Option {
	return func(c *clientConfig) {
		c.responseHeaderTimeout = timeout
	}
}

func WithIdleConnTimeout(timeout time.Duration) Option {
	return func(c *clientConfig) {
		c.idleConnTimeout = timeout
	}
}

// throttles outbound requests. requests wait for a token, they are never dropped.
// perSecond <= 0 disables the limiter.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(c *clientConfig) {
		c.rateLimit = perSecond
		if burst > 0 {
			c.rateBurst = burst
		}
	}
}

// sets the User-Agent header, an empty value keeps the default
func WithUserAgent(userAgent string) Option {
	return func(c *clientConfig) {
		if userAgent != "" {
			c.userAgent = userAgent
		}
	}
}

// wraps the transport of the underlying HTTP client
func WithTransport(transport TransportFunc) Option {
	return func(c *clientConfig) {
		c.transports = append(c.transports, transport)
	}
}

const (
	defaultRequestTimeout = 60 * time.Second
	defaultUserAgent      = "codeassist/1.0"
)
