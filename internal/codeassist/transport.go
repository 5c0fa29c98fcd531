package codeassist

import (
	"net/http"
	"time"

	"codeberg.org/algopatterns/codeassist/internal/logger"
	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

type requestIDTransport struct {
	transport http.RoundTripper
}

func (t *requestIDTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get(RequestIDHeader) != "" {
		return t.transport.RoundTrip(req)
	}

	reqCopy := req.Clone(req.Context())
	reqCopy.Header.Set(RequestIDHeader, uuid.NewString())

	return t.transport.RoundTrip(reqCopy)
}

// tags every outbound request with a fresh X-Request-ID
func WithRequestID() Option {
	return WithTransport(func(rt http.RoundTripper) http.RoundTripper {
		return &requestIDTransport{transport: rt}
	})
}

type logTransport struct {
	transport http.RoundTripper
}

func (t *logTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	log := logger.FromContext(req.Context()).With(
		"method", req.Method,
		"url", req.URL.String(),
		"request_id", req.Header.Get(RequestIDHeader),
	)

	start := time.Now()
	resp, err := t.transport.RoundTrip(req)
	elapsed := time.Since(start)

	if err != nil {
		log.Debug("outbound request failed", "duration", elapsed, "error", err)
		return nil, err
	}

	log.Debug("outbound request", "status", resp.StatusCode, "duration", elapsed)

	return resp, nil
}

// logs method, URL, status and latency of outbound requests at debug level
func WithRequestLogging() Option {
	return WithTransport(func(rt http.RoundTripper) http.RoundTripper {
		return &logTransport{transport: rt}
	})
}
