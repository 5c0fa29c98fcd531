package errors

import (
	"context"
	"errors"
	"net"
	"strings"
)

// analyzes a transport failure and returns a category for log fields
func Category(err error) string {
	if err == nil {
		return CategoryUnknown
	}

	// context errors
	if errors.Is(err, context.DeadlineExceeded) {
		return CategoryTimeout
	}

	if errors.Is(err, context.Canceled) {
		return CategoryCanceled
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return CategoryTimeout
		}
		return CategoryNetwork
	}

	// fallback to string matching for unknown error types
	errMsg := strings.ToLower(err.Error())

	if strings.Contains(errMsg, "timeout") || strings.Contains(errMsg, "deadline") {
		return CategoryTimeout
	}

	if strings.Contains(errMsg, "connection") || strings.Contains(errMsg, "network") ||
		strings.Contains(errMsg, "dial") {
		return CategoryNetwork
	}

	return CategoryUnknown
}

// reports whether err is a transport failure caused by a deadline
func IsTimeout(err error) bool {
	return IsTransport(err) && Category(err) == CategoryTimeout
}

// extracts a human-readable detail from a decoded failure body.
// detail is either a plain string or a list of {"msg": ...} objects.
func (r ErrorResponse) Message() string {
	switch detail := r.Detail.(type) {
	case string:
		return detail

	case []any:
		msgs := make([]string, 0, len(detail))
		for _, item := range detail {
			switch v := item.(type) {
			case string:
				msgs = append(msgs, v)
			case map[string]any:
				if msg, ok := v["msg"].(string); ok && msg != "" {
					msgs = append(msgs, msg)
				}
			}
		}
		return strings.Join(msgs, "; ")

	default:
		return ""
	}
}
