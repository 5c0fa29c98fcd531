package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Error Handling Guidelines:
//
// For the service client and the workflow controller:
//   - Return *Error values built with Validation(), Transport() or Server()
//   - Wrap lower level causes, never flatten them into strings early
//   - Do not log errors here (avoid double logging)
//
// For the presentation layer (TUI, CLI):
//   - Render with Message(err, fallback) at the edge
//   - Use KindOf() when behavior depends on the failure class
//   - Log with logger.ErrorErr() once, where the failure is shown

func (e *Error) Error() string {
	switch e.Kind {
	case KindValidation:
		return e.Message

	case KindServer:
		if e.Detail != "" {
			return e.Detail
		}
		return fmt.Sprintf("Request failed with status code %d", e.StatusCode)

	default:
		if e.Err != nil {
			return e.Err.Error()
		}
		return e.Message
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// returns a local precondition failure
func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// returns a transport failure wrapping err (err may be nil)
func Transport(err error) *Error {
	return &Error{Kind: KindTransport, Err: err}
}

// returns a transport failure for a response that could not be interpreted
func Malformed(err error) *Error {
	return &Error{Kind: KindTransport, Err: fmt.Errorf("malformed response: %w", err)}
}

// returns a failure for a non-success status
func Server(statusCode int, detail string) *Error {
	return &Error{Kind: KindServer, StatusCode: statusCode, Detail: detail}
}

// returns the kind of err, or "" when err is not a workflow failure
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}

	return ""
}

// returns the server-supplied detail carried by err, if any
func Detail(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind == KindServer {
		return e.Detail
	}

	return ""
}

func IsValidation(err error) bool {
	return KindOf(err) == KindValidation
}

func IsTransport(err error) bool {
	return KindOf(err) == KindTransport
}

func IsServer(err error) bool {
	return KindOf(err) == KindServer
}

// renders err for display.
// precedence: validation message, server detail, transport text, fallback.
func Message(err error, fallback string) string {
	if err == nil {
		return ""
	}

	var e *Error
	if !errors.As(err, &e) {
		return orFallback(err.Error(), fallback)
	}

	if e.Kind == KindServer && e.Detail != "" {
		return e.Detail
	}

	return orFallback(e.Error(), fallback)
}

func orFallback(msg, fallback string) string {
	if strings.TrimSpace(msg) == "" {
		return fallback
	}

	return msg
}
