package errors

// Kind classifies a failed workflow operation
type Kind string

const (
	// local precondition failed, nothing was sent
	KindValidation Kind = "validation"
	// request never produced a usable response (network, timeout, malformed body)
	KindTransport Kind = "transport"
	// service answered with a non-success status
	KindServer Kind = "server"
)

// Error is the failure value carried through the workflow.
// Message is set for validation failures, Detail is the verbatim
// server-supplied detail (may be empty), Err is the underlying cause.
type Error struct {
	Kind       Kind
	Message    string
	Detail     string
	StatusCode int
	Err        error
}

// ErrorResponse is the failure body returned by the code service
type ErrorResponse struct {
	Detail any `json:"detail"`
}

// error categories used for log fields
const (
	CategoryTimeout  = "timeout"
	CategoryCanceled = "canceled"
	CategoryNetwork  = "network"
	CategoryUnknown  = "unknown"
)
