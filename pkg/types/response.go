package types

// RequestIDHeader carries the per-request correlation id.
const RequestIDHeader = "X-Request-Id"

// DataEnvelope wraps every successful payload as {"data": ...}.
type DataEnvelope struct {
	Data any `json:"data"`
}

// ErrorBody is the client-facing part of a typed error.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
	// RequestID echoes the X-Request-Id of the failed call when known.
	RequestID string `json:"request_id,omitempty"`
}

// ErrorEnvelope wraps every failure as {"error": {...}}.
type ErrorEnvelope struct {
	Error ErrorBody `json:"error"`
}
