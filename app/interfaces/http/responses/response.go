package responses

// ErrorResponse is the uniform error body. Code is an opaque UUID that maps
// a client report to a server log line; Error is a short human message that
// never distinguishes auth failure causes.
type ErrorResponse struct {
	Code  string `json:"code"`
	Error string `json:"error,omitempty"`
}

// OkResponse acknowledges an operation with no other payload.
type OkResponse struct {
	Ok bool `json:"ok"`
}
