package common

// Error is the gateway-wide error carrier: an opaque code for clients plus a
// human-readable message for logs. Codes are stable UUIDs so a client report
// can be matched to a log line without leaking internals.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewError creates an Error from a code and message.
func NewError(code string, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// WrapError creates an Error that carries an underlying error's text.
func WrapError(code string, err error) *Error {
	if err == nil {
		return NewError(code, "")
	}
	return NewError(code, err.Error())
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return e.Code + ": " + e.Message
}
