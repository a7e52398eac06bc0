package gateway

import "fmt"

// Gateway error codes
// These constants define specific failure scenarios for the operations API
const (
	ErrCodeNetworkError     = "NETWORK_ERROR"
	ErrCodeInvalidRequest   = "INVALID_REQUEST"
	ErrCodeResourceNotFound = "RESOURCE_NOT_FOUND"
	ErrCodeRateLimited      = "RATE_LIMITED"
	ErrCodeServerError      = "SERVER_ERROR"
	ErrCodeDecodeError      = "DECODE_ERROR"
)

// Error Messages
// Human-readable messages corresponding to error codes

var errorMessages = map[string]string{
	ErrCodeNetworkError:     "Unable to reach the operations API",
	ErrCodeInvalidRequest:   "The operations API rejected the request",
	ErrCodeResourceNotFound: "The requested resource was not found",
	ErrCodeRateLimited:      "Rate limit exceeded. Please try again later",
	ErrCodeServerError:      "The operations API returned a server error",
	ErrCodeDecodeError:      "Unable to decode the operations API response",
}

// GetErrorMessage returns the human-readable message for an error code
func GetErrorMessage(code string) string {
	if msg, exists := errorMessages[code]; exists {
		return msg
	}
	return "An unknown error occurred"
}

// TransportError is returned when a network call cannot complete or the
// operations API answers with a non-success status.
type TransportError struct {
	Code       string
	Message    string
	StatusCode int
	Details    string
	Err        error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
