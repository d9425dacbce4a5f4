package errors

const (
	HttpInternalError     = "internal_error"
	HttpInvalidJsonError  = "invalid_json"
	HttpValidationError   = "validation_failed"
	HttpInvalidQueryError = "invalid_query"
)

// ErrorResponse is the error response body for stats query failures.
type ErrorResponse struct {
	ErrorType string      `json:"error_type,omitempty"`
	Error     string      `json:"error"`
	Details   interface{} `json:"details,omitempty"`
}

// TrackResponse is the response body for track calls, success or failure.
type TrackResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}
