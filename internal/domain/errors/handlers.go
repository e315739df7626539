package errors

// ErrorResponse is the body written for every failed request.
type ErrorResponse struct {
	Message string `json:"message"`
}
