package types

// ErrorResponse is the generic error JSON shape returned by the API.
// Some endpoints use "error" instead of "message"
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// Text returns the most specific message available, or an empty string
func (e ErrorResponse) Text() string {
	if e.Message != "" {
		return e.Message
	}

	return e.Error
}

// PageInfo is the pagination metadata attached to every paginated listing
type PageInfo struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages,omitempty"`
}

// Envelope is implemented by responses that carry a required collection
// or object field. MissingField returns the JSON name of the first
// required field that was absent (or null) after decoding, or "".
type Envelope interface {
	MissingField() string
}

// MessageResponse is the acknowledgement body returned by actions
type MessageResponse struct {
	Message string `json:"message"`
}
