package client

import (
	"fmt"
	"mime"
	"net/http"
)

// APIError is the failure surface of every gateway call. Body holds the
// decoded response payload, when there was one, for caller inspection.
type APIError struct {
	Message    string
	StatusCode int
	Body       map[string]interface{}
}

func (e *APIError) Error() string {
	return e.Message
}

// IsUnauthorized reports whether err is an APIError carrying a 401.
func IsUnauthorized(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.StatusCode == http.StatusUnauthorized
}

// failureMessage picks the message for a non-2xx response: the server's
// `error` field, then its `message` field, then a synthesized fallback.
func failureMessage(body map[string]interface{}, statusCode int) string {
	if s, ok := body["error"].(string); ok && s != "" {
		return s
	}
	if s, ok := body["message"].(string); ok && s != "" {
		return s
	}
	return fmt.Sprintf("Request failed with status %d", statusCode)
}

// isJSONResponse reports whether the declared content type indicates a
// structured body. Anything else is treated as having no payload, which is
// not an error by itself.
func isJSONResponse(resp *http.Response) bool {
	mediaType, _, err := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if err != nil {
		return false
	}
	return mediaType == "application/json"
}
