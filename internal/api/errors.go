package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
)

// NetworkError is returned when a request never produced a response.
type NetworkError struct {
	Method string
	Path   string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("request %s %s failed: %v", e.Method, e.Path, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// HTTPStatusError is returned for any non-2xx response.
type HTTPStatusError struct {
	StatusCode int
	Status     string
	Detail     string
	Body       []byte
}

func (e *HTTPStatusError) Error() string {
	if len(e.Detail) > 0 {
		return fmt.Sprintf("request failed with status %d: %s", e.StatusCode, e.Detail)
	}
	if len(e.Status) > 0 {
		return fmt.Sprintf("request failed with status %s", e.Status)
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

// ErrorBody is the error envelope returned by the API. Detail is either a
// string or, for validation failures, a list of objects with a msg field.
type ErrorBody struct {
	Detail json.RawMessage `json:"detail"`
}

func (b *ErrorBody) Message() string {
	if b == nil || len(b.Detail) == 0 {
		return ""
	}

	var message string
	if err := json.Unmarshal(b.Detail, &message); err == nil {
		return message
	}

	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(b.Detail, &items); err == nil {
		messages := make([]string, 0, len(items))
		for _, item := range items {
			if len(item.Msg) > 0 {
				messages = append(messages, item.Msg)
			}
		}
		return strings.Join(messages, "; ")
	}

	return ""
}

func newHTTPStatusError(resp *resty.Response) *HTTPStatusError {
	statusErr := &HTTPStatusError{
		StatusCode: resp.StatusCode(),
		Status:     resp.Status(),
		Body:       resp.Body(),
	}

	if body, ok := resp.Error().(*ErrorBody); ok {
		statusErr.Detail = body.Message()
	}

	return statusErr
}

// Detail returns the server supplied detail message carried by err, if any.
func Detail(err error) string {
	var statusErr *HTTPStatusError
	if errors.As(err, &statusErr) {
		return statusErr.Detail
	}
	return ""
}
