package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/buger/jsonparser"
)

var ErrTransport = errors.New("network error")

const (
	keyDetail          = "detail"
	keyNonFieldErrors  = "non_field_errors"
	transportErrorText = "network error: the catalog service could not be reached"
	canceledErrorText  = "request cancelled"
	timeoutErrorText   = "request timed out"
)

// ApiError is returned for every non-success response of the catalog API
type ApiError struct {
	Status     int
	StatusText string
	// Fields holds field-level validation messages, keyed by field name
	Fields map[string][]string
	// Messages holds messages not bound to a field, e.g. the "detail" of a 404 response
	Messages []string
}

func (e *ApiError) Error() string {
	var parts []string
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, strings.Join(e.Fields[k], " ")))
	}
	parts = append(parts, e.Messages...)
	if len(parts) == 0 {
		return fmt.Sprintf("request failed: %s", e.StatusText)
	}
	return strings.Join(parts, "; ")
}

// HasFieldErrors reports whether the server rejected individual fields
func (e *ApiError) HasFieldErrors() bool {
	return len(e.Fields) > 0
}

func newApiError(status int, statusText string, body []byte) *ApiError {
	e := &ApiError{
		Status:     status,
		StatusText: statusText,
	}
	fields, messages, ok := parseErrorDetail(body)
	if ok {
		e.Fields = fields
		e.Messages = messages
	}
	return e
}

// parseErrorDetail extracts messages from an error body. Accepted shapes are an object mapping field names to a
// message or a list of messages, a list of messages, or a single string. ok is false if body is not parseable.
func parseErrorDetail(body []byte) (fields map[string][]string, messages []string, ok bool) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, nil, false
	}
	switch body[0] {
	case '{':
		fields = map[string][]string{}
		err := jsonparser.ObjectEach(body, func(key []byte, value []byte, dataType jsonparser.ValueType, _ int) error {
			msgs, err := valueToMessages(value, dataType)
			if err != nil {
				return err
			}
			k := string(key)
			if k == keyDetail || k == keyNonFieldErrors {
				messages = append(messages, msgs...)
			} else {
				fields[k] = append(fields[k], msgs...)
			}
			return nil
		})
		if err != nil {
			return nil, nil, false
		}
		if len(fields) == 0 {
			fields = nil
		}
		return fields, messages, true
	case '[':
		msgs, err := valueToMessages(body, jsonparser.Array)
		if err != nil {
			return nil, nil, false
		}
		return nil, msgs, true
	case '"':
		if len(body) < 2 || body[len(body)-1] != '"' {
			return nil, nil, false
		}
		s, err := jsonparser.ParseString(body[1 : len(body)-1])
		if err != nil {
			return nil, nil, false
		}
		return nil, []string{s}, true
	default:
		return nil, nil, false
	}
}

func valueToMessages(value []byte, dataType jsonparser.ValueType) ([]string, error) {
	switch dataType {
	case jsonparser.String:
		s, err := jsonparser.ParseString(value)
		if err != nil {
			return nil, err
		}
		return []string{s}, nil
	case jsonparser.Array:
		var msgs []string
		var innerErr error
		_, err := jsonparser.ArrayEach(value, func(v []byte, dt jsonparser.ValueType, _ int, _ error) {
			if innerErr != nil {
				return
			}
			m, err := valueToMessages(v, dt)
			if err != nil {
				innerErr = err
				return
			}
			msgs = append(msgs, m...)
		})
		if err != nil {
			return nil, err
		}
		return msgs, innerErr
	default:
		return []string{string(value)}, nil
	}
}

// ErrorText returns the best available human-readable text for an error returned by the Client
func ErrorText(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *ApiError
	if errors.As(err, &apiErr) {
		return apiErr.Error()
	}
	if errors.Is(err, context.Canceled) {
		return canceledErrorText
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return timeoutErrorText
	}
	if errors.Is(err, ErrTransport) {
		return transportErrorText
	}
	return err.Error()
}
