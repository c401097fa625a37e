package domain

import (
	"errors"
	"fmt"
)

// Failure kinds. Every error returned by an estimate matches exactly one of
// these under errors.Is.
var (
	ErrInvalidLatitude   = errors.New("invalid latitude")
	ErrInvalidLongitude  = errors.New("invalid longitude")
	ErrHTTP              = errors.New("http error")
	ErrConnection        = errors.New("connection error")
	ErrTimeout           = errors.New("timeout error")
	ErrRequest           = errors.New("request error")
	ErrMalformedResponse = errors.New("malformed response")
	ErrInsufficientData  = errors.New("not enough data points to calculate next date")
	ErrDateParse         = errors.New("date parse error")
)

// ErrEmptyPayload is returned by ParseCaptureSet when the body is valid JSON
// with no content. It is not a failure: callers report it as OutcomeNoData.
var ErrEmptyPayload = errors.New("empty payload")

// HTTPError carries a non-2xx response from the imagery API.
type HTTPError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("http error: status %s", e.Status)
	}
	return fmt.Sprintf("http error: status %s: %s", e.Status, e.Body)
}

// Is reports whether target is ErrHTTP.
func (e *HTTPError) Is(target error) bool { return target == ErrHTTP }

// DateParseError describes a capture record whose date does not match CaptureDateLayout.
type DateParseError struct {
	Index int
	Value string
	Err   error
}

func (e *DateParseError) Error() string {
	return fmt.Sprintf("date parse error: results[%d].date %q: %v", e.Index, e.Value, e.Err)
}

func (e *DateParseError) Is(target error) bool { return target == ErrDateParse }

func (e *DateParseError) Unwrap() error { return e.Err }

// kinds is ordered; the first match wins.
var kinds = []struct {
	err  error
	kind string
}{
	{ErrInvalidLatitude, "invalid_latitude"},
	{ErrInvalidLongitude, "invalid_longitude"},
	{ErrHTTP, "http_error"},
	{ErrConnection, "connection_error"},
	{ErrTimeout, "timeout_error"},
	{ErrRequest, "request_error"},
	{ErrMalformedResponse, "malformed_response"},
	{ErrInsufficientData, "insufficient_data"},
	{ErrDateParse, "date_parse_error"},
}

// Kind returns a stable label for err, suitable for metrics and machine output.
// It returns "" for nil and "unknown" for errors outside the taxonomy.
func Kind(err error) string {
	if err == nil {
		return ""
	}
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return "unknown"
}
