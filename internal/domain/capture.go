package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// CaptureDateLayout is the fixed timestamp format of the assets API "date" field.
const CaptureDateLayout = "2006-01-02T15:04:05"

// CaptureRecord is one archived image capture over a coordinate.
type CaptureRecord struct {
	ID   string    `json:"id,omitempty"`
	Date time.Time `json:"date"`
}

// CaptureSet is the capture history returned for one coordinate, in API order.
type CaptureSet struct {
	Count   int             `json:"count"`
	Records []CaptureRecord `json:"results"`
}

// Dates returns the capture timestamps in record order.
func (s CaptureSet) Dates() []time.Time {
	dates := make([]time.Time, len(s.Records))
	for i, r := range s.Records {
		dates[i] = r.Date
	}
	return dates
}

// assetsResponse mirrors the assets API JSON body.
type assetsResponse struct {
	Count   *int          `json:"count"`
	Results []assetResult `json:"results"`
}

type assetResult struct {
	Date string `json:"date"`
	ID   string `json:"id"`
}

// ParseCaptureDate parses an assets API date string as UTC. The string must
// match CaptureDateLayout exactly; fractional seconds are rejected.
func ParseCaptureDate(s string) (time.Time, error) {
	t, err := time.Parse(CaptureDateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	// time.Parse accepts a fractional second after the seconds field even
	// when the layout has none.
	if t.Format(CaptureDateLayout) != s {
		return time.Time{}, fmt.Errorf("parsing time %q: extra text after seconds", s)
	}
	return t, nil
}

// ParseCaptureSet decodes an assets API body.
//
// It returns ErrEmptyPayload when the body decodes to a value with no content,
// ErrMalformedResponse when the body is not JSON or lacks the expected shape,
// ErrInsufficientData when count is below 2, and a *DateParseError for the
// first record whose date cannot be parsed. The count check runs before any
// date is parsed.
func ParseCaptureSet(body []byte) (CaptureSet, error) {
	var generic any
	if err := json.Unmarshal(body, &generic); err != nil {
		return CaptureSet{}, fmt.Errorf("%w: unable to parse JSON data: %v", ErrMalformedResponse, err)
	}
	if isEmptyJSON(generic) {
		return CaptureSet{}, ErrEmptyPayload
	}
	if _, ok := generic.(map[string]any); !ok {
		return CaptureSet{}, fmt.Errorf("%w: expected a JSON object, got %T", ErrMalformedResponse, generic)
	}

	var resp assetsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return CaptureSet{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if resp.Count == nil {
		return CaptureSet{}, fmt.Errorf("%w: missing \"count\" field", ErrMalformedResponse)
	}
	if *resp.Count < 2 {
		return CaptureSet{}, fmt.Errorf("%w: count is %d", ErrInsufficientData, *resp.Count)
	}

	set := CaptureSet{
		Count:   *resp.Count,
		Records: make([]CaptureRecord, 0, len(resp.Results)),
	}
	for i, r := range resp.Results {
		date, err := ParseCaptureDate(r.Date)
		if err != nil {
			return CaptureSet{}, &DateParseError{Index: i, Value: r.Date, Err: err}
		}
		set.Records = append(set.Records, CaptureRecord{ID: r.ID, Date: date})
	}
	return set, nil
}

// isEmptyJSON reports whether a decoded JSON value carries no content.
func isEmptyJSON(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case bool:
		return !t
	case float64:
		return t == 0
	case string:
		return t == ""
	case map[string]any:
		return len(t) == 0
	case []any:
		return len(t) == 0
	default:
		return false
	}
}
