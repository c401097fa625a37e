package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCaptureSet(t *testing.T) {
	body := []byte(`{
		"count": 3,
		"results": [
			{"date": "2020-01-02T00:00:00", "id": "LC8_L1T_TOA/B"},
			{"date": "2020-01-01T00:00:00", "id": "LC8_L1T_TOA/A"},
			{"date": "2020-01-03T00:00:00", "id": "LC8_L1T_TOA/C"}
		]
	}`)

	set, err := ParseCaptureSet(body)
	require.NoError(t, err)

	assert.Equal(t, 3, set.Count)
	require.Len(t, set.Records, 3)
	assert.Equal(t, "LC8_L1T_TOA/B", set.Records[0].ID)
	assert.Equal(t, time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC), set.Records[0].Date)
	assert.Equal(t, []time.Time{
		time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC),
		time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2020, 1, 3, 0, 0, 0, 0, time.UTC),
	}, set.Dates(), "record order is preserved")
}

func TestParseCaptureSet_EmptyPayload(t *testing.T) {
	for _, body := range []string{`null`, `false`, `0`, `0.0`, `""`, `{}`, `[]`, "  {}\n"} {
		t.Run(body, func(t *testing.T) {
			_, err := ParseCaptureSet([]byte(body))
			assert.ErrorIs(t, err, ErrEmptyPayload)
		})
	}
}

func TestParseCaptureSet_Malformed(t *testing.T) {
	cases := map[string]string{
		"not json":          `<html>Service Unavailable</html>`,
		"truncated":         `{"count": 3, "results": [`,
		"whitespace":        "   ",
		"array":             `[{"date": "2020-01-01T00:00:00"}]`,
		"string":            `"hello"`,
		"missing count":     `{"results": []}`,
		"count wrong type":  `{"count": "3", "results": []}`,
		"results not array": `{"count": 3, "results": {}}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseCaptureSet([]byte(body))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedResponse)
			assert.NotErrorIs(t, err, ErrEmptyPayload)
		})
	}
}

func TestParseCaptureSet_InsufficientData(t *testing.T) {
	for _, body := range []string{
		`{"count": 0, "results": []}`,
		`{"count": 1, "results": [{"date": "2020-01-01T00:00:00"}]}`,
		`{"count": -4}`,
	} {
		_, err := ParseCaptureSet([]byte(body))
		require.ErrorIs(t, err, ErrInsufficientData, body)
	}
}

func TestParseCaptureSet_CountCheckedBeforeDates(t *testing.T) {
	_, err := ParseCaptureSet([]byte(`{"count": 1, "results": [{"date": "garbage"}]}`))
	assert.ErrorIs(t, err, ErrInsufficientData)
	assert.NotErrorIs(t, err, ErrDateParse)
}

func TestParseCaptureSet_BadDate(t *testing.T) {
	cases := map[string]string{
		"fractional seconds": "2020-01-02T00:00:00.210000",
		"half second":        "2020-01-02T00:00:00.5",
		"comma fraction":     "2020-01-02T00:00:00,123",
		"zone suffix":        "2020-01-02T00:00:00Z",
		"date only":          "2020-01-02",
		"missing":            "",
		"out of range":       "2020-13-02T00:00:00",
	}
	for name, date := range cases {
		t.Run(name, func(t *testing.T) {
			body := []byte(`{"count": 2, "results": [{"date": "2020-01-01T00:00:00"}, {"date": "` + date + `"}]}`)
			_, err := ParseCaptureSet(body)
			require.ErrorIs(t, err, ErrDateParse)

			var dpe *DateParseError
			require.True(t, errors.As(err, &dpe))
			assert.Equal(t, 1, dpe.Index)
			assert.Equal(t, date, dpe.Value)
		})
	}
}

func TestParseCaptureSet_MissingDateField(t *testing.T) {
	_, err := ParseCaptureSet([]byte(`{"count": 2, "results": [{"id": "a"}, {"id": "b"}]}`))
	assert.ErrorIs(t, err, ErrDateParse)
}
