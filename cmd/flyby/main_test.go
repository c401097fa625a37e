package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/couchcryptid/flyby-estimator/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const threeDays = `{"count":3,"results":[{"date":"2020-01-01T00:00:00"},{"date":"2020-01-02T00:00:00"},{"date":"2020-01-03T00:00:00"}]}`

func assetsServer(t *testing.T, status int, body string) (*httptest.Server, *atomic.Int64) {
	t.Helper()
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	t.Setenv("EARTH_API_BASE_URL", srv.URL)
	t.Setenv("NASA_API_KEY", "test-key")
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("PUSHGATEWAY_URL", "")
	t.Setenv("FLYBY_CONFIG_FILE", "")
	return srv, &hits
}

func TestRun_SingleEstimate(t *testing.T) {
	_, hits := assetsServer(t, http.StatusOK, threeDays)

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"-lat", "36.098592", "-lon", "-112.097796"}, &stdout, &stderr)

	require.Equal(t, 0, code, stderr.String())
	assert.Equal(t, int64(1), hits.Load())
	assert.Contains(t, stdout.String(), "Average time delta: 1 day, 0:00:00\n")
	assert.Contains(t, stdout.String(), "Next time: 2020-01-04 00:00:00\n")
	assert.Contains(t, stdout.String(), "Overdue by: ")
}

func TestRun_NoData(t *testing.T) {
	assetsServer(t, http.StatusOK, "")

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"-lat", "0", "-lon", "0"}, &stdout, &stderr)

	assert.Equal(t, 0, code)
	assert.Equal(t, "No data exists for specified location\n", stdout.String())
}

func TestRun_HTTPErrorExitsNonZero(t *testing.T) {
	assetsServer(t, http.StatusForbidden, `{"error":{"code":"API_KEY_INVALID"}}`)

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"-lat", "1", "-lon", "1"}, &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Contains(t, stdout.String(), "ERROR: fetch assets: http error: status 403 Forbidden")
}

func TestRun_InvalidLatitudeSkipsRequest(t *testing.T) {
	_, hits := assetsServer(t, http.StatusOK, threeDays)

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"-lat", "91", "-lon", "0"}, &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Equal(t, int64(0), hits.Load())
	assert.Equal(t, "ERROR: invalid latitude 91: valid latitude range is -90 to 90\n", stdout.String())
}

func TestRun_MissingCoordinates(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"-lat", "10"}, &stdout, &stderr)

	assert.Equal(t, 2, code)
	assert.Contains(t, stderr.String(), "-lat and -lon are required")
	assert.Empty(t, stdout.String())
}

func TestRun_BadFlag(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"-lat", "north"}, &stdout, &stderr)
	assert.Equal(t, 2, code)
}

func TestRun_Demo(t *testing.T) {
	_, hits := assetsServer(t, http.StatusOK, threeDays)

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"-demo"}, &stdout, &stderr)

	require.Equal(t, 0, code, "demo exits cleanly despite invalid entries")
	assert.Equal(t, int64(len(demoLocations)-2), hits.Load(), "invalid coordinates never reach the API")

	out := stdout.String()
	for _, loc := range demoLocations {
		assert.Contains(t, out, loc.Name+"\n")
	}
	assert.Contains(t, out, "ERROR: invalid latitude -91")
	assert.Contains(t, out, "ERROR: invalid longitude -181")
	assert.Equal(t, len(demoLocations)-2, strings.Count(out, "Next time: 2020-01-04 00:00:00"))
}

func TestRun_JSON(t *testing.T) {
	assetsServer(t, http.StatusOK, threeDays)

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"-json", "-demo"}, &stdout, &stderr)
	require.Equal(t, 0, code)

	var reports []jsonReport
	sc := bufio.NewScanner(&stdout)
	for sc.Scan() {
		var r jsonReport
		require.NoError(t, json.Unmarshal(sc.Bytes(), &r))
		reports = append(reports, r)
	}
	require.Len(t, reports, len(demoLocations))

	assert.Equal(t, "Test 1", reports[0].Label)
	assert.Equal(t, "estimated", reports[0].Outcome)
	assert.Equal(t, "2020-01-04T00:00:00Z", reports[0].Next)
	assert.Equal(t, 86400.0, reports[0].AverageIntervalSeconds)
	assert.Equal(t, 3, reports[0].Captures)
	assert.NotEmpty(t, reports[0].ID)

	assert.Equal(t, "invalid_latitude", reports[1].ErrorKind)
	assert.Empty(t, reports[1].Outcome)
	assert.Equal(t, -91.0, reports[1].Coord.Lat)
	assert.Equal(t, "invalid_longitude", reports[2].ErrorKind)
}

func TestRun_PushesMetrics(t *testing.T) {
	assetsServer(t, http.StatusOK, threeDays)

	var pushed atomic.Int64
	var pushedPath atomic.Value
	gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pushed.Add(1)
		pushedPath.Store(r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer gateway.Close()
	t.Setenv("PUSHGATEWAY_URL", gateway.URL)
	t.Setenv("METRICS_JOB", "flyby-test")

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"-lat", "1", "-lon", "1"}, &stdout, &stderr)

	require.Equal(t, 0, code)
	assert.Equal(t, int64(1), pushed.Load())
	assert.Equal(t, "/metrics/job/flyby-test", pushedPath.Load())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestRun_ReportWriteFailure(t *testing.T) {
	for _, args := range [][]string{
		{"-lat", "1", "-lon", "1"},
		{"-json", "-lat", "1", "-lon", "1"},
	} {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			assetsServer(t, http.StatusOK, threeDays)

			var stderr bytes.Buffer
			code := run(context.Background(), args, failingWriter{}, &stderr)

			assert.Equal(t, 1, code)
			assert.Contains(t, stderr.String(), "flyby: write report: disk full")
		})
	}
}

func TestRun_DemoSeparatesReports(t *testing.T) {
	assetsServer(t, http.StatusOK, "")

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"-demo"}, &stdout, &stderr)
	require.Equal(t, 0, code)

	out := stdout.String()
	assert.True(t, strings.HasPrefix(out, "Test 1\n"))
	assert.Equal(t, len(demoLocations)-1, strings.Count(out, "\n\n"))
}

func TestFormatInterval(t *testing.T) {
	cases := []struct {
		in   time.Duration
		want string
	}{
		{0, "0:00:00"},
		{90 * time.Second, "0:01:30"},
		{24 * time.Hour, "1 day, 0:00:00"},
		{16*24*time.Hour - 9*time.Second + 142857142*time.Nanosecond, "15 days, 23:59:51.142857"},
		{500 * time.Nanosecond, "0:00:00.000001"},
		{-2 * time.Hour, "-2:00:00"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, formatInterval(tc.in), tc.in.String())
	}
}

func TestFormatTime(t *testing.T) {
	assert.Equal(t, "2020-01-04 00:00:00", formatTime(time.Date(2020, 1, 4, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2014-05-29 17:51:46.142857", formatTime(time.Date(2014, 5, 29, 17, 51, 46, 142857142, time.UTC)))
	assert.Equal(t, "2020-01-01 00:00:00.666667", formatTime(time.Date(2020, 1, 1, 0, 0, 0, 666666667, time.UTC)))
	assert.Equal(t, "2020-01-01 00:00:01", formatTime(time.Date(2020, 1, 1, 0, 0, 0, 999999700, time.UTC)))
}

func TestReport_NextMatchesAverageRounding(t *testing.T) {
	base := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	avg := 2 * time.Second / 3
	res := domain.Result{
		Outcome: domain.OutcomeEstimated,
		Estimate: domain.Estimate{
			Captures:        2,
			First:           base,
			Last:            base,
			AverageInterval: avg,
			Next:            base.Add(avg),
			ComputedAt:      base,
		},
	}

	var out bytes.Buffer
	require.NoError(t, newReporter(&out, false).report("", res, nil))
	assert.Contains(t, out.String(), "Average time delta: 0:00:00.666667\n")
	assert.Contains(t, out.String(), "Next time: 2020-01-01 00:00:00.666667\n")
}
