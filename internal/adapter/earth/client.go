package earth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/couchcryptid/flyby-estimator/internal/domain"
	"github.com/couchcryptid/flyby-estimator/internal/observability"
)

// DefaultBaseURL is the NASA Earth imagery assets endpoint.
const DefaultBaseURL = "https://api.nasa.gov/planetary/earth/assets"

const (
	maxBodyBytes  = 10 << 20
	maxErrorBytes = 512
	redacted      = "REDACTED"
)

// Client fetches capture history from the NASA Earth assets API.
type Client struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates an assets API client. A zero timeout leaves the
// transport defaults in place.
func NewClient(baseURL, apiKey string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: baseURL,
		metrics: metrics,
		logger:  logger,
	}
}

// FetchAssets issues one GET for the coordinate and returns the raw body of a
// 2xx response. The body may be empty. Failures are classified as
// domain.ErrHTTP (via *domain.HTTPError), domain.ErrConnection,
// domain.ErrTimeout or domain.ErrRequest. There is no retry.
func (c *Client) FetchAssets(ctx context.Context, coord domain.Coordinate) ([]byte, error) {
	start := time.Now()
	body, err := c.fetch(ctx, coord)
	c.metrics.APIDuration.Observe(time.Since(start).Seconds())

	outcome := "success"
	if err != nil {
		outcome = domain.Kind(err)
	}
	c.metrics.APIRequests.WithLabelValues(outcome).Inc()
	return body, err
}

func (c *Client) fetch(ctx context.Context, coord domain.Coordinate) ([]byte, error) {
	u, err := c.assetsURL(coord)
	if err != nil {
		return nil, fmt.Errorf("%w: build assets url: %w", domain.ErrRequest, err)
	}

	c.logger.Info("retrieving data", "url", redactURL(u))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %w", domain.ErrRequest, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classify(fmt.Errorf("assets request: %w", redactError(err, c.apiKey)))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBytes))
		return nil, &domain.HTTPError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       strings.TrimSpace(string(snippet)),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return nil, classify(fmt.Errorf("read assets response: %w", err))
	}
	if len(body) > maxBodyBytes {
		return nil, fmt.Errorf("%w: assets response exceeds %d byte limit", domain.ErrRequest, maxBodyBytes)
	}

	c.logger.Debug("assets response received", "status", resp.StatusCode, "bytes", len(body))
	return body, nil
}

func (c *Client) assetsURL(coord domain.Coordinate) (*url.URL, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, err
	}
	q := u.Query()
	q.Set("lat", formatDegrees(coord.Lat))
	q.Set("lon", formatDegrees(coord.Lon))
	q.Set("api_key", c.apiKey)
	u.RawQuery = q.Encode()
	return u, nil
}

// formatDegrees renders a coordinate with the shortest exact representation,
// e.g. 90 -> "90", -112.097796 -> "-112.097796".
func formatDegrees(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// redactURL returns u as a string with the api_key value masked.
func redactURL(u *url.URL) string {
	masked := *u
	q := masked.Query()
	if q.Has("api_key") {
		q.Set("api_key", redacted)
	}
	masked.RawQuery = q.Encode()
	return masked.String()
}

// redactError masks the key inside *url.Error, whose message embeds the full request URL.
func redactError(err error, apiKey string) error {
	var urlErr *url.Error
	if apiKey == "" || !errors.As(err, &urlErr) {
		return err
	}
	masked := *urlErr
	masked.URL = strings.ReplaceAll(urlErr.URL, url.QueryEscape(apiKey), redacted)
	return &masked
}

// classify tags a transport failure with its domain kind. Timeouts are checked
// first because a timed-out dial is also a *net.OpError.
func classify(err error) error {
	switch {
	case isTimeout(err):
		return fmt.Errorf("%w: %w", domain.ErrTimeout, err)
	case errors.Is(err, context.Canceled):
		return fmt.Errorf("%w: %w", domain.ErrRequest, err)
	case isConnectionFailure(err):
		return fmt.Errorf("%w: %w", domain.ErrConnection, err)
	default:
		return fmt.Errorf("%w: %w", domain.ErrRequest, err)
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func isConnectionFailure(err error) bool {
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	// Server closed the connection before sending a response.
	return errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF)
}
