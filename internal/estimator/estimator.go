package estimator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/couchcryptid/flyby-estimator/internal/domain"
	"github.com/couchcryptid/flyby-estimator/internal/observability"
	"github.com/google/uuid"
)

// AssetFetcher retrieves the raw assets API body for a coordinate.
type AssetFetcher interface {
	FetchAssets(ctx context.Context, coord domain.Coordinate) ([]byte, error)
}

// Estimator predicts the next satellite capture over a coordinate.
// It holds no per-call state and is safe for concurrent use.
type Estimator struct {
	fetcher AssetFetcher
	logger  *slog.Logger
	metrics *observability.Metrics
}

// New creates an Estimator.
func New(fetcher AssetFetcher, logger *slog.Logger, metrics *observability.Metrics) *Estimator {
	return &Estimator{
		fetcher: fetcher,
		logger:  logger,
		metrics: metrics,
	}
}

// Estimate validates the coordinate, fetches its capture history with a
// single request and predicts the next capture.
//
// A nil error with OutcomeNoData means the archive holds nothing for the
// point. Every other path ends in either OutcomeEstimated or an error that
// matches one of the domain sentinels. Invalid coordinates never reach the
// network.
func (e *Estimator) Estimate(ctx context.Context, lat, lon float64) (domain.Result, error) {
	res := domain.Result{ID: uuid.NewString()}
	logger := e.logger.With("estimate_id", res.ID, "lat", lat, "lon", lon)

	res, err := e.estimate(ctx, logger, res, lat, lon)
	if err != nil {
		logger.Error("estimate failed", "kind", domain.Kind(err), "error", err)
		e.metrics.Estimates.WithLabelValues(domain.Kind(err)).Inc()
		return res, err
	}

	e.metrics.Estimates.WithLabelValues(string(res.Outcome)).Inc()
	return res, nil
}

func (e *Estimator) estimate(ctx context.Context, logger *slog.Logger, res domain.Result, lat, lon float64) (domain.Result, error) {
	res.Coordinate = domain.Coordinate{Lat: lat, Lon: lon}
	coord, err := domain.NewCoordinate(lat, lon)
	if err != nil {
		return res, err
	}

	body, err := e.fetcher.FetchAssets(ctx, coord)
	if err != nil {
		return res, fmt.Errorf("fetch assets: %w", err)
	}

	if len(body) == 0 {
		logger.Info("no data exists for specified location")
		res.Outcome = domain.OutcomeNoData
		return res, nil
	}

	set, err := domain.ParseCaptureSet(body)
	if errors.Is(err, domain.ErrEmptyPayload) {
		logger.Info("empty payload for specified location")
		res.Outcome = domain.OutcomeNoData
		return res, nil
	}
	if err != nil {
		return res, err
	}
	e.metrics.CaptureSetSize.Observe(float64(len(set.Records)))

	est, err := domain.EstimateNextCapture(set.Dates())
	if err != nil {
		return res, err
	}

	logger.Info("average time delta", "average_interval", est.AverageInterval.String(), "captures", est.Captures)
	logger.Info("next capture estimated", "next", est.Next, "due_in", est.DueIn().String())
	e.metrics.LastEstimate.SetToCurrentTime()

	res.Outcome = domain.OutcomeEstimated
	res.Estimate = est
	return res, nil
}
