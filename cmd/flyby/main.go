// Command flyby predicts when a satellite will next photograph a location,
// based on the capture history in the NASA Earth imagery archive.
//
// Usage:
//
//	flyby -lat 36.098592 -lon -112.097796
//	flyby -demo
//	flyby -json -lat 43.078154 -lon -79.075891
//
// Configuration is read from the environment (and a .env file); see
// internal/config.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/flyby-estimator/internal/adapter/earth"
	"github.com/couchcryptid/flyby-estimator/internal/config"
	"github.com/couchcryptid/flyby-estimator/internal/estimator"
	"github.com/couchcryptid/flyby-estimator/internal/observability"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("flyby", flag.ContinueOnError)
	fs.SetOutput(stderr)
	lat := fs.Float64("lat", 0, "latitude in decimal degrees, -90 to 90")
	lon := fs.Float64("lon", 0, "longitude in decimal degrees, -180 to 180")
	demo := fs.Bool("demo", false, "estimate the built-in demonstration locations")
	asJSON := fs.Bool("json", false, "print one JSON object per estimate")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	provided := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { provided[f.Name] = true })
	if !*demo && (!provided["lat"] || !provided["lon"]) {
		fmt.Fprintln(stderr, "flyby: -lat and -lon are required unless -demo is set")
		fs.Usage()
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "flyby: load config: %v\n", err)
		return 1
	}

	logger := observability.NewLogger(cfg)
	reg := prometheus.NewRegistry()
	metrics := observability.NewMetrics(reg)

	client := earth.NewClient(cfg.EarthAPIBaseURL, cfg.EarthAPIKey, cfg.EarthAPITimeout, metrics, logger)
	est := estimator.New(client, logger, metrics)

	targets := []location{{Lat: *lat, Lon: *lon}}
	if *demo {
		targets = demoLocations
	}

	rep := newReporter(stdout, *asJSON)
	failed, writeFailed := false, false
	for _, target := range targets {
		if ctx.Err() != nil {
			break
		}
		res, err := est.Estimate(ctx, target.Lat, target.Lon)
		if err != nil {
			failed = true
		}
		if err := rep.report(target.Name, res, err); err != nil {
			fmt.Fprintf(stderr, "flyby: write report: %v\n", err)
			writeFailed = true
			break
		}
	}

	if cfg.PushgatewayURL != "" {
		pushCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		if err := observability.PushMetrics(pushCtx, cfg.PushgatewayURL, cfg.MetricsJob, reg); err != nil {
			logger.Warn("metrics push failed", "error", err)
		}
		cancel()
	}

	if writeFailed {
		return 1
	}
	// The demonstration deliberately includes invalid coordinates.
	if failed && !*demo {
		return 1
	}
	return 0
}
