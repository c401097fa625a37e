// Package domain models satellite imagery capture history for a point on Earth
// and the next-capture estimate derived from it.
//
// # Data Source
//
// Capture history comes from the NASA Earth imagery "assets" endpoint,
// https://api.nasa.gov/planetary/earth/assets. A request names a point with
// "lat" and "lon" query parameters and authenticates with "api_key". The
// response lists every archived Landsat scene that covers the point:
//
//	{
//	  "count": 3,
//	  "results": [
//	    {"date": "2014-02-04T03:30:01", "id": "LC8_L1T_TOA/LC81270592014035LGN00"},
//	    ...
//	  ]
//	}
//
// Results are not guaranteed to be ordered.
//
// # Conventions
//
// Coordinates:
//
//	WGS-84 decimal degrees. Latitude in [-90, 90], longitude in [-180, 180].
//	Bounds are inclusive, so the poles and the antimeridian are valid input.
//
// Dates:
//
//	"YYYY-MM-DDTHH:MM:SS" with no zone suffix and no fractional seconds.
//	Values are interpreted as UTC. Anything else is a [DateParseError].
//
// Empty answers:
//
//	A zero-length body and a JSON value with no content (null, false, 0,
//	"", {}, []) both mean the archive has nothing for the point. That is a
//	valid negative answer, reported as [OutcomeNoData] rather than an error.
//
// # Estimate
//
// The next capture is predicted as the latest capture plus the mean gap
// between consecutive captures, see [EstimateNextCapture]. The mean is
// computed in integer nanoseconds: gaps are summed as [time.Duration] and
// divided by the gap count, so second-resolution input never drifts. The
// estimate is a heuristic; revisit cycles shift as satellites are added or
// retired.
package domain
