package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/couchcryptid/flyby-estimator/internal/domain"
)

// reporter writes estimate results to the console, either as the classic
// text lines or as one JSON object per result. Text reports after the first
// are separated by a blank line.
type reporter struct {
	w      io.Writer
	asJSON bool
	n      int
}

func newReporter(w io.Writer, asJSON bool) *reporter {
	return &reporter{w: w, asJSON: asJSON}
}

// report writes one result. It returns the writer's error, if any.
func (r *reporter) report(label string, res domain.Result, err error) error {
	defer func() { r.n++ }()
	if r.asJSON {
		return r.reportJSON(label, res, err)
	}

	var b bytes.Buffer
	if r.n > 0 {
		b.WriteByte('\n')
	}
	if label != "" {
		fmt.Fprintln(&b, label)
	}
	switch {
	case err != nil:
		fmt.Fprintf(&b, "ERROR: %v\n", err)
	case res.Outcome == domain.OutcomeNoData:
		fmt.Fprintln(&b, "No data exists for specified location")
	default:
		est := res.Estimate
		fmt.Fprintf(&b, "Average time delta: %s\n", formatInterval(est.AverageInterval))
		fmt.Fprintf(&b, "Next time: %s\n", formatTime(est.Next))
		if due := est.DueIn(); due >= 0 {
			fmt.Fprintf(&b, "Due in: %s\n", formatInterval(due))
		} else {
			fmt.Fprintf(&b, "Overdue by: %s\n", formatInterval(-due))
		}
	}
	_, werr := r.w.Write(b.Bytes())
	return werr
}

type jsonReport struct {
	Label     string            `json:"label,omitempty"`
	ID        string            `json:"id"`
	Coord     domain.Coordinate `json:"coordinate"`
	Outcome   string            `json:"outcome,omitempty"`
	Error     string            `json:"error,omitempty"`
	ErrorKind string            `json:"error_kind,omitempty"`

	Captures               int     `json:"captures,omitempty"`
	First                  string  `json:"first,omitempty"`
	Last                   string  `json:"last,omitempty"`
	AverageIntervalSeconds float64 `json:"average_interval_seconds,omitempty"`
	Next                   string  `json:"next,omitempty"`
	DueInSeconds           float64 `json:"due_in_seconds,omitempty"`
}

func (r *reporter) reportJSON(label string, res domain.Result, err error) error {
	out := jsonReport{
		Label:   label,
		ID:      res.ID,
		Coord:   res.Coordinate,
		Outcome: string(res.Outcome),
	}
	if err != nil {
		out.Error = err.Error()
		out.ErrorKind = domain.Kind(err)
	}
	if res.Outcome == domain.OutcomeEstimated {
		est := res.Estimate
		out.Captures = est.Captures
		out.First = est.First.Format(time.RFC3339Nano)
		out.Last = est.Last.Format(time.RFC3339Nano)
		out.AverageIntervalSeconds = est.AverageInterval.Seconds()
		out.Next = est.Next.Format(time.RFC3339Nano)
		out.DueInSeconds = est.DueIn().Seconds()
	}
	return json.NewEncoder(r.w).Encode(out)
}

// formatInterval renders d as "D days, H:MM:SS[.ffffff]" at microsecond
// precision, e.g. "15 days, 23:59:51.142857".
func formatInterval(d time.Duration) string {
	sign := ""
	if d < 0 {
		sign = "-"
		d = -d
	}
	d = d.Round(time.Microsecond)

	const day = 24 * time.Hour
	days := d / day
	d -= days * day
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second
	us := (d - s*time.Second) / time.Microsecond

	clock := fmt.Sprintf("%d:%02d:%02d", h, m, s)
	if us != 0 {
		clock += fmt.Sprintf(".%06d", us)
	}

	switch days {
	case 0:
		return sign + clock
	case 1:
		return sign + "1 day, " + clock
	default:
		return fmt.Sprintf("%s%d days, %s", sign, days, clock)
	}
}

// formatTime renders t as "YYYY-MM-DD HH:MM:SS", adding microseconds when
// present. t is rounded to the microsecond like formatInterval.
func formatTime(t time.Time) string {
	t = t.Round(time.Microsecond)
	if t.Nanosecond()/int(time.Microsecond) != 0 {
		return t.Format("2006-01-02 15:04:05.000000")
	}
	return t.Format("2006-01-02 15:04:05")
}
