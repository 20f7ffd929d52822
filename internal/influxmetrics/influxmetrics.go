// Package influxmetrics optionally pushes per-class training-run
// summaries (each class's final rule count) and evaluate-run accuracy
// against a held-out set to InfluxDB; no description length is pushed.
// It sits alongside the Prometheus counters the
// telemetry package always exposes. It is a push-based sink for
// longer-term run history; a ripperk run works fine with it disabled.
package influxmetrics

import (
	"context"
	"log/slog"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// measurement is the Influx measurement every point in this package
// writes under.
const measurement = "ripperk_class_run"

// Client wraps an influxdb2 client and a bound write API for one
// bucket. A nil *Client is not valid; callers that disable Influx
// reporting should simply not construct one.
type Client struct {
	influx influxdb2.Client
	write  api.WriteAPI
	bucket string
}

// New returns a Client pushing asynchronously to url's default
// organization-less bucket. Write errors are logged, not returned,
// since metrics reporting never blocks a training run.
func New(url, token, bucket string) *Client {
	influx := influxdb2.NewClient(url, token)
	writeAPI := influx.WriteAPI("", bucket)

	go func() {
		for err := range writeAPI.Errors() {
			slog.Warn("influxmetrics: write error", slog.String("error", err.Error()))
		}
	}()

	return &Client{influx: influx, write: writeAPI, bucket: bucket}
}

// RecordClassRun queues one point describing the ruleset learned for
// class: its final rule count, at the current time. It returns
// immediately; the write happens on the client's internal batching
// goroutine.
func (c *Client) RecordClassRun(_ context.Context, class string, ruleCount int) {
	if c == nil {
		return
	}
	p := write.NewPoint(
		measurement,
		map[string]string{"class": class},
		map[string]interface{}{"rule_count": ruleCount},
		time.Now(),
	)
	c.write.WritePoint(p)
}

// RecordAccuracy queues one point describing an evaluate run's overall
// accuracy against a held-out dataset.
func (c *Client) RecordAccuracy(_ context.Context, datasetPath string, correct, total int) {
	if c == nil || total == 0 {
		return
	}
	p := write.NewPoint(
		"ripperk_evaluation",
		map[string]string{"dataset": datasetPath},
		map[string]interface{}{
			"correct":  correct,
			"total":    total,
			"accuracy": float64(correct) / float64(total),
		},
		time.Now(),
	)
	c.write.WritePoint(p)
}

// Close flushes any pending points and releases the underlying HTTP
// client. Safe to call on a nil Client.
func (c *Client) Close() error {
	if c == nil {
		return nil
	}
	c.write.Flush()
	c.influx.Close()
	return nil
}
