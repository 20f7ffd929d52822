package telemetry

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// These are recorded in the otel metrics API rather than Prometheus's,
// at the same call sites as RulesTotal and ClassDescriptionLength, so a
// run's numbers reach whichever meter reader is wired up (stdout, an
// OTLP collector, ...) and not only the Prometheus registry scraped by
// /metrics. rules_induced counts the same grown rules as RulesTotal's
// "grown" outcome; classes_fitted counts fitted classes and records no
// description length.
var (
	meter = otel.Meter("ripperk.learner")

	meterOnce sync.Once

	rulesInduced  metric.Int64Counter
	classesFitted metric.Int64Counter
)

func initOtelMetrics() error {
	var err error
	meterOnce.Do(func() {
		rulesInduced, err = meter.Int64Counter(
			"ripperk.rules_induced",
			metric.WithDescription("Rules grown during IREP*, by class."),
		)
		if err != nil {
			return
		}
		classesFitted, err = meter.Int64Counter(
			"ripperk.classes_fitted",
			metric.WithDescription("Classes completed by a learning run."),
		)
	})
	return err
}

// RecordRuleInduced increments the otel rule counter for class. A
// failed meter initialization is swallowed: metrics are an aid to
// observability, never a reason to fail a learning run.
func RecordRuleInduced(ctx context.Context, class string) {
	if initOtelMetrics() != nil {
		return
	}
	rulesInduced.Add(ctx, 1, metric.WithAttributes(attribute.String("class", class)))
}

// RecordClassFitted increments the otel per-run class counter.
func RecordClassFitted(ctx context.Context, class string) {
	if initOtelMetrics() != nil {
		return
	}
	classesFitted.Add(ctx, 1, metric.WithAttributes(attribute.String("class", class)))
}
