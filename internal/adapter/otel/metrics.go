package otel

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "huntready"

// Metrics holds the coordinator's metric instruments.
type Metrics struct {
	RoutesStarted   metric.Int64Counter
	RoutesCompleted metric.Int64Counter
	RoutesFailed    metric.Int64Counter
	RoutesDegraded  metric.Int64Counter
	RouteDuration   metric.Float64Histogram
}

// NewMetrics creates all metric instruments.
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter(meterName)
	m := &Metrics{}
	var err error

	m.RoutesStarted, err = meter.Int64Counter("huntready.routes.started",
		metric.WithDescription("Number of agent routes started"))
	if err != nil {
		return nil, err
	}

	m.RoutesCompleted, err = meter.Int64Counter("huntready.routes.completed",
		metric.WithDescription("Number of agent routes completed"))
	if err != nil {
		return nil, err
	}

	m.RoutesFailed, err = meter.Int64Counter("huntready.routes.failed",
		metric.WithDescription("Number of agent routes failed"))
	if err != nil {
		return nil, err
	}

	m.RoutesDegraded, err = meter.Int64Counter("huntready.routes.degraded",
		metric.WithDescription("Number of routes served without memory context"))
	if err != nil {
		return nil, err
	}

	m.RouteDuration, err = meter.Float64Histogram("huntready.route.duration_seconds",
		metric.WithDescription("Route dispatch duration in seconds"))
	if err != nil {
		return nil, err
	}

	return m, nil
}
