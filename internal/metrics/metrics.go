package metrics

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/push"
)

// Recorder holds the run metrics on its own registry so a batch run can
// push them to a Pushgateway and the API can serve them.
type Recorder struct {
	registry *prometheus.Registry

	observationsInserted *prometheus.CounterVec
	barsSkipped          *prometheus.CounterVec
	ingestErrors         *prometheus.CounterVec
	providerErrors       *prometheus.CounterVec
	marketBull           prometheus.Gauge
	macroYearOverYear    prometheus.Gauge
	ordersTotal          *prometheus.CounterVec
	runDuration          prometheus.Histogram
	lastRunTimestamp     prometheus.Gauge
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Recorder{
		registry: registry,
		observationsInserted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "trendalgo_price_observations_inserted_total",
				Help: "Daily closes written to the price store",
			},
			[]string{"ticker"},
		),
		barsSkipped: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "trendalgo_bars_skipped_total",
				Help: "Provider bars dropped during ingestion",
			},
			[]string{"ticker"},
		),
		ingestErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "trendalgo_ingest_errors_total",
				Help: "Instrument ingestions that failed",
			},
			[]string{"ticker"},
		),
		providerErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "trendalgo_provider_errors_total",
				Help: "Market data fetches that failed and were treated as empty",
			},
			[]string{"ticker"},
		),
		marketBull: factory.NewGauge(prometheus.GaugeOpts{
			Name: "trendalgo_market_bull",
			Help: "1 when the latest close is above the trailing mean",
		}),
		macroYearOverYear: factory.NewGauge(prometheus.GaugeOpts{
			Name: "trendalgo_macro_year_over_year",
			Help: "Year over year change of the macro indicator",
		}),
		ordersTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "trendalgo_orders_total",
				Help: "Allocation targets by execution status",
			},
			[]string{"symbol", "action", "status"},
		),
		runDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "trendalgo_run_duration_seconds",
			Help:    "Duration of decision runs in seconds",
			Buckets: prometheus.DefBuckets,
		}),
		lastRunTimestamp: factory.NewGauge(prometheus.GaugeOpts{
			Name: "trendalgo_last_run_timestamp_seconds",
			Help: "Unix time of the last completed run",
		}),
	}
}

func (r *Recorder) RecordIngest(ticker string, inserted int64, skipped int) {
	r.observationsInserted.WithLabelValues(ticker).Add(float64(inserted))
	r.barsSkipped.WithLabelValues(ticker).Add(float64(skipped))
}

func (r *Recorder) RecordIngestError(ticker string) {
	r.ingestErrors.WithLabelValues(ticker).Inc()
}

func (r *Recorder) RecordProviderError(ticker string) {
	r.providerErrors.WithLabelValues(ticker).Inc()
}

func (r *Recorder) RecordSignals(isBull bool, macroYearOverYear float64) {
	if isBull {
		r.marketBull.Set(1)
	} else {
		r.marketBull.Set(0)
	}
	r.macroYearOverYear.Set(macroYearOverYear)
}

func (r *Recorder) RecordOrder(symbol, action, status string) {
	r.ordersTotal.WithLabelValues(symbol, action, status).Inc()
}

// RecordRun records run latency in seconds and marks the run time
func (r *Recorder) RecordRun(seconds float64) {
	r.runDuration.Observe(seconds)
	r.lastRunTimestamp.SetToCurrentTime()
}

func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

// Push sends every metric to the Pushgateway, replacing the job's group
func (r *Recorder) Push(ctx context.Context, url, job string) error {
	if err := push.New(url, job).Gatherer(r.registry).PushContext(ctx); err != nil {
		return fmt.Errorf("failed to push metrics to %s: %w", url, err)
	}
	return nil
}
