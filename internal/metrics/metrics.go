// Package metrics exposes Prometheus counters for the serial backfill.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/websoft9/inventory/internal/stock"
)

var (
	registry = prometheus.NewRegistry()

	backfillItems = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "inventory",
		Subsystem: "serial_backfill",
		Name:      "items_total",
		Help:      "Stock items visited by the serial_int backfill, by outcome.",
	}, []string{"outcome"})

	backfillRuns = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "inventory",
		Subsystem: "serial_backfill",
		Name:      "runs_total",
		Help:      "Serial_int backfill passes, by result.",
	}, []string{"result"})
)

func init() {
	registry.MustRegister(backfillItems, backfillRuns)

	// export zeroes before the first pass
	for _, outcome := range []string{"parsed", "defaulted", "skipped"} {
		backfillItems.WithLabelValues(outcome)
	}
	backfillRuns.WithLabelValues("success")
	backfillRuns.WithLabelValues("failed")
}

// ObserveBackfill records one pass of stock.UpdateSerials. err is the error
// the pass returned, if any; stats are counted either way.
func ObserveBackfill(stats stock.Stats, err error) {
	backfillItems.WithLabelValues("parsed").Add(float64(stats.Parsed))
	backfillItems.WithLabelValues("defaulted").Add(float64(stats.Defaulted))
	backfillItems.WithLabelValues("skipped").Add(float64(stats.Skipped))

	result := "success"
	if err != nil {
		result = "failed"
	}
	backfillRuns.WithLabelValues(result).Inc()
}

// Handler serves the backfill counters in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
