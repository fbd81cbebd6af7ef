package highscore

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
)

// Instrument wraps k so that every call is timed and every new record counted.
// Collectors are registered on reg.
func Instrument(k Keeper, reg prometheus.Registerer) Keeper {
	m := &metrics{
		k: k,
		calls: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "snake",
				Subsystem: "highscore",
				Name:      "calls_seconds",
				Help:      "Calls processed by the high-score keeper.",
			},
			[]string{"method", "result"},
		),
		records: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "snake",
				Subsystem: "highscore",
				Name:      "records_total",
				Help:      "Submissions that set a new high score.",
			},
		),
	}
	reg.MustRegister(m.calls, m.records)
	return m
}

type metrics struct {
	k       Keeper
	calls   *prometheus.HistogramVec
	records prometheus.Counter
}

// instrument starts a timer; the returned func records it under the call's outcome.
func (m *metrics) instrument(method string) func(err error) {
	start := prometheus.NewTimer(nil)
	return func(err error) {
		result := "ok"
		if err != nil {
			result = "error"
		}
		m.calls.WithLabelValues(method, result).Observe(start.ObserveDuration().Seconds())
	}
}

func (m *metrics) Best(ctx context.Context) (Record, error) {
	done := m.instrument("Best")
	rec, err := m.k.Best(ctx)
	done(err)
	return rec, err
}

func (m *metrics) Submit(ctx context.Context, rec Record) (Record, bool, error) {
	done := m.instrument("Submit")
	best, won, err := m.k.Submit(ctx, rec)
	done(err)
	if won {
		m.records.Inc()
	}
	return best, won, err
}
