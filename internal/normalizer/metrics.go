package normalizer

import "github.com/prometheus/client_golang/prometheus"

const metricsNamespace = "candleconv"

type metrics struct {
	converted prometheus.Counter
	skipped   *prometheus.CounterVec
}

func newMetrics() *metrics {
	return &metrics{
		converted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "rows_converted_total",
			Help:      "Source rows written to the normalized file.",
		}),
		skipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "rows_skipped_total",
			Help:      "Source rows dropped during conversion, by reason.",
		}, []string{"reason"}),
	}
}

func (m *metrics) register(reg prometheus.Registerer) error {
	if err := reg.Register(m.converted); err != nil {
		return err
	}
	return reg.Register(m.skipped)
}

func (m *metrics) observe(res rowResult) {
	if res.skip == skipNone {
		m.converted.Inc()
		return
	}
	m.skipped.WithLabelValues(res.skip.String()).Inc()
}
