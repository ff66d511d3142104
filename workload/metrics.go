package workload

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exposes run reports in the Prometheus format. Reports are folded
// in after the workers join, so the hot loop never touches a collector.
type Metrics struct {
	reg      *prometheus.Registry
	ops      *prometheus.CounterVec
	listLen  *prometheus.GaugeVec
	dropped  prometheus.Counter
	duration prometheus.Histogram
	runs     prometheus.Counter
}

func NewMetrics() *Metrics {
	m := &Metrics{
		reg: prometheus.NewRegistry(),
		ops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rwlist",
			Name:      "operations_total",
			Help:      "Operations executed by workers.",
		}, []string{"op", "result"}),
		listLen: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "rwlist",
			Name:      "list_length",
			Help:      "Number of keys in the list of the last run.",
		}, []string{"phase"}),
		dropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "rwlist",
			Name:      "dropped_operations_total",
			Help:      "Operations lost to integer division of total ops by threads.",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "rwlist",
			Name:      "run_duration_seconds",
			Help:      "Wall-clock time of the concurrent phase.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 16),
		}),
		runs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "rwlist",
			Name:      "runs_total",
			Help:      "Completed runs.",
		}),
	}
	m.reg.MustRegister(m.ops, m.listLen, m.dropped, m.duration, m.runs)
	return m
}

// Observe folds rep into the collectors.
func (m *Metrics) Observe(rep Report) {
	c := rep.Counters
	m.ops.WithLabelValues("member", "ok").Add(float64(c.Member))
	m.ops.WithLabelValues("insert", "ok").Add(float64(c.Inserted()))
	m.ops.WithLabelValues("insert", "duplicate").Add(float64(c.NotInserted))
	m.ops.WithLabelValues("delete", "ok").Add(float64(c.Deleted()))
	m.ops.WithLabelValues("delete", "absent").Add(float64(c.NotDeleted))

	m.listLen.WithLabelValues("initial").Set(float64(rep.Initial))
	m.listLen.WithLabelValues("final").Set(float64(rep.Final))
	m.dropped.Add(float64(rep.Dropped))
	m.duration.Observe(rep.Elapsed.Seconds())
	m.runs.Inc()
}

// WriteFile dumps the collectors in the text exposition format.
func (m *Metrics) WriteFile(path string) error {
	return prometheus.WriteToTextfile(path, m.reg)
}
