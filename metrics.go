// FILE: metrics.go
package multilog

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Collector exposes a Logger's counters as prometheus metrics, labeled by
// the handle's instance id so multiple loggers can register side by side.
type Collector struct {
	logger *Logger

	processed  *prometheus.Desc
	dropped    *prometheus.Desc
	rotations  *prometheus.Desc
	sinkErrors *prometheus.Desc
	queueDepth *prometheus.Desc
}

var _ prometheus.Collector = (*Collector)(nil)

// NewCollector creates a prometheus collector for the given logger
func NewCollector(l *Logger) *Collector {
	labels := prometheus.Labels{"handle": l.ID()}
	return &Collector{
		logger: l,
		processed: prometheus.NewDesc(
			"multilog_records_processed_total",
			"Records dispatched to the sink set.",
			nil, labels,
		),
		dropped: prometheus.NewDesc(
			"multilog_records_dropped_total",
			"Records dropped by overflow policy or degraded sinks.",
			nil, labels,
		),
		rotations: prometheus.NewDesc(
			"multilog_file_rotations_total",
			"Completed log file rotations.",
			nil, labels,
		),
		sinkErrors: prometheus.NewDesc(
			"multilog_sink_errors_total",
			"Failed sink writes and flushes.",
			nil, labels,
		),
		queueDepth: prometheus.NewDesc(
			"multilog_queue_depth",
			"Records currently buffered in the async queue.",
			nil, labels,
		),
	}
}

// Describe implements prometheus.Collector
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.processed
	ch <- c.dropped
	ch <- c.rotations
	ch <- c.sinkErrors
	ch <- c.queueDepth
}

// Collect implements prometheus.Collector
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	s := c.logger.Stats()
	ch <- prometheus.MustNewConstMetric(c.processed, prometheus.CounterValue, float64(s.Processed))
	ch <- prometheus.MustNewConstMetric(c.dropped, prometheus.CounterValue, float64(s.Dropped))
	ch <- prometheus.MustNewConstMetric(c.rotations, prometheus.CounterValue, float64(s.Rotations))
	ch <- prometheus.MustNewConstMetric(c.sinkErrors, prometheus.CounterValue, float64(s.SinkErrors))
	ch <- prometheus.MustNewConstMetric(c.queueDepth, prometheus.GaugeValue, float64(s.QueueDepth))
}
