package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/agbru/matbench/internal/benchmark"
)

const namespace = "matbench"

// BenchmarkCollector exports pass durations, speedups and task counts. It
// satisfies executor.TaskRecorder and benchmark.Observer, and registers as a
// single prometheus.Collector.
type BenchmarkCollector struct {
	passSeconds *prometheus.HistogramVec
	speedup     *prometheus.GaugeVec
	tasks       *prometheus.CounterVec
	records     prometheus.Counter
	order       prometheus.Gauge
}

// NewBenchmarkCollector creates the collectors. They are not registered.
func NewBenchmarkCollector() *BenchmarkCollector {
	return &BenchmarkCollector{
		passSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pass_duration_seconds",
			Help:      "Wall-clock duration of the fastest multiplication pass per strategy.",
			Buckets:   prometheus.ExponentialBuckets(1e-5, 4, 12),
		}, []string{"strategy"}),
		speedup: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "speedup_ratio",
			Help:      "Sequential over parallel duration for the last sweep, by block size.",
		}, []string{"block_size"}),
		tasks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tasks_total",
			Help:      "Block tasks executed, by strategy.",
		}, []string{"strategy"}),
		records: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "block_sizes_measured_total",
			Help:      "Block sizes measured across all sweeps.",
		}),
		order: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "matrix_order",
			Help:      "Order n of the matrices in the current sweep.",
		}),
	}
}

// ObserveTasks records the number of tasks one pass ran.
func (c *BenchmarkCollector) ObserveTasks(strategy string, _, tasks int) {
	c.tasks.WithLabelValues(strategy).Add(float64(tasks))
}

// ObserveRecord records the measurements for one block size.
func (c *BenchmarkCollector) ObserveRecord(n int, rec benchmark.TimingRecord) {
	c.order.Set(float64(n))
	c.passSeconds.WithLabelValues("sequential").Observe(rec.Sequential.Seconds())
	c.passSeconds.WithLabelValues("parallel").Observe(rec.Parallel.Seconds())
	c.speedup.WithLabelValues(strconv.Itoa(rec.BlockSize)).Set(rec.Speedup())
	c.records.Inc()
}

// Describe implements prometheus.Collector.
func (c *BenchmarkCollector) Describe(ch chan<- *prometheus.Desc) {
	c.passSeconds.Describe(ch)
	c.speedup.Describe(ch)
	c.tasks.Describe(ch)
	c.records.Describe(ch)
	c.order.Describe(ch)
}

// Collect implements prometheus.Collector.
func (c *BenchmarkCollector) Collect(ch chan<- prometheus.Metric) {
	c.passSeconds.Collect(ch)
	c.speedup.Collect(ch)
	c.tasks.Collect(ch)
	c.records.Collect(ch)
	c.order.Collect(ch)
}
