package observability

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/pvalue/pkg/value"
)

// HeapCollector reports heap statistics as Prometheus metrics.
// Values are read at scrape time; nothing is cached.
type HeapCollector struct {
	heap *value.Heap

	liveValues  *prometheus.Desc
	liveCells   *prometheus.Desc
	maxCells    *prometheus.Desc
	allocations *prometheus.Desc
	frees       *prometheus.Desc
	mapResizes  *prometheus.Desc
	outOfMemory *prometheus.Desc
}

// NewHeapCollector builds a collector for h. constLabels are attached to
// every metric, e.g. to tell several heaps apart.
func NewHeapCollector(h *value.Heap, constLabels prometheus.Labels) *HeapCollector {
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName("pvalue", "heap", name), help, nil, constLabels)
	}
	return &HeapCollector{
		heap:        h,
		liveValues:  desc("live_values", "Value nodes currently owned by some tree."),
		liveCells:   desc("live_cells", "Accounting cells currently charged."),
		maxCells:    desc("max_cells", "Cell budget, 0 when unlimited."),
		allocations: desc("allocations_total", "Value nodes created."),
		frees:       desc("frees_total", "Value nodes released."),
		mapResizes:  desc("map_resizes_total", "Map bucket array rebuilds."),
		outOfMemory: desc("out_of_memory_total", "Operations refused for lack of budget."),
	}
}

// Describe implements prometheus.Collector.
func (c *HeapCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.liveValues
	ch <- c.liveCells
	ch <- c.maxCells
	ch <- c.allocations
	ch <- c.frees
	ch <- c.mapResizes
	ch <- c.outOfMemory
}

// Collect implements prometheus.Collector.
func (c *HeapCollector) Collect(ch chan<- prometheus.Metric) {
	s := c.heap.Stats()
	ch <- prometheus.MustNewConstMetric(c.liveValues, prometheus.GaugeValue, float64(s.LiveValues))
	ch <- prometheus.MustNewConstMetric(c.liveCells, prometheus.GaugeValue, float64(s.LiveCells))
	ch <- prometheus.MustNewConstMetric(c.maxCells, prometheus.GaugeValue, float64(c.heap.Limits().MaxCells))
	ch <- prometheus.MustNewConstMetric(c.allocations, prometheus.CounterValue, float64(s.Allocations))
	ch <- prometheus.MustNewConstMetric(c.frees, prometheus.CounterValue, float64(s.Frees))
	ch <- prometheus.MustNewConstMetric(c.mapResizes, prometheus.CounterValue, float64(s.MapResizes))
	ch <- prometheus.MustNewConstMetric(c.outOfMemory, prometheus.CounterValue, float64(s.OutOfMemory))
}
