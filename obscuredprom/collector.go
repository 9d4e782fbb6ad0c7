// Package obscuredprom exports the counters of the obscured registry as prometheus metrics.
package obscuredprom

import (
	"github.com/m-mizutani/obscured"
	"github.com/prometheus/client_golang/prometheus"
)

const subsystem = "obscured"

type collector struct {
	read func() obscured.Stats

	created   *prometheus.Desc
	reclaimed *prometheus.Desc
	disposed  *prometheus.Desc
	rejected  *prometheus.Desc
	live      *prometheus.Desc
}

// NewCollector returns a prometheus.Collector reporting obscured.ReadStats. namespace may be empty.
func NewCollector(namespace string) prometheus.Collector {
	return newCollector(namespace, obscured.ReadStats)
}

func newCollector(namespace string, read func() obscured.Stats) *collector {
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystem, name), help, nil, nil)
	}

	return &collector{
		read:      read,
		created:   desc("created_total", "Number of containers created"),
		reclaimed: desc("reclaimed_total", "Number of registry entries released after their container was garbage collected"),
		disposed:  desc("disposed_total", "Number of registry entries released by Dispose"),
		rejected:  desc("rejected_total", "Number of Make calls rejected for a non-primitive payload"),
		live:      desc("live", "Number of registry entries currently held"),
	}
}

func (x *collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- x.created
	ch <- x.reclaimed
	ch <- x.disposed
	ch <- x.rejected
	ch <- x.live
}

func (x *collector) Collect(ch chan<- prometheus.Metric) {
	s := x.read()
	ch <- prometheus.MustNewConstMetric(x.created, prometheus.CounterValue, float64(s.Created))
	ch <- prometheus.MustNewConstMetric(x.reclaimed, prometheus.CounterValue, float64(s.Reclaimed))
	ch <- prometheus.MustNewConstMetric(x.disposed, prometheus.CounterValue, float64(s.Disposed))
	ch <- prometheus.MustNewConstMetric(x.rejected, prometheus.CounterValue, float64(s.Rejected))
	ch <- prometheus.MustNewConstMetric(x.live, prometheus.GaugeValue, float64(s.Live))
}
