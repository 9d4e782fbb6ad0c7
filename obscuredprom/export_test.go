package obscuredprom

import (
	"github.com/m-mizutani/obscured"
	"github.com/prometheus/client_golang/prometheus"
)

// NewCollectorWith is exported for testing
func NewCollectorWith(namespace string, read func() obscured.Stats) prometheus.Collector {
	return newCollector(namespace, read)
}
