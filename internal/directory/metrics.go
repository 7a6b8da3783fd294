package directory

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var fetchFailures = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "lumea",
	Subsystem: "directory",
	Name:      "fetch_failures_total",
	Help:      "Directory fetches that failed, by cause.",
}, []string{"cause"})
