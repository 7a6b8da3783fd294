package store

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	resolutions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lumea",
		Subsystem: "tenant",
		Name:      "resolutions_total",
		Help:      "Tenant resolution runs, by outcome.",
	}, []string{"outcome"})

	switches = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "lumea",
		Subsystem: "tenant",
		Name:      "switches_total",
		Help:      "Explicit tenant switches.",
	})
)
