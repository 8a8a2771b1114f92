package infrastructure

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Application-level Prometheus metrics, registered on the default registry
// and exposed through the /metrics handler.
var (
	// DatasetLoads counts workbook load attempts by outcome.
	DatasetLoads = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sinandash",
		Name:      "dataset_loads_total",
		Help:      "Workbook load attempts by outcome.",
	}, []string{"outcome"})

	// DashboardRequests counts dashboard payload builds by outcome.
	DashboardRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sinandash",
		Name:      "dashboard_requests_total",
		Help:      "Dashboard payload requests by outcome.",
	}, []string{"outcome"})

	// DatasetRecords reports the size of the enriched dataset once loaded.
	DatasetRecords = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "sinandash",
		Name:      "dataset_records",
		Help:      "Number of records in the enriched dataset.",
	})
)
