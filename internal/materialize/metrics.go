package materialize

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	documentsGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "invoicesmith_documents_generated_total",
		Help: "Invoice documents written to the output folder.",
	})
	documentCollisions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "invoicesmith_document_collisions_total",
		Help: "Materializations skipped because the target file already existed.",
	})
	documentFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "invoicesmith_document_failures_total",
		Help: "Materializations that failed before a file became visible.",
	})
)
