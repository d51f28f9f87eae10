// Package metrics holds the prometheus collectors shared by the storage
// packages. Collectors are registered on the default registry when the
// package is loaded.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "cstable"

// Page read origins.
const (
	OriginBuffer  = "buffer"
	OriginBacking = "backing"
)

var (
	// PagesAllocated counts pages handed out by page stores.
	PagesAllocated = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pages_allocated_total",
			Help:      "Total number of pages allocated",
		},
	)

	// BytesFlushed counts bytes written to page store backings.
	BytesFlushed = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bytes_flushed_total",
			Help:      "Total number of page bytes written to backing files",
		},
	)

	// PageReads counts page reads by origin (buffer or backing).
	PageReads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "page_reads_total",
			Help:      "Total number of page reads",
		},
		[]string{"origin"},
	)

	RecordsShredded = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_shredded_total",
			Help:      "Total number of records split into columns",
		},
	)

	RecordsMaterialized = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_materialized_total",
			Help:      "Total number of records rebuilt from columns",
		},
	)
)
