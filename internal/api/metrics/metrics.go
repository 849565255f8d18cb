// Package metrics defines and registers all custom Prometheus metrics for the
// forum API. It is the single source of truth for metric names, labels, and
// help strings. Registration happens at import time via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "forohub"

// TopicosCreatedTotal counts newly created topics.
// Label:
//   - curso: the course the topic belongs to
var TopicosCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "topicos_created_total",
		Help:      "Total number of topics created, by course.",
	},
	[]string{"curso"},
)

// TopicosDeletedTotal counts deleted topics.
var TopicosDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "topicos_deleted_total",
		Help:      "Total number of topics deleted.",
	},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)
