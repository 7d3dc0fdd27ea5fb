package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// treeBuilds counts tree requests.
	// Labels: result (ok, invalid, too_large, render_failed, renderer_unavailable)
	treeBuilds = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bbtree",
		Subsystem: "service",
		Name:      "builds_total",
		Help:      "Tree build requests by result",
	}, []string{"result"})

	// treeNodes tracks the size of built trees.
	treeNodes = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "bbtree",
		Subsystem: "service",
		Name:      "tree_nodes",
		Help:      "Number of nodes per built tree",
		Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
	})

	// renderDuration measures rendering time.
	// Labels: format
	renderDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "bbtree",
		Subsystem: "service",
		Name:      "render_duration_seconds",
		Help:      "Time to render a tree",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	}, []string{"format"})

	// rateLimited counts requests rejected by the limiter.
	rateLimited = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "bbtree",
		Subsystem: "service",
		Name:      "rate_limited_total",
		Help:      "Requests rejected by the rate limiter",
	})
)

const (
	resultOK                  = "ok"
	resultInvalid             = "invalid"
	resultTooLarge            = "too_large"
	resultRenderFailed        = "render_failed"
	resultRendererUnavailable = "renderer_unavailable"
)
