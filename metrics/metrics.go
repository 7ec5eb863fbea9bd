package metrics

import (
	"slices"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	STATUS_SUCCESS = "success"
	STATUS_ERROR   = "error"
	STATUS_NOOP    = "noop"
)

var (
	BuildInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "refpay_build_info",
			Help: "Build information of refpay",
		},
		[]string{"version"},
	)

	DistributionState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "refpay_distribution_state",
			Help: "Current distribution state, 1 for the active state and 0 for the others",
		},
		[]string{"state"},
	)

	TriggersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "refpay_triggers_total",
			Help: "Total number of routed trigger events",
		},
		[]string{"trigger", "status"},
	)

	StageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "refpay_stage_duration_seconds",
			Help:    "Duration of pipeline stages",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12), // 0.01s to ~41s
		},
		[]string{"pipeline", "stage"},
	)

	IndexerQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "refpay_indexer_queries_total",
			Help: "Total number of subgraph queries",
		},
		[]string{"endpoint", "status"},
	)

	IndexerQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "refpay_indexer_query_duration_seconds",
			Help:    "Duration of subgraph queries",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 10), // 0.05s to ~25s
		},
		[]string{"endpoint"},
	)

	PayoutCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "refpay_payout_calls_total",
			Help: "Total number of produced payout calls",
		},
		[]string{"category"},
	)

	WatchLastProcessedBlock = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "refpay_watch_last_processed_block",
			Help: "Last block scanned for trigger logs",
		},
	)
)

var (
	distributionStatesMtx sync.Mutex
	distributionStates    []string
)

// SetDistributionState flips the state gauge so exactly one state reports 1
func SetDistributionState(state string) {
	distributionStatesMtx.Lock()
	defer distributionStatesMtx.Unlock()
	for _, known := range distributionStates {
		DistributionState.WithLabelValues(known).Set(0)
	}
	if !slices.Contains(distributionStates, state) {
		distributionStates = append(distributionStates, state)
	}
	DistributionState.WithLabelValues(state).Set(1)
}

func ObserveIndexerQuery(endpoint string, seconds float64, err error) {
	status := STATUS_SUCCESS
	if err != nil {
		status = STATUS_ERROR
	}
	IndexerQueriesTotal.WithLabelValues(endpoint, status).Inc()
	IndexerQueryDuration.WithLabelValues(endpoint).Observe(seconds)
}

// ObserveStage is meant to be deferred at the start of a stage
func ObserveStage(pipeline string, stage string, start time.Time) {
	StageDuration.WithLabelValues(pipeline, stage).Observe(time.Since(start).Seconds())
}
