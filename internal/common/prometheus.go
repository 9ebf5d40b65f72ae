package common

import "github.com/prometheus/client_golang/prometheus"

const (
	HTTPRequestTotal           = "http_requests_total"
	HTTPRequestDurationSeconds = "http_request_duration_seconds"
	IndexerRequestTotal        = "indexer_requests_total"
	IndexerRequestSeconds      = "indexer_request_duration_seconds"
)

// Values of the result label of IndexerRequestTotal.
const (
	IndexerResultSuccess     = "success"
	IndexerResultEmpty       = "empty"
	IndexerResultMissingNFTs = "missing_nfts"
	IndexerResultHTTPFailure = "http_failure"
	IndexerResultError       = "error"
)

var (
	PromCounters = map[string]*prometheus.CounterVec{
		HTTPRequestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: HTTPRequestTotal,
			Help: "Count of all HTTP requests",
		}, []string{"method", "status_code"}),
		IndexerRequestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: IndexerRequestTotal,
			Help: "Count of all requests sent to the NFT indexer",
		}, []string{"result"}),
	}

	PromHistograms = map[string]*prometheus.HistogramVec{
		HTTPRequestDurationSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name: HTTPRequestDurationSeconds,
			Help: "Duration of all HTTP requests",
		}, []string{"method", "status_code"}),
		IndexerRequestSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name: IndexerRequestSeconds,
			Help: "Duration of requests sent to the NFT indexer",
		}, []string{"result"}),
	}
)
