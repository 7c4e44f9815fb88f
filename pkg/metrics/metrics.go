package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	paperGen = "paper_gen"

	// Upload metrics
	uploadsTotal = "spreadsheet_uploads_total"
	rowsIngested = "rows_ingested_total"

	// Generation metrics
	papersTotal = "papers_total"

	// Labels
	uploadStatusLabel = "state"
	paperOutcomeLabel = "outcome"
)

var uploadsTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: paperGen,
		Name:      uploadsTotal,
		Help:      "number of spreadsheet uploads",
	},
	[]string{uploadStatusLabel},
)

var rowsIngestedMetric = prometheus.NewCounter(
	prometheus.CounterOpts{
		Subsystem: paperGen,
		Name:      rowsIngested,
		Help:      "number of rows ingested from uploaded spreadsheets",
	},
)

var papersTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: paperGen,
		Name:      papersTotal,
		Help:      "number of paper generation requests by outcome",
	},
	[]string{paperOutcomeLabel},
)

func IncreaseUploadsTotalMetric(state string) {
	uploadsTotalMetric.With(prometheus.Labels{uploadStatusLabel: state}).Inc()
}

func AddRowsIngestedMetric(count int) {
	rowsIngestedMetric.Add(float64(count))
}

func IncreasePapersTotalMetric(outcome string) {
	papersTotalMetric.With(prometheus.Labels{paperOutcomeLabel: outcome}).Inc()
}

func init() {
	registerMetrics()
}

func registerMetrics() {
	prometheus.MustRegister(uploadsTotalMetric)
	prometheus.MustRegister(rowsIngestedMetric)
	prometheus.MustRegister(papersTotalMetric)
}
