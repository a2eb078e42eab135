package export

import (
	"math"

	"go-export-service/internal/model"
)

// Estimator derives processing-time and file-size estimates from a record
// count using fixed throughput assumptions. Nothing here is measured; the
// point is a bounded-latency answer for arbitrarily large tables.
type Estimator struct {
	RecordsPerSecond float64
	KBPerRecord      float64
}

// DefaultEstimator matches the throughput the service assumes out of the box
func DefaultEstimator() Estimator {
	return Estimator{RecordsPerSecond: 5000, KBPerRecord: 0.25}
}

// Estimate builds a CountEstimate for total matching records
func (e Estimator) Estimate(total int) model.CountEstimate {
	rps := e.RecordsPerSecond
	if rps <= 0 {
		rps = 5000
	}
	kb := e.KBPerRecord
	if kb <= 0 {
		kb = 0.25
	}

	return model.CountEstimate{
		TotalRecords:                   total,
		EstimatedProcessingTimeSeconds: round2(float64(total) / rps),
		EstimatedFileSizeMB:            round2(float64(total) * kb / 1024),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
