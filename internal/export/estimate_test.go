package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimateDerivation(t *testing.T) {
	est := Estimator{RecordsPerSecond: 5000, KBPerRecord: 0.25}

	tests := []struct {
		name        string
		total       int
		wantSeconds float64
		wantSizeMB  float64
	}{
		{name: "zero records", total: 0, wantSeconds: 0, wantSizeMB: 0},
		{name: "small", total: 1000, wantSeconds: 0.2, wantSizeMB: 0.24},
		{name: "scenario size", total: 44000, wantSeconds: 8.8, wantSizeMB: 10.74},
		{name: "large", total: 1000000, wantSeconds: 200, wantSizeMB: 244.14},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := est.Estimate(tt.total)
			assert.Equal(t, tt.total, got.TotalRecords)
			assert.InDelta(t, tt.wantSeconds, got.EstimatedProcessingTimeSeconds, 0.001)
			assert.InDelta(t, tt.wantSizeMB, got.EstimatedFileSizeMB, 0.001)
		})
	}
}

func TestEstimatorZeroConfigFallsBack(t *testing.T) {
	got := Estimator{}.Estimate(5000)
	assert.Equal(t, 5000, got.TotalRecords)
	assert.InDelta(t, 1.0, got.EstimatedProcessingTimeSeconds, 0.001)
}
