package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlanExport(t *testing.T) {
	tests := []struct {
		name  string
		total int
		want  ExportPlan
	}{
		{name: "tiny", total: 10, want: ExportPlan{Template: "detailed", ChunkSize: 1000}},
		{name: "small boundary", total: 1000, want: ExportPlan{Template: "detailed", ChunkSize: 1000}},
		{name: "medium", total: 1001, want: ExportPlan{Template: "standard", ChunkSize: 5000}},
		{name: "medium boundary", total: 25000, want: ExportPlan{Template: "standard", ChunkSize: 5000}},
		{name: "large", total: 44000, want: ExportPlan{Template: "standard", ChunkSize: 4000, ForceChunking: true}},
		{name: "large boundary", total: 100000, want: ExportPlan{Template: "standard", ChunkSize: 4000, ForceChunking: true}},
		{name: "massive", total: 100001, want: ExportPlan{Template: "summary", ChunkSize: 2000, ForceChunking: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PlanExport(CountEstimate{TotalRecords: tt.total})
			assert.Equal(t, tt.want, got)
		})
	}
}
