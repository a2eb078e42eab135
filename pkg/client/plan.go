package client

// ExportPlan is a requestor-side export configuration derived from a count
// estimate. It is purely advisory: the coordinator may override the
// chunking decision, and that decision is authoritative.
type ExportPlan struct {
	Template      string
	ChunkSize     int
	ForceChunking bool
}

// Record-count thresholds for the planning heuristic. Bigger result sets
// get lighter templates and smaller chunks to bound per-artifact work.
const (
	smallExportMax   = 1000
	mediumExportMax  = 25000
	largeExportMax   = 100000
	smallChunkSize   = 1000
	mediumChunkSize  = 5000
	largeChunkSize   = 4000
	massiveChunkSize = 2000
)

// PlanExport maps an estimate to an export configuration. Pure function:
// same estimate, same plan, no network involved.
func PlanExport(est CountEstimate) ExportPlan {
	total := est.TotalRecords
	switch {
	case total <= smallExportMax:
		return ExportPlan{Template: "detailed", ChunkSize: smallChunkSize}
	case total <= mediumExportMax:
		return ExportPlan{Template: "standard", ChunkSize: mediumChunkSize}
	case total <= largeExportMax:
		return ExportPlan{Template: "standard", ChunkSize: largeChunkSize, ForceChunking: true}
	default:
		return ExportPlan{Template: "summary", ChunkSize: massiveChunkSize, ForceChunking: true}
	}
}
