package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-export-service/internal/model"
	"go-export-service/internal/store"
)

func setupEngine(t *testing.T) *Engine {
	t.Helper()
	require.NoError(t, store.InitDB(":memory:"))
	t.Cleanup(func() { store.CloseDB() })
	return New(t.TempDir(), 10000, DefaultEstimator(), nil)
}

func seedParticipants(t *testing.T, count, programID int, statuses []string) {
	t.Helper()
	records := make([]store.Participant, 0, count)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < count; i++ {
		records = append(records, store.Participant{
			ProgramID:  programID,
			FirstName:  fmt.Sprintf("First%d", i),
			LastName:   fmt.Sprintf("Last%d", i),
			Email:      fmt.Sprintf("p%d@example.com", i),
			FormStatus: statuses[i%len(statuses)],
			Score:      float64(i % 100),
			EnrolledAt: base.Add(time.Duration(i) * time.Second),
		})
	}
	require.NoError(t, store.InsertParticipants(records))
}

func TestRunSingleFileExport(t *testing.T) {
	engine := setupEngine(t)
	seedParticipants(t, 50, 123, []string{"completed"})

	result, err := engine.Run(context.Background(), "req-1", model.ExportRequest{
		ExportType: "participants",
		Template:   "standard",
		Filters:    model.FilterSet{"program_id": float64(123)},
	})
	require.NoError(t, err)

	assert.Equal(t, model.StrategySingle, result.Strategy)
	single, ok := result.Single()
	require.True(t, ok)
	assert.Equal(t, 50, single.RecordCount)
	assert.NotEmpty(t, single.ExportID)

	_, isChunked := result.Chunked()
	assert.False(t, isChunked)

	// Artifact is registered and present on disk
	rec, err := store.GetExport(single.ExportID)
	require.NoError(t, err)
	assert.FileExists(t, rec.FilePath)

	// Header plus one line per record
	rows := readCSV(t, rec.FilePath)
	assert.Len(t, rows, 51)
	assert.Equal(t, []string{"ID", "First Name", "Last Name", "Email", "Form Status"}, rows[0])
}

func TestRunZeroRecordExport(t *testing.T) {
	engine := setupEngine(t)

	result, err := engine.Run(context.Background(), "req-1", model.ExportRequest{
		ExportType: "participants",
		Filters:    model.FilterSet{"program_id": float64(999)},
	})
	require.NoError(t, err)

	assert.Equal(t, model.StrategySingle, result.Strategy)
	single, ok := result.Single()
	require.True(t, ok)
	assert.Equal(t, 0, single.RecordCount)

	// Header-only artifact still downloads
	rec, err := store.GetExport(single.ExportID)
	require.NoError(t, err)
	rows := readCSV(t, rec.FilePath)
	assert.Len(t, rows, 1)
}

func TestRunChunkedExportScenario(t *testing.T) {
	// 44,000 matching rows with chunk_size 4000 must produce 11 files
	engine := setupEngine(t)
	seedParticipants(t, 44000, 123, []string{"completed", "approved"})

	result, err := engine.Run(context.Background(), "req-1", model.ExportRequest{
		ExportType: "participants",
		Template:   "standard",
		Filters: model.FilterSet{
			"program_id":  float64(123),
			"form_status": []any{"completed", "approved"},
		},
		ChunkSize: 4000,
	})
	require.NoError(t, err)

	assert.Equal(t, model.StrategyMultiFile, result.Strategy)
	chunked, ok := result.Chunked()
	require.True(t, ok)
	assert.Equal(t, 11, chunked.TotalFiles)
	assert.Equal(t, 44000, chunked.TotalRecords)
	assert.Greater(t, chunked.ArchiveInfo.CompressedSize, int64(0))
	assert.Greater(t, chunked.ArchiveInfo.CompressionRatio, 1.0)
	assert.Greater(t, result.Metrics.RecordsPerSecond, 0.0)

	_, isSingle := result.Single()
	assert.False(t, isSingle)

	// Member chunk row counts sum to the total, each chunk within bounds
	rec, err := store.GetExport(chunked.ExportID)
	require.NoError(t, err)
	zr, err := zip.OpenReader(rec.FilePath)
	require.NoError(t, err)
	defer zr.Close()

	require.Len(t, zr.File, 11)
	sum := 0
	for _, member := range zr.File {
		f, err := member.Open()
		require.NoError(t, err)
		rows, err := csv.NewReader(f).ReadAll()
		f.Close()
		require.NoError(t, err)
		dataRows := len(rows) - 1 // minus header
		assert.LessOrEqual(t, dataRows, 4000)
		sum += dataRows
	}
	assert.Equal(t, 44000, sum)

	// Scratch chunk files are gone, only the archive remains
	entries, err := os.ReadDir(filepath.Dir(rec.FilePath))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, rec.FileName, entries[0].Name())
}

func TestRunForcedChunking(t *testing.T) {
	engine := setupEngine(t)
	seedParticipants(t, 5, 123, []string{"completed"})

	result, err := engine.Run(context.Background(), "req-1", model.ExportRequest{
		ExportType:    "participants",
		ChunkSize:     1000,
		ForceChunking: true,
	})
	require.NoError(t, err)

	assert.Equal(t, model.StrategyMultiFile, result.Strategy)
	chunked, ok := result.Chunked()
	require.True(t, ok)
	assert.Equal(t, 1, chunked.TotalFiles)
	assert.Equal(t, 5, chunked.TotalRecords)
}

func TestRunValidationFailures(t *testing.T) {
	engine := setupEngine(t)

	tests := []struct {
		name string
		req  model.ExportRequest
	}{
		{name: "unknown export type", req: model.ExportRequest{ExportType: "bogus"}},
		{name: "unknown template", req: model.ExportRequest{ExportType: "participants", Template: "fancy"}},
		{name: "unknown filter field", req: model.ExportRequest{ExportType: "participants", Filters: model.FilterSet{"bogus_field": float64(1)}}},
		{name: "negative chunk size", req: model.ExportRequest{ExportType: "participants", ChunkSize: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := engine.Run(context.Background(), "req-1", tt.req)
			require.Error(t, err)
			assert.True(t, model.IsValidation(err))
			// No artifact is retained on failure
			assert.Empty(t, result.ExportID())
		})
	}
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}
