package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-export-service/internal/model"
	"go-export-service/internal/schema"
)

func setupTestDB(t *testing.T) *schema.ExportType {
	t.Helper()
	require.NoError(t, InitDB(":memory:"))
	t.Cleanup(func() { CloseDB() })

	et, err := schema.Lookup("participants")
	require.NoError(t, err)
	return et
}

func seedRows(t *testing.T, count int, programID int, statuses []string) {
	t.Helper()
	records := make([]Participant, 0, count)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < count; i++ {
		records = append(records, Participant{
			ProgramID:  programID,
			FirstName:  fmt.Sprintf("First%d", i),
			LastName:   fmt.Sprintf("Last%d", i),
			Email:      fmt.Sprintf("p%d@example.com", i),
			FormStatus: statuses[i%len(statuses)],
			Score:      float64(i % 100),
			EnrolledAt: base.Add(time.Duration(i) * time.Minute),
		})
	}
	require.NoError(t, InsertParticipants(records))
}

func TestCountRecords(t *testing.T) {
	et := setupTestDB(t)
	seedRows(t, 20, 123, []string{"completed", "approved", "pending", "rejected"})
	seedRows(t, 10, 200, []string{"completed"})

	tests := []struct {
		name    string
		filters model.FilterSet
		want    int
		wantErr bool
	}{
		{name: "no filters", filters: nil, want: 30},
		{name: "scalar", filters: model.FilterSet{"program_id": float64(123)}, want: 20},
		{
			name: "membership list",
			filters: model.FilterSet{
				"program_id":  float64(123),
				"form_status": []any{"completed", "approved"},
			},
			want: 10,
		},
		{name: "empty list matches nothing", filters: model.FilterSet{"form_status": []any{}}, want: 0},
		{
			name:    "range",
			filters: model.FilterSet{"score": map[string]any{"min": float64(0), "max": float64(4)}, "program_id": float64(123)},
			want:    5,
		},
		{name: "zero matches is not an error", filters: model.FilterSet{"program_id": float64(999)}, want: 0},
		{name: "unknown field rejected", filters: model.FilterSet{"bogus_field": float64(1)}, wantErr: true},
		{name: "bad range key rejected", filters: model.FilterSet{"score": map[string]any{"minimum": float64(1)}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CountRecords(et, tt.filters)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, model.IsValidation(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPreviewRecords(t *testing.T) {
	et := setupTestDB(t)
	seedRows(t, 25, 123, []string{"completed"})

	tmpl, err := et.Template("standard")
	require.NoError(t, err)

	preview, err := PreviewRecords(et, tmpl, model.FilterSet{"program_id": float64(123)}, 10)
	require.NoError(t, err)
	require.Len(t, preview, 10)

	// Row shape matches the template's column names
	for _, col := range tmpl.Columns {
		assert.Contains(t, preview[0], col.Name)
	}
	assert.Equal(t, "completed", preview[0]["form_status"])

	// Fewer matches than the limit returns them all
	preview, err = PreviewRecords(et, tmpl, nil, 100)
	require.NoError(t, err)
	assert.Len(t, preview, 25)
}

func TestStreamRecordsBatches(t *testing.T) {
	et := setupTestDB(t)
	seedRows(t, 5, 123, []string{"completed"})

	tmpl, err := et.Template("summary")
	require.NoError(t, err)

	var batchSizes []int
	total := 0
	err = StreamRecords(context.Background(), et, tmpl, nil, 2, func(batch [][]string) error {
		batchSizes = append(batchSizes, len(batch))
		total += len(batch)
		for _, row := range batch {
			assert.Len(t, row, len(tmpl.Columns))
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 2, 1}, batchSizes)
	assert.Equal(t, 5, total)
}

func TestExportRegistry(t *testing.T) {
	setupTestDB(t)

	rec := ExportRecord{
		ID:          "exp-1",
		ExportType:  "participants",
		Strategy:    "single",
		FileName:    "out.csv",
		FilePath:    "/tmp/out.csv",
		RecordCount: 42,
		TotalFiles:  1,
	}
	require.NoError(t, SaveExport(rec))

	got, err := GetExport("exp-1")
	require.NoError(t, err)
	assert.Equal(t, rec.FileName, got.FileName)
	assert.Equal(t, rec.RecordCount, got.RecordCount)

	_, err = GetExport("missing")
	assert.ErrorIs(t, err, model.ErrExportNotFound)
}

func TestRequestLogQueries(t *testing.T) {
	setupTestDB(t)

	require.NoError(t, SaveRequestLog("req-1", "api", "info", "count served", map[string]any{"total": 5}))
	require.NoError(t, SaveRequestLog("req-1", "export", "info", "export started", nil))
	require.NoError(t, SaveRequestLog("req-2", "export", "error", "export failed", nil))

	recent, err := GetRecentLogs("", "", 10)
	require.NoError(t, err)
	assert.Len(t, recent, 3)
	// Newest first
	assert.Equal(t, "export failed", recent[0].Message)

	errOnly, err := GetRecentLogs("", "error", 10)
	require.NoError(t, err)
	require.Len(t, errOnly, 1)
	assert.Equal(t, "req-2", errOnly[0].RequestID)

	byRequest, err := GetRequestLogs("req-1")
	require.NoError(t, err)
	require.Len(t, byRequest, 2)
	// Oldest first, context round-trips
	assert.Equal(t, "count served", byRequest[0].Message)
	assert.EqualValues(t, 5, byRequest[0].Context["total"])

	stats, err := GetLogStats(24)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalEntries)
	assert.Equal(t, 2, stats.ByLevel["info"])
	assert.Equal(t, 1, stats.ByLevel["error"])
	assert.Equal(t, 2, stats.ByType["export"])
}
