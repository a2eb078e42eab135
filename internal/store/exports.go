package store

import (
	"database/sql"
	"errors"
	"time"

	"go-export-service/internal/model"
)

// ExportRecord is the registry row an export leaves behind. Download
// requests are resolved against it by export id only.
type ExportRecord struct {
	ID             string    `json:"export_id"`
	ExportType     string    `json:"export_type"`
	Strategy       string    `json:"strategy"`
	FileName       string    `json:"file_name"`
	FilePath       string    `json:"-"`
	RecordCount    int       `json:"record_count"`
	TotalFiles     int       `json:"total_files"`
	CompressedSize int64     `json:"compressed_size,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// SaveExport registers a completed export artifact
func SaveExport(rec ExportRecord) error {
	_, err := db.Exec(`INSERT INTO exports
		(id, export_type, strategy, file_name, file_path, record_count, total_files, compressed_size, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.ExportType, rec.Strategy, rec.FileName, rec.FilePath,
		rec.RecordCount, rec.TotalFiles, rec.CompressedSize, time.Now().UTC())
	return err
}

// GetExport fetches an export registry row by id
func GetExport(exportID string) (ExportRecord, error) {
	var rec ExportRecord
	err := db.QueryRow(`SELECT id, export_type, strategy, file_name, file_path,
		record_count, total_files, compressed_size, created_at
		FROM exports WHERE id = ?`, exportID).
		Scan(&rec.ID, &rec.ExportType, &rec.Strategy, &rec.FileName, &rec.FilePath,
			&rec.RecordCount, &rec.TotalFiles, &rec.CompressedSize, &rec.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ExportRecord{}, model.ErrExportNotFound
	}
	if err != nil {
		return ExportRecord{}, err
	}
	return rec, nil
}

// ListExports returns recent exports, newest first
func ListExports(limit int) ([]ExportRecord, error) {
	rows, err := db.Query(`SELECT id, export_type, strategy, file_name, file_path,
		record_count, total_files, compressed_size, created_at
		FROM exports ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var exports []ExportRecord
	for rows.Next() {
		var rec ExportRecord
		if err := rows.Scan(&rec.ID, &rec.ExportType, &rec.Strategy, &rec.FileName,
			&rec.FilePath, &rec.RecordCount, &rec.TotalFiles, &rec.CompressedSize,
			&rec.CreatedAt); err != nil {
			return nil, err
		}
		exports = append(exports, rec)
	}
	return exports, rows.Err()
}
