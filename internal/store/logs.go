package store

import (
	"encoding/json"
	"time"
)

// LogEntry is one persisted service log line, queryable by the log-viewing
// endpoints.
type LogEntry struct {
	ID        int64          `json:"id"`
	RequestID string         `json:"request_id"`
	LogType   string         `json:"type"`
	Level     string         `json:"level"`
	Message   string         `json:"message"`
	Context   map[string]any `json:"context,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// LogStats summarizes log volume over a trailing window
type LogStats struct {
	WindowHours  int            `json:"window_hours"`
	TotalEntries int            `json:"total_entries"`
	ByLevel      map[string]int `json:"by_level"`
	ByType       map[string]int `json:"by_type"`
}

// SaveRequestLog persists one log entry
func SaveRequestLog(requestID, logType, level, message string, context map[string]any) error {
	var ctxJSON []byte
	if len(context) > 0 {
		var err error
		ctxJSON, err = json.Marshal(context)
		if err != nil {
			return err
		}
	}
	_, err := db.Exec(`INSERT INTO request_logs
		(request_id, log_type, level, message, context, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		requestID, logType, level, message, string(ctxJSON), time.Now().UTC())
	return err
}

// GetRecentLogs returns the newest entries, optionally filtered by type and
// level.
func GetRecentLogs(logType, level string, lines int) ([]LogEntry, error) {
	query := `SELECT id, request_id, log_type, level, message, context, created_at
		FROM request_logs`
	var clauses []string
	var args []any
	if logType != "" {
		clauses = append(clauses, "log_type = ?")
		args = append(args, logType)
	}
	if level != "" {
		clauses = append(clauses, "level = ?")
		args = append(args, level)
	}
	for i, clause := range clauses {
		if i == 0 {
			query += " WHERE " + clause
		} else {
			query += " AND " + clause
		}
	}
	query += " ORDER BY id DESC LIMIT ?"
	args = append(args, lines)

	return queryLogs(query, args...)
}

// GetRequestLogs returns every entry recorded for one request id, oldest
// first.
func GetRequestLogs(requestID string) ([]LogEntry, error) {
	return queryLogs(`SELECT id, request_id, log_type, level, message, context, created_at
		FROM request_logs WHERE request_id = ? ORDER BY id ASC`, requestID)
}

// GetLogStats aggregates counts per level and type over the last N hours
func GetLogStats(hours int) (LogStats, error) {
	stats := LogStats{
		WindowHours: hours,
		ByLevel:     make(map[string]int),
		ByType:      make(map[string]int),
	}
	cutoff := time.Now().UTC().Add(-time.Duration(hours) * time.Hour)

	rows, err := db.Query(`SELECT level, log_type, COUNT(*)
		FROM request_logs WHERE created_at >= ?
		GROUP BY level, log_type`, cutoff)
	if err != nil {
		return stats, err
	}
	defer rows.Close()

	for rows.Next() {
		var level, logType string
		var count int
		if err := rows.Scan(&level, &logType, &count); err != nil {
			return stats, err
		}
		stats.ByLevel[level] += count
		stats.ByType[logType] += count
		stats.TotalEntries += count
	}
	return stats, rows.Err()
}

func queryLogs(query string, args ...any) ([]LogEntry, error) {
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []LogEntry
	for rows.Next() {
		var entry LogEntry
		var ctxJSON string
		if err := rows.Scan(&entry.ID, &entry.RequestID, &entry.LogType, &entry.Level,
			&entry.Message, &ctxJSON, &entry.CreatedAt); err != nil {
			return nil, err
		}
		if ctxJSON != "" {
			if err := json.Unmarshal([]byte(ctxJSON), &entry.Context); err != nil {
				entry.Context = map[string]any{"raw": ctxJSON}
			}
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
