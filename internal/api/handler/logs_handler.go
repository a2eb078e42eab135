package handler

import (
	"net/http"
	"strconv"
	"strings"

	"go-export-service/internal/store"
)

const (
	defaultLogLines = 100
	maxLogLines     = 1000
	defaultStatsHrs = 24
)

// RecentLogs returns the newest log entries
// @Summary Recent service logs
// @Description Return the most recent log entries, optionally filtered by type and level
// @Tags logs
// @Produce json
// @Param type query string false "Log type (api, export)"
// @Param level query string false "Log level (info, warning, error)"
// @Param lines query int false "Number of entries (default 100, max 1000)"
// @Success 200 {object} map[string]interface{} "Log entries"
// @Router /api/logs/recent [get]
func RecentLogs(w http.ResponseWriter, r *http.Request) {
	lines := defaultLogLines
	if raw := r.URL.Query().Get("lines"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			lines = parsed
		}
	}
	if lines > maxLogLines {
		lines = maxLogLines
	}

	logs, err := store.GetRecentLogs(r.URL.Query().Get("type"), r.URL.Query().Get("level"), lines)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to retrieve logs")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status": "success",
		"logs":   logs,
		"count":  len(logs),
	})
}

// LogStats aggregates log volume over a trailing window
// @Summary Log statistics
// @Description Aggregate log counts per level and type over the last N hours
// @Tags logs
// @Produce json
// @Param hours query int false "Window in hours (default 24)"
// @Success 200 {object} map[string]interface{} "Log statistics"
// @Router /api/logs/stats [get]
func LogStats(w http.ResponseWriter, r *http.Request) {
	hours := defaultStatsHrs
	if raw := r.URL.Query().Get("hours"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			hours = parsed
		}
	}

	stats, err := store.GetLogStats(hours)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to retrieve log stats")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status": "success",
		"stats":  stats,
	})
}

// RequestLogs returns every entry recorded for one request id
// @Summary Logs for one request
// @Description Return all log entries correlated with a request id
// @Tags logs
// @Produce json
// @Param id path string true "Request ID"
// @Success 200 {object} map[string]interface{} "Log entries"
// @Failure 400 {object} map[string]interface{} "Missing request id"
// @Router /api/logs/request/{id} [get]
func RequestLogs(w http.ResponseWriter, r *http.Request) {
	reqID := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/logs/request/"), "/")
	if reqID == "" {
		writeError(w, http.StatusBadRequest, "Request ID is required")
		return
	}

	logs, err := store.GetRequestLogs(reqID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to retrieve logs")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":     "success",
		"request_id": reqID,
		"logs":       logs,
		"count":      len(logs),
	})
}
