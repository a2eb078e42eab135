package api

import (
	httpSwagger "github.com/swaggo/http-swagger"

	"go-export-service/internal/api/handler"
	"go-export-service/pkg/router"
)

// RegisterRoutes binds the export and log-viewing endpoints
func RegisterRoutes(r *router.Router) {
	// More specific routes first; the router prefers exact matches
	r.POST("/export/count", handler.CountExport)
	r.POST("/export/preview", handler.PreviewExport)
	r.GET("/export/types", handler.ExportTypes)
	// Per-type export paths, e.g. POST /export/participants
	r.POST("/export/*", handler.RunExport)

	r.GET("/exports/recent", handler.RecentExports)
	r.GET("/exports/download/*", handler.DownloadExport)

	r.GET("/api/logs/recent", handler.RecentLogs)
	r.GET("/api/logs/stats", handler.LogStats)
	r.GET("/api/logs/request/*", handler.RequestLogs)

	r.GET("/swagger/*", router.HandlerFunc(httpSwagger.WrapHandler))
}
