package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"namecheck/engine"
)

// RegisterHealthRoutes registers the health check endpoint.
func RegisterHealthRoutes(r *gin.Engine, svc *engine.Service) {
	r.GET("/api/health", func(c *gin.Context) { handleHealth(c, svc) })
}

// handleHealth reports database reachability and whether a model is serving.
func handleHealth(c *gin.Context, svc *engine.Service) {
	status := "healthy"
	code := http.StatusOK

	var dbError string
	if err := svc.Ping(); err != nil {
		status = "degraded"
		code = http.StatusServiceUnavailable
		dbError = err.Error()
	}

	body := gin.H{
		"status":         status,
		"model_loaded":   svc.ActiveVersion() != "",
		"active_version": svc.ActiveVersion(),
	}
	if dbError != "" {
		body["database_error"] = dbError
	}

	c.JSON(code, body)
}
