package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"namecheck/comparison"
	"namecheck/engine"
)

// RegisterModelRoutes registers model inspection endpoints.
func RegisterModelRoutes(r *gin.Engine, svc *engine.Service) {
	g := r.Group("/api/model")
	g.GET("/versions", func(c *gin.Context) { handleListVersions(c, svc) })
	g.GET("/importance", func(c *gin.Context) { handleFeatureImportance(c, svc) })
}

// handleListVersions returns every persisted model version, newest first.
func handleListVersions(c *gin.Context, svc *engine.Service) {
	versions, err := svc.ListVersions()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list versions: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"versions":       versions,
		"active_version": svc.ActiveVersion(),
	})
}

// handleFeatureImportance reports gain-based importance for the active model.
func handleFeatureImportance(c *gin.Context, svc *engine.Service) {
	importance, err := svc.FeatureImportance()
	if err != nil {
		if errors.Is(err, comparison.ErrNotTrained) {
			c.JSON(http.StatusConflict, gin.H{"error": "no trained model available; train one first"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute importance: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"feature_importance": importance})
}
