package api

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"namecheck/engine"
	"namecheck/types"
)

// RegisterFeedbackRoutes registers feedback and retraining endpoints.
func RegisterFeedbackRoutes(r *gin.Engine, svc *engine.Service) {
	g := r.Group("/api/feedback")
	g.POST("", func(c *gin.Context) { handleAddFeedback(c, svc) })
	g.GET("/stats", func(c *gin.Context) { handleFeedbackStats(c, svc) })

	r.POST("/api/model/retrain", func(c *gin.Context) { handleRetrain(c, svc) })
}

// FeedbackRequest represents a user correction for a past prediction.
// The booleans are pointers so that a missing field fails validation
// instead of silently defaulting to false.
type FeedbackRequest struct {
	Name1              string   `json:"name1" binding:"required"`
	Name2              string   `json:"name2" binding:"required"`
	OriginalPrediction *bool    `json:"original_prediction" binding:"required"`
	UserCorrection     *bool    `json:"user_correction" binding:"required"`
	Confidence         *float64 `json:"confidence_score"`
	Note               string   `json:"feedback_text"`
}

// handleAddFeedback stores a correction and reports whether the retraining
// threshold has been reached.
func handleAddFeedback(c *gin.Context, svc *engine.Service) {
	var req FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	confidence := 0.0
	if req.Confidence != nil {
		confidence = *req.Confidence
	}

	id, err := svc.RecordFeedback(types.FeedbackRecord{
		Name1:              req.Name1,
		Name2:              req.Name2,
		OriginalPrediction: *req.OriginalPrediction,
		UserCorrection:     *req.UserCorrection,
		Confidence:         confidence,
		Note:               req.Note,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record feedback: " + err.Error()})
		return
	}

	due, err := svc.ShouldRetrain()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check retrain threshold: " + err.Error()})
		return
	}

	if due {
		go func() {
			if _, err := svc.Retrain(); err != nil {
				log.Printf("Background retraining failed: %v", err)
			}
		}()
	}

	c.JSON(http.StatusOK, gin.H{
		"feedback_id":          id,
		"retraining_triggered": due,
	})
}

// handleFeedbackStats summarizes the feedback table.
func handleFeedbackStats(c *gin.Context, svc *engine.Service) {
	stats, err := svc.FeedbackStats()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load feedback stats: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// handleRetrain runs a retraining cycle on demand. The threshold and
// single-cycle policies still apply; a cycle that does not run responds
// with retrained=false.
func handleRetrain(c *gin.Context, svc *engine.Service) {
	retrained, err := svc.Retrain()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "retraining failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"retrained":      retrained,
		"active_version": svc.ActiveVersion(),
	})
}
