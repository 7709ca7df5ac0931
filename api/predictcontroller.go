package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"namecheck/comparison"
	"namecheck/engine"
	"namecheck/ingest"
)

// RegisterPredictionRoutes registers prediction endpoints.
func RegisterPredictionRoutes(r *gin.Engine, svc *engine.Service) {
	g := r.Group("/api/predict")
	g.POST("", func(c *gin.Context) { handlePredictBatch(c, svc) })
	g.POST("/single", func(c *gin.Context) { handlePredictSingle(c, svc) })
}

// SinglePredictionRequest represents a single name pair to classify.
type SinglePredictionRequest struct {
	Name1 string `json:"name1" binding:"required"`
	Name2 string `json:"name2" binding:"required"`
}

// handlePredictBatch classifies every pair in an uploaded CSV.
func handlePredictBatch(c *gin.Context, svc *engine.Service) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing dataset upload: " + err.Error()})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to open upload: " + err.Error()})
		return
	}
	defer file.Close()

	pairs, skipped, err := ingest.ParsePredictionCSV(file)
	if err != nil {
		var vErr *ingest.ValidationError
		switch {
		case errors.As(err, &vErr):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":           "dataset is missing required columns",
				"missing_columns": vErr.MissingColumns,
			})
		case errors.Is(err, ingest.ErrEmptyDataset):
			c.JSON(http.StatusBadRequest, gin.H{"error": "dataset contains no rows"})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to parse dataset: " + err.Error()})
		}
		return
	}

	batch, err := svc.PredictBatch(c.Request.Context(), pairs, skipped)
	if err != nil {
		if errors.Is(err, comparison.ErrNotTrained) {
			c.JSON(http.StatusConflict, gin.H{"error": "no trained model available; train one first"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "prediction failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, batch)
}

// handlePredictSingle classifies one name pair from a JSON payload.
func handlePredictSingle(c *gin.Context, svc *engine.Service) {
	var req SinglePredictionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	prediction, err := svc.Predict(c.Request.Context(), req.Name1, req.Name2)
	if err != nil {
		if errors.Is(err, comparison.ErrNotTrained) {
			c.JSON(http.StatusConflict, gin.H{"error": "no trained model available; train one first"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "prediction failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, prediction)
}
