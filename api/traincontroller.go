package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"namecheck/comparison"
	"namecheck/engine"
	"namecheck/ingest"
)

// RegisterTrainingRoutes registers model training endpoints.
func RegisterTrainingRoutes(r *gin.Engine, svc *engine.Service) {
	r.POST("/api/train", func(c *gin.Context) { handleTrain(c, svc) })
}

// handleTrain trains a new model version from an uploaded CSV dataset.
// Expects a multipart form with the dataset under the "file" field.
func handleTrain(c *gin.Context, svc *engine.Service) {
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

	records, err := ingest.ParseTrainingCSV(file)
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

	result, err := svc.TrainFromRecords(records)
	if err != nil {
		if errors.Is(err, comparison.ErrNoValidPairs) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "no record yields a trainable name pair"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "training failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}
