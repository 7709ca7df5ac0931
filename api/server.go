package api

import (
	"github.com/gin-gonic/gin"

	"namecheck/engine"
)

// NewRouter constructs a Gin engine with registered routes.
func NewRouter(svc *engine.Service) *gin.Engine {
	r := gin.New()
	// Minimal middleware: recovery; logger optional to reduce verbosity
	r.Use(gin.Recovery())

	// Register resource routers
	RegisterTrainingRoutes(r, svc)
	RegisterPredictionRoutes(r, svc)
	RegisterFeedbackRoutes(r, svc)
	RegisterModelRoutes(r, svc)
	RegisterHealthRoutes(r, svc)
	return r
}
