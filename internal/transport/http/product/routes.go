package product

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the product routes. metrics may be nil.
func RegisterRoutes(r *gin.Engine, h *Handler, metrics http.Handler) {
	products := r.Group("/products")
	{
		products.GET("", h.ListProducts)
		products.POST("/actions", h.Action)
	}

	runs := r.Group("/runs")
	{
		runs.GET("", h.ListRuns)
		runs.GET("/:id", h.GetRun)
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if metrics != nil {
		r.GET("/metrics", gin.WrapH(metrics))
	}
}
