package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dev-rohith/pokemon-simulator/internal/version"
)

// Health reports liveness plus build metadata injected at link time.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   version.Version,
		"commit":    version.Commit,
	})
}
