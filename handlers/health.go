package handlers

import (
	"net/http"

	"outreach/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports the last Mongo/Redis health snapshot.
func HealthHandler(c *gin.Context) {
	status := utils.GetHealthStatus()
	healthy := status.Mongo
	for _, ok := range status.Redis {
		healthy = healthy && ok
	}
	state := "ok"
	if status.CheckedAt.IsZero() {
		state = "starting"
	} else if !healthy {
		state = "degraded"
	}
	c.JSON(http.StatusOK, gin.H{
		"status":   state,
		"services": status,
	})
}
