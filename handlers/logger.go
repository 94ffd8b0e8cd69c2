package handlers

import (
	"outreach/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// getLogger returns the request-scoped logger, tagged with the request id
// when the request logger middleware set one.
func getLogger(c *gin.Context) *zap.Logger {
	logger := utils.GetLogger()
	if l, exists := c.Get("logger"); exists {
		if scoped, ok := l.(*zap.Logger); ok {
			logger = scoped
		}
	}
	if id := c.GetString("requestID"); id != "" {
		logger = logger.With(zap.String("requestId", id))
	}
	return logger
}
