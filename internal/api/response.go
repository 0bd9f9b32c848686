package api

import (
	"net/http" // HTTP status codes

	"kickboard_ledger/internal/domain" // Domain messages

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// fail writes a success=false envelope; errors never change the status code
func fail(c *gin.Context, err error) {
	if domain.IsRuleError(err) {
		logrus.WithFields(logrus.Fields{
			"path":  c.FullPath(), // Route
			"error": err.Error(),  // Rule that failed
		}).Info("Request rejected")
	}
	c.JSON(http.StatusOK, gin.H{"success": false, "message": domain.Message(err)})
}

// badRequest rejects a body that could not be bound
func badRequest(c *gin.Context) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": domain.MsgBadRequest})
}
