// Package respond renders the API's JSON envelope: {"success": true, "data": ...}
// on success and {"success": false, "error": {"code", "message"}} on failure.
package respond

import (
	"github.com/gin-gonic/gin"
)

// Data writes a success envelope with the given status and payload.
func Data(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

// Error writes a failure envelope with the given status, code, and message.
func Error(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error":   gin.H{"code": code, "message": message},
	})
}

// AbortError writes a failure envelope and aborts the remaining handlers.
func AbortError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"success": false,
		"error":   gin.H{"code": code, "message": message},
	})
}
