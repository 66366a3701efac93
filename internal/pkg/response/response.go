// Package response standardizes the JSON envelope every handler writes:
// {"success": true, "data": ...} on success, or {"success": false,
// "error": {"code", "message"}} on failure. Error codes are short
// machine-readable tags (UNAUTHORIZED, VALIDATION_ERROR, ...) so clients
// branch on the code, never on the message text.
package response

import "github.com/gin-gonic/gin"

func Success(c *gin.Context, statusCode int, data any) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

func Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

// ErrorWithDetails additionally carries per-field validation details.
func ErrorWithDetails(c *gin.Context, statusCode int, code, message string, details any) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}
