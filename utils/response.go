package utils

import "github.com/gin-gonic/gin"

// JSONError aborts the request with the uniform error body. detail is
// omitted when nil.
func JSONError(c *gin.Context, code int, message string, detail interface{}) {
	body := gin.H{"error": message}
	if detail != nil {
		body["detail"] = detail
	}
	c.AbortWithStatusJSON(code, body)
}
