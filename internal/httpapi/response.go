package httpapi

import "github.com/gin-gonic/gin"

func success(c *gin.Context, data gin.H) {
	body := gin.H{"success": true}
	if data != nil {
		body["data"] = data
	}
	c.JSON(200, body)
}

func failure(c *gin.Context, code int, msg string) {
	c.JSON(code, gin.H{
		"success": false,
		"error":   msg,
	})
}
