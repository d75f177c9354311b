package utils

import "github.com/gin-gonic/gin"

func JSONSuccess(c *gin.Context, code int, data interface{}) {
	c.JSON(code, data)
}

// JSONError writes the flat {"message": ...} error body the frontend expects.
func JSONError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"message": message})
}
