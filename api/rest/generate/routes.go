package generate

import "github.com/gin-gonic/gin"

// registers content generation routes
func RegisterRoutes(router *gin.RouterGroup, s ContentStudio) {
	router.POST("/generate", Handler(s))
}
