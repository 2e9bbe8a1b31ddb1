package usage

import "github.com/gin-gonic/gin"

func RegisterRoutes(rg *gin.RouterGroup, reader UsageReader) {
	rg.GET("/usage", GetUsage(reader))
}
