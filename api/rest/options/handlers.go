package options

import (
	"net/http"

	"codeberg.org/contentstudio/server/internal/content"
	"github.com/gin-gonic/gin"
)

// Handler godoc
// @Summary List form options
// @Description Returns the selectable industries, platforms, tones and content types with display labels
// @Tags options
// @Produce json
// @Success 200 {object} content.Options
// @Router /api/v1/options [get]
func Handler(c *gin.Context) {
	c.JSON(http.StatusOK, content.AllOptions())
}

func RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/options", Handler)
}
