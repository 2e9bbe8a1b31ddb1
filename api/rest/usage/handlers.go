package usage

import (
	"net/http"

	"codeberg.org/contentstudio/server/internal/auth"
	"codeberg.org/contentstudio/server/internal/errors"
	"github.com/gin-gonic/gin"
)

// GetUsage godoc
// @Summary Get today's generation usage
// @Description Returns how many free generations the client has used today and how many remain
// @Tags usage
// @Produce json
// @Success 200 {object} UsageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/v1/usage [get]
func GetUsage(reader UsageReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientID, ok := auth.GetClientID(c)
		if !ok {
			errors.BadRequest(c, "client id is required", nil)
			return
		}

		u, err := reader.Usage(c.Request.Context(), clientID)
		if err != nil {
			errors.InternalError(c, "failed to fetch usage data", err)
			return
		}

		c.JSON(http.StatusOK, u)
	}
}
