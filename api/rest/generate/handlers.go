package generate

import (
	stderrors "errors"
	"net/http"

	"codeberg.org/contentstudio/server/internal/auth"
	"codeberg.org/contentstudio/server/internal/content"
	"codeberg.org/contentstudio/server/internal/errors"
	"codeberg.org/contentstudio/server/internal/logger"
	"codeberg.org/contentstudio/server/internal/notifications"
	"codeberg.org/contentstudio/server/internal/studio"
	"codeberg.org/contentstudio/server/internal/usage"
	"github.com/gin-gonic/gin"
)

// Handler godoc
// @Summary Generate captions and hashtags
// @Description Generates three captions and ten hashtags for a brand and consumes one of the client's free daily generations
// @Tags generate
// @Accept json
// @Produce json
// @Param request body Request true "Brand details"
// @Success 200 {object} Response
// @Failure 400 {object} errors.ErrorResponse
// @Failure 429 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/v1/generate [post]
func Handler(s ContentStudio) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientID, ok := auth.GetClientID(c)
		if !ok {
			errors.BadRequest(c, "client id is required", nil)
			return
		}

		var req Request
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.BadRequest(c, "invalid request body", err)
			return
		}

		result, err := s.Generate(c.Request.Context(), clientID, req)
		outcome := studio.OutcomeFor(result, err)
		toast := notifications.For(outcome, s.Limit())

		switch {
		case err == nil:
			c.JSON(http.StatusOK, Response{
				Captions:       result.Bundle.Captions,
				CaptionLengths: result.Bundle.CaptionLengths(),
				Hashtags:       result.Bundle.Hashtags,
				Usage:          result.Usage,
				Notification:   toast,
			})

		case stderrors.Is(err, content.ErrValidationFailed):
			errors.ValidationError(c, toast.Description, err)

		case stderrors.Is(err, usage.ErrQuotaExhausted):
			logger.Debug("generation refused, quota exhausted", "client_id", clientID)
			errors.QuotaExhausted(c, toast.Description)

		default:
			errors.GenerationFailed(c, toast.Description, err)
		}
	}
}
