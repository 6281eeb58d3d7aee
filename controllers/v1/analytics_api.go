package apiv1

import (
	"attachment-portal-backend/controllers"
	"attachment-portal-backend/lib/analytics"
	"attachment-portal-backend/middleware"
	apimodels "attachment-portal-backend/models/api"

	"github.com/gofiber/fiber/v2"
)

type analyticsApiController struct {
	controllers.BaseAPIController
}

// @Summary Application statistics
// @Tags Analytics
// @Description Dashboard statistics over the applications visible to the reviewer
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=analyticsapimodels.StatsView}
// @Failure 401 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/applications/analytics/stats [get]
func (c *analyticsApiController) stats(ctx *fiber.Ctx) error {
	resp, err := analytics.Instance.Stats(middleware.GetUserID(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "application statistics failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}
